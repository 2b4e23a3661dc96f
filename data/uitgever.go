package data

// An Uitgever is the publisher or label of a CD.
type Uitgever struct {
	ID   int64
	Naam string
}

func (Uitgever) TableName() string { return "uitgever" }

// UitgeverListing is an Uitgever with its number of CDs.
type UitgeverListing struct {
	ID    int64
	Naam  string
	Items int64
}
