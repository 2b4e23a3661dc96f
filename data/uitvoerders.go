package data

// Uitvoerders is the performer or ensemble credited on a performance.
type Uitvoerders struct {
	ID   int64
	Naam string
}

func (Uitvoerders) TableName() string { return "uitvoerders" }

type UitvoerdersListing struct {
	ID    int64
	Naam  string
	Items int64
}
