package data

// A Dirigent conducts performances.
type Dirigent struct {
	ID       int64
	Naam     string
	Voornaam string
}

func (Dirigent) TableName() string { return "dirigent" }

// Fnaam is "naam voornaam", the key select lists are sorted on.
func (d Dirigent) Fnaam() string { return joinName(d.Naam, d.Voornaam) }

// FullName is "voornaam naam".
func (d Dirigent) FullName() string { return joinName(d.Voornaam, d.Naam) }

type DirigentListing struct {
	ID       int64
	Naam     string
	Voornaam string
	Items    int64
}

func (d DirigentListing) FullName() string { return joinName(d.Voornaam, d.Naam) }
