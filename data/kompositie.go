package data

// A Kompositie is a work by one Komponist.
type Kompositie struct {
	ID          int64
	Naam        string
	KomponistID int64
}

func (Kompositie) TableName() string { return "kompositie" }

type KompositieListing struct {
	ID                int64
	Naam              string
	KomponistID       int64
	KomponistNaam     string
	KomponistVoornaam string
	Items             int64
}

func (k KompositieListing) KomponistFullName() string {
	return joinName(k.KomponistVoornaam, k.KomponistNaam)
}
