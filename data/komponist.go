package data

// Anoniem is the komponist that compositions without a known composer are
// attached to.
const Anoniem = "Anoniem"

// A Komponist writes compositions.
type Komponist struct {
	ID       int64
	Created  int64
	Modified int64
	Naam     string
	Voornaam string
}

func (Komponist) TableName() string { return "komponist" }

func (k Komponist) Fnaam() string { return joinName(k.Naam, k.Voornaam) }

func (k Komponist) FullName() string { return joinName(k.Voornaam, k.Naam) }

// KomponistListing counts both the compositions of a komponist and the
// performances of those compositions.
type KomponistListing struct {
	ID          int64
	Naam        string
	Voornaam    string
	Komposities int64
	Items       int64
}

func (k KomponistListing) FullName() string { return joinName(k.Voornaam, k.Naam) }
