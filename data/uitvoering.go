package data

import "database/sql"

// An Uitvoering is one performance of a Kompositie, at track Volgnummer of a
// Cd. Uitvoerders and Dirigent are optional.
type Uitvoering struct {
	ID            int64
	Created       int64
	Modified      int64
	Volgnummer    int64
	CdID          int64
	UitvoerdersID sql.NullInt64
	DirigentID    sql.NullInt64
	KompositieID  int64
}

func (Uitvoering) TableName() string { return "uitvoering" }

// UitvoeringListing is an Uitvoering joined with the names of everything it
// refers to.
type UitvoeringListing struct {
	ID                int64
	Volgnummer        int64
	CdID              int64
	CdTitel           string
	KompositieID      int64
	KompositieNaam    string
	KomponistID       int64
	KomponistNaam     string
	KomponistVoornaam string
	UitvoerdersID     sql.NullInt64
	UitvoerdersNaam   sql.NullString
	DirigentID        sql.NullInt64
	DirigentNaam      sql.NullString
	DirigentVoornaam  sql.NullString
}

func (u UitvoeringListing) KomponistFullName() string {
	return joinName(u.KomponistVoornaam, u.KomponistNaam)
}

func (u UitvoeringListing) DirigentFullName() string {
	return joinName(u.DirigentVoornaam.String, u.DirigentNaam.String)
}

// UitvoeringDefaults are the values an Uitvoering form starts from. Ids that
// are not set are -1, matching the "(none)" option of the select fields.
type UitvoeringDefaults struct {
	Volgnummer    int64
	CdID          int64
	KomponistID   int64
	KompositieID  int64
	UitvoerdersID int64
	DirigentID    int64
}
