package data

import "database/sql"

// A Cd is a disc in the collection, optionally published by an Uitgever.
//
// Created and Modified are unix seconds.
type Cd struct {
	ID            int64
	Created       int64
	Modified      int64
	Identificatie sql.NullString
	Titel         string
	UitgeverID    sql.NullInt64
}

func (Cd) TableName() string { return "cd" }

// CdListing is a Cd joined with its publisher's name and the number of
// performances on it.
type CdListing struct {
	ID            int64
	Created       int64
	Modified      int64
	Identificatie sql.NullString
	Titel         string
	UitgeverID    sql.NullInt64
	UitgeverNaam  sql.NullString
	Items         int64
}
