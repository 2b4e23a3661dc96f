// Package data holds the row types of the catalog database.
//
// Each table has its own file. The *Listing types are read models produced
// by join queries in package db; they carry the counts and names shown on
// list pages.
package data

import "strings"

// A Pair is one option of a select field.
type Pair struct {
	ID    int64  `json:"id"`
	Label string `json:"label"`
}

func joinName(first, second string) string {
	return strings.TrimSpace(first + " " + second)
}
