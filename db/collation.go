package db

import (
	"slices"

	"github.com/amonks/klamu/data"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// sortDutch orders rows by key the way a Dutch reader expects: case
// insensitive, with accented letters next to their base letter.
func sortDutch[T any](rows []T, key func(T) string) {
	// Collators are not safe for concurrent use.
	c := collate.New(language.Dutch, collate.IgnoreCase)
	slices.SortStableFunc(rows, func(a, b T) int {
		return c.CompareString(key(a), key(b))
	})
}

func sortPairs(pairs []data.Pair) {
	sortDutch(pairs, func(p data.Pair) string { return p.Label })
}
