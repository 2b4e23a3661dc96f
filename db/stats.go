package db

import (
	"context"
	"fmt"
)

// Tables lists the catalog's tables in the order reports show them.
var Tables = []string{
	"cd",
	"uitgever",
	"dirigent",
	"komponist",
	"kompositie",
	"uitvoerders",
	"uitvoering",
	"users",
	"history",
}

func (db *DB) Count(ctx context.Context, table string) (int, error) {
	var count int64
	if err := db.WithContext(ctx).
		Table(table).
		Count(&count).
		Error; err != nil {
		return 0, fmt.Errorf("error counting %s: %w", table, err)
	}
	return int(count), nil
}

// Counts returns the number of rows of each of the given tables, or of all
// Tables when none are given.
func (db *DB) Counts(ctx context.Context, tables ...string) (map[string]int, error) {
	if len(tables) == 0 {
		tables = Tables
	}
	counts := make(map[string]int, len(tables))
	for _, table := range tables {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("canceled: %w", err)
		}
		count, err := db.Count(ctx, table)
		if err != nil {
			return nil, err
		}
		counts[table] = count
	}
	return counts, nil
}
