package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/amonks/klamu/data"
	"gorm.io/gorm"
)

// UpdateUitvoerders adds u when u.ID is 0 and edits it otherwise, refusing
// a name that other uitvoerders already have.
func (db *DB) UpdateUitvoerders(ctx context.Context, u data.Uitvoerders) (data.Result, error) {
	u.Naam = strings.TrimSpace(u.Naam)
	if u.Naam == "" {
		return data.Failure(data.NoID, "Uitvoerders hebben geen naam."), nil
	}
	return db.guardedUpsert(ctx, upsert{
		table: "uitvoerders",
		label: "Uitvoerders " + u.Naam,
		id:    u.ID,
		key:   []cond{folded("naam", u.Naam)},
		insert: func(tx *gorm.DB) (int64, error) {
			err := tx.Create(&u).Error
			return u.ID, err
		},
		update: func(tx *gorm.DB) error {
			return tx.Model(&data.Uitvoerders{ID: u.ID}).Update("naam", u.Naam).Error
		},
	})
}

func (db *DB) DeleteUitvoerders(ctx context.Context, id int64) (data.Result, error) {
	return guardedDelete(ctx, db, "Uitvoerders", id,
		func(u data.Uitvoerders) string { return "Uitvoerders " + u.Naam },
		&dependents{table: "uitvoering", column: "uitvoerders_id", noun: "uitvoering(en)"})
}

func (db *DB) GetUitvoerders(ctx context.Context, id int64) (*data.Uitvoerders, error) {
	return get[data.Uitvoerders](ctx, db, "uitvoerders", id)
}

func (db *DB) ListUitvoerders(ctx context.Context) ([]data.UitvoerdersListing, error) {
	var rows []data.UitvoerdersListing
	if err := db.WithContext(ctx).
		Table("uitvoerders").
		Select("uitvoerders.id, uitvoerders.naam, count(uitvoering.id) as items").
		Joins("left join uitvoering on uitvoering.uitvoerders_id = uitvoerders.id").
		Group("uitvoerders.id").
		Scan(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("error listing uitvoerders: %w", err)
	}
	sortDutch(rows, func(r data.UitvoerdersListing) string { return r.Naam })
	return rows, nil
}

func (db *DB) UitvoerdersPairs(ctx context.Context) ([]data.Pair, error) {
	var rows []data.Uitvoerders
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error getting uitvoerders: %w", err)
	}
	pairs := make([]data.Pair, len(rows))
	for i, u := range rows {
		pairs[i] = data.Pair{ID: u.ID, Label: u.Naam}
	}
	sortPairs(pairs)
	return pairs, nil
}
