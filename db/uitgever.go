package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/amonks/klamu/data"
	"gorm.io/gorm"
)

// UpdateUitgever adds u when u.ID is 0 and edits it otherwise. A name that
// another uitgever already has, in any case, is refused.
func (db *DB) UpdateUitgever(ctx context.Context, u data.Uitgever) (data.Result, error) {
	u.Naam = strings.TrimSpace(u.Naam)
	if u.Naam == "" {
		return data.Failure(data.NoID, "Uitgever heeft geen naam."), nil
	}
	return db.guardedUpsert(ctx, upsert{
		table: "uitgever",
		label: "Uitgever " + u.Naam,
		id:    u.ID,
		key:   []cond{folded("naam", u.Naam)},
		insert: func(tx *gorm.DB) (int64, error) {
			err := tx.Create(&u).Error
			return u.ID, err
		},
		update: func(tx *gorm.DB) error {
			return tx.Model(&data.Uitgever{ID: u.ID}).Update("naam", u.Naam).Error
		},
	})
}

// DeleteUitgever deletes the uitgever unless CDs are still published by it.
func (db *DB) DeleteUitgever(ctx context.Context, id int64) (data.Result, error) {
	return guardedDelete(ctx, db, "Uitgever", id,
		func(u data.Uitgever) string { return "Uitgever " + u.Naam },
		&dependents{table: "cd", column: "uitgever_id", noun: "cd(s)"})
}

func (db *DB) GetUitgever(ctx context.Context, id int64) (*data.Uitgever, error) {
	return get[data.Uitgever](ctx, db, "uitgever", id)
}

func (db *DB) ListUitgevers(ctx context.Context) ([]data.UitgeverListing, error) {
	var rows []data.UitgeverListing
	if err := db.WithContext(ctx).
		Table("uitgever").
		Select("uitgever.id, uitgever.naam, count(cd.id) as items").
		Joins("left join cd on cd.uitgever_id = uitgever.id").
		Group("uitgever.id").
		Scan(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("error listing uitgevers: %w", err)
	}
	sortDutch(rows, func(r data.UitgeverListing) string { return r.Naam })
	return rows, nil
}

// UitgeverPairs returns the options of an uitgever select field.
func (db *DB) UitgeverPairs(ctx context.Context) ([]data.Pair, error) {
	var rows []data.Uitgever
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error getting uitgevers: %w", err)
	}
	pairs := make([]data.Pair, len(rows))
	for i, u := range rows {
		pairs[i] = data.Pair{ID: u.ID, Label: u.Naam}
	}
	sortPairs(pairs)
	return pairs, nil
}
