package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/amonks/klamu/data"
	"gorm.io/gorm"
)

// UpdateDirigent adds d when d.ID is 0 and edits it otherwise. Two
// dirigenten may share a naam but not naam and voornaam together.
func (db *DB) UpdateDirigent(ctx context.Context, d data.Dirigent) (data.Result, error) {
	d.Naam, d.Voornaam = strings.TrimSpace(d.Naam), strings.TrimSpace(d.Voornaam)
	if d.Naam == "" {
		return data.Failure(data.NoID, "Dirigent heeft geen naam."), nil
	}
	return db.guardedUpsert(ctx, upsert{
		table: "dirigent",
		label: "Dirigent " + d.FullName(),
		id:    d.ID,
		key:   []cond{folded("naam", d.Naam), folded("voornaam", d.Voornaam)},
		insert: func(tx *gorm.DB) (int64, error) {
			err := tx.Create(&d).Error
			return d.ID, err
		},
		update: func(tx *gorm.DB) error {
			return tx.Model(&data.Dirigent{ID: d.ID}).Updates(map[string]any{
				"naam":     d.Naam,
				"voornaam": d.Voornaam,
			}).Error
		},
	})
}

func (db *DB) DeleteDirigent(ctx context.Context, id int64) (data.Result, error) {
	return guardedDelete(ctx, db, "Dirigent", id,
		func(d data.Dirigent) string { return "Dirigent " + d.FullName() },
		&dependents{table: "uitvoering", column: "dirigent_id", noun: "uitvoering(en)"})
}

func (db *DB) GetDirigent(ctx context.Context, id int64) (*data.Dirigent, error) {
	return get[data.Dirigent](ctx, db, "dirigent", id)
}

func (db *DB) ListDirigenten(ctx context.Context) ([]data.DirigentListing, error) {
	var rows []data.DirigentListing
	if err := db.WithContext(ctx).
		Table("dirigent").
		Select("dirigent.id, dirigent.naam, dirigent.voornaam, count(uitvoering.id) as items").
		Joins("left join uitvoering on uitvoering.dirigent_id = dirigent.id").
		Group("dirigent.id").
		Scan(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("error listing dirigenten: %w", err)
	}
	sortDutch(rows, func(r data.DirigentListing) string { return r.Naam + " " + r.Voornaam })
	return rows, nil
}

func (db *DB) DirigentPairs(ctx context.Context) ([]data.Pair, error) {
	var rows []data.Dirigent
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error getting dirigenten: %w", err)
	}
	pairs := make([]data.Pair, len(rows))
	for i, d := range rows {
		pairs[i] = data.Pair{ID: d.ID, Label: d.Fnaam()}
	}
	sortPairs(pairs)
	return pairs, nil
}
