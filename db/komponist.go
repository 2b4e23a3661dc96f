package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/amonks/klamu/data"
	"gorm.io/gorm"
)

// UpdateKomponist adds k when k.ID is 0 and edits it otherwise, refusing a
// naam and voornaam that another komponist already has.
func (db *DB) UpdateKomponist(ctx context.Context, k data.Komponist) (data.Result, error) {
	k.Naam, k.Voornaam = strings.TrimSpace(k.Naam), strings.TrimSpace(k.Voornaam)
	if k.Naam == "" {
		return data.Failure(data.NoID, "Komponist heeft geen naam."), nil
	}
	ts := now()
	return db.guardedUpsert(ctx, upsert{
		table: "komponist",
		label: "Komponist " + k.FullName(),
		id:    k.ID,
		key:   []cond{folded("naam", k.Naam), folded("voornaam", k.Voornaam)},
		insert: func(tx *gorm.DB) (int64, error) {
			k.Created, k.Modified = ts, ts
			err := tx.Create(&k).Error
			return k.ID, err
		},
		update: func(tx *gorm.DB) error {
			return tx.Model(&data.Komponist{ID: k.ID}).Updates(map[string]any{
				"naam":     k.Naam,
				"voornaam": k.Voornaam,
				"modified": ts,
			}).Error
		},
	})
}

// DeleteKomponist deletes the komponist unless it still has komposities.
func (db *DB) DeleteKomponist(ctx context.Context, id int64) (data.Result, error) {
	return guardedDelete(ctx, db, "Komponist", id,
		func(k data.Komponist) string { return "Komponist " + k.FullName() },
		&dependents{table: "kompositie", column: "komponist_id", noun: "kompositie(s)"})
}

func (db *DB) GetKomponist(ctx context.Context, id int64) (*data.Komponist, error) {
	return get[data.Komponist](ctx, db, "komponist", id)
}

// anoniem returns the id of the komponist that compositions without a
// known composer belong to, creating it on first use.
func anoniem(tx *gorm.DB) (int64, error) {
	ids, err := duplicates(tx, "komponist", folded("naam", data.Anoniem), equal("voornaam", ""))
	if err != nil {
		return 0, err
	}
	if len(ids) > 0 {
		return ids[0], nil
	}
	ts := now()
	k := data.Komponist{Naam: data.Anoniem, Created: ts, Modified: ts}
	if err := tx.Create(&k).Error; err != nil {
		return 0, fmt.Errorf("error inserting komponist '%s': %w", data.Anoniem, err)
	}
	return k.ID, nil
}

func (db *DB) ListKomponisten(ctx context.Context) ([]data.KomponistListing, error) {
	var rows []data.KomponistListing
	if err := db.WithContext(ctx).
		Table("komponist").
		Select(
			"komponist.id",
			"komponist.naam",
			"komponist.voornaam",
			"count(distinct kompositie.id) as komposities",
			"count(uitvoering.id) as items",
		).
		Joins("left join kompositie on kompositie.komponist_id = komponist.id").
		Joins("left join uitvoering on uitvoering.kompositie_id = kompositie.id").
		Group("komponist.id").
		Scan(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("error listing komponisten: %w", err)
	}
	sortDutch(rows, func(r data.KomponistListing) string { return r.Naam + " " + r.Voornaam })
	return rows, nil
}

func (db *DB) KomponistPairs(ctx context.Context) ([]data.Pair, error) {
	var rows []data.Komponist
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error getting komponisten: %w", err)
	}
	pairs := make([]data.Pair, len(rows))
	for i, k := range rows {
		pairs[i] = data.Pair{ID: k.ID, Label: k.Fnaam()}
	}
	sortPairs(pairs)
	return pairs, nil
}
