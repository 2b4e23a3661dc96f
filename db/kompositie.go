package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/amonks/klamu/data"
	"gorm.io/gorm"
)

// UpdateKompositie adds k when k.ID is 0 and edits it otherwise. A
// komponist cannot have two komposities of the same name. Without a
// komponist the kompositie goes to the Anoniem komponist.
func (db *DB) UpdateKompositie(ctx context.Context, k data.Kompositie) (data.Result, error) {
	k.Naam = strings.TrimSpace(k.Naam)
	if k.Naam == "" {
		return data.Failure(data.NoID, "Kompositie heeft geen naam."), nil
	}

	if k.KomponistID <= 0 {
		var err error
		if k.KomponistID, err = anoniem(db.WithContext(ctx)); err != nil {
			return data.Result{}, err
		}
	} else if found, err := exists(db.WithContext(ctx), "komponist", k.KomponistID); err != nil {
		return data.Result{}, err
	} else if !found {
		return data.Failure(data.NoID, fmt.Sprintf("Komponist (id: %d) is niet gevonden!", k.KomponistID)), nil
	}

	return db.guardedUpsert(ctx, upsert{
		table: "kompositie",
		label: "Kompositie " + k.Naam,
		id:    k.ID,
		key:   []cond{folded("naam", k.Naam), equal("komponist_id", k.KomponistID)},
		insert: func(tx *gorm.DB) (int64, error) {
			err := tx.Create(&k).Error
			return k.ID, err
		},
		update: func(tx *gorm.DB) error {
			return tx.Model(&data.Kompositie{ID: k.ID}).Updates(map[string]any{
				"naam":         k.Naam,
				"komponist_id": k.KomponistID,
			}).Error
		},
	})
}

func (db *DB) DeleteKompositie(ctx context.Context, id int64) (data.Result, error) {
	return guardedDelete(ctx, db, "Kompositie", id,
		func(k data.Kompositie) string { return "Kompositie " + k.Naam },
		&dependents{table: "uitvoering", column: "kompositie_id", noun: "uitvoering(en)"})
}

func (db *DB) GetKompositie(ctx context.Context, id int64) (*data.Kompositie, error) {
	return get[data.Kompositie](ctx, db, "kompositie", id)
}

func (db *DB) komposities(ctx context.Context) *gorm.DB {
	return db.WithContext(ctx).
		Table("kompositie").
		Select(
			"kompositie.id",
			"kompositie.naam",
			"kompositie.komponist_id",
			"komponist.naam as komponist_naam",
			"komponist.voornaam as komponist_voornaam",
			"count(uitvoering.id) as items",
		).
		Joins("join komponist on komponist.id = kompositie.komponist_id").
		Joins("left join uitvoering on uitvoering.kompositie_id = kompositie.id").
		Group("kompositie.id")
}

// GetKompositieListing returns the kompositie with its komponist's name.
func (db *DB) GetKompositieListing(ctx context.Context, id int64) (*data.KompositieListing, error) {
	var rows []data.KompositieListing
	if err := db.komposities(ctx).
		Where("kompositie.id = ?", id).
		Scan(&rows).
		Error; err != nil {
		return nil, fmt.Errorf("error getting kompositie %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("error getting kompositie %d: %w", id, ErrNotFound)
	}
	return &rows[0], nil
}

func (db *DB) ListKomposities(ctx context.Context) ([]data.KompositieListing, error) {
	var rows []data.KompositieListing
	if err := db.komposities(ctx).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("error listing komposities: %w", err)
	}
	sortDutch(rows, func(r data.KompositieListing) string {
		return r.KomponistNaam + " " + r.KomponistVoornaam + " " + r.Naam
	})
	return rows, nil
}

// KompositiePairs returns the options of a kompositie select field, for one
// komponist when komponistID > 0 and for all komponisten otherwise.
func (db *DB) KompositiePairs(ctx context.Context, komponistID int64) ([]data.Pair, error) {
	q := db.WithContext(ctx)
	if komponistID > 0 {
		q = q.Where("komponist_id = ?", komponistID)
	}
	var rows []data.Kompositie
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("error getting komposities for komponist %d: %w", komponistID, err)
	}
	pairs := make([]data.Pair, len(rows))
	for i, k := range rows {
		pairs[i] = data.Pair{ID: k.ID, Label: k.Naam}
	}
	sortPairs(pairs)
	return pairs, nil
}
