package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/amonks/klamu/data"
	"gorm.io/gorm"
)

// UpdateCd adds the CD when cd.ID is 0 and edits it otherwise. Titel and
// identificatie together must be unique; an empty identificatie is stored
// as NULL and an UitgeverID that is not > 0 means no uitgever.
func (db *DB) UpdateCd(ctx context.Context, cd data.Cd) (data.Result, error) {
	cd.Titel = strings.TrimSpace(cd.Titel)
	if cd.Titel == "" {
		return data.Failure(data.NoID, "CD heeft geen titel."), nil
	}
	ident := strings.TrimSpace(cd.Identificatie.String)
	cd.Identificatie = sql.NullString{String: ident, Valid: ident != ""}
	if cd.UitgeverID.Int64 <= 0 {
		cd.UitgeverID = sql.NullInt64{}
	}

	var refs []ref
	if cd.UitgeverID.Valid {
		refs = append(refs, ref{table: "uitgever", label: "Uitgever", id: cd.UitgeverID.Int64})
	}

	ts := now()
	return db.guardedUpsert(ctx, upsert{
		table: "cd",
		label: "CD " + cd.Titel,
		id:    cd.ID,
		key:   []cond{folded("titel", cd.Titel), folded("coalesce(identificatie, '')", ident)},
		refs:  refs,
		insert: func(tx *gorm.DB) (int64, error) {
			cd.Created, cd.Modified = ts, ts
			err := tx.Create(&cd).Error
			return cd.ID, err
		},
		update: func(tx *gorm.DB) error {
			return tx.Model(&data.Cd{ID: cd.ID}).Updates(map[string]any{
				"titel":         cd.Titel,
				"identificatie": cd.Identificatie,
				"uitgever_id":   cd.UitgeverID,
				"modified":      ts,
			}).Error
		},
	})
}

// DeleteCd deletes the CD unless performances are still placed on it.
func (db *DB) DeleteCd(ctx context.Context, id int64) (data.Result, error) {
	return guardedDelete(ctx, db, "CD", id,
		func(cd data.Cd) string { return "CD " + cd.Titel },
		&dependents{table: "uitvoering", column: "cd_id", noun: "uitvoering(en)"})
}

func (db *DB) cds(ctx context.Context) *gorm.DB {
	return db.WithContext(ctx).
		Table("cd").
		Select(
			"cd.id",
			"cd.created",
			"cd.modified",
			"cd.identificatie",
			"cd.titel",
			"cd.uitgever_id",
			"uitgever.naam as uitgever_naam",
			"count(uitvoering.id) as items",
		).
		Joins("left join uitgever on uitgever.id = cd.uitgever_id").
		Joins("left join uitvoering on uitvoering.cd_id = cd.id").
		Group("cd.id")
}

// GetCd returns the CD with its uitgever's name.
func (db *DB) GetCd(ctx context.Context, id int64) (*data.CdListing, error) {
	var rows []data.CdListing
	if err := db.cds(ctx).Where("cd.id = ?", id).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("error getting cd %d: %w", id, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("error getting cd %d: %w", id, ErrNotFound)
	}
	return &rows[0], nil
}

// ListCds lists the CDs of one uitgever when uitgeverID > 0, and all CDs
// otherwise.
func (db *DB) ListCds(ctx context.Context, uitgeverID int64) ([]data.CdListing, error) {
	q := db.cds(ctx)
	if uitgeverID > 0 {
		q = q.Where("cd.uitgever_id = ?", uitgeverID)
	}
	var rows []data.CdListing
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("error listing cds for uitgever %d: %w", uitgeverID, err)
	}
	sortDutch(rows, func(r data.CdListing) string { return r.Titel })
	return rows, nil
}
