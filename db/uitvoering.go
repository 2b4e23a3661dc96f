package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/amonks/klamu/data"
	"gorm.io/gorm"
)

// UpdateUitvoering adds u when u.ID is 0 and edits it otherwise. A
// performance needs a kompositie and a CD; uitvoerders and dirigent are
// optional and ids that are not > 0 are stored as NULL.
func (db *DB) UpdateUitvoering(ctx context.Context, u data.Uitvoering) (data.Result, error) {
	if u.KompositieID <= 0 {
		return data.Failure(data.NoID, "Uitvoering heeft geen kompositie."), nil
	}
	if u.CdID <= 0 {
		return data.Failure(data.NoID, "Uitvoering staat niet op een CD."), nil
	}
	if u.UitvoerdersID.Int64 <= 0 {
		u.UitvoerdersID = sql.NullInt64{}
	}
	if u.DirigentID.Int64 <= 0 {
		u.DirigentID = sql.NullInt64{}
	}

	ts := now()
	var res data.Result
	refs := []ref{
		{table: "cd", label: "CD", id: u.CdID},
		{table: "kompositie", label: "Kompositie", id: u.KompositieID},
	}
	if u.UitvoerdersID.Valid {
		refs = append(refs, ref{table: "uitvoerders", label: "Uitvoerders", id: u.UitvoerdersID.Int64})
	}
	if u.DirigentID.Valid {
		refs = append(refs, ref{table: "dirigent", label: "Dirigent", id: u.DirigentID.Int64})
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if missing, ok, err := missingRef(tx, refs...); err != nil {
			return err
		} else if ok {
			res = missing
			return nil
		}

		if u.ID == 0 {
			u.Created, u.Modified = ts, ts
			if err := tx.Create(&u).Error; err != nil {
				return fmt.Errorf("error inserting uitvoering on cd %d: %w", u.CdID, err)
			}
			res = data.Success(u.ID, "Uitvoering is toegevoegd.")
			return nil
		}

		found, err := exists(tx, "uitvoering", u.ID)
		if err != nil {
			return err
		}
		if !found {
			res = data.Failure(data.NoID, fmt.Sprintf("Uitvoering met ID %d is niet gevonden.", u.ID))
			return nil
		}
		if err := tx.Model(&data.Uitvoering{ID: u.ID}).Updates(map[string]any{
			"volgnummer":     u.Volgnummer,
			"cd_id":          u.CdID,
			"uitvoerders_id": u.UitvoerdersID,
			"dirigent_id":    u.DirigentID,
			"kompositie_id":  u.KompositieID,
			"modified":       ts,
		}).Error; err != nil {
			return fmt.Errorf("error updating uitvoering %d: %w", u.ID, err)
		}
		res = data.Success(u.ID, "Uitvoering is aangepast.")
		return nil
	})
	if err != nil {
		return data.Result{}, err
	}
	db.logResult("uitvoering", res)
	return res, nil
}

// DeleteUitvoering deletes the performance. Nothing refers to performances,
// so this is never refused.
func (db *DB) DeleteUitvoering(ctx context.Context, id int64) (data.Result, error) {
	return guardedDelete(ctx, db, "Uitvoering", id,
		func(u data.Uitvoering) string { return fmt.Sprintf("Uitvoering met ID %d", u.ID) },
		nil)
}

func (db *DB) GetUitvoering(ctx context.Context, id int64) (*data.Uitvoering, error) {
	return get[data.Uitvoering](ctx, db, "uitvoering", id)
}

func (db *DB) uitvoeringen(ctx context.Context) *gorm.DB {
	return db.WithContext(ctx).
		Table("uitvoering").
		Select(
			"uitvoering.id",
			"uitvoering.volgnummer",
			"uitvoering.cd_id",
			"cd.titel as cd_titel",
			"uitvoering.kompositie_id",
			"kompositie.naam as kompositie_naam",
			"kompositie.komponist_id",
			"komponist.naam as komponist_naam",
			"komponist.voornaam as komponist_voornaam",
			"uitvoering.uitvoerders_id",
			"uitvoerders.naam as uitvoerders_naam",
			"uitvoering.dirigent_id",
			"dirigent.naam as dirigent_naam",
			"dirigent.voornaam as dirigent_voornaam",
		).
		Joins("join cd on cd.id = uitvoering.cd_id").
		Joins("join kompositie on kompositie.id = uitvoering.kompositie_id").
		Joins("join komponist on komponist.id = kompositie.komponist_id").
		Joins("left join uitvoerders on uitvoerders.id = uitvoering.uitvoerders_id").
		Joins("left join dirigent on dirigent.id = uitvoering.dirigent_id").
		Order("cd.titel, uitvoering.volgnummer, uitvoering.id")
}

func (db *DB) listUitvoeringen(ctx context.Context, what string, where string, args ...any) ([]data.UitvoeringListing, error) {
	q := db.uitvoeringen(ctx)
	if where != "" {
		q = q.Where(where, args...)
	}
	var rows []data.UitvoeringListing
	if err := q.Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("error listing uitvoeringen %s: %w", what, err)
	}
	return rows, nil
}

func (db *DB) ListUitvoeringen(ctx context.Context) ([]data.UitvoeringListing, error) {
	return db.listUitvoeringen(ctx, "", "")
}

func (db *DB) CdUitvoeringen(ctx context.Context, cdID int64) ([]data.UitvoeringListing, error) {
	return db.listUitvoeringen(ctx, fmt.Sprintf("on cd %d", cdID), "uitvoering.cd_id = ?", cdID)
}

func (db *DB) DirigentUitvoeringen(ctx context.Context, dirigentID int64) ([]data.UitvoeringListing, error) {
	return db.listUitvoeringen(ctx, fmt.Sprintf("for dirigent %d", dirigentID), "uitvoering.dirigent_id = ?", dirigentID)
}

// KomponistUitvoeringen lists the performances of all of a komponist's
// komposities.
func (db *DB) KomponistUitvoeringen(ctx context.Context, komponistID int64) ([]data.UitvoeringListing, error) {
	return db.listUitvoeringen(ctx, fmt.Sprintf("for komponist %d", komponistID), "kompositie.komponist_id = ?", komponistID)
}

func (db *DB) KompositieUitvoeringen(ctx context.Context, kompositieID int64) ([]data.UitvoeringListing, error) {
	return db.listUitvoeringen(ctx, fmt.Sprintf("for kompositie %d", kompositieID), "uitvoering.kompositie_id = ?", kompositieID)
}

func (db *DB) UitvoerdersUitvoeringen(ctx context.Context, uitvoerdersID int64) ([]data.UitvoeringListing, error) {
	return db.listUitvoeringen(ctx, fmt.Sprintf("for uitvoerders %d", uitvoerdersID), "uitvoering.uitvoerders_id = ?", uitvoerdersID)
}

// UitvoeringDefaults returns the form values of an existing performance.
func (db *DB) UitvoeringDefaults(ctx context.Context, id int64) (*data.UitvoeringDefaults, error) {
	u, err := db.GetUitvoering(ctx, id)
	if err != nil {
		return nil, err
	}
	return db.defaults(ctx, u)
}

// LastUitvoering returns the form values for the next performance on a CD:
// those of the CD's last track with the track number advanced, so that
// entering the movements of one work takes a single click each.
func (db *DB) LastUitvoering(ctx context.Context, cdID int64) (*data.UitvoeringDefaults, error) {
	var u data.Uitvoering
	err := db.WithContext(ctx).
		Where("cd_id = ?", cdID).
		Order("volgnummer desc, id desc").
		First(&u).
		Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &data.UitvoeringDefaults{
			Volgnummer:    1,
			CdID:          cdID,
			KomponistID:   -1,
			KompositieID:  -1,
			UitvoerdersID: -1,
			DirigentID:    -1,
		}, nil
	} else if err != nil {
		return nil, fmt.Errorf("error getting last uitvoering on cd %d: %w", cdID, err)
	}

	defaults, err := db.defaults(ctx, &u)
	if err != nil {
		return nil, err
	}
	defaults.Volgnummer++
	return defaults, nil
}

func (db *DB) defaults(ctx context.Context, u *data.Uitvoering) (*data.UitvoeringDefaults, error) {
	k, err := db.GetKompositie(ctx, u.KompositieID)
	if err != nil {
		return nil, err
	}
	d := &data.UitvoeringDefaults{
		Volgnummer:    u.Volgnummer,
		CdID:          u.CdID,
		KomponistID:   k.KomponistID,
		KompositieID:  u.KompositieID,
		UitvoerdersID: -1,
		DirigentID:    -1,
	}
	if u.UitvoerdersID.Valid {
		d.UitvoerdersID = u.UitvoerdersID.Int64
	}
	if u.DirigentID.Valid {
		d.DirigentID = u.DirigentID.Int64
	}
	return d, nil
}
