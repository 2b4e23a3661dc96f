package db_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/amonks/klamu/data"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateUitgever(t *testing.T) {
	d := open(t)
	ctx := context.Background()

	res, err := d.UpdateUitgever(ctx, data.Uitgever{Naam: " Éditions Hortus "})
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, "Uitgever Éditions Hortus is toegevoegd.", res.Msg)
	hortus := res.ID

	t.Run("duplicate insert in another case", func(t *testing.T) {
		res, err := d.UpdateUitgever(ctx, data.Uitgever{Naam: "ÉDITIONS HORTUS"})
		require.NoError(t, err)
		assert.False(t, res.OK())
		assert.Equal(t, hortus, res.ID)
		assert.Contains(t, res.Msg, "bestaat al")
	})

	t.Run("unchanged", func(t *testing.T) {
		res, err := d.UpdateUitgever(ctx, data.Uitgever{ID: hortus, Naam: "éditions hortus"})
		require.NoError(t, err)
		assert.True(t, res.OK())
		assert.Equal(t, hortus, res.ID)
		assert.Contains(t, res.Msg, "niet veranderd")

		u, err := d.GetUitgever(ctx, hortus)
		require.NoError(t, err)
		assert.Equal(t, "éditions hortus", u.Naam)
	})

	t.Run("rename onto another", func(t *testing.T) {
		decca := mustOK(t)(d.UpdateUitgever(ctx, data.Uitgever{Naam: "Decca"}))
		res, err := d.UpdateUitgever(ctx, data.Uitgever{ID: decca, Naam: "Éditions Hortus"})
		require.NoError(t, err)
		assert.False(t, res.OK())
		assert.Equal(t, hortus, res.ID)
		assert.Contains(t, res.Msg, "niet aangepast")

		u, err := d.GetUitgever(ctx, decca)
		require.NoError(t, err)
		assert.Equal(t, "Decca", u.Naam)
	})

	t.Run("rename", func(t *testing.T) {
		res, err := d.UpdateUitgever(ctx, data.Uitgever{ID: hortus, Naam: "Hortus"})
		require.NoError(t, err)
		assert.True(t, res.OK())
		assert.Equal(t, "Uitgever Hortus is aangepast.", res.Msg)
	})

	t.Run("missing row", func(t *testing.T) {
		res, err := d.UpdateUitgever(ctx, data.Uitgever{ID: 999, Naam: "Naxos"})
		require.NoError(t, err)
		assert.False(t, res.OK())
		assert.Equal(t, data.NoID, res.ID)
		assert.Contains(t, res.Msg, "niet gevonden")
	})

	t.Run("empty name", func(t *testing.T) {
		res, err := d.UpdateUitgever(ctx, data.Uitgever{Naam: "  "})
		require.NoError(t, err)
		assert.False(t, res.OK())
	})
}

func TestUpdateNotUnique(t *testing.T) {
	d := open(t)
	ctx := context.Background()

	// Rows written around the guards can already collide.
	require.NoError(t, d.Exec("insert into uitgever(naam) values (?), (?)", "Decca", "DECCA").Error)
	other := mustOK(t)(d.UpdateUitgever(ctx, data.Uitgever{Naam: "Naxos"}))

	t.Run("insert", func(t *testing.T) {
		res, err := d.UpdateUitgever(ctx, data.Uitgever{Naam: "decca"})
		require.NoError(t, err)
		assert.False(t, res.OK())
		assert.Equal(t, data.NoID, res.ID)
		assert.Equal(t, "Uitgever decca is niet uniek!", res.Msg)
	})

	t.Run("edit", func(t *testing.T) {
		res, err := d.UpdateUitgever(ctx, data.Uitgever{ID: other, Naam: "Decca"})
		require.NoError(t, err)
		assert.False(t, res.OK())
		assert.Equal(t, data.NoID, res.ID)
		assert.Contains(t, res.Msg, "is niet uniek!")

		u, err := d.GetUitgever(ctx, other)
		require.NoError(t, err)
		assert.Equal(t, "Naxos", u.Naam)
	})

	count, err := d.Count(ctx, "uitgever")
	require.NoError(t, err)
	assert.Equal(t, 3, count)
}

func TestUpdateDirigentUsesBothNames(t *testing.T) {
	d := open(t)
	ctx := context.Background()

	erich := mustOK(t)(d.UpdateDirigent(ctx, data.Dirigent{Naam: "Kleiber", Voornaam: "Erich"}))
	carlos := mustOK(t)(d.UpdateDirigent(ctx, data.Dirigent{Naam: "Kleiber", Voornaam: "Carlos"}))
	assert.NotEqual(t, erich, carlos)

	res, err := d.UpdateDirigent(ctx, data.Dirigent{Naam: "kleiber", Voornaam: "CARLOS"})
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, carlos, res.ID)
	assert.Equal(t, "Dirigent CARLOS kleiber niet toegevoegd, bestaat al.", res.Msg)
}

func TestUpdateKomponistTimestamps(t *testing.T) {
	d := open(t)
	ctx := context.Background()

	id := mustOK(t)(d.UpdateKomponist(ctx, data.Komponist{Naam: "Dvořák", Voornaam: "Antonín"}))
	k, err := d.GetKomponist(ctx, id)
	require.NoError(t, err)
	assert.NotZero(t, k.Created)
	assert.Equal(t, k.Created, k.Modified)

	res, err := d.UpdateKomponist(ctx, data.Komponist{Naam: "DVOŘÁK", Voornaam: "antonín"})
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, id, res.ID)
}

func TestUpdateKompositie(t *testing.T) {
	d := open(t)
	ctx := context.Background()

	bach := mustOK(t)(d.UpdateKomponist(ctx, data.Komponist{Naam: "Bach", Voornaam: "Johann Sebastian"}))
	handel := mustOK(t)(d.UpdateKomponist(ctx, data.Komponist{Naam: "Händel", Voornaam: "Georg Friedrich"}))

	mustOK(t)(d.UpdateKompositie(ctx, data.Kompositie{Naam: "Magnificat", KomponistID: bach}))

	t.Run("same name for another komponist", func(t *testing.T) {
		mustOK(t)(d.UpdateKompositie(ctx, data.Kompositie{Naam: "Magnificat", KomponistID: handel}))
	})

	t.Run("same name for the same komponist", func(t *testing.T) {
		res, err := d.UpdateKompositie(ctx, data.Kompositie{Naam: "MAGNIFICAT", KomponistID: bach})
		require.NoError(t, err)
		assert.False(t, res.OK())
	})

	t.Run("anoniem", func(t *testing.T) {
		first := mustOK(t)(d.UpdateKompositie(ctx, data.Kompositie{Naam: "Greensleeves", KomponistID: -1}))
		second := mustOK(t)(d.UpdateKompositie(ctx, data.Kompositie{Naam: "Sumer is icumen in"}))

		a, err := d.GetKompositie(ctx, first)
		require.NoError(t, err)
		b, err := d.GetKompositie(ctx, second)
		require.NoError(t, err)
		assert.Equal(t, a.KomponistID, b.KomponistID)

		k, err := d.GetKomponist(ctx, a.KomponistID)
		require.NoError(t, err)
		assert.Equal(t, data.Anoniem, k.Naam)
	})

	t.Run("unknown komponist", func(t *testing.T) {
		res, err := d.UpdateKompositie(ctx, data.Kompositie{Naam: "Requiem", KomponistID: 999})
		require.NoError(t, err)
		assert.False(t, res.OK())
		assert.Equal(t, data.NoID, res.ID)
	})
}

func TestUpdateCd(t *testing.T) {
	d := open(t)
	ctx := context.Background()

	id := mustOK(t)(d.UpdateCd(ctx, data.Cd{
		Titel:         "Goldberg-Variationen",
		Identificatie: sql.NullString{String: " ", Valid: true},
		UitgeverID:    sql.NullInt64{Int64: -1, Valid: true},
	}))
	cd, err := d.GetCd(ctx, id)
	require.NoError(t, err)
	assert.False(t, cd.Identificatie.Valid)
	assert.False(t, cd.UitgeverID.Valid)
	assert.False(t, cd.UitgeverNaam.Valid)

	t.Run("same titel with another identificatie", func(t *testing.T) {
		mustOK(t)(d.UpdateCd(ctx, data.Cd{
			Titel:         "Goldberg-Variationen",
			Identificatie: sql.NullString{String: "Gould 1981", Valid: true},
		}))
	})

	t.Run("same titel without identificatie", func(t *testing.T) {
		res, err := d.UpdateCd(ctx, data.Cd{Titel: "goldberg-variationen"})
		require.NoError(t, err)
		assert.False(t, res.OK())
		assert.Equal(t, id, res.ID)
	})

	t.Run("set uitgever", func(t *testing.T) {
		sony := mustOK(t)(d.UpdateUitgever(ctx, data.Uitgever{Naam: "Sony"}))
		mustOK(t)(d.UpdateCd(ctx, data.Cd{
			ID:         id,
			Titel:      "Goldberg-Variationen",
			UitgeverID: sql.NullInt64{Int64: sony, Valid: true},
		}))
		cd, err := d.GetCd(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Sony", cd.UitgeverNaam.String)
	})

	t.Run("unknown uitgever", func(t *testing.T) {
		res, err := d.UpdateCd(ctx, data.Cd{
			Titel:      "Das wohltemperierte Klavier",
			UitgeverID: sql.NullInt64{Int64: 999, Valid: true},
		})
		require.NoError(t, err)
		assert.False(t, res.OK())
		assert.Equal(t, data.NoID, res.ID)
		assert.Equal(t, "Uitgever (id: 999) is niet gevonden!", res.Msg)

		res, err = d.UpdateCd(ctx, data.Cd{
			ID:         id,
			Titel:      "Goldberg-Variationen",
			UitgeverID: sql.NullInt64{Int64: 999, Valid: true},
		})
		require.NoError(t, err)
		assert.False(t, res.OK())
		cd, err := d.GetCd(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Sony", cd.UitgeverNaam.String)
	})
}

func TestUpdateUitvoering(t *testing.T) {
	d := open(t)
	ctx := context.Background()
	f := seed(t, d)

	res, err := d.UpdateUitvoering(ctx, data.Uitvoering{CdID: f.cd})
	require.NoError(t, err)
	assert.False(t, res.OK())

	mustOK(t)(d.UpdateUitvoering(ctx, data.Uitvoering{
		ID:            f.uitvoering,
		Volgnummer:    3,
		CdID:          f.cd,
		KompositieID:  f.kompositie,
		UitvoerdersID: sql.NullInt64{Int64: -1, Valid: true},
	}))
	u, err := d.GetUitvoering(ctx, f.uitvoering)
	require.NoError(t, err)
	assert.Equal(t, int64(3), u.Volgnummer)
	assert.False(t, u.UitvoerdersID.Valid)
	assert.False(t, u.DirigentID.Valid)

	res, err = d.UpdateUitvoering(ctx, data.Uitvoering{ID: 999, CdID: f.cd, KompositieID: f.kompositie})
	require.NoError(t, err)
	assert.False(t, res.OK())
}

func TestUpdateUitvoeringUnknownRefs(t *testing.T) {
	d := open(t)
	ctx := context.Background()
	f := seed(t, d)

	for _, tt := range []struct {
		name string
		u    data.Uitvoering
		msg  string
	}{
		{"cd", data.Uitvoering{CdID: 999, KompositieID: f.kompositie}, "CD (id: 999) is niet gevonden!"},
		{"kompositie", data.Uitvoering{CdID: f.cd, KompositieID: 999}, "Kompositie (id: 999) is niet gevonden!"},
		{"uitvoerders", data.Uitvoering{
			CdID:          f.cd,
			KompositieID:  f.kompositie,
			UitvoerdersID: sql.NullInt64{Int64: 999, Valid: true},
		}, "Uitvoerders (id: 999) is niet gevonden!"},
		{"dirigent", data.Uitvoering{
			ID:           f.uitvoering,
			CdID:         f.cd,
			KompositieID: f.kompositie,
			DirigentID:   sql.NullInt64{Int64: 999, Valid: true},
		}, "Dirigent (id: 999) is niet gevonden!"},
	} {
		t.Run(tt.name, func(t *testing.T) {
			res, err := d.UpdateUitvoering(ctx, tt.u)
			require.NoError(t, err)
			assert.False(t, res.OK())
			assert.Equal(t, data.NoID, res.ID)
			assert.Equal(t, tt.msg, res.Msg)
		})
	}

	count, err := d.Count(ctx, "uitvoering")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	u, err := d.GetUitvoering(ctx, f.uitvoering)
	require.NoError(t, err)
	assert.Equal(t, f.dirigent, u.DirigentID.Int64)
}

func TestGuardedDeletes(t *testing.T) {
	d := open(t)
	ctx := context.Background()
	f := seed(t, d)

	refused := []struct {
		name   string
		delete func(context.Context, int64) (data.Result, error)
		id     int64
		noun   string
	}{
		{"uitgever", d.DeleteUitgever, f.uitgever, "1 cd(s)"},
		{"cd", d.DeleteCd, f.cd, "1 uitvoering(en)"},
		{"komponist", d.DeleteKomponist, f.komponist, "1 kompositie(s)"},
		{"kompositie", d.DeleteKompositie, f.kompositie, "1 uitvoering(en)"},
		{"uitvoerders", d.DeleteUitvoerders, f.uitvoerders, "1 uitvoering(en)"},
		{"dirigent", d.DeleteDirigent, f.dirigent, "1 uitvoering(en)"},
	}
	for _, tt := range refused {
		t.Run(tt.name+" refused", func(t *testing.T) {
			res, err := tt.delete(ctx, tt.id)
			require.NoError(t, err)
			assert.False(t, res.OK())
			assert.Equal(t, tt.id, res.ID)
			assert.Contains(t, res.Msg, "nog verbonden met "+tt.noun)
		})
	}

	res, err := d.DeleteUitvoering(ctx, f.uitvoering)
	require.NoError(t, err)
	assert.True(t, res.OK())
	assert.Equal(t, data.NoID, res.ID)

	// In dependency order, everything can go now.
	for _, step := range []struct {
		delete func(context.Context, int64) (data.Result, error)
		id     int64
	}{
		{d.DeleteCd, f.cd},
		{d.DeleteUitgever, f.uitgever},
		{d.DeleteKompositie, f.kompositie},
		{d.DeleteKomponist, f.komponist},
		{d.DeleteUitvoerders, f.uitvoerders},
		{d.DeleteDirigent, f.dirigent},
	} {
		res, err := step.delete(ctx, step.id)
		require.NoError(t, err)
		assert.True(t, res.OK(), res.Msg)
		assert.Contains(t, res.Msg, "is verwijderd.")
	}

	counts, err := d.Counts(ctx)
	require.NoError(t, err)
	for _, table := range []string{"cd", "uitgever", "komponist", "kompositie", "uitvoerders", "dirigent", "uitvoering"} {
		assert.Zero(t, counts[table], table)
	}
}

func TestDeleteNotFound(t *testing.T) {
	d := open(t)
	res, err := d.DeleteDirigent(context.Background(), 42)
	require.NoError(t, err)
	assert.False(t, res.OK())
	assert.Equal(t, data.NoID, res.ID)
	assert.Equal(t, "Dirigent (id: 42) is niet gevonden!", res.Msg)
}
