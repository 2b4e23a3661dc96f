package db_test

import (
	"context"
	"testing"

	"github.com/amonks/klamu/data"
	"github.com/amonks/klamu/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListings(t *testing.T) {
	d := open(t)
	ctx := context.Background()
	f := seed(t, d)

	sym7 := mustOK(t)(d.UpdateKompositie(ctx, data.Kompositie{Naam: "Symfonie nr. 7", KomponistID: f.komponist}))
	for i := int64(2); i <= 5; i++ {
		mustOK(t)(d.UpdateUitvoering(ctx, data.Uitvoering{Volgnummer: i, CdID: f.cd, KompositieID: sym7}))
	}
	mustOK(t)(d.UpdateKomponist(ctx, data.Komponist{Naam: "Mahler", Voornaam: "Gustav"}))

	komponisten, err := d.ListKomponisten(ctx)
	require.NoError(t, err)
	require.Len(t, komponisten, 2)
	assert.Equal(t, "Beethoven", komponisten[0].Naam)
	assert.Equal(t, int64(2), komponisten[0].Komposities)
	assert.Equal(t, int64(5), komponisten[0].Items)
	assert.Equal(t, "Mahler", komponisten[1].Naam)
	assert.Zero(t, komponisten[1].Items)

	cds, err := d.ListCds(ctx, 0)
	require.NoError(t, err)
	require.Len(t, cds, 1)
	assert.Equal(t, int64(5), cds[0].Items)
	assert.Equal(t, "Deutsche Grammophon", cds[0].UitgeverNaam.String)

	cds, err = d.ListCds(ctx, f.uitgever+1)
	require.NoError(t, err)
	assert.Empty(t, cds)

	uitgevers, err := d.ListUitgevers(ctx)
	require.NoError(t, err)
	require.Len(t, uitgevers, 1)
	assert.Equal(t, int64(1), uitgevers[0].Items)

	dirigenten, err := d.ListDirigenten(ctx)
	require.NoError(t, err)
	require.Len(t, dirigenten, 1)
	assert.Equal(t, int64(1), dirigenten[0].Items)

	komposities, err := d.ListKomposities(ctx)
	require.NoError(t, err)
	require.Len(t, komposities, 2)
	assert.Equal(t, "Symfonie nr. 5", komposities[0].Naam)
	assert.Equal(t, "Ludwig van Beethoven", komposities[0].KomponistFullName())
	assert.Equal(t, int64(4), komposities[1].Items)

	uitvoerders, err := d.ListUitvoerders(ctx)
	require.NoError(t, err)
	require.Len(t, uitvoerders, 1)
	assert.Equal(t, int64(1), uitvoerders[0].Items)
}

func TestUitvoeringListings(t *testing.T) {
	d := open(t)
	ctx := context.Background()
	f := seed(t, d)

	all, err := d.ListUitvoeringen(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	u := all[0]
	assert.Equal(t, "Symfonieën 5 & 7", u.CdTitel)
	assert.Equal(t, "Symfonie nr. 5", u.KompositieNaam)
	assert.Equal(t, "Ludwig van Beethoven", u.KomponistFullName())
	assert.Equal(t, "Wiener Philharmoniker", u.UitvoerdersNaam.String)
	assert.Equal(t, "Carlos Kleiber", u.DirigentFullName())

	for _, tt := range []struct {
		name string
		list func() ([]data.UitvoeringListing, error)
	}{
		{"cd", func() ([]data.UitvoeringListing, error) { return d.CdUitvoeringen(ctx, f.cd) }},
		{"dirigent", func() ([]data.UitvoeringListing, error) { return d.DirigentUitvoeringen(ctx, f.dirigent) }},
		{"komponist", func() ([]data.UitvoeringListing, error) { return d.KomponistUitvoeringen(ctx, f.komponist) }},
		{"kompositie", func() ([]data.UitvoeringListing, error) { return d.KompositieUitvoeringen(ctx, f.kompositie) }},
		{"uitvoerders", func() ([]data.UitvoeringListing, error) { return d.UitvoerdersUitvoeringen(ctx, f.uitvoerders) }},
	} {
		rows, err := tt.list()
		require.NoError(t, err, tt.name)
		assert.Len(t, rows, 1, tt.name)
	}

	none, err := d.DirigentUitvoeringen(ctx, f.dirigent+100)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestPairsAreSortedDutch(t *testing.T) {
	d := open(t)
	ctx := context.Background()

	for _, naam := range []string{"Zefiro", "anima eterna", "Il Giardino Armonico", "Akademie für Alte Musik", "Ébène"} {
		mustOK(t)(d.UpdateUitvoerders(ctx, data.Uitvoerders{Naam: naam}))
	}
	pairs, err := d.UitvoerdersPairs(ctx)
	require.NoError(t, err)

	var labels []string
	for _, p := range pairs {
		labels = append(labels, p.Label)
	}
	assert.Equal(t, []string{"Akademie für Alte Musik", "anima eterna", "Ébène", "Il Giardino Armonico", "Zefiro"}, labels)
}

func TestKompositiePairs(t *testing.T) {
	d := open(t)
	ctx := context.Background()
	f := seed(t, d)

	mozart := mustOK(t)(d.UpdateKomponist(ctx, data.Komponist{Naam: "Mozart", Voornaam: "Wolfgang Amadeus"}))
	mustOK(t)(d.UpdateKompositie(ctx, data.Kompositie{Naam: "Requiem", KomponistID: mozart}))

	pairs, err := d.KompositiePairs(ctx, f.komponist)
	require.NoError(t, err)
	assert.Equal(t, []data.Pair{{ID: f.kompositie, Label: "Symfonie nr. 5"}}, pairs)

	pairs, err = d.KompositiePairs(ctx, -1)
	require.NoError(t, err)
	assert.Len(t, pairs, 2)

	komponisten, err := d.KomponistPairs(ctx)
	require.NoError(t, err)
	require.Len(t, komponisten, 2)
	assert.Equal(t, "Beethoven Ludwig van", komponisten[0].Label)
}

func TestLastUitvoering(t *testing.T) {
	d := open(t)
	ctx := context.Background()
	f := seed(t, d)

	next, err := d.LastUitvoering(ctx, f.cd)
	require.NoError(t, err)
	assert.Equal(t, data.UitvoeringDefaults{
		Volgnummer:    2,
		CdID:          f.cd,
		KomponistID:   f.komponist,
		KompositieID:  f.kompositie,
		UitvoerdersID: f.uitvoerders,
		DirigentID:    f.dirigent,
	}, *next)

	empty := mustOK(t)(d.UpdateCd(ctx, data.Cd{Titel: "Leeg"}))
	next, err = d.LastUitvoering(ctx, empty)
	require.NoError(t, err)
	assert.Equal(t, int64(1), next.Volgnummer)
	assert.Equal(t, int64(-1), next.KompositieID)

	current, err := d.UitvoeringDefaults(ctx, f.uitvoering)
	require.NoError(t, err)
	assert.Equal(t, int64(1), current.Volgnummer)
}

func TestGetNotFound(t *testing.T) {
	d := open(t)
	ctx := context.Background()

	_, err := d.GetCd(ctx, 1)
	assert.ErrorIs(t, err, db.ErrNotFound)
	_, err = d.GetKomponist(ctx, 1)
	assert.ErrorIs(t, err, db.ErrNotFound)
	_, err = d.GetKompositieListing(ctx, 1)
	assert.ErrorIs(t, err, db.ErrNotFound)
}

func TestUsers(t *testing.T) {
	d := open(t)
	ctx := context.Background()

	user, err := d.RegisterUser(ctx, "christien", "christien")
	require.NoError(t, err)
	assert.NotZero(t, user.ID)

	_, err = d.RegisterUser(ctx, "christien", "other")
	assert.ErrorIs(t, err, db.ErrUserExists)

	_, err = d.RegisterUser(ctx, "much-too-long-username", "x")
	assert.Error(t, err)

	got, err := d.Authenticate(ctx, "christien", "christien")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = d.Authenticate(ctx, "christien", "wrong")
	assert.ErrorIs(t, err, db.ErrBadCredentials)
	_, err = d.Authenticate(ctx, "nobody", "christien")
	assert.ErrorIs(t, err, db.ErrBadCredentials)

	require.NoError(t, d.UpdatePassword(ctx, user.ID, "nieuw"))
	_, err = d.Authenticate(ctx, "christien", "christien")
	assert.ErrorIs(t, err, db.ErrBadCredentials)
	_, err = d.Authenticate(ctx, "christien", "nieuw")
	assert.NoError(t, err)
}

func TestHistory(t *testing.T) {
	d := open(t)
	ctx := context.Background()

	require.NoError(t, d.AddHistory(ctx, data.KindCd, 1, "Eerste"))
	require.NoError(t, d.AddHistory(ctx, data.KindKomponist, 2, "Tweede"))
	require.NoError(t, d.AddHistory(ctx, data.KindDirigent, 3, "Derde"))

	recent, err := d.RecentHistory(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "Derde", recent[0].Title)
	assert.Equal(t, "Tweede", recent[1].Title)
	assert.Equal(t, "/komponist/2", recent[1].Path())
}

func TestCounts(t *testing.T) {
	d := open(t)
	ctx := context.Background()
	seed(t, d)

	counts, err := d.Counts(ctx, "cd", "uitvoering")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"cd": 1, "uitvoering": 1}, counts)

	all, err := d.Counts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, len(db.Tables))

}
