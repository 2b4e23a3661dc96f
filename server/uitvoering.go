package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/amonks/klamu/data"
)

// The buttons that leave the uitvoering form to add what it is missing.
var uitvoeringDetours = []detourButton{
	{Name: "komponist_mod", Target: kindKomponist.name, Field: "komponist"},
	{Name: "kompositie_mod", Target: kindKompositie.name, Field: "kompositie"},
	{Name: "uitvoerders_mod", Target: kindUitvoerders.name, Field: "uitvoerders"},
	{Name: "dirigent_mod", Target: kindDirigent.name, Field: "dirigent"},
}

type uitvoeringPage struct {
	formPage
	Cd *data.CdListing
}

func defaultValues(d *data.UitvoeringDefaults) url.Values {
	return url.Values{
		"volgnummer":  {itoa(d.Volgnummer)},
		"cd":          {itoa(d.CdID)},
		"komponist":   {itoa(d.KomponistID)},
		"kompositie":  {itoa(d.KompositieID)},
		"uitvoerders": {itoa(d.UitvoerdersID)},
		"dirigent":    {itoa(d.DirigentID)},
	}
}

// uitvoeringOptions lists the select options. Komposities are those of the
// chosen komponist; the page reloads them when another one is chosen.
func (s *Server) uitvoeringOptions(ctx context.Context, values url.Values) (map[string][]data.Pair, error) {
	komponist, _ := strconv.ParseInt(values.Get("komponist"), 10, 64)

	komponisten, err := s.db.KomponistPairs(ctx)
	if err != nil {
		return nil, err
	}
	komposities, err := s.db.KompositiePairs(ctx, komponist)
	if err != nil {
		return nil, err
	}
	uitvoerders, err := s.db.UitvoerdersPairs(ctx)
	if err != nil {
		return nil, err
	}
	dirigenten, err := s.db.DirigentPairs(ctx)
	if err != nil {
		return nil, err
	}
	return map[string][]data.Pair{
		"komponist":   withNone("(kies komponist)", komponisten),
		"kompositie":  withNone("(kies kompositie)", komposities),
		"uitvoerders": withNone("(geen uitvoerders)", uitvoerders),
		"dirigent":    withNone("(geen dirigent)", dirigenten),
	}, nil
}

// uitvoeringAddForm starts a new performance on a CD from the CD's last
// track.
func (s *Server) uitvoeringAddForm(w http.ResponseWriter, r *http.Request) error {
	cdID, err := pathID(r, "cd")
	if err != nil {
		return err
	}
	cd, err := s.db.GetCd(r.Context(), cdID)
	if err != nil {
		return err
	}
	values, kept := s.keptValues(r)
	if !kept {
		defaults, err := s.db.LastUitvoering(r.Context(), cdID)
		if err != nil {
			return err
		}
		values = defaultValues(defaults)
	}
	return s.renderUitvoering(w, r, cd, values, r.URL.Path, "")
}

func (s *Server) uitvoeringForm(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "nid")
	if err != nil {
		return err
	}
	values, kept := s.keptValues(r)
	if !kept {
		defaults, err := s.db.UitvoeringDefaults(r.Context(), id)
		if err != nil {
			return err
		}
		values = defaultValues(defaults)
	}
	cdID, _ := strconv.ParseInt(values.Get("cd"), 10, 64)
	cd, err := s.db.GetCd(r.Context(), cdID)
	if err != nil {
		return err
	}
	return s.renderUitvoering(w, r, cd, values, r.URL.Path, "/uitvoering/delete/"+itoa(id))
}

func (s *Server) renderUitvoering(w http.ResponseWriter, r *http.Request, cd *data.CdListing, values url.Values, action, del string) error {
	options, err := s.uitvoeringOptions(r.Context(), values)
	if err != nil {
		return err
	}
	return s.render(w, r, "uitvoering_form", page{
		Hdr: "Uitvoering op " + cd.Titel,
		Data: uitvoeringPage{
			formPage: formPage{Action: action, Delete: del, Values: values, Options: options},
			Cd:       cd,
		},
	})
}

// uitvoeringSave serves both the add and the update form.
func (s *Server) uitvoeringSave(w http.ResponseWriter, r *http.Request) error {
	id, err := optionalID(r, "nid")
	if err != nil {
		return err
	}
	if err := r.ParseForm(); err != nil {
		return err
	}

	var cdID int64
	if id == 0 {
		if cdID, err = pathID(r, "cd"); err != nil {
			return err
		}
	} else {
		cdID = formID(r, "cd")
	}
	if _, err := s.db.GetCd(r.Context(), cdID); err != nil {
		return err
	}

	if started, err := s.startDetour(w, r, "uitvoering", uitvoeringDetours...); started || err != nil {
		return err
	}

	var volgnummer int64
	if v := formText(r, "volgnummer"); v != "" {
		if volgnummer, err = strconv.ParseInt(v, 10, 64); err != nil {
			return s.failed(w, r, data.Failure(data.NoID, fmt.Sprintf("Volgnummer '%s' is geen getal.", v)))
		}
	}
	res, err := s.db.UpdateUitvoering(r.Context(), data.Uitvoering{
		ID:            id,
		Volgnummer:    volgnummer,
		CdID:          cdID,
		KompositieID:  formID(r, "kompositie"),
		UitvoerdersID: sql.NullInt64{Int64: formID(r, "uitvoerders"), Valid: true},
		DirigentID:    sql.NullInt64{Int64: formID(r, "dirigent"), Valid: true},
	})
	if err != nil {
		return err
	}
	if !res.OK() {
		return s.failed(w, r, res)
	}
	s.flashResult(r, res)
	return s.redirect(w, r, kindCd.detailURL(cdID))
}

func (s *Server) uitvoeringDelete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "nid")
	if err != nil {
		return err
	}
	u, err := s.db.GetUitvoering(r.Context(), id)
	if err != nil {
		return err
	}
	res, err := s.db.DeleteUitvoering(r.Context(), id)
	if err != nil {
		return err
	}
	s.flashResult(r, res)
	return s.redirect(w, r, kindCd.detailURL(u.CdID))
}
