package server

import (
	"context"
	"database/sql"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/amonks/klamu/data"
)

// A kind is one editable kind of row and the pages that show it.
type kind struct {
	name   string
	title  string
	list   string
	detail string
}

var (
	kindCd          = kind{name: "cd", title: "CD", list: "/cds", detail: "/cd/"}
	kindUitgever    = kind{name: "uitgever", title: "Uitgever", list: "/uitgevers", detail: "/cds/"}
	kindDirigent    = kind{name: "dirigent", title: "Dirigent", list: "/dirigenten", detail: "/dirigent/"}
	kindKomponist   = kind{name: "komponist", title: "Komponist", list: "/komponisten", detail: "/komponist/"}
	kindKompositie  = kind{name: "kompositie", title: "Kompositie", list: "/komposities", detail: "/kompositie/"}
	kindUitvoerders = kind{name: "uitvoerders", title: "Uitvoerders", list: "/uitvoerders", detail: "/uitvoerders/"}
)

func (k kind) detailURL(id int64) string { return k.detail + strconv.FormatInt(id, 10) }

func (k kind) formURL(id int64) string {
	if id > 0 {
		return "/" + k.name + "/update/" + strconv.FormatInt(id, 10)
	}
	return "/" + k.name + "/update"
}

func (k kind) deleteURL(id int64) string {
	return "/" + k.name + "/delete/" + strconv.FormatInt(id, 10)
}

// A formPage is the Data of every edit form.
type formPage struct {
	Action  string
	Delete  string
	Values  url.Values
	Options map[string][]data.Pair
}

type option struct {
	data.Pair
	Selected bool
}

// Select returns the options of the named select field, marking the one
// its value picks.
func (p formPage) Select(name string) []option {
	value := p.Values.Get(name)
	opts := make([]option, len(p.Options[name]))
	for i, pair := range p.Options[name] {
		opts[i] = option{Pair: pair, Selected: itoa(pair.ID) == value}
	}
	return opts
}

// A retry is a form whose save failed, kept so that it shows again with
// what the user entered.
type retry struct {
	Path   string
	Values url.Values
}

// failed flashes a failed Result and sends the user back to the form,
// which shows the posted values again.
func (s *Server) failed(w http.ResponseWriter, r *http.Request, res data.Result) error {
	s.flashResult(r, res)
	values := url.Values{}
	for k, v := range r.PostForm {
		if k != "submit" {
			values[k] = v
		}
	}
	s.session(r).Values[keyRetry] = retry{Path: r.URL.Path, Values: values}
	return s.redirect(w, r, r.URL.Path)
}

// keptValues returns the values the form at r's path had when the user
// last left it, by a failed save or by a detour.
func (s *Server) keptValues(r *http.Request) (url.Values, bool) {
	resumed, ok := s.resumeDetour(r)
	sess := s.session(r)
	if kept, found := sess.Values[keyRetry].(retry); found {
		delete(sess.Values, keyRetry)
		if kept.Path == r.URL.Path {
			return kept.Values, true
		}
	}
	return resumed, ok
}

type loader func(ctx context.Context, id int64) (url.Values, error)

type optioner func(ctx context.Context, values url.Values) (map[string][]data.Pair, error)

// showForm renders the form of a kind. Its values are the kept ones, or
// else come from load, for existing rows.
func (s *Server) showForm(w http.ResponseWriter, r *http.Request, k kind, load loader, options optioner) error {
	id, err := optionalID(r, "nid")
	if err != nil {
		return err
	}
	values, kept := s.keptValues(r)
	if !kept {
		values = url.Values{}
		if id > 0 {
			if values, err = load(r.Context(), id); err != nil {
				return err
			}
		}
	}

	p := formPage{Action: k.formURL(id), Values: values}
	if options != nil {
		if p.Options, err = options(r.Context(), values); err != nil {
			return err
		}
	}
	hdr := k.title + " toevoegen"
	if id > 0 {
		p.Delete = k.deleteURL(id)
		hdr = k.title + " aanpassen"
	}
	return s.render(w, r, k.name+"_form", page{Hdr: hdr, Data: p})
}

// saved reports the outcome of a save. Failures go back to the form;
// otherwise the user returns to a detour waiting for this kind, or sees
// the saved row.
func (s *Server) saved(w http.ResponseWriter, r *http.Request, k kind, res data.Result, extra url.Values) error {
	if !res.OK() {
		return s.failed(w, r, res)
	}
	s.flashResult(r, res)
	if back, ok := s.finishDetour(r, k.name, res.ID, extra); ok {
		return s.redirect(w, r, back)
	}
	return s.redirect(w, r, k.detailURL(res.ID))
}

// deleted reports the outcome of a delete: the list after a deletion, the
// row when it was kept.
func (s *Server) deleted(w http.ResponseWriter, r *http.Request, k kind, res data.Result) error {
	s.flashResult(r, res)
	if res.OK() || res.ID == data.NoID {
		return s.redirect(w, r, k.list)
	}
	return s.redirect(w, r, k.detailURL(res.ID))
}

func itoa(id int64) string { return strconv.FormatInt(id, 10) }

// withNone puts the "(none)" option, id -1, in front of pairs.
func withNone(label string, pairs []data.Pair) []data.Pair {
	return append([]data.Pair{{ID: data.NoID, Label: label}}, pairs...)
}

func formText(r *http.Request, name string) string {
	return strings.TrimSpace(r.PostFormValue(name))
}

// uitgever

func (s *Server) uitgeverForm(w http.ResponseWriter, r *http.Request) error {
	return s.showForm(w, r, kindUitgever, func(ctx context.Context, id int64) (url.Values, error) {
		u, err := s.db.GetUitgever(ctx, id)
		if err != nil {
			return nil, err
		}
		return url.Values{"naam": {u.Naam}}, nil
	}, nil)
}

func (s *Server) uitgeverSave(w http.ResponseWriter, r *http.Request) error {
	id, err := optionalID(r, "nid")
	if err != nil {
		return err
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	res, err := s.db.UpdateUitgever(r.Context(), data.Uitgever{ID: id, Naam: formText(r, "naam")})
	if err != nil {
		return err
	}
	return s.saved(w, r, kindUitgever, res, nil)
}

func (s *Server) uitgeverDelete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "nid")
	if err != nil {
		return err
	}
	res, err := s.db.DeleteUitgever(r.Context(), id)
	if err != nil {
		return err
	}
	return s.deleted(w, r, kindUitgever, res)
}

// uitvoerders

func (s *Server) uitvoerdersForm(w http.ResponseWriter, r *http.Request) error {
	return s.showForm(w, r, kindUitvoerders, func(ctx context.Context, id int64) (url.Values, error) {
		u, err := s.db.GetUitvoerders(ctx, id)
		if err != nil {
			return nil, err
		}
		return url.Values{"naam": {u.Naam}}, nil
	}, nil)
}

func (s *Server) uitvoerdersSave(w http.ResponseWriter, r *http.Request) error {
	id, err := optionalID(r, "nid")
	if err != nil {
		return err
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	res, err := s.db.UpdateUitvoerders(r.Context(), data.Uitvoerders{ID: id, Naam: formText(r, "naam")})
	if err != nil {
		return err
	}
	return s.saved(w, r, kindUitvoerders, res, nil)
}

func (s *Server) uitvoerdersDelete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "nid")
	if err != nil {
		return err
	}
	res, err := s.db.DeleteUitvoerders(r.Context(), id)
	if err != nil {
		return err
	}
	return s.deleted(w, r, kindUitvoerders, res)
}

// dirigent

func (s *Server) dirigentForm(w http.ResponseWriter, r *http.Request) error {
	return s.showForm(w, r, kindDirigent, func(ctx context.Context, id int64) (url.Values, error) {
		d, err := s.db.GetDirigent(ctx, id)
		if err != nil {
			return nil, err
		}
		return url.Values{"naam": {d.Naam}, "voornaam": {d.Voornaam}}, nil
	}, nil)
}

func (s *Server) dirigentSave(w http.ResponseWriter, r *http.Request) error {
	id, err := optionalID(r, "nid")
	if err != nil {
		return err
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	res, err := s.db.UpdateDirigent(r.Context(), data.Dirigent{
		ID:       id,
		Naam:     formText(r, "naam"),
		Voornaam: formText(r, "voornaam"),
	})
	if err != nil {
		return err
	}
	return s.saved(w, r, kindDirigent, res, nil)
}

func (s *Server) dirigentDelete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "nid")
	if err != nil {
		return err
	}
	res, err := s.db.DeleteDirigent(r.Context(), id)
	if err != nil {
		return err
	}
	return s.deleted(w, r, kindDirigent, res)
}

// komponist

func (s *Server) komponistForm(w http.ResponseWriter, r *http.Request) error {
	return s.showForm(w, r, kindKomponist, func(ctx context.Context, id int64) (url.Values, error) {
		k, err := s.db.GetKomponist(ctx, id)
		if err != nil {
			return nil, err
		}
		return url.Values{"naam": {k.Naam}, "voornaam": {k.Voornaam}}, nil
	}, nil)
}

func (s *Server) komponistSave(w http.ResponseWriter, r *http.Request) error {
	id, err := optionalID(r, "nid")
	if err != nil {
		return err
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	res, err := s.db.UpdateKomponist(r.Context(), data.Komponist{
		ID:       id,
		Naam:     formText(r, "naam"),
		Voornaam: formText(r, "voornaam"),
	})
	if err != nil {
		return err
	}
	return s.saved(w, r, kindKomponist, res, nil)
}

func (s *Server) komponistDelete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "nid")
	if err != nil {
		return err
	}
	res, err := s.db.DeleteKomponist(r.Context(), id)
	if err != nil {
		return err
	}
	return s.deleted(w, r, kindKomponist, res)
}

// cd

func (s *Server) cdForm(w http.ResponseWriter, r *http.Request) error {
	return s.showForm(w, r, kindCd, func(ctx context.Context, id int64) (url.Values, error) {
		cd, err := s.db.GetCd(ctx, id)
		if err != nil {
			return nil, err
		}
		uitgever := data.NoID
		if cd.UitgeverID.Valid {
			uitgever = cd.UitgeverID.Int64
		}
		return url.Values{
			"titel":         {cd.Titel},
			"identificatie": {cd.Identificatie.String},
			"uitgever":      {itoa(uitgever)},
		}, nil
	}, func(ctx context.Context, _ url.Values) (map[string][]data.Pair, error) {
		uitgevers, err := s.db.UitgeverPairs(ctx)
		if err != nil {
			return nil, err
		}
		return map[string][]data.Pair{"uitgever": withNone("(geen uitgever)", uitgevers)}, nil
	})
}

func (s *Server) cdSave(w http.ResponseWriter, r *http.Request) error {
	id, err := optionalID(r, "nid")
	if err != nil {
		return err
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	if started, err := s.startDetour(w, r, kindCd.name,
		detourButton{Name: "uitgever_mod", Target: kindUitgever.name, Field: "uitgever"},
	); started || err != nil {
		return err
	}
	res, err := s.db.UpdateCd(r.Context(), data.Cd{
		ID:            id,
		Titel:         formText(r, "titel"),
		Identificatie: sql.NullString{String: formText(r, "identificatie"), Valid: true},
		UitgeverID:    sql.NullInt64{Int64: formID(r, "uitgever"), Valid: true},
	})
	if err != nil {
		return err
	}
	return s.saved(w, r, kindCd, res, nil)
}

func (s *Server) cdDelete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "nid")
	if err != nil {
		return err
	}
	res, err := s.db.DeleteCd(r.Context(), id)
	if err != nil {
		return err
	}
	return s.deleted(w, r, kindCd, res)
}

// kompositie

func (s *Server) kompositieForm(w http.ResponseWriter, r *http.Request) error {
	return s.showForm(w, r, kindKompositie, func(ctx context.Context, id int64) (url.Values, error) {
		k, err := s.db.GetKompositie(ctx, id)
		if err != nil {
			return nil, err
		}
		return url.Values{"naam": {k.Naam}, "komponist": {itoa(k.KomponistID)}}, nil
	}, func(ctx context.Context, _ url.Values) (map[string][]data.Pair, error) {
		komponisten, err := s.db.KomponistPairs(ctx)
		if err != nil {
			return nil, err
		}
		return map[string][]data.Pair{"komponist": withNone("("+data.Anoniem+")", komponisten)}, nil
	})
}

func (s *Server) kompositieSave(w http.ResponseWriter, r *http.Request) error {
	id, err := optionalID(r, "nid")
	if err != nil {
		return err
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	if started, err := s.startDetour(w, r, kindKompositie.name,
		detourButton{Name: "komponist_mod", Target: kindKomponist.name, Field: "komponist"},
	); started || err != nil {
		return err
	}
	res, err := s.db.UpdateKompositie(r.Context(), data.Kompositie{
		ID:          id,
		Naam:        formText(r, "naam"),
		KomponistID: formID(r, "komponist"),
	})
	if err != nil {
		return err
	}

	// a form waiting for this kompositie also gets its komponist, which
	// may be the Anoniem one
	var extra url.Values
	if res.OK() {
		k, err := s.db.GetKompositie(r.Context(), res.ID)
		if err != nil {
			return err
		}
		extra = url.Values{"komponist": {itoa(k.KomponistID)}}
	}
	return s.saved(w, r, kindKompositie, res, extra)
}

func (s *Server) kompositieDelete(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "nid")
	if err != nil {
		return err
	}
	res, err := s.db.DeleteKompositie(r.Context(), id)
	if err != nil {
		return err
	}
	return s.deleted(w, r, kindKompositie, res)
}
