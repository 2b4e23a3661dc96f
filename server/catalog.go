package server

import (
	"context"
	"net/http"

	"github.com/amonks/klamu/data"
)

const recentHistory = 15

func (s *Server) index(w http.ResponseWriter, r *http.Request) error {
	history, err := s.db.RecentHistory(r.Context(), recentHistory)
	if err != nil {
		return err
	}
	return s.render(w, r, "index", page{Hdr: "Klassieke Muziek", Data: history})
}

type cdsPage struct {
	Uitgever *data.Uitgever
	Cds      []data.CdListing
}

func (s *Server) showCds(w http.ResponseWriter, r *http.Request) error {
	uitgeverID, err := optionalID(r, "nid")
	if err != nil {
		return err
	}
	var p cdsPage
	hdr := "Overzicht CDs"
	if uitgeverID > 0 {
		if p.Uitgever, err = s.db.GetUitgever(r.Context(), uitgeverID); err != nil {
			return err
		}
		hdr = "CDs van " + p.Uitgever.Naam
	}
	if p.Cds, err = s.db.ListCds(r.Context(), uitgeverID); err != nil {
		return err
	}
	return s.render(w, r, "cds", page{Hdr: hdr, Data: p})
}

type cdPage struct {
	Cd           *data.CdListing
	Uitvoeringen []data.UitvoeringListing
}

func (s *Server) showCd(w http.ResponseWriter, r *http.Request) error {
	id, err := pathID(r, "nid")
	if err != nil {
		return err
	}
	cd, err := s.db.GetCd(r.Context(), id)
	if err != nil {
		return err
	}
	uitvoeringen, err := s.db.CdUitvoeringen(r.Context(), id)
	if err != nil {
		return err
	}
	if err := s.db.AddHistory(r.Context(), data.KindCd, id, cd.Titel); err != nil {
		return err
	}
	return s.render(w, r, "cd", page{Hdr: cd.Titel, Data: cdPage{Cd: cd, Uitvoeringen: uitvoeringen}})
}

func (s *Server) showUitgevers(w http.ResponseWriter, r *http.Request) error {
	uitgevers, err := s.db.ListUitgevers(r.Context())
	if err != nil {
		return err
	}
	return s.render(w, r, "uitgevers", page{Hdr: "Overzicht Uitgevers", Data: uitgevers})
}

func (s *Server) showDirigenten(w http.ResponseWriter, r *http.Request) error {
	dirigenten, err := s.db.ListDirigenten(r.Context())
	if err != nil {
		return err
	}
	return s.render(w, r, "dirigenten", page{Hdr: "Overzicht Dirigenten", Data: dirigenten})
}

func (s *Server) showKomponisten(w http.ResponseWriter, r *http.Request) error {
	komponisten, err := s.db.ListKomponisten(r.Context())
	if err != nil {
		return err
	}
	return s.render(w, r, "komponisten", page{Hdr: "Overzicht Komponisten", Data: komponisten})
}

func (s *Server) showKomposities(w http.ResponseWriter, r *http.Request) error {
	komposities, err := s.db.ListKomposities(r.Context())
	if err != nil {
		return err
	}
	return s.render(w, r, "komposities", page{Hdr: "Overzicht Komposities", Data: komposities})
}

func (s *Server) showUitvoerdersList(w http.ResponseWriter, r *http.Request) error {
	uitvoerders, err := s.db.ListUitvoerders(r.Context())
	if err != nil {
		return err
	}
	return s.render(w, r, "uitvoerderslist", page{Hdr: "Overzicht Uitvoerders", Data: uitvoerders})
}

func (s *Server) showUitvoeringen(w http.ResponseWriter, r *http.Request) error {
	uitvoeringen, err := s.db.ListUitvoeringen(r.Context())
	if err != nil {
		return err
	}
	return s.render(w, r, "uitvoeringen", page{Hdr: "Overzicht Uitvoeringen", Data: uitvoeringen})
}

// A node is a catalog entry whose detail page lists its performances.
type node struct {
	kind  string
	title func(ctx context.Context, id int64) (string, error)
	list  func(ctx context.Context, id int64) ([]data.UitvoeringListing, error)
}

// showNode renders the performances of one node and records the visit.
func (s *Server) showNode(w http.ResponseWriter, r *http.Request, n node) error {
	id, err := pathID(r, "nid")
	if err != nil {
		return err
	}
	title, err := n.title(r.Context(), id)
	if err != nil {
		return err
	}
	uitvoeringen, err := n.list(r.Context(), id)
	if err != nil {
		return err
	}
	if err := s.db.AddHistory(r.Context(), n.kind, id, title); err != nil {
		return err
	}
	return s.render(w, r, "uitvoeringen", page{Hdr: title, Data: uitvoeringen})
}

func (s *Server) showDirigent(w http.ResponseWriter, r *http.Request) error {
	return s.showNode(w, r, node{
		kind: data.KindDirigent,
		title: func(ctx context.Context, id int64) (string, error) {
			d, err := s.db.GetDirigent(ctx, id)
			if err != nil {
				return "", err
			}
			return d.FullName(), nil
		},
		list: s.db.DirigentUitvoeringen,
	})
}

func (s *Server) showKomponist(w http.ResponseWriter, r *http.Request) error {
	return s.showNode(w, r, node{
		kind: data.KindKomponist,
		title: func(ctx context.Context, id int64) (string, error) {
			k, err := s.db.GetKomponist(ctx, id)
			if err != nil {
				return "", err
			}
			return k.FullName(), nil
		},
		list: s.db.KomponistUitvoeringen,
	})
}

func (s *Server) showKompositie(w http.ResponseWriter, r *http.Request) error {
	return s.showNode(w, r, node{
		kind: data.KindKompositie,
		title: func(ctx context.Context, id int64) (string, error) {
			k, err := s.db.GetKompositieListing(ctx, id)
			if err != nil {
				return "", err
			}
			return k.Naam + " - " + k.KomponistFullName(), nil
		},
		list: s.db.KompositieUitvoeringen,
	})
}

func (s *Server) showUitvoerders(w http.ResponseWriter, r *http.Request) error {
	return s.showNode(w, r, node{
		kind: data.KindUitvoerders,
		title: func(ctx context.Context, id int64) (string, error) {
			u, err := s.db.GetUitvoerders(ctx, id)
			if err != nil {
				return "", err
			}
			return u.Naam, nil
		},
		list: s.db.UitvoerdersUitvoeringen,
	})
}
