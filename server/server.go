// Package server is klamu's web interface: server-rendered list, detail and
// form pages over the catalog database.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/amonks/klamu/db"
	"github.com/gorilla/sessions"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Options configure a Server's sessions.
type Options struct {
	// HashKey signs the session cookie and BlockKey encrypts it.
	HashKey  []byte
	BlockKey []byte
	// SecureCookies restricts the session cookie to https.
	SecureCookies bool
}

type Server struct {
	db    *db.DB
	log   logrus.FieldLogger
	store *sessions.CookieStore
	pages *pages
}

func New(db *db.DB, log logrus.FieldLogger, opts Options) (*Server, error) {
	if len(opts.HashKey) == 0 {
		return nil, fmt.Errorf("no session hash key")
	}
	pages, err := loadPages()
	if err != nil {
		return nil, err
	}
	return &Server{
		db:    db,
		log:   log,
		store: newStore(opts),
		pages: pages,
	}, nil
}

// Handler returns the server's routes, wrapped in request logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.Handle("GET /{$}", s.handle(s.index))
	mux.Handle("GET /index", s.handle(s.index))
	mux.Handle("GET /login", s.handle(s.loginForm))
	mux.Handle("POST /login", s.handle(s.login))
	mux.Handle("GET /logout", s.auth(s.logout))
	mux.Handle("GET /pwdupdate", s.auth(s.pwdUpdateForm))
	mux.Handle("POST /pwdupdate", s.auth(s.pwdUpdate))

	mux.Handle("GET /cds", s.handle(s.showCds))
	mux.Handle("GET /cds/{nid}", s.handle(s.showCds))
	mux.Handle("GET /cd/{nid}", s.handle(s.showCd))
	s.editable(mux, "cd", s.cdForm, s.cdSave, s.cdDelete)

	mux.Handle("GET /uitgevers", s.handle(s.showUitgevers))
	s.editable(mux, "uitgever", s.uitgeverForm, s.uitgeverSave, s.uitgeverDelete)

	mux.Handle("GET /dirigenten", s.handle(s.showDirigenten))
	mux.Handle("GET /dirigent/{nid}", s.handle(s.showDirigent))
	s.editable(mux, "dirigent", s.dirigentForm, s.dirigentSave, s.dirigentDelete)

	mux.Handle("GET /komponisten", s.handle(s.showKomponisten))
	mux.Handle("GET /komponist/{nid}", s.handle(s.showKomponist))
	s.editable(mux, "komponist", s.komponistForm, s.komponistSave, s.komponistDelete)

	mux.Handle("GET /komposities", s.handle(s.showKomposities))
	mux.Handle("GET /kompositie/{nid}", s.handle(s.showKompositie))
	s.editable(mux, "kompositie", s.kompositieForm, s.kompositieSave, s.kompositieDelete)

	mux.Handle("GET /uitvoerders", s.handle(s.showUitvoerdersList))
	mux.Handle("GET /uitvoerders/{nid}", s.handle(s.showUitvoerders))
	s.editable(mux, "uitvoerders", s.uitvoerdersForm, s.uitvoerdersSave, s.uitvoerdersDelete)

	mux.Handle("GET /uitvoeringen", s.handle(s.showUitvoeringen))
	mux.Handle("GET /uitvoering/add/{cd}", s.auth(s.uitvoeringAddForm))
	mux.Handle("POST /uitvoering/add/{cd}", s.auth(s.uitvoeringSave))
	mux.Handle("GET /uitvoering/update/{nid}", s.auth(s.uitvoeringForm))
	mux.Handle("POST /uitvoering/update/{nid}", s.auth(s.uitvoeringSave))
	mux.Handle("POST /uitvoering/delete/{nid}", s.auth(s.uitvoeringDelete))

	mux.Handle("GET /api/komposities/{komponist}", s.handle(s.apiKomposities))

	mux.Handle("/", s.handle(func(w http.ResponseWriter, r *http.Request) error {
		return errNotFound
	}))

	return s.logRequests(mux)
}

// editable registers the login-protected add, edit and delete routes of
// one kind of row.
func (s *Server) editable(mux *http.ServeMux, kind string, form, save, del handlerFunc) {
	mux.Handle("GET /"+kind+"/update", s.auth(form))
	mux.Handle("GET /"+kind+"/update/{nid}", s.auth(form))
	mux.Handle("POST /"+kind+"/update", s.auth(save))
	mux.Handle("POST /"+kind+"/update/{nid}", s.auth(save))
	mux.Handle("POST /"+kind+"/delete/{nid}", s.auth(del))
}

// Run serves on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("error listening on '%s': %w", addr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.log.WithField("addr", listener.Addr().String()).Info("listening")
		if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error serving: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down: %w", err)
		}
		s.log.Info("server stopped")
		return nil
	})
	return g.Wait()
}
