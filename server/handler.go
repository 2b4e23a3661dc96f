package server

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/amonks/klamu/db"
	"github.com/sirupsen/logrus"
)

// A handlerFunc is an http handler that may fail. handle turns its errors
// into the 404 or 500 page.
type handlerFunc func(w http.ResponseWriter, r *http.Request) error

var errNotFound = errors.New("page not found")

func (s *Server) handle(h handlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		switch {
		case err == nil:
		case errors.Is(err, errNotFound), errors.Is(err, db.ErrNotFound):
			s.log.WithField("path", r.URL.Path).WithError(err).Debug("not found")
			if err := s.renderStatus(w, r, http.StatusNotFound, "404", page{Hdr: "Pagina niet gevonden"}); err != nil {
				s.log.WithError(err).Error("error rendering 404 page")
			}
		default:
			s.log.WithField("path", r.URL.Path).WithError(err).Error("request failed")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		}
	})
}

// auth is handle for pages that need a logged-in user. Anonymous visitors
// are sent to the login page, which brings them back afterwards.
func (s *Server) auth(h handlerFunc) http.Handler {
	return s.handle(func(w http.ResponseWriter, r *http.Request) error {
		if _, ok := s.userID(r); !ok {
			next := r.URL.Path
			if r.Method != http.MethodGet {
				next = "/"
			}
			http.Redirect(w, r, "/login?next="+url.QueryEscape(next), http.StatusSeeOther)
			return nil
		}
		return h(w, r)
	})
}

// pathID parses the named path value as a row id. Anything else is a page
// that does not exist.
func pathID(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, errNotFound
	}
	return id, nil
}

// optionalID is pathID for routes that also exist without the id; it
// returns 0 then.
func optionalID(r *http.Request, name string) (int64, error) {
	if r.PathValue(name) == "" {
		return 0, nil
	}
	return pathID(r, name)
}

// formID parses a select field. Missing or unparsable values are -1, the
// "(none)" option.
func formID(r *http.Request, name string) int64 {
	id, err := strconv.ParseInt(r.PostFormValue(name), 10, 64)
	if err != nil {
		return -1
	}
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   rec.status,
			"duration": time.Since(start),
		}).Info("request")
	})
}
