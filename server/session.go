package server

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/amonks/klamu/data"
	"github.com/gorilla/sessions"
)

const (
	sessionName = "klamu"

	keyUser     = "user"
	keyRemember = "remember"
	keyDetours  = "detours"
	keyRetry    = "retry"

	// rememberFor is how long a "remember me" login lasts.
	rememberFor = 30 * 24 * 60 * 60
)

// A flash is a one-time message shown on the next rendered page.
type flash struct {
	Msg    string
	Status string
}

func init() {
	gob.Register(flash{})
	gob.Register([]detour{})
	gob.Register(retry{})
}

func newStore(opts Options) *sessions.CookieStore {
	keys := [][]byte{opts.HashKey}
	if len(opts.BlockKey) > 0 {
		keys = append(keys, opts.BlockKey)
	}
	store := sessions.NewCookieStore(keys...)
	store.Options = &sessions.Options{
		Path:     "/",
		HttpOnly: true,
		Secure:   opts.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// session returns the request's session. A cookie that no longer decodes,
// for instance after the keys changed, yields a fresh session.
func (s *Server) session(r *http.Request) *sessions.Session {
	sess, err := s.store.Get(r, sessionName)
	if err != nil {
		s.log.WithError(err).Debug("discarding session cookie")
	}
	return sess
}

// save writes the session cookie. Sessions of users who asked to be
// remembered outlive the browser.
func (s *Server) save(w http.ResponseWriter, r *http.Request, sess *sessions.Session) error {
	sess.Options.MaxAge = 0
	if remember, _ := sess.Values[keyRemember].(bool); remember {
		sess.Options.MaxAge = rememberFor
	}
	if err := sess.Save(r, w); err != nil {
		return fmt.Errorf("error saving session: %w", err)
	}
	return nil
}

func (s *Server) userID(r *http.Request) (int64, bool) {
	id, ok := s.session(r).Values[keyUser].(int64)
	return id, ok && id > 0
}

func (s *Server) flash(r *http.Request, msg, status string) {
	s.session(r).AddFlash(flash{Msg: msg, Status: status})
}

// flashResult queues a Result's message.
func (s *Server) flashResult(r *http.Request, res data.Result) {
	s.flash(r, res.Msg, res.Status)
}

// flashes takes the queued messages off the session.
func (s *Server) flashes(r *http.Request) []flash {
	var out []flash
	for _, f := range s.session(r).Flashes() {
		if f, ok := f.(flash); ok {
			out = append(out, f)
		}
	}
	return out
}

// redirect saves the session and sends the browser to url.
func (s *Server) redirect(w http.ResponseWriter, r *http.Request, url string) error {
	if err := s.save(w, r, s.session(r)); err != nil {
		return err
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
	return nil
}
