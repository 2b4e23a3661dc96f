package server

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/amonks/klamu/data"
	"github.com/amonks/klamu/db"
)

const minPasswordLength = 4

type loginPage struct {
	Action   string
	Password bool
	Next     string
	Username string
}

func (s *Server) loginForm(w http.ResponseWriter, r *http.Request) error {
	return s.render(w, r, "login", page{
		Hdr:  "Login",
		Data: loginPage{Action: "/login", Next: r.URL.Query().Get("next")},
	})
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	username := strings.TrimSpace(r.PostFormValue("username"))
	next := localPath(r.URL.Query().Get("next"))

	user, err := s.db.Authenticate(r.Context(), username, r.PostFormValue("password"))
	if errors.Is(err, db.ErrBadCredentials) {
		s.log.WithField("user", username).Warn("login failed")
		s.flash(r, "Login not successful", data.StatusError)
		back := "/login"
		if next != "/" {
			back += "?next=" + url.QueryEscape(next)
		}
		return s.redirect(w, r, back)
	} else if err != nil {
		return err
	}

	sess := s.session(r)
	sess.Values[keyUser] = user.ID
	sess.Values[keyRemember] = r.PostFormValue("remember_me") != ""
	s.log.WithField("user", user.Username).Info("logged in")
	return s.redirect(w, r, next)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) error {
	sess := s.session(r)
	delete(sess.Values, keyUser)
	delete(sess.Values, keyRemember)
	s.setDetours(r, nil)
	return s.redirect(w, r, "/")
}

func (s *Server) pwdUpdateForm(w http.ResponseWriter, r *http.Request) error {
	return s.render(w, r, "login", page{
		Hdr:  "Change Password",
		Data: loginPage{Action: "/pwdupdate", Password: true},
	})
}

func (s *Server) pwdUpdate(w http.ResponseWriter, r *http.Request) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	id, _ := s.userID(r)
	current, next, confirm := r.PostFormValue("current_pwd"), r.PostFormValue("new_pwd"), r.PostFormValue("confirm_pwd")

	switch {
	case len(next) < minPasswordLength:
		s.flash(r, "Minimum length is 4", data.StatusError)
		return s.redirect(w, r, "/pwdupdate")
	case next != confirm:
		s.flash(r, "Passwords must match", data.StatusError)
		return s.redirect(w, r, "/pwdupdate")
	}

	user, err := s.db.GetUser(r.Context(), id)
	if err != nil {
		return err
	}
	if !user.VerifyPassword(current) {
		s.flash(r, "Password update not successful", data.StatusError)
		return s.redirect(w, r, "/pwdupdate")
	}
	if err := s.db.UpdatePassword(r.Context(), id, next); err != nil {
		return err
	}
	s.flash(r, "Password changed!", data.StatusSuccess)
	return s.redirect(w, r, "/")
}

// localPath keeps redirects on this site.
func localPath(next string) string {
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return "/"
	}
	return next
}
