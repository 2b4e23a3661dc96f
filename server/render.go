package server

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
	"time"
)

//go:embed templates
var templateFS embed.FS

const layout = "templates/layout.html"

// pages holds one template set per page, each made of the layout and the
// page's own file.
type pages struct {
	sets map[string]*template.Template
}

var funcs = template.FuncMap{
	"datestamp":     datestamp,
	"datetimestamp": datetimestamp,
}

func datestamp(unix int64) string {
	return time.Unix(unix, 0).Format("2006-01-02")
}

func datetimestamp(unix int64) string {
	return time.Unix(unix, 0).Format("02/01/06 15:04:05")
}

func loadPages() (*pages, error) {
	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("error listing templates: %w", err)
	}
	p := &pages{sets: map[string]*template.Template{}}
	for _, file := range files {
		if file == layout {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		set, err := template.New(path.Base(layout)).Funcs(funcs).ParseFS(templateFS, layout, file)
		if err != nil {
			return nil, fmt.Errorf("error parsing template '%s': %w", file, err)
		}
		p.sets[name] = set
	}
	return p, nil
}

// A page is what every template gets: the header, the session state and
// the page's own Data.
type page struct {
	Hdr      string
	LoggedIn bool
	Flashes  []flash
	Data     any
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, name string, p page) error {
	return s.renderStatus(w, r, http.StatusOK, name, p)
}

func (s *Server) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, p page) error {
	set, ok := s.pages.sets[name]
	if !ok {
		return fmt.Errorf("no template '%s'", name)
	}
	_, p.LoggedIn = s.userID(r)
	p.Flashes = s.flashes(r)
	s.dropAbandoned(r)
	delete(s.session(r).Values, keyRetry)

	var buf bytes.Buffer
	if err := set.Execute(&buf, p); err != nil {
		return fmt.Errorf("error rendering '%s': %w", name, err)
	}
	if err := s.save(w, r, s.session(r)); err != nil {
		return err
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}
