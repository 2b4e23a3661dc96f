package server

import (
	"net/http"
	"net/url"
	"strconv"
)

// A detour is a form the user left, halfway through, to add a row it
// needs. The stashed Values come back when the user returns to Return.
// Detours stack: a detour can itself be left for another one.
type detour struct {
	// Form is the kind of row the left form edits, Target the kind of
	// row being added for it and Field the form field that receives the
	// new row's id.
	Form   string
	Target string
	Field  string
	Return string
	Values url.Values
	// Done is set once the Target row was saved.
	Done bool
}

// maxDetours bounds the detour stack; the oldest detours go first.
const maxDetours = 4

// A detourButton is a submit button that leaves a form to add a Target.
type detourButton struct {
	Name   string
	Target string
	Field  string
}

func (s *Server) detours(r *http.Request) []detour {
	stack, _ := s.session(r).Values[keyDetours].([]detour)
	return stack
}

func (s *Server) setDetours(r *http.Request, stack []detour) {
	if len(stack) == 0 {
		delete(s.session(r).Values, keyDetours)
		return
	}
	s.session(r).Values[keyDetours] = stack
}

// startDetour checks whether one of buttons was pressed. If so, it stashes
// the posted form, sends the user to the Target's add form and reports
// true. The new detour only stacks on the others when r's form is the one
// the newest detour went to.
func (s *Server) startDetour(w http.ResponseWriter, r *http.Request, form string, buttons ...detourButton) (bool, error) {
	for _, b := range buttons {
		if _, pressed := r.PostForm[b.Name]; !pressed {
			continue
		}
		values := url.Values{}
		for k, v := range r.PostForm {
			if k == "submit" || k == b.Name {
				continue
			}
			values[k] = v
		}

		stack := s.detours(r)
		for i, d := range stack {
			if d.Return == r.URL.Path {
				stack = stack[:i]
				break
			}
		}
		if n := len(stack); n > 0 && (stack[n-1].Done || targetForm(stack[n-1]) != r.URL.Path) {
			stack = nil
		}
		if len(stack) >= maxDetours {
			stack = stack[len(stack)-maxDetours+1:]
		}
		s.setDetours(r, append(stack, detour{
			Form:   form,
			Target: b.Target,
			Field:  b.Field,
			Return: r.URL.Path,
			Values: values,
		}))
		s.log.WithField("from", r.URL.Path).WithField("target", b.Target).WithField("depth", len(stack)+1).Debug("detour")
		return true, s.redirect(w, r, targetForm(detour{Target: b.Target}))
	}
	return false, nil
}

// targetForm is the path of the add form a detour went to.
func targetForm(d detour) string { return "/" + d.Target + "/update" }

// finishDetour is called after a row of the given kind was added. When the
// newest detour waits for that kind, the new id goes into its stashed form
// along with any extra values, and finishDetour returns the url of the form
// to go back to.
func (s *Server) finishDetour(r *http.Request, kind string, id int64, extra url.Values) (string, bool) {
	stack := s.detours(r)
	if len(stack) == 0 {
		return "", false
	}
	top := &stack[len(stack)-1]
	if top.Done || top.Target != kind {
		return "", false
	}
	if top.Values == nil {
		top.Values = url.Values{}
	}
	top.Values.Set(top.Field, strconv.FormatInt(id, 10))
	for k, v := range extra {
		top.Values[k] = v
	}
	top.Done = true
	s.setDetours(r, stack)
	return top.Return, true
}

// resumeDetour pops the detour that left the form at r's path, along with
// the ones stacked on it, and returns the stashed values. A detour the
// user abandoned, by navigating back without saving, is popped as well.
func (s *Server) resumeDetour(r *http.Request) (url.Values, bool) {
	stack := s.detours(r)
	for i := len(stack) - 1; i >= 0; i-- {
		if stack[i].Return == r.URL.Path {
			s.setDetours(r, stack[:i])
			return stack[i].Values, true
		}
	}
	return nil, false
}

// dropAbandoned forgets all detours when r shows a page other than the
// form the newest detour went to or the one it returns to.
func (s *Server) dropAbandoned(r *http.Request) {
	stack := s.detours(r)
	if len(stack) == 0 {
		return
	}
	top := stack[len(stack)-1]
	if r.URL.Path == top.Return || (!top.Done && r.URL.Path == targetForm(top)) {
		return
	}
	s.log.WithField("path", r.URL.Path).WithField("depth", len(stack)).Debug("detours abandoned")
	s.setDetours(r, nil)
}
