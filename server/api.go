package server

import (
	"encoding/json"
	"net/http"
	"strconv"
)

// apiKomposities returns the kompositie options of one komponist, for the
// uitvoering form's dropdown. Komponist 0 or less lists all komposities.
func (s *Server) apiKomposities(w http.ResponseWriter, r *http.Request) error {
	komponist, err := strconv.ParseInt(r.PathValue("komponist"), 10, 64)
	if err != nil {
		return errNotFound
	}
	pairs, err := s.db.KompositiePairs(r.Context(), komponist)
	if err != nil {
		return err
	}
	return s.writeJSON(w, http.StatusOK, pairs)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(v)
}
