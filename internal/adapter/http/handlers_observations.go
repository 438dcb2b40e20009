package adapthttp

import (
	"errors"
	"net/http"

	"weighttracker/internal/app"
)

// Form hints surfaced to the UI. The weight range is a suggestion for the
// input widget, not a stored-data invariant.
const (
	formWeightMin  = 40.0
	formWeightMax  = 120.0
	formWeightStep = 0.1
)

func (s *Server) handleObservations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var body struct {
		Name   string  `json:"name"`
		Weight float64 `json:"weight"`
		Date   string  `json:"date"`
	}
	if err := parseJSON(r, &body); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	err := s.ingest.RecordForName(r.Context(), body.Name, body.Weight, body.Date)
	switch {
	case errors.Is(err, app.ErrUnknownPerson):
		writeError(w, http.StatusNotFound, err)
	case errors.Is(err, app.ErrBadDate):
		writeError(w, http.StatusBadRequest, err)
	case err != nil:
		writeError(w, http.StatusServiceUnavailable, err)
	default:
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}
}

func (s *Server) handlePeople(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	people, err := s.charts.People(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"people": people})
}

func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	people, err := s.charts.People(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	names := make([]string, 0, len(people))
	for _, p := range people {
		names = append(names, p.Name)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"people": names,
		"weight": map[string]any{
			"min":  formWeightMin,
			"max":  formWeightMax,
			"step": formWeightStep,
		},
		"sso_enabled": s.oidcConfig.Enabled,
	})
}
