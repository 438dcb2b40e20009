package adapthttp

import "net/http"

func (s *Server) handleChartsWeights(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	data, err := s.charts.GetWeightSeries(r.Context(), r.URL.Query().Get("unit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, data)
}
