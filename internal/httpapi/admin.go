package httpapi

import "net/http"

func (s *Server) handleAdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.catalog.Stats(r.Context())
	if err != nil {
		internalError(w, r, err, "fetch stats failed")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleAdminLogs(w http.ResponseWriter, r *http.Request) {
	opts, ok := listOptions(w, r)
	if !ok {
		return
	}
	logs, err := s.catalog.AdminLogs(r.Context(), opts)
	if err != nil {
		internalError(w, r, err, "list admin logs failed")
		return
	}
	writeJSON(w, http.StatusOK, logs)
}
