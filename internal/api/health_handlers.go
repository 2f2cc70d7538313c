package api

import "net/http"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]any{
		"status":       "ok",
		"import_queue": s.ImportPool.QueueSize(),
	})
}
