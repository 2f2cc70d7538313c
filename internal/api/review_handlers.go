package api

import (
	"encoding/json"
	"net/http"

	"github.com/hmori/jflash/internal/errors"
	"github.com/hmori/jflash/internal/logger"
)

func (s *Server) handleDueCards(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	device := deviceFromContext(r.Context())
	limit := queryInt(r, "limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	log.Debug("fetching due cards: device=%s, limit=%d", device, limit)

	cards, total, err := s.ReviewService.DueCards(r.Context(), device, limit)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{
		"cards": cards,
		"total": total,
	})
}

func (s *Server) handleSubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	var req struct {
		VocabID int64 `json:"vocab_id"`
		Grade   int   `json:"grade"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	if req.VocabID <= 0 {
		handleError(w, r, errors.NewBadRequestError("vocab_id is required"))
		return
	}

	device := deviceFromContext(r.Context())
	log = log.WithFields(map[string]any{
		"vocab_id": req.VocabID,
		"grade":    req.Grade,
		"device":   device,
	})
	log.Debug("submitting answer")

	updated, err := s.ReviewService.SubmitAnswer(r.Context(), device, req.VocabID, req.Grade)
	if err != nil {
		handleError(w, r, err)
		return
	}

	log.Info("answer recorded")
	respondJSON(w, r, http.StatusOK, updated)
}

func (s *Server) handleResetProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	device := deviceFromContext(r.Context())
	log.Debug("resetting progress: device=%s, vocab_id=%d", device, id)

	if err := s.ReviewService.ResetProgress(r.Context(), device, id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"vocab_id": id, "reset": true})
}
