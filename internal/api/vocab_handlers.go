package api

import (
	"encoding/json"
	"net/http"

	"github.com/hmori/jflash/internal/errors"
	"github.com/hmori/jflash/internal/logger"
	"github.com/hmori/jflash/internal/models"
)

func (s *Server) handleListVocab(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	q := r.URL.Query()

	filter := models.VocabFilter{
		Status:    q.Get("status"),
		POS:       q.Get("pos"),
		JLPTLevel: q.Get("jlpt_level"),
		Search:    q.Get("search"),
	}
	page := queryInt(r, "page", 1)
	if page < 1 {
		page = 1
	}
	perPage := queryInt(r, "per_page", 50)
	if perPage < 1 || perPage > 200 {
		perPage = 50
	}
	filter.Limit = perPage
	filter.Offset = (page - 1) * perPage
	sortBy := q.Get("sort")

	log.Debug("listing vocabulary: page=%d, per_page=%d, sort=%s", page, perPage, sortBy)

	device := deviceFromContext(r.Context())
	items, total, err := s.VocabService.ListVocabulary(r.Context(), device, filter, sortBy)
	if err != nil {
		handleError(w, r, err)
		return
	}

	respondJSON(w, r, http.StatusOK, map[string]any{
		"items":    items,
		"total":    total,
		"page":     page,
		"per_page": perPage,
	})
}

func (s *Server) handleGetVocab(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	v, err := s.VocabService.GetVocabulary(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, v)
}

func (s *Server) handleCreateVocab(w http.ResponseWriter, r *http.Request) {
	var v models.Vocabulary
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	created, err := s.VocabService.CreateVocabulary(r.Context(), v)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusCreated, created)
}

func (s *Server) handleUpdateVocab(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var v models.Vocabulary
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}
	v.ID = id

	if err := s.VocabService.UpdateVocabulary(r.Context(), v); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, v)
}

func (s *Server) handleDeleteVocab(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.VocabService.DeleteVocabulary(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusNoContent, nil)
}

func (s *Server) handleSetVocabStatus(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id, err := idParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid request body"))
		return
	}

	log.Debug("setting status: id=%d, status=%s", id, req.Status)
	if err := s.VocabService.SetStatus(r.Context(), id, req.Status); err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, map[string]any{"id": id, "status": req.Status})
}
