package api

import (
	"io"
	"net/http"

	"github.com/hmori/jflash/internal/errors"
	"github.com/hmori/jflash/internal/logger"
	"github.com/hmori/jflash/internal/worker"
)

// maxImportSize caps uploads at 10 MB, roughly 50k entries.
const maxImportSize = 10 << 20

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	device := deviceFromContext(r.Context())

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="vocab.csv"`)
	if err := s.TransferService.ExportCSV(r.Context(), device, w); err != nil {
		// Headers may already be written; log instead of re-responding.
		logger.FromContext(r.Context()).Error("CSV export failed: %v", err)
	}
}

func (s *Server) handleExportJSON(w http.ResponseWriter, r *http.Request) {
	device := deviceFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="vocab.json"`)
	if err := s.TransferService.ExportJSON(r.Context(), device, w); err != nil {
		logger.FromContext(r.Context()).Error("JSON export failed: %v", err)
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())

	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		handleError(w, r, errors.NewBadRequestError("invalid multipart form"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		handleError(w, r, errors.NewBadRequestError("missing file field"))
		return
	}
	defer file.Close()

	payload, err := io.ReadAll(io.LimitReader(file, maxImportSize))
	if err != nil {
		handleError(w, r, errors.NewInternalError(err))
		return
	}

	log.Info("queueing vocabulary import: file=%s, size=%d", header.Filename, len(payload))
	s.ImportPool.Submit(&worker.ImportVocabularyJob{
		Transfer: s.TransferService,
		Filename: header.Filename,
		Payload:  payload,
	})

	respondJSON(w, r, http.StatusAccepted, map[string]any{
		"queued": true,
		"file":   header.Filename,
	})
}
