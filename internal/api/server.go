package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hmori/jflash/internal/services"
	"github.com/hmori/jflash/internal/worker"
)

type Server struct {
	VocabService    services.VocabService
	ReviewService   services.ReviewService
	StatsService    services.StatsService
	TransferService services.TransferService
	ImportPool      *worker.Pool
	DefaultDevice   string
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(s.deviceMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Get("/vocab", s.handleListVocab)
		r.Post("/vocab", s.handleCreateVocab)
		r.Get("/vocab/{id}", s.handleGetVocab)
		r.Put("/vocab/{id}", s.handleUpdateVocab)
		r.Delete("/vocab/{id}", s.handleDeleteVocab)
		r.Post("/vocab/{id}/status", s.handleSetVocabStatus)

		r.Get("/review/cards", s.handleDueCards)
		r.Post("/review/answer", s.handleSubmitAnswer)
		r.Post("/review/reset/{id}", s.handleResetProgress)

		r.Get("/stats/overview", s.handleStatsOverview)
		r.Get("/stats/daily", s.handleStatsDaily)
		r.Get("/stats/streak", s.handleStatsStreak)
		r.Get("/stats/dashboard", s.handleStatsDashboard)

		r.Get("/export/vocab.csv", s.handleExportCSV)
		r.Get("/export/vocab.json", s.handleExportJSON)
		r.Post("/import", s.handleImport)
	})

	return r
}
