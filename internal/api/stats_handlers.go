package api

import (
	"net/http"

	"github.com/hmori/jflash/internal/services"
)

func (s *Server) handleStatsOverview(w http.ResponseWriter, r *http.Request) {
	device := deviceFromContext(r.Context())
	overview, err := s.StatsService.Overview(r.Context(), device)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, overview)
}

func (s *Server) handleStatsDaily(w http.ResponseWriter, r *http.Request) {
	device := deviceFromContext(r.Context())
	days := queryInt(r, "days", services.DefaultDailyStatsDays)

	daily, err := s.StatsService.Daily(r.Context(), device, days)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, daily)
}

func (s *Server) handleStatsStreak(w http.ResponseWriter, r *http.Request) {
	device := deviceFromContext(r.Context())
	streak, err := s.StatsService.Streak(r.Context(), device)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, streak)
}

func (s *Server) handleStatsDashboard(w http.ResponseWriter, r *http.Request) {
	device := deviceFromContext(r.Context())
	dashboard, err := s.StatsService.Dashboard(r.Context(), device)
	if err != nil {
		handleError(w, r, err)
		return
	}
	respondJSON(w, r, http.StatusOK, dashboard)
}
