package api

import (
	"net/http"

	"github.com/vytor/flashdeck/internal/models"
)

type statisticsResponse struct {
	ClassID   string              `json:"class_id"`
	PassCount int                 `json:"pass_count"`
	FailCount int                 `json:"fail_count"`
	Points    []models.ChartPoint `json:"points"`
}

// handleDeckJSON returns the active deck in its persisted shape.
func (s *Server) handleDeckJSON(w http.ResponseWriter, r *http.Request) {
	deck, err := s.StudyService.Deck(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, deck)
}

func (s *Server) handleStatisticsJSON(w http.ResponseWriter, r *http.Request) {
	stats, err := s.StudyService.Statistics(r.Context())
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, statisticsResponse{
		ClassID:   s.StudyService.View(r.Context()).ClassID,
		PassCount: stats.PassCount,
		FailCount: stats.FailCount,
		Points:    stats.Points(),
	})
}
