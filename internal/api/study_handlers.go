package api

import (
	"net/http"

	"github.com/vytor/flashdeck/internal/logger"
)

func (s *Server) handleReveal(w http.ResponseWriter, r *http.Request) {
	if err := s.StudyService.Reveal(r.Context()); err != nil {
		s.handleError(w, r, err)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleMark(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	form, err := parseMarkForm(r)
	if err != nil {
		log.Warn("invalid outcome value: %q", r.FormValue("outcome"))
		s.handleError(w, r, err)
		return
	}

	if err := s.StudyService.Mark(r.Context(), form.Outcome); err != nil {
		s.handleError(w, r, err)
		return
	}

	log.WithField("outcome", form.Outcome).Debug("card marked")
	redirectHome(w, r)
}

func (s *Server) handleOpenStatistics(w http.ResponseWriter, r *http.Request) {
	if err := s.StudyService.OpenStatistics(r.Context()); err != nil {
		s.handleError(w, r, err)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleCloseStatistics(w http.ResponseWriter, r *http.Request) {
	if err := s.StudyService.CloseStatistics(r.Context()); err != nil {
		s.handleError(w, r, err)
		return
	}
	redirectHome(w, r)
}
