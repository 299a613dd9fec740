package api

import (
	"net/http"

	"github.com/vytor/flashdeck/internal/logger"
)

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	view := s.StudyService.View(r.Context())
	log.Debug("rendering %s screen (admin=%t)", view.Screen, view.Admin)

	s.render(w, r, http.StatusOK, "pages/index.html", pageData{
		"view": view,
	})
}
