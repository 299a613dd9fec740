package api

import (
	"net/http"

	"github.com/vytor/flashdeck/internal/logger"
)

func (s *Server) handleSubmitClass(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	form, err := parseClassForm(r)
	if err != nil {
		log.Warn("class id submitted without a value")
		s.handleError(w, r, err)
		return
	}

	log = log.WithField("class_id", form.ClassID)
	if err := s.StudyService.SubmitClassID(r.Context(), form.ClassID); err != nil {
		s.handleError(w, r, err)
		return
	}

	log.Info("class selected")
	redirectHome(w, r)
}
