package api

import (
	"net/http"

	"github.com/vytor/flashdeck/internal/logger"
)

func (s *Server) handleToggleAdmin(w http.ResponseWriter, r *http.Request) {
	if err := s.StudyService.ToggleAdmin(r.Context()); err != nil {
		s.handleError(w, r, err)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleStartAdding(w http.ResponseWriter, r *http.Request) {
	if err := s.StudyService.StartAdding(r.Context()); err != nil {
		s.handleError(w, r, err)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleAddCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	form := parseCardForm(r)

	card, err := s.StudyService.AddCard(r.Context(), form.Front, form.Back)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	log.WithField("card_id", card.ID).Info("flashcard added")
	redirectHome(w, r)
}

func (s *Server) handleCancelPanel(w http.ResponseWriter, r *http.Request) {
	if err := s.StudyService.CancelPanel(r.Context()); err != nil {
		s.handleError(w, r, err)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleStartEditing(w http.ResponseWriter, r *http.Request) {
	id, err := cardIDParam(r)
	if err != nil {
		s.handleError(w, r, err)
		return
	}

	if err := s.StudyService.StartEditing(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}
	redirectHome(w, r)
}

func (s *Server) handleEditCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id, err := cardIDParam(r)
	if err != nil {
		log.Warn("invalid card id for edit: %s", r.URL.Path)
		s.handleError(w, r, err)
		return
	}

	form := parseCardForm(r)
	if err := s.StudyService.EditCard(r.Context(), id, form.Front, form.Back); err != nil {
		s.handleError(w, r, err)
		return
	}

	log.WithField("card_id", id).Info("flashcard edited")
	redirectHome(w, r)
}

func (s *Server) handleDeleteCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context())
	id, err := cardIDParam(r)
	if err != nil {
		log.Warn("invalid card id for delete: %s", r.URL.Path)
		s.handleError(w, r, err)
		return
	}

	if err := s.StudyService.DeleteCard(r.Context(), id); err != nil {
		s.handleError(w, r, err)
		return
	}

	log.WithField("card_id", id).Info("flashcard deleted")
	redirectHome(w, r)
}
