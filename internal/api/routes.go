package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)

	r.Get("/", s.handleHome)
	r.Post("/class", s.handleSubmitClass)

	r.Route("/study", func(r chi.Router) {
		r.Post("/reveal", s.handleReveal)
		r.Post("/mark", s.handleMark)
	})

	r.Route("/statistics", func(r chi.Router) {
		r.Post("/open", s.handleOpenStatistics)
		r.Post("/close", s.handleCloseStatistics)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/toggle", s.handleToggleAdmin)
		r.Post("/add/start", s.handleStartAdding)
		r.Post("/add", s.handleAddCard)
		r.Post("/cancel", s.handleCancelPanel)
		r.Post("/cards/{id}/edit/start", s.handleStartEditing)
		r.Post("/cards/{id}/edit", s.handleEditCard)
		r.Post("/cards/{id}/delete", s.handleDeleteCard)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/deck", s.handleDeckJSON)
		r.Get("/statistics", s.handleStatisticsJSON)
	})

	if s.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(s.StaticDir))))
	}
	return r
}
