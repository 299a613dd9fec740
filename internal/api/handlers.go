package api

import (
	"html/template"
	"net/http"

	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/repository"
	"github.com/vytor/flashdeck/internal/services"
)

type Server struct {
	StudyService services.StudyService
	Store        repository.KeyValueStore
	Templates    *template.Template
	StaticDir    string
}

type pageData map[string]any

func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	if data == nil {
		data = pageData{}
	}
	if _, ok := data["view"]; !ok {
		data["view"] = s.StudyService.View(r.Context())
	}

	log := logger.FromContext(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error("failed to render template %s: %v", name, err)
	}
}

// redirectHome finishes every form post with a 303 back to the single page.
func redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
