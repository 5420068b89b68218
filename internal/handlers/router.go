package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"library-admin/internal/middleware"
	"library-admin/internal/session"
)

// NewRouter assembles the admin panel.
func NewRouter(sessions *session.Manager, log zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/healthz", Health)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Sessions(sessions))

		r.Get("/", NewIndexHandler(log).ServeHTTP)
		RegisterEntities(r, log)
	})

	return r
}
