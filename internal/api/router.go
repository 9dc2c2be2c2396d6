// Package api is the administrative HTTP surface: user listing and
// moderation plus file upload. It consumes the storage layer only, never the
// relay state machine.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"supportbot/internal/storage"
)

type Deps struct {
	Storage       storage.Storage
	Token         string
	UploadDir     string
	AllowedOrigin string
}

func NewRouter(deps Deps) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{deps.AllowedOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	h := &Handler{storage: deps.Storage}
	upload := NewUploadHandler(deps.UploadDir)

	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir))))

	r.Group(func(r chi.Router) {
		r.Use(Auth(deps.Token))

		r.Get("/api/users", h.GetUsers)
		r.Get("/api/users/{id}", h.GetUser)
		r.Put("/api/users/set_admin/{id}", h.SetAdmin)
		r.Post("/api/users/ban/{username}", h.BanUser)
		r.Post("/api/users/unban/{username}", h.UnbanUser)
		r.Post("/api/upload", upload.Upload)
	})

	return r
}
