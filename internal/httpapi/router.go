// Package httpapi exposes quiz sessions over a JSON API for a browser
// front end.
package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/abhisek/simulado/internal/events"
	"github.com/abhisek/simulado/internal/questionbank"
)

// Server bundles the dependencies of the API.
type Server struct {
	Provider    questionbank.Provider
	Registry    *Registry
	Recorder    *events.Recorder
	CORSOrigins []string

	// RequestTimeout bounds every request, including bank generation.
	RequestTimeout time.Duration
}

// NewRouter mounts the API routes.
func NewRouter(s *Server) http.Handler {
	timeout := s.RequestTimeout
	if timeout <= 0 {
		timeout = 3 * time.Minute
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer)
	r.Use(middleware.Timeout(timeout))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]any{"status": "ok", "sessions": s.Registry.Len()})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/subjects", ListSubjectsHandler())
		r.Post("/quizzes", CreateQuizHandler(s.Provider, s.Registry, s.Recorder))

		r.Route("/sessions/{sessionID}", func(r chi.Router) {
			r.Get("/", GetSessionHandler(s.Registry))
			r.Delete("/", DeleteSessionHandler(s.Registry))
			r.Put("/answers/{questionID}", SelectAnswerHandler(s.Registry))
			r.Post("/flags/{questionID}", ToggleFlagHandler(s.Registry))
			r.Post("/navigate", NavigateHandler(s.Registry))
			r.Post("/jump", JumpHandler(s.Registry))
			r.Post("/finish", FinishHandler(s.Registry, s.Recorder))
			r.Post("/retry", RetryHandler(s.Registry, s.Recorder))
		})
	})

	return r
}
