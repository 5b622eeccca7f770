package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.corsMiddleware())

	// liveness probe bypasses the guard chain
	router.Get("/api/v1/health", h.health)

	// guard order is fixed: size, rate, auth
	router.Group(func(r chi.Router) {
		r.Use(h.sizeLimit)
		r.Use(h.rateLimit)
		r.Use(h.auth)
		r.Post("/api/v1/readings", h.createReading)
		r.Get("/api/v1/readings", h.listReadings)
	})

	return router
}

// corsMiddleware builds the CORS layer from the configured origin allow-list.
// An empty list means permissive, the development default.
func (h *Handler) corsMiddleware() func(next http.Handler) http.Handler {
	origins := h.corsOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return cors.New(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	}).Handler
}
