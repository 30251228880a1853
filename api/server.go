/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

ROUTER: chi
  Chi was chosen for:
  - Lightweight and fast
  - Context-based
  - Middleware support
  - RESTful route patterns

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for frontend

ROUTE GROUPS:
  /api/validate      Workspace validation
  /api/solve         Roster solving
  /api/diff          Solution comparison
  /api/simulate      What-if scenarios
  /api/publish       Baseline management
  /api/export        Solution exports
  /api/demo/*        Demo scenarios

SECURITY NOTE:
  No authentication middleware currently. All endpoints are public.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Post("/validate", h.Validate)
		r.Post("/solve", h.Solve)
		r.Post("/diff", h.DiffSolutions)
		r.Post("/simulate", h.Simulate)

		// Baseline routes
		r.Route("/publish", func(r chi.Router) {
			r.Post("/", h.Publish)
			r.Get("/latest", h.GetPublished)
		})

		r.Post("/export", h.Export)

		// Demo routes
		r.Route("/demo", func(r chi.Router) {
			r.Get("/solve", h.SolveDemo)
		})
	})

	return r
}
