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
  /api/employees/*   Punches, summaries, reconciliation
  /api/punches/*     Punch deletion by id
  /api/tenants/*     Shift configuration
  /api/reset         Database reset (dev only)

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
func NewRouter(h *Handler, allowedOrigins []string) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Employee routes
		r.Route("/employees/{id}", func(r chi.Router) {
			r.Post("/punches", h.RecordPunch)
			r.Get("/punches", h.ListPunches)
			r.Post("/reconcile", h.Reconcile)

			r.Get("/summaries", h.ListSummaries)
			r.Get("/summaries/{date}", h.GetSummary)
			r.Post("/summaries/{date}/resolve", h.ResolveSummary)
			r.Post("/summaries/{date}/lock", h.LockSummary)
			r.Post("/summaries/{date}/unlock", h.UnlockSummary)
		})

		// Punch routes (by event id, employee derived from the row)
		r.Route("/punches", func(r chi.Router) {
			r.Delete("/{id}", h.DeletePunch)
		})

		// Tenant routes
		r.Route("/tenants/{id}", func(r chi.Router) {
			r.Get("/schedule", h.GetSchedule)
			r.Put("/schedule", h.PutSchedule)
		})

		// Scenario routes
		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Get("/current", h.GetCurrentScenario)
			r.Post("/load", h.LoadScenario)
		})

		// Dev only
		r.Post("/reset", h.ResetDatabase)
	})

	return r
}
