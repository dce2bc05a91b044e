// Package server exposes the workout store over a REST API. All state
// changes go through store operations; handlers never mutate state
// directly.
package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/store"
	"github.com/go-chi/chi/v5"
	"tailscale.com/client/local"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	st     *store.Store
	log    *slog.Logger
	apiKey string
	lc     *local.Client
	router chi.Router
}

// New creates a new Server with all routes configured.
func New(st *store.Store, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		st:     st,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale attaches the tailnet client used to resolve request
// identities. Without it the dev identity is used.
func (s *Server) SetTailscale(lc *local.Client) {
	s.lc = lc
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Mount attaches an extra handler subtree, e.g. the MCP transport.
func (s *Server) Mount(pattern string, h http.Handler) {
	s.router.Mount(pattern, h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/me", s.handleMe)

		// Workout plans and session lifecycle
		r.Get("/workouts", s.handleListWorkouts)
		r.Post("/workouts", s.handleCreateWorkout)
		r.Get("/workouts/recent", s.handleRecentWorkouts)
		r.Get("/workouts/templates", s.handleTemplates)
		r.Get("/workouts/active", s.handleActiveWorkout)
		r.Post("/workouts/complete", s.handleCompleteWorkout)
		r.Get("/workouts/{id}", s.handleGetWorkout)
		r.Put("/workouts/{id}", s.handleUpdateWorkout)
		r.Delete("/workouts/{id}", s.handleDeleteWorkout)
		r.Post("/workouts/{id}/start", s.handleStartWorkout)
		r.Post("/workouts/{id}/duplicate", s.handleDuplicateWorkout)
		r.Get("/completed", s.handleCompletedWorkouts)

		// Exercise library
		r.Get("/library", s.handleListLibrary)
		r.Post("/library", s.handleAddLibrary)
		r.Put("/library/{id}", s.handleUpdateLibrary)
		r.Delete("/library/{id}", s.handleDeleteLibrary)

		// Progress history and statistics
		r.Get("/history", s.handleListHistory)
		r.Post("/history", s.handleRecordProgress)
		r.Get("/history/{exerciseId}/progress", s.handleExerciseProgress)
		r.Get("/stats/weekly", s.handleWeeklyStats)

		// Body metrics and derived values
		r.Get("/metrics", s.handleListBodyMetrics)
		r.Post("/metrics", s.handleAddBodyMetrics)
		r.Get("/metrics/latest", s.handleLatestBodyMetrics)
		r.Get("/metrics/derived", s.handleDerivedMetrics)

		// Settings
		r.Get("/settings", s.handleGetSettings)
		r.Patch("/settings", s.handleUpdateSettings)

		// Data management (import needs the API key, like any bulk write)
		r.Get("/export", s.handleExport)
		r.With(APIKeyAuth(s.apiKey)).Post("/import", s.handleImport)
	})
}
