package mcp

import (
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/stats"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DataSource abstracts the workout store for MCP tools so tests can swap in
// a fixture without a full store.
type DataSource interface {
	Workouts() []models.Workout
	Templates() []models.Workout
	RecentWorkouts() []models.CompletedWorkout
	CompletedWorkouts() []models.CompletedWorkout
	ExerciseLibrary() []models.LibraryExercise
	ExerciseHistory() []models.ExerciseHistory
	BodyMetrics() []models.BodyMetrics
	LatestBodyMetrics() (models.BodyMetrics, bool)
	BMI() (float64, bool)
	FFMI() (float64, bool)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog workout tracker. Query workout plans, training history, exercise progression, weekly training volume, and body composition."),
	)

	h := &handlers{ds: ds, log: log, now: time.Now}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListWorkoutPlans, Handler: h.listWorkoutPlans},
		server.ServerTool{Tool: toolGetRecentWorkouts, Handler: h.getRecentWorkouts},
		server.ServerTool{Tool: toolGetExerciseProgress, Handler: h.getExerciseProgress},
		server.ServerTool{Tool: toolGetWeeklyStats, Handler: h.getWeeklyStats},
		server.ServerTool{Tool: toolGetBodyMetrics, Handler: h.getBodyMetrics},
		server.ServerTool{Tool: toolSearchLibrary, Handler: h.searchLibrary},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentWorkouts, Handler: h.recentWorkoutsResource},
		server.ServerResource{Resource: resExerciseLibrary, Handler: h.exerciseLibraryResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
	now func() time.Time
}

// sinceForRange maps a range keyword to a cutoff relative to now. The zero
// time means no cutoff.
func (h *handlers) sinceForRange(r string) (time.Time, bool) {
	switch r {
	case "7d":
		return h.now().AddDate(0, 0, -7), true
	case "30d":
		return h.now().AddDate(0, 0, -30), true
	case "90d":
		return h.now().AddDate(0, 0, -90), true
	case "", "all":
		return time.Time{}, true
	}
	return time.Time{}, false
}

// weekly is a seam for stats.Weekly so handlers stay thin.
func (h *handlers) weekly() stats.WeeklyReport {
	return stats.Weekly(h.ds.CompletedWorkouts(), h.now())
}

// --- Resource definitions ---

var resRecentWorkouts = mcp.NewResource(
	"liftlog://recent_workouts",
	"Recent Workouts",
	mcp.WithResourceDescription("The three most recently completed workouts with full exercise and set detail"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseLibrary = mcp.NewResource(
	"liftlog://exercise_library",
	"Exercise Library",
	mcp.WithResourceDescription("The full exercise catalog with muscle group assignments"),
	mcp.WithMIMEType("application/json"),
)
