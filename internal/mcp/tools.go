package mcp

import (
	"context"

	"github.com/claude/liftlog/internal/library"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/stats"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolListWorkoutPlans = mcp.NewTool("list_workout_plans",
	mcp.WithDescription("List saved workout plans with their exercises, planned sets, and cardio sessions. Optionally restrict to reusable templates."),
	mcp.WithBoolean("templates_only", mcp.Description("When true, return only plans marked as templates.")),
)

var toolGetRecentWorkouts = mcp.NewTool("get_recent_workouts",
	mcp.WithDescription("Retrieve completed workout sessions, newest first, with per-exercise set detail and duration."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sessions to return. Defaults to 10.")),
)

var toolGetExerciseProgress = mcp.NewTool("get_exercise_progress",
	mcp.WithDescription("Progression analysis for one exercise: per-day max weight, average weight, volume, and set count, plus all-time records."),
	mcp.WithString("exercise_id", mcp.Required(), mcp.Description("Exercise id from the library or workout history")),
	mcp.WithString("range", mcp.Description("Time window. Defaults to all history."), mcp.Enum("7d", "30d", "90d", "all")),
)

var toolGetWeeklyStats = mcp.NewTool("get_weekly_stats",
	mcp.WithDescription("Training volume for the trailing 7 days: workout count, completed sets per muscle group, most trained group, and cardio totals by type."),
)

var toolGetBodyMetrics = mcp.NewTool("get_body_metrics",
	mcp.WithDescription("Body measurement history plus derived BMI and FFMI from the latest entry. Derived values are null when no measurements exist or body fat is missing."),
)

var toolSearchLibrary = mcp.NewTool("search_exercise_library",
	mcp.WithDescription("Search the exercise catalog by name and/or muscle groups."),
	mcp.WithString("query", mcp.Description("Case-insensitive name substring")),
	mcp.WithString("muscle_group", mcp.Description("Restrict to one muscle group"), mcp.Enum("chest", "back", "shoulders", "arms", "quads", "hamstrings", "core", "neck", "forearms")),
)

// --- Tool handlers ---

func (h *handlers) listWorkoutPlans(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var plans []models.Workout
	if req.GetBool("templates_only", false) {
		plans = h.ds.Templates()
	} else {
		plans = h.ds.Workouts()
	}

	result, err := mcp.NewToolResultJSON(plans)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getRecentWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)
	if limit < 1 {
		return mcp.NewToolResultError("limit must be positive"), nil
	}

	completed := h.ds.CompletedWorkouts()
	sessions := make([]models.CompletedWorkout, len(completed))
	copy(sessions, completed)
	for i, j := 0, len(sessions)-1; i < j; i, j = i+1, j-1 {
		sessions[i], sessions[j] = sessions[j], sessions[i]
	}
	if len(sessions) > limit {
		sessions = sessions[:limit]
	}

	result, err := mcp.NewToolResultJSON(sessions)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getExerciseProgress(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exerciseID, err := req.RequireString("exercise_id")
	if err != nil {
		return mcp.NewToolResultError("exercise_id parameter is required"), nil
	}

	since, ok := h.sinceForRange(req.GetString("range", "all"))
	if !ok {
		return mcp.NewToolResultError("range must be one of 7d, 30d, 90d, all"), nil
	}

	var history models.ExerciseHistory
	found := false
	for _, entry := range h.ds.ExerciseHistory() {
		if entry.ExerciseID == exerciseID {
			history = entry
			found = true
			break
		}
	}
	if !found {
		return mcp.NewToolResultError("no history for exercise " + exerciseID), nil
	}

	result, err := mcp.NewToolResultJSON(stats.ExerciseProgress(history, since))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeeklyStats(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.weekly())
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getBodyMetrics(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	payload := map[string]any{
		"history": h.ds.BodyMetrics(),
	}
	if m, ok := h.ds.LatestBodyMetrics(); ok {
		payload["latest"] = m
	}
	if v, ok := h.ds.BMI(); ok {
		payload["bmi"] = v
	}
	if v, ok := h.ds.FFMI(); ok {
		payload["ffmi"] = v
	}

	result, err := mcp.NewToolResultJSON(payload)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) searchLibrary(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := req.GetString("query", "")

	var groups []models.MuscleGroup
	if g := req.GetString("muscle_group", ""); g != "" {
		groups = append(groups, models.MuscleGroup(g))
	}

	matches := library.Filter(h.ds.ExerciseLibrary(), query, groups)

	result, err := mcp.NewToolResultJSON(matches)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
