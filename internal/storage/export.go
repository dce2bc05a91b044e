package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// ExportDocument is the file format produced by Export: the full state plus
// an export timestamp.
type ExportDocument struct {
	models.State
	ExportDate time.Time `json:"exportDate"`
}

// Export serializes the state into an export document.
func Export(state models.State, now time.Time) ([]byte, error) {
	doc := ExportDocument{State: state, ExportDate: now}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return data, nil
}

// ExportFilename returns the suggested download name for an export taken
// at the given time.
func ExportFilename(now time.Time) string {
	return "workout-tracker-data-" + now.Format("2006-01-02") + ".json"
}

// Importer is the slice of the workout store the import bridge needs:
// wholesale collection replacement.
type Importer interface {
	SetWorkouts([]models.Workout)
	SetCompletedWorkouts([]models.CompletedWorkout)
	SetExerciseLibrary([]models.LibraryExercise)
	SetExerciseHistory([]models.ExerciseHistory)
	SetBodyMetrics([]models.BodyMetrics)
	SetSettings(models.Settings)
}

// importDoc distinguishes absent keys (left untouched) from present ones.
type importDoc struct {
	Workouts          *[]models.Workout          `json:"workouts"`
	CompletedWorkouts *[]models.CompletedWorkout `json:"completedWorkouts"`
	ExerciseLibrary   *[]models.LibraryExercise  `json:"exerciseLibrary"`
	ExerciseHistory   *[]models.ExerciseHistory  `json:"exerciseHistory"`
	BodyMetrics       *[]models.BodyMetrics      `json:"bodyMetrics"`
	Settings          *models.Settings           `json:"settings"`
}

// Import parses an exported document and replaces each collection present
// in it. It fails without mutating anything when the document is not valid
// JSON or its workouts field is missing or not an array.
func Import(dst Importer, data []byte) error {
	var doc importDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parsing import: %w", err)
	}
	if doc.Workouts == nil {
		return fmt.Errorf("invalid data format: workouts array is missing")
	}

	dst.SetWorkouts(*doc.Workouts)
	if doc.CompletedWorkouts != nil {
		dst.SetCompletedWorkouts(*doc.CompletedWorkouts)
	}
	if doc.ExerciseLibrary != nil {
		dst.SetExerciseLibrary(*doc.ExerciseLibrary)
	}
	if doc.ExerciseHistory != nil {
		dst.SetExerciseHistory(*doc.ExerciseHistory)
	}
	if doc.BodyMetrics != nil {
		dst.SetBodyMetrics(*doc.BodyMetrics)
	}
	if doc.Settings != nil {
		dst.SetSettings(*doc.Settings)
	}
	return nil
}
