package storage

import (
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// TestLocalSaveLoad verifies the state document survives a save/load
// round-trip, including reopening the database file.
func TestLocalSaveLoad(t *testing.T) {
	dir := t.TempDir()

	local, err := OpenLocal(dir)
	if err != nil {
		t.Fatal(err)
	}

	bf := 18.5
	state := models.State{
		Workouts: []models.Workout{
			{ID: "w1", Name: "Push Day", Exercises: []models.Exercise{
				{ID: "lib-bench-press", Name: "Bench Press", Sets: []models.Set{{Reps: 8, Weight: 80}}},
			}},
		},
		CompletedWorkouts: []models.CompletedWorkout{
			{ID: "c1", WorkoutID: "w1", Name: "Push Day", Date: time.Date(2026, 3, 1, 18, 0, 0, 0, time.UTC), Duration: 50},
		},
		BodyMetrics: []models.BodyMetrics{
			{Date: time.Date(2026, 3, 1, 7, 0, 0, 0, time.UTC), Weight: 80, Height: 180, BodyFatPercentage: &bf},
		},
		Settings: models.DefaultSettings(),
	}

	if err := local.Save(state); err != nil {
		t.Fatal(err)
	}
	if err := local.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopen against the same directory.
	local, err = OpenLocal(dir)
	if err != nil {
		t.Fatal(err)
	}
	defer local.Close()

	loaded, found, err := local.Load()
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Fatal("state not found after reopen")
	}

	if len(loaded.Workouts) != 1 || loaded.Workouts[0].Name != "Push Day" {
		t.Errorf("workouts = %+v, want the saved Push Day plan", loaded.Workouts)
	}
	if len(loaded.CompletedWorkouts) != 1 || loaded.CompletedWorkouts[0].Duration != 50 {
		t.Errorf("completed = %+v, want the saved session", loaded.CompletedWorkouts)
	}
	if len(loaded.BodyMetrics) != 1 || loaded.BodyMetrics[0].BodyFatPercentage == nil || *loaded.BodyMetrics[0].BodyFatPercentage != 18.5 {
		t.Errorf("bodyMetrics = %+v, want body fat 18.5", loaded.BodyMetrics)
	}
	if loaded.Settings != models.DefaultSettings() {
		t.Errorf("settings = %+v, want defaults", loaded.Settings)
	}
}

// TestLocalLoadEmpty verifies loading before any save reports not-found
// without an error.
func TestLocalLoadEmpty(t *testing.T) {
	local, err := OpenLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer local.Close()

	_, found, err := local.Load()
	if err != nil {
		t.Fatal(err)
	}
	if found {
		t.Error("found = true before any save")
	}
}

// TestLocalSaveOverwrites verifies repeated saves keep only the latest
// document.
func TestLocalSaveOverwrites(t *testing.T) {
	local, err := OpenLocal(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer local.Close()

	if err := local.Save(models.State{Workouts: []models.Workout{{ID: "old"}}}); err != nil {
		t.Fatal(err)
	}
	if err := local.Save(models.State{Workouts: []models.Workout{{ID: "new"}}}); err != nil {
		t.Fatal(err)
	}

	loaded, found, err := local.Load()
	if err != nil || !found {
		t.Fatalf("load failed: found=%v err=%v", found, err)
	}
	if len(loaded.Workouts) != 1 || loaded.Workouts[0].ID != "new" {
		t.Errorf("workouts = %+v, want only the latest save", loaded.Workouts)
	}
}
