package library

import (
	"testing"

	"github.com/claude/liftlog/internal/models"
)

// TestSeedCatalog verifies the seed catalog is well-formed: enough entries,
// unique ids, and every entry named and tagged with known muscle groups.
func TestSeedCatalog(t *testing.T) {
	catalog := Seed()

	if len(catalog) < 50 {
		t.Fatalf("seed catalog = %d entries, want at least 50", len(catalog))
	}

	known := make(map[models.MuscleGroup]bool)
	for _, mg := range models.MuscleGroups {
		known[mg] = true
	}

	seen := make(map[string]bool)
	for _, e := range catalog {
		if e.ID == "" || e.Name == "" {
			t.Errorf("entry %+v missing id or name", e)
		}
		if seen[e.ID] {
			t.Errorf("duplicate id %q", e.ID)
		}
		seen[e.ID] = true
		if len(e.MuscleGroups) == 0 {
			t.Errorf("entry %q has no muscle groups", e.Name)
		}
		for _, mg := range e.MuscleGroups {
			if !known[mg] {
				t.Errorf("entry %q tagged with unknown group %q", e.Name, mg)
			}
		}
	}
}

// TestSeedCoversAllGroups verifies every muscle group has at least one seed
// exercise.
func TestSeedCoversAllGroups(t *testing.T) {
	byGroup := ByMuscleGroup(Seed())
	for _, mg := range models.MuscleGroups {
		if len(byGroup[mg]) == 0 {
			t.Errorf("muscle group %q has no seed exercises", mg)
		}
	}
}

// TestSeedReturnsFreshCopies verifies callers can mutate the returned slice
// without corrupting later seeds.
func TestSeedReturnsFreshCopies(t *testing.T) {
	first := Seed()
	first[0].Name = "Mutated"
	first[0].MuscleGroups[0] = "mutated"

	second := Seed()
	if second[0].Name == "Mutated" || second[0].MuscleGroups[0] == "mutated" {
		t.Error("seed catalog shares state between calls")
	}
}

// TestFilter verifies name and muscle-group filtering compose.
func TestFilter(t *testing.T) {
	catalog := []models.LibraryExercise{
		{ID: "1", Name: "Bench Press", MuscleGroups: []models.MuscleGroup{models.Chest}},
		{ID: "2", Name: "Incline Bench Press", MuscleGroups: []models.MuscleGroup{models.Chest, models.Shoulders}},
		{ID: "3", Name: "Squat", MuscleGroups: []models.MuscleGroup{models.Quads}},
	}

	if got := Filter(catalog, "bench", nil); len(got) != 2 {
		t.Errorf("Filter(bench) = %d entries, want 2 (case-insensitive)", len(got))
	}
	if got := Filter(catalog, "", []models.MuscleGroup{models.Shoulders}); len(got) != 1 || got[0].ID != "2" {
		t.Errorf("Filter(shoulders) = %+v, want only incline bench", got)
	}
	if got := Filter(catalog, "bench", []models.MuscleGroup{models.Quads}); len(got) != 0 {
		t.Errorf("Filter(bench, quads) = %d entries, want 0", len(got))
	}
	if got := Filter(catalog, "", nil); len(got) != 3 {
		t.Errorf("Filter(no criteria) = %d entries, want all 3", len(got))
	}
}
