package models

import "time"

// WeightUnit is the unit used for set and body weights.
type WeightUnit string

// DistanceUnit is the unit used for cardio distances.
type DistanceUnit string

// HeightUnit is the unit used for body height.
type HeightUnit string

const (
	WeightKg WeightUnit = "kg"
	WeightLb WeightUnit = "lb"

	DistanceKm DistanceUnit = "km"
	DistanceMi DistanceUnit = "mi"

	HeightCm HeightUnit = "cm"
	HeightIn HeightUnit = "in"
)

// MuscleGroup is one of the fixed body regions used to tag exercises.
type MuscleGroup string

const (
	Chest      MuscleGroup = "chest"
	Back       MuscleGroup = "back"
	Shoulders  MuscleGroup = "shoulders"
	Arms       MuscleGroup = "arms"
	Quads      MuscleGroup = "quads"
	Hamstrings MuscleGroup = "hamstrings"
	Core       MuscleGroup = "core"
	Neck       MuscleGroup = "neck"
	Forearms   MuscleGroup = "forearms"
)

// MuscleGroups lists every muscle group in display order.
var MuscleGroups = []MuscleGroup{
	Chest, Back, Shoulders, Arms, Quads, Hamstrings, Core, Neck, Forearms,
}

// CardioType is one of the supported cardio session types.
type CardioType string

const (
	Running      CardioType = "running"
	Cycling      CardioType = "cycling"
	Swimming     CardioType = "swimming"
	Elliptical   CardioType = "elliptical"
	Rowing       CardioType = "rowing"
	StairClimber CardioType = "stair-climber"
)

// CardioTypes lists every cardio type in display order.
var CardioTypes = []CardioType{
	Running, Cycling, Swimming, Elliptical, Rowing, StairClimber,
}

// Set is a single logged set of an exercise. Date is zero for plan sets and
// stamped when the set is recorded into exercise history.
type Set struct {
	Reps      int       `json:"reps"`
	Weight    float64   `json:"weight"`
	Completed bool      `json:"completed"`
	Date      time.Time `json:"date,omitzero"`
}

// Exercise is a plan-bound exercise: a library exercise reference plus the
// sets the plan prescribes.
type Exercise struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	MuscleGroups []MuscleGroup `json:"muscleGroups"`
	Sets         []Set         `json:"sets"`
	Notes        string        `json:"notes,omitempty"`
}

// CardioSession is one cardio entry in a workout.
type CardioSession struct {
	Type     CardioType `json:"type"`
	Minutes  float64    `json:"minutes"`
	Distance float64    `json:"distance"`
}

// Workout is a reusable named plan of exercises and cardio.
type Workout struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Exercises  []Exercise      `json:"exercises"`
	Cardio     []CardioSession `json:"cardio"`
	Notes      string          `json:"notes,omitempty"`
	IsTemplate bool            `json:"isTemplate,omitempty"`
}

// CompletedWorkout is an immutable snapshot of a finished session.
// WorkoutID points back at the originating plan but does not own it.
type CompletedWorkout struct {
	ID        string          `json:"id"`
	WorkoutID string          `json:"workoutId"`
	Name      string          `json:"name"`
	Exercises []Exercise      `json:"exercises"`
	Cardio    []CardioSession `json:"cardio"`
	Date      time.Time       `json:"date"`
	Duration  int             `json:"duration"`
}

// LibraryExercise is a catalog entry describing a movement, independent of
// any plan. Deleting one does not cascade to workouts that reference it.
type LibraryExercise struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	MuscleGroups []MuscleGroup `json:"muscleGroups"`
	Description  string        `json:"description,omitempty"`
	Equipment    []string      `json:"equipment,omitempty"`
}

// ExerciseHistory accumulates the completed sets ever recorded for one
// exercise id. There is at most one record per exercise id.
type ExerciseHistory struct {
	ExerciseID   string `json:"exerciseId"`
	ExerciseName string `json:"exerciseName"`
	Sets         []Set  `json:"sets"`
}

// BodyMetrics is one dated body measurement. BodyFatPercentage is optional;
// FFMI is unavailable without it.
type BodyMetrics struct {
	Date              time.Time `json:"date"`
	Weight            float64   `json:"weight"`
	Height            float64   `json:"height"`
	BodyFatPercentage *float64  `json:"bodyFatPercentage,omitempty"`
}

// Settings holds the user's unit and appearance preferences.
type Settings struct {
	WeightUnit   WeightUnit   `json:"weightUnit"`
	DistanceUnit DistanceUnit `json:"distanceUnit"`
	HeightUnit   HeightUnit   `json:"heightUnit"`
	DarkMode     bool         `json:"darkMode"`
}

// DefaultSettings returns the settings a fresh install starts with.
func DefaultSettings() Settings {
	return Settings{
		WeightUnit:   WeightKg,
		DistanceUnit: DistanceKm,
		HeightUnit:   HeightCm,
		DarkMode:     false,
	}
}

// State is the full persistable application state. Its JSON shape is the
// wire contract shared by the local document store, the export file, and
// the remote sync document.
type State struct {
	Workouts          []Workout          `json:"workouts"`
	CompletedWorkouts []CompletedWorkout `json:"completedWorkouts"`
	ExerciseLibrary   []LibraryExercise  `json:"exerciseLibrary"`
	ExerciseHistory   []ExerciseHistory  `json:"exerciseHistory"`
	BodyMetrics       []BodyMetrics      `json:"bodyMetrics"`
	Settings          Settings           `json:"settings"`
}

// Clone returns a deep copy of the state. Mutating the copy never touches
// the original.
func (s State) Clone() State {
	out := State{
		Workouts:          make([]Workout, len(s.Workouts)),
		CompletedWorkouts: make([]CompletedWorkout, len(s.CompletedWorkouts)),
		ExerciseLibrary:   make([]LibraryExercise, len(s.ExerciseLibrary)),
		ExerciseHistory:   make([]ExerciseHistory, len(s.ExerciseHistory)),
		BodyMetrics:       make([]BodyMetrics, len(s.BodyMetrics)),
		Settings:          s.Settings,
	}
	for i, w := range s.Workouts {
		out.Workouts[i] = w.Clone()
	}
	for i, c := range s.CompletedWorkouts {
		out.CompletedWorkouts[i] = c.Clone()
	}
	for i, e := range s.ExerciseLibrary {
		out.ExerciseLibrary[i] = e.Clone()
	}
	for i, h := range s.ExerciseHistory {
		out.ExerciseHistory[i] = ExerciseHistory{
			ExerciseID:   h.ExerciseID,
			ExerciseName: h.ExerciseName,
			Sets:         append([]Set(nil), h.Sets...),
		}
	}
	for i, m := range s.BodyMetrics {
		out.BodyMetrics[i] = m
		if m.BodyFatPercentage != nil {
			bf := *m.BodyFatPercentage
			out.BodyMetrics[i].BodyFatPercentage = &bf
		}
	}
	return out
}

// Clone returns a deep copy of the workout.
func (w Workout) Clone() Workout {
	out := w
	out.Exercises = cloneExercises(w.Exercises)
	out.Cardio = append([]CardioSession(nil), w.Cardio...)
	return out
}

// Clone returns a deep copy of the completed workout.
func (c CompletedWorkout) Clone() CompletedWorkout {
	out := c
	out.Exercises = cloneExercises(c.Exercises)
	out.Cardio = append([]CardioSession(nil), c.Cardio...)
	return out
}

// Clone returns a deep copy of the library exercise.
func (e LibraryExercise) Clone() LibraryExercise {
	out := e
	out.MuscleGroups = append([]MuscleGroup(nil), e.MuscleGroups...)
	out.Equipment = append([]string(nil), e.Equipment...)
	return out
}

func cloneExercises(src []Exercise) []Exercise {
	if src == nil {
		return nil
	}
	out := make([]Exercise, len(src))
	for i, ex := range src {
		out[i] = ex
		out[i].MuscleGroups = append([]MuscleGroup(nil), ex.MuscleGroups...)
		out[i].Sets = append([]Set(nil), ex.Sets...)
	}
	return out
}

// CompletedSets returns the sets of the exercise marked completed.
func (e Exercise) CompletedSets() []Set {
	var out []Set
	for _, s := range e.Sets {
		if s.Completed {
			out = append(out, s)
		}
	}
	return out
}
