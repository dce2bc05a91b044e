// Package store holds all mutable application state and exposes the only
// sanctioned mutation operations. Every successful mutation is followed by
// a persistence attempt and a change signal for the sync layer.
package store

import (
	"log/slog"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/library"
	"github.com/claude/liftlog/internal/models"
	"github.com/google/uuid"
)

// Persister durably saves the full state document. Save errors are logged
// by the store and otherwise swallowed; in-memory state stays authoritative.
type Persister interface {
	Save(state models.State) error
}

// Store is the in-memory source of truth for workout data. All operations
// are safe for concurrent use; there is a single writer at a time.
type Store struct {
	mu      sync.Mutex
	state   models.State
	active  string // id of the active workout, "" when none
	persist Persister
	log     *slog.Logger
	changes chan struct{}
	now     func() time.Time
}

// Option configures a Store at construction time.
type Option func(*Store)

// WithPersister sets the durable local store flushed after each mutation.
func WithPersister(p Persister) Option {
	return func(s *Store) { s.persist = p }
}

// WithClock overrides the time source. Tests use this to pin timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New creates a store hydrated from initial. When initial is nil the store
// starts from defaults: no workouts, the seed exercise library, and
// default settings.
func New(initial *models.State, log *slog.Logger, opts ...Option) *Store {
	s := &Store{
		log:     log,
		changes: make(chan struct{}, 1),
		now:     time.Now,
	}
	if initial != nil {
		s.state = initial.Clone()
	} else {
		s.state = models.State{
			ExerciseLibrary: library.Seed(),
			Settings:        models.DefaultSettings(),
		}
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Changes returns a channel that receives a signal after each mutation.
// Signals coalesce: a slow consumer sees at least one signal for any burst
// of mutations and reads the latest state when it gets around to it.
func (s *Store) Changes() <-chan struct{} {
	return s.changes
}

// Snapshot returns a deep copy of the full state.
func (s *Store) Snapshot() models.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// flush persists the state and signals watchers. Callers must hold mu.
func (s *Store) flush() {
	if s.persist != nil {
		if err := s.persist.Save(s.state.Clone()); err != nil {
			s.log.Error("persisting state", "error", err)
		}
	}
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// CreateWorkout appends a new empty workout plan and returns its id.
func (s *Store) CreateWorkout(name string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	w := models.Workout{
		ID:        uuid.NewString(),
		Name:      name,
		Exercises: []models.Exercise{},
		Cardio:    []models.CardioSession{},
	}
	s.state.Workouts = append(s.state.Workouts, w)
	s.flush()
	return w.ID
}

// UpdateWorkout replaces the stored workout with the same id. Unknown ids
// are a no-op.
func (s *Store) UpdateWorkout(w models.Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Workouts {
		if s.state.Workouts[i].ID == w.ID {
			s.state.Workouts[i] = w.Clone()
			s.flush()
			return
		}
	}
}

// DeleteWorkout removes the workout with the given id. Unknown ids are a
// no-op. Deleting the active workout leaves the active pointer dangling;
// the pointer only changes through StartWorkout and CompleteWorkout.
func (s *Store) DeleteWorkout(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.Workouts {
		if s.state.Workouts[i].ID == id {
			s.state.Workouts = append(s.state.Workouts[:i], s.state.Workouts[i+1:]...)
			s.flush()
			return
		}
	}
}

// StartWorkout marks the workout with the given id as the active session.
// Starting a second workout replaces the pointer: last start wins.
func (s *Store) StartWorkout(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.active = id
	s.flush()
}

// ActiveWorkoutID returns the id of the active workout, or "" when none.
func (s *Store) ActiveWorkoutID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// CompleteWorkout appends the finished-session snapshot, records exercise
// history for every exercise in it with at least one completed set, and
// clears the active pointer. The originating plan is untouched.
func (s *Store) CompleteWorkout(snapshot models.CompletedWorkout) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.CompletedWorkouts = append(s.state.CompletedWorkouts, snapshot.Clone())
	for _, ex := range snapshot.Exercises {
		if done := ex.CompletedSets(); len(done) > 0 {
			s.recordProgress(ex.ID, ex.Name, done)
		}
	}
	s.active = ""
	s.flush()
}

// DuplicateWorkout deep-copies the workout with the given id under a new
// id, suffixes the name with " (Copy)", and clears the template flag.
// Returns the new id, or "" when the source id is unknown.
func (s *Store) DuplicateWorkout(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.state.Workouts {
		if w.ID == id {
			dup := w.Clone()
			dup.ID = uuid.NewString()
			dup.Name = w.Name + " (Copy)"
			dup.IsTemplate = false
			s.state.Workouts = append(s.state.Workouts, dup)
			s.flush()
			return dup.ID
		}
	}
	return ""
}

// Workouts returns a copy of all workout plans.
func (s *Store) Workouts() []models.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Workout, len(s.state.Workouts))
	for i, w := range s.state.Workouts {
		out[i] = w.Clone()
	}
	return out
}

// Workout returns the plan with the given id.
func (s *Store) Workout(id string) (models.Workout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, w := range s.state.Workouts {
		if w.ID == id {
			return w.Clone(), true
		}
	}
	return models.Workout{}, false
}

// CompletedWorkouts returns a copy of the completed-workout history.
func (s *Store) CompletedWorkouts() []models.CompletedWorkout {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CompletedWorkout, len(s.state.CompletedWorkouts))
	for i, c := range s.state.CompletedWorkouts {
		out[i] = c.Clone()
	}
	return out
}

// AddExerciseToLibrary appends a library entry, assigning an id when the
// caller did not supply one, and returns the entry's id.
func (s *Store) AddExerciseToLibrary(e models.LibraryExercise) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	s.state.ExerciseLibrary = append(s.state.ExerciseLibrary, e.Clone())
	s.flush()
	return e.ID
}

// UpdateExerciseInLibrary replaces the entry with the same id. Unknown ids
// are a no-op.
func (s *Store) UpdateExerciseInLibrary(e models.LibraryExercise) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.ExerciseLibrary {
		if s.state.ExerciseLibrary[i].ID == e.ID {
			s.state.ExerciseLibrary[i] = e.Clone()
			s.flush()
			return
		}
	}
}

// DeleteExerciseFromLibrary removes the entry with the given id. Workouts
// referencing it keep their exercise copies; there is no cascade.
func (s *Store) DeleteExerciseFromLibrary(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.state.ExerciseLibrary {
		if s.state.ExerciseLibrary[i].ID == id {
			s.state.ExerciseLibrary = append(s.state.ExerciseLibrary[:i], s.state.ExerciseLibrary[i+1:]...)
			s.flush()
			return
		}
	}
}

// ExerciseLibrary returns a copy of the library catalog.
func (s *Store) ExerciseLibrary() []models.LibraryExercise {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.LibraryExercise, len(s.state.ExerciseLibrary))
	for i, e := range s.state.ExerciseLibrary {
		out[i] = e.Clone()
	}
	return out
}

// RecordExerciseProgress upserts completed sets into the history record
// for the given exercise id, stamping each set with the current time.
// Callers pass sets already filtered to completed ones.
func (s *Store) RecordExerciseProgress(exerciseID, name string, sets []models.Set) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recordProgress(exerciseID, name, sets)
	s.flush()
}

// recordProgress is the lock-held upsert shared by RecordExerciseProgress
// and CompleteWorkout. Find by exercise id, create if absent, else append.
func (s *Store) recordProgress(exerciseID, name string, sets []models.Set) {
	stamped := make([]models.Set, len(sets))
	now := s.now()
	for i, set := range sets {
		stamped[i] = set
		stamped[i].Date = now
	}

	for i := range s.state.ExerciseHistory {
		if s.state.ExerciseHistory[i].ExerciseID == exerciseID {
			s.state.ExerciseHistory[i].Sets = append(s.state.ExerciseHistory[i].Sets, stamped...)
			return
		}
	}
	s.state.ExerciseHistory = append(s.state.ExerciseHistory, models.ExerciseHistory{
		ExerciseID:   exerciseID,
		ExerciseName: name,
		Sets:         stamped,
	})
}

// ExerciseHistory returns a copy of all per-exercise history records.
func (s *Store) ExerciseHistory() []models.ExerciseHistory {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.ExerciseHistory, len(s.state.ExerciseHistory))
	for i, h := range s.state.ExerciseHistory {
		out[i] = models.ExerciseHistory{
			ExerciseID:   h.ExerciseID,
			ExerciseName: h.ExerciseName,
			Sets:         append([]models.Set(nil), h.Sets...),
		}
	}
	return out
}

// AddBodyMetrics appends a measurement stamped with the current time.
func (s *Store) AddBodyMetrics(weight, height float64, bodyFatPercentage *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := models.BodyMetrics{
		Date:   s.now(),
		Weight: weight,
		Height: height,
	}
	if bodyFatPercentage != nil {
		bf := *bodyFatPercentage
		m.BodyFatPercentage = &bf
	}
	s.state.BodyMetrics = append(s.state.BodyMetrics, m)
	s.flush()
}

// BodyMetrics returns a copy of all recorded measurements.
func (s *Store) BodyMetrics() []models.BodyMetrics {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.BodyMetrics(nil), s.state.BodyMetrics...)
}

// SettingsPatch is a partial settings update; nil fields keep their
// current value.
type SettingsPatch struct {
	WeightUnit   *models.WeightUnit   `json:"weightUnit"`
	DistanceUnit *models.DistanceUnit `json:"distanceUnit"`
	HeightUnit   *models.HeightUnit   `json:"heightUnit"`
	DarkMode     *bool                `json:"darkMode"`
}

// UpdateSettings merges the patch into the current settings.
func (s *Store) UpdateSettings(p SettingsPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.WeightUnit != nil {
		s.state.Settings.WeightUnit = *p.WeightUnit
	}
	if p.DistanceUnit != nil {
		s.state.Settings.DistanceUnit = *p.DistanceUnit
	}
	if p.HeightUnit != nil {
		s.state.Settings.HeightUnit = *p.HeightUnit
	}
	if p.DarkMode != nil {
		s.state.Settings.DarkMode = *p.DarkMode
	}
	s.flush()
}

// Settings returns the current settings.
func (s *Store) Settings() models.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Settings
}

// The wholesale setters below replace a whole collection. They exist for
// the import and cloud-sync bridges only; interactive mutation goes
// through the operations above.

// SetWorkouts replaces the workout plans.
func (s *Store) SetWorkouts(ws []models.Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Workouts = cloneWorkouts(ws)
	s.flush()
}

// SetCompletedWorkouts replaces the completed-workout history.
func (s *Store) SetCompletedWorkouts(cs []models.CompletedWorkout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.CompletedWorkout, len(cs))
	for i, c := range cs {
		out[i] = c.Clone()
	}
	s.state.CompletedWorkouts = out
	s.flush()
}

// SetExerciseLibrary replaces the library catalog.
func (s *Store) SetExerciseLibrary(es []models.LibraryExercise) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LibraryExercise, len(es))
	for i, e := range es {
		out[i] = e.Clone()
	}
	s.state.ExerciseLibrary = out
	s.flush()
}

// SetExerciseHistory replaces all history records.
func (s *Store) SetExerciseHistory(hs []models.ExerciseHistory) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.ExerciseHistory, len(hs))
	for i, h := range hs {
		out[i] = models.ExerciseHistory{
			ExerciseID:   h.ExerciseID,
			ExerciseName: h.ExerciseName,
			Sets:         append([]models.Set(nil), h.Sets...),
		}
	}
	s.state.ExerciseHistory = out
	s.flush()
}

// SetBodyMetrics replaces all body measurements.
func (s *Store) SetBodyMetrics(ms []models.BodyMetrics) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.BodyMetrics = append([]models.BodyMetrics(nil), ms...)
	s.flush()
}

// SetSettings replaces the settings wholesale.
func (s *Store) SetSettings(st models.Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state.Settings = st
	s.flush()
}

func cloneWorkouts(ws []models.Workout) []models.Workout {
	out := make([]models.Workout, len(ws))
	for i, w := range ws {
		out[i] = w.Clone()
	}
	return out
}
