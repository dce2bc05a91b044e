package sync

import (
	"context"
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// DefaultDebounce is how long the syncer waits after the last change
// before writing the full state remotely.
const DefaultDebounce = 2 * time.Second

// Source is the slice of the workout store the syncer needs: a snapshot of
// the current state and the setters used to hydrate from the cloud.
type Source interface {
	Snapshot() models.State
	SetWorkouts([]models.Workout)
	SetCompletedWorkouts([]models.CompletedWorkout)
	SetExerciseLibrary([]models.LibraryExercise)
	SetExerciseHistory([]models.ExerciseHistory)
	SetBodyMetrics([]models.BodyMetrics)
	SetSettings(models.Settings)
}

// Syncer mirrors a store to a Remote for one user with debounced writes.
type Syncer struct {
	remote   Remote
	src      Source
	userID   string
	log      *slog.Logger
	debounce time.Duration
	now      func() time.Time
}

// NewSyncer creates a syncer for the given user. A zero debounce uses
// DefaultDebounce.
func NewSyncer(remote Remote, src Source, userID string, log *slog.Logger, debounce time.Duration) *Syncer {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Syncer{
		remote:   remote,
		src:      src,
		userID:   userID,
		log:      log,
		debounce: debounce,
		now:      time.Now,
	}
}

// Hydrate performs the initial exchange: when the user has a remote
// document its collections replace local state; otherwise the current
// local state seeds the remote.
func (s *Syncer) Hydrate(ctx context.Context) error {
	state, found, err := s.remote.Load(ctx, s.userID)
	if err != nil {
		return err
	}
	if !found {
		return s.remote.Save(ctx, s.userID, s.src.Snapshot(), s.now())
	}

	s.src.SetWorkouts(state.Workouts)
	s.src.SetCompletedWorkouts(state.CompletedWorkouts)
	s.src.SetExerciseLibrary(state.ExerciseLibrary)
	s.src.SetExerciseHistory(state.ExerciseHistory)
	s.src.SetBodyMetrics(state.BodyMetrics)
	s.src.SetSettings(state.Settings)
	return nil
}

// Run watches the change channel and writes the full state remotely after
// the debounce window passes with no further changes. Each change resets
// the window, so only the latest state is eventually written. When ctx is
// cancelled a still-pending write is flushed once before returning.
func (s *Syncer) Run(ctx context.Context, changes <-chan struct{}) {
	timer := time.NewTimer(s.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	pending := false

	for {
		select {
		case <-ctx.Done():
			if pending {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				s.write(flushCtx)
				cancel()
			}
			return
		case <-changes:
			if pending && !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(s.debounce)
			pending = true
		case <-timer.C:
			pending = false
			s.write(ctx)
		}
	}
}

// write pushes the current snapshot. Errors are logged and swallowed;
// local state remains the source of truth.
func (s *Syncer) write(ctx context.Context) {
	if err := s.remote.Save(ctx, s.userID, s.src.Snapshot(), s.now()); err != nil {
		s.log.Error("cloud sync failed", "user", s.userID, "error", err)
	}
}
