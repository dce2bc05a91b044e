package store

import (
	"math"
	"sort"

	"github.com/claude/liftlog/internal/models"
)

// Fixed unit conversion constants.
const (
	lbToKg = 0.453592
	inToM  = 0.0254
)

// RecentWorkouts returns the three most recent completed workouts, newest
// first. It is a pure projection over the completed history; insertion
// order does not matter.
func (s *Store) RecentWorkouts() []models.CompletedWorkout {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.CompletedWorkout, len(s.state.CompletedWorkouts))
	for i, c := range s.state.CompletedWorkouts {
		out[i] = c.Clone()
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if len(out) > 3 {
		out = out[:3]
	}
	return out
}

// Templates returns the workout plans flagged as templates.
func (s *Store) Templates() []models.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Workout
	for _, w := range s.state.Workouts {
		if w.IsTemplate {
			out = append(out, w.Clone())
		}
	}
	return out
}

// LatestBodyMetrics returns the measurement with the newest date. The
// second return is false when no measurements exist.
func (s *Store) LatestBodyMetrics() (models.BodyMetrics, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latestBodyMetrics()
}

func (s *Store) latestBodyMetrics() (models.BodyMetrics, bool) {
	if len(s.state.BodyMetrics) == 0 {
		return models.BodyMetrics{}, false
	}
	latest := s.state.BodyMetrics[0]
	for _, m := range s.state.BodyMetrics[1:] {
		if m.Date.After(latest.Date) {
			latest = m
		}
	}
	return latest, true
}

// BMI computes the body mass index from the latest measurement, converting
// from the configured units first. The second return is false when no
// measurements exist.
func (s *Store) BMI() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.latestBodyMetrics()
	if !ok {
		return 0, false
	}
	kg := s.weightKg(m.Weight)
	meters := s.heightM(m.Height)
	if meters <= 0 {
		return 0, false
	}
	return round1(kg / (meters * meters)), true
}

// FFMI computes the fat-free mass index, normalized to 1.8 m:
// lean/h² + 6.1×(1.8−h), lean = weight×(1−bodyFat/100). The second return
// is false when there is no measurement or no body-fat percentage.
func (s *Store) FFMI() (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	m, ok := s.latestBodyMetrics()
	if !ok || m.BodyFatPercentage == nil {
		return 0, false
	}
	kg := s.weightKg(m.Weight)
	meters := s.heightM(m.Height)
	if meters <= 0 {
		return 0, false
	}
	lean := kg * (1 - *m.BodyFatPercentage/100)
	return round1(lean/(meters*meters) + 6.1*(1.8-meters)), true
}

// weightKg converts a stored weight to kilograms per the current settings.
// Callers must hold mu.
func (s *Store) weightKg(w float64) float64 {
	if s.state.Settings.WeightUnit == models.WeightLb {
		return w * lbToKg
	}
	return w
}

// heightM converts a stored height to meters per the current settings.
// Callers must hold mu.
func (s *Store) heightM(h float64) float64 {
	if s.state.Settings.HeightUnit == models.HeightIn {
		return h * inToM
	}
	return h / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
