// Package stats computes training aggregations over completed workouts and
// exercise history. Everything here is pure; nothing is persisted.
package stats

import (
	"math"
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// CardioTotals aggregates cardio sessions of one type.
type CardioTotals struct {
	Minutes  float64 `json:"minutes"`
	Distance float64 `json:"distance"`
	Sessions int     `json:"sessions"`
}

// WeeklyReport is the trailing-7-day training volume breakdown.
type WeeklyReport struct {
	WorkoutCount      int                                `json:"workoutCount"`
	SetsByMuscleGroup map[models.MuscleGroup]int         `json:"setsByMuscleGroup"`
	MostTrained       models.MuscleGroup                 `json:"mostTrained,omitempty"`
	CardioByType      map[models.CardioType]CardioTotals `json:"cardioByType"`
}

// Weekly aggregates completed workouts from the 7 days before now. A set
// counts toward every muscle group its exercise is tagged with.
func Weekly(completed []models.CompletedWorkout, now time.Time) WeeklyReport {
	cutoff := now.AddDate(0, 0, -7)
	report := WeeklyReport{
		SetsByMuscleGroup: make(map[models.MuscleGroup]int),
		CardioByType:      make(map[models.CardioType]CardioTotals),
	}

	for _, w := range completed {
		if w.Date.Before(cutoff) || w.Date.After(now) {
			continue
		}
		report.WorkoutCount++
		for _, ex := range w.Exercises {
			for _, mg := range ex.MuscleGroups {
				report.SetsByMuscleGroup[mg] += len(ex.Sets)
			}
		}
		for _, c := range w.Cardio {
			totals := report.CardioByType[c.Type]
			totals.Minutes += c.Minutes
			totals.Distance += c.Distance
			totals.Sessions++
			report.CardioByType[c.Type] = totals
		}
	}

	best := 0
	for _, mg := range models.MuscleGroups {
		if n := report.SetsByMuscleGroup[mg]; n > best {
			best = n
			report.MostTrained = mg
		}
	}
	return report
}

// DayPoint is one charted day of an exercise's history.
type DayPoint struct {
	Date      string  `json:"date"` // YYYY-MM-DD
	MaxWeight float64 `json:"maxWeight"`
	AvgWeight float64 `json:"avgWeight"`
	Volume    float64 `json:"volume"`
	Sets      int     `json:"sets"`
}

// Records are the all-time personal records for an exercise.
type Records struct {
	MaxWeight float64 `json:"maxWeight"`
	MaxReps   int     `json:"maxReps"`
	MaxVolume float64 `json:"maxVolume"` // best single-day volume
}

// Progress is the charted history of one exercise within a time range.
type Progress struct {
	ExerciseID   string     `json:"exerciseId"`
	ExerciseName string     `json:"exerciseName"`
	Days         []DayPoint `json:"days"`
	Records      Records    `json:"records"`
}

// ExerciseProgress summarizes one history record. Days are limited to sets
// on or after since (zero since means all time); records always cover the
// full history.
func ExerciseProgress(h models.ExerciseHistory, since time.Time) Progress {
	p := Progress{
		ExerciseID:   h.ExerciseID,
		ExerciseName: h.ExerciseName,
		Records:      records(h.Sets),
	}

	byDay := make(map[string][]models.Set)
	for _, set := range h.Sets {
		if !since.IsZero() && set.Date.Before(since) {
			continue
		}
		day := set.Date.Format("2006-01-02")
		byDay[day] = append(byDay[day], set)
	}

	for day, sets := range byDay {
		var volume, maxWeight float64
		var reps int
		for _, set := range sets {
			volume += set.Weight * float64(set.Reps)
			reps += set.Reps
			if set.Weight > maxWeight {
				maxWeight = set.Weight
			}
		}
		avg := 0.0
		if reps > 0 {
			avg = math.Round(volume/float64(reps)*10) / 10
		}
		p.Days = append(p.Days, DayPoint{
			Date:      day,
			MaxWeight: maxWeight,
			AvgWeight: avg,
			Volume:    volume,
			Sets:      len(sets),
		})
	}
	sort.Slice(p.Days, func(i, j int) bool { return p.Days[i].Date < p.Days[j].Date })
	return p
}

func records(sets []models.Set) Records {
	var r Records
	dayVolume := make(map[string]float64)
	for _, set := range sets {
		if set.Weight > r.MaxWeight {
			r.MaxWeight = set.Weight
		}
		if set.Reps > r.MaxReps {
			r.MaxReps = set.Reps
		}
		dayVolume[set.Date.Format("2006-01-02")] += set.Weight * float64(set.Reps)
	}
	for _, v := range dayVolume {
		if v > r.MaxVolume {
			r.MaxVolume = v
		}
	}
	return r
}
