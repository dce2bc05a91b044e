// Package library holds the built-in exercise catalog and lookup helpers.
package library

import (
	"strings"

	"github.com/claude/liftlog/internal/models"
)

// Seed returns the built-in exercise catalog. It is the initial value of
// the exercise-library collection; callers get a fresh copy each time.
func Seed() []models.LibraryExercise {
	out := make([]models.LibraryExercise, len(seed))
	for i, e := range seed {
		out[i] = e.Clone()
	}
	return out
}

var seed = []models.LibraryExercise{
	// Chest
	{ID: "lib-bench-press", Name: "Bench Press", MuscleGroups: []models.MuscleGroup{models.Chest, models.Arms}, Description: "Press a barbell from the chest while lying on a flat bench.", Equipment: []string{"barbell", "bench"}},
	{ID: "lib-incline-bench-press", Name: "Incline Bench Press", MuscleGroups: []models.MuscleGroup{models.Chest, models.Shoulders}, Description: "Bench press on an incline bench to emphasize the upper chest.", Equipment: []string{"barbell", "incline bench"}},
	{ID: "lib-dumbbell-press", Name: "Dumbbell Press", MuscleGroups: []models.MuscleGroup{models.Chest, models.Arms}, Description: "Press dumbbells from chest level while lying on a bench.", Equipment: []string{"dumbbells", "bench"}},
	{ID: "lib-dumbbell-fly", Name: "Dumbbell Fly", MuscleGroups: []models.MuscleGroup{models.Chest}, Description: "Open the arms in a wide arc with a slight elbow bend, then bring the dumbbells together over the chest.", Equipment: []string{"dumbbells", "bench"}},
	{ID: "lib-push-up", Name: "Push-Up", MuscleGroups: []models.MuscleGroup{models.Chest, models.Arms, models.Core}, Description: "Bodyweight press from a plank position.", Equipment: []string{"none"}},
	{ID: "lib-cable-crossover", Name: "Cable Crossover", MuscleGroups: []models.MuscleGroup{models.Chest}, Description: "Bring cable handles together in front of the chest from a high pulley.", Equipment: []string{"cable machine"}},
	{ID: "lib-chest-dip", Name: "Chest Dip", MuscleGroups: []models.MuscleGroup{models.Chest, models.Arms}, Description: "Dip between parallel bars leaning forward to load the chest.", Equipment: []string{"dip bars"}},

	// Back
	{ID: "lib-pull-up", Name: "Pull-Up", MuscleGroups: []models.MuscleGroup{models.Back, models.Arms}, Description: "Pull the body up to a bar with an overhand grip.", Equipment: []string{"pull-up bar"}},
	{ID: "lib-chin-up", Name: "Chin-Up", MuscleGroups: []models.MuscleGroup{models.Back, models.Arms}, Description: "Pull the body up to a bar with an underhand grip.", Equipment: []string{"pull-up bar"}},
	{ID: "lib-barbell-row", Name: "Barbell Row", MuscleGroups: []models.MuscleGroup{models.Back}, Description: "Row a barbell to the torso from a hinged position.", Equipment: []string{"barbell"}},
	{ID: "lib-dumbbell-row", Name: "Dumbbell Row", MuscleGroups: []models.MuscleGroup{models.Back}, Description: "Single-arm row with one hand braced on a bench.", Equipment: []string{"dumbbell", "bench"}},
	{ID: "lib-lat-pulldown", Name: "Lat Pulldown", MuscleGroups: []models.MuscleGroup{models.Back}, Description: "Pull a wide bar down to the upper chest on a pulldown machine.", Equipment: []string{"cable machine"}},
	{ID: "lib-seated-cable-row", Name: "Seated Cable Row", MuscleGroups: []models.MuscleGroup{models.Back}, Description: "Row a cable handle to the waist while seated.", Equipment: []string{"cable machine"}},
	{ID: "lib-deadlift", Name: "Deadlift", MuscleGroups: []models.MuscleGroup{models.Back, models.Hamstrings}, Description: "Lift a barbell from the floor to a standing lockout.", Equipment: []string{"barbell"}},

	// Shoulders
	{ID: "lib-overhead-press", Name: "Overhead Press", MuscleGroups: []models.MuscleGroup{models.Shoulders, models.Arms}, Description: "Press a barbell from the shoulders to overhead while standing.", Equipment: []string{"barbell"}},
	{ID: "lib-dumbbell-shoulder-press", Name: "Dumbbell Shoulder Press", MuscleGroups: []models.MuscleGroup{models.Shoulders}, Description: "Press dumbbells overhead from shoulder height.", Equipment: []string{"dumbbells"}},
	{ID: "lib-lateral-raise", Name: "Lateral Raise", MuscleGroups: []models.MuscleGroup{models.Shoulders}, Description: "Raise dumbbells out to the sides to shoulder height.", Equipment: []string{"dumbbells"}},
	{ID: "lib-front-raise", Name: "Front Raise", MuscleGroups: []models.MuscleGroup{models.Shoulders}, Description: "Raise a dumbbell or plate straight in front to shoulder height.", Equipment: []string{"dumbbells", "plate"}},
	{ID: "lib-rear-delt-fly", Name: "Rear Delt Fly", MuscleGroups: []models.MuscleGroup{models.Shoulders, models.Back}, Description: "Hinge forward and raise dumbbells out to the sides.", Equipment: []string{"dumbbells"}},
	{ID: "lib-face-pull", Name: "Face Pull", MuscleGroups: []models.MuscleGroup{models.Shoulders, models.Back}, Description: "Pull a rope attachment toward the face on a high pulley.", Equipment: []string{"cable machine", "rope"}},

	// Arms
	{ID: "lib-barbell-curl", Name: "Barbell Curl", MuscleGroups: []models.MuscleGroup{models.Arms}, Description: "Curl a barbell from full extension with elbows pinned.", Equipment: []string{"barbell"}},
	{ID: "lib-dumbbell-curl", Name: "Dumbbell Curl", MuscleGroups: []models.MuscleGroup{models.Arms}, Description: "Alternating or simultaneous dumbbell curls.", Equipment: []string{"dumbbells"}},
	{ID: "lib-hammer-curl", Name: "Hammer Curl", MuscleGroups: []models.MuscleGroup{models.Arms, models.Forearms}, Description: "Curl dumbbells with a neutral grip.", Equipment: []string{"dumbbells"}},
	{ID: "lib-tricep-pushdown", Name: "Tricep Pushdown", MuscleGroups: []models.MuscleGroup{models.Arms}, Description: "Extend the elbows against a high cable with a bar or rope.", Equipment: []string{"cable machine"}},
	{ID: "lib-skull-crusher", Name: "Skull Crusher", MuscleGroups: []models.MuscleGroup{models.Arms}, Description: "Lower an EZ bar to the forehead and extend while lying on a bench.", Equipment: []string{"ez bar", "bench"}},
	{ID: "lib-close-grip-bench", Name: "Close-Grip Bench Press", MuscleGroups: []models.MuscleGroup{models.Arms, models.Chest}, Description: "Bench press with a narrow grip to load the triceps.", Equipment: []string{"barbell", "bench"}},

	// Quads
	{ID: "lib-back-squat", Name: "Back Squat", MuscleGroups: []models.MuscleGroup{models.Quads, models.Hamstrings, models.Core}, Description: "Squat with a barbell across the upper back.", Equipment: []string{"barbell", "squat rack"}},
	{ID: "lib-front-squat", Name: "Front Squat", MuscleGroups: []models.MuscleGroup{models.Quads, models.Core}, Description: "Squat with the barbell racked on the front of the shoulders.", Equipment: []string{"barbell", "squat rack"}},
	{ID: "lib-leg-press", Name: "Leg Press", MuscleGroups: []models.MuscleGroup{models.Quads, models.Hamstrings}, Description: "Press a loaded sled away on a leg press machine.", Equipment: []string{"leg press machine"}},
	{ID: "lib-lunge", Name: "Lunge", MuscleGroups: []models.MuscleGroup{models.Quads, models.Hamstrings}, Description: "Step forward and lower until both knees reach ninety degrees.", Equipment: []string{"dumbbells", "none"}},
	{ID: "lib-leg-extension", Name: "Leg Extension", MuscleGroups: []models.MuscleGroup{models.Quads}, Description: "Extend the knees against a padded lever.", Equipment: []string{"leg extension machine"}},
	{ID: "lib-bulgarian-split-squat", Name: "Bulgarian Split Squat", MuscleGroups: []models.MuscleGroup{models.Quads, models.Hamstrings}, Description: "Single-leg squat with the rear foot elevated on a bench.", Equipment: []string{"dumbbells", "bench"}},

	// Hamstrings
	{ID: "lib-romanian-deadlift", Name: "Romanian Deadlift", MuscleGroups: []models.MuscleGroup{models.Hamstrings, models.Back}, Description: "Hinge at the hips with a slight knee bend, lowering the bar along the thighs.", Equipment: []string{"barbell"}},
	{ID: "lib-leg-curl", Name: "Leg Curl", MuscleGroups: []models.MuscleGroup{models.Hamstrings}, Description: "Curl the heels toward the glutes against a padded lever.", Equipment: []string{"leg curl machine"}},
	{ID: "lib-good-morning", Name: "Good Morning", MuscleGroups: []models.MuscleGroup{models.Hamstrings, models.Back}, Description: "Hinge forward with a barbell on the upper back.", Equipment: []string{"barbell"}},
	{ID: "lib-glute-ham-raise", Name: "Glute-Ham Raise", MuscleGroups: []models.MuscleGroup{models.Hamstrings}, Description: "Lower and raise the torso using the hamstrings on a GHD.", Equipment: []string{"ghd machine"}},
	{ID: "lib-hip-thrust", Name: "Hip Thrust", MuscleGroups: []models.MuscleGroup{models.Hamstrings, models.Core}, Description: "Drive the hips up with a barbell across the lap and shoulders on a bench.", Equipment: []string{"barbell", "bench"}},

	// Core
	{ID: "lib-plank", Name: "Plank", MuscleGroups: []models.MuscleGroup{models.Core}, Description: "Hold a straight line from head to heels on the forearms.", Equipment: []string{"none"}},
	{ID: "lib-crunch", Name: "Crunch", MuscleGroups: []models.MuscleGroup{models.Core}, Description: "Curl the shoulders toward the pelvis while lying on the back.", Equipment: []string{"none"}},
	{ID: "lib-hanging-leg-raise", Name: "Hanging Leg Raise", MuscleGroups: []models.MuscleGroup{models.Core}, Description: "Raise straight legs to horizontal while hanging from a bar.", Equipment: []string{"pull-up bar"}},
	{ID: "lib-russian-twist", Name: "Russian Twist", MuscleGroups: []models.MuscleGroup{models.Core}, Description: "Rotate the torso side to side holding a weight, feet off the floor.", Equipment: []string{"plate", "medicine ball"}},
	{ID: "lib-ab-wheel-rollout", Name: "Ab Wheel Rollout", MuscleGroups: []models.MuscleGroup{models.Core}, Description: "Roll an ab wheel forward from the knees keeping the trunk rigid.", Equipment: []string{"ab wheel"}},
	{ID: "lib-cable-woodchop", Name: "Cable Woodchop", MuscleGroups: []models.MuscleGroup{models.Core}, Description: "Pull a cable diagonally across the body in a chopping motion.", Equipment: []string{"cable machine"}},

	// Neck
	{ID: "lib-neck-curl", Name: "Neck Curl", MuscleGroups: []models.MuscleGroup{models.Neck}, Description: "Curl the head forward against a plate while lying face up.", Equipment: []string{"plate", "bench"}},
	{ID: "lib-neck-extension", Name: "Neck Extension", MuscleGroups: []models.MuscleGroup{models.Neck}, Description: "Extend the head back against resistance while lying face down.", Equipment: []string{"plate", "bench"}},
	{ID: "lib-shrug", Name: "Barbell Shrug", MuscleGroups: []models.MuscleGroup{models.Neck, models.Back}, Description: "Elevate the shoulders straight up holding a barbell.", Equipment: []string{"barbell"}},

	// Forearms
	{ID: "lib-wrist-curl", Name: "Wrist Curl", MuscleGroups: []models.MuscleGroup{models.Forearms}, Description: "Curl the wrists up with forearms braced on a bench.", Equipment: []string{"barbell", "bench"}},
	{ID: "lib-reverse-wrist-curl", Name: "Reverse Wrist Curl", MuscleGroups: []models.MuscleGroup{models.Forearms}, Description: "Extend the wrists up with palms facing down.", Equipment: []string{"barbell", "bench"}},
	{ID: "lib-reverse-curl", Name: "Reverse Curl", MuscleGroups: []models.MuscleGroup{models.Forearms, models.Arms}, Description: "Curl a barbell with an overhand grip.", Equipment: []string{"barbell"}},
	{ID: "lib-farmers-carry", Name: "Farmer's Carry", MuscleGroups: []models.MuscleGroup{models.Forearms, models.Core}, Description: "Walk for distance holding heavy dumbbells at the sides.", Equipment: []string{"dumbbells"}},
	{ID: "lib-plate-pinch", Name: "Plate Pinch", MuscleGroups: []models.MuscleGroup{models.Forearms}, Description: "Pinch-grip smooth plates together for time.", Equipment: []string{"plates"}},
}

// Filter returns catalog entries matching the search term (name or
// description, case-insensitive) and, when groups is non-empty, at least
// one of the given muscle groups.
func Filter(catalog []models.LibraryExercise, term string, groups []models.MuscleGroup) []models.LibraryExercise {
	term = strings.ToLower(term)
	var out []models.LibraryExercise
	for _, e := range catalog {
		if term != "" &&
			!strings.Contains(strings.ToLower(e.Name), term) &&
			!strings.Contains(strings.ToLower(e.Description), term) {
			continue
		}
		if len(groups) > 0 && !hasAnyGroup(e, groups) {
			continue
		}
		out = append(out, e)
	}
	return out
}

// ByMuscleGroup groups entries by muscle group, in MuscleGroups order.
// An exercise tagged with several groups appears under each of them.
func ByMuscleGroup(catalog []models.LibraryExercise) map[models.MuscleGroup][]models.LibraryExercise {
	out := make(map[models.MuscleGroup][]models.LibraryExercise)
	for _, mg := range models.MuscleGroups {
		for _, e := range catalog {
			if hasAnyGroup(e, []models.MuscleGroup{mg}) {
				out[mg] = append(out[mg], e)
			}
		}
	}
	for mg, list := range out {
		if len(list) == 0 {
			delete(out, mg)
		}
	}
	return out
}

func hasAnyGroup(e models.LibraryExercise, groups []models.MuscleGroup) bool {
	for _, want := range groups {
		for _, got := range e.MuscleGroups {
			if got == want {
				return true
			}
		}
	}
	return false
}
