package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/store"
)

func newTestServer(t *testing.T) (*Server, *store.Store) {
	t.Helper()
	log := slog.New(slog.DiscardHandler)
	st := store.New(nil, log)
	return New(st, "test-key", log), st
}

func doJSON(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

// TestWorkoutLifecycle exercises create, start, complete, and the active
// pointer through the REST surface.
func TestWorkoutLifecycle(t *testing.T) {
	s, st := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts", `{"name": "Push Day"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body)
	}
	var created map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	id := created["id"]
	if id == "" {
		t.Fatal("create returned no id")
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/workouts/"+id+"/start", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("start status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/workouts/active", "")
	var active map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&active); err != nil {
		t.Fatal(err)
	}
	if active["activeWorkoutId"] != id {
		t.Errorf("activeWorkoutId = %q, want %q", active["activeWorkoutId"], id)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/workouts/complete", `{
		"id": "session-1",
		"workoutId": "`+id+`",
		"name": "Push Day",
		"date": "`+time.Now().UTC().Format(time.RFC3339)+`",
		"duration": 45,
		"exercises": [{
			"id": "lib-bench-press",
			"name": "Bench Press",
			"muscleGroups": ["chest"],
			"sets": [{"reps": 8, "weight": 80, "completed": true}]
		}]
	}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("complete status = %d, want 204: %s", rec.Code, rec.Body)
	}

	if got := st.ActiveWorkoutID(); got != "" {
		t.Errorf("active = %q after completion, want cleared", got)
	}
	if n := len(st.CompletedWorkouts()); n != 1 {
		t.Errorf("completed = %d, want 1", n)
	}
	if n := len(st.ExerciseHistory()); n != 1 {
		t.Errorf("history records = %d, want 1", n)
	}
}

// TestCreateWorkoutValidation verifies bad bodies are rejected.
func TestCreateWorkoutValidation(t *testing.T) {
	s, _ := newTestServer(t)

	if rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts", `{"name": ""}`); rec.Code != http.StatusBadRequest {
		t.Errorf("empty name status = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts", `{not json`); rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}
}

// TestGetWorkoutNotFound verifies unknown ids return a JSON 404.
func TestGetWorkoutNotFound(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/workouts/no-such-id", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var payload map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&payload); err != nil {
		t.Fatal(err)
	}
	if payload["error"] == "" {
		t.Error("404 body has no error field")
	}
}

// TestDuplicateWorkout verifies duplication through the API, including the
// 404 for unknown sources.
func TestDuplicateWorkout(t *testing.T) {
	s, st := newTestServer(t)
	id := st.CreateWorkout("Legs")

	rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts/"+id+"/duplicate", "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("duplicate status = %d, want 201", rec.Code)
	}
	var resp map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	dup, ok := st.Workout(resp["id"])
	if !ok || dup.Name != "Legs (Copy)" {
		t.Errorf("duplicate = %+v, want Legs (Copy)", dup)
	}

	if rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts/ghost/duplicate", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown source status = %d, want 404", rec.Code)
	}
}

// TestRecentWorkouts verifies the projection endpoint caps at three.
func TestRecentWorkouts(t *testing.T) {
	s, st := newTestServer(t)
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		st.CompleteWorkout(models.CompletedWorkout{ID: "c", Date: base.AddDate(0, 0, i)})
	}

	rec := doJSON(t, s, http.MethodGet, "/api/v1/workouts/recent", "")
	var recent []models.CompletedWorkout
	if err := json.NewDecoder(rec.Body).Decode(&recent); err != nil {
		t.Fatal(err)
	}
	if len(recent) != 3 {
		t.Fatalf("recent = %d, want 3", len(recent))
	}
	if !recent[0].Date.Equal(base.AddDate(0, 0, 4)) {
		t.Errorf("recent[0].Date = %v, want newest", recent[0].Date)
	}
}

// TestLibraryEndpoints verifies list, add, update, and delete against the
// catalog.
func TestLibraryEndpoints(t *testing.T) {
	s, st := newTestServer(t)
	seedCount := len(st.ExerciseLibrary())

	rec := doJSON(t, s, http.MethodPost, "/api/v1/library", `{"name": "Zercher Squat", "muscleGroups": ["quads", "core"]}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add status = %d, want 201: %s", rec.Code, rec.Body)
	}
	var created map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatal(err)
	}
	id := created["id"]
	if id == "" {
		t.Fatal("add returned no id")
	}
	if n := len(st.ExerciseLibrary()); n != seedCount+1 {
		t.Errorf("library = %d entries, want %d", n, seedCount+1)
	}

	if rec := doJSON(t, s, http.MethodPost, "/api/v1/library", `{"name": "No Groups"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("add without groups status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPut, "/api/v1/library/"+id, `{"name": "Zercher Squat", "muscleGroups": ["quads"], "description": "Bar in the crook of the elbows."}`)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("update status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/library/"+id, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}
	if n := len(st.ExerciseLibrary()); n != seedCount {
		t.Errorf("library = %d entries after delete, want %d", n, seedCount)
	}
}

// TestDerivedMetrics verifies null derived values without data and computed
// values with a measurement.
func TestDerivedMetrics(t *testing.T) {
	s, _ := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/metrics/derived", "")
	var empty struct {
		BMI  *float64 `json:"bmi"`
		FFMI *float64 `json:"ffmi"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&empty); err != nil {
		t.Fatal(err)
	}
	if empty.BMI != nil || empty.FFMI != nil {
		t.Errorf("derived = %+v with no measurements, want nulls", empty)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/metrics", `{"weight": 70, "height": 175}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("add metrics status = %d, want 201", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/metrics/derived", "")
	var derived struct {
		BMI  *float64 `json:"bmi"`
		FFMI *float64 `json:"ffmi"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&derived); err != nil {
		t.Fatal(err)
	}
	if derived.BMI == nil || *derived.BMI != 22.9 {
		t.Errorf("bmi = %v, want 22.9", derived.BMI)
	}
	if derived.FFMI != nil {
		t.Errorf("ffmi = %v without body fat, want null", *derived.FFMI)
	}
}

// TestSettingsPatch verifies partial settings updates over PATCH.
func TestSettingsPatch(t *testing.T) {
	s, st := newTestServer(t)

	rec := doJSON(t, s, http.MethodPatch, "/api/v1/settings", `{"weightUnit": "lb"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("patch status = %d, want 200", rec.Code)
	}

	got := st.Settings()
	if got.WeightUnit != models.WeightLb {
		t.Errorf("weightUnit = %q, want lb", got.WeightUnit)
	}
	if got.DistanceUnit != models.DistanceKm {
		t.Errorf("distanceUnit = %q, want untouched km", got.DistanceUnit)
	}
}

// TestExerciseProgressEndpoint verifies the range parameter and the 404 for
// unknown exercises.
func TestExerciseProgressEndpoint(t *testing.T) {
	s, st := newTestServer(t)
	st.RecordExerciseProgress("lib-squat", "Squat", []models.Set{{Reps: 5, Weight: 100, Completed: true}})

	rec := doJSON(t, s, http.MethodGet, "/api/v1/history/lib-squat/progress?range=30d", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("progress status = %d, want 200: %s", rec.Code, rec.Body)
	}

	if rec := doJSON(t, s, http.MethodGet, "/api/v1/history/lib-squat/progress?range=yesterday", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("bad range status = %d, want 400", rec.Code)
	}
	if rec := doJSON(t, s, http.MethodGet, "/api/v1/history/ghost/progress", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown exercise status = %d, want 404", rec.Code)
	}
}

// TestExportEndpoint verifies the export download shape and filename.
func TestExportEndpoint(t *testing.T) {
	s, st := newTestServer(t)
	st.CreateWorkout("Push Day")

	rec := doJSON(t, s, http.MethodGet, "/api/v1/export", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("export status = %d, want 200", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "workout-tracker-data-") {
		t.Errorf("Content-Disposition = %q, want dated filename", cd)
	}

	var doc map[string]json.RawMessage
	if err := json.NewDecoder(rec.Body).Decode(&doc); err != nil {
		t.Fatal(err)
	}
	if _, ok := doc["exportDate"]; !ok {
		t.Error("export missing exportDate")
	}
	if _, ok := doc["workouts"]; !ok {
		t.Error("export missing workouts")
	}
}

// TestImportEndpoint verifies the API key guard and the no-mutation failure
// for invalid documents.
func TestImportEndpoint(t *testing.T) {
	s, st := newTestServer(t)
	st.CreateWorkout("Keep Me")

	body := `{"workouts": [{"id": "w1", "name": "Imported"}]}`

	// No key
	rec := doJSON(t, s, http.MethodPost, "/api/v1/import", body)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no key status = %d, want 401", rec.Code)
	}

	// Wrong key
	req := httptest.NewRequest(http.MethodPost, "/api/v1/import", strings.NewReader(body))
	req.Header.Set("X-API-Key", "wrong")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusForbidden {
		t.Errorf("wrong key status = %d, want 403", rec.Code)
	}

	// Invalid document: no mutation
	req = httptest.NewRequest(http.MethodPost, "/api/v1/import", strings.NewReader(`{"foo": 1}`))
	req.Header.Set("X-API-Key", "test-key")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid doc status = %d, want 400", rec.Code)
	}
	if ws := st.Workouts(); len(ws) != 1 || ws[0].Name != "Keep Me" {
		t.Errorf("workouts = %+v after failed import, want untouched", ws)
	}

	// Valid import replaces
	req = httptest.NewRequest(http.MethodPost, "/api/v1/import", strings.NewReader(body))
	req.Header.Set("X-API-Key", "test-key")
	rec = httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("import status = %d, want 204: %s", rec.Code, rec.Body)
	}
	if ws := st.Workouts(); len(ws) != 1 || ws[0].Name != "Imported" {
		t.Errorf("workouts = %+v after import, want the imported plan", ws)
	}
}
