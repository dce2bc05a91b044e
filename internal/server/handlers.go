package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/store"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.st.Workouts())
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	id := s.st.CreateWorkout(req.Name)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	workout, ok := s.st.Workout(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusOK, workout)
}

func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	var workout models.Workout
	if err := json.NewDecoder(r.Body).Decode(&workout); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	workout.ID = chi.URLParam(r, "id")
	s.st.UpdateWorkout(workout)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	s.st.DeleteWorkout(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStartWorkout(w http.ResponseWriter, r *http.Request) {
	s.st.StartWorkout(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateWorkout(w http.ResponseWriter, r *http.Request) {
	id := s.st.DuplicateWorkout(chi.URLParam(r, "id"))
	if id == "" {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "workout not found"})
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleActiveWorkout(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"activeWorkoutId": s.st.ActiveWorkoutID()})
}

func (s *Server) handleCompleteWorkout(w http.ResponseWriter, r *http.Request) {
	var snapshot models.CompletedWorkout
	if err := json.NewDecoder(r.Body).Decode(&snapshot); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.st.CompleteWorkout(snapshot)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRecentWorkouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.st.RecentWorkouts())
}

func (s *Server) handleTemplates(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.st.Templates())
}

func (s *Server) handleCompletedWorkouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.st.CompletedWorkouts())
}

func (s *Server) handleListLibrary(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.st.ExerciseLibrary())
}

func (s *Server) handleAddLibrary(w http.ResponseWriter, r *http.Request) {
	var e models.LibraryExercise
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if e.Name == "" || len(e.MuscleGroups) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name and at least one muscle group are required"})
		return
	}
	id := s.st.AddExerciseToLibrary(e)
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleUpdateLibrary(w http.ResponseWriter, r *http.Request) {
	var e models.LibraryExercise
	if err := json.NewDecoder(r.Body).Decode(&e); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	e.ID = chi.URLParam(r, "id")
	s.st.UpdateExerciseInLibrary(e)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDeleteLibrary(w http.ResponseWriter, r *http.Request) {
	s.st.DeleteExerciseFromLibrary(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.st.ExerciseHistory())
}

func (s *Server) handleRecordProgress(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ExerciseID   string       `json:"exerciseId"`
		ExerciseName string       `json:"exerciseName"`
		Sets         []models.Set `json:"sets"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.st.RecordExerciseProgress(req.ExerciseID, req.ExerciseName, req.Sets)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListBodyMetrics(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.st.BodyMetrics())
}

func (s *Server) handleAddBodyMetrics(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Weight            float64  `json:"weight"`
		Height            float64  `json:"height"`
		BodyFatPercentage *float64 `json:"bodyFatPercentage"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.st.AddBodyMetrics(req.Weight, req.Height, req.BodyFatPercentage)
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleLatestBodyMetrics(w http.ResponseWriter, r *http.Request) {
	m, ok := s.st.LatestBodyMetrics()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no body metrics recorded"})
		return
	}
	writeJSON(w, http.StatusOK, m)
}

// handleDerivedMetrics returns BMI and FFMI. Unavailable values are null
// rather than errors.
func (s *Server) handleDerivedMetrics(w http.ResponseWriter, r *http.Request) {
	resp := struct {
		BMI  *float64 `json:"bmi"`
		FFMI *float64 `json:"ffmi"`
	}{}
	if v, ok := s.st.BMI(); ok {
		resp.BMI = &v
	}
	if v, ok := s.st.FFMI(); ok {
		resp.FFMI = &v
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.st.Settings())
}

func (s *Server) handleUpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch store.SettingsPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.st.UpdateSettings(patch)
	writeJSON(w, http.StatusOK, s.st.Settings())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
