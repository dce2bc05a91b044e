package server

import (
	"io"
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/stats"
	"github.com/claude/liftlog/internal/storage"
	"github.com/go-chi/chi/v5"
)

// handleExerciseProgress charts one exercise's history. The optional range
// query parameter is one of 7d, 30d, 90d, or all (the default).
func (s *Server) handleExerciseProgress(w http.ResponseWriter, r *http.Request) {
	exerciseID := chi.URLParam(r, "exerciseId")

	var history models.ExerciseHistory
	found := false
	for _, h := range s.st.ExerciseHistory() {
		if h.ExerciseID == exerciseID {
			history = h
			found = true
			break
		}
	}
	if !found {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no history for exercise"})
		return
	}

	var since time.Time
	switch r.URL.Query().Get("range") {
	case "7d":
		since = time.Now().AddDate(0, 0, -7)
	case "30d":
		since = time.Now().AddDate(0, 0, -30)
	case "90d":
		since = time.Now().AddDate(0, 0, -90)
	case "", "all":
		// zero time means all history
	default:
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "range must be one of 7d, 30d, 90d, all"})
		return
	}

	writeJSON(w, http.StatusOK, stats.ExerciseProgress(history, since))
}

func (s *Server) handleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.Weekly(s.st.CompletedWorkouts(), time.Now()))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	data, err := storage.Export(s.st.Snapshot(), now)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "export failed: " + err.Error()})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="`+storage.ExportFilename(now)+`"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reading body: " + err.Error()})
		return
	}
	if err := storage.Import(s.st, data); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
