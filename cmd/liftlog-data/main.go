package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/claude/liftlog/internal/store"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	exportPath := flag.String("export", "", "write a full data export to this file (use '-' for a dated file in the current directory)")
	importPath := flag.String("import", "", "replace local data from this export file")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if (*exportPath == "") == (*importPath == "") {
		fmt.Fprintf(os.Stderr, "Usage: liftlog-data -config config.yaml [-export FILE | -import FILE]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	local, err := storage.OpenLocal(cfg.Storage.DataDir)
	if err != nil {
		log.Error("failed to open local storage", "dir", cfg.Storage.DataDir, "error", err)
		os.Exit(1)
	}
	defer local.Close()

	state, found, err := local.Load()
	if err != nil {
		log.Error("failed to load local state", "error", err)
		os.Exit(1)
	}

	if *exportPath != "" {
		if !found {
			log.Error("no local data to export", "dir", cfg.Storage.DataDir)
			os.Exit(1)
		}
		runExport(log, state, *exportPath)
		return
	}

	runImport(log, local, found, state, *importPath)
}

func runExport(log *slog.Logger, state models.State, path string) {
	now := time.Now()
	data, err := storage.Export(state, now)
	if err != nil {
		log.Error("export failed", "error", err)
		os.Exit(1)
	}

	if path == "-" {
		path = storage.ExportFilename(now)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Error("failed to write export file", "path", path, "error", err)
		os.Exit(1)
	}
	log.Info("export written", "path", path,
		"workouts", len(state.Workouts),
		"completed", len(state.CompletedWorkouts))
}

func runImport(log *slog.Logger, local *storage.Local, found bool, state models.State, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Error("failed to read import file", "path", path, "error", err)
		os.Exit(1)
	}

	var initial *models.State
	if found {
		initial = &state
	}
	st := store.New(initial, log, store.WithPersister(local))

	if err := storage.Import(st, data); err != nil {
		log.Error("import failed", "error", err)
		os.Exit(1)
	}

	snap := st.Snapshot()
	log.Info("import complete",
		"workouts", len(snap.Workouts),
		"completed", len(snap.CompletedWorkouts),
		"library", len(snap.ExerciseLibrary))
}
