package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/liftlog/internal/config"
	"github.com/claude/liftlog/internal/mcp"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/server"
	"github.com/claude/liftlog/internal/storage"
	"github.com/claude/liftlog/internal/store"
	"github.com/claude/liftlog/internal/sync"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run sync backend migrations and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("LiftLog starting", "version", Version)

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if *migrateOnly {
		if !cfg.Sync.Enabled {
			log.Error("migrate-only requires sync to be enabled")
			os.Exit(1)
		}
		if err := sync.RunMigrations(cfg.Sync.DSN(), "migrations"); err != nil {
			log.Error("migration failed", "error", err)
			os.Exit(1)
		}
		log.Info("migrations applied, exiting")
		return
	}

	// Open local storage and hydrate the store from it
	local, err := storage.OpenLocal(cfg.Storage.DataDir)
	if err != nil {
		log.Error("failed to open local storage", "dir", cfg.Storage.DataDir, "error", err)
		os.Exit(1)
	}
	defer local.Close()

	var initial *models.State
	if state, ok, err := local.Load(); err != nil {
		log.Error("failed to load local state", "error", err)
		os.Exit(1)
	} else if ok {
		initial = &state
		log.Info("local state loaded", "workouts", len(state.Workouts), "completed", len(state.CompletedWorkouts))
	} else {
		log.Info("no local state, starting fresh")
	}

	st := store.New(initial, log, store.WithPersister(local))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional cloud sync
	var remote *sync.Postgres
	if cfg.Sync.Enabled {
		if err := sync.RunMigrations(cfg.Sync.DSN(), "migrations"); err != nil {
			log.Error("sync migration failed", "error", err)
			os.Exit(1)
		}
		remote, err = sync.NewPostgres(ctx, cfg.Sync.DSN())
		if err != nil {
			log.Error("failed to connect sync backend", "error", err)
			os.Exit(1)
		}
		defer remote.Close()

		syncer := sync.NewSyncer(remote, st, cfg.Sync.Login, log, sync.DefaultDebounce)
		if err := syncer.Hydrate(ctx); err != nil {
			log.Warn("sync hydrate failed, continuing with local state", "error", err)
		}
		go syncer.Run(ctx, st.Changes())
		log.Info("cloud sync enabled", "login", cfg.Sync.Login)
	}

	// Create server and mount the MCP endpoint
	srv := server.New(st, cfg.Auth.APIKey, log)
	mcpSrv := mcp.New(st, Version, log)
	srv.Mount("/mcp", mcpserver.NewStreamableHTTPServer(mcpSrv))

	// Start server — tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		lc, err := tsServer.LocalClient()
		if err != nil {
			log.Error("tsnet local client failed", "error", err)
			os.Exit(1)
		}
		srv.SetTailscale(lc)

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)")
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	cancel() // stops the syncer; it flushes pending state before returning

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}
