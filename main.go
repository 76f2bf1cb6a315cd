package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/juridesk/juridesk/internal/auth"
	"github.com/juridesk/juridesk/internal/board"
	"github.com/juridesk/juridesk/internal/config"
	"github.com/juridesk/juridesk/internal/database"
	"github.com/juridesk/juridesk/internal/logging"
	"github.com/juridesk/juridesk/internal/web"
)

func main() {
	configPath := flag.String("config", "", "path to config.yaml")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := logging.Init(cfg.LogPath); err != nil {
		slog.Warn("file logging unavailable, using stderr", "error", err)
	}

	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	db, err := database.Open(ctx, cfg.DatabasePath)
	if err != nil {
		slog.Error("failed to initialize database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	boardSvc := board.NewService(db)
	authSvc := auth.NewService(db, time.Duration(cfg.SessionTTLHours)*time.Hour)

	server := web.NewServer(web.ServerConfig{Addr: cfg.Addr}, boardSvc, authSvc)

	slog.Info("juridesk starting", "addr", cfg.Addr, "pid", os.Getpid())
	if err := server.ListenAndServe(ctx); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
	slog.Info("juridesk shut down gracefully")
}
