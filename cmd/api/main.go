package main

import (
	"log/slog"
	"os"

	"github.com/cvadnais/qr-tracker/internal/app"
	"github.com/cvadnais/qr-tracker/internal/config"
	"github.com/cvadnais/qr-tracker/internal/db"
	"github.com/cvadnais/qr-tracker/internal/lib/logger/sl"
)

const (
	envLocal = "local"
	envProd  = "prod"
)

func main() {
	cfg := config.Load()
	log := setupLogger(cfg.Env)

	gdb, err := db.OpenSQLite(cfg.StoragePath)
	if err != nil {
		log.Error("failed to open db", sl.Err(err))
		os.Exit(1)
	}

	log.Info("starting qr-tracker",
		slog.String("env", cfg.Env),
		slog.String("base_url", cfg.BaseURL),
	)

	a := app.New(cfg, gdb, log)
	if err := a.Run(); err != nil {
		log.Error("server stopped", sl.Err(err))
		os.Exit(1)
	}
}

func setupLogger(env string) *slog.Logger {
	if env == envProd {
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
