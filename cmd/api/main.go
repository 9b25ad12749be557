package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"

	"clearfund/internal/app/bootstrap"
	"clearfund/internal/platform/config"
)

// API process entrypoint.
// Data flow:
// 1) Load config.
// 2) Build app wiring (ports + adapters + use cases).
// 3) Start HTTP server.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "error", err.Error())
		os.Exit(1)
	}

	logger := buildLogger(cfg)
	slog.SetDefault(logger)

	app, err := bootstrap.BuildAPI(cfg, logger)
	if err != nil {
		logger.Error("bootstrap failed",
			"event", "bootstrap_failed",
			"module", "cmd/api",
			"layer", "platform",
			"error", err.Error(),
		)
		os.Exit(1)
	}
	defer app.Close()

	if err := app.Run(context.Background()); err != nil {
		logger.Error("api process exited",
			"event", "api_process_exited",
			"module", "cmd/api",
			"layer", "platform",
			"error", err.Error(),
		)
		os.Exit(1)
	}
}

func buildLogger(cfg config.Config) *slog.Logger {
	if cfg.IsDev() {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelDebug,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}
