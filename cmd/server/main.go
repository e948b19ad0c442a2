// Command server runs the stepsort HTTP service.
//
// Configuration is read from a YAML file (see --config, STEPSORT_CONFIG)
// and STEPSORT_* environment overrides. Without a file, defaults apply:
//
//	port 8080, quicksort default, CORS for http://localhost:3000,
//	frontend from ../frontend/build, /metrics and /mcp enabled, no auth.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rhuss/stepsort/pkg/app"
	"github.com/rhuss/stepsort/pkg/config"
	"github.com/rhuss/stepsort/pkg/debug"
	transporthttp "github.com/rhuss/stepsort/pkg/transport/http"
)

func main() {
	configPath := flag.String("config", "", "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	debug.Init(cfg.Logging.Debug, cfg.Logging.Level, cfg.Logging.Format)
	if cats := debug.Categories(); len(cats) > 0 {
		slog.Info("debug logging enabled", "categories", cats)
	}

	a, err := app.New(cfg)
	if err != nil {
		return err
	}

	srv := transporthttp.NewServer(a.Handler(), transporthttp.ServerConfig{
		Addr:            ":" + strconv.Itoa(cfg.Server.Port),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("stepsort configured",
		"port", cfg.Server.Port,
		"default_algorithm", cfg.Engine.DefaultAlgorithm,
		"auth", cfg.Auth.Type,
	)
	return srv.ListenAndServe(ctx)
}
