package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/basisbot/config"
	"github.com/alejandrodnm/basisbot/internal/adapters/cme"
	"github.com/alejandrodnm/basisbot/internal/adapters/notify"
	"github.com/alejandrodnm/basisbot/internal/domain"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	live := flag.Bool("live", false, "run the live monitor instead of a backtest")
	research := flag.Bool("research", false, "build research graph snapshots and print a summary")
	ticker := flag.String("ticker", "", "Kalshi market ticker (live mode, overrides config)")
	seed := flag.Int64("seed", 0, "mock quote generator seed (overrides config)")
	noStore := flag.Bool("no-store", false, "skip persisting the backtest run")
	verbose := flag.Bool("verbose", false, "set log level to debug and print the full trade log")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	if *ticker != "" {
		cfg.Monitor.Ticker = *ticker
	}
	if *seed != 0 {
		cfg.Data.MockSeed = *seed
	}
	setupLogger(cfg.Log)

	slog.Info("basisbot starting",
		"config", *configPath,
		"live", *live,
		"research", *research,
		"reference_rate", cfg.Model.ReferenceRate,
		"step_size", cfg.Model.StepSize,
	)

	model, err := domain.NewProbabilityModel(cfg.Model.ReferenceRate, cfg.Model.StepSize)
	if err != nil {
		slog.Error("invalid model parameters", "err", err)
		os.Exit(1)
	}

	prices := cme.NewClient(cfg.Data.CMECSVPath)
	notifier := notify.NewConsole(*verbose)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch {
	case *live:
		runLive(ctx, cfg, model, prices, notifier)
	case *research:
		runResearch(ctx, cfg, prices)
	default:
		runBacktest(ctx, cfg, model, prices, notifier, !*noStore)
	}
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
