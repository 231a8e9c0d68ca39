package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/alejandrodnm/basisbot/config"
	"github.com/alejandrodnm/basisbot/internal/adapters/kalshi"
	"github.com/alejandrodnm/basisbot/internal/domain"
	"github.com/alejandrodnm/basisbot/internal/monitor"
	"github.com/alejandrodnm/basisbot/internal/ports"
)

// runLive arranca el loop de polling contra el API de Kalshi, usando como
// fair value la última liquidación CME disponible.
func runLive(
	ctx context.Context,
	cfg *config.Config,
	model *domain.ProbabilityModel,
	prices ports.PriceHistorySource,
	notifier ports.Notifier,
) {
	history, err := prices.FetchPriceHistory(ctx)
	if err != nil {
		slog.Error("failed to load price history", "err", err)
		os.Exit(1)
	}
	if len(history) == 0 {
		slog.Error("empty price history, cannot derive fair value")
		os.Exit(1)
	}
	latest := history[len(history)-1]
	fairValue := model.FairValueCents(latest.Settlement)
	slog.Info("fair value from latest settlement",
		"date", latest.DateKey(),
		"settlement", latest.Settlement,
		"fair_value_cents", fairValue,
	)

	var signer *kalshi.Signer
	if cfg.Kalshi.APIKeyID != "" {
		signer, err = kalshi.NewSigner(cfg.Kalshi.APIKeyID, cfg.Kalshi.PrivateKeyPath)
		if err != nil {
			slog.Error("failed to load API credentials", "err", err)
			os.Exit(1)
		}
	} else {
		slog.Warn("no API key configured, using public endpoints only")
	}
	client := kalshi.NewClient(cfg.Kalshi.Demo, signer)

	monCfg := monitor.DefaultConfig()
	monCfg.Ticker = cfg.Monitor.Ticker
	monCfg.PollInterval = cfg.PollInterval()
	monCfg.EntryThreshold = cfg.Strategy.EntryThreshold
	monCfg.Contracts = cfg.Strategy.ContractsPerTrade
	monCfg.MaxPosition = cfg.Monitor.MaxPosition
	monCfg.FairValueCents = fairValue
	monCfg.DryRun = cfg.Monitor.DryRun

	m, err := monitor.New(monCfg, client, notifier)
	if err != nil {
		slog.Error("invalid monitor config", "err", err)
		os.Exit(1)
	}

	if err := m.Run(ctx); err != nil {
		slog.Error("monitor exited with error", "err", err)
		os.Exit(1)
	}
	slog.Info("basisbot stopped cleanly")
}
