package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/basisbot/config"
	"github.com/alejandrodnm/basisbot/internal/adapters/kalshi"
	"github.com/alejandrodnm/basisbot/internal/adapters/storage"
	"github.com/alejandrodnm/basisbot/internal/backtest"
	"github.com/alejandrodnm/basisbot/internal/domain"
	"github.com/alejandrodnm/basisbot/internal/ports"
)

// runBacktest ejecuta el pipeline completo:
// CSV → probabilidades → quotes mock → align → replay → notify + store.
func runBacktest(
	ctx context.Context,
	cfg *config.Config,
	model *domain.ProbabilityModel,
	prices ports.PriceHistorySource,
	notifier ports.Notifier,
	persist bool,
) {
	side, err := domain.ParseSide(cfg.Strategy.Side)
	if err != nil {
		slog.Error("invalid side", "err", err)
		os.Exit(1)
	}

	quoteSource, err := kalshi.NewMockQuoteSource(prices, model, cfg.Data.DriftStd, cfg.Data.SpreadWidth, cfg.Data.MockSeed)
	if err != nil {
		slog.Error("failed to build quote source", "err", err)
		os.Exit(1)
	}

	history, err := prices.FetchPriceHistory(ctx)
	if err != nil {
		slog.Error("failed to load price history", "err", err)
		os.Exit(1)
	}

	quotes, err := quoteSource.FetchQuotes(ctx)
	if err != nil {
		slog.Error("failed to load quotes", "err", err)
		os.Exit(1)
	}

	observations, dropped, err := backtest.Align(history, quotes, model)
	if err != nil {
		slog.Error("alignment failed", "err", err)
		os.Exit(1)
	}
	slog.Info("aligned observations", "rows", len(observations), "dropped", dropped)

	params := backtest.Params{
		EntryThreshold: cfg.Strategy.EntryThreshold,
		FeesRoundTrip:  cfg.Strategy.FeesRoundTrip,
		Contracts:      cfg.Strategy.ContractsPerTrade,
		Side:           side,
	}
	sim, err := backtest.NewSimulator(params)
	if err != nil {
		slog.Error("invalid simulator parameters", "err", err)
		os.Exit(1)
	}

	result := sim.Run(observations)
	result.DroppedRows = dropped

	if err := notifier.NotifyBacktest(ctx, result); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	if persist {
		saveRun(ctx, cfg.Storage.DSN, params, result)
	}

	slog.Info("backtest complete",
		"round_trips", result.RoundTrips,
		"total_pnl_cents", result.TotalPnL,
		"win_rate", result.WinRate,
	)
}

// saveRun persiste el run en SQLite. Los errores de storage no son fatales.
func saveRun(ctx context.Context, dsn string, params backtest.Params, result domain.BacktestResult) {
	store, err := storage.NewSQLiteStorage(dsn)
	if err != nil {
		slog.Warn("failed to open storage, run not persisted", "err", err, "dsn", dsn)
		return
	}
	defer store.Close()

	run := domain.BacktestRun{
		ID:             uuid.New().String(),
		CreatedAt:      time.Now(),
		EntryThreshold: params.EntryThreshold,
		FeesRoundTrip:  params.FeesRoundTrip,
		Contracts:      params.Contracts,
		Side:           params.Side,
		Result:         result,
	}
	if err := store.SaveRun(ctx, run); err != nil {
		slog.Warn("failed to persist run", "err", err)
		return
	}
	slog.Info("run persisted", "id", run.ID, "dsn", dsn)
}
