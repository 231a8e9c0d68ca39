package storage

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/basisbot/internal/domain"
)

func openTestStorage(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRun() domain.BacktestRun {
	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	return domain.BacktestRun{
		ID:             uuid.NewString(),
		CreatedAt:      time.Now().UTC(),
		EntryThreshold: 4.5,
		FeesRoundTrip:  2,
		Contracts:      10,
		Side:           domain.SideYes,
		Result: domain.BacktestResult{
			RoundTrips:      2,
			WinningTrades:   1,
			LosingTrades:    1,
			TotalPnL:        20,
			TotalPnLDollars: 0.2,
			MaxDrawdown:     10,
			SharpeRatio:     0.5,
			WinRate:         50,
			AvgTradePnL:     10,
			SkippedRows:     1,
			DroppedRows:     2,
			Trades: []domain.BacktestTrade{
				{Timestamp: ts, Action: domain.ActionBuy, Side: domain.SideYes, Price: 51, Contracts: 10, PnL: 30},
				{Timestamp: ts.AddDate(0, 0, 1), Action: domain.ActionSell, Side: domain.SideYes, Price: 48, Contracts: 10, PnL: -10},
			},
		},
	}
}

func TestSQLiteStorage_SaveAndGetRuns(t *testing.T) {
	s := openTestStorage(t)
	ctx := context.Background()

	run := sampleRun()
	require.NoError(t, s.SaveRun(ctx, run))

	runs, err := s.GetRuns(ctx, 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)

	got := runs[0]
	assert.Equal(t, run.ID, got.ID)
	assert.Equal(t, run.EntryThreshold, got.EntryThreshold)
	assert.Equal(t, run.Side, got.Side)
	assert.Equal(t, run.Result.RoundTrips, got.Result.RoundTrips)
	assert.InDelta(t, run.Result.TotalPnL, got.Result.TotalPnL, 1e-9)
	assert.InDelta(t, 0.2, got.Result.TotalPnLDollars, 1e-9)

	require.Len(t, got.Result.Trades, 2)
	assert.Equal(t, domain.ActionBuy, got.Result.Trades[0].Action)
	assert.Equal(t, 51, got.Result.Trades[0].Price)
	assert.Equal(t, domain.ActionSell, got.Result.Trades[1].Action)
	assert.InDelta(t, -10.0, got.Result.Trades[1].PnL, 1e-9)
}

func TestSQLiteStorage_GetRunsOrderAndLimit(t *testing.T) {
	s := openTestStorage(t)
	ctx := context.Background()

	old := sampleRun()
	old.CreatedAt = time.Now().UTC().Add(-time.Hour)
	recent := sampleRun()
	require.NoError(t, s.SaveRun(ctx, old))
	require.NoError(t, s.SaveRun(ctx, recent))

	runs, err := s.GetRuns(ctx, 1)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, recent.ID, runs[0].ID) // más reciente primero
}

func TestSQLiteStorage_DuplicateIDRejected(t *testing.T) {
	s := openTestStorage(t)
	ctx := context.Background()

	run := sampleRun()
	require.NoError(t, s.SaveRun(ctx, run))
	assert.Error(t, s.SaveRun(ctx, run))
}

func TestSQLiteStorage_EmptyDB(t *testing.T) {
	s := openTestStorage(t)
	runs, err := s.GetRuns(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, runs)
}
