package storage

// sqlite.go — registro diagnóstico de runs de backtest.
//
// Estrategia:
//   - `runs`: una fila por ejecución, con parámetros y métricas agregadas.
//   - `run_trades`: los trades del run, FK a runs.
//   - Prune automático al arrancar: runs > 90 días.
//
// El motor nunca lee este estado de vuelta — es un histórico para comparar
// corridas, no estado del core.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/basisbot/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id              TEXT PRIMARY KEY,
    created_at      DATETIME NOT NULL,
    entry_threshold REAL    NOT NULL,
    fees_round_trip REAL    NOT NULL,
    contracts       INTEGER NOT NULL,
    side            TEXT    NOT NULL,
    round_trips     INTEGER NOT NULL DEFAULT 0,
    winning         INTEGER NOT NULL DEFAULT 0,
    losing          INTEGER NOT NULL DEFAULT 0,
    total_pnl       REAL    NOT NULL DEFAULT 0,
    max_drawdown    REAL    NOT NULL DEFAULT 0,
    sharpe_ratio    REAL    NOT NULL DEFAULT 0,
    win_rate        REAL    NOT NULL DEFAULT 0,
    avg_trade_pnl   REAL    NOT NULL DEFAULT 0,
    skipped_rows    INTEGER NOT NULL DEFAULT 0,
    dropped_rows    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_trades (
    run_id    TEXT    NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    seq       INTEGER NOT NULL,
    ts        DATETIME NOT NULL,
    action    TEXT    NOT NULL,
    side      TEXT    NOT NULL,
    price     INTEGER NOT NULL,
    contracts INTEGER NOT NULL,
    pnl       REAL    NOT NULL,
    PRIMARY KEY (run_id, seq)
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
`

const retentionRuns = 90 * 24 * time.Hour

// SQLiteStorage implementa ports.Storage usando SQLite (pure Go, sin CGo).
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage abre (o crea) la base de datos en la ruta dada.
// Aplica el schema y limpia runs antiguos.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}

	s := &SQLiteStorage{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// SaveRun persiste el run y sus trades en una transacción.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run domain.BacktestRun) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveRun: begin: %w", err)
	}
	defer tx.Rollback()

	r := run.Result
	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, entry_threshold, fees_round_trip, contracts, side,
			round_trips, winning, losing, total_pnl, max_drawdown, sharpe_ratio,
			win_rate, avg_trade_pnl, skipped_rows, dropped_rows)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.UTC(), run.EntryThreshold, run.FeesRoundTrip,
		run.Contracts, run.Side.String(),
		r.RoundTrips, r.WinningTrades, r.LosingTrades, r.TotalPnL,
		r.MaxDrawdown, r.SharpeRatio, r.WinRate, r.AvgTradePnL,
		r.SkippedRows, r.DroppedRows,
	)
	if err != nil {
		return fmt.Errorf("storage.SaveRun: insert run: %w", err)
	}

	for i, t := range r.Trades {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_trades (run_id, seq, ts, action, side, price, contracts, pnl)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, i, t.Timestamp.UTC(), t.Action.String(), t.Side.String(),
			t.Price, t.Contracts, t.PnL,
		)
		if err != nil {
			return fmt.Errorf("storage.SaveRun: insert trade %d: %w", i, err)
		}
	}

	return tx.Commit()
}

// GetRuns devuelve los últimos `limit` runs, más reciente primero, con trades.
func (s *SQLiteStorage) GetRuns(ctx context.Context, limit int) ([]domain.BacktestRun, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, entry_threshold, fees_round_trip, contracts, side,
			round_trips, winning, losing, total_pnl, max_drawdown, sharpe_ratio,
			win_rate, avg_trade_pnl, skipped_rows, dropped_rows
		FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("storage.GetRuns: query: %w", err)
	}
	defer rows.Close()

	var runs []domain.BacktestRun
	for rows.Next() {
		var run domain.BacktestRun
		var side string
		r := &run.Result
		if err := rows.Scan(&run.ID, &run.CreatedAt, &run.EntryThreshold,
			&run.FeesRoundTrip, &run.Contracts, &side,
			&r.RoundTrips, &r.WinningTrades, &r.LosingTrades, &r.TotalPnL,
			&r.MaxDrawdown, &r.SharpeRatio, &r.WinRate, &r.AvgTradePnL,
			&r.SkippedRows, &r.DroppedRows); err != nil {
			return nil, fmt.Errorf("storage.GetRuns: scan: %w", err)
		}
		run.Side, _ = domain.ParseSide(side)
		r.TotalPnLDollars = r.TotalPnL / 100
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.GetRuns: rows: %w", err)
	}

	for i := range runs {
		trades, err := s.getTrades(ctx, runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].Result.Trades = trades
	}
	return runs, nil
}

func (s *SQLiteStorage) getTrades(ctx context.Context, runID string) ([]domain.BacktestTrade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT ts, action, side, price, contracts, pnl
		FROM run_trades WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage.getTrades: query: %w", err)
	}
	defer rows.Close()

	var trades []domain.BacktestTrade
	for rows.Next() {
		var t domain.BacktestTrade
		var action, side string
		if err := rows.Scan(&t.Timestamp, &action, &side, &t.Price, &t.Contracts, &t.PnL); err != nil {
			return nil, fmt.Errorf("storage.getTrades: scan: %w", err)
		}
		t.Action = parseAction(action)
		t.Side, _ = domain.ParseSide(side)
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

func parseAction(s string) domain.Action {
	switch s {
	case "buy":
		return domain.ActionBuy
	case "sell":
		return domain.ActionSell
	default:
		return domain.ActionHold
	}
}

// pruneOld borra runs más viejos que la retención. Best-effort.
func (s *SQLiteStorage) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retentionRuns)
	s.db.ExecContext(ctx, `DELETE FROM run_trades WHERE run_id IN (SELECT id FROM runs WHERE created_at < ?)`, cutoff)
	s.db.ExecContext(ctx, `DELETE FROM runs WHERE created_at < ?`, cutoff)
}

// Close cierra la conexión.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
