package domain

import (
	"fmt"
	"time"
)

// BacktestTrade es el registro inmutable de un round trip simulado.
// Se crea exactamente una vez por señal disparada durante el replay.
type BacktestTrade struct {
	Timestamp time.Time
	Action    Action
	Side      Side
	Price     int     // precio de entrada en centavos (ask para buy, bid para sell)
	Contracts int
	PnL       float64 // P&L neto realizado en centavos (todos los contratos)
}

// BacktestResult es el resumen de un replay completo. Se construye una sola
// vez al final y es de solo lectura.
type BacktestResult struct {
	RoundTrips      int
	WinningTrades   int
	LosingTrades    int
	TotalPnL        float64 // centavos
	TotalPnLDollars float64
	MaxDrawdown     float64 // centavos, caída pico-a-valle de la curva de equity
	SharpeRatio     float64 // mean/stddev poblacional del P&L por trade; 0 si <2 trades
	WinRate         float64 // % de trades con P&L > 0 (P&L == 0 cuenta como perdedor)
	AvgTradePnL     float64 // centavos

	Trades []BacktestTrade

	// Diagnósticos: filas descartadas, nunca causa de aborto.
	SkippedRows int // quotes inválidos o fair value no finito
	DroppedRows int // fechas sin contraparte en el inner join
}

// String imprime el resumen en el formato clásico del backtest.
func (r BacktestResult) String() string {
	return fmt.Sprintf(`
=== Backtest Results ===
Round Trips:     %d
Winning:         %d
Losing:          %d
Win Rate:        %.1f%%
Total P&L:       $%.2f
Avg Trade P&L:   $%.2f
Max Drawdown:    $%.2f
Sharpe Ratio:    %.2f
Skipped/Dropped: %d/%d
========================
`, r.RoundTrips, r.WinningTrades, r.LosingTrades, r.WinRate,
		r.TotalPnLDollars, r.AvgTradePnL/100, r.MaxDrawdown/100,
		r.SharpeRatio, r.SkippedRows, r.DroppedRows)
}

// BacktestRun es un resultado persistible: el result más la identidad del run.
type BacktestRun struct {
	ID             string // uuid
	CreatedAt      time.Time
	EntryThreshold float64
	FeesRoundTrip  float64
	Contracts      int
	Side           Side
	Result         BacktestResult
}
