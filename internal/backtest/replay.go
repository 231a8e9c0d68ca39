package backtest

// replay.go — reproduce la secuencia de observaciones a través del motor de
// basis y agrega las métricas de performance.
//
// Modelo de ejecución: round trips completos dentro de la misma barra,
// cerrados al fair value. Es una simplificación deliberada — el riesgo real
// de que la salida al fair value nunca se llene queda fuera de alcance y se
// documenta como supuesto, no se esconde.

import (
	"fmt"
	"log/slog"
	"math"

	"github.com/alejandrodnm/basisbot/internal/domain"
)

// Valores por defecto del simulador (ver config).
const (
	DefaultEntryThreshold = 4.5 // centavos
	DefaultFeesRoundTrip  = 2.0 // centavos por contrato, entrada + salida
	DefaultContracts      = 10
)

// Params es la configuración de un replay.
type Params struct {
	EntryThreshold float64 // centavos de edge mínimo para entrar
	FeesRoundTrip  float64 // centavos por contrato por round trip
	Contracts      int     // contratos por trade
	Side           domain.Side
}

// DefaultParams devuelve una configuración sensata.
func DefaultParams() Params {
	return Params{
		EntryThreshold: DefaultEntryThreshold,
		FeesRoundTrip:  DefaultFeesRoundTrip,
		Contracts:      DefaultContracts,
		Side:           domain.SideYes,
	}
}

// Simulator es el replay determinista del motor de basis.
// Sin estado entre runs: cada Run es una función de sus inputs.
type Simulator struct {
	params Params
}

// NewSimulator valida los parámetros en construcción (única fuente de error
// fatal del simulador; las filas malas durante el run solo se saltan).
func NewSimulator(params Params) (*Simulator, error) {
	if params.EntryThreshold < 0 {
		return nil, fmt.Errorf("%w: entry threshold %v must be >= 0", domain.ErrInvalidParameter, params.EntryThreshold)
	}
	if params.FeesRoundTrip < 0 {
		return nil, fmt.Errorf("%w: fees %v must be >= 0", domain.ErrInvalidParameter, params.FeesRoundTrip)
	}
	if params.Contracts <= 0 {
		return nil, fmt.Errorf("%w: contracts %d must be > 0", domain.ErrInvalidParameter, params.Contracts)
	}
	return &Simulator{params: params}, nil
}

// Run recorre las observaciones en orden y devuelve el resultado agregado.
//
// Una secuencia vacía devuelve un resultado todo-cero, no un error. Filas con
// fair value no finito o quote inválido se saltan y se cuentan; un run con
// 100% de filas inválidas termina limpio con SkippedRows > 0.
func (s *Simulator) Run(observations []Observation) domain.BacktestResult {
	result := domain.BacktestResult{}

	var pnls []float64
	var equity []float64
	cumulative := 0.0

	for _, o := range observations {
		if math.IsNaN(o.FairValue) || math.IsInf(o.FairValue, 0) {
			slog.Warn("skipping row: fair value not finite", "date", o.Date.Format("2006-01-02"))
			result.SkippedRows++
			continue
		}

		sig, err := domain.EvaluateBasis(o.YesBid, o.YesAsk, o.FairValue, s.params.EntryThreshold)
		if err != nil {
			slog.Warn("skipping row: bad quote",
				"date", o.Date.Format("2006-01-02"),
				"bid", o.YesBid,
				"ask", o.YesAsk,
				"err", err,
			)
			result.SkippedRows++
			continue
		}
		if sig.Action == domain.ActionHold {
			continue
		}

		trade := s.fill(o, sig)
		result.Trades = append(result.Trades, trade)

		cumulative += trade.PnL
		equity = append(equity, cumulative)
		pnls = append(pnls, trade.PnL)

		if trade.PnL > 0 {
			result.WinningTrades++
		} else {
			// P&L exactamente 0 cuenta como perdedor (desempate explícito)
			result.LosingTrades++
		}
	}

	result.RoundTrips = len(result.Trades)
	result.TotalPnL = cumulative
	result.TotalPnLDollars = cumulative / 100
	result.MaxDrawdown = domain.MaxDrawdown(equity)
	result.SharpeRatio = domain.SharpeRatio(pnls)
	result.AvgTradePnL = domain.Mean(pnls)
	if result.RoundTrips > 0 {
		result.WinRate = float64(result.WinningTrades) / float64(result.RoundTrips) * 100
	}
	return result
}

// fill realiza el round trip asumiendo cierre al fair value:
// buy entra al ask y gana fv-ask; sell entra al bid y gana bid-fv.
func (s *Simulator) fill(o Observation, sig domain.Signal) domain.BacktestTrade {
	var gross float64
	var price int
	if sig.Action == domain.ActionBuy {
		gross = o.FairValue - float64(o.YesAsk)
		price = o.YesAsk
	} else {
		gross = float64(o.YesBid) - o.FairValue
		price = o.YesBid
	}
	net := (gross - s.params.FeesRoundTrip) * float64(s.params.Contracts)

	return domain.BacktestTrade{
		Timestamp: o.Date,
		Action:    sig.Action,
		Side:      s.params.Side,
		Price:     price,
		Contracts: s.params.Contracts,
		PnL:       net,
	}
}
