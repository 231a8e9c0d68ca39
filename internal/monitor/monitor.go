package monitor

// monitor.go — loop de trading en vivo sobre el mismo motor de basis que el
// backtest. Hace poll del mercado, calcula el micro price, evalúa la señal y
// ejecuta (o simula, en dry run) respetando el límite de posición.
//
// La concurrencia vive aquí, no en el core: el motor consume observaciones
// terminadas y es seguro llamarlo desde cualquier goroutine.

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alejandrodnm/basisbot/internal/domain"
	"github.com/alejandrodnm/basisbot/internal/ports"
)

// Config es la configuración del monitor en vivo.
type Config struct {
	Ticker         string
	PollInterval   time.Duration
	EntryThreshold float64 // centavos
	Contracts      int     // contratos por orden
	MaxPosition    int     // posición máxima en contratos
	FairValueCents float64 // fair value CME del día, fijado al arrancar
	DryRun         bool    // true → no ejecuta órdenes reales
}

// DefaultConfig devuelve una configuración conservadora.
func DefaultConfig() Config {
	return Config{
		PollInterval:   5 * time.Second,
		EntryThreshold: 4.5,
		Contracts:      1,
		MaxPosition:    10,
		DryRun:         true,
	}
}

// Monitor es el loop de polling en vivo.
type Monitor struct {
	cfg      Config
	market   ports.MarketProvider
	notifier ports.Notifier

	position int // contratos netos (dry run: posición simulada)
}

// New crea un Monitor. Falla con ErrInvalidParameter en misconfiguración.
func New(cfg Config, market ports.MarketProvider, notifier ports.Notifier) (*Monitor, error) {
	if cfg.Ticker == "" {
		return nil, fmt.Errorf("%w: empty ticker", domain.ErrInvalidParameter)
	}
	if cfg.PollInterval <= 0 {
		return nil, fmt.Errorf("%w: poll interval %v must be > 0", domain.ErrInvalidParameter, cfg.PollInterval)
	}
	if cfg.EntryThreshold < 0 {
		return nil, fmt.Errorf("%w: entry threshold %v must be >= 0", domain.ErrInvalidParameter, cfg.EntryThreshold)
	}
	if cfg.Contracts <= 0 {
		return nil, fmt.Errorf("%w: contracts %d must be > 0", domain.ErrInvalidParameter, cfg.Contracts)
	}
	return &Monitor{cfg: cfg, market: market, notifier: notifier}, nil
}

// Position devuelve la posición actual en contratos.
func (m *Monitor) Position() int {
	return m.position
}

// Run ejecuta el loop hasta que el contexto se cancele.
func (m *Monitor) Run(ctx context.Context) error {
	slog.Info("monitor starting",
		"ticker", m.cfg.Ticker,
		"interval", m.cfg.PollInterval,
		"fair_value", m.cfg.FairValueCents,
		"dry_run", m.cfg.DryRun,
	)

	if err := m.tick(ctx); err != nil {
		slog.Error("tick failed", "err", err)
	}

	ticker := time.NewTicker(m.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("monitor stopped", "final_position", m.position)
			return nil
		case <-ticker.C:
			if err := m.tick(ctx); err != nil {
				slog.Error("tick failed", "err", err)
			}
		}
	}
}

// tick hace un ciclo: fetch → evaluar → ejecutar.
func (m *Monitor) tick(ctx context.Context) error {
	snapshot, err := m.market.FetchMarket(ctx, m.cfg.Ticker)
	if err != nil {
		return fmt.Errorf("monitor.tick: %w", err)
	}

	sig, err := domain.EvaluateBasis(snapshot.YesBid, snapshot.YesAsk, m.cfg.FairValueCents, m.cfg.EntryThreshold)
	if err != nil {
		// Quote inválido: se salta el ciclo, nunca tumba el loop
		slog.Warn("skipping tick: bad quote",
			"bid", snapshot.YesBid, "ask", snapshot.YesAsk, "err", err)
		return nil
	}

	slog.Debug("tick",
		"micro_price", snapshot.MicroPrice(),
		"action", sig.Action.String(),
		"confidence", sig.Confidence,
	)

	if sig.Action == domain.ActionHold {
		return nil
	}

	if m.notifier != nil {
		if err := m.notifier.NotifySignal(ctx, snapshot, sig); err != nil {
			slog.Warn("notifier error", "err", err)
		}
	}
	m.execute(snapshot, sig)
	return nil
}

// execute aplica la señal respetando el límite de posición.
// Solo dry run está implementado: la ejecución real queda fuera de alcance.
func (m *Monitor) execute(snapshot domain.MarketSnapshot, sig domain.Signal) {
	delta := m.cfg.Contracts
	if sig.Action == domain.ActionSell {
		delta = -delta
	}

	next := m.position + delta
	if next > m.cfg.MaxPosition || next < -m.cfg.MaxPosition {
		slog.Info("position limit reached, skipping order",
			"position", m.position, "max", m.cfg.MaxPosition)
		return
	}

	price := snapshot.YesAsk
	if sig.Action == domain.ActionSell {
		price = snapshot.YesBid
	}

	orderID := uuid.New().String()
	if m.cfg.DryRun {
		slog.Info("DRY RUN order",
			"order_id", orderID,
			"action", sig.Action.String(),
			"contracts", m.cfg.Contracts,
			"price", price,
			"position", next,
		)
		m.position = next
		return
	}

	// Ejecución real no implementada — el monitor siempre corre en dry run.
	slog.Warn("live execution not implemented, order not placed", "order_id", orderID)
}
