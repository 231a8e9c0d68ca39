package ports

import (
	"context"

	"github.com/alejandrodnm/basisbot/internal/domain"
)

// Notifier presenta resultados y señales al usuario.
type Notifier interface {
	// NotifyBacktest muestra el resultado agregado de un replay.
	// En la implementación de consola, imprime el resumen y la tabla de trades.
	NotifyBacktest(ctx context.Context, result domain.BacktestResult) error

	// NotifySignal muestra una señal generada en vivo.
	NotifySignal(ctx context.Context, snapshot domain.MarketSnapshot, signal domain.Signal) error
}
