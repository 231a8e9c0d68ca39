package ports

import (
	"context"

	"github.com/alejandrodnm/basisbot/internal/domain"
)

// Storage persiste los runs de backtest como registro diagnóstico.
// El motor nunca lee este estado de vuelta: no hay persistencia de
// historial de trades entre runs.
type Storage interface {
	// SaveRun persiste un run completo con sus trades.
	SaveRun(ctx context.Context, run domain.BacktestRun) error

	// GetRuns devuelve los últimos runs guardados, más reciente primero.
	GetRuns(ctx context.Context, limit int) ([]domain.BacktestRun, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
