package ports

import (
	"context"

	"github.com/alejandrodnm/basisbot/internal/domain"
)

// PriceHistorySource provee la serie de precios de liquidación CME,
// ordenada ascendente por fecha y sin duplicados.
type PriceHistorySource interface {
	FetchPriceHistory(ctx context.Context) ([]domain.PricePoint, error)
}
