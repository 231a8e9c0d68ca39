package ports

import (
	"context"

	"github.com/alejandrodnm/basisbot/internal/domain"
)

// QuoteSource provee la secuencia histórica de quotes bid/ask del mercado,
// ordenada por fecha. Puede ser la API, un archivo, o el generador mock.
type QuoteSource interface {
	FetchQuotes(ctx context.Context) ([]domain.Quote, error)
}

// MarketProvider obtiene el estado actual de un mercado para trading en vivo.
type MarketProvider interface {
	FetchMarket(ctx context.Context, ticker string) (domain.MarketSnapshot, error)
}
