package kalshi

// mock.go — generador sintético de quotes para backtesting sin API.
//
// Simula un mercado Kalshi que deriva alrededor de la verdad CME: centra el
// quote en el fair value más ruido gaussiano, con un spread fijo de 4c, y
// clampa al rango válido [1,99]. El seed es un parámetro explícito — la
// reproducibilidad no depende del orden de llamadas ni de estado global.

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/alejandrodnm/basisbot/internal/domain"
	"github.com/alejandrodnm/basisbot/internal/ports"
)

// Defaults del generador (ver config).
const (
	DefaultDriftStd    = 0.05 // desviación estándar del ruido, en probabilidad
	DefaultSpreadWidth = 4    // centavos
	DefaultMockSeed    = 42
)

// MockQuoteSource implementa ports.QuoteSource generando quotes sintéticos
// a partir de la historia CME y el modelo de probabilidad.
type MockQuoteSource struct {
	prices      ports.PriceHistorySource
	model       *domain.ProbabilityModel
	driftStd    float64
	spreadWidth int
	seed        int64
}

// NewMockQuoteSource crea el generador. driftStd <= 0 y spreadWidth <= 0
// caen a los defaults.
func NewMockQuoteSource(prices ports.PriceHistorySource, model *domain.ProbabilityModel, driftStd float64, spreadWidth int, seed int64) (*MockQuoteSource, error) {
	if prices == nil || model == nil {
		return nil, fmt.Errorf("%w: nil price source or model", domain.ErrInvalidParameter)
	}
	if driftStd <= 0 {
		driftStd = DefaultDriftStd
	}
	if spreadWidth <= 0 {
		spreadWidth = DefaultSpreadWidth
	}
	return &MockQuoteSource{
		prices:      prices,
		model:       model,
		driftStd:    driftStd,
		spreadWidth: spreadWidth,
		seed:        seed,
	}, nil
}

// FetchQuotes genera un quote por fecha de la historia de precios.
// Determinista para un mismo seed y una misma historia.
func (m *MockQuoteSource) FetchQuotes(ctx context.Context) ([]domain.Quote, error) {
	points, err := m.prices.FetchPriceHistory(ctx)
	if err != nil {
		return nil, fmt.Errorf("kalshi.MockQuoteSource: %w", err)
	}

	rng := rand.New(rand.NewSource(m.seed))
	quotes := make([]domain.Quote, 0, len(points))
	for _, p := range points {
		trueProb := m.model.Probability(p.Settlement)
		noise := rng.NormFloat64() * m.driftStd
		centerCents := (trueProb + noise) * 100

		half := m.spreadWidth / 2
		bid := int(centerCents) - half
		ask := int(centerCents) + half

		// Clamp al rango válido preservando bid < ask
		bid = max(domain.MinQuoteCents, min(domain.MaxQuoteCents-1, bid))
		ask = max(bid+1, min(domain.MaxQuoteCents, ask))

		quotes = append(quotes, domain.Quote{Date: p.Date, YesBid: bid, YesAsk: ask})
	}
	return quotes, nil
}
