package backtest

// align.go — alinea la historia CME con los quotes Kalshi por fecha exacta.
//
// Semántica de inner join: fechas presentes en una sola fuente se descartan
// (con contador para diagnóstico), nunca se interpolan. Equivale al align de
// dos series indexadas: mapa fecha→precio + una pasada sobre los quotes con
// lookups O(1).

import (
	"fmt"
	"time"

	"github.com/alejandrodnm/basisbot/internal/domain"
)

// Observation es una fila alineada lista para el replay:
// quote Kalshi + fair value CME del mismo día.
type Observation struct {
	Date      time.Time
	YesBid    int
	YesAsk    int
	FairValue float64 // centavos [0,100]
}

// Align cruza la serie de precios con los quotes y deriva el fair value
// de cada fecha con el modelo dado. Devuelve las observaciones en el orden
// de los quotes y cuántas filas se descartaron por falta de contraparte.
//
// La serie de precios debe venir ordenada ascendente y sin duplicados
// (la ingesta CSV ya ordena); si no, falla con ErrUnsortedInput.
func Align(prices []domain.PricePoint, quotes []domain.Quote, model *domain.ProbabilityModel) ([]Observation, int, error) {
	if model == nil {
		return nil, 0, fmt.Errorf("%w: nil probability model", domain.ErrInvalidParameter)
	}
	if err := domain.ValidatePriceSeries(prices); err != nil {
		return nil, 0, fmt.Errorf("backtest.Align: %w", err)
	}

	byDate := make(map[string]domain.PricePoint, len(prices))
	for _, p := range prices {
		byDate[p.DateKey()] = p
	}

	obs := make([]Observation, 0, len(quotes))
	dropped := 0
	for _, q := range quotes {
		p, ok := byDate[q.DateKey()]
		if !ok {
			dropped++
			continue
		}
		obs = append(obs, Observation{
			Date:      q.Date,
			YesBid:    q.YesBid,
			YesAsk:    q.YesAsk,
			FairValue: model.FairValueCents(p.Settlement),
		})
	}
	return obs, dropped, nil
}
