package domain

import (
	"fmt"
	"math"
	"sync"
)

// Parámetros por defecto del modelo (ver config).
const (
	DefaultReferenceRate = 5.33 // EFFR actual en %
	DefaultStepSize      = 0.25 // movimiento estándar de 25 bps
)

// DeriveProbability convierte un precio de liquidación ZQ en la probabilidad
// implícita de un movimiento de tasa.
//
// Fórmula:
//
//	impliedRate = 100 - settlement
//	baseRate    = floor(impliedRate / step) × step   (escenario "sin movimiento")
//	prob        = (impliedRate - baseRate) / step
//
// El resultado se recorta a [0, 1] — nunca se extrapola. Es una simplificación
// de una sola reunión: no modela curvas multi-step.
func DeriveProbability(settlement, referenceRate, stepSize float64) (float64, error) {
	if stepSize <= 0 {
		return 0, fmt.Errorf("%w: step size %v must be > 0", ErrInvalidParameter, stepSize)
	}
	_ = referenceRate // ancla del contrato, la prob solo depende del precio y el step

	impliedRate := 100 - settlement
	baseRate := math.Floor(impliedRate/stepSize) * stepSize
	prob := (impliedRate - baseRate) / stepSize

	return clamp01(prob), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ProbabilityModel deriva probabilidades con parámetros fijos y cachea los
// resultados por precio. La serie histórica puede repetir precios de
// liquidación, así que la cache evita recalcular.
//
// Seguro para lectura concurrente: múltiples backtests pueden compartir
// un mismo modelo sobre la misma historia.
type ProbabilityModel struct {
	referenceRate float64
	stepSize      float64

	mu    sync.RWMutex
	cache map[float64]float64 // settlement → prob
}

// NewProbabilityModel crea un modelo con los parámetros dados.
// Falla con ErrInvalidParameter si stepSize no es positivo.
func NewProbabilityModel(referenceRate, stepSize float64) (*ProbabilityModel, error) {
	if stepSize <= 0 {
		return nil, fmt.Errorf("%w: step size %v must be > 0", ErrInvalidParameter, stepSize)
	}
	return &ProbabilityModel{
		referenceRate: referenceRate,
		stepSize:      stepSize,
		cache:         make(map[float64]float64),
	}, nil
}

// Probability devuelve la probabilidad implícita para un precio de liquidación.
// Determinista dentro de un run: el mismo precio siempre resuelve al mismo valor.
func (m *ProbabilityModel) Probability(settlement float64) float64 {
	m.mu.RLock()
	p, ok := m.cache[settlement]
	m.mu.RUnlock()
	if ok {
		return p
	}

	p, _ = DeriveProbability(settlement, m.referenceRate, m.stepSize) // step ya validado en New
	m.mu.Lock()
	m.cache[settlement] = p
	m.mu.Unlock()
	return p
}

// FairValueCents devuelve el fair value en centavos (0-100) para un precio.
func (m *ProbabilityModel) FairValueCents(settlement float64) float64 {
	return m.Probability(settlement) * 100
}
