package domain

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveProbability_KnownScenario(t *testing.T) {
	// settlement 96.36 → implied 3.64, base 3.50 → (3.64-3.50)/0.25 = 0.56
	p, err := DeriveProbability(96.36, 5.33, 0.25)
	require.NoError(t, err)
	assert.InDelta(t, 0.56, p, 1e-9)
}

func TestDeriveProbability_Degenerate(t *testing.T) {
	// implied rate exactamente en un step → probabilidad 0
	p, err := DeriveProbability(96.50, 5.33, 0.25)
	require.NoError(t, err)
	assert.Equal(t, 0.0, p)
}

func TestDeriveProbability_InvalidStep(t *testing.T) {
	_, err := DeriveProbability(96.36, 5.33, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)

	_, err = DeriveProbability(96.36, 5.33, -0.25)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestDeriveProbability_AlwaysInRange(t *testing.T) {
	// Ley de clamping: para todo step > 0 y todo precio, el resultado ∈ [0,1]
	steps := []float64{0.01, 0.25, 0.5, 1.0, 3.7}
	for _, s := range steps {
		for price := -10.0; price <= 110.0; price += 0.37 {
			p, err := DeriveProbability(price, 5.33, s)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, p, 0.0, "price=%v step=%v", price, s)
			assert.LessOrEqual(t, p, 1.0, "price=%v step=%v", price, s)
		}
	}
}

func TestProbabilityModel_Deterministic(t *testing.T) {
	m, err := NewProbabilityModel(5.33, 0.25)
	require.NoError(t, err)

	first := m.Probability(96.36)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, m.Probability(96.36))
	}
	assert.InDelta(t, 56.0, m.FairValueCents(96.36), 1e-9)
}

func TestProbabilityModel_InvalidStep(t *testing.T) {
	_, err := NewProbabilityModel(5.33, 0)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestProbabilityModel_ConcurrentReads(t *testing.T) {
	m, err := NewProbabilityModel(5.33, 0.25)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for price := 95.0; price < 97.0; price += 0.01 {
				p := m.Probability(price)
				assert.GreaterOrEqual(t, p, 0.0)
				assert.LessOrEqual(t, p, 1.0)
			}
		}()
	}
	wg.Wait()
}
