package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateBasis_HoldInsideThreshold(t *testing.T) {
	// fv 56c, bid 50 / ask 53 → basis_long = 3 < 4.5 → hold
	sig, err := EvaluateBasis(50, 53, 56, 4.5)
	require.NoError(t, err)
	assert.Equal(t, ActionHold, sig.Action)
	assert.Equal(t, 0.0, sig.Confidence)
}

func TestEvaluateBasis_BuySignal(t *testing.T) {
	// fv 56c, bid 48 / ask 51 → basis_long = 5 > 4.5 → buy, conf 0.5
	sig, err := EvaluateBasis(48, 51, 56, 4.5)
	require.NoError(t, err)
	assert.Equal(t, ActionBuy, sig.Action)
	assert.Equal(t, SideYes, sig.Side)
	assert.InDelta(t, 0.5, sig.Confidence, 1e-9)
}

func TestEvaluateBasis_SellSignal(t *testing.T) {
	// fv 40c, bid 48 / ask 51 → basis_short = 8 > 4.5 → sell
	sig, err := EvaluateBasis(48, 51, 40, 4.5)
	require.NoError(t, err)
	assert.Equal(t, ActionSell, sig.Action)
	assert.InDelta(t, 0.8, sig.Confidence, 1e-9)
}

func TestEvaluateBasis_ConfidenceCapped(t *testing.T) {
	// edge de 30c → confianza capada a 1.0
	sig, err := EvaluateBasis(10, 12, 42, 4.5)
	require.NoError(t, err)
	assert.Equal(t, ActionBuy, sig.Action)
	assert.Equal(t, 1.0, sig.Confidence)
}

func TestEvaluateBasis_ReasonReportsBothBases(t *testing.T) {
	// el reason es contrato de debuggability, no cosmética
	sig, err := EvaluateBasis(48, 51, 56, 4.5)
	require.NoError(t, err)
	assert.Contains(t, sig.Reason, "basis_long=5.0c")
	assert.Contains(t, sig.Reason, "basis_short=-8.0c")
	assert.Contains(t, sig.Reason, "fv=56.0c")
}

func TestEvaluateBasis_InvalidQuoteRejected(t *testing.T) {
	_, err := EvaluateBasis(53, 50, 56, 4.5) // bid > ask
	assert.ErrorIs(t, err, ErrInvalidQuote)

	_, err = EvaluateBasis(50, 50, 56, 4.5) // bid == ask
	assert.ErrorIs(t, err, ErrInvalidQuote)

	_, err = EvaluateBasis(0, 50, 56, 4.5) // bid fuera de [1,99]
	assert.ErrorIs(t, err, ErrInvalidQuote)

	_, err = EvaluateBasis(50, 100, 56, 4.5) // ask fuera de [1,99]
	assert.ErrorIs(t, err, ErrInvalidQuote)
}

func TestEvaluateBasis_NegativeThreshold(t *testing.T) {
	_, err := EvaluateBasis(48, 51, 56, -1)
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestEvaluateBasis_Idempotent(t *testing.T) {
	// pureza: inputs idénticos → señal idéntica
	a, err := EvaluateBasis(48, 51, 56, 4.5)
	require.NoError(t, err)
	b, err := EvaluateBasis(48, 51, 56, 4.5)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestEvaluateBasis_NeverHoldWithBigEdge(t *testing.T) {
	// fv fuera de [bid,ask] por más que el threshold → nunca hold
	thresh := 2.0
	for bid := 20; bid <= 60; bid += 5 {
		ask := bid + 4 // ask-bid = 4 ≥ 2×thresh
		for _, fv := range []float64{float64(bid) - thresh - 1, float64(ask) + thresh + 1} {
			sig, err := EvaluateBasis(bid, ask, fv, thresh)
			require.NoError(t, err)
			assert.NotEqual(t, ActionHold, sig.Action, "bid=%d ask=%d fv=%v", bid, ask, fv)
		}
	}
}

func TestEvaluateBasis_DoubleExceedUnreachable(t *testing.T) {
	// Bajo bid < ask: basis_long + basis_short = bid - ask < 0, así que ambos
	// no pueden superar un threshold >= 0 a la vez. Asserción, no branch.
	for bid := 1; bid < 99; bid += 7 {
		for ask := bid + 1; ask <= 99; ask += 7 {
			for fv := 0.0; fv <= 100.0; fv += 9.5 {
				basisLong := fv - float64(ask)
				basisShort := float64(bid) - fv
				assert.False(t, basisLong > 0 && basisShort > 0,
					"bid=%d ask=%d fv=%v", bid, ask, fv)
			}
		}
	}
}

func TestParseSide(t *testing.T) {
	s, err := ParseSide("yes")
	require.NoError(t, err)
	assert.Equal(t, SideYes, s)

	s, err = ParseSide("no")
	require.NoError(t, err)
	assert.Equal(t, SideNo, s)

	_, err = ParseSide("maybe")
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestQuote_Validate(t *testing.T) {
	assert.NoError(t, Quote{YesBid: 48, YesAsk: 51}.Validate())
	assert.ErrorIs(t, Quote{YesBid: 51, YesAsk: 48}.Validate(), ErrInvalidQuote)
	assert.ErrorIs(t, Quote{YesBid: 0, YesAsk: 50}.Validate(), ErrInvalidQuote)
	assert.ErrorIs(t, Quote{YesBid: 50, YesAsk: 100}.Validate(), ErrInvalidQuote)
}

func TestMarketSnapshot_MicroPrice(t *testing.T) {
	// micro = (bidSize×ask + askSize×bid) / total = (300×52 + 100×50) / 400 = 51.5
	s := MarketSnapshot{YesBid: 50, YesAsk: 52, YesBidSize: 300, YesAskSize: 100}
	assert.InDelta(t, 51.5, s.MicroPrice(), 1e-9)

	// sin tamaños → mid
	s = MarketSnapshot{YesBid: 50, YesAsk: 52}
	assert.InDelta(t, 51.0, s.MicroPrice(), 1e-9)

	// sin quote → last price
	s = MarketSnapshot{LastPrice: 47}
	assert.InDelta(t, 47.0, s.MicroPrice(), 1e-9)
}
