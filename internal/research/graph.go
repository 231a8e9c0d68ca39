package research

// graph.go — snapshots diarios del "triángulo de conflicto" macro/sentiment.
//
// Herramienta exploratoria: modela cómo el precio Kalshi es tironeado entre
// la verdad institucional (US02Y → CME) y el ruido retail (NEWS → Kalshi),
// con el basis (CME → Kalshi) como target de arbitraje. Ninguna decisión de
// trading depende de esto — es material de research.
//
// Los nodos macro/sentiment son mock determinista: el seed es un parámetro
// explícito combinado con la fecha, nunca estado global del proceso.

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/alejandrodnm/basisbot/internal/domain"
)

// Identificadores de nodo del snapshot.
const (
	NodeCME       = "CME_ZQ"
	NodeMacro     = "US02Y"
	NodeSentiment = "NEWS"
	NodeKalshi    = "KALSHI"
)

// Tipos de edge.
const (
	EdgeLeadLag = "lead_lag"        // macro adelanta a CME
	EdgeBasis   = "basis"           // el arb que queremos operar
	EdgeNoise   = "noise_influence" // dominancia retail
)

// Node es el estado de un activo/señal en una fecha.
type Node struct {
	Type  string  // asset | macro | sentiment | market
	Label string
	Value float64 // rate para asset/macro, score para sentiment, precio para market
}

// Edge es una relación dirigida con peso entre dos nodos.
type Edge struct {
	From, To string
	Type     string
	Weight   float64
}

// Snapshot es el grafo heterogéneo de un día.
type Snapshot struct {
	Date  time.Time
	Nodes map[string]Node
	Edges []Edge
}

// BasisWeight devuelve el peso del edge basis (CME → Kalshi), 0 si no existe.
func (s Snapshot) BasisWeight() float64 {
	for _, e := range s.Edges {
		if e.Type == EdgeBasis {
			return e.Weight
		}
	}
	return 0
}

// Builder construye snapshots a partir de la historia CME.
type Builder struct {
	seed       int64
	strikeBase float64
	stepSize   float64
}

// NewBuilder crea un Builder con el seed dado.
func NewBuilder(seed int64, strikeBase, stepSize float64) (*Builder, error) {
	if stepSize <= 0 {
		return nil, fmt.Errorf("%w: step size %v must be > 0", domain.ErrInvalidParameter, stepSize)
	}
	return &Builder{seed: seed, strikeBase: strikeBase, stepSize: stepSize}, nil
}

// BuildSnapshot construye el grafo de 4 nodos para un punto de la serie.
func (b *Builder) BuildSnapshot(p domain.PricePoint) Snapshot {
	cmeRate := p.ImpliedRate()
	rng := rand.New(rand.NewSource(b.seed ^ p.Date.Unix()))

	// Macro (US 2Y): correlacionado con CME pero lo adelanta
	macroYield := cmeRate + rng.NormFloat64()*0.02

	// Sentiment (news retail, 0-100): sigue al macro con overreaction
	sentiment := 50 + (macroYield-b.strikeBase)*100 + rng.NormFloat64()*10
	sentiment = math.Max(0, math.Min(100, sentiment))

	// Kalshi: tironeado entre verdad (CME) y ruido (macro proxy)
	kalshiRate := cmeRate*0.7 + macroYield*0.3 + rng.NormFloat64()*0.05
	kalshiPrice := math.Max(0, math.Min(1, (kalshiRate-b.strikeBase)/b.stepSize)) * 100

	return Snapshot{
		Date: p.Date,
		Nodes: map[string]Node{
			NodeCME:       {Type: "asset", Label: "CME Futures", Value: cmeRate},
			NodeMacro:     {Type: "macro", Label: "2Y Treasury", Value: macroYield},
			NodeSentiment: {Type: "sentiment", Label: "News/Reddit", Value: sentiment},
			NodeKalshi:    {Type: "market", Label: "Kalshi Fed", Value: kalshiPrice},
		},
		Edges: []Edge{
			{From: NodeMacro, To: NodeCME, Type: EdgeLeadLag, Weight: math.Abs(macroYield - cmeRate)},
			{From: NodeCME, To: NodeKalshi, Type: EdgeBasis, Weight: math.Abs(cmeRate - kalshiRate)},
			{From: NodeSentiment, To: NodeKalshi, Type: EdgeNoise, Weight: math.Abs(sentiment-kalshiPrice) / 100},
		},
	}
}

// BuildAll construye un snapshot por fecha de la serie.
func (b *Builder) BuildAll(prices []domain.PricePoint) []Snapshot {
	out := make([]Snapshot, 0, len(prices))
	for _, p := range prices {
		out = append(out, b.BuildSnapshot(p))
	}
	return out
}
