package domain

import "fmt"

// Action es la decisión discreta del motor de basis.
type Action int

const (
	ActionHold Action = iota
	ActionBuy
	ActionSell
)

func (a Action) String() string {
	switch a {
	case ActionBuy:
		return "buy"
	case ActionSell:
		return "sell"
	default:
		return "hold"
	}
}

// Side es el lado del contrato que se opera.
type Side int

const (
	SideYes Side = iota
	SideNo
)

func (s Side) String() string {
	if s == SideNo {
		return "no"
	}
	return "yes"
}

// ParseSide convierte "yes"/"no" en Side. Cualquier otro valor falla.
func ParseSide(s string) (Side, error) {
	switch s {
	case "yes", "":
		return SideYes, nil
	case "no":
		return SideNo, nil
	default:
		return SideYes, fmt.Errorf("%w: side %q (want yes|no)", ErrInvalidParameter, s)
	}
}

// Signal es la salida de una evaluación del motor. Se produce fresco en cada
// llamada: puro respecto a sus inputs, sin estado entre evaluaciones.
type Signal struct {
	Action     Action
	Side       Side
	Confidence float64 // [0,1]
	Reason     string  // ambos basis + fair value, para observabilidad
}

// confidenceDivisor normaliza el basis a confianza: 10c de edge = confianza 1.0.
const confidenceDivisor = 10.0

// EvaluateBasis compara el fair value contra el quote y decide buy/sell/hold.
//
//	basisLong  = fv - ask   (positivo → el mercado infravalora YES → comprar)
//	basisShort = bid - fv   (positivo → el mercado sobrevalora YES → vender)
//
// Compra si basisLong supera el threshold y domina a basisShort; vende si
// basisShort supera el threshold; si no, hold. Bajo el invariante bid < ask
// ambos basis nunca superan el threshold a la vez (basisLong + basisShort =
// bid - ask < 0), así que el orden de los branches no es una decisión silenciosa.
//
// Falla con ErrInvalidQuote si bid >= ask (se rechaza, no se clampa) y con
// ErrInvalidParameter si el threshold es negativo.
func EvaluateBasis(bid, ask int, fairValueCents, entryThresholdCents float64) (Signal, error) {
	if entryThresholdCents < 0 {
		return Signal{}, fmt.Errorf("%w: entry threshold %v must be >= 0", ErrInvalidParameter, entryThresholdCents)
	}
	q := Quote{YesBid: bid, YesAsk: ask}
	if err := q.Validate(); err != nil {
		return Signal{}, err
	}

	basisLong := fairValueCents - float64(ask)
	basisShort := float64(bid) - fairValueCents
	reason := fmt.Sprintf("fv=%.1fc bid=%dc ask=%dc basis_long=%.1fc basis_short=%.1fc",
		fairValueCents, bid, ask, basisLong, basisShort)

	switch {
	case basisLong > entryThresholdCents && basisLong >= basisShort:
		return Signal{
			Action:     ActionBuy,
			Side:       SideYes,
			Confidence: confidence(basisLong),
			Reason:     "market underprices YES: " + reason,
		}, nil
	case basisShort > entryThresholdCents:
		return Signal{
			Action:     ActionSell,
			Side:       SideYes,
			Confidence: confidence(basisShort),
			Reason:     "market overprices YES: " + reason,
		}, nil
	default:
		return Signal{
			Action: ActionHold,
			Side:   SideYes,
			Reason: "no edge above threshold: " + reason,
		}, nil
	}
}

func confidence(basis float64) float64 {
	return clamp01(basis / confidenceDivisor)
}
