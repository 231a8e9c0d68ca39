package domain

import (
	"fmt"
	"time"
)

// Límites de precio de un contrato Kalshi en centavos.
const (
	MinQuoteCents = 1
	MaxQuoteCents = 99
)

// Quote es un par bid/ask del lado YES de un mercado Kalshi.
// Producido externamente (API o mock); de solo lectura para el core.
type Quote struct {
	Date   time.Time
	YesBid int // centavos, [1,99]
	YesAsk int // centavos, [1,99]
}

// DateKey devuelve la fecha normalizada como clave de alineación.
func (q Quote) DateKey() string {
	return q.Date.Format("2006-01-02")
}

// Validate verifica el invariante bid < ask y el rango [1,99].
// Un quote inválido se rechaza, nunca se clampa (política única del core).
func (q Quote) Validate() error {
	if q.YesBid < MinQuoteCents || q.YesBid > MaxQuoteCents {
		return fmt.Errorf("%w: bid %d out of [%d,%d]", ErrInvalidQuote, q.YesBid, MinQuoteCents, MaxQuoteCents)
	}
	if q.YesAsk < MinQuoteCents || q.YesAsk > MaxQuoteCents {
		return fmt.Errorf("%w: ask %d out of [%d,%d]", ErrInvalidQuote, q.YesAsk, MinQuoteCents, MaxQuoteCents)
	}
	if q.YesBid >= q.YesAsk {
		return fmt.Errorf("%w: bid %d >= ask %d", ErrInvalidQuote, q.YesBid, q.YesAsk)
	}
	return nil
}

// Mid devuelve el punto medio del quote en centavos.
func (q Quote) Mid() float64 {
	return float64(q.YesBid+q.YesAsk) / 2
}

// Spread devuelve el ancho del quote (ask - bid) en centavos.
func (q Quote) Spread() int {
	return q.YesAsk - q.YesBid
}

// MarketSnapshot es el estado actual de un mercado Kalshi para trading en vivo.
type MarketSnapshot struct {
	Ticker     string
	Title      string
	Status     string
	YesBid     int
	YesAsk     int
	YesBidSize int
	YesAskSize int
	LastPrice  int
	Volume     int
}

// Quote devuelve el bid/ask del snapshot como Quote con timestamp now.
func (s MarketSnapshot) Quote(now time.Time) Quote {
	return Quote{Date: now, YesBid: s.YesBid, YesAsk: s.YesAsk}
}

// MicroPrice calcula el precio ponderado por volumen del snapshot:
// ((bidSize × ask) + (askSize × bid)) / (bidSize + askSize).
// Si no hay tamaños cae al mid, y si tampoco hay quote al último precio.
func (s MarketSnapshot) MicroPrice() float64 {
	total := s.YesBidSize + s.YesAskSize
	if total > 0 && s.YesBid > 0 && s.YesAsk > 0 {
		return (float64(s.YesBidSize)*float64(s.YesAsk) + float64(s.YesAskSize)*float64(s.YesBid)) / float64(total)
	}
	if s.YesBid > 0 && s.YesAsk > 0 {
		return float64(s.YesBid+s.YesAsk) / 2
	}
	return float64(s.LastPrice)
}
