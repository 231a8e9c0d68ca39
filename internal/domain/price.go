package domain

import (
	"fmt"
	"time"
)

// PricePoint es el precio de liquidación de un día del futuro ZQ (Fed Funds).
// Inmutable una vez ingerido; una fila por día de trading.
type PricePoint struct {
	Date       time.Time
	Settlement float64 // precio del futuro, ej. 96.36
}

// DateKey devuelve la fecha normalizada como clave de alineación (YYYY-MM-DD).
func (p PricePoint) DateKey() string {
	return p.Date.Format("2006-01-02")
}

// ImpliedRate devuelve la tasa implícita del futuro: 100 - precio.
func (p PricePoint) ImpliedRate() float64 {
	return 100 - p.Settlement
}

// ValidatePriceSeries verifica que la serie esté ordenada ascendente por fecha
// y sin fechas duplicadas. El core NO ordena defensivamente: la ingesta (CSV)
// es responsable de ordenar, y aquí solo validamos el contrato.
func ValidatePriceSeries(prices []PricePoint) error {
	for i := 1; i < len(prices); i++ {
		prev, cur := prices[i-1], prices[i]
		if !cur.Date.After(prev.Date) {
			if cur.DateKey() == prev.DateKey() {
				return fmt.Errorf("%w: duplicate date %s", ErrUnsortedInput, cur.DateKey())
			}
			return fmt.Errorf("%w: %s after %s", ErrUnsortedInput, cur.DateKey(), prev.DateKey())
		}
	}
	return nil
}
