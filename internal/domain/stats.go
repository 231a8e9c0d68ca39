package domain

import "math"

// SharpeRatio calcula mean/stddev sobre la secuencia de P&L por trade.
// Usa desviación estándar POBLACIONAL (divisor n, no n-1) y no anualiza:
// es la métrica simplificada del backtest, no un Sharpe de gestor.
// Devuelve 0 con menos de 2 trades o varianza cero (nunca divide por cero).
func SharpeRatio(pnls []float64) float64 {
	if len(pnls) < 2 {
		return 0
	}
	mean := Mean(pnls)

	var sumSq float64
	for _, p := range pnls {
		d := p - mean
		sumSq += d * d
	}
	std := math.Sqrt(sumSq / float64(len(pnls)))
	if std == 0 {
		return 0
	}
	return mean / std
}

// Mean devuelve el promedio de la secuencia, 0 si está vacía.
func Mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}

// MaxDrawdown calcula la mayor caída pico-a-valle de una curva de equity
// (P&L acumulado, que arranca en 0 antes del primer trade).
// Devuelve un valor >= 0 en las mismas unidades que la curva.
func MaxDrawdown(equity []float64) float64 {
	var peak, maxDD float64 // el equity inicial es 0
	for _, v := range equity {
		if v > peak {
			peak = v
		}
		if dd := peak - v; dd > maxDD {
			maxDD = dd
		}
	}
	return maxDD
}
