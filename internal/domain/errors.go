package domain

import "errors"

// Errores centinela del core. Los adapters los envuelven con contexto
// usando fmt.Errorf("...: %w", err).
var (
	// ErrInvalidParameter indica una mala configuración en tiempo de construcción
	// (step size no positivo, threshold negativo, contratos <= 0). Siempre fatal.
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrInvalidQuote indica un quote con bid >= ask o fuera del rango [1,99].
	// Por fila: el replay lo salta y lo cuenta, nunca aborta el run.
	ErrInvalidQuote = errors.New("invalid quote")

	// ErrUnsortedInput indica una serie de precios desordenada o con fechas duplicadas.
	ErrUnsortedInput = errors.New("unsorted input")

	// ErrMissingData indica que un quote referencia una fecha sin precio CME.
	ErrMissingData = errors.New("missing data")
)
