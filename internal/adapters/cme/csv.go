package cme

// csv.go — ingesta del histórico de futuros ZQ desde CSV.
//
// Formato esperado (export de "CBOT 30-DAY Federal Fund Futures Historical
// Data"): una columna Date en MM/DD/YYYY y una columna Price con el precio
// de liquidación. El resto de columnas se ignoran.
//
// La ingesta ordena por fecha ascendente (el export viene más-reciente-primero)
// y rechaza fechas duplicadas; el core valida el mismo contrato en Align.

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/alejandrodnm/basisbot/internal/domain"
)

const dateLayout = "01/02/2006"

// Client implementa ports.PriceHistorySource leyendo un archivo CSV.
type Client struct {
	path string
}

// NewClient crea un cliente para la ruta dada.
func NewClient(path string) *Client {
	return &Client{path: path}
}

// FetchPriceHistory lee, parsea y ordena la serie de precios.
func (c *Client) FetchPriceHistory(_ context.Context) ([]domain.PricePoint, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("cme.FetchPriceHistory: open %q: %w", c.path, err)
	}
	defer f.Close()

	points, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("cme.FetchPriceHistory: %w", err)
	}
	slog.Info("loaded CME price history", "path", c.path, "days", len(points))
	return points, nil
}

// Parse lee el CSV completo y devuelve la serie ordenada ascendente.
func Parse(r io.Reader) ([]domain.PricePoint, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	dateCol, priceCol := -1, -1
	for i, name := range header {
		// Los exports de Investing.com traen BOM en la primera columna
		switch strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF")) {
		case "Date":
			dateCol = i
		case "Price":
			priceCol = i
		}
	}
	if dateCol < 0 || priceCol < 0 {
		return nil, fmt.Errorf("%w: CSV must contain Date and Price columns", domain.ErrInvalidParameter)
	}

	var points []domain.PricePoint
	seen := make(map[string]bool)
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if dateCol >= len(record) || priceCol >= len(record) {
			continue
		}

		date, err := time.Parse(dateLayout, strings.TrimSpace(record[dateCol]))
		if err != nil {
			return nil, fmt.Errorf("parse date %q: %w", record[dateCol], err)
		}
		price, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(record[priceCol]), ",", ""), 64)
		if err != nil {
			return nil, fmt.Errorf("parse price %q: %w", record[priceCol], err)
		}

		key := date.Format("2006-01-02")
		if seen[key] {
			return nil, fmt.Errorf("%w: duplicate date %s", domain.ErrUnsortedInput, key)
		}
		seen[key] = true

		points = append(points, domain.PricePoint{Date: date, Settlement: price})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points, nil
}
