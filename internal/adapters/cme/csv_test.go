package cme

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alejandrodnm/basisbot/internal/domain"
)

const sampleCSV = `"Date","Price","Open","High","Low","Vol.","Change %"
"01/04/2024","96.40","96.39","96.41","96.38","10.5K","0.04%"
"01/03/2024","96.36","96.35","96.37","96.34","12.1K","0.01%"
"01/02/2024","96.35","96.34","96.36","96.33","9.8K","-0.02%"
`

func TestParse_SortsAscending(t *testing.T) {
	points, err := Parse(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, points, 3)

	// el export viene más-reciente-primero; la ingesta lo da vuelta
	assert.Equal(t, "2024-01-02", points[0].DateKey())
	assert.Equal(t, "2024-01-04", points[2].DateKey())
	assert.Equal(t, 96.35, points[0].Settlement)
	assert.NoError(t, domain.ValidatePriceSeries(points))
}

func TestParse_DuplicateDateRejected(t *testing.T) {
	csv := `Date,Price
01/02/2024,96.35
01/02/2024,96.36
`
	_, err := Parse(strings.NewReader(csv))
	assert.ErrorIs(t, err, domain.ErrUnsortedInput)
}

func TestParse_MissingColumns(t *testing.T) {
	_, err := Parse(strings.NewReader("Fecha,Precio\n01/02/2024,96.35\n"))
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}

func TestParse_BadPrice(t *testing.T) {
	_, err := Parse(strings.NewReader("Date,Price\n01/02/2024,n/a\n"))
	assert.Error(t, err)
}

func TestParse_ThousandsSeparator(t *testing.T) {
	points, err := Parse(strings.NewReader("Date,Price\n01/02/2024,\"1,096.35\"\n"))
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, 1096.35, points[0].Settlement)
}

func TestClient_FetchPriceHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cme.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	points, err := NewClient(path).FetchPriceHistory(context.Background())
	require.NoError(t, err)
	assert.Len(t, points, 3)
}

func TestClient_FileNotFound(t *testing.T) {
	_, err := NewClient("does-not-exist.csv").FetchPriceHistory(context.Background())
	assert.Error(t, err)
}
