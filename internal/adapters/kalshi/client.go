package kalshi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const (
	demoBaseURL = "https://demo-api.kalshi.co"
	prodBaseURL = "https://api.elections.kalshi.com"

	// Kalshi documenta ~10 req/s para cuentas básicas; corremos al 60%.
	requestsPerSec = 6

	maxRetries    = 3
	baseRetryWait = 500 * time.Millisecond
)

// Client es el HTTP client de Kalshi con rate limiting y retries.
// Los endpoints públicos funcionan sin firmar; los autenticados requieren
// un signer (ver auth.go).
type Client struct {
	http    *http.Client
	base    string
	limiter *rate.Limiter
	signer  *Signer // nil → solo endpoints públicos
}

// NewClient crea un Client contra el API demo o producción.
func NewClient(demo bool, signer *Signer) *Client {
	base := prodBaseURL
	if demo {
		base = demoBaseURL
	}
	return &Client{
		http:    &http.Client{Timeout: 10 * time.Second},
		base:    base,
		limiter: rate.NewLimiter(requestsPerSec, 5),
		signer:  signer,
	}
}

// NewClientWithBase crea un Client contra un base URL arbitrario (tests).
func NewClientWithBase(base string, signer *Signer) *Client {
	c := NewClient(false, signer)
	c.base = base
	return c
}

// get hace un GET con rate limiting, firma (si hay signer) y retries.
func (c *Client) get(ctx context.Context, path string, out any) error {
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
		if err != nil {
			return err
		}
		req.Header.Set("Accept", "application/json")
		if c.signer != nil {
			if err := c.signer.Sign(req); err != nil {
				return fmt.Errorf("sign request: %w", err)
			}
		}

		resp, err := c.http.Do(req)
		if err != nil {
			if attempt == maxRetries {
				return fmt.Errorf("request failed after %d retries: %w", maxRetries, err)
			}
			c.sleep(ctx, attempt)
			continue
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			resp.Body.Close()
			if attempt == maxRetries {
				return fmt.Errorf("status %d after %d retries", resp.StatusCode, maxRetries)
			}
			slog.Warn("kalshi request retrying", "status", resp.StatusCode, "attempt", attempt+1)
			c.sleep(ctx, attempt)
			continue
		}

		return decodeResponse(resp, out)
	}
	return fmt.Errorf("unreachable")
}

func decodeResponse(resp *http.Response, out any) error {
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// sleep espera con backoff exponencial y jitter, respetando el contexto.
func (c *Client) sleep(ctx context.Context, attempt int) {
	wait := time.Duration(float64(baseRetryWait) * math.Pow(2, float64(attempt)))
	wait += time.Duration(rand.Int63n(int64(wait / 4)))
	select {
	case <-ctx.Done():
	case <-time.After(wait):
	}
}
