package kalshi

import (
	"context"
	"fmt"

	"github.com/alejandrodnm/basisbot/internal/domain"
)

const marketsPath = "/trade-api/v2/markets"

type rawMarket struct {
	Ticker     string `json:"ticker"`
	Title      string `json:"title"`
	Status     string `json:"status"`
	YesBid     int    `json:"yes_bid"`
	YesAsk     int    `json:"yes_ask"`
	YesBidSize int    `json:"yes_bid_size"`
	YesAskSize int    `json:"yes_ask_size"`
	LastPrice  int    `json:"last_price"`
	Volume     int    `json:"volume"`
}

type marketResponse struct {
	Market rawMarket `json:"market"`
}

// FetchMarket obtiene el estado actual de un mercado por ticker.
// Implementa ports.MarketProvider.
func (c *Client) FetchMarket(ctx context.Context, ticker string) (domain.MarketSnapshot, error) {
	var resp marketResponse
	if err := c.get(ctx, marketsPath+"/"+ticker, &resp); err != nil {
		return domain.MarketSnapshot{}, fmt.Errorf("kalshi.FetchMarket %s: %w", ticker, err)
	}

	m := resp.Market
	return domain.MarketSnapshot{
		Ticker:     m.Ticker,
		Title:      m.Title,
		Status:     m.Status,
		YesBid:     m.YesBid,
		YesAsk:     m.YesAsk,
		YesBidSize: m.YesBidSize,
		YesAskSize: m.YesAskSize,
		LastPrice:  m.LastPrice,
		Volume:     m.Volume,
	}, nil
}
