package crypto

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vkuzmenko/marketbrief/pkg/logger"
	"github.com/vkuzmenko/marketbrief/pkg/models"
)

const coingeckoAPIURL = "https://api.coingecko.com/api/v3"

// trackedAssets is the fixed asset set, in render order.
var trackedAssets = []struct {
	id     string
	symbol string
	name   string
}{
	{id: "bitcoin", symbol: "BTC", name: "Bitcoin"},
	{id: "ethereum", symbol: "ETH", name: "Ethereum"},
}

// Client fetches BTC/ETH spot prices with 24h change from CoinGecko
// (free, no API key needed).
type Client struct {
	client  *http.Client
	baseURL string
}

// NewClient creates the crypto price client
func NewClient(timeout time.Duration) *Client {
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: coingeckoAPIURL,
	}
}

// Fetch returns tickers for the tracked assets. The second return value is
// false when no asset resolved.
func (c *Client) Fetch(ctx context.Context) ([]models.Ticker, bool) {
	tickers, err := c.fetch(ctx)
	if err != nil {
		logger.Warn("crypto feed unavailable", zap.Error(err))
		return nil, false
	}
	if len(tickers) == 0 {
		return nil, false
	}

	logger.Debug("fetched crypto prices", zap.Int("count", len(tickers)))

	return tickers, true
}

func (c *Client) fetch(ctx context.Context) ([]models.Ticker, error) {
	url := fmt.Sprintf("%s/simple/price?ids=bitcoin,ethereum&vs_currencies=usd&include_24hr_change=true", c.baseURL)

	req, err := http.NewRequestWithContext(ctx, "GET", url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var payload map[string]struct {
		USD       *float64 `json:"usd"`
		Change24h *float64 `json:"usd_24h_change"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	tickers := make([]models.Ticker, 0, len(trackedAssets))
	for _, asset := range trackedAssets {
		data, ok := payload[asset.id]
		if !ok || data.USD == nil {
			// Asset missing from the response: keep it name-only
			tickers = append(tickers, models.Ticker{
				Symbol: asset.symbol,
				Name:   asset.name,
			})
			continue
		}

		price := decimal.NewFromFloat(*data.USD)
		tickers = append(tickers, models.Ticker{
			Symbol:    asset.symbol,
			Name:      asset.name,
			Price:     &price,
			ChangePct: data.Change24h,
		})
	}

	// At least one asset must carry a real price
	for _, ticker := range tickers {
		if ticker.Price != nil {
			return tickers, nil
		}
	}

	return nil, fmt.Errorf("no prices in response")
}
