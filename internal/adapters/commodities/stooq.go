package commodities

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vkuzmenko/marketbrief/pkg/logger"
	"github.com/vkuzmenko/marketbrief/pkg/models"
)

const stooqAPIURL = "https://stooq.com/q/d/l"

// trackedCommodities is the fixed instrument set, in render order.
var trackedCommodities = []struct {
	stooqSymbol string
	symbol      string
	name        string
}{
	{stooqSymbol: "xauusd", symbol: "XAU", name: "Gold"},
	{stooqSymbol: "xagusd", symbol: "XAG", name: "Silver"},
	{stooqSymbol: "cl.f", symbol: "WTI", name: "WTI Crude"},
	{stooqSymbol: "cb.f", symbol: "BRN", name: "Brent Crude"},
	{stooqSymbol: "ng.f", symbol: "NG", name: "Natural Gas"},
}

// Client fetches commodity prices from the Stooq daily CSV endpoint. Like
// the index quotes it is queried one symbol at a time under a per-minute
// ceiling, so lookups are spaced by a fixed delay.
type Client struct {
	client  *http.Client
	baseURL string
	delay   time.Duration
}

// NewClient creates the commodity price client
func NewClient(timeout, delay time.Duration) *Client {
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: stooqAPIURL,
		delay:   delay,
	}
}

// Fetch returns tickers for the tracked commodities. The second return
// value is false when no instrument resolved.
func (c *Client) Fetch(ctx context.Context) ([]models.Ticker, bool) {
	tickers := make([]models.Ticker, 0, len(trackedCommodities))
	resolved := 0

	for i, commodity := range trackedCommodities {
		if i > 0 {
			if err := sleepContext(ctx, c.delay); err != nil {
				break
			}
		}

		price, pct, err := c.fetchQuote(ctx, commodity.stooqSymbol)
		if err != nil {
			logger.Debug("commodity lookup failed",
				zap.String("symbol", commodity.symbol),
				zap.Error(err),
			)
			tickers = append(tickers, models.Ticker{
				Symbol: commodity.symbol,
				Name:   commodity.name,
			})
			continue
		}

		p := decimal.NewFromFloat(price)
		change := pct
		tickers = append(tickers, models.Ticker{
			Symbol:    commodity.symbol,
			Name:      commodity.name,
			Price:     &p,
			ChangePct: &change,
		})
		resolved++
	}

	if resolved == 0 {
		logger.Warn("commodity feed unavailable")
		return nil, false
	}

	logger.Debug("fetched commodity prices", zap.Int("resolved", resolved))

	return tickers, true
}

// fetchQuote downloads the daily history for one symbol and returns the
// latest close plus the percent change from the close before it.
func (c *Client) fetchQuote(ctx context.Context, symbol string) (price, pct float64, err error) {
	reqURL := fmt.Sprintf("%s/?s=%s&i=d", c.baseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, http.NoBody)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	latest, previous, err := parseDailyCloses(resp.Body)
	if err != nil {
		return 0, 0, err
	}
	if previous == 0 {
		return 0, 0, fmt.Errorf("previous close is zero")
	}

	return latest, (latest - previous) / previous * 100, nil
}

// parseDailyCloses reads a Stooq daily history CSV
// (Date,Open,High,Low,Close,Volume) and returns the last two closes.
func parseDailyCloses(body io.Reader) (latest, previous float64, err error) {
	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to parse csv: %w", err)
	}
	if len(records) < 3 {
		return 0, 0, fmt.Errorf("not enough history rows: %d", len(records))
	}

	const closeColumn = 4

	last := records[len(records)-1]
	prior := records[len(records)-2]
	if len(last) <= closeColumn || len(prior) <= closeColumn {
		return 0, 0, fmt.Errorf("malformed csv row")
	}

	latest, err = strconv.ParseFloat(last[closeColumn], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed close %q: %w", last[closeColumn], err)
	}
	previous, err = strconv.ParseFloat(prior[closeColumn], 64)
	if err != nil {
		return 0, 0, fmt.Errorf("malformed close %q: %w", prior[closeColumn], err)
	}

	return latest, previous, nil
}

// sleepContext sleeps for d unless the context ends first.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
