package quotes

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/vkuzmenko/marketbrief/pkg/logger"
)

const stooqAPIURL = "https://stooq.com/q/d/l"

// stooqSymbols maps canonical symbols to Stooq tickers.
var stooqSymbols = map[string]string{
	"^SPX":  "^spx",
	"^DJI":  "^dji",
	"^IXIC": "^ndq",
	"^FTSE": "^ukx",
	"^DAX":  "^dax",
	"^NKX":  "^nkx",
	"^HSI":  "^hsi",
	"^SHC":  "^shc",
	"^VIX":  "^vix",
}

// StooqProvider is the secondary quote source: a free delayed-quote CSV
// endpoint queried one symbol at a time. Stooq enforces a per-minute
// request ceiling, so consecutive lookups are spaced by a fixed delay.
type StooqProvider struct {
	client  *http.Client
	baseURL string
	delay   time.Duration
}

// NewStooqProvider creates the secondary quote provider
func NewStooqProvider(timeout, delay time.Duration) *StooqProvider {
	return &StooqProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: stooqAPIURL,
		delay:   delay,
	}
}

func (p *StooqProvider) Name() string {
	return "stooq"
}

func (p *StooqProvider) Available() bool {
	return true
}

// Fetch resolves the tracked set sequentially, sleeping between lookups.
func (p *StooqProvider) Fetch(ctx context.Context) Result {
	changes := make(map[string]float64)

	for i, idx := range TrackedIndices {
		if i > 0 {
			if err := sleepContext(ctx, p.delay); err != nil {
				break
			}
		}

		pct, err := p.fetchChange(ctx, stooqSymbols[idx.Symbol])
		if err != nil {
			logger.Debug("stooq: symbol lookup failed",
				zap.String("symbol", idx.Symbol),
				zap.Error(err),
			)
			continue
		}
		changes[idx.Symbol] = pct
	}

	logger.Debug("stooq: fetched quotes", zap.Int("resolved", len(changes)))

	return resultFor(p.Name(), changes)
}

// fetchChange downloads the daily close history for one symbol and derives
// the percent change from the last two closes.
func (p *StooqProvider) fetchChange(ctx context.Context, symbol string) (float64, error) {
	reqURL := fmt.Sprintf("%s/?s=%s&i=d", p.baseURL, url.QueryEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, http.NoBody)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	_, latest, previous, err := parseDailyCloses(resp.Body)
	if err != nil {
		return 0, err
	}
	if previous == 0 {
		return 0, fmt.Errorf("previous close is zero")
	}

	return (latest - previous) / previous * 100, nil
}

// parseDailyCloses reads a Stooq daily history CSV
// (Date,Open,High,Low,Close,Volume) and returns the latest close together
// with the close before it.
func parseDailyCloses(body io.Reader) (date string, latest, previous float64, err error) {
	reader := csv.NewReader(body)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return "", 0, 0, fmt.Errorf("failed to parse csv: %w", err)
	}

	// Header row plus at least two data rows
	if len(records) < 3 {
		return "", 0, 0, fmt.Errorf("not enough history rows: %d", len(records))
	}

	const closeColumn = 4

	last := records[len(records)-1]
	prior := records[len(records)-2]
	if len(last) <= closeColumn || len(prior) <= closeColumn {
		return "", 0, 0, fmt.Errorf("malformed csv row")
	}

	latest, err = strconv.ParseFloat(last[closeColumn], 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed close %q: %w", last[closeColumn], err)
	}
	previous, err = strconv.ParseFloat(prior[closeColumn], 64)
	if err != nil {
		return "", 0, 0, fmt.Errorf("malformed close %q: %w", prior[closeColumn], err)
	}

	return last[0], latest, previous, nil
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
