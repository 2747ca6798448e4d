package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vkuzmenko/marketbrief/pkg/logger"
)

const yahooAPIURL = "https://query1.finance.yahoo.com/v7/finance/quote"

// yahooSymbols maps canonical symbols to Yahoo tickers.
var yahooSymbols = map[string]string{
	"^SPX":  "^GSPC",
	"^DJI":  "^DJI",
	"^IXIC": "^IXIC",
	"^FTSE": "^FTSE",
	"^DAX":  "^GDAXI",
	"^NKX":  "^N225",
	"^HSI":  "^HSI",
	"^SHC":  "000001.SS",
	"^VIX":  "^VIX",
}

// YahooProvider is the tertiary quote source. It tries one batch call for
// the whole tracked set and, if the batch fails, retries symbol by symbol.
type YahooProvider struct {
	client  *http.Client
	baseURL string
}

// NewYahooProvider creates the tertiary quote provider
func NewYahooProvider(timeout time.Duration) *YahooProvider {
	return &YahooProvider{
		client:  &http.Client{Timeout: timeout},
		baseURL: yahooAPIURL,
	}
}

func (p *YahooProvider) Name() string {
	return "yahoo"
}

func (p *YahooProvider) Available() bool {
	return true
}

// Fetch resolves the tracked set, batch first, then per symbol.
func (p *YahooProvider) Fetch(ctx context.Context) Result {
	providerSymbols := make([]string, 0, len(TrackedIndices))
	for _, idx := range TrackedIndices {
		providerSymbols = append(providerSymbols, yahooSymbols[idx.Symbol])
	}

	changes, err := p.fetchBatch(ctx, providerSymbols)
	if err == nil {
		logger.Debug("yahoo: batch fetch succeeded", zap.Int("resolved", len(changes)))
		return resultFor(p.Name(), changes)
	}

	logger.Debug("yahoo: batch fetch failed, retrying per symbol", zap.Error(err))

	changes = make(map[string]float64)
	for _, idx := range TrackedIndices {
		single, err := p.fetchBatch(ctx, []string{yahooSymbols[idx.Symbol]})
		if err != nil {
			continue
		}
		for canonical, pct := range single {
			changes[canonical] = pct
		}
	}

	return resultFor(p.Name(), changes)
}

// fetchBatch queries one or more symbols in a single request and maps the
// response back to canonical symbols.
func (p *YahooProvider) fetchBatch(ctx context.Context, symbols []string) (map[string]float64, error) {
	reqURL := fmt.Sprintf("%s?symbols=%s", p.baseURL, url.QueryEscape(strings.Join(symbols, ",")))

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; marketbrief)")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		QuoteResponse struct {
			Result []struct {
				Symbol                     string   `json:"symbol"`
				RegularMarketChangePercent *float64 `json:"regularMarketChangePercent"`
			} `json:"result"`
			Error *struct {
				Description string `json:"description"`
			} `json:"error"`
		} `json:"quoteResponse"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if payload.QuoteResponse.Error != nil {
		return nil, fmt.Errorf("api error: %s", payload.QuoteResponse.Error.Description)
	}

	toCanonical := make(map[string]string, len(yahooSymbols))
	for canonical, provider := range yahooSymbols {
		toCanonical[provider] = canonical
	}

	changes := make(map[string]float64)
	for _, quote := range payload.QuoteResponse.Result {
		canonical, ok := toCanonical[quote.Symbol]
		if !ok || quote.RegularMarketChangePercent == nil {
			continue
		}
		changes[canonical] = *quote.RegularMarketChangePercent
	}

	if len(changes) == 0 {
		return nil, fmt.Errorf("no quotes in response")
	}

	return changes, nil
}
