package quotes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/vkuzmenko/marketbrief/pkg/logger"
)

const fmpAPIURL = "https://financialmodelingprep.com/api/v3"

// fmpSymbols maps canonical symbols to Financial Modeling Prep tickers.
var fmpSymbols = map[string]string{
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

// FMPProvider is the primary index quote source. It needs an API key and
// resolves the whole tracked set in one batch request.
type FMPProvider struct {
	apiKey  string
	client  *http.Client
	baseURL string
}

// NewFMPProvider creates the primary quote provider
func NewFMPProvider(apiKey string, timeout time.Duration) *FMPProvider {
	return &FMPProvider{
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		baseURL: fmpAPIURL,
	}
}

func (p *FMPProvider) Name() string {
	return "fmp"
}

func (p *FMPProvider) Available() bool {
	return p.apiKey != ""
}

// Fetch performs one batch quote request for the tracked symbol set.
func (p *FMPProvider) Fetch(ctx context.Context) Result {
	if !p.Available() {
		return Unavailable(p.Name())
	}

	providerSymbols := make([]string, 0, len(TrackedIndices))
	toCanonical := make(map[string]string, len(TrackedIndices))
	for _, idx := range TrackedIndices {
		sym := fmpSymbols[idx.Symbol]
		providerSymbols = append(providerSymbols, sym)
		toCanonical[sym] = idx.Symbol
	}

	reqURL := fmt.Sprintf("%s/quote/%s?apikey=%s",
		p.baseURL,
		url.PathEscape(strings.Join(providerSymbols, ",")),
		url.QueryEscape(p.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, http.NoBody)
	if err != nil {
		logger.Warn("fmp: failed to create request", zap.Error(err))
		return Unavailable(p.Name())
	}

	resp, err := p.client.Do(req)
	if err != nil {
		logger.Warn("fmp: request failed", zap.Error(err))
		return Unavailable(p.Name())
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		logger.Warn("fmp: unexpected status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		return Unavailable(p.Name())
	}

	var payload []struct {
		Symbol            string   `json:"symbol"`
		ChangesPercentage *float64 `json:"changesPercentage"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		logger.Warn("fmp: failed to decode response", zap.Error(err))
		return Unavailable(p.Name())
	}

	changes := make(map[string]float64)
	for _, quote := range payload {
		canonical, ok := toCanonical[quote.Symbol]
		if !ok || quote.ChangesPercentage == nil {
			continue
		}
		changes[canonical] = *quote.ChangesPercentage
	}

	logger.Debug("fmp: fetched quotes", zap.Int("resolved", len(changes)))

	return resultFor(p.Name(), changes)
}
