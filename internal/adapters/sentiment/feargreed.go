package sentiment

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/vkuzmenko/marketbrief/pkg/logger"
	"github.com/vkuzmenko/marketbrief/pkg/models"
)

const fearGreedAPIURL = "https://api.alternative.me/fng/?limit=1"

// FearGreedClient fetches the crypto fear & greed index (free, no API key).
type FearGreedClient struct {
	client  *http.Client
	baseURL string
}

// NewFearGreedClient creates the sentiment index client
func NewFearGreedClient(timeout time.Duration) *FearGreedClient {
	return &FearGreedClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: fearGreedAPIURL,
	}
}

// Fetch returns the latest index reading. The second return value is false
// when the index is unavailable; no error ever crosses this boundary.
func (c *FearGreedClient) Fetch(ctx context.Context) (models.FearGreed, bool) {
	reading, err := c.fetch(ctx)
	if err != nil {
		logger.Warn("fear & greed index unavailable", zap.Error(err))
		return models.FearGreed{}, false
	}

	logger.Debug("fetched fear & greed index",
		zap.Int("value", reading.Value),
		zap.String("label", reading.Label),
	)

	return reading, true
}

func (c *FearGreedClient) fetch(ctx context.Context) (models.FearGreed, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL, http.NoBody)
	if err != nil {
		return models.FearGreed{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return models.FearGreed{}, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.FearGreed{}, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	// The API reports the numeric value as a string
	var payload struct {
		Data []struct {
			Value          string `json:"value"`
			Classification string `json:"value_classification"`
		} `json:"data"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.FearGreed{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if len(payload.Data) == 0 {
		return models.FearGreed{}, fmt.Errorf("empty data array")
	}

	value, err := strconv.Atoi(payload.Data[0].Value)
	if err != nil {
		return models.FearGreed{}, fmt.Errorf("malformed value %q: %w", payload.Data[0].Value, err)
	}
	if value < 0 || value > 100 {
		return models.FearGreed{}, fmt.Errorf("value %d out of range", value)
	}

	return models.FearGreed{
		Value: value,
		Label: payload.Data[0].Classification,
	}, nil
}

// Mood derives the overall market mood from an index reading.
func Mood(fg models.FearGreed) string {
	switch {
	case fg.Value >= 60:
		return models.MoodRiskOn
	case fg.Value <= 40:
		return models.MoodRiskOff
	default:
		return models.MoodNeutral
	}
}
