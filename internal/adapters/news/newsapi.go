package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/vkuzmenko/marketbrief/pkg/logger"
	"github.com/vkuzmenko/marketbrief/pkg/models"
)

const newsAPIURL = "https://newsapi.org/v2/top-headlines"

// Client fetches top business headlines from NewsAPI. It requires an API
// key; without one it reports unavailable and never touches the network.
type Client struct {
	apiKey   string
	country  string
	pageSize int
	client   *http.Client
	baseURL  string
}

// NewClient creates the headline feed client
func NewClient(apiKey, country string, pageSize int, timeout time.Duration) *Client {
	if pageSize < 1 || pageSize > 8 {
		pageSize = 8
	}
	return &Client{
		apiKey:   apiKey,
		country:  country,
		pageSize: pageSize,
		client:   &http.Client{Timeout: timeout},
		baseURL:  newsAPIURL,
	}
}

// Available reports whether the feed is configured.
func (c *Client) Available() bool {
	return c.apiKey != ""
}

// Fetch returns ordered top headlines. The second return value is false
// when the feed produced nothing usable.
func (c *Client) Fetch(ctx context.Context) ([]models.Headline, bool) {
	if !c.Available() {
		logger.Debug("headline feed not configured, skipping")
		return nil, false
	}

	headlines, err := c.fetch(ctx)
	if err != nil {
		logger.Warn("headline feed unavailable", zap.Error(err))
		return nil, false
	}
	if len(headlines) == 0 {
		logger.Warn("headline feed returned no articles")
		return nil, false
	}

	logger.Debug("fetched headlines", zap.Int("count", len(headlines)))

	return headlines, true
}

func (c *Client) fetch(ctx context.Context) ([]models.Headline, error) {
	params := url.Values{}
	params.Set("category", "business")
	params.Set("country", c.country)
	params.Set("pageSize", fmt.Sprintf("%d", c.pageSize))

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"?"+params.Encode(), http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Status   string `json:"status"`
		Articles []struct {
			Source struct {
				Name string `json:"name"`
			} `json:"source"`
			Title string `json:"title"`
		} `json:"articles"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	if payload.Status != "ok" {
		return nil, fmt.Errorf("api status %q", payload.Status)
	}

	headlines := make([]models.Headline, 0, len(payload.Articles))
	for _, article := range payload.Articles {
		if article.Title == "" {
			continue
		}
		source := article.Source.Name
		if source == "" {
			source = "Unknown"
		}
		headlines = append(headlines, models.Headline{
			Source: source,
			Title:  article.Title,
		})
	}

	return headlines, nil
}
