// internal/integrations/gnews.go
package integrations

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

type NewsArticle struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"published_at"`
	Source      string    `json:"source"`
}

// GNewsClient wraps the news-search endpoint.
type GNewsClient struct {
	client  httpDoer
	apiKey  string
	baseURL string
}

func NewGNewsClient(apiKey string, timeoutSecs int) *GNewsClient {
	return &GNewsClient{
		client:  newHTTPClient(timeoutSecs),
		apiKey:  apiKey,
		baseURL: "https://gnews.io/api/v4/search",
	}
}

func (c *GNewsClient) SearchNews(ctx context.Context, query string, limit int) ([]NewsArticle, error) {
	if c.apiKey == "" {
		return sampleNews(query), nil
	}

	if limit <= 0 || limit > 50 {
		limit = 10
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("lang", "en")
	params.Set("max", fmt.Sprintf("%d", limit))
	params.Set("apikey", c.apiKey)

	var payload struct {
		Articles []struct {
			Title       string    `json:"title"`
			Description string    `json:"description"`
			URL         string    `json:"url"`
			PublishedAt time.Time `json:"publishedAt"`
			Source      struct {
				Name string `json:"name"`
			} `json:"source"`
		} `json:"articles"`
	}

	endpoint := c.baseURL + "?" + params.Encode()
	if err := getJSON(ctx, c.client, endpoint, nil, &payload); err != nil {
		return nil, err
	}

	articles := make([]NewsArticle, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		articles = append(articles, NewsArticle{
			Title:       a.Title,
			Description: a.Description,
			URL:         a.URL,
			PublishedAt: a.PublishedAt,
			Source:      a.Source.Name,
		})
	}
	return articles, nil
}

func sampleNews(query string) []NewsArticle {
	now := time.Now()
	return []NewsArticle{
		{
			Title:       "Seafood export demand rebounds in EU markets",
			Description: "Frozen shrimp shipments recovered in the last quarter as retail demand normalized.",
			URL:         "https://example.com/news/seafood-rebound",
			PublishedAt: now.Add(-6 * time.Hour),
			Source:      "Trade Wire",
		},
		{
			Title:       fmt.Sprintf("Market briefing: %s", query),
			Description: "Weekly roundup of tariff changes and buyer activity.",
			URL:         "https://example.com/news/market-briefing",
			PublishedAt: now.Add(-26 * time.Hour),
			Source:      "Export Daily",
		},
	}
}
