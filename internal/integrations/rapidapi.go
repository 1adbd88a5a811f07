// internal/integrations/rapidapi.go
package integrations

import (
	"context"
	"fmt"
	"net/url"
	"time"
)

type TariffRate struct {
	Country   string  `json:"country"`
	Commodity string  `json:"commodity"`
	Rate      float64 `json:"rate"`
	Unit      string  `json:"unit"`
}

type CommodityPrice struct {
	Symbol   string  `json:"symbol"`
	Price    float64 `json:"price"`
	Currency string  `json:"currency"`
	Date     string  `json:"date"`
}

type SentimentIndex struct {
	Date  string `json:"date"`
	Score int    `json:"score"` // 0-100
	Label string `json:"label"`
}

// RapidAPIClient wraps the tariff-rate, commodity-price, and
// sentiment-index feeds behind one key.
type RapidAPIClient struct {
	client httpDoer
	apiKey string

	tariffURL    string
	commodityURL string
	sentimentURL string
}

func NewRapidAPIClient(apiKey string, timeoutSecs int) *RapidAPIClient {
	return &RapidAPIClient{
		client:       newHTTPClient(timeoutSecs),
		apiKey:       apiKey,
		tariffURL:    "https://tariff-rates.p.rapidapi.com/rates",
		commodityURL: "https://commodity-prices2.p.rapidapi.com/api/latest",
		sentimentURL: "https://fear-and-greed-index.p.rapidapi.com/v1/fgi",
	}
}

func (c *RapidAPIClient) headers(host string) map[string]string {
	return map[string]string{
		"X-RapidAPI-Key":  c.apiKey,
		"X-RapidAPI-Host": host,
	}
}

func (c *RapidAPIClient) GetTariffRates(ctx context.Context, country, commodity string) ([]TariffRate, error) {
	if c.apiKey == "" {
		return []TariffRate{
			{Country: country, Commodity: commodity, Rate: 8.5, Unit: "percent"},
		}, nil
	}

	params := url.Values{}
	params.Set("country", country)
	params.Set("commodity", commodity)

	var payload struct {
		Rates []struct {
			Country   string  `json:"country"`
			Commodity string  `json:"commodity"`
			Rate      float64 `json:"rate"`
			Unit      string  `json:"unit"`
		} `json:"rates"`
	}

	endpoint := c.tariffURL + "?" + params.Encode()
	if err := getJSON(ctx, c.client, endpoint, c.headers("tariff-rates.p.rapidapi.com"), &payload); err != nil {
		return nil, err
	}

	rates := make([]TariffRate, 0, len(payload.Rates))
	for _, r := range payload.Rates {
		rates = append(rates, TariffRate(r))
	}
	return rates, nil
}

func (c *RapidAPIClient) GetCommodityPrices(ctx context.Context, symbols []string) ([]CommodityPrice, error) {
	if c.apiKey == "" {
		prices := make([]CommodityPrice, 0, len(symbols))
		for _, s := range symbols {
			prices = append(prices, CommodityPrice{
				Symbol: s, Price: 1240.50, Currency: "USD",
				Date: time.Now().Format("2006-01-02"),
			})
		}
		return prices, nil
	}

	params := url.Values{}
	for _, s := range symbols {
		params.Add("symbols", s)
	}

	var payload struct {
		Data []struct {
			Symbol   string  `json:"symbol"`
			Price    float64 `json:"price"`
			Currency string  `json:"currency"`
			Date     string  `json:"date"`
		} `json:"data"`
	}

	endpoint := c.commodityURL + "?" + params.Encode()
	if err := getJSON(ctx, c.client, endpoint, c.headers("commodity-prices2.p.rapidapi.com"), &payload); err != nil {
		return nil, err
	}

	prices := make([]CommodityPrice, 0, len(payload.Data))
	for _, p := range payload.Data {
		prices = append(prices, CommodityPrice(p))
	}
	return prices, nil
}

func (c *RapidAPIClient) GetSentimentIndex(ctx context.Context, date string) (*SentimentIndex, error) {
	if c.apiKey == "" {
		return &SentimentIndex{Date: date, Score: 54, Label: "Neutral"}, nil
	}

	var payload struct {
		FGI struct {
			Now struct {
				Value     int    `json:"value"`
				ValueText string `json:"valueText"`
			} `json:"now"`
		} `json:"fgi"`
	}

	endpoint := fmt.Sprintf("%s?date=%s", c.sentimentURL, url.QueryEscape(date))
	if err := getJSON(ctx, c.client, endpoint, c.headers("fear-and-greed-index.p.rapidapi.com"), &payload); err != nil {
		return nil, err
	}

	return &SentimentIndex{
		Date:  date,
		Score: payload.FGI.Now.Value,
		Label: payload.FGI.Now.ValueText,
	}, nil
}
