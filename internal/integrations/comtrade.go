// internal/integrations/comtrade.go
package integrations

import (
	"context"
	"fmt"
	"net/url"
)

// TradeStat is one record from the trade-statistics upstream.
type TradeStat struct {
	ReporterCode  string  `json:"reporter_code"`
	PartnerCode   string  `json:"partner_code"`
	CommodityCode string  `json:"commodity_code"`
	FlowCode      string  `json:"flow_code"`
	Period        string  `json:"period"`
	Value         float64 `json:"value"`
	Quantity      float64 `json:"quantity"`
}

type TradeStatsQuery struct {
	ReporterCode  string
	PartnerCode   string
	CommodityCode string
	FlowCode      string
	Period        string
}

// ComtradeClient wraps the UN Comtrade statistics endpoint. Without an API
// key it serves sample data so the dashboard degrades gracefully.
type ComtradeClient struct {
	client  httpDoer
	apiKey  string
	baseURL string
}

func NewComtradeClient(apiKey string, timeoutSecs int) *ComtradeClient {
	return &ComtradeClient{
		client:  newHTTPClient(timeoutSecs),
		apiKey:  apiKey,
		baseURL: "https://comtradeapi.un.org/data/v1/get",
	}
}

func (c *ComtradeClient) GetTradeStats(ctx context.Context, q TradeStatsQuery) ([]TradeStat, error) {
	if c.apiKey == "" {
		return sampleTradeStats(q), nil
	}

	params := url.Values{}
	params.Set("reporterCode", q.ReporterCode)
	params.Set("partnerCode", q.PartnerCode)
	params.Set("cmdCode", q.CommodityCode)
	params.Set("flowCode", q.FlowCode)
	params.Set("period", q.Period)

	endpoint := fmt.Sprintf("%s/C/A/HS?%s", c.baseURL, params.Encode())

	var payload struct {
		Data []struct {
			ReporterCode int     `json:"reporterCode"`
			PartnerCode  int     `json:"partnerCode"`
			CmdCode      string  `json:"cmdCode"`
			FlowCode     string  `json:"flowCode"`
			Period       string  `json:"period"`
			PrimaryValue float64 `json:"primaryValue"`
			Qty          float64 `json:"qty"`
		} `json:"data"`
	}

	headers := map[string]string{"Ocp-Apim-Subscription-Key": c.apiKey}
	if err := getJSON(ctx, c.client, endpoint, headers, &payload); err != nil {
		return nil, err
	}

	stats := make([]TradeStat, 0, len(payload.Data))
	for _, rec := range payload.Data {
		stats = append(stats, TradeStat{
			ReporterCode:  fmt.Sprintf("%d", rec.ReporterCode),
			PartnerCode:   fmt.Sprintf("%d", rec.PartnerCode),
			CommodityCode: rec.CmdCode,
			FlowCode:      rec.FlowCode,
			Period:        rec.Period,
			Value:         rec.PrimaryValue,
			Quantity:      rec.Qty,
		})
	}
	return stats, nil
}

func sampleTradeStats(q TradeStatsQuery) []TradeStat {
	period := q.Period
	if period == "" {
		period = "2023"
	}
	return []TradeStat{
		{ReporterCode: q.ReporterCode, PartnerCode: q.PartnerCode, CommodityCode: "0306", FlowCode: "X", Period: period, Value: 182_450_000, Quantity: 24_300},
		{ReporterCode: q.ReporterCode, PartnerCode: q.PartnerCode, CommodityCode: "6109", FlowCode: "X", Period: period, Value: 97_800_000, Quantity: 11_050},
	}
}
