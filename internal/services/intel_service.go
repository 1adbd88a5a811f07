// internal/services/intel_service.go
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/exportbridge/exportbridge-backend/internal/apperrors"
	"github.com/exportbridge/exportbridge-backend/internal/cache"
	"github.com/exportbridge/exportbridge-backend/internal/config"
	"github.com/exportbridge/exportbridge-backend/internal/integrations"
	"github.com/exportbridge/exportbridge-backend/internal/utils"
)

// IntelService aggregates the external market-intelligence feeds behind
// per-feed caches. Trade statistics cache longer than news; tariff,
// commodity, and sentiment share the news TTL.
type IntelService struct {
	comtrade *integrations.ComtradeClient
	gnews    *integrations.GNewsClient
	groq     *integrations.GroqClient
	rapid    *integrations.RapidAPIClient

	tradeCache     *cache.FeedCache[[]integrations.TradeStat]
	newsCache      *cache.FeedCache[[]integrations.NewsArticle]
	tariffCache    *cache.FeedCache[[]integrations.TariffRate]
	commodityCache *cache.FeedCache[[]integrations.CommodityPrice]
	sentimentCache *cache.FeedCache[*integrations.SentimentIndex]
}

type AskRequest struct {
	Question string `json:"question" validate:"required,min=3,max=2000"`
}

// FeedResult wraps a feed payload with its staleness flag so handlers can
// surface degraded reads to the client.
type FeedResult[T any] struct {
	Data  T    `json:"data"`
	Stale bool `json:"stale"`
}

func NewIntelService(cfg *config.Config, clock cache.Clock) *IntelService {
	tradeTTL := time.Duration(cfg.Feeds.TradeTTLMins) * time.Minute
	newsTTL := time.Duration(cfg.Feeds.NewsTTLMins) * time.Minute
	timeout := cfg.Feeds.TimeoutSecs

	return &IntelService{
		comtrade: integrations.NewComtradeClient(cfg.Feeds.ComtradeKey, timeout),
		gnews:    integrations.NewGNewsClient(cfg.Feeds.GNewsKey, timeout),
		groq:     integrations.NewGroqClient(cfg.Feeds.GroqKey, timeout),
		rapid:    integrations.NewRapidAPIClient(cfg.Feeds.RapidAPIKey, timeout),

		tradeCache:     cache.New[[]integrations.TradeStat](tradeTTL, clock),
		newsCache:      cache.New[[]integrations.NewsArticle](newsTTL, clock),
		tariffCache:    cache.New[[]integrations.TariffRate](newsTTL, clock),
		commodityCache: cache.New[[]integrations.CommodityPrice](newsTTL, clock),
		sentimentCache: cache.New[*integrations.SentimentIndex](newsTTL, clock),
	}
}

func (s *IntelService) TradeStats(ctx context.Context, q integrations.TradeStatsQuery) (*FeedResult[[]integrations.TradeStat], error) {
	key := fmt.Sprintf("trade:%s:%s:%s:%s:%s", q.ReporterCode, q.PartnerCode, q.CommodityCode, q.FlowCode, q.Period)
	stats, stale, err := s.tradeCache.Get(ctx, key, func(ctx context.Context) ([]integrations.TradeStat, error) {
		return s.comtrade.GetTradeStats(ctx, q)
	})
	if err != nil {
		return nil, err
	}
	return &FeedResult[[]integrations.TradeStat]{Data: stats, Stale: stale}, nil
}

func (s *IntelService) News(ctx context.Context, query string, limit int) (*FeedResult[[]integrations.NewsArticle], error) {
	if strings.TrimSpace(query) == "" {
		query = "export trade"
	}
	key := fmt.Sprintf("news:%s:%d", strings.ToLower(query), limit)
	articles, stale, err := s.newsCache.Get(ctx, key, func(ctx context.Context) ([]integrations.NewsArticle, error) {
		return s.gnews.SearchNews(ctx, query, limit)
	})
	if err != nil {
		return nil, err
	}
	return &FeedResult[[]integrations.NewsArticle]{Data: articles, Stale: stale}, nil
}

func (s *IntelService) TariffRates(ctx context.Context, country, commodity string) (*FeedResult[[]integrations.TariffRate], error) {
	key := fmt.Sprintf("tariff:%s:%s", strings.ToLower(country), strings.ToLower(commodity))
	rates, stale, err := s.tariffCache.Get(ctx, key, func(ctx context.Context) ([]integrations.TariffRate, error) {
		return s.rapid.GetTariffRates(ctx, country, commodity)
	})
	if err != nil {
		return nil, err
	}
	return &FeedResult[[]integrations.TariffRate]{Data: rates, Stale: stale}, nil
}

func (s *IntelService) CommodityPrices(ctx context.Context, symbols []string) (*FeedResult[[]integrations.CommodityPrice], error) {
	key := "commodity:" + strings.ToLower(strings.Join(symbols, ","))
	prices, stale, err := s.commodityCache.Get(ctx, key, func(ctx context.Context) ([]integrations.CommodityPrice, error) {
		return s.rapid.GetCommodityPrices(ctx, symbols)
	})
	if err != nil {
		return nil, err
	}
	return &FeedResult[[]integrations.CommodityPrice]{Data: prices, Stale: stale}, nil
}

func (s *IntelService) Sentiment(ctx context.Context, date string) (*FeedResult[*integrations.SentimentIndex], error) {
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	key := "sentiment:" + date
	index, stale, err := s.sentimentCache.Get(ctx, key, func(ctx context.Context) (*integrations.SentimentIndex, error) {
		return s.rapid.GetSentimentIndex(ctx, date)
	})
	if err != nil {
		return nil, err
	}
	return &FeedResult[*integrations.SentimentIndex]{Data: index, Stale: stale}, nil
}

// Ask sends the user's question to the chat-completion upstream with a
// trade-advisor system prompt. Answers are not cached; every question is
// distinct.
func (s *IntelService) Ask(ctx context.Context, req *AskRequest) (string, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return "", err
	}

	messages := []integrations.ChatMessage{
		{Role: "system", Content: "You are a trade advisor helping small exporters with market access, compliance, and logistics questions. Answer concisely and practically."},
		{Role: "user", Content: req.Question},
	}

	answer, err := s.groq.Complete(ctx, messages)
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", apperrors.ErrUpstreamUnavailable)
	}
	return answer, nil
}

// ClearCaches drops cached feed entries. With no feed names, everything
// is cleared; otherwise only the named feeds.
func (s *IntelService) ClearCaches(feeds ...string) {
	if len(feeds) == 0 {
		s.tradeCache.Clear()
		s.newsCache.Clear()
		s.tariffCache.Clear()
		s.commodityCache.Clear()
		s.sentimentCache.Clear()
		return
	}

	for _, feed := range feeds {
		switch feed {
		case "trade":
			s.tradeCache.Clear()
		case "news":
			s.newsCache.Clear()
		case "tariff":
			s.tariffCache.Clear()
		case "commodity":
			s.commodityCache.Clear()
		case "sentiment":
			s.sentimentCache.Clear()
		}
	}
}
