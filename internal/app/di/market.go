// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"

	quotesfinnhub "portfolio_backend/internal/feature/quotes/adapters/finnhub"
	quotesyahoo "portfolio_backend/internal/feature/quotes/adapters/yahoo"
	quotesusecase "portfolio_backend/internal/feature/quotes/usecase"
	searchyahoo "portfolio_backend/internal/feature/search/adapters/yahoo"
	"portfolio_backend/internal/platform/cache"
	infrahttp "portfolio_backend/internal/platform/http"
)

// historyCacheTTL は履歴時系列のRedisキャッシュ保持時間です。
const historyCacheTTL = 5 * time.Minute

// NewHistoryRepository creates a Yahoo-backed MarketRepository wrapped in the
// Redis caching decorator. With a nil Redis client the decorator is a pass-through.
func NewHistoryRepository(rdb *redis.Client) quotesusecase.MarketRepository {
	cfg := quotesyahoo.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	market := quotesyahoo.NewYahooMarket(cfg, httpClient)
	return cache.NewCachingHistoryRepository(rdb, historyCacheTTL, market, "history")
}

// NewQuoteRepository creates a fully configured FinnhubQuotes with HTTP client.
func NewQuoteRepository() *quotesfinnhub.FinnhubQuotes {
	cfg := quotesfinnhub.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return quotesfinnhub.NewFinnhubQuotes(cfg, httpClient)
}

// NewListingSearcher creates a fully configured YahooSearcher with HTTP client.
func NewListingSearcher() *searchyahoo.YahooSearcher {
	cfg := searchyahoo.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return searchyahoo.NewYahooSearcher(cfg, httpClient)
}
