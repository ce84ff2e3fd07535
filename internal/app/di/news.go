package di

import (
	"portfolio_backend/internal/feature/news/adapters/newsapi"
	infrahttp "portfolio_backend/internal/platform/http"
)

// NewNewsProvider creates a fully configured NewsAPIClient with HTTP client.
func NewNewsProvider() *newsapi.NewsAPIClient {
	cfg := newsapi.LoadConfig()
	httpClient := infrahttp.NewHTTPClient(cfg.Timeout)
	return newsapi.NewNewsAPIClient(cfg, httpClient)
}
