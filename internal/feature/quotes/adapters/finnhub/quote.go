package finnhub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"portfolio_backend/internal/feature/quotes/domain/entity"
	"portfolio_backend/internal/feature/quotes/usecase"
)

// quoteResponse は/quoteエンドポイントのJSONレスポンスを表します。
type quoteResponse struct {
	Current       float64 `json:"c"`  // 現在価格
	PercentChange float64 `json:"dp"` // 前日比（%）
}

// FinnhubQuotes はFinnhub APIから現在価格を取得するQuoteRepository実装です。
type FinnhubQuotes struct {
	cfg    Config
	client *http.Client
}

// FinnhubQuotesがQuoteRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.QuoteRepository = (*FinnhubQuotes)(nil)

// NewFinnhubQuotes は指定された設定とHTTPクライアントでFinnhubQuotesの新しいインスタンスを生成します。
func NewFinnhubQuotes(cfg Config, client *http.Client) *FinnhubQuotes {
	return &FinnhubQuotes{cfg: cfg, client: client}
}

// GetQuote は銘柄の現在価格と前日比を取得します。
// Finnhubは未知の銘柄に対してもHTTP 200とゼロ値を返すため、
// 価格0はエラーとして扱います。
func (f *FinnhubQuotes) GetQuote(ctx context.Context, symbol string) (entity.Quote, error) {
	q := url.Values{}
	q.Set("symbol", symbol)
	q.Set("token", f.cfg.APIKey)
	u := fmt.Sprintf("%s/quote?%s", f.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.Quote{}, err
	}

	res, err := f.client.Do(req)
	if err != nil {
		return entity.Quote{}, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return entity.Quote{}, fmt.Errorf("finnhub http %d", res.StatusCode)
	}

	var body quoteResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return entity.Quote{}, err
	}
	if body.Current == 0 {
		return entity.Quote{}, fmt.Errorf("finnhub: no quote for %q", symbol)
	}

	return entity.Quote{
		Price:         body.Current,
		PercentChange: body.PercentChange,
	}, nil
}
