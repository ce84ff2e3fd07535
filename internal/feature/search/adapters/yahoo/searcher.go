package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"portfolio_backend/internal/feature/search/adapters/yahoo/dto"
	"portfolio_backend/internal/feature/search/domain/entity"
	"portfolio_backend/internal/feature/search/usecase"
)

// YahooSearcher はYahoo Finance検索apiから銘柄リストを取得するListingSearcher実装です。
type YahooSearcher struct {
	cfg    Config
	client *http.Client
}

// YahooSearcherがListingSearcherを実装していることをコンパイル時に検証します。
var _ usecase.ListingSearcher = (*YahooSearcher)(nil)

// NewYahooSearcher は指定された設定とHTTPクライアントでYahooSearcherの新しいインスタンスを生成します。
func NewYahooSearcher(cfg Config, client *http.Client) *YahooSearcher {
	return &YahooSearcher{cfg: cfg, client: client}
}

// Search は検索apiからクエリに一致する銘柄リストを取得します。
// symbolが空の結果（ニュース記事など）は除外します。
func (y *YahooSearcher) Search(ctx context.Context, query string) ([]entity.Listing, error) {
	q := url.Values{}
	q.Set("q", query)
	u := fmt.Sprintf("%s/v1/finance/search?%s", y.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := y.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("yahoo search http %d", res.StatusCode)
	}

	var body dto.SearchResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}

	listings := make([]entity.Listing, 0, len(body.Quotes))
	for _, q := range body.Quotes {
		if q.Symbol == "" {
			continue
		}
		name := q.ShortName
		if name == "" {
			name = q.LongName
		}
		listings = append(listings, entity.Listing{Symbol: q.Symbol, Name: name})
	}
	return listings, nil
}
