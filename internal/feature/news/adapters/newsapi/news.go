package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"portfolio_backend/internal/feature/news/domain/entity"
	"portfolio_backend/internal/feature/news/usecase"
)

// everythingResponse は/v2/everythingエンドポイントのJSONレスポンスを表します。
// 必要なフィールドのみマッピングしています。
type everythingResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Articles []struct {
		Title string `json:"title"`
		URL   string `json:"url"`
	} `json:"articles"`
}

// NewsAPIClient はNewsAPIから記事を取得するNewsProvider実装です。
type NewsAPIClient struct {
	cfg    Config
	client *http.Client
}

// NewsAPIClientがNewsProviderを実装していることをコンパイル時に検証します。
var _ usecase.NewsProvider = (*NewsAPIClient)(nil)

// NewNewsAPIClient は指定された設定とHTTPクライアントでNewsAPIClientの新しいインスタンスを生成します。
func NewNewsAPIClient(cfg Config, client *http.Client) *NewsAPIClient {
	return &NewsAPIClient{cfg: cfg, client: client}
}

// TopArticles はクエリに一致する最新記事を取得します。
// レスポンスの先頭からlimit件だけを返します。
func (n *NewsAPIClient) TopArticles(ctx context.Context, query string, limit int) ([]entity.Article, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("apiKey", n.cfg.APIKey)
	u := fmt.Sprintf("%s/v2/everything?%s", n.cfg.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := n.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("newsapi http %d", res.StatusCode)
	}

	var body everythingResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Status != "ok" {
		return nil, fmt.Errorf("newsapi: %s", body.Message)
	}

	articles := make([]entity.Article, 0, limit)
	for _, a := range body.Articles {
		if len(articles) >= limit {
			break
		}
		articles = append(articles, entity.Article{Title: a.Title, URL: a.URL})
	}
	return articles, nil
}
