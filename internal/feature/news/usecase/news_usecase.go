// Package usecase は銘柄関連ニュース取得のビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"portfolio_backend/internal/feature/news/domain/entity"
	"portfolio_backend/internal/platform/cache"
)

// maxArticles はダッシュボードに表示する記事数の上限です。
const maxArticles = 2

// NewsProvider はニュース記事の取得プロバイダーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type NewsProvider interface {
	TopArticles(ctx context.Context, query string, limit int) ([]entity.Article, error)
}

// newsUsecase は銘柄関連ニュースのユースケースを実装します。
// 外部apiのレート制限が厳しいため、銘柄単位で長めにキャッシュします。
type newsUsecase struct {
	provider NewsProvider
	cache    *cache.TTLCache[[]entity.Article]
}

// NewNewsUsecase はnewsUsecaseの新しいインスタンスを生成します。
func NewNewsUsecase(provider NewsProvider, c *cache.TTLCache[[]entity.Article]) *newsUsecase {
	return &newsUsecase{provider: provider, cache: c}
}

// TopNews は銘柄に関連するニュース記事を最大2件返します。
// 銘柄未指定の場合は市況全般のニュースを検索します。
// プロバイダー障害や記事ゼロ件ではフォールバック記事を返し、
// エラーにはしません。一時的な状態のためキャッシュにも載せません。
func (u *newsUsecase) TopNews(ctx context.Context, symbol string) []entity.Article {
	symbol = strings.TrimSpace(symbol)

	key := symbol
	query := symbol
	if symbol == "" {
		key = "_market"
		query = "stocks"
	}

	if cached, ok := u.cache.Get(key); ok {
		return cached
	}

	articles, err := u.provider.TopArticles(ctx, query, maxArticles)
	if err != nil {
		slog.Warn("news provider failed", "error", err, "query", query)
		return []entity.Article{fallbackArticle(symbol)}
	}

	if len(articles) == 0 {
		return []entity.Article{fallbackArticle(symbol)}
	}
	if len(articles) > maxArticles {
		articles = articles[:maxArticles]
	}

	u.cache.Set(key, articles)
	return articles
}

// fallbackArticle は記事ゼロ件時のプレースホルダーを返します。
func fallbackArticle(symbol string) entity.Article {
	if symbol == "" {
		symbol = "the market"
	}
	return entity.Article{
		Title: fmt.Sprintf("No news found for %s, please try again later.", symbol),
		URL:   "",
	}
}
