// Package usecase は銘柄検索のビジネスロジックを実装します。
package usecase

import (
	"context"
	"strings"

	"portfolio_backend/internal/feature/search/domain/entity"
	"portfolio_backend/internal/platform/cache"
)

// ListingSearcher は銘柄リストの検索プロバイダーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type ListingSearcher interface {
	Search(ctx context.Context, query string) ([]entity.Listing, error)
}

// searchUsecase は銘柄検索のユースケースを実装します。
// 銘柄コードと名称は頻繁に変わらないため、クエリ単位で短時間キャッシュします。
type searchUsecase struct {
	searcher ListingSearcher
	cache    *cache.TTLCache[[]entity.Listing]
}

// NewSearchUsecase はsearchUsecaseの新しいインスタンスを生成します。
func NewSearchUsecase(searcher ListingSearcher, c *cache.TTLCache[[]entity.Listing]) *searchUsecase {
	return &searchUsecase{searcher: searcher, cache: c}
}

// Search はクエリに一致する銘柄リストを返します。
// 空クエリはプロバイダーを呼ばずに空リストを返します。
// （入力デバウンスはクライアント側の責務です。）
func (u *searchUsecase) Search(ctx context.Context, query string) ([]entity.Listing, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []entity.Listing{}, nil
	}

	if cached, ok := u.cache.Get(query); ok {
		return cached, nil
	}

	listings, err := u.searcher.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	if listings == nil {
		listings = []entity.Listing{}
	}

	u.cache.Set(query, listings)
	return listings, nil
}
