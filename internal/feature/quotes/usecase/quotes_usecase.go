// Package usecase は株価・履歴データ操作のビジネスロジックを実装します。
package usecase

import (
	"context"
	"log/slog"

	"portfolio_backend/internal/feature/quotes/domain/entity"
)

// MarketRepository は履歴時系列の取得レイヤーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type MarketRepository interface {
	// GetSeries は指定銘柄・期間の価格履歴を取得します。
	GetSeries(ctx context.Context, symbol string, timeframe entity.Timeframe) (*entity.Series, error)
}

// QuoteRepository は現在価格の取得レイヤーを抽象化します。
type QuoteRepository interface {
	// GetQuote は銘柄の現在価格と前日比（%）を取得します。
	GetQuote(ctx context.Context, symbol string) (entity.Quote, error)
}

// quotesUsecase は株価データ操作のユースケースを定義します。
type quotesUsecase struct {
	market MarketRepository
	quotes QuoteRepository
	book   *PriceBook
}

// NewQuotesUsecase はquotesUsecaseの新しいインスタンスを生成します。
func NewQuotesUsecase(market MarketRepository, quotes QuoteRepository, book *PriceBook) *quotesUsecase {
	return &quotesUsecase{market: market, quotes: quotes, book: book}
}

// GetHistory は指定された銘柄と期間の価格履歴を取得します。
func (u *quotesUsecase) GetHistory(ctx context.Context, symbol, timeframe string) (*entity.Series, error) {
	tf, err := entity.ParseTimeframe(timeframe)
	if err != nil {
		return nil, err
	}
	return u.market.GetSeries(ctx, symbol, tf)
}

// CurrentPrices は指定された銘柄の現在価格をPriceBookから返します。
// スナップショットに存在しない銘柄はその場でプロバイダーから取得します。
// 個々の銘柄の取得失敗は結果から除外するだけで、エラーにはしません。
func (u *quotesUsecase) CurrentPrices(ctx context.Context, symbols []string) map[string]entity.Quote {
	out := u.book.Snapshot(symbols)

	var missing []string
	for _, s := range symbols {
		if _, ok := out[s]; !ok {
			missing = append(missing, s)
		}
	}
	if len(missing) == 0 {
		return out
	}

	seq := u.book.Begin()
	fetched := make(map[string]entity.Quote, len(missing))
	for _, s := range missing {
		q, err := u.quotes.GetQuote(ctx, s)
		if err != nil {
			// 取得できなかった銘柄はスキップ（avgPriceへのフォールバックは集計側で行う）
			slog.Warn("failed to fetch current price", "symbol", s, "error", err)
			continue
		}
		fetched[s] = q
		out[s] = q
	}
	u.book.Apply(seq, fetched)

	return out
}
