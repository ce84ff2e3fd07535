package di

import (
	"context"

	portfoliousecase "portfolio_backend/internal/feature/portfolio/usecase"
	quotesentity "portfolio_backend/internal/feature/quotes/domain/entity"
)

// priceReader はquotesフィーチャーの現在価格読み取り部分です。
type priceReader interface {
	CurrentPrices(ctx context.Context, symbols []string) map[string]quotesentity.Quote
}

// quoteSourceAdapter adapts the quotes usecase to the portfolio feature's
// QuoteSource interface, keeping the two features decoupled.
type quoteSourceAdapter struct {
	quotes priceReader
}

var _ portfoliousecase.QuoteSource = (*quoteSourceAdapter)(nil)

// NewQuoteSource wraps the quotes usecase as a portfolio QuoteSource.
func NewQuoteSource(quotes priceReader) *quoteSourceAdapter {
	return &quoteSourceAdapter{quotes: quotes}
}

// CurrentPrices は現在価格のスナップショットをportfolio側の型へ変換して返します。
func (a *quoteSourceAdapter) CurrentPrices(ctx context.Context, symbols []string) map[string]portfoliousecase.Quote {
	src := a.quotes.CurrentPrices(ctx, symbols)
	out := make(map[string]portfoliousecase.Quote, len(src))
	for s, q := range src {
		out[s] = portfoliousecase.Quote{Price: q.Price, PercentChange: q.PercentChange}
	}
	return out
}
