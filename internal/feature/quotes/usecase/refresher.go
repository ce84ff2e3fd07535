package usecase

import (
	"context"
	"log/slog"
	"time"

	"portfolio_backend/internal/feature/quotes/domain/entity"
	"portfolio_backend/internal/shared/ratelimiter"
)

// refreshTimeout は1回のリフレッシュサイクル全体の上限時間です。
const refreshTimeout = 45 * time.Second

// SymbolLister は保有中の銘柄コード一覧を提供します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type SymbolLister interface {
	ListDistinctSymbols(ctx context.Context) ([]string, error)
}

// Refresher は保有銘柄の現在価格を定期的に取り直し、PriceBookへ反映します。
// スケジューラーから60秒ごとに起動されます。
type Refresher struct {
	quotes      QuoteRepository
	symbols     SymbolLister
	book        *PriceBook
	rateLimiter ratelimiter.RateLimiterInterface
}

// NewRefresher はRefresherの新しいインスタンスを生成します。
func NewRefresher(quotes QuoteRepository, symbols SymbolLister, book *PriceBook, rl ratelimiter.RateLimiterInterface) *Refresher {
	return &Refresher{quotes: quotes, symbols: symbols, book: book, rateLimiter: rl}
}

// RefreshOnce は全保有銘柄の価格を1回取り直します。
//
// フェッチ開始前にシーケンス番号を取得し、完了時にまとめて適用します。
// 前のサイクルが遅延してこのサイクルより後に完了しても、古い結果は
// PriceBookに破棄されます。個々の銘柄の失敗はログに残して続行し、
// 前回のスナップショットをそのまま残します。
func (r *Refresher) RefreshOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, refreshTimeout)
	defer cancel()

	symbols, err := r.symbols.ListDistinctSymbols(ctx)
	if err != nil {
		return err
	}
	if len(symbols) == 0 {
		return nil
	}

	seq := r.book.Begin()
	fetched := make(map[string]entity.Quote, len(symbols))
	for _, s := range symbols {
		r.rateLimiter.WaitIfNeeded()
		q, err := r.quotes.GetQuote(ctx, s)
		if err != nil {
			slog.Warn("price refresh failed for symbol", "symbol", s, "error", err)
			continue
		}
		fetched[s] = q
	}

	if !r.book.Apply(seq, fetched) {
		slog.Info("discarded stale price refresh", "seq", seq, "symbols", len(fetched))
		return nil
	}
	slog.Debug("price snapshot refreshed", "symbols", len(fetched))
	return nil
}
