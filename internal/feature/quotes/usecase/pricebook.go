package usecase

import (
	"sync"
	"sync/atomic"

	"portfolio_backend/internal/feature/quotes/domain/entity"
)

// PriceBook はプロセス全体で共有される現在価格のスナップショットです。
//
// リフレッシュは重複して走り得るため、各一括適用に単調増加のシーケンス番号を
// 付与し、適用済みより古いレスポンスは破棄します。これにより遅延した
// リフレッシュが新しいスナップショットを上書きすること（last-to-resolve-wins）を
// 防ぎます。
type PriceBook struct {
	seq     atomic.Uint64
	mu      sync.RWMutex
	applied uint64
	prices  map[string]entity.Quote
}

// NewPriceBook は空のPriceBookを生成します。
func NewPriceBook() *PriceBook {
	return &PriceBook{prices: make(map[string]entity.Quote)}
}

// Begin は新しいリフレッシュサイクルのシーケンス番号を払い出します。
// フェッチ開始前に呼び出し、Applyに同じ番号を渡します。
func (b *PriceBook) Begin() uint64 {
	return b.seq.Add(1)
}

// Apply はシーケンス番号付きで価格を一括反映します。
// すでに新しいシーケンスが適用済みの場合は何もせずfalseを返します。
// バッチに含まれない銘柄の既存価格は保持されます。
func (b *PriceBook) Apply(seq uint64, prices map[string]entity.Quote) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if seq < b.applied {
		return false
	}
	b.applied = seq
	for symbol, q := range prices {
		b.prices[symbol] = q
	}
	return true
}

// Get は銘柄の現在価格を返します。
func (b *PriceBook) Get(symbol string) (entity.Quote, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	q, ok := b.prices[symbol]
	return q, ok
}

// Snapshot は指定された銘柄のうち価格を持つものだけを返します。
func (b *PriceBook) Snapshot(symbols []string) map[string]entity.Quote {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make(map[string]entity.Quote, len(symbols))
	for _, s := range symbols {
		if q, ok := b.prices[s]; ok {
			out[s] = q
		}
	}
	return out
}
