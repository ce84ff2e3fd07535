// Package cache provides caching primitives: an in-process TTL cache and a
// Redis-backed caching decorator for quote history.
package cache

import (
	"sync"
	"time"
)

// ttlEntry は格納値と格納時刻の組です。
type ttlEntry[V any] struct {
	value    V
	storedAt time.Time
}

// TTLCache はプロセス内のTTL付きキャッシュです。
// モジュールスコープのグローバル変数ではなくインスタンスとして構築し、
// 時計を注入できるようにすることで、実時間を待たずに期限切れをテストできます。
//
// エントリは読み取り時に期限切れ判定され、上書きで更新されます。
// サイズ上限は設けません（銘柄数程度のキー空間を想定）。
type TTLCache[V any] struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]ttlEntry[V]
}

// NewTTLCache は指定されたTTLのキャッシュを生成します。
// nowがnilの場合はtime.Nowを使用します。
func NewTTLCache[V any](ttl time.Duration, now func() time.Time) *TTLCache[V] {
	if now == nil {
		now = time.Now
	}
	return &TTLCache[V]{
		ttl:     ttl,
		now:     now,
		entries: make(map[string]ttlEntry[V]),
	}
}

// Get はキーに対応する未期限切れの値を返します。
// 期限切れエントリはこの時点で削除されます。
func (c *TTLCache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.now().Sub(e.storedAt) >= c.ttl {
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return e.value, true
}

// Set はキーに値を格納し、格納時刻を現在時刻で更新します。
func (c *TTLCache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = ttlEntry[V]{value: value, storedAt: c.now()}
}

// Len は期限切れを含む現在のエントリ数を返します。
func (c *TTLCache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
