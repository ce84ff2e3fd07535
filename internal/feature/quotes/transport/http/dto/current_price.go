// Package dto はquotesフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// CurrentPrice は現在価格レスポンスのDTOです。
type CurrentPrice struct {
	Price         float64 `json:"price"`         // 現在価格
	PercentChange float64 `json:"percentChange"` // 前日比（%）
}
