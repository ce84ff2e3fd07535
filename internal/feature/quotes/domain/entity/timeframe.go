package entity

import "fmt"

// Timeframe はチャート履歴の表示期間です。
// プロバイダー固有のinterval/rangeへの変換はアダプター側で行います。
type Timeframe string

const (
	Timeframe1D Timeframe = "1D"
	Timeframe5D Timeframe = "5D"
	Timeframe1M Timeframe = "1M"
	Timeframe1Y Timeframe = "1Y"
)

// ParseTimeframe は文字列をTimeframeに変換します。
// 未知の値はエラーになります。
func ParseTimeframe(s string) (Timeframe, error) {
	switch Timeframe(s) {
	case Timeframe1D, Timeframe5D, Timeframe1M, Timeframe1Y:
		return Timeframe(s), nil
	}
	return "", fmt.Errorf("invalid timeframe %q (want 1D, 5D, 1M or 1Y)", s)
}
