// Package finnhub はFinnhub株価APIのクライアントを提供します。
package finnhub

import (
	"os"
	"time"
)

// defaultBaseURL は環境変数未設定時のFinnhub APIベースURLです。
const defaultBaseURL = "https://finnhub.io/api/v1"

// Config はFinnhub APIクライアントの設定を保持します。
type Config struct {
	APIKey  string        // 認証用APIキー
	BaseURL string        // APIのベースURL
	Timeout time.Duration // HTTPリクエストタイムアウト
}

// LoadConfig は環境変数からFinnhubの設定を読み込みます。
func LoadConfig() Config {
	base := os.Getenv("FINNHUB_BASE_URL")
	if base == "" {
		base = defaultBaseURL
	}
	return Config{
		APIKey:  os.Getenv("FINNHUB_API_KEY"),
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}
