// Package newsapi はNewsAPI (newsapi.org) のクライアントを提供します。
package newsapi

import (
	"os"
	"time"
)

// defaultBaseURL は環境変数未設定時のNewsAPIベースURLです。
const defaultBaseURL = "https://newsapi.org"

// Config はNewsAPIクライアントの設定を保持します。
type Config struct {
	APIKey  string        // 認証用APIキー
	BaseURL string        // APIのベースURL
	Timeout time.Duration // HTTPリクエストタイムアウト
}

// LoadConfig は環境変数からNewsAPIの設定を読み込みます。
func LoadConfig() Config {
	base := os.Getenv("NEWS_API_BASE_URL")
	if base == "" {
		base = defaultBaseURL
	}
	return Config{
		APIKey:  os.Getenv("NEWS_API_KEY"),
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}
