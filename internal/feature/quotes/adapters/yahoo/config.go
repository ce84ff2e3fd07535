// Package yahoo はYahoo Financeチャートapiのクライアントを提供します。
package yahoo

import (
	"os"
	"time"
)

// defaultBaseURL は環境変数未設定時のYahoo Finance APIベースURLです。
const defaultBaseURL = "https://query1.finance.yahoo.com"

// Config はYahoo Finance APIクライアントの設定を保持します。
type Config struct {
	BaseURL string        // APIのベースURL
	Timeout time.Duration // HTTPリクエストタイムアウト
}

// LoadConfig は環境変数からYahoo Financeの設定を読み込みます。
func LoadConfig() Config {
	base := os.Getenv("YAHOO_FINANCE_BASE_URL")
	if base == "" {
		base = defaultBaseURL
	}
	return Config{
		BaseURL: base,
		Timeout: 10 * time.Second,
	}
}
