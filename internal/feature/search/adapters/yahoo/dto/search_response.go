// Package dto はYahoo Finance検索APIのレスポンス構造を定義します。
package dto

// SearchResponse は GET /v1/finance/search のレスポンスです。
// 必要なフィールドのみマッピングしています。
type SearchResponse struct {
	Quotes []SearchQuote `json:"quotes"`
}

// SearchQuote は検索結果の1銘柄分です。
// shortnameが無い銘柄ではlongnameのみが入ることがあります。
type SearchQuote struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"shortname"`
	LongName  string `json:"longname"`
}
