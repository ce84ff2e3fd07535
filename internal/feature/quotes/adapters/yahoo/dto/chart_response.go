// Package dto はYahoo Finance APIレスポンスのデータ転送オブジェクトを定義します。
package dto

// ChartResponse はv8/finance/chartエンドポイントからのJSONレスポンスを表します。
// closeはデータ欠損時にnullになるためポインタで受けます。
type ChartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol       string `json:"symbol"`
				LongName     string `json:"longName"`
				ExchangeName string `json:"exchangeName"`
				Timezone     string `json:"timezone"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}
