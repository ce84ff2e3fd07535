// Package dto はportfolioフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"portfolio_backend/internal/feature/portfolio/domain/entity"
	"portfolio_backend/internal/feature/portfolio/usecase"
)

// HoldingReq は保有銘柄の追加・更新リクエストです。
// 数量と平均取得単価は正の値のみ許可します。
type HoldingReq struct {
	Symbol   string  `json:"symbol" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	AvgPrice float64 `json:"avgPrice" binding:"required,gt=0"`
}

// HoldingResponse は保有銘柄1件のレスポンスです。
type HoldingResponse struct {
	ID        uint      `json:"id"`
	Symbol    string    `json:"symbol"`
	Name      string    `json:"name"`
	Quantity  float64   `json:"quantity"`
	AvgPrice  float64   `json:"avgPrice"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewHoldingResponse はエンティティをレスポンスDTOに変換します。
func NewHoldingResponse(h entity.Holding) HoldingResponse {
	return HoldingResponse{
		ID:        h.ID,
		Symbol:    h.Symbol,
		Name:      h.Name,
		Quantity:  h.Quantity,
		AvgPrice:  h.AvgPrice,
		CreatedAt: h.CreatedAt,
		UpdatedAt: h.UpdatedAt,
	}
}

// SummaryRowResponse は評価サマリー内の1銘柄分です。
type SummaryRowResponse struct {
	HoldingResponse
	CurrentPrice  float64 `json:"currentPrice"`
	PercentChange float64 `json:"percentChange"`
	HasLivePrice  bool    `json:"hasLivePrice"`
	Value         float64 `json:"value"`
	Gain          float64 `json:"gain"`
	GainPercent   float64 `json:"gainPercent"`
	DailyChange   float64 `json:"dailyChange"`
	Trend         string  `json:"trend"`
}

// SummaryResponse はポートフォリオ全体の評価サマリーです。
type SummaryResponse struct {
	Holdings         []SummaryRowResponse `json:"holdings"`
	TotalValue       float64              `json:"totalValue"`
	TotalGain        float64              `json:"totalGain"`
	TotalGainPercent float64              `json:"totalGainPercent"`
	Trend            string               `json:"trend"`
}

// NewSummaryResponse はusecaseの評価結果をレスポンスDTOに変換します。
func NewSummaryResponse(s *usecase.Summary) SummaryResponse {
	rows := make([]SummaryRowResponse, 0, len(s.Rows))
	for _, r := range s.Rows {
		rows = append(rows, SummaryRowResponse{
			HoldingResponse: NewHoldingResponse(r.Holding),
			CurrentPrice:    r.CurrentPrice,
			PercentChange:   r.PercentChange,
			HasLivePrice:    r.HasLivePrice,
			Value:           r.Value,
			Gain:            r.Gain,
			GainPercent:     r.GainPercent,
			DailyChange:     r.DailyChange,
			Trend:           string(r.Trend),
		})
	}
	return SummaryResponse{
		Holdings:         rows,
		TotalValue:       s.TotalValue,
		TotalGain:        s.TotalGain,
		TotalGainPercent: s.TotalGainPercent,
		Trend:            string(s.Trend),
	}
}
