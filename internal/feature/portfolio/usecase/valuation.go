package usecase

import (
	"context"

	"portfolio_backend/internal/feature/portfolio/domain/entity"
)

// Quote は評価額計算に必要な現在価格の値です。
// quotesフィーチャーへの依存を避けるため、このパッケージで独立して定義します。
type Quote struct {
	Price         float64
	PercentChange float64
}

// QuoteSource は保有銘柄の現在価格を提供します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type QuoteSource interface {
	CurrentPrices(ctx context.Context, symbols []string) map[string]Quote
}

// Trend は値動きの方向です。
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// TrendOf は符号からトレンドを分類します。
func TrendOf(v float64) Trend {
	switch {
	case v > 0:
		return TrendUp
	case v < 0:
		return TrendDown
	default:
		return TrendNeutral
	}
}

// RowValuation は1銘柄分の評価結果です。
type RowValuation struct {
	Holding       entity.Holding
	CurrentPrice  float64 // ライブ価格がない場合はAvgPrice
	PercentChange float64
	HasLivePrice  bool
	Value         float64 // Quantity * CurrentPrice
	Gain          float64 // ライブ価格がない場合は0
	GainPercent   float64
	DailyChange   float64 // 1株あたりの当日変化額
	Trend         Trend
}

// Summary はポートフォリオ全体の評価結果です。
// 保有銘柄と価格の両方を同一スナップショットから計算するため、
// レスポンス内で値が食い違うことはありません。
type Summary struct {
	Rows             []RowValuation
	TotalValue       float64
	TotalGain        float64
	TotalGainPercent float64
	Trend            Trend
}

// ValuateRow は1銘柄の評価値を計算します。
// ライブ価格がない銘柄は取得原価で評価し、損益は0とみなします。
func ValuateRow(h entity.Holding, q Quote, hasLive bool) RowValuation {
	price := h.AvgPrice
	pct := 0.0
	if hasLive {
		price = q.Price
		pct = q.PercentChange
	}

	gain := (price - h.AvgPrice) * h.Quantity
	gainPercent := 0.0
	if h.AvgPrice > 0 {
		gainPercent = (price - h.AvgPrice) / h.AvgPrice * 100
	}
	dailyChange := price * (pct / 100)

	return RowValuation{
		Holding:       h,
		CurrentPrice:  price,
		PercentChange: pct,
		HasLivePrice:  hasLive,
		Value:         h.Quantity * price,
		Gain:          gain,
		GainPercent:   gainPercent,
		DailyChange:   dailyChange,
		Trend:         TrendOf(gain),
	}
}

// TotalValue は評価額の合計を返します。
// ライブ価格がない銘柄は取得原価（quantity*avgPrice）で算入します。
func TotalValue(holdings []entity.Holding, prices map[string]Quote) float64 {
	total := 0.0
	for _, h := range holdings {
		price := h.AvgPrice
		if q, ok := prices[h.Symbol]; ok {
			price = q.Price
		}
		total += h.Quantity * price
	}
	return total
}

// TotalGain は損益の合計を返します。
// ライブ価格がない銘柄の損益は0です。
func TotalGain(holdings []entity.Holding, prices map[string]Quote) float64 {
	total := 0.0
	for _, h := range holdings {
		if q, ok := prices[h.Symbol]; ok {
			total += (q.Price - h.AvgPrice) * h.Quantity
		}
	}
	return total
}

// GainPercent は取得原価に対する損益率（%）を返します。
// 分母の取得原価（totalValue - totalGain）が0以下の場合は
// NaN/Infの伝播を避けるため0を返します。
func GainPercent(totalValue, totalGain float64) float64 {
	costBasis := totalValue - totalGain
	if costBasis <= 0 {
		return 0
	}
	return totalGain / costBasis * 100
}

// Summary は保有銘柄一覧と現在価格スナップショットから評価サマリーを計算します。
func (u *portfolioUsecase) Summary(ctx context.Context, userID uint) (*Summary, error) {
	holdings, err := u.holdings.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	symbols := make([]string, 0, len(holdings))
	for _, h := range holdings {
		symbols = append(symbols, h.Symbol)
	}
	prices := u.quotes.CurrentPrices(ctx, symbols)

	rows := make([]RowValuation, 0, len(holdings))
	for _, h := range holdings {
		q, ok := prices[h.Symbol]
		rows = append(rows, ValuateRow(h, q, ok))
	}

	totalValue := TotalValue(holdings, prices)
	totalGain := TotalGain(holdings, prices)

	return &Summary{
		Rows:             rows,
		TotalValue:       totalValue,
		TotalGain:        totalGain,
		TotalGainPercent: GainPercent(totalValue, totalGain),
		Trend:            TrendOf(totalGain),
	}, nil
}
