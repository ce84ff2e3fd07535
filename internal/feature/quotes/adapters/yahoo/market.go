package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"portfolio_backend/internal/feature/quotes/adapters/yahoo/dto"
	"portfolio_backend/internal/feature/quotes/domain/entity"
	"portfolio_backend/internal/feature/quotes/usecase"
)

// chartParams はTimeframeをYahoo固有のinterval/rangeパラメータへ対応付けます。
var chartParams = map[entity.Timeframe]struct {
	interval string
	rng      string
}{
	entity.Timeframe1D: {"1m", "1d"},
	entity.Timeframe5D: {"5m", "5d"},
	entity.Timeframe1M: {"1h", "1mo"},
	entity.Timeframe1Y: {"1d", "1y"},
}

// YahooMarket はYahoo Financeチャートapiから価格履歴を取得するMarketRepository実装です。
type YahooMarket struct {
	cfg    Config
	client *http.Client
}

// YahooMarketがMarketRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.MarketRepository = (*YahooMarket)(nil)

// NewYahooMarket は指定された設定とHTTPクライアントでYahooMarketの新しいインスタンスを生成します。
func NewYahooMarket(cfg Config, client *http.Client) *YahooMarket {
	return &YahooMarket{cfg: cfg, client: client}
}

// GetSeries はチャートapiから時系列を取得し、entity.Seriesとして返します。
// closeがnullのポイントは除外します。
func (y *YahooMarket) GetSeries(ctx context.Context, symbol string, timeframe entity.Timeframe) (*entity.Series, error) {
	p, ok := chartParams[timeframe]
	if !ok {
		return nil, fmt.Errorf("unsupported timeframe %q", timeframe)
	}

	q := url.Values{}
	q.Set("interval", p.interval)
	q.Set("range", p.rng)
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", y.cfg.BaseURL, url.PathEscape(symbol), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := y.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := res.Body.Close(); err != nil {
			slog.Warn("failed to close response body", "error", err)
		}
	}()

	if res.StatusCode >= 400 {
		return nil, fmt.Errorf("yahoo chart http %d", res.StatusCode)
	}

	var body dto.ChartResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, err
	}
	if body.Chart.Error != nil {
		return nil, fmt.Errorf("yahoo chart: %s", body.Chart.Error.Description)
	}
	if len(body.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo chart: empty result for %q", symbol)
	}

	result := body.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo chart: no quote indicators for %q", symbol)
	}
	closes := result.Indicators.Quote[0].Close

	points := make([]entity.SeriesPoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			// 市場の空白時間帯はcloseがnullになる
			continue
		}
		points = append(points, entity.SeriesPoint{Timestamp: ts, Price: *closes[i]})
	}

	return &entity.Series{
		Symbol:   result.Meta.Symbol,
		Name:     result.Meta.LongName,
		Exchange: result.Meta.ExchangeName,
		Timezone: result.Meta.Timezone,
		Points:   points,
	}, nil
}
