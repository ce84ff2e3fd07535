// Package handler はquotesフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/quotes/domain/entity"
	"portfolio_backend/internal/feature/quotes/transport/http/dto"
)

// QuotesUsecase は株価データ操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type QuotesUsecase interface {
	GetHistory(ctx context.Context, symbol, timeframe string) (*entity.Series, error)
	CurrentPrices(ctx context.Context, symbols []string) map[string]entity.Quote
}

// QuotesHandler は株価データのHTTPリクエストを処理します。
type QuotesHandler struct {
	uc QuotesUsecase
}

// NewQuotesHandler は指定されたusecaseでQuotesHandlerの新しいインスタンスを生成します。
func NewQuotesHandler(uc QuotesUsecase) *QuotesHandler {
	return &QuotesHandler{uc: uc}
}

// GetHistory は銘柄コードと期間を受け取り、価格履歴をJSONで返します。
//
// エンドポイント例:
// GET /v1/quotes/:symbol/history?timeframe=1D
func (h *QuotesHandler) GetHistory(c *gin.Context) {
	symbol := c.Param("symbol")
	// 未指定の場合はデフォルト値を使用
	timeframe := c.DefaultQuery("timeframe", string(entity.Timeframe1D))

	series, err := h.uc.GetHistory(c.Request.Context(), symbol, timeframe)
	if err != nil {
		if _, tfErr := entity.ParseTimeframe(timeframe); tfErr != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: tfErr.Error()})
			return
		}
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to fetch stock data"})
		return
	}

	c.JSON(http.StatusOK, series)
}

// GetCurrentPrices はカンマ区切りの銘柄リストの現在価格を返します。
// 価格が取得できなかった銘柄はレスポンスから除外されます。
//
// エンドポイント例:
// GET /v1/quotes/current?symbols=AAPL,MSFT
func (h *QuotesHandler) GetCurrentPrices(c *gin.Context) {
	raw := c.Query("symbols")

	var symbols []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			symbols = append(symbols, s)
		}
	}
	if len(symbols) == 0 {
		c.JSON(http.StatusOK, map[string]dto.CurrentPrice{})
		return
	}

	prices := h.uc.CurrentPrices(c.Request.Context(), symbols)

	out := make(map[string]dto.CurrentPrice, len(prices))
	for symbol, q := range prices {
		out[symbol] = dto.CurrentPrice{Price: q.Price, PercentChange: q.PercentChange}
	}
	c.JSON(http.StatusOK, out)
}
