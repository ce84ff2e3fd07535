// Package handler はanalysisフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/analysis/transport/http/dto"
	"portfolio_backend/internal/feature/analysis/usecase"
)

// AnalysisUsecase はAI分析のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type AnalysisUsecase interface {
	AnalyzeStock(ctx context.Context, symbol string) (string, error)
	AnalyzeMarket(ctx context.Context) (string, error)
}

// AnalysisHandler はAI分析のHTTPリクエストを処理します。
type AnalysisHandler struct {
	uc AnalysisUsecase
}

// NewAnalysisHandler は指定されたusecaseでAnalysisHandlerの新しいインスタンスを生成します。
func NewAnalysisHandler(uc AnalysisUsecase) *AnalysisHandler {
	return &AnalysisHandler{uc: uc}
}

// AnalyzeStock は個別銘柄のAI分析テキストを返します。
//
// エンドポイント: GET /v1/analysis/:symbol
func (h *AnalysisHandler) AnalyzeStock(c *gin.Context) {
	symbol := c.Param("symbol")

	text, err := h.uc.AnalyzeStock(c.Request.Context(), symbol)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidSymbol) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("stock analysis failed", "error", err, "symbol", symbol)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to generate analysis"})
		return
	}

	c.JSON(http.StatusOK, dto.AnalysisResponse{Analysis: text})
}

// AnalyzeMarket はS&P500指数のAI分析テキストを返します。
//
// エンドポイント: GET /v1/analysis/market
func (h *AnalysisHandler) AnalyzeMarket(c *gin.Context) {
	text, err := h.uc.AnalyzeMarket(c.Request.Context())
	if err != nil {
		slog.Error("market analysis failed", "error", err)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to generate analysis"})
		return
	}

	c.JSON(http.StatusOK, dto.AnalysisResponse{Analysis: text})
}
