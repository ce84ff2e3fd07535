// Package handler はportfolioフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/portfolio/domain"
	"portfolio_backend/internal/feature/portfolio/domain/entity"
	"portfolio_backend/internal/feature/portfolio/transport/http/dto"
	"portfolio_backend/internal/feature/portfolio/usecase"
	jwtmw "portfolio_backend/internal/platform/jwt"
)

// PortfolioUsecase は保有銘柄操作のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type PortfolioUsecase interface {
	List(ctx context.Context, userID uint) ([]entity.Holding, error)
	Add(ctx context.Context, userID uint, in usecase.HoldingInput) (*entity.Holding, error)
	Update(ctx context.Context, userID, id uint, in usecase.HoldingInput) (*entity.Holding, error)
	Delete(ctx context.Context, userID, id uint) error
	Summary(ctx context.Context, userID uint) (*usecase.Summary, error)
}

// PortfolioHandler は保有銘柄のHTTPリクエストを処理します。
type PortfolioHandler struct {
	uc PortfolioUsecase
}

// NewPortfolioHandler は指定されたusecaseでPortfolioHandlerの新しいインスタンスを生成します。
func NewPortfolioHandler(uc PortfolioUsecase) *PortfolioHandler {
	return &PortfolioHandler{uc: uc}
}

// currentUser はJWTミドルウェアが設定したユーザーIDを取得します。
// 取得できない場合は401を返してリクエストを打ち切ります。
func currentUser(c *gin.Context) (uint, bool) {
	userID, ok := jwtmw.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, api.ErrorResponse{Error: "authentication required"})
		return 0, false
	}
	return userID, true
}

// holdingID はパスパラメータ:idを数値に変換します。
func holdingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid holding id"})
		return 0, false
	}
	return uint(id), true
}

// List はユーザーの保有銘柄一覧を返します。
//
// エンドポイント: GET /v1/portfolio
func (h *PortfolioHandler) List(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	holdings, err := h.uc.List(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to list holdings", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch stocks"})
		return
	}

	out := make([]dto.HoldingResponse, 0, len(holdings))
	for _, holding := range holdings {
		out = append(out, dto.NewHoldingResponse(holding))
	}
	c.JSON(http.StatusOK, out)
}

// Add は保有銘柄を追加します。同じ銘柄を既に保有している場合は
// 加重平均でマージされた結果を返します。
//
// エンドポイント: POST /v1/portfolio
func (h *PortfolioHandler) Add(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	var req dto.HoldingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("add holding validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	holding, err := h.uc.Add(c.Request.Context(), userID, usecase.HoldingInput{
		Symbol:   req.Symbol,
		Name:     req.Name,
		Quantity: req.Quantity,
		AvgPrice: req.AvgPrice,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateHolding) {
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("failed to add holding", "error", err, "user_id", userID, "symbol", req.Symbol)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to add stock"})
		return
	}

	c.JSON(http.StatusCreated, dto.NewHoldingResponse(*holding))
}

// Update は保有銘柄の名称・数量・平均取得単価を置き換えます。
//
// エンドポイント: PUT /v1/portfolio/:id
func (h *PortfolioHandler) Update(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := holdingID(c)
	if !ok {
		return
	}

	var req dto.HoldingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update holding validation failed", "error", err, "user_id", userID)
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	holding, err := h.uc.Update(c.Request.Context(), userID, id, usecase.HoldingInput{
		Symbol:   req.Symbol,
		Name:     req.Name,
		Quantity: req.Quantity,
		AvgPrice: req.AvgPrice,
	})
	if err != nil {
		if errors.Is(err, domain.ErrHoldingNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("failed to update holding", "error", err, "user_id", userID, "id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to update stock"})
		return
	}

	c.JSON(http.StatusOK, dto.NewHoldingResponse(*holding))
}

// Delete は保有銘柄を削除します。他ユーザーの行は404になります。
//
// エンドポイント: DELETE /v1/portfolio/:id
func (h *PortfolioHandler) Delete(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := holdingID(c)
	if !ok {
		return
	}

	if err := h.uc.Delete(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, domain.ErrHoldingNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("failed to delete holding", "error", err, "user_id", userID, "id", id)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to delete stock"})
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "ok"})
}

// Summary は保有銘柄一覧を現在価格とマージした評価サマリーを返します。
// ダッシュボードは60秒間隔でこのエンドポイントをポーリングします。
//
// エンドポイント: GET /v1/portfolio/summary
func (h *PortfolioHandler) Summary(c *gin.Context) {
	userID, ok := currentUser(c)
	if !ok {
		return
	}

	summary, err := h.uc.Summary(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to build portfolio summary", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to fetch portfolio"})
		return
	}

	c.JSON(http.StatusOK, dto.NewSummaryResponse(summary))
}
