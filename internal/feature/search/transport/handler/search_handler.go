// Package handler はsearchフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/api"
	"portfolio_backend/internal/feature/search/domain/entity"
)

// SearchUsecase は銘柄検索のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type SearchUsecase interface {
	Search(ctx context.Context, query string) ([]entity.Listing, error)
}

// SearchHandler は銘柄検索のHTTPリクエストを処理します。
type SearchHandler struct {
	uc SearchUsecase
}

// NewSearchHandler は指定されたusecaseでSearchHandlerの新しいインスタンスを生成します。
func NewSearchHandler(uc SearchUsecase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Search はクエリに一致する銘柄リストを返します。
// 空クエリはエラーではなく空リストを返します。
//
// エンドポイント: GET /v1/search?q=apple
func (h *SearchHandler) Search(c *gin.Context) {
	query := c.Query("q")

	listings, err := h.uc.Search(c.Request.Context(), query)
	if err != nil {
		slog.Error("symbol search failed", "error", err, "query", query)
		c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "failed to search symbols"})
		return
	}

	c.JSON(http.StatusOK, listings)
}
