// Package handler はnewsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio_backend/internal/feature/news/domain/entity"
)

// NewsUsecase はニュース取得のユースケースインターフェースを定義します。
// Goの慣例に従い、インターフェースは利用者（handler）側で定義します。
type NewsUsecase interface {
	TopNews(ctx context.Context, symbol string) []entity.Article
}

// NewsHandler は銘柄ニュースのHTTPリクエストを処理します。
type NewsHandler struct {
	uc NewsUsecase
}

// NewNewsHandler は指定されたusecaseでNewsHandlerの新しいインスタンスを生成します。
func NewNewsHandler(uc NewsUsecase) *NewsHandler {
	return &NewsHandler{uc: uc}
}

// TopNews は銘柄に関連するニュース記事を最大2件返します。
// プロバイダー障害時もフォールバック記事で200を返します。
//
// エンドポイント: GET /v1/news/:symbol
func (h *NewsHandler) TopNews(c *gin.Context) {
	symbol := c.Param("symbol")
	c.JSON(http.StatusOK, h.uc.TopNews(c.Request.Context(), symbol))
}
