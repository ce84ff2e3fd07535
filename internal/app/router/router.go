package router

import (
	"os"

	analysishandler "portfolio_backend/internal/feature/analysis/transport/handler"
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	newshandler "portfolio_backend/internal/feature/news/transport/handler"
	portfoliohandler "portfolio_backend/internal/feature/portfolio/transport/handler"
	quoteshandler "portfolio_backend/internal/feature/quotes/transport/handler"
	searchhandler "portfolio_backend/internal/feature/search/transport/handler"
	"portfolio_backend/internal/platform/http/handler"
	jwtmw "portfolio_backend/internal/platform/jwt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// newCORS はブラウザのダッシュボード向けのCORSミドルウェアを生成します。
// 許可オリジンはCORS_ALLOW_ORIGINSで上書きできます。
func newCORS() gin.HandlerFunc {
	cfg := cors.DefaultConfig()
	if origins := os.Getenv("CORS_ALLOW_ORIGINS"); origins != "" {
		cfg.AllowOrigins = []string{origins}
	} else {
		cfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization")
	return cors.New(cfg)
}

// NewRouter は全エンドポイントを登録したGinエンジンを生成します。
func NewRouter(authHandler *authhandler.AuthHandler, portfolio *portfoliohandler.PortfolioHandler,
	quotes *quoteshandler.QuotesHandler, search *searchhandler.SearchHandler,
	news *newshandler.NewsHandler, analysis *analysishandler.AnalysisHandler) *gin.Engine {
	r := gin.Default()

	// CORS（ルート登録前に適用する必要がある）
	r.Use(newCORS())

	// 認証不要
	// 導通確認用
	r.GET("/healthz", handler.Health)
	// 新規ユーザー登録
	r.POST("/signup", authHandler.Signup)
	// ログイン（JWT 発行）
	r.POST("/login", authHandler.Login)
	// リフレッシュトークンによるアクセストークン再発行
	r.POST("/refresh", authHandler.Refresh)
	// セッション失効
	r.POST("/logout", authHandler.Logout)

	// 認証必須のルート
	// jwtmw.AuthRequired() ミドルウェアを適用
	// → リクエストヘッダーに JWT が必要になる
	v1 := r.Group("/v1")
	v1.Use(jwtmw.AuthRequired())
	{
		v1.GET("/portfolio", portfolio.List)
		v1.POST("/portfolio", portfolio.Add)
		v1.PUT("/portfolio/:id", portfolio.Update)
		v1.DELETE("/portfolio/:id", portfolio.Delete)
		v1.GET("/portfolio/summary", portfolio.Summary)

		v1.GET("/quotes/current", quotes.GetCurrentPrices)
		v1.GET("/quotes/:symbol/history", quotes.GetHistory)

		v1.GET("/search", search.Search)
		v1.GET("/news/:symbol", news.TopNews)

		// 静的ルート/v1/analysis/marketはパラメータルートより優先される
		v1.GET("/analysis/market", analysis.AnalyzeMarket)
		v1.GET("/analysis/:symbol", analysis.AnalyzeStock)
	}

	return r
}
