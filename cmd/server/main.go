package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"
	redisv9 "github.com/redis/go-redis/v9"

	"portfolio_backend/internal/app/di"
	"portfolio_backend/internal/app/router"
	analysisgemini "portfolio_backend/internal/feature/analysis/adapters/gemini"
	analysishandler "portfolio_backend/internal/feature/analysis/transport/handler"
	analysisusecase "portfolio_backend/internal/feature/analysis/usecase"
	authadapters "portfolio_backend/internal/feature/auth/adapters"
	authhandler "portfolio_backend/internal/feature/auth/transport/handler"
	authusecase "portfolio_backend/internal/feature/auth/usecase"
	newsentity "portfolio_backend/internal/feature/news/domain/entity"
	newshandler "portfolio_backend/internal/feature/news/transport/handler"
	newsusecase "portfolio_backend/internal/feature/news/usecase"
	portfolioadapters "portfolio_backend/internal/feature/portfolio/adapters"
	portfoliohandler "portfolio_backend/internal/feature/portfolio/transport/handler"
	portfoliousecase "portfolio_backend/internal/feature/portfolio/usecase"
	quoteshandler "portfolio_backend/internal/feature/quotes/transport/handler"
	quotesusecase "portfolio_backend/internal/feature/quotes/usecase"
	searchentity "portfolio_backend/internal/feature/search/domain/entity"
	searchhandler "portfolio_backend/internal/feature/search/transport/handler"
	searchusecase "portfolio_backend/internal/feature/search/usecase"
	"portfolio_backend/internal/platform/cache"
	infradb "portfolio_backend/internal/platform/db"
	jwtmw "portfolio_backend/internal/platform/jwt"
	infraredis "portfolio_backend/internal/platform/redis"
	"portfolio_backend/internal/platform/scheduler"
	"portfolio_backend/internal/shared/ratelimiter"
)

const (
	// accessTokenTTL はアクセストークンの有効期間です。
	accessTokenTTL = 15 * time.Minute
	// searchCacheTTL は銘柄検索結果のキャッシュ保持時間です。
	searchCacheTTL = 5 * time.Minute
	// newsCacheTTL はニュース記事のキャッシュ保持時間です。
	newsCacheTTL = time.Hour
	// analysisCacheTTL はAI分析結果のキャッシュ保持時間です。
	analysisCacheTTL = 24 * time.Hour
	// finnhubRateLimit は無料プランのレート制限（60リクエスト/分）です。
	finnhubRateLimit = 60
)

func main() {
	// .envは開発環境でのみ存在する
	if err := godotenv.Load(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	ctx := context.Background()

	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		slog.Warn("Redis unavailable, running without cache", "error", err)
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				slog.Error("failed to close Redis client", "error", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	holdingRepo := portfolioadapters.NewHoldingMySQL(db)
	historyRepo := di.NewHistoryRepository(rdb)
	quoteRepo := di.NewQuoteRepository()

	// JWT
	jwtGen := jwtmw.NewGenerator(os.Getenv(jwtmw.EnvKeyJWTSecret), accessTokenTTL)

	// 現在価格のスナップショット（リフレッシュジョブと読み取りで共有）
	priceBook := quotesusecase.NewPriceBook()

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo, jwtGen)
	quotesUC := quotesusecase.NewQuotesUsecase(historyRepo, quoteRepo, priceBook)
	portfolioUC := portfoliousecase.NewPortfolioUsecase(holdingRepo, di.NewQuoteSource(quotesUC))
	searchUC := searchusecase.NewSearchUsecase(di.NewListingSearcher(),
		cache.NewTTLCache[[]searchentity.Listing](searchCacheTTL, nil))
	newsUC := newsusecase.NewNewsUsecase(di.NewNewsProvider(),
		cache.NewTTLCache[[]newsentity.Article](newsCacheTTL, nil))

	analyzer, err := analysisgemini.NewGeminiAnalyzer(ctx)
	if err != nil {
		slog.Error("failed to create gemini analyzer", "error", err)
		os.Exit(1)
	}
	analysisUC := analysisusecase.NewAnalysisUsecase(analyzer,
		cache.NewTTLCache[string](analysisCacheTTL, nil))

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	portfolioH := portfoliohandler.NewPortfolioHandler(portfolioUC)
	quotesH := quoteshandler.NewQuotesHandler(quotesUC)
	searchH := searchhandler.NewSearchHandler(searchUC)
	newsH := newshandler.NewNewsHandler(newsUC)
	analysisH := analysishandler.NewAnalysisHandler(analysisUC)

	// 価格リフレッシュジョブ（60秒間隔）
	refresher := quotesusecase.NewRefresher(quoteRepo, holdingRepo, priceBook,
		ratelimiter.NewRateLimiter(finnhubRateLimit, time.Minute))
	sched := scheduler.NewScheduler(ctx)
	if err := sched.RegisterPriceRefresh(refresher); err != nil {
		slog.Error("failed to register refresh job", "error", err)
		os.Exit(1)
	}
	sched.Start()
	defer sched.Stop()

	// ルータ生成（CORSはルーター側で適用）
	router := router.NewRouter(authH, portfolioH, quotesH, searchH, newsH, analysisH)

	// JWT_SECRETチェック（開発中の注意喚起）
	if os.Getenv(jwtmw.EnvKeyJWTSecret) == "" {
		slog.Warn("JWT_SECRET is not set. Set a strong secret in production.")
	}

	if err := router.Run(":8080"); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
