// Package usecase はAIによる銘柄分析のビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"portfolio_backend/internal/platform/cache"
)

// ErrInvalidSymbol は銘柄コードの形式が不正な場合に返されます。
var ErrInvalidSymbol = errors.New("invalid symbol")

// marketCacheKey は市況全般の分析結果のキャッシュキーです。
// 先頭の"_"により銘柄コードと衝突しません。
const marketCacheKey = "_market"

// symbolPattern は受け付ける銘柄コードの形式です。
// 指数（^GSPC）やクラス株（BRK.B, BRK-B）も許可します。
var symbolPattern = regexp.MustCompile(`^[A-Z0-9.\-^]{1,12}$`)

// Analyzer はテキスト生成プロバイダーを抽象化します。
// Goの慣例に従い、インターフェースは利用者（usecase）側で定義します。
type Analyzer interface {
	Analyze(ctx context.Context, prompt string) (string, error)
}

// analysisUsecase は銘柄分析のユースケースを実装します。
// 生成コストが高いため、結果を長時間キャッシュします。
type analysisUsecase struct {
	analyzer Analyzer
	cache    *cache.TTLCache[string]
}

// NewAnalysisUsecase はanalysisUsecaseの新しいインスタンスを生成します。
func NewAnalysisUsecase(analyzer Analyzer, c *cache.TTLCache[string]) *analysisUsecase {
	return &analysisUsecase{analyzer: analyzer, cache: c}
}

// AnalyzeStock は銘柄の分析テキストを生成します。
// 銘柄コードは大文字に正規化してから検証します。
func (u *analysisUsecase) AnalyzeStock(ctx context.Context, symbol string) (string, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if !symbolPattern.MatchString(symbol) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSymbol, symbol)
	}

	return u.analyze(ctx, symbol, stockPrompt(symbol))
}

// AnalyzeMarket はS&P500指数の分析テキストを生成します。
func (u *analysisUsecase) AnalyzeMarket(ctx context.Context) (string, error) {
	return u.analyze(ctx, marketCacheKey, marketPrompt())
}

// analyze はキャッシュを確認してからプロバイダーを呼び出します。
func (u *analysisUsecase) analyze(ctx context.Context, key, prompt string) (string, error) {
	if cached, ok := u.cache.Get(key); ok {
		return cached, nil
	}

	text, err := u.analyzer.Analyze(ctx, prompt)
	if err != nil {
		return "", err
	}
	if text == "" {
		text = "No analysis available."
	}

	u.cache.Set(key, text)
	return text, nil
}

// stockPrompt は個別銘柄分析用のプロンプトを生成します。
func stockPrompt(symbol string) string {
	return fmt.Sprintf("Provide a brief analysis of the stock %s. "+
		"Include information about the company's recent performance, any significant news, "+
		"and potential future outlook. Keep the analysis concise and informative.", symbol)
}

// marketPrompt は市況分析用のプロンプトを生成します。
func marketPrompt() string {
	return "Provide a brief analysis of the S&P 500 index. " +
		"Include information about its recent performance, any significant market trends, " +
		"and a general outlook. Keep the analysis concise and informative."
}
