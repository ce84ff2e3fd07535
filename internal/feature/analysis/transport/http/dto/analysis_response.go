// Package dto はanalysisフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// AnalysisResponse はAI分析テキストのレスポンスです。
type AnalysisResponse struct {
	Analysis string `json:"analysis"`
}
