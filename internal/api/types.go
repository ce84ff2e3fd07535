// Package api はトランスポート層で共有されるJSONレスポンス型を定義します。
package api

// ErrorResponse は全エンドポイント共通のエラーレスポンスです。
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse は処理結果のメッセージのみを返すレスポンスです。
type MessageResponse struct {
	Message string `json:"message"`
}

// TokenPairResponse はログイン・リフレッシュ成功時のトークンレスポンスです。
type TokenPairResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}
