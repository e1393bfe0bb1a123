// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/hitoshi/notewise/internal/model"
)

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// claimContextKey はリクエストコンテキストに認証済みクレームを格納するためのキー。
var claimContextKey = contextKey("claim")

// TokenVerifier はBearerトークンの検証に必要なインターフェース。
type TokenVerifier interface {
	// Verify はトークン文字列を検証し、埋め込まれたクレームを返す。
	Verify(tokenString string) (model.Claim, error)
}

// NewAuthMiddleware はAuthorizationヘッダーからBearerトークンを読み取り、
// 有効性を検証するミドルウェアを返す。
// 検証済みクレームをリクエストコンテキストに注入する。
// トークン未提示・検証失敗のリクエストには401 Unauthorizedを返す。
func NewAuthMiddleware(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. AuthorizationヘッダーからBearerトークンを取得
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				WriteErrorResponse(w, model.NewMissingCredentialError())
				return
			}

			// 2. トークンの有効性を検証
			claim, err := verifier.Verify(token)
			if err != nil {
				WriteErrorResponse(w, model.NewInvalidTokenError())
				return
			}

			// 3. 検証済みクレームをコンテキストに注入
			ctx := context.WithValue(r.Context(), claimContextKey, claim)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimFromContext はリクエストコンテキストから認証済みクレームを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func ClaimFromContext(ctx context.Context) (model.Claim, error) {
	claim, ok := ctx.Value(claimContextKey).(model.Claim)
	if !ok || claim.ID == "" {
		return model.Claim{}, fmt.Errorf("claim not found in context")
	}
	return claim, nil
}

// ContextWithClaim はコンテキストにクレームを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithClaim(ctx context.Context, claim model.Claim) context.Context {
	return context.WithValue(ctx, claimContextKey, claim)
}
