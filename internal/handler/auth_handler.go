// Package handler はHTTPハンドラーを提供する。
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hitoshi/notewise/internal/middleware"
	"github.com/hitoshi/notewise/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Login は資格情報を検証し、成功時にユーザーとトークンを返す。
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	// RefreshToken は検証済みクレームに対して新しいトークンを発行する。
	RefreshToken(claim model.Claim) (string, error)
}

// AuthHandler はログイン・トークンリフレッシュのHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// loginResponse はログイン成功レスポンス。
type loginResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AuthToken string `json:"authToken"`
}

// refreshResponse はトークンリフレッシュ成功レスポンス。
type refreshResponse struct {
	AuthToken string `json:"authToken"`
}

// Login はemail+passwordによるログインを処理する。
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIErrorResponse(w, &model.APIError{
			Code:    http.StatusBadRequest,
			Reason:  model.ReasonValidation,
			Message: "Malformed request body",
		})
		return
	}

	email, emailOK := body["email"].(string)
	password, passwordOK := body["password"].(string)
	if !emailOK || !passwordOK || email == "" || password == "" {
		writeAPIErrorResponse(w, &model.APIError{
			Code:    http.StatusBadRequest,
			Reason:  model.ReasonValidation,
			Message: "Email and password are required",
		})
		return
	}

	user, token, err := h.service.Login(r.Context(), email, password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, loginResponse{
		ID:        user.ID,
		Name:      user.Name,
		AuthToken: token,
	})
}

// Refresh は検証済みトークンから新しいトークンを発行する。
// トークンの検証は認証ミドルウェアが実施済みであり、
// ここではコンテキストのクレームをそのまま引き継ぐ。
// POST /api/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	claim, err := middleware.ClaimFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, model.NewMissingCredentialError())
		return
	}

	token, err := h.service.RefreshToken(claim)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, refreshResponse{
		AuthToken: token,
	})
}

// writeJSONResponse はJSONレスポンスを書き込む。
func writeJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(body)
}

// writeAPIErrorResponse は統一エラーフォーマットでエラーレスポンスを書き込む。
func writeAPIErrorResponse(w http.ResponseWriter, apiErr *model.APIError) {
	middleware.WriteErrorResponse(w, apiErr)
}

// handleServiceError はサービス層から返されたエラーを適切なHTTPレスポンスに変換する。
// reasonが既知のAPIErrorはそのコードで返し、それ以外は詳細を漏らさず500にまとめる。
func handleServiceError(w http.ResponseWriter, err error) {
	var apiErr *model.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.Reason {
		case model.ReasonValidation, model.ReasonAuthentication:
			writeAPIErrorResponse(w, apiErr)
			return
		}
	}

	// APIError以外のエラーは内部サーバーエラーとして扱う
	slog.Error("internal server error", slog.String("error", err.Error()))
	middleware.WriteInternalServerError(w)
}
