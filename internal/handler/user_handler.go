package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/notewise/internal/model"
	"github.com/hitoshi/notewise/internal/validate"
)

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// Register は新規ユーザーを登録する。
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	// Get は指定IDのユーザーを取得する。
	Get(ctx context.Context, userID string) (*model.User, error)
	// List は全ユーザーを返す。
	List(ctx context.Context) ([]*model.User, error)
	// Withdraw はユーザーの退会処理を実行する。
	Withdraw(ctx context.Context, userID string) error
	// RecordLogin はログインイベントを記録する。
	RecordLogin(ctx context.Context, userID string) (*model.LoginLog, error)
	// ListLogins はログインイベントを新しい順で返す。
	ListLogins(ctx context.Context, userID string) ([]*model.LoginLog, error)
	// RecordScore はテスト結果を記録する。
	RecordScore(ctx context.Context, userID string, kind model.ScoreKind, score int) (*model.ScoreRecord, error)
	// ListScores は指定種別のスコア記録を新しい順で返す。
	ListScores(ctx context.Context, userID string, kind model.ScoreKind) ([]*model.ScoreRecord, error)
}

// UserHandler はユーザー管理のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// registrationSchema は登録リクエストのバリデーションルール。
var registrationSchema = validate.Schema{
	Required: []string{"name", "email", "password"},
	Strings:  []string{"name", "email", "password"},
	Trimmed:  []string{"email", "password"},
	Sized: []validate.SizeBound{
		{Field: "name", Min: 1},
		{Field: "email", Min: 1},
		{Field: "password", Min: 6, Max: 30},
	},
}

// userResponse はユーザー情報のAPIレスポンス。
// パスワードハッシュは決して含めない。
type userResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// loginLogResponse はログインイベントのAPIレスポンス。
type loginLogResponse struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	LoggedAt time.Time `json:"loggedAt"`
}

// scoreResponse はスコア記録のAPIレスポンス。
type scoreResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Score      int       `json:"score"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Register はユーザー登録を処理する。
// POST /api/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIErrorResponse(w, &model.APIError{
			Code:    http.StatusBadRequest,
			Reason:  model.ReasonValidation,
			Message: "Malformed request body",
		})
		return
	}

	if apiErr := registrationSchema.Validate(body); apiErr != nil {
		writeAPIErrorResponse(w, apiErr)
		return
	}

	user, err := h.service.Register(r.Context(),
		validate.String(body, "name"),
		validate.String(body, "email"),
		validate.String(body, "password"),
	)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toUserResponse(user))
}

// List は全ユーザーの一覧を返す。
// GET /api/users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]userResponse, len(users))
	for i, u := range users {
		results[i] = toUserResponse(u)
	}
	writeJSONResponse(w, http.StatusOK, results)
}

// Get はユーザー詳細を取得する。
// GET /api/users/{id}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	user, err := h.service.Get(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toUserResponse(user))
}

// Withdraw はユーザーの退会処理を実行する。
// DELETE /api/users/{id}
func (h *UserHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	if err := h.service.Withdraw(r.Context(), userID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// userLogSchema はログイン記録リクエストのバリデーションルール。
var userLogSchema = validate.Schema{
	Required: []string{"userId"},
	Strings:  []string{"userId"},
}

// RecordLogin はログインイベントの記録を処理する。
// POST /api/users/user-log
func (h *UserHandler) RecordLogin(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIErrorResponse(w, &model.APIError{
			Code:    http.StatusBadRequest,
			Reason:  model.ReasonValidation,
			Message: "Malformed request body",
		})
		return
	}

	if apiErr := userLogSchema.Validate(body); apiErr != nil {
		writeAPIErrorResponse(w, apiErr)
		return
	}

	log, err := h.service.RecordLogin(r.Context(), validate.String(body, "userId"))
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toLoginLogResponse(log))
}

// ListLogins はユーザーのログインイベント一覧を返す。
// GET /api/users/user-log/{id}
func (h *UserHandler) ListLogins(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	logs, err := h.service.ListLogins(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]loginLogResponse, len(logs))
	for i, log := range logs {
		results[i] = toLoginLogResponse(log)
	}
	writeJSONResponse(w, http.StatusOK, results)
}

// scoreSchema はスコア記録リクエストのバリデーションルール。
// scoreは数値型のため、型チェックはdecodeScoreRequestで行う。
var scoreSchema = validate.Schema{
	Required: []string{"user", "score"},
	Strings:  []string{"user"},
}

// decodeScoreRequest はスコア記録リクエストを検証し、ユーザーIDとスコアを取り出す。
func decodeScoreRequest(r *http.Request) (userID string, score int, apiErr *model.APIError) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		return "", 0, &model.APIError{
			Code:    http.StatusBadRequest,
			Reason:  model.ReasonValidation,
			Message: "Malformed request body",
		}
	}

	if apiErr := scoreSchema.Validate(body); apiErr != nil {
		return "", 0, apiErr
	}

	// JSONの数値はfloat64としてデコードされる
	raw, ok := body["score"].(float64)
	if !ok {
		return "", 0, &model.APIError{
			Code:     http.StatusUnprocessableEntity,
			Reason:   model.ReasonValidation,
			Message:  "Incorrect field type: expected number",
			Location: "score",
		}
	}

	return validate.String(body, "user"), int(raw), nil
}

// RecordPracticeScore は練習テストの結果記録を処理する。
// POST /api/users/practice-test
func (h *UserHandler) RecordPracticeScore(w http.ResponseWriter, r *http.Request) {
	userID, score, apiErr := decodeScoreRequest(r)
	if apiErr != nil {
		writeAPIErrorResponse(w, apiErr)
		return
	}

	record, err := h.service.RecordScore(r.Context(), userID, model.ScoreKindPractice, score)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toScoreResponse(record))
}

// ListPracticeScores はユーザーの練習テスト結果一覧を返す。
// GET /api/users/practice-tests/{id}
func (h *UserHandler) ListPracticeScores(w http.ResponseWriter, r *http.Request) {
	h.listScores(w, r, model.ScoreKindPractice)
}

// RecordTestScore は本番テストの結果記録を処理する。
// POST /api/users/test
func (h *UserHandler) RecordTestScore(w http.ResponseWriter, r *http.Request) {
	userID, score, apiErr := decodeScoreRequest(r)
	if apiErr != nil {
		writeAPIErrorResponse(w, apiErr)
		return
	}

	record, err := h.service.RecordScore(r.Context(), userID, model.ScoreKindTest, score)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toScoreResponse(record))
}

// ListTestScores はユーザーの本番テスト結果一覧を返す。
// GET /api/users/test/{id}
func (h *UserHandler) ListTestScores(w http.ResponseWriter, r *http.Request) {
	h.listScores(w, r, model.ScoreKindTest)
}

// listScores は指定種別のスコア一覧を返す共通処理。
func (h *UserHandler) listScores(w http.ResponseWriter, r *http.Request, kind model.ScoreKind) {
	userID := chi.URLParam(r, "id")

	records, err := h.service.ListScores(r.Context(), userID, kind)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]scoreResponse, len(records))
	for i, record := range records {
		results[i] = toScoreResponse(record)
	}
	writeJSONResponse(w, http.StatusOK, results)
}

// toUserResponse はドメインのUserをAPIレスポンス型に変換する。
func toUserResponse(user *model.User) userResponse {
	return userResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	}
}

// toLoginLogResponse はドメインのLoginLogをAPIレスポンス型に変換する。
func toLoginLogResponse(log *model.LoginLog) loginLogResponse {
	return loginLogResponse{
		ID:       log.ID,
		UserID:   log.UserID,
		LoggedAt: log.LoggedAt,
	}
}

// toScoreResponse はドメインのScoreRecordをAPIレスポンス型に変換する。
func toScoreResponse(record *model.ScoreRecord) scoreResponse {
	return scoreResponse{
		ID:         record.ID,
		UserID:     record.UserID,
		Score:      record.Score,
		RecordedAt: record.RecordedAt,
	}
}
