// Package model はドメインモデルを定義する。
package model

import (
	"fmt"
	"net/http"
)

// エラー種別（reason）の判別子。
// ハンドラー層はreasonを検査して既知のエラーをHTTPステータスに対応付ける。
const (
	// ReasonValidation はクライアント入力の形式・内容の不備を表す。
	ReasonValidation = "ValidationError"
	// ReasonAuthentication は資格情報またはトークンの拒否を表す。
	// メッセージは原因を特定させない内容に統一する（ユーザー列挙攻撃の防止）。
	ReasonAuthentication = "AuthenticationError"
)

// APIError は統一エラーフォーマットを表す。
// reasonが判別子として機能し、locationは違反したフィールド名を示す。
type APIError struct {
	Code     int    `json:"code"`
	Reason   string `json:"reason"`
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	if e.Location != "" {
		return fmt.Sprintf("[%s] %s (location: %s)", e.Reason, e.Message, e.Location)
	}
	return fmt.Sprintf("[%s] %s", e.Reason, e.Message)
}

// NewMissingFieldError は必須フィールド欠落エラーを生成する。
func NewMissingFieldError(field string) *APIError {
	return &APIError{
		Code:     http.StatusUnprocessableEntity,
		Reason:   ReasonValidation,
		Message:  "Missing field",
		Location: field,
	}
}

// NewFieldTypeError は文字列型でないフィールドに対するエラーを生成する。
func NewFieldTypeError(field string) *APIError {
	return &APIError{
		Code:     http.StatusUnprocessableEntity,
		Reason:   ReasonValidation,
		Message:  "Incorrect field type: expected string",
		Location: field,
	}
}

// NewUntrimmedFieldError は前後に空白を含むフィールドに対するエラーを生成する。
func NewUntrimmedFieldError(field string) *APIError {
	return &APIError{
		Code:     http.StatusUnprocessableEntity,
		Reason:   ReasonValidation,
		Message:  "Cannot start or end with whitespace",
		Location: field,
	}
}

// NewFieldTooSmallError は最小長未満のフィールドに対するエラーを生成する。
func NewFieldTooSmallError(field string, min int) *APIError {
	return &APIError{
		Code:     http.StatusUnprocessableEntity,
		Reason:   ReasonValidation,
		Message:  fmt.Sprintf("Must be at least %d characters long", min),
		Location: field,
	}
}

// NewFieldTooLargeError は最大長超過のフィールドに対するエラーを生成する。
func NewFieldTooLargeError(field string, max int) *APIError {
	return &APIError{
		Code:     http.StatusUnprocessableEntity,
		Reason:   ReasonValidation,
		Message:  fmt.Sprintf("Must be at most %d characters long", max),
		Location: field,
	}
}

// NewEmailExistsError はメールアドレス重複エラーを生成する。
func NewEmailExistsError() *APIError {
	return &APIError{
		Code:     http.StatusUnprocessableEntity,
		Reason:   ReasonValidation,
		Message:  "Email exists already",
		Location: "email",
	}
}

// NewDuplicateNoteCardError はノートカード重複エラーを生成する。
func NewDuplicateNoteCardError() *APIError {
	return &APIError{
		Code:     http.StatusUnprocessableEntity,
		Reason:   ReasonValidation,
		Message:  "Note Card already exists",
		Location: "noteId",
	}
}

// NewInvalidImageURLError は画像URLが安全性検証を通らない場合のエラーを生成する。
func NewInvalidImageURLError(reason string) *APIError {
	return &APIError{
		Code:     http.StatusUnprocessableEntity,
		Reason:   ReasonValidation,
		Message:  fmt.Sprintf("Invalid image URL: %s", reason),
		Location: "imgUrl",
	}
}

// NewUserNotFoundError はユーザーが存在しない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:    http.StatusUnprocessableEntity,
		Reason:  ReasonValidation,
		Message: "User does not exist",
	}
}

// NewLoginFailedError はログイン失敗エラーを生成する。
// 「メールアドレスが未登録」と「パスワード不一致」で意図的に同一のメッセージを返し、
// どちらが誤っていたかを漏らさない。
func NewLoginFailedError() *APIError {
	return &APIError{
		Code:    http.StatusUnauthorized,
		Reason:  ReasonAuthentication,
		Message: "Incorrect email or password",
	}
}

// NewInvalidTokenError は無効なトークンに対するエラーを生成する。
// 署名不正・アルゴリズム不一致・期限切れ・形式不正のいずれも区別せず同一の拒否とする。
func NewInvalidTokenError() *APIError {
	return &APIError{
		Code:    http.StatusUnauthorized,
		Reason:  ReasonAuthentication,
		Message: "Invalid or expired token",
	}
}

// NewMissingCredentialError はBearerトークンが提示されなかった場合のエラーを生成する。
func NewMissingCredentialError() *APIError {
	return &APIError{
		Code:    http.StatusUnauthorized,
		Reason:  ReasonAuthentication,
		Message: "Bearer token required",
	}
}
