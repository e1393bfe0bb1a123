package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// InputSanitizerService はユーザー入力のサニタイズのインターフェースを定義する。
// ユーザー名やカードのテキストフィールドはプレーンテキストとして保存するため、
// HTMLタグを全て除去する。
type InputSanitizerService interface {
	// SanitizeText はHTMLタグを全て除去し、プレーンテキストを返す。
	SanitizeText(input string) string
}

// inputSanitizer はbluemondayを使用したInputSanitizerServiceの実装。
type inputSanitizer struct {
	policy *bluemonday.Policy
}

// NewInputSanitizer はInputSanitizerServiceの新しいインスタンスを生成する。
func NewInputSanitizer() *inputSanitizer {
	return &inputSanitizer{
		// StrictPolicyは全てのHTMLタグを除去する
		policy: bluemonday.StrictPolicy(),
	}
}

// SanitizeText はHTMLタグを全て除去し、プレーンテキストを返す。
// bluemondayはエンティティをエスケープした状態で返すため、
// プレーンテキストとして保存するためにアンエスケープする。
func (s *inputSanitizer) SanitizeText(input string) string {
	sanitized := s.policy.Sanitize(input)
	return strings.TrimSpace(html.UnescapeString(sanitized))
}
