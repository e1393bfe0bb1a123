// Package validate はリクエストボディの段階的バリデーションパイプラインを提供する。
//
// チェックは 必須フィールド → 型 → 前後空白 → 長さ の固定順序で実行し、
// 最初の違反で打ち切る（複数エラーの集約は行わない）。
// 長さチェックでは最小長違反を最大長違反より優先する。
package validate

import (
	"strings"
	"unicode/utf8"

	"github.com/hitoshi/notewise/internal/model"
)

// SizeBound はフィールドの長さ制約を表す。
// MinまたはMaxが0の場合、その境界は制約なしとして扱う。
// 長さはトリム後の値に対して評価する。
type SizeBound struct {
	Field string
	Min   int
	Max   int
}

// Schema はリクエストボディに適用するバリデーションルールを宣言する。
// 各スライスの宣言順がエラー報告の優先順になる。
type Schema struct {
	Required []string
	Strings  []string
	Trimmed  []string
	Sized    []SizeBound
}

// Validate はbodyをスキーマに照らして検証する。
// 違反がない場合はnilを返す。違反があった場合は最初に検出した違反を
// フィールド名（location）付きの*model.APIErrorとして返す。
func (s Schema) Validate(body map[string]any) *model.APIError {
	// 1. 必須フィールドの存在チェック（宣言順で最初の欠落が勝つ）
	for _, field := range s.Required {
		if _, ok := body[field]; !ok {
			return model.NewMissingFieldError(field)
		}
	}

	// 2. 型チェック: 宣言済みフィールドが存在するなら文字列であること
	for _, field := range s.Strings {
		value, ok := body[field]
		if !ok {
			continue
		}
		if _, isString := value.(string); !isString {
			return model.NewFieldTypeError(field)
		}
	}

	// 3. トリムチェック: 前後の空白を拒否する（内部の空白は許容）
	for _, field := range s.Trimmed {
		value, ok := body[field].(string)
		if !ok {
			continue
		}
		if strings.TrimSpace(value) != value {
			return model.NewUntrimmedFieldError(field)
		}
	}

	// 4. 長さチェック: 全フィールドの最小長違反を先に評価し、
	// 最小長違反がひとつもない場合のみ最大長違反を評価する
	for _, bound := range s.Sized {
		if bound.Min <= 0 {
			continue
		}
		value, ok := body[bound.Field].(string)
		if !ok {
			continue
		}
		if utf8.RuneCountInString(strings.TrimSpace(value)) < bound.Min {
			return model.NewFieldTooSmallError(bound.Field, bound.Min)
		}
	}
	for _, bound := range s.Sized {
		if bound.Max <= 0 {
			continue
		}
		value, ok := body[bound.Field].(string)
		if !ok {
			continue
		}
		if utf8.RuneCountInString(strings.TrimSpace(value)) > bound.Max {
			return model.NewFieldTooLargeError(bound.Field, bound.Max)
		}
	}

	return nil
}

// String はbodyからフィールドをトリム済み文字列として取り出す。
// フィールドが存在しない、または文字列でない場合は空文字列を返す。
// Validate通過後の値の取り出しに使用する。
func String(body map[string]any, field string) string {
	value, ok := body[field].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}
