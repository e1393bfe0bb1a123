// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/hitoshi/notewise/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail はメールアドレスの完全一致でユーザーを検索する。
	// 見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error

	// List は全ユーザーを作成日時順で返す。
	List(ctx context.Context) ([]*model.User, error)

	// DeleteByID は指定IDのユーザーを削除する。
	// 関連するlogin_logs、score_recordsはCASCADE削除される。
	// ユーザーが存在しない場合はエラーを返す。
	DeleteByID(ctx context.Context, id string) error
}

// NoteCardRepository はノートカードデータの永続化インターフェース。
type NoteCardRepository interface {
	// FindByNoteID はnote_idの完全一致でカードを検索する。見つからない場合はnilを返す。
	FindByNoteID(ctx context.Context, noteID string) (*model.NoteCard, error)

	// Create はノートカードを作成する。
	Create(ctx context.Context, card *model.NoteCard) error

	// ListByClef は指定音部記号の全カードを返す。
	ListByClef(ctx context.Context, clef string) ([]*model.NoteCard, error)
}

// LoginLogRepository はログインイベントの永続化インターフェース。
type LoginLogRepository interface {
	// Create はログインイベントを記録する。
	Create(ctx context.Context, log *model.LoginLog) error

	// ListByUserID は指定ユーザーのログインイベントを新しい順で返す。
	ListByUserID(ctx context.Context, userID string) ([]*model.LoginLog, error)
}

// ScoreRepository はテスト結果の永続化インターフェース。
type ScoreRepository interface {
	// Create はスコア記録を作成する。
	Create(ctx context.Context, record *model.ScoreRecord) error

	// ListByUserAndKind は指定ユーザー・種別のスコア記録を新しい順で返す。
	ListByUserAndKind(ctx context.Context, userID string, kind model.ScoreKind) ([]*model.ScoreRecord, error)
}
