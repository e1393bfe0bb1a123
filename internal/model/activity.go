// Package model はドメインモデルを定義する。
package model

import "time"

// LoginLog はユーザーのログインイベントを表す。
type LoginLog struct {
	ID       string
	UserID   string
	LoggedAt time.Time
}

// ScoreKind はスコア記録の種別を表す。
type ScoreKind string

const (
	// ScoreKindPractice は練習テストのスコア記録。
	ScoreKindPractice ScoreKind = "practice"
	// ScoreKindTest は本番テストのスコア記録。
	ScoreKindTest ScoreKind = "test"
)

// ScoreRecord はユーザーのテスト結果を表す。
type ScoreRecord struct {
	ID         string
	UserID     string
	Kind       ScoreKind
	Score      int
	RecordedAt time.Time
}
