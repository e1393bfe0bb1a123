// Package model はドメインモデルを定義する。
package model

import "time"

// NoteCard は音符学習用のノートカードを表す。
// NoteIDは楽譜上の音符の識別子であり、カード全体で一意。
type NoteCard struct {
	ID        string
	ImgURL    string
	NoteID    string
	Note      string
	Clef      string
	CreatedAt time.Time
}
