package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/notewise/internal/model"
)

// PostgresNoteCardRepo はPostgreSQLを使用したノートカードリポジトリ。
type PostgresNoteCardRepo struct {
	db *sql.DB
}

// NewPostgresNoteCardRepo はPostgresNoteCardRepoを生成する。
func NewPostgresNoteCardRepo(db *sql.DB) *PostgresNoteCardRepo {
	return &PostgresNoteCardRepo{db: db}
}

// FindByNoteID はnote_idの完全一致でカードを検索する。見つからない場合はnilを返す。
func (r *PostgresNoteCardRepo) FindByNoteID(ctx context.Context, noteID string) (*model.NoteCard, error) {
	card := &model.NoteCard{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, img_url, note_id, note, clef, created_at
		 FROM note_cards WHERE note_id = $1`,
		noteID,
	).Scan(&card.ID, &card.ImgURL, &card.NoteID, &card.Note, &card.Clef, &card.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find note card by note ID: %w", err)
	}

	return card, nil
}

// Create はノートカードを作成する。
func (r *PostgresNoteCardRepo) Create(ctx context.Context, card *model.NoteCard) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO note_cards (id, img_url, note_id, note, clef, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		card.ID, card.ImgURL, card.NoteID, card.Note, card.Clef, card.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert note card: %w", err)
	}

	return nil
}

// ListByClef は指定音部記号の全カードをnote_id順で返す。
func (r *PostgresNoteCardRepo) ListByClef(ctx context.Context, clef string) ([]*model.NoteCard, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, img_url, note_id, note, clef, created_at
		 FROM note_cards WHERE clef = $1 ORDER BY note_id`,
		clef,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list note cards by clef: %w", err)
	}
	defer rows.Close()

	var cards []*model.NoteCard
	for rows.Next() {
		card := &model.NoteCard{}
		if err := rows.Scan(&card.ID, &card.ImgURL, &card.NoteID, &card.Note, &card.Clef, &card.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan note card: %w", err)
		}
		cards = append(cards, card)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate note cards: %w", err)
	}

	return cards, nil
}

// compile-time interface check
var _ NoteCardRepository = (*PostgresNoteCardRepo)(nil)
