package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/hitoshi/notewise/internal/model"
)

// PostgresLoginLogRepo はPostgreSQLを使用したログインイベントリポジトリ。
type PostgresLoginLogRepo struct {
	db *sql.DB
}

// NewPostgresLoginLogRepo はPostgresLoginLogRepoを生成する。
func NewPostgresLoginLogRepo(db *sql.DB) *PostgresLoginLogRepo {
	return &PostgresLoginLogRepo{db: db}
}

// Create はログインイベントを記録する。
func (r *PostgresLoginLogRepo) Create(ctx context.Context, log *model.LoginLog) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO login_logs (id, user_id, logged_at) VALUES ($1, $2, $3)`,
		log.ID, log.UserID, log.LoggedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert login log: %w", err)
	}

	return nil
}

// ListByUserID は指定ユーザーのログインイベントを新しい順で返す。
func (r *PostgresLoginLogRepo) ListByUserID(ctx context.Context, userID string) ([]*model.LoginLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, logged_at FROM login_logs
		 WHERE user_id = $1 ORDER BY logged_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list login logs: %w", err)
	}
	defer rows.Close()

	var logs []*model.LoginLog
	for rows.Next() {
		log := &model.LoginLog{}
		if err := rows.Scan(&log.ID, &log.UserID, &log.LoggedAt); err != nil {
			return nil, fmt.Errorf("failed to scan login log: %w", err)
		}
		logs = append(logs, log)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate login logs: %w", err)
	}

	return logs, nil
}

// PostgresScoreRepo はPostgreSQLを使用したスコア記録リポジトリ。
type PostgresScoreRepo struct {
	db *sql.DB
}

// NewPostgresScoreRepo はPostgresScoreRepoを生成する。
func NewPostgresScoreRepo(db *sql.DB) *PostgresScoreRepo {
	return &PostgresScoreRepo{db: db}
}

// Create はスコア記録を作成する。
func (r *PostgresScoreRepo) Create(ctx context.Context, record *model.ScoreRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO score_records (id, user_id, kind, score, recorded_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		record.ID, record.UserID, string(record.Kind), record.Score, record.RecordedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert score record: %w", err)
	}

	return nil
}

// ListByUserAndKind は指定ユーザー・種別のスコア記録を新しい順で返す。
func (r *PostgresScoreRepo) ListByUserAndKind(ctx context.Context, userID string, kind model.ScoreKind) ([]*model.ScoreRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, kind, score, recorded_at FROM score_records
		 WHERE user_id = $1 AND kind = $2 ORDER BY recorded_at DESC`,
		userID, string(kind),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list score records: %w", err)
	}
	defer rows.Close()

	var records []*model.ScoreRecord
	for rows.Next() {
		record := &model.ScoreRecord{}
		var kindStr string
		if err := rows.Scan(&record.ID, &record.UserID, &kindStr, &record.Score, &record.RecordedAt); err != nil {
			return nil, fmt.Errorf("failed to scan score record: %w", err)
		}
		record.Kind = model.ScoreKind(kindStr)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate score records: %w", err)
	}

	return records, nil
}

// compile-time interface checks
var (
	_ LoginLogRepository = (*PostgresLoginLogRepo)(nil)
	_ ScoreRepository    = (*PostgresScoreRepo)(nil)
)
