// Package user はユーザー管理のドメインロジックを提供する。
package user

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/notewise/internal/auth"
	"github.com/hitoshi/notewise/internal/model"
	"github.com/hitoshi/notewise/internal/repository"
)

// Sanitizer はテキストフィールドのサニタイズインターフェース。
type Sanitizer interface {
	SanitizeText(input string) string
}

// Metrics はユーザー登録のメトリクス記録のインターフェース。
type Metrics interface {
	RecordRegistration()
}

// nopMetrics はメトリクス未設定時のno-op実装。
type nopMetrics struct{}

func (nopMetrics) RecordRegistration() {}

// Service はユーザー管理のサービス層。
// 登録、取得、退会、およびログイン記録・スコア記録のビジネスロジックを提供する。
type Service struct {
	userRepo  repository.UserRepository
	loginRepo repository.LoginLogRepository
	scoreRepo repository.ScoreRepository
	hasher    auth.Hasher
	sanitizer Sanitizer
	metrics   Metrics
}

// NewService はServiceの新しいインスタンスを生成する。
// metricsにnilを渡した場合は記録を行わない。
func NewService(
	userRepo repository.UserRepository,
	loginRepo repository.LoginLogRepository,
	scoreRepo repository.ScoreRepository,
	hasher auth.Hasher,
	sanitizer Sanitizer,
	metrics Metrics,
) *Service {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Service{
		userRepo:  userRepo,
		loginRepo: loginRepo,
		scoreRepo: scoreRepo,
		hasher:    hasher,
		sanitizer: sanitizer,
		metrics:   metrics,
	}
}

// Register は新規ユーザーを登録する。
// メールアドレスが既に登録されている場合はNewEmailExistsErrorを返す。
// パスワードは平文では保存せず、bcryptハッシュのみを永続化する。
func (s *Service) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if existing != nil {
		return nil, model.NewEmailExistsError()
	}

	digest, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Name:         s.sanitizer.SanitizeText(name),
		UserName:     s.sanitizer.SanitizeText(name),
		Email:        email,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
	)

	s.metrics.RecordRegistration()
	return user, nil
}

// Get は指定IDのユーザーを取得する。
// 存在しない場合はNewUserNotFoundErrorを返す。
func (s *Service) Get(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}
	return user, nil
}

// List は全ユーザーを返す。
func (s *Service) List(ctx context.Context) ([]*model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Withdraw はユーザーの退会処理を実行する。
// login_logsとscore_recordsはCASCADE削除される。
func (s *Service) Withdraw(ctx context.Context, userID string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return model.NewUserNotFoundError()
	}

	if err := s.userRepo.DeleteByID(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	slog.Info("user withdrawn",
		slog.String("user_id", userID),
	)

	return nil
}

// RecordLogin は指定ユーザーのログインイベントを記録する。
// ユーザーが存在しない場合はNewUserNotFoundErrorを返す。
func (s *Service) RecordLogin(ctx context.Context, userID string) (*model.LoginLog, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	log := &model.LoginLog{
		ID:       uuid.New().String(),
		UserID:   userID,
		LoggedAt: time.Now(),
	}
	if err := s.loginRepo.Create(ctx, log); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}
	return log, nil
}

// ListLogins は指定ユーザーのログインイベントを新しい順で返す。
func (s *Service) ListLogins(ctx context.Context, userID string) ([]*model.LoginLog, error) {
	logs, err := s.loginRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list login logs: %w", err)
	}
	return logs, nil
}

// RecordScore は指定ユーザーのテスト結果を記録する。
// ユーザーが存在しない場合はNewUserNotFoundErrorを返す。
func (s *Service) RecordScore(ctx context.Context, userID string, kind model.ScoreKind, score int) (*model.ScoreRecord, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	record := &model.ScoreRecord{
		ID:         uuid.New().String(),
		UserID:     userID,
		Kind:       kind,
		Score:      score,
		RecordedAt: time.Now(),
	}
	if err := s.scoreRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record score: %w", err)
	}
	return record, nil
}

// ListScores は指定ユーザー・種別のスコア記録を新しい順で返す。
func (s *Service) ListScores(ctx context.Context, userID string, kind model.ScoreKind) ([]*model.ScoreRecord, error) {
	records, err := s.scoreRepo.ListByUserAndKind(ctx, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to list scores: %w", err)
	}
	return records, nil
}
