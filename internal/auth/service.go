package auth

import (
	"context"
	"fmt"

	"github.com/hitoshi/notewise/internal/model"
)

// CredentialStore はログイン時のユーザー解決に必要なインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type CredentialStore interface {
	// FindByEmail はメールアドレスの完全一致でユーザーを検索する。
	// 見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// Metrics は認証結果のメトリクス記録のインターフェース。
type Metrics interface {
	RecordLoginSuccess()
	RecordLoginFailure()
	RecordTokenIssued()
}

// nopMetrics はメトリクス未設定時のno-op実装。
type nopMetrics struct{}

func (nopMetrics) RecordLoginSuccess() {}
func (nopMetrics) RecordLoginFailure() {}
func (nopMetrics) RecordTokenIssued()  {}

// Service は認証フローのオーケストレーションを提供する。
// ログイン: 資格情報の検証 → トークン発行。
// リフレッシュ: 検証済みクレームからの再発行。
// 各リクエストは独立しており、サービス側に状態は残らない。
type Service struct {
	store   CredentialStore
	hasher  Hasher
	tokens  *TokenService
	metrics Metrics
}

// NewService はServiceを生成する。
// metricsにnilを渡した場合は記録を行わない。
func NewService(store CredentialStore, hasher Hasher, tokens *TokenService, metrics Metrics) *Service {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Service{
		store:   store,
		hasher:  hasher,
		tokens:  tokens,
		metrics: metrics,
	}
}

// Login はemail+passwordを検証し、成功時にユーザーとトークンを返す。
// 「メールアドレスが未登録」と「パスワード不一致」は同一のエラーを返し、
// どちらが誤っていたかを呼び出し元に漏らさない。
func (s *Service) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.store.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to find user by email: %w", err)
	}
	if user == nil {
		s.metrics.RecordLoginFailure()
		return nil, "", model.NewLoginFailedError()
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.metrics.RecordLoginFailure()
		return nil, "", model.NewLoginFailedError()
	}

	token, err := s.tokens.Issue(user.ToClaim())
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	s.metrics.RecordLoginSuccess()
	s.metrics.RecordTokenIssued()
	return user, token, nil
}

// RefreshToken は検証済みクレームに対して新しいトークンを発行する。
// クレームの内容は引き継ぎ、有効期限のみ現在時刻から再設定される。
// トークンの検証自体はミドルウェア層のTokenServiceが担う。
func (s *Service) RefreshToken(claim model.Claim) (string, error) {
	token, err := s.tokens.Issue(claim)
	if err != nil {
		return "", fmt.Errorf("failed to reissue token: %w", err)
	}

	s.metrics.RecordTokenIssued()
	return token, nil
}
