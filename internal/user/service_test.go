package user

import (
	"context"
	"errors"
	"testing"

	"github.com/hitoshi/notewise/internal/model"
)

// --- モック ---

type mockUserRepo struct {
	findByIDFn    func(ctx context.Context, id string) (*model.User, error)
	findByEmailFn func(ctx context.Context, email string) (*model.User, error)
	createFn      func(ctx context.Context, user *model.User) error
	listFn        func(ctx context.Context) ([]*model.User, error)
	deleteByIDFn  func(ctx context.Context, id string) error
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}
func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	if m.findByEmailFn != nil {
		return m.findByEmailFn(ctx, email)
	}
	return nil, nil
}
func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	if m.createFn != nil {
		return m.createFn(ctx, user)
	}
	return nil
}
func (m *mockUserRepo) List(ctx context.Context) ([]*model.User, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}
func (m *mockUserRepo) DeleteByID(ctx context.Context, id string) error {
	if m.deleteByIDFn != nil {
		return m.deleteByIDFn(ctx, id)
	}
	return nil
}

type mockLoginLogRepo struct {
	createFn       func(ctx context.Context, log *model.LoginLog) error
	listByUserIDFn func(ctx context.Context, userID string) ([]*model.LoginLog, error)
}

func (m *mockLoginLogRepo) Create(ctx context.Context, log *model.LoginLog) error {
	if m.createFn != nil {
		return m.createFn(ctx, log)
	}
	return nil
}
func (m *mockLoginLogRepo) ListByUserID(ctx context.Context, userID string) ([]*model.LoginLog, error) {
	if m.listByUserIDFn != nil {
		return m.listByUserIDFn(ctx, userID)
	}
	return nil, nil
}

type mockScoreRepo struct {
	createFn            func(ctx context.Context, record *model.ScoreRecord) error
	listByUserAndKindFn func(ctx context.Context, userID string, kind model.ScoreKind) ([]*model.ScoreRecord, error)
}

func (m *mockScoreRepo) Create(ctx context.Context, record *model.ScoreRecord) error {
	if m.createFn != nil {
		return m.createFn(ctx, record)
	}
	return nil
}
func (m *mockScoreRepo) ListByUserAndKind(ctx context.Context, userID string, kind model.ScoreKind) ([]*model.ScoreRecord, error) {
	if m.listByUserAndKindFn != nil {
		return m.listByUserAndKindFn(ctx, userID, kind)
	}
	return nil, nil
}

type mockHasher struct {
	hashFn func(plaintext string) (string, error)
}

func (m *mockHasher) Hash(plaintext string) (string, error) {
	if m.hashFn != nil {
		return m.hashFn(plaintext)
	}
	return "hashed:" + plaintext, nil
}
func (m *mockHasher) Verify(plaintext, digest string) bool {
	return digest == "hashed:"+plaintext
}

type passthroughSanitizer struct{}

func (passthroughSanitizer) SanitizeText(input string) string { return input }

func newTestService(userRepo *mockUserRepo, loginRepo *mockLoginLogRepo, scoreRepo *mockScoreRepo) *Service {
	return NewService(userRepo, loginRepo, scoreRepo, &mockHasher{}, passthroughSanitizer{}, nil)
}

// --- テスト ---

// TestService_Register は新規ユーザー登録が成功することを検証する。
func TestService_Register(t *testing.T) {
	var created *model.User
	userRepo := &mockUserRepo{
		createFn: func(ctx context.Context, user *model.User) error {
			created = user
			return nil
		},
	}

	svc := newTestService(userRepo, &mockLoginLogRepo{}, &mockScoreRepo{})

	user, err := svc.Register(context.Background(), "Hanako", "hanako@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if created == nil {
		t.Fatal("expected Create to be called")
	}
	if user.ID == "" {
		t.Error("expected non-empty user ID")
	}
	if user.Name != "Hanako" {
		t.Errorf("Name = %q, want %q", user.Name, "Hanako")
	}
	if user.Email != "hanako@example.com" {
		t.Errorf("Email = %q, want %q", user.Email, "hanako@example.com")
	}
	if user.PasswordHash == "secret1" {
		t.Error("password must not be stored as plaintext")
	}
	if user.PasswordHash != "hashed:secret1" {
		t.Errorf("PasswordHash = %q, want hashed value", user.PasswordHash)
	}
}

// TestService_Register_EmailExists はメールアドレス重複がエラーになることを検証する。
func TestService_Register_EmailExists(t *testing.T) {
	userRepo := &mockUserRepo{
		findByEmailFn: func(ctx context.Context, email string) (*model.User, error) {
			return &model.User{ID: "user-1", Email: email}, nil
		},
		createFn: func(ctx context.Context, user *model.User) error {
			t.Fatal("Create must not be called for duplicate email")
			return nil
		},
	}

	svc := newTestService(userRepo, &mockLoginLogRepo{}, &mockScoreRepo{})

	_, err := svc.Register(context.Background(), "Hanako", "hanako@example.com", "secret1")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Email exists already" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Email exists already")
	}
	if apiErr.Location != "email" {
		t.Errorf("Location = %q, want %q", apiErr.Location, "email")
	}
}

// TestService_Register_SanitizesName は名前フィールドがサニタイズされることを検証する。
func TestService_Register_SanitizesName(t *testing.T) {
	userRepo := &mockUserRepo{}
	svc := NewService(userRepo, &mockLoginLogRepo{}, &mockScoreRepo{}, &mockHasher{},
		sanitizerFunc(func(input string) string { return "clean" }), nil)

	user, err := svc.Register(context.Background(), "<b>Hanako</b>", "hanako@example.com", "secret1")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Name != "clean" {
		t.Errorf("Name = %q, want sanitized value", user.Name)
	}
}

type sanitizerFunc func(input string) string

func (f sanitizerFunc) SanitizeText(input string) string { return f(input) }

// TestService_Get_NotFound は存在しないユーザーの取得がエラーになることを検証する。
func TestService_Get_NotFound(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockLoginLogRepo{}, &mockScoreRepo{})

	_, err := svc.Get(context.Background(), "nonexistent-user")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "User does not exist" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "User does not exist")
	}
}

// TestService_Withdraw は退会処理がユーザーを削除することを検証する。
func TestService_Withdraw(t *testing.T) {
	deleteCalled := false
	userRepo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Email: "test@example.com"}, nil
		},
		deleteByIDFn: func(ctx context.Context, id string) error {
			deleteCalled = true
			return nil
		},
	}

	svc := newTestService(userRepo, &mockLoginLogRepo{}, &mockScoreRepo{})

	if err := svc.Withdraw(context.Background(), "user-1"); err != nil {
		t.Fatalf("Withdraw returned error: %v", err)
	}
	if !deleteCalled {
		t.Error("expected user DeleteByID to be called")
	}
}

// TestService_Withdraw_UserNotFound は存在しないユーザーの退会がエラーになることを検証する。
func TestService_Withdraw_UserNotFound(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockLoginLogRepo{}, &mockScoreRepo{})

	if err := svc.Withdraw(context.Background(), "nonexistent-user"); err == nil {
		t.Fatal("expected error for nonexistent user, got nil")
	}
}

// TestService_RecordLogin はログインイベントが記録されることを検証する。
func TestService_RecordLogin(t *testing.T) {
	var created *model.LoginLog
	userRepo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
	}
	loginRepo := &mockLoginLogRepo{
		createFn: func(ctx context.Context, log *model.LoginLog) error {
			created = log
			return nil
		},
	}

	svc := newTestService(userRepo, loginRepo, &mockScoreRepo{})

	log, err := svc.RecordLogin(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("RecordLogin returned error: %v", err)
	}
	if created == nil {
		t.Fatal("expected login log Create to be called")
	}
	if log.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", log.UserID, "user-1")
	}
	if log.ID == "" {
		t.Error("expected non-empty log ID")
	}
	if log.LoggedAt.IsZero() {
		t.Error("expected LoggedAt to be set")
	}
}

// TestService_RecordLogin_UserNotFound は存在しないユーザーのログイン記録がエラーになることを検証する。
func TestService_RecordLogin_UserNotFound(t *testing.T) {
	svc := newTestService(&mockUserRepo{}, &mockLoginLogRepo{}, &mockScoreRepo{})

	if _, err := svc.RecordLogin(context.Background(), "nonexistent-user"); err == nil {
		t.Fatal("expected error for nonexistent user, got nil")
	}
}

// TestService_RecordScore はスコア記録が種別つきで永続化されることを検証する。
func TestService_RecordScore(t *testing.T) {
	var created *model.ScoreRecord
	userRepo := &mockUserRepo{
		findByIDFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id}, nil
		},
	}
	scoreRepo := &mockScoreRepo{
		createFn: func(ctx context.Context, record *model.ScoreRecord) error {
			created = record
			return nil
		},
	}

	svc := newTestService(userRepo, &mockLoginLogRepo{}, scoreRepo)

	record, err := svc.RecordScore(context.Background(), "user-1", model.ScoreKindPractice, 85)
	if err != nil {
		t.Fatalf("RecordScore returned error: %v", err)
	}
	if created == nil {
		t.Fatal("expected score Create to be called")
	}
	if record.Kind != model.ScoreKindPractice {
		t.Errorf("Kind = %q, want %q", record.Kind, model.ScoreKindPractice)
	}
	if record.Score != 85 {
		t.Errorf("Score = %d, want 85", record.Score)
	}
}

// TestService_ListScores は種別で絞り込まれたスコア一覧が返ることを検証する。
func TestService_ListScores(t *testing.T) {
	var requestedKind model.ScoreKind
	scoreRepo := &mockScoreRepo{
		listByUserAndKindFn: func(ctx context.Context, userID string, kind model.ScoreKind) ([]*model.ScoreRecord, error) {
			requestedKind = kind
			return []*model.ScoreRecord{
				{ID: "rec-1", UserID: userID, Kind: kind, Score: 90},
			}, nil
		},
	}

	svc := newTestService(&mockUserRepo{}, &mockLoginLogRepo{}, scoreRepo)

	records, err := svc.ListScores(context.Background(), "user-1", model.ScoreKindTest)
	if err != nil {
		t.Fatalf("ListScores returned error: %v", err)
	}
	if requestedKind != model.ScoreKindTest {
		t.Errorf("requested kind = %q, want %q", requestedKind, model.ScoreKindTest)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}
}
