package notecard

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hitoshi/notewise/internal/model"
)

// --- モック ---

type mockCardRepo struct {
	findByNoteIDFn func(ctx context.Context, noteID string) (*model.NoteCard, error)
	createFn       func(ctx context.Context, card *model.NoteCard) error
	listByClefFn   func(ctx context.Context, clef string) ([]*model.NoteCard, error)
}

func (m *mockCardRepo) FindByNoteID(ctx context.Context, noteID string) (*model.NoteCard, error) {
	if m.findByNoteIDFn != nil {
		return m.findByNoteIDFn(ctx, noteID)
	}
	return nil, nil
}
func (m *mockCardRepo) Create(ctx context.Context, card *model.NoteCard) error {
	if m.createFn != nil {
		return m.createFn(ctx, card)
	}
	return nil
}
func (m *mockCardRepo) ListByClef(ctx context.Context, clef string) ([]*model.NoteCard, error) {
	if m.listByClefFn != nil {
		return m.listByClefFn(ctx, clef)
	}
	return nil, nil
}

type mockImageGuard struct {
	validateFn  func(rawURL string) error
	reachableFn func(ctx context.Context, rawURL string) error
}

func (m *mockImageGuard) ValidateURL(rawURL string) error {
	if m.validateFn != nil {
		return m.validateFn(rawURL)
	}
	return nil
}
func (m *mockImageGuard) CheckReachable(ctx context.Context, rawURL string) error {
	if m.reachableFn != nil {
		return m.reachableFn(ctx, rawURL)
	}
	return nil
}

type passthroughSanitizer struct{}

func (passthroughSanitizer) SanitizeText(input string) string { return input }

// --- テスト ---

// TestService_Create は新規カード作成が成功することを検証する。
func TestService_Create(t *testing.T) {
	var created *model.NoteCard
	cardRepo := &mockCardRepo{
		createFn: func(ctx context.Context, card *model.NoteCard) error {
			created = card
			return nil
		},
	}

	svc := NewService(cardRepo, &mockImageGuard{}, passthroughSanitizer{}, nil, false)

	card, err := svc.Create(context.Background(), "https://cdn.example.com/g4.png", "treble-g4", "G4", "treble")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created == nil {
		t.Fatal("expected Create to be called on repository")
	}
	if card.ID == "" {
		t.Error("expected non-empty card ID")
	}
	if card.NoteID != "treble-g4" {
		t.Errorf("NoteID = %q, want %q", card.NoteID, "treble-g4")
	}
	if card.Clef != "treble" {
		t.Errorf("Clef = %q, want %q", card.Clef, "treble")
	}
	if card.CreatedAt.IsZero() {
		t.Error("expected CreatedAt to be set")
	}
}

// TestService_Create_Duplicate はnoteId重複がエラーになることを検証する。
func TestService_Create_Duplicate(t *testing.T) {
	cardRepo := &mockCardRepo{
		findByNoteIDFn: func(ctx context.Context, noteID string) (*model.NoteCard, error) {
			return &model.NoteCard{ID: "card-1", NoteID: noteID}, nil
		},
		createFn: func(ctx context.Context, card *model.NoteCard) error {
			t.Fatal("Create must not be called for duplicate noteId")
			return nil
		},
	}

	svc := NewService(cardRepo, &mockImageGuard{}, passthroughSanitizer{}, nil, false)

	_, err := svc.Create(context.Background(), "https://cdn.example.com/g4.png", "treble-g4", "G4", "treble")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Message != "Note Card already exists" {
		t.Errorf("Message = %q, want %q", apiErr.Message, "Note Card already exists")
	}
	if apiErr.Location != "noteId" {
		t.Errorf("Location = %q, want %q", apiErr.Location, "noteId")
	}
}

// TestService_Create_InvalidImageURL は危険な画像URLが拒否されることを検証する。
func TestService_Create_InvalidImageURL(t *testing.T) {
	guard := &mockImageGuard{
		validateFn: func(rawURL string) error {
			return fmt.Errorf("blocked IP address: 127.0.0.1")
		},
	}

	svc := NewService(&mockCardRepo{}, guard, passthroughSanitizer{}, nil, false)

	_, err := svc.Create(context.Background(), "http://127.0.0.1/g4.png", "treble-g4", "G4", "treble")
	var apiErr *model.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Reason != model.ReasonValidation {
		t.Errorf("Reason = %q, want %q", apiErr.Reason, model.ReasonValidation)
	}
	if apiErr.Location != "imgUrl" {
		t.Errorf("Location = %q, want %q", apiErr.Location, "imgUrl")
	}
}

// TestService_Create_ReachabilityCheck は到達可能性チェックが有効な場合のみ実行されることを検証する。
func TestService_Create_ReachabilityCheck(t *testing.T) {
	t.Run("checkReachable有効時は到達不能でエラー", func(t *testing.T) {
		guard := &mockImageGuard{
			reachableFn: func(ctx context.Context, rawURL string) error {
				return fmt.Errorf("image URL returned status 404")
			},
		}

		svc := NewService(&mockCardRepo{}, guard, passthroughSanitizer{}, nil, true)

		_, err := svc.Create(context.Background(), "https://cdn.example.com/missing.png", "treble-g4", "G4", "treble")
		var apiErr *model.APIError
		if !errors.As(err, &apiErr) {
			t.Fatalf("expected APIError, got %v", err)
		}
	})

	t.Run("checkReachable無効時は到達性を確認しない", func(t *testing.T) {
		guard := &mockImageGuard{
			reachableFn: func(ctx context.Context, rawURL string) error {
				t.Fatal("CheckReachable must not be called when disabled")
				return nil
			},
		}

		svc := NewService(&mockCardRepo{}, guard, passthroughSanitizer{}, nil, false)

		if _, err := svc.Create(context.Background(), "https://cdn.example.com/g4.png", "treble-g4", "G4", "treble"); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	})
}

// TestService_Create_SanitizesTextFields はテキストフィールドがサニタイズされることを検証する。
func TestService_Create_SanitizesTextFields(t *testing.T) {
	var created *model.NoteCard
	cardRepo := &mockCardRepo{
		createFn: func(ctx context.Context, card *model.NoteCard) error {
			created = card
			return nil
		},
	}

	svc := NewService(cardRepo, &mockImageGuard{},
		sanitizerFunc(func(input string) string { return "clean" }), nil, false)

	if _, err := svc.Create(context.Background(), "https://cdn.example.com/g4.png", "<b>id</b>", "<i>G4</i>", "treble"); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.NoteID != "clean" || created.Note != "clean" || created.Clef != "clean" {
		t.Errorf("expected sanitized fields, got NoteID=%q Note=%q Clef=%q", created.NoteID, created.Note, created.Clef)
	}
}

type sanitizerFunc func(input string) string

func (f sanitizerFunc) SanitizeText(input string) string { return f(input) }

// TestService_ListByClef は音部記号での絞り込み一覧が返ることを検証する。
func TestService_ListByClef(t *testing.T) {
	var requestedClef string
	cardRepo := &mockCardRepo{
		listByClefFn: func(ctx context.Context, clef string) ([]*model.NoteCard, error) {
			requestedClef = clef
			return []*model.NoteCard{
				{ID: "card-1", NoteID: "bass-f3", Clef: clef},
				{ID: "card-2", NoteID: "bass-c3", Clef: clef},
			}, nil
		},
	}

	svc := NewService(cardRepo, &mockImageGuard{}, passthroughSanitizer{}, nil, false)

	cards, err := svc.ListByClef(context.Background(), "bass")
	if err != nil {
		t.Fatalf("ListByClef returned error: %v", err)
	}
	if requestedClef != "bass" {
		t.Errorf("requested clef = %q, want %q", requestedClef, "bass")
	}
	if len(cards) != 2 {
		t.Fatalf("len(cards) = %d, want 2", len(cards))
	}
}
