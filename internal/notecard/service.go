// Package notecard はノートカードの管理機能を提供する。
package notecard

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/notewise/internal/model"
	"github.com/hitoshi/notewise/internal/repository"
	"github.com/hitoshi/notewise/internal/security"
)

// Sanitizer はテキストフィールドのサニタイズインターフェース。
type Sanitizer interface {
	SanitizeText(input string) string
}

// Metrics はカード作成のメトリクス記録のインターフェース。
type Metrics interface {
	RecordCardCreated()
}

// nopMetrics はメトリクス未設定時のno-op実装。
type nopMetrics struct{}

func (nopMetrics) RecordCardCreated() {}

// Service はノートカードの作成・一覧のサービス層。
type Service struct {
	cardRepo       repository.NoteCardRepository
	imageGuard     security.ImageURLGuardService
	sanitizer      Sanitizer
	metrics        Metrics
	checkReachable bool
}

// NewService はServiceの新しいインスタンスを生成する。
// checkReachableがtrueの場合、カード作成時に画像URLへの到達可能性も確認する。
// metricsにnilを渡した場合は記録を行わない。
func NewService(
	cardRepo repository.NoteCardRepository,
	imageGuard security.ImageURLGuardService,
	sanitizer Sanitizer,
	metrics Metrics,
	checkReachable bool,
) *Service {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &Service{
		cardRepo:       cardRepo,
		imageGuard:     imageGuard,
		sanitizer:      sanitizer,
		metrics:        metrics,
		checkReachable: checkReachable,
	}
}

// Create は新規ノートカードを作成する。
// noteIdが既存カードと重複する場合はNewDuplicateNoteCardErrorを返す。
// 画像URLは安全性検証を通過する必要がある。
func (s *Service) Create(ctx context.Context, imgURL, noteID, note, clef string) (*model.NoteCard, error) {
	existing, err := s.cardRepo.FindByNoteID(ctx, noteID)
	if err != nil {
		return nil, fmt.Errorf("failed to check note card uniqueness: %w", err)
	}
	if existing != nil {
		return nil, model.NewDuplicateNoteCardError()
	}

	if err := s.imageGuard.ValidateURL(imgURL); err != nil {
		return nil, model.NewInvalidImageURLError(err.Error())
	}
	if s.checkReachable {
		if err := s.imageGuard.CheckReachable(ctx, imgURL); err != nil {
			return nil, model.NewInvalidImageURLError(err.Error())
		}
	}

	card := &model.NoteCard{
		ID:        uuid.New().String(),
		ImgURL:    imgURL,
		NoteID:    s.sanitizer.SanitizeText(noteID),
		Note:      s.sanitizer.SanitizeText(note),
		Clef:      s.sanitizer.SanitizeText(clef),
		CreatedAt: time.Now(),
	}

	if err := s.cardRepo.Create(ctx, card); err != nil {
		return nil, fmt.Errorf("failed to create note card: %w", err)
	}

	slog.Info("note card created",
		slog.String("card_id", card.ID),
		slog.String("note_id", card.NoteID),
		slog.String("clef", card.Clef),
	)

	s.metrics.RecordCardCreated()
	return card, nil
}

// ListByClef は指定音部記号の全カードを返す。
func (s *Service) ListByClef(ctx context.Context, clef string) ([]*model.NoteCard, error) {
	cards, err := s.cardRepo.ListByClef(ctx, clef)
	if err != nil {
		return nil, fmt.Errorf("failed to list note cards: %w", err)
	}
	return cards, nil
}
