package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/notewise/internal/model"
	"github.com/hitoshi/notewise/internal/validate"
)

// NoteCardServiceInterface はノートカードハンドラーが必要とするサービスインターフェース。
type NoteCardServiceInterface interface {
	// Create は新規ノートカードを作成する。
	Create(ctx context.Context, imgURL, noteID, note, clef string) (*model.NoteCard, error)
	// ListByClef は指定音部記号の全カードを返す。
	ListByClef(ctx context.Context, clef string) ([]*model.NoteCard, error)
}

// NoteCardHandler はノートカード管理のHTTPハンドラー。
type NoteCardHandler struct {
	service NoteCardServiceInterface
}

// NewNoteCardHandler はNoteCardHandlerを生成する。
func NewNoteCardHandler(service NoteCardServiceInterface) *NoteCardHandler {
	return &NoteCardHandler{
		service: service,
	}
}

// noteCardSchema はカード作成リクエストのバリデーションルール。
// 4フィールドとも前後空白は黙ってトリムする（トリムチェックは行わない）。
var noteCardSchema = validate.Schema{
	Required: []string{"imgUrl", "noteId", "note", "clef"},
	Strings:  []string{"imgUrl", "noteId", "note", "clef"},
}

// noteCardResponse はノートカードのAPIレスポンス。
type noteCardResponse struct {
	ID        string    `json:"id"`
	ImgURL    string    `json:"imgUrl"`
	NoteID    string    `json:"noteId"`
	Note      string    `json:"note"`
	Clef      string    `json:"clef"`
	CreatedAt time.Time `json:"createdAt"`
}

// Create はノートカード作成を処理する。
// POST /api/cards
func (h *NoteCardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeAPIErrorResponse(w, &model.APIError{
			Code:    http.StatusBadRequest,
			Reason:  model.ReasonValidation,
			Message: "Malformed request body",
		})
		return
	}

	if apiErr := noteCardSchema.Validate(body); apiErr != nil {
		writeAPIErrorResponse(w, apiErr)
		return
	}

	card, err := h.service.Create(r.Context(),
		validate.String(body, "imgUrl"),
		validate.String(body, "noteId"),
		validate.String(body, "note"),
		validate.String(body, "clef"),
	)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toNoteCardResponse(card))
}

// ListByClef は指定音部記号のカード一覧を返す。
// GET /api/cards/{clef}
func (h *NoteCardHandler) ListByClef(w http.ResponseWriter, r *http.Request) {
	clef := chi.URLParam(r, "clef")

	cards, err := h.service.ListByClef(r.Context(), clef)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	results := make([]noteCardResponse, len(cards))
	for i, card := range cards {
		results[i] = toNoteCardResponse(card)
	}
	writeJSONResponse(w, http.StatusOK, results)
}

// toNoteCardResponse はドメインのNoteCardをAPIレスポンス型に変換する。
func toNoteCardResponse(card *model.NoteCard) noteCardResponse {
	return noteCardResponse{
		ID:        card.ID,
		ImgURL:    card.ImgURL,
		NoteID:    card.NoteID,
		Note:      card.Note,
		Clef:      card.Clef,
		CreatedAt: card.CreatedAt,
	}
}
