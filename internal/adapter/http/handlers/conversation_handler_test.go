package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"quotedraft/internal/adapter/http/handlers/mocks"
	"quotedraft/internal/domain/entities"
	"quotedraft/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func newConversationRouter(h *ConversationHandler) *gin.Engine {
	r := gin.New()
	r.POST("/v1/conversations/:conversation_id/events", h.HandleEvent)
	r.POST("/v1/conversations/:conversation_id/reset", h.ResetConversation)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestConversationHandler_HandleEvent(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid json", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConversationUseCase(ctrl)
		r := newConversationRouter(NewConversationHandler(uc))

		w := postJSON(r, "/v1/conversations/conv-1/events", "{")
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown event type", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConversationUseCase(ctrl)
		r := newConversationRouter(NewConversationHandler(uc))

		w := postJSON(r, "/v1/conversations/conv-1/events", `{"type":"voice","text":"hi"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("text event returns the prompt", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConversationUseCase(ctrl)
		r := newConversationRouter(NewConversationHandler(uc))

		prompt := entities.Prompt{Text: "What is the customer's name?", State: entities.StateAwaitingField}
		prompt = prompt.WithAction("Skip", entities.Action{Kind: entities.ActionSkipField})
		uc.EXPECT().HandleText(gomock.Any(), "conv-1", "rental for ABC").Return(prompt, nil)

		w := postJSON(r, "/v1/conversations/conv-1/events", `{"type":"text","text":"rental for ABC"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}

		var resp struct {
			Text    string `json:"text"`
			State   string `json:"state"`
			Actions []struct {
				Label string `json:"label"`
				Token string `json:"token"`
			} `json:"actions"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("bad response body: %v", err)
		}
		if resp.State != string(entities.StateAwaitingField) {
			t.Fatalf("unexpected state: %q", resp.State)
		}
		if len(resp.Actions) != 1 || resp.Actions[0].Token != "skip_field" {
			t.Fatalf("unexpected actions: %+v", resp.Actions)
		}
	})

	t.Run("action event", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConversationUseCase(ctrl)
		r := newConversationRouter(NewConversationHandler(uc))

		uc.EXPECT().HandleAction(gomock.Any(), "conv-1", "doc_type:sale").
			Return(entities.Prompt{Text: "ok", State: entities.StateAwaitingField}, nil)

		w := postJSON(r, "/v1/conversations/conv-1/events", `{"type":"action","token":"doc_type:sale"}`)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("image event decodes base64", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConversationUseCase(ctrl)
		r := newConversationRouter(NewConversationHandler(uc))

		raw := []byte{0xFF, 0xD8, 0xFF}
		uc.EXPECT().HandleImage(gomock.Any(), "conv-1", raw, "image/png").
			Return(entities.Prompt{Text: "got it", State: entities.StateReviewingExtracted}, nil)

		body := fmt.Sprintf(`{"type":"image","image_base64":%q,"mime_type":"image/png"}`,
			base64.StdEncoding.EncodeToString(raw))
		w := postJSON(r, "/v1/conversations/conv-1/events", body)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("invalid base64", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConversationUseCase(ctrl)
		r := newConversationRouter(NewConversationHandler(uc))

		w := postJSON(r, "/v1/conversations/conv-1/events", `{"type":"image","image_base64":"!!!"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("unknown action maps to 400", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConversationUseCase(ctrl)
		r := newConversationRouter(NewConversationHandler(uc))

		uc.EXPECT().HandleAction(gomock.Any(), "conv-1", "bogus").
			Return(entities.Prompt{}, fmt.Errorf("%w: bogus", usecase.ErrUnknownAction))

		w := postJSON(r, "/v1/conversations/conv-1/events", `{"type":"action","token":"bogus"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("internal error maps to 500", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConversationUseCase(ctrl)
		r := newConversationRouter(NewConversationHandler(uc))

		uc.EXPECT().HandleText(gomock.Any(), "conv-1", "hi").
			Return(entities.Prompt{}, errors.New("dynamodb down"))

		w := postJSON(r, "/v1/conversations/conv-1/events", `{"type":"text","text":"hi"}`)
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}

func TestConversationHandler_ResetConversation(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConversationUseCase(ctrl)
		r := newConversationRouter(NewConversationHandler(uc))

		uc.EXPECT().Reset(gomock.Any(), "conv-1").
			Return(entities.Prompt{Text: "Draft discarded.", State: entities.StateStart}, nil)

		w := postJSON(r, "/v1/conversations/conv-1/reset", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})

	t.Run("repository failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIConversationUseCase(ctrl)
		r := newConversationRouter(NewConversationHandler(uc))

		uc.EXPECT().Reset(gomock.Any(), "conv-1").
			Return(entities.Prompt{}, errors.New("delete session: timeout"))

		w := postJSON(r, "/v1/conversations/conv-1/reset", "")
		if w.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", w.Code)
		}
	})
}
