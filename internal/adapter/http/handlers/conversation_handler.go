package handlers

import (
	"errors"
	"net/http"
	"strings"

	request "quotedraft/internal/adapter/http/dto/request"
	response "quotedraft/internal/adapter/http/dto/response"
	"quotedraft/internal/domain/entities"
	"quotedraft/internal/usecase"
	"quotedraft/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidEventPayload = pkg.NewDomainErrorSimple("INVALID_EVENT_INPUT", "Invalid event payload", http.StatusBadRequest)
)

// ConversationHandler handles HTTP requests for the drafting conversation.
//
// Every event type funnels through the same use case and yields the same
// response shape: one prompt. The transport stays stateless; all state lives
// in the session repository.

type ConversationHandler struct {
	usecase usecase.IConversationUseCase
}

func NewConversationHandler(uc usecase.IConversationUseCase) *ConversationHandler {
	return &ConversationHandler{usecase: uc}
}

// HandleEvent godoc
// @Summary      Process a conversation event
// @Description  Accepts a text message, an image or a button action for one conversation and returns the next prompt.
// @Tags         conversations
// @Accept       json
// @Produce      json
// @Param        conversation_id  path      string                true  "Conversation ID"
// @Param        event            body      request.EventRequest  true  "Inbound event"
// @Success      200  {object}  response.PromptResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /conversations/{conversation_id}/events [post]
func (h *ConversationHandler) HandleEvent(c *gin.Context) {
	conversationID := strings.TrimSpace(c.Param("conversation_id"))
	if conversationID == "" {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_CONVERSATION_ID", "Conversation id is required", http.StatusBadRequest).ToHTTPError())
		return
	}

	var payload request.EventRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(errInvalidEventPayload.HTTPStatus, errInvalidEventPayload.ToHTTPError())
		return
	}
	if err := payload.Validate(); err != nil {
		c.JSON(errInvalidEventPayload.HTTPStatus, errInvalidEventPayload.ToHTTPError())
		return
	}

	var (
		prompt entities.Prompt
		err    error
	)
	switch payload.Type {
	case request.EventTypeText:
		prompt, err = h.usecase.HandleText(c.Request.Context(), conversationID, payload.Text)
	case request.EventTypeImage:
		image, mime, decodeErr := payload.DecodeImage()
		if decodeErr != nil {
			c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_IMAGE", "Image payload is not valid base64", http.StatusBadRequest).ToHTTPError())
			return
		}
		prompt, err = h.usecase.HandleImage(c.Request.Context(), conversationID, image, mime)
	case request.EventTypeAction:
		prompt, err = h.usecase.HandleAction(c.Request.Context(), conversationID, payload.Token)
	}

	if err != nil {
		appErr := mapConversationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPrompt(prompt))
}

// ResetConversation godoc
// @Summary      Discard a conversation's draft
// @Description  Deletes the persisted session so the next event starts a fresh draft.
// @Tags         conversations
// @Produce      json
// @Param        conversation_id  path  string  true  "Conversation ID"
// @Success      200  {object}  response.PromptResponse
// @Failure      400  {object}  pkg.HTTPError
// @Failure      500  {object}  pkg.HTTPError
// @Router       /conversations/{conversation_id}/reset [post]
func (h *ConversationHandler) ResetConversation(c *gin.Context) {
	conversationID := strings.TrimSpace(c.Param("conversation_id"))
	if conversationID == "" {
		c.JSON(http.StatusBadRequest, pkg.NewDomainErrorSimple("INVALID_CONVERSATION_ID", "Conversation id is required", http.StatusBadRequest).ToHTTPError())
		return
	}

	prompt, err := h.usecase.Reset(c.Request.Context(), conversationID)
	if err != nil {
		appErr := mapConversationError(err)
		c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
		return
	}
	c.JSON(http.StatusOK, response.FromPrompt(prompt))
}

func mapConversationError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidConversationID):
		return pkg.NewDomainErrorSimple("INVALID_CONVERSATION_ID", "Invalid conversation id", http.StatusBadRequest)
	case errors.Is(err, entities.ErrMalformedAction):
		return pkg.NewDomainErrorSimple("MALFORMED_ACTION", "Malformed action token", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrUnknownAction):
		return pkg.NewDomainErrorSimple("UNKNOWN_ACTION", "Unknown action token", http.StatusBadRequest)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
