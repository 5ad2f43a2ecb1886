package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/api/middleware"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/application/services"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
)

// ConversationService defines the conversation operations used by the
// handler.
type ConversationService interface {
	Send(ctx context.Context, session *entities.UserSession, text string) (*services.SendResult, error)
	History(ctx context.Context, ownerID string) ([]*entities.ConversationTurn, error)
}

// ConversationHandler handles the question-and-analysis exchange.
type ConversationHandler struct {
	service ConversationService
}

// NewConversationHandler creates a new conversation handler.
func NewConversationHandler(service ConversationService) *ConversationHandler {
	return &ConversationHandler{service: service}
}

type sendRequest struct {
	Text string `json:"text"`
}

// Send handles POST /api/conversations/send
func (h *ConversationHandler) Send(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		respondWithError(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	var payload sendRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.service.Send(r.Context(), session, payload.Text)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// History handles GET /api/conversations
func (h *ConversationHandler) History(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		respondWithError(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	turns, err := h.service.History(r.Context(), session.ID)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"turns": turns,
		"count": len(turns),
	})
}
