package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/api/handlers"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/api/middleware"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/application/services"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
	apperrors "github.com/arogyamitra/SwasthyaSahayak/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubConversationService struct {
	result    *services.SendResult
	sendErr   error
	turns     []*entities.ConversationTurn
	sendCalls int
}

func (s *stubConversationService) Send(_ context.Context, _ *entities.UserSession, _ string) (*services.SendResult, error) {
	s.sendCalls++
	if s.sendErr != nil {
		return nil, s.sendErr
	}
	return s.result, nil
}

func (s *stubConversationService) History(_ context.Context, _ string) ([]*entities.ConversationTurn, error) {
	return s.turns, nil
}

func TestConversationHandler_Send_Unauthenticated(t *testing.T) {
	service := &stubConversationService{}
	handler := handlers.NewConversationHandler(service)

	req := httptest.NewRequest("POST", "/api/conversations/send", strings.NewReader(`{"text":"hi"}`))
	w := httptest.NewRecorder()

	handler.Send(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, service.sendCalls, "the service is never reached without a session")
}

func TestConversationHandler_Send_Success(t *testing.T) {
	service := &stubConversationService{result: &services.SendResult{
		Reply: &entities.StructuredReply{
			PossibleReason:     "Viral fever",
			SuggestedSolutions: []string{"Rest"},
			Disclaimer:         "Consult a doctor",
		},
	}}
	handler := handlers.NewConversationHandler(service)

	req := httptest.NewRequest("POST", "/api/conversations/send", strings.NewReader(`{"text":"bukhar"}`))
	req = req.WithContext(middleware.WithSession(req.Context(), &entities.UserSession{ID: "user-1"}))
	w := httptest.NewRecorder()

	handler.Send(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Reply *entities.StructuredReply `json:"reply"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "Viral fever", response.Reply.PossibleReason)
}

func TestConversationHandler_Send_BlankText(t *testing.T) {
	service := &stubConversationService{
		sendErr: apperrors.NewValidationError("Please type your question or symptom for analysis."),
	}
	handler := handlers.NewConversationHandler(service)

	req := httptest.NewRequest("POST", "/api/conversations/send", strings.NewReader(`{"text":""}`))
	req = req.WithContext(middleware.WithSession(req.Context(), &entities.UserSession{ID: "user-1"}))
	w := httptest.NewRecorder()

	handler.Send(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, "Please type your question or symptom for analysis.", response["error"])
}

func TestConversationHandler_Send_AIFailure(t *testing.T) {
	service := &stubConversationService{
		sendErr: apperrors.NewAIError("analysis failed", nil),
	}
	handler := handlers.NewConversationHandler(service)

	req := httptest.NewRequest("POST", "/api/conversations/send", strings.NewReader(`{"text":"bukhar"}`))
	req = req.WithContext(middleware.WithSession(req.Context(), &entities.UserSession{ID: "user-1"}))
	w := httptest.NewRecorder()

	handler.Send(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestConversationHandler_History(t *testing.T) {
	service := &stubConversationService{turns: []*entities.ConversationTurn{
		{ID: "t1", OwnerID: "user-1", Text: "hi", Sender: entities.SenderUser},
		{ID: "t2", OwnerID: "user-1", Text: "hello", Sender: entities.SenderAI},
	}}
	handler := handlers.NewConversationHandler(service)

	req := httptest.NewRequest("GET", "/api/conversations", nil)
	req = req.WithContext(middleware.WithSession(req.Context(), &entities.UserSession{ID: "user-1"}))
	w := httptest.NewRecorder()

	handler.History(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response struct {
		Turns []*entities.ConversationTurn `json:"turns"`
		Count int                          `json:"count"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, 2, response.Count)
	require.Len(t, response.Turns, 2)
	assert.Equal(t, entities.SenderUser, response.Turns[0].Sender)
}
