package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/application/services"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
	apperrors "github.com/arogyamitra/SwasthyaSahayak/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTurnRepo struct {
	mu        sync.Mutex
	turns     []*entities.ConversationTurn
	createErr error
}

func (s *stubTurnRepo) Create(_ context.Context, turn *entities.ConversationTurn) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.turns = append(s.turns, turn)
	return nil
}

func (s *stubTurnRepo) HistoryByOwner(_ context.Context, ownerID string, limit int) ([]*entities.ConversationTurn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*entities.ConversationTurn
	for _, turn := range s.turns {
		if turn.OwnerID == ownerID {
			out = append(out, turn)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

type stubReportRepo struct {
	reports []*entities.MedicalReport
	err     error
}

func (s *stubReportRepo) Create(_ context.Context, report *entities.MedicalReport) error {
	s.reports = append(s.reports, report)
	return nil
}

func (s *stubReportRepo) RecentByOwner(_ context.Context, _ string, _ int) ([]*entities.MedicalReport, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.reports, nil
}

type stubAnalysis struct {
	reply   string
	err     error
	lastCtx providers.AnalysisContext
}

func (s *stubAnalysis) GenerateReply(_ context.Context, _ string, analysisCtx providers.AnalysisContext) (string, error) {
	s.lastCtx = analysisCtx
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

type stubSpeech struct {
	mu     sync.Mutex
	spoken []string
	langs  []string
	done   chan struct{}
}

func newStubSpeech() *stubSpeech {
	return &stubSpeech{done: make(chan struct{}, 1)}
}

func (s *stubSpeech) Synthesize(_ context.Context, text, languageTag string) error {
	s.mu.Lock()
	s.spoken = append(s.spoken, text)
	s.langs = append(s.langs, languageTag)
	s.mu.Unlock()
	select {
	case s.done <- struct{}{}:
	default:
	}
	return nil
}

func (s *stubSpeech) waitForCall(t *testing.T) {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(time.Second):
		t.Fatal("speech synthesizer was not called")
	}
}

func newConversationService(turns *stubTurnRepo, reports *stubReportRepo, analysis *stubAnalysis, speech *stubSpeech) *services.ConversationService {
	var synth providers.SpeechSynthesizer
	if speech != nil {
		synth = speech
	}
	return services.NewConversationService(turns, reports, analysis, synth, nil)
}

const structuredJSON = `{"possibleReason":"Viral fever","suggestedSolutions":["Rest","Hydrate"],"disclaimer":"Consult a doctor"}`

func TestConversationService_Send_BlankText(t *testing.T) {
	turns := &stubTurnRepo{}
	service := newConversationService(turns, &stubReportRepo{}, &stubAnalysis{reply: structuredJSON}, nil)

	_, err := service.Send(context.Background(), &entities.UserSession{ID: "user-1"}, "   ")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeValidation, appErr.Type)
	assert.Empty(t, turns.turns, "nothing should be persisted for a blank message")
}

func TestConversationService_Send_StructuredReply(t *testing.T) {
	turns := &stubTurnRepo{}
	speech := newStubSpeech()
	service := newConversationService(turns, &stubReportRepo{}, &stubAnalysis{reply: structuredJSON}, speech)

	result, err := service.Send(context.Background(), &entities.UserSession{ID: "user-1"}, "sir me dard")

	require.NoError(t, err)
	assert.Empty(t, result.Notice)
	assert.Equal(t, "Viral fever", result.Reply.PossibleReason)

	require.Len(t, turns.turns, 2)
	assert.Equal(t, entities.SenderUser, turns.turns[0].Sender)
	assert.Equal(t, "sir me dard", turns.turns[0].Text)
	assert.Equal(t, entities.SenderAI, turns.turns[1].Sender)

	var persisted entities.StructuredReply
	require.NoError(t, json.Unmarshal([]byte(turns.turns[1].Text), &persisted))
	assert.Equal(t, "Viral fever", persisted.PossibleReason)

	speech.waitForCall(t)
	speech.mu.Lock()
	defer speech.mu.Unlock()
	assert.Equal(t, []string{"hi-IN"}, speech.langs)
	assert.Contains(t, speech.spoken[0], "Viral fever")
}

func TestConversationService_Send_UnparseableReplyFallsBack(t *testing.T) {
	turns := &stubTurnRepo{}
	raw := "I am sorry, I cannot produce JSON today."
	service := newConversationService(turns, &stubReportRepo{}, &stubAnalysis{reply: raw}, nil)

	result, err := service.Send(context.Background(), &entities.UserSession{ID: "user-1"}, "bukhar hai")

	require.NoError(t, err)
	assert.NotEmpty(t, result.Notice)
	assert.Equal(t, raw, result.Reply.PossibleReason)

	require.Len(t, turns.turns, 2)
	assert.Equal(t, raw, turns.turns[1].Text, "AI turn stores the raw text verbatim")
}

func TestConversationService_Send_AIFailureKeepsUserTurn(t *testing.T) {
	turns := &stubTurnRepo{}
	analysis := &stubAnalysis{err: errors.New("model unavailable")}
	service := newConversationService(turns, &stubReportRepo{}, analysis, nil)

	_, err := service.Send(context.Background(), &entities.UserSession{ID: "user-1"}, "pet me dard")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeExternal, appErr.Type)

	require.Len(t, turns.turns, 1, "the user's turn stays persisted, no rollback")
	assert.Equal(t, entities.SenderUser, turns.turns[0].Sender)
}

func TestConversationService_Send_UserTurnWriteFailureAborts(t *testing.T) {
	turns := &stubTurnRepo{createErr: apperrors.NewWriteError("db down", errors.New("db down"))}
	analysis := &stubAnalysis{reply: structuredJSON}
	service := newConversationService(turns, &stubReportRepo{}, analysis, nil)

	_, err := service.Send(context.Background(), &entities.UserSession{ID: "user-1"}, "sar dard")

	require.Error(t, err)
	assert.Empty(t, analysis.lastCtx.History, "the model is never called when the write fails")
}

func TestConversationService_Send_ContextFailureDegrades(t *testing.T) {
	turns := &stubTurnRepo{}
	reports := &stubReportRepo{err: errors.New("query failed")}
	analysis := &stubAnalysis{reply: structuredJSON}
	service := newConversationService(turns, reports, analysis, nil)

	_, err := service.Send(context.Background(), &entities.UserSession{ID: "user-1"}, "thakan hai")

	require.NoError(t, err, "a context read failure never blocks the exchange")
	assert.Empty(t, analysis.lastCtx.Reports)
}

func TestConversationService_Send_RequiresSession(t *testing.T) {
	service := newConversationService(&stubTurnRepo{}, &stubReportRepo{}, &stubAnalysis{reply: structuredJSON}, nil)

	_, err := service.Send(context.Background(), nil, "question")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrorTypeUnauthorized, appErr.Type)
}

func TestConversationService_History_EmptyIsNotNil(t *testing.T) {
	service := newConversationService(&stubTurnRepo{}, &stubReportRepo{}, &stubAnalysis{}, nil)

	turns, err := service.History(context.Background(), "user-1")

	require.NoError(t, err)
	assert.NotNil(t, turns)
	assert.Empty(t, turns)
}
