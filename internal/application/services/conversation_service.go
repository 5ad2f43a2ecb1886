package services

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/repositories"
	apperrors "github.com/arogyamitra/SwasthyaSahayak/backend/pkg/errors"
)

const (
	// historyLimit bounds both the returned history and the context
	// window sent to the model.
	historyLimit = 10

	// speechLanguage is the locale requested for spoken replies.
	speechLanguage = "hi-IN"

	// parseFallbackNotice is shown when the model reply was not the
	// expected JSON shape and the raw text is displayed instead.
	parseFallbackNotice = "AI response received, but could not parse. Displaying raw text."

	speechDeadline = 30 * time.Second
)

// ConversationService runs the question-and-analysis exchange: persist
// the user's turn, call the model with bounded context, parse the reply,
// persist the model's turn and speak it.
type ConversationService struct {
	turns    repositories.ConversationRepository
	reports  repositories.ReportRepository
	analysis providers.AnalysisProvider
	speech   providers.SpeechSynthesizer
	eventBus providers.EventBus
}

// NewConversationService creates a new conversation service.
func NewConversationService(
	turns repositories.ConversationRepository,
	reports repositories.ReportRepository,
	analysis providers.AnalysisProvider,
	speech providers.SpeechSynthesizer,
	eventBus providers.EventBus,
) *ConversationService {
	return &ConversationService{
		turns:    turns,
		reports:  reports,
		analysis: analysis,
		speech:   speech,
		eventBus: eventBus,
	}
}

// SendResult is the outcome of one exchange.
type SendResult struct {
	UserTurn *entities.ConversationTurn `json:"userTurn"`
	AITurn   *entities.ConversationTurn `json:"aiTurn"`
	Reply    *entities.StructuredReply  `json:"reply"`
	Notice   string                     `json:"notice,omitempty"`
}

// Send runs a full exchange for the signed-in user. The user's turn is
// persisted before the model call, so a model failure leaves the
// question in the history with no rollback.
func (s *ConversationService) Send(ctx context.Context, session *entities.UserSession, text string) (*SendResult, error) {
	if session == nil || session.ID == "" {
		return nil, apperrors.NewAuthError("sign-in required", nil)
	}
	if strings.TrimSpace(text) == "" {
		return nil, apperrors.NewValidationError("Please type your question or symptom for analysis.")
	}

	userTurn := &entities.ConversationTurn{
		ID:        uuid.New().String(),
		OwnerID:   session.ID,
		Text:      text,
		Sender:    entities.SenderUser,
		Timestamp: time.Now().UTC(),
	}
	if err := s.turns.Create(ctx, userTurn); err != nil {
		return nil, err
	}
	s.publishChange(ctx, session.ID)

	analysisCtx := s.gatherContext(ctx, session.ID)

	raw, err := s.analysis.GenerateReply(ctx, text, analysisCtx)
	if err != nil {
		return nil, apperrors.NewAIError("analysis failed", err)
	}

	reply, parseErr := entities.ExtractStructuredReply(raw)
	notice := ""
	aiText := ""
	if parseErr != nil {
		log.Warn().Err(parseErr).Str("owner_id", session.ID).Msg("Model reply was not structured, falling back to raw text")
		reply = entities.FallbackReply(raw)
		notice = parseFallbackNotice
		aiText = raw
	} else {
		encoded, err := json.Marshal(reply)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to encode reply", err)
		}
		aiText = string(encoded)
	}

	aiTurn := &entities.ConversationTurn{
		ID:        uuid.New().String(),
		OwnerID:   session.ID,
		Text:      aiText,
		Sender:    entities.SenderAI,
		Timestamp: time.Now().UTC(),
	}
	if err := s.turns.Create(ctx, aiTurn); err != nil {
		return nil, err
	}
	s.publishChange(ctx, session.ID)

	s.speak(ctx, reply)

	return &SendResult{
		UserTurn: userTurn,
		AITurn:   aiTurn,
		Reply:    reply,
		Notice:   notice,
	}, nil
}

// History returns the owner's recent turns in chronological order.
func (s *ConversationService) History(ctx context.Context, ownerID string) ([]*entities.ConversationTurn, error) {
	turns, err := s.turns.HistoryByOwner(ctx, ownerID, historyLimit)
	if err != nil {
		return nil, err
	}
	if turns == nil {
		turns = []*entities.ConversationTurn{}
	}
	return turns, nil
}

// gatherContext reads the context window for the model call. Failures
// degrade to an empty window; the exchange goes ahead without context.
func (s *ConversationService) gatherContext(ctx context.Context, ownerID string) providers.AnalysisContext {
	var analysisCtx providers.AnalysisContext

	reports, err := s.reports.RecentByOwner(ctx, ownerID, recentReportsLimit)
	if err != nil {
		log.Warn().Err(err).Str("owner_id", ownerID).Msg("Failed to load reports for analysis context")
	} else {
		analysisCtx.Reports = reports
	}

	history, err := s.turns.HistoryByOwner(ctx, ownerID, historyLimit)
	if err != nil {
		log.Warn().Err(err).Str("owner_id", ownerID).Msg("Failed to load history for analysis context")
	} else {
		analysisCtx.History = history
	}

	return analysisCtx
}

// speak hands the reply to the synthesizer without blocking the
// exchange. Speech is best effort and never fails a Send.
func (s *ConversationService) speak(ctx context.Context, reply *entities.StructuredReply) {
	if s.speech == nil {
		return
	}

	speechCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), speechDeadline)
	go func() {
		defer cancel()
		if err := s.speech.Synthesize(speechCtx, reply.SpeechText(), speechLanguage); err != nil {
			log.Warn().Err(err).Msg("Speech synthesis failed")
		}
	}()
}

func (s *ConversationService) publishChange(ctx context.Context, ownerID string) {
	if s.eventBus == nil {
		return
	}
	event := entities.NewChangeEvent(ownerID, entities.ChangeEventTypeTurnCreated)
	if err := s.eventBus.Publish(ctx, providers.GetConversationsChannel(ownerID), event); err != nil {
		log.Warn().Err(err).Str("owner_id", ownerID).Msg("Failed to publish conversation change event")
	}
}
