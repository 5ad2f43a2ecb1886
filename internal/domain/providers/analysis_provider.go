package providers

import (
	"context"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
)

// AnalysisContext is the bounded context window sent with every model
// call. The provider retains no session state, so the full context is
// re-sent each time.
type AnalysisContext struct {
	Reports []*entities.MedicalReport
	History []*entities.ConversationTurn
}

// AnalysisProvider is the language-model collaborator: single-shot
// prompt in, raw text out. Parsing the reply is the caller's concern.
type AnalysisProvider interface {
	GenerateReply(ctx context.Context, userText string, analysisCtx AnalysisContext) (string, error)
}
