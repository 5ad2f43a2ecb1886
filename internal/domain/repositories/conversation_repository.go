package repositories

import (
	"context"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
)

// ConversationRepository defines persistence for conversation turns.
type ConversationRepository interface {
	// Create inserts a conversation turn. Turns are never updated or deleted.
	Create(ctx context.Context, turn *entities.ConversationTurn) error

	// HistoryByOwner returns the owner's most recent turns in timestamp
	// ascending order, at most limit records.
	HistoryByOwner(ctx context.Context, ownerID string, limit int) ([]*entities.ConversationTurn, error)
}
