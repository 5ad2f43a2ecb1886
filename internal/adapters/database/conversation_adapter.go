package database

import (
	"context"
	"fmt"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/repositories"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/arogyamitra/SwasthyaSahayak/backend/pkg/errors"
	"github.com/doug-martin/goqu/v9"
)

const conversationsTable = "conversations"

// ConversationAdapter implements conversation turn persistence in Postgres.
type ConversationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewConversationAdapter creates a new conversation adapter.
func NewConversationAdapter(client *postgres.Client) repositories.ConversationRepository {
	return &ConversationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create appends a single conversation turn.
func (a *ConversationAdapter) Create(ctx context.Context, turn *entities.ConversationTurn) error {
	if turn == nil {
		return apperrors.NewInternalError("turn is nil", fmt.Errorf("turn is nil"))
	}

	record := goqu.Record{
		"id":        turn.ID,
		"owner_id":  turn.OwnerID,
		"text":      turn.Text,
		"sender":    turn.Sender,
		"timestamp": turn.Timestamp,
	}

	query, args, err := a.db.Insert(conversationsTable).Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build turn insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewWriteError("failed to create conversation turn", err)
	}

	return nil
}

// HistoryByOwner returns the owner's turns in chronological order.
func (a *ConversationAdapter) HistoryByOwner(ctx context.Context, ownerID string, limit int) ([]*entities.ConversationTurn, error) {
	ds := a.db.From(conversationsTable).
		Select("id", "owner_id", "text", "sender", "timestamp").
		Where(goqu.Ex{"owner_id": ownerID}).
		Order(goqu.I("timestamp").Asc())

	if limit > 0 {
		ds = ds.Limit(uint(limit))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build history query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to query conversation history", err)
	}
	defer rows.Close()

	var turns []*entities.ConversationTurn
	for rows.Next() {
		var turn entities.ConversationTurn
		if err := rows.Scan(
			&turn.ID,
			&turn.OwnerID,
			&turn.Text,
			&turn.Sender,
			&turn.Timestamp,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan turn row", err)
		}
		turns = append(turns, &turn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewInternalError("failed to read turn rows", err)
	}

	return turns, nil
}
