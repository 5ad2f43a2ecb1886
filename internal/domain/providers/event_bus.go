package providers

import (
	"context"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
)

// EventBus defines the interface for publishing and subscribing to
// record-created events. Channels are owner-scoped so a subscriber only
// ever sees its own user's changes.
type EventBus interface {
	// Publish publishes an event to all subscribers
	Publish(ctx context.Context, channel string, event *entities.ChangeEvent) error

	// Subscribe subscribes to events on a channel
	Subscribe(ctx context.Context, channel string) (<-chan *entities.ChangeEvent, error)

	// Unsubscribe unsubscribes from a channel
	Unsubscribe(ctx context.Context, channel string) error

	// Close closes the event bus and all subscriptions
	Close() error
}

const (
	// EventChannelReportsPrefix is the prefix for per-owner report channels
	EventChannelReportsPrefix = "reports:"

	// EventChannelConversationsPrefix is the prefix for per-owner conversation channels
	EventChannelConversationsPrefix = "conversations:"
)

// GetReportsChannel returns the report channel name for an owner.
func GetReportsChannel(ownerID string) string {
	return EventChannelReportsPrefix + ownerID
}

// GetConversationsChannel returns the conversation channel name for an owner.
func GetConversationsChannel(ownerID string) string {
	return EventChannelConversationsPrefix + ownerID
}
