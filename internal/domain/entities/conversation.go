package entities

import "time"

// Sender identifies which side of the conversation produced a turn.
type Sender string

const (
	SenderUser Sender = "user"
	SenderAI   Sender = "ai"
)

// ConversationTurn is one message in an owner's conversation. For an AI
// turn, Text holds either the JSON-encoded StructuredReply or, when the
// model's output could not be parsed, the model's raw text verbatim.
type ConversationTurn struct {
	ID        string    `json:"id" db:"id"`
	OwnerID   string    `json:"owner_id" db:"owner_id"`
	Text      string    `json:"text" db:"text"`
	Sender    Sender    `json:"sender" db:"sender"`
	Timestamp time.Time `json:"timestamp" db:"timestamp"`
}
