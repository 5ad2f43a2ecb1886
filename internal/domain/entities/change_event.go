package entities

import (
	"crypto/rand"
	"encoding/hex"
	"time"
)

// ChangeEventType represents the kind of record that was created.
type ChangeEventType string

const (
	ChangeEventTypeReportCreated ChangeEventType = "report_created"
	ChangeEventTypeTurnCreated   ChangeEventType = "turn_created"
)

// ChangeEvent signals that a record was created for an owner. Subscribers
// treat an event as an invalidation and re-read the full projection; the
// event never carries the record itself.
type ChangeEvent struct {
	ID        string          `json:"id"`
	OwnerID   string          `json:"owner_id"`
	EventType ChangeEventType `json:"event_type"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewChangeEvent creates a new change event for an owner.
func NewChangeEvent(ownerID string, eventType ChangeEventType) *ChangeEvent {
	return &ChangeEvent{
		ID:        generateEventID(),
		OwnerID:   ownerID,
		EventType: eventType,
		Timestamp: time.Now(),
	}
}

// generateEventID generates a unique event ID
func generateEventID() string {
	return time.Now().Format("20060102150405") + "-" + randomString(8)
}

// randomString generates a random string of specified length
func randomString(length int) string {
	bytes := make([]byte, length/2+1)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp-based if crypto/rand fails
		return time.Now().Format("150405.000")
	}
	return hex.EncodeToString(bytes)[:length]
}
