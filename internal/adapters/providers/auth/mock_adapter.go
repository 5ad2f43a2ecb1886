package auth

import (
	"context"
	"strings"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
)

// MockAuthAdapter accepts tokens of the form "mock:<user-id>" for local
// development without a real identity provider.
type MockAuthAdapter struct{}

// NewMockAuthAdapter creates a mock identity verifier.
func NewMockAuthAdapter() *MockAuthAdapter {
	return &MockAuthAdapter{}
}

// VerifyIDToken accepts mock tokens and rejects everything else.
func (a *MockAuthAdapter) VerifyIDToken(_ context.Context, rawToken string) (*entities.UserSession, error) {
	userID, ok := strings.CutPrefix(rawToken, "mock:")
	if !ok || userID == "" {
		return nil, providers.ErrInvalidIDToken
	}

	return &entities.UserSession{
		ID:          userID,
		DisplayName: "Mock User",
		Email:       userID + "@example.com",
	}, nil
}
