package providers

import (
	"context"
	"errors"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
)

// ErrInvalidIDToken indicates the identity provider rejected the token.
var ErrInvalidIDToken = errors.New("id token is invalid")

// ErrSessionRevoked indicates the session was signed out.
var ErrSessionRevoked = errors.New("session has been revoked")

// AuthProvider verifies identity tokens issued by the external sign-in
// provider and maps their claims to a UserSession.
type AuthProvider interface {
	VerifyIDToken(ctx context.Context, rawToken string) (*entities.UserSession, error)
}

// SessionManager issues and verifies first-party session tokens after the
// external provider has vouched for the user.
type SessionManager interface {
	// Issue mints a session token for a verified user.
	Issue(session *entities.UserSession) (string, error)

	// Verify resolves a session token back to the user, rejecting expired
	// or revoked sessions.
	Verify(ctx context.Context, token string) (*entities.UserSession, error)

	// Revoke signs the session out; the token is refused from then on.
	Revoke(ctx context.Context, token string) error
}
