package services

import (
	"context"
	"errors"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
	apperrors "github.com/arogyamitra/SwasthyaSahayak/backend/pkg/errors"
)

// AuthService exchanges external identity tokens for first-party
// sessions.
type AuthService struct {
	authProvider providers.AuthProvider
	sessions     providers.SessionManager
}

// NewAuthService creates a new auth service.
func NewAuthService(authProvider providers.AuthProvider, sessions providers.SessionManager) *AuthService {
	return &AuthService{
		authProvider: authProvider,
		sessions:     sessions,
	}
}

// SignInResult is the outcome of a successful sign-in.
type SignInResult struct {
	Token   string                `json:"token"`
	Session *entities.UserSession `json:"session"`
}

// SignIn verifies the identity provider's token and issues a session.
func (s *AuthService) SignIn(ctx context.Context, idToken string) (*SignInResult, error) {
	if idToken == "" {
		return nil, apperrors.NewValidationError("id token is required")
	}

	session, err := s.authProvider.VerifyIDToken(ctx, idToken)
	if err != nil {
		if errors.Is(err, providers.ErrInvalidIDToken) {
			return nil, apperrors.NewAuthError("sign-in failed", err)
		}
		return nil, apperrors.NewAuthError("identity provider unavailable", err)
	}

	token, err := s.sessions.Issue(session)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to issue session", err)
	}

	return &SignInResult{Token: token, Session: session}, nil
}

// SignOut revokes the session token.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	if token == "" {
		return apperrors.NewValidationError("session token is required")
	}
	if err := s.sessions.Revoke(ctx, token); err != nil {
		return apperrors.NewAuthError("sign-out failed", err)
	}
	return nil
}

// Verify resolves a session token to its user.
func (s *AuthService) Verify(ctx context.Context, token string) (*entities.UserSession, error) {
	session, err := s.sessions.Verify(ctx, token)
	if err != nil {
		return nil, apperrors.NewAuthError("session is not valid", err)
	}
	return session, nil
}
