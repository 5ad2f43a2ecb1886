package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
)

const revocationKeyPrefix = "session:revoked:"

// SessionClaims carries the signed-in user alongside the registered claims.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID      string `json:"uid"`
	DisplayName string `json:"name,omitempty"`
	Email       string `json:"email,omitempty"`
}

// JWTSessionManager issues HS256 session tokens and tracks revocations
// in the cache so sign-out takes effect immediately.
type JWTSessionManager struct {
	secret []byte
	ttl    time.Duration
	cache  providers.CacheProvider
}

// NewJWTSessionManager creates a session manager. The cache is optional;
// without it revocation only takes effect at token expiry.
func NewJWTSessionManager(secret string, ttl time.Duration, cache providers.CacheProvider) *JWTSessionManager {
	return &JWTSessionManager{
		secret: []byte(secret),
		ttl:    ttl,
		cache:  cache,
	}
}

// Issue mints a session token for a verified user.
func (m *JWTSessionManager) Issue(session *entities.UserSession) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		UserID:      session.ID,
		DisplayName: session.DisplayName,
		Email:       session.Email,
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// Verify resolves a session token back to the user.
func (m *JWTSessionManager) Verify(ctx context.Context, rawToken string) (*entities.UserSession, error) {
	claims, err := m.parse(rawToken)
	if err != nil {
		return nil, err
	}

	if m.cache != nil && claims.ID != "" {
		revoked, err := m.cache.Exists(ctx, revocationKeyPrefix+claims.ID)
		if err == nil && revoked {
			return nil, providers.ErrSessionRevoked
		}
	}

	return &entities.UserSession{
		ID:          claims.UserID,
		DisplayName: claims.DisplayName,
		Email:       claims.Email,
	}, nil
}

// Revoke marks the session as signed out until its natural expiry.
func (m *JWTSessionManager) Revoke(ctx context.Context, rawToken string) error {
	claims, err := m.parse(rawToken)
	if err != nil {
		return err
	}

	if m.cache == nil || claims.ID == "" {
		return nil
	}

	ttl := m.ttl
	if claims.ExpiresAt != nil {
		if remaining := time.Until(claims.ExpiresAt.Time); remaining > 0 {
			ttl = remaining
		}
	}

	return m.cache.Set(ctx, revocationKeyPrefix+claims.ID, []byte("1"), int(ttl.Seconds())+1)
}

func (m *JWTSessionManager) parse(rawToken string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, providers.ErrInvalidIDToken
	}
	if claims.UserID == "" {
		return nil, providers.ErrInvalidIDToken
	}
	return claims, nil
}
