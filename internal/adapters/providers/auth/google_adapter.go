package auth

import (
	"context"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
)

const (
	googleCertsURL  = "https://www.googleapis.com/oauth2/v3/certs"
	googleIssuer    = "https://accounts.google.com"
	certsCacheKey   = "auth:google:certs"
	certsCacheTTL   = 3600
	certsFetchLimit = 10 * time.Second
)

// GoogleAdapter verifies Google-issued ID tokens against the published
// signing keys and maps their claims to a user session.
type GoogleAdapter struct {
	clientID   string
	httpClient *http.Client
	cache      providers.CacheProvider
	certsURL   string
}

type googleClaims struct {
	jwt.RegisteredClaims
	Name  string `json:"name"`
	Email string `json:"email"`
}

type jwksDocument struct {
	Keys []jwksKey `json:"keys"`
}

type jwksKey struct {
	Kid string `json:"kid"`
	Kty string `json:"kty"`
	N   string `json:"n"`
	E   string `json:"e"`
}

// NewGoogleAdapter creates a Google ID token verifier. The cache is
// optional and holds the signing-key document between fetches.
func NewGoogleAdapter(clientID string, cache providers.CacheProvider) *GoogleAdapter {
	return &GoogleAdapter{
		clientID:   clientID,
		httpClient: &http.Client{Timeout: certsFetchLimit},
		cache:      cache,
		certsURL:   googleCertsURL,
	}
}

// VerifyIDToken checks the token signature, issuer and audience, then
// maps the claims to a UserSession.
func (a *GoogleAdapter) VerifyIDToken(ctx context.Context, rawToken string) (*entities.UserSession, error) {
	claims := &googleClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		kid, _ := t.Header["kid"].(string)
		return a.signingKey(ctx, kid)
	},
		jwt.WithIssuer(googleIssuer),
		jwt.WithAudience(a.clientID),
	)
	if err != nil || !token.Valid {
		return nil, providers.ErrInvalidIDToken
	}

	if claims.Subject == "" {
		return nil, providers.ErrInvalidIDToken
	}

	return &entities.UserSession{
		ID:          claims.Subject,
		DisplayName: claims.Name,
		Email:       claims.Email,
	}, nil
}

func (a *GoogleAdapter) signingKey(ctx context.Context, kid string) (*rsa.PublicKey, error) {
	doc, err := a.certs(ctx)
	if err != nil {
		return nil, err
	}

	for _, key := range doc.Keys {
		if key.Kid == kid && key.Kty == "RSA" {
			return parseRSAKey(key)
		}
	}
	return nil, fmt.Errorf("signing key %q not found", kid)
}

func (a *GoogleAdapter) certs(ctx context.Context) (*jwksDocument, error) {
	if a.cache != nil {
		if cached, err := a.cache.Get(ctx, certsCacheKey); err == nil && len(cached) > 0 {
			var doc jwksDocument
			if err := json.Unmarshal(cached, &doc); err == nil {
				return &doc, nil
			}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.certsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create certs request: %w", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch signing keys: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("signing key endpoint returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read signing keys: %w", err)
	}

	var doc jwksDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse signing keys: %w", err)
	}

	if a.cache != nil {
		if err := a.cache.Set(ctx, certsCacheKey, body, certsCacheTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to cache signing keys")
		}
	}

	return &doc, nil
}

func parseRSAKey(key jwksKey) (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(key.N)
	if err != nil {
		return nil, fmt.Errorf("invalid key modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(key.E)
	if err != nil {
		return nil, fmt.Errorf("invalid key exponent: %w", err)
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
