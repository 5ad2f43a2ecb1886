package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/api/middleware"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	session *entities.UserSession
	err     error
	token   string
}

func (s *stubVerifier) Verify(_ context.Context, token string) (*entities.UserSession, error) {
	s.token = token
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

func TestAuth_MissingToken(t *testing.T) {
	verifier := &stubVerifier{}
	called := false
	handler := middleware.Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/api/reports", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, called)
}

func TestAuth_InvalidToken(t *testing.T) {
	verifier := &stubVerifier{err: errors.New("expired")}
	handler := middleware.Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest("GET", "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer bad-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "bad-token", verifier.token)
}

func TestAuth_ValidTokenSetsSession(t *testing.T) {
	verifier := &stubVerifier{session: &entities.UserSession{ID: "user-1", Email: "a@b.c"}}
	var seen *entities.UserSession
	handler := middleware.Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = middleware.SessionFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/api/reports", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.ID)
}

func TestBearerToken_QueryFallback(t *testing.T) {
	req := httptest.NewRequest("GET", "/api/stream/reports?token=sse-token", nil)
	assert.Equal(t, "sse-token", middleware.BearerToken(req))

	req = httptest.NewRequest("GET", "/api/stream/reports?token=sse-token", nil)
	req.Header.Set("Authorization", "Bearer header-token")
	assert.Equal(t, "header-token", middleware.BearerToken(req), "the header wins over the query parameter")
}
