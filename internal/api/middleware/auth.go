package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
)

type contextKey string

const sessionContextKey contextKey = "user_session"

// SessionVerifier resolves a bearer token to the signed-in user.
type SessionVerifier interface {
	Verify(ctx context.Context, token string) (*entities.UserSession, error)
}

// Auth rejects requests without a valid session and puts the user on the
// request context for downstream handlers.
func Auth(verifier SessionVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := BearerToken(r)
			if token == "" {
				unauthorized(w, "sign-in required")
				return
			}

			session, err := verifier.Verify(r.Context(), token)
			if err != nil {
				unauthorized(w, "session is not valid")
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext returns the signed-in user placed by Auth, or nil.
func SessionFromContext(ctx context.Context) *entities.UserSession {
	session, _ := ctx.Value(sessionContextKey).(*entities.UserSession)
	return session
}

// WithSession returns a context carrying the session, as Auth would set
// it.
func WithSession(ctx context.Context, session *entities.UserSession) context.Context {
	return context.WithValue(ctx, sessionContextKey, session)
}

// BearerToken extracts the bearer token from the Authorization header.
// SSE requests may carry it as a query parameter instead, since the
// EventSource API cannot set headers.
func BearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return strings.TrimSpace(after)
	}
	return r.URL.Query().Get("token")
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"` + message + `"}`))
}
