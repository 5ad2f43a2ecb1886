package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/api/middleware"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/application/services"
)

// AuthService defines the session operations used by the handler.
type AuthService interface {
	SignIn(ctx context.Context, idToken string) (*services.SignInResult, error)
	SignOut(ctx context.Context, token string) error
}

// AuthHandler handles sign-in and sign-out.
type AuthHandler struct {
	service AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

type signInRequest struct {
	IDToken string `json:"idToken"`
}

// SignIn handles POST /api/auth/session
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var payload signInRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}

	result, err := h.service.SignIn(r.Context(), payload.IDToken)
	if err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, result)
}

// SignOut handles DELETE /api/auth/session
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	token := middleware.BearerToken(r)
	if token == "" {
		respondWithError(w, http.StatusUnauthorized, "sign-in required")
		return
	}

	if err := h.service.SignOut(r.Context(), token); err != nil {
		respondWithAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// CurrentUser handles GET /api/auth/me
func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	session := middleware.SessionFromContext(r.Context())
	if session == nil {
		respondWithError(w, http.StatusUnauthorized, "sign-in required")
		return
	}
	respondWithJSON(w, http.StatusOK, session)
}
