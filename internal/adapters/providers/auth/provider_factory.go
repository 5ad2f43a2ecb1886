package auth

import (
	"fmt"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
	"github.com/arogyamitra/SwasthyaSahayak/backend/pkg/config"
)

// NewAuthProvider creates the configured identity verifier.
func NewAuthProvider(cfg config.AuthConfig, cache providers.CacheProvider) (providers.AuthProvider, error) {
	switch cfg.Provider {
	case "google":
		return NewGoogleAdapter(cfg.GoogleClientID, cache), nil
	case "mock", "":
		return NewMockAuthAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown auth provider: %s", cfg.Provider)
	}
}
