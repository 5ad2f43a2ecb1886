package speech

import (
	"context"

	"github.com/rs/zerolog/log"
)

// NoopAdapter discards synthesis requests. Used when the deployment has
// no audio output.
type NoopAdapter struct{}

// NewNoopAdapter creates a synthesizer that does nothing.
func NewNoopAdapter() *NoopAdapter {
	return &NoopAdapter{}
}

// Synthesize logs and returns immediately.
func (a *NoopAdapter) Synthesize(_ context.Context, _ string, languageTag string) error {
	log.Debug().Str("language", languageTag).Msg("Speech synthesis skipped (noop)")
	return nil
}
