package speech

import (
	"fmt"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
	"github.com/arogyamitra/SwasthyaSahayak/backend/pkg/config"
)

// NewSpeechSynthesizer creates the configured speech provider. Unset
// provider means the deployment is headless and synthesis is a no-op.
func NewSpeechSynthesizer(cfg config.SpeechConfig) (providers.SpeechSynthesizer, error) {
	switch cfg.Provider {
	case "http":
		if cfg.Endpoint == "" {
			return nil, fmt.Errorf("http speech provider requires SPEECH_ENDPOINT")
		}
		return NewHTTPAdapter(cfg.Endpoint, cfg.DefaultVoice, cfg.VoiceMap()), nil
	case "noop", "":
		return NewNoopAdapter(), nil
	default:
		return nil, fmt.Errorf("unknown speech provider: %s", cfg.Provider)
	}
}
