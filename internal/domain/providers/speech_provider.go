package providers

import "context"

// SpeechSynthesizer speaks a reply out loud, best-effort. A failure is
// logged and never surfaced as a hard error; the text stays visible
// regardless. Headless deployments use a no-op implementation.
type SpeechSynthesizer interface {
	Synthesize(ctx context.Context, text, languageTag string) error
}
