package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	apperrors "github.com/arogyamitra/SwasthyaSahayak/backend/pkg/errors"
)

const synthesisTimeout = 15 * time.Second

// HTTPAdapter sends synthesis requests to an external text-to-speech
// endpoint. Synthesis is best effort; callers never fail a conversation
// because speech did not play.
type HTTPAdapter struct {
	endpoint     string
	defaultVoice string
	voices       map[string]string
	httpClient   *http.Client
}

type synthesisRequest struct {
	Text  string `json:"text"`
	Voice string `json:"voice"`
	Lang  string `json:"lang"`
}

// NewHTTPAdapter creates a speech synthesizer backed by an HTTP endpoint.
// The voices map keys are language prefixes ("hi", "en") and values are
// endpoint voice names.
func NewHTTPAdapter(endpoint, defaultVoice string, voices map[string]string) *HTTPAdapter {
	return &HTTPAdapter{
		endpoint:     endpoint,
		defaultVoice: defaultVoice,
		voices:       voices,
		httpClient:   &http.Client{Timeout: synthesisTimeout},
	}
}

// Synthesize asks the endpoint to speak the text in the requested
// language. A missing voice for the language falls back to the default
// voice rather than failing.
func (a *HTTPAdapter) Synthesize(ctx context.Context, text, languageTag string) error {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	voice := a.voiceFor(languageTag)

	payload, err := json.Marshal(synthesisRequest{
		Text:  text,
		Voice: voice,
		Lang:  languageTag,
	})
	if err != nil {
		return apperrors.NewInternalError("failed to encode synthesis request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, bytes.NewReader(payload))
	if err != nil {
		return apperrors.NewInternalError("failed to create synthesis request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return apperrors.NewExternalError("speech synthesis request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return apperrors.NewExternalError(
			fmt.Sprintf("speech endpoint returned status %d", resp.StatusCode), nil)
	}

	return nil
}

// voiceFor matches the language tag's primary subtag against the
// configured voices ("hi-IN" matches "hi").
func (a *HTTPAdapter) voiceFor(languageTag string) string {
	prefix := languageTag
	if idx := strings.IndexAny(languageTag, "-_"); idx > 0 {
		prefix = languageTag[:idx]
	}

	if voice, ok := a.voices[prefix]; ok {
		return voice
	}

	log.Warn().
		Str("language", languageTag).
		Str("fallback_voice", a.defaultVoice).
		Msg("No voice configured for language, using default")
	return a.defaultVoice
}
