package speech_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/adapters/providers/speech"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPAdapter_Synthesize(t *testing.T) {
	var captured map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	adapter := speech.NewHTTPAdapter(server.URL, "default-voice", map[string]string{
		"hi": "hi-IN-voice",
	})

	err := adapter.Synthesize(context.Background(), "aaram karein", "hi-IN")

	require.NoError(t, err)
	assert.Equal(t, "aaram karein", captured["text"])
	assert.Equal(t, "hi-IN-voice", captured["voice"])
	assert.Equal(t, "hi-IN", captured["lang"])
}

func TestHTTPAdapter_Synthesize_MissingVoiceFallsBack(t *testing.T) {
	var captured map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
	}))
	defer server.Close()

	adapter := speech.NewHTTPAdapter(server.URL, "default-voice", map[string]string{})

	err := adapter.Synthesize(context.Background(), "hello", "en-US")

	require.NoError(t, err)
	assert.Equal(t, "default-voice", captured["voice"])
}

func TestHTTPAdapter_Synthesize_EmptyTextIsNoop(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	adapter := speech.NewHTTPAdapter(server.URL, "v", nil)

	require.NoError(t, adapter.Synthesize(context.Background(), "   ", "hi-IN"))
	assert.False(t, called)
}

func TestHTTPAdapter_Synthesize_EndpointError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	adapter := speech.NewHTTPAdapter(server.URL, "v", nil)

	err := adapter.Synthesize(context.Background(), "text", "hi-IN")
	assert.Error(t, err)
}
