package gemini

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
	"github.com/arogyamitra/SwasthyaSahayak/backend/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, serverURL string) *Client {
	t.Helper()
	client, err := NewClient(&config.GeminiConfig{
		APIKey:       "test-key",
		Model:        "gemini-2.0-flash",
		RateLimitRPM: -1,
	})
	require.NoError(t, err)
	client.baseURL = serverURL
	return client
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	_, err := NewClient(&config.GeminiConfig{})
	assert.Error(t, err)
}

func TestGenerateReply_Success(t *testing.T) {
	var capturedPath string
	var capturedKey string
	var capturedBody generateRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedPath = r.URL.Path
		capturedKey = r.Header.Get("x-goog-api-key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&capturedBody))

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": `{"possibleReason":"x"}`}},
				}},
			},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	text, err := client.GenerateReply(context.Background(), "bukhar hai", providers.AnalysisContext{})

	require.NoError(t, err)
	assert.Equal(t, `{"possibleReason":"x"}`, text)
	assert.Equal(t, "/models/gemini-2.0-flash:generateContent", capturedPath)
	assert.Equal(t, "test-key", capturedKey)
	require.Len(t, capturedBody.Contents, 1)
	assert.Equal(t, "user", capturedBody.Contents[0].Role)
	assert.Contains(t, capturedBody.Contents[0].Parts[0].Text, "bukhar hai")
}

func TestGenerateReply_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.GenerateReply(context.Background(), "q", providers.AnalysisContext{})
	assert.Error(t, err)
}

func TestGenerateReply_EmptyCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)

	_, err := client.GenerateReply(context.Background(), "q", providers.AnalysisContext{})
	assert.Error(t, err)
}
