package storage

import (
	"context"
	"fmt"
	"path"
	"sync"

	"github.com/google/uuid"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
)

// MockAdapter is an in-memory storage provider for local development
// and tests. It records uploads and returns deterministic URLs.
type MockAdapter struct {
	mu      sync.Mutex
	uploads []string
}

// NewMockAdapter creates a mock storage provider.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{}
}

// Upload pretends to store the file and returns a fake URL.
func (a *MockAdapter) Upload(_ context.Context, input providers.UploadInput) (*providers.StoredObject, error) {
	key := path.Join(providers.StorageFolder, uuid.New().String()+"-"+sanitizeFileName(input.FileName))

	a.mu.Lock()
	a.uploads = append(a.uploads, key)
	a.mu.Unlock()

	return &providers.StoredObject{
		URL:      fmt.Sprintf("https://storage.mock.local/%s", key),
		PublicID: key,
	}, nil
}

// Uploads returns the keys recorded so far.
func (a *MockAdapter) Uploads() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]string, len(a.uploads))
	copy(out, a.uploads)
	return out
}
