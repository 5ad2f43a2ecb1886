package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/adapters/providers/auth"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/entities"
	"github.com/arogyamitra/SwasthyaSahayak/backend/internal/domain/providers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu     sync.Mutex
	values map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key], nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.values, key)
	return nil
}

func (c *memoryCache) Exists(_ context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.values[key]
	return ok, nil
}

func TestJWTSessionManager_IssueAndVerify(t *testing.T) {
	manager := auth.NewJWTSessionManager("test-secret", time.Hour, newMemoryCache())

	token, err := manager.Issue(&entities.UserSession{
		ID:          "user-1",
		DisplayName: "Asha",
		Email:       "asha@example.com",
	})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := manager.Verify(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", session.ID)
	assert.Equal(t, "Asha", session.DisplayName)
	assert.Equal(t, "asha@example.com", session.Email)
}

func TestJWTSessionManager_RejectsWrongSecret(t *testing.T) {
	issuer := auth.NewJWTSessionManager("secret-a", time.Hour, nil)
	verifier := auth.NewJWTSessionManager("secret-b", time.Hour, nil)

	token, err := issuer.Issue(&entities.UserSession{ID: "user-1"})
	require.NoError(t, err)

	_, err = verifier.Verify(context.Background(), token)
	assert.ErrorIs(t, err, providers.ErrInvalidIDToken)
}

func TestJWTSessionManager_RejectsExpired(t *testing.T) {
	manager := auth.NewJWTSessionManager("test-secret", -time.Minute, nil)

	token, err := manager.Issue(&entities.UserSession{ID: "user-1"})
	require.NoError(t, err)

	_, err = manager.Verify(context.Background(), token)
	assert.Error(t, err)
}

func TestJWTSessionManager_RevokeTakesEffect(t *testing.T) {
	manager := auth.NewJWTSessionManager("test-secret", time.Hour, newMemoryCache())

	token, err := manager.Issue(&entities.UserSession{ID: "user-1"})
	require.NoError(t, err)

	_, err = manager.Verify(context.Background(), token)
	require.NoError(t, err)

	require.NoError(t, manager.Revoke(context.Background(), token))

	_, err = manager.Verify(context.Background(), token)
	assert.ErrorIs(t, err, providers.ErrSessionRevoked)
}

func TestJWTSessionManager_RejectsGarbage(t *testing.T) {
	manager := auth.NewJWTSessionManager("test-secret", time.Hour, nil)

	_, err := manager.Verify(context.Background(), "not-a-jwt")
	assert.ErrorIs(t, err, providers.ErrInvalidIDToken)
}
