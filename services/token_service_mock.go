package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MockTokenStore is an in-memory TokenStore for testing
type MockTokenStore struct {
	mu     sync.Mutex
	tokens map[string]uint
}

// NewMockTokenStore creates an empty in-memory token store
func NewMockTokenStore() *MockTokenStore {
	return &MockTokenStore{tokens: make(map[string]uint)}
}

// Issue creates a new token for the user
func (m *MockTokenStore) Issue(_ context.Context, userID uint, _ time.Duration) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	token := uuid.NewString()
	m.tokens[token] = userID
	return token, nil
}

// Rotate swaps a token for a fresh one
func (m *MockTokenStore) Rotate(_ context.Context, token string, _ time.Duration) (string, uint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	userID, ok := m.tokens[token]
	if !ok {
		return "", 0, ErrTokenNotFound
	}
	delete(m.tokens, token)
	next := uuid.NewString()
	m.tokens[next] = userID
	return next, userID, nil
}

// Revoke deletes a token
func (m *MockTokenStore) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}

// Has reports whether a token is currently stored
func (m *MockTokenStore) Has(token string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tokens[token]
	return ok
}
