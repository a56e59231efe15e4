package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyToken is returned when persisting a blank token.
var ErrEmptyToken = errors.New("token is empty")

type sessionStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Manager keeps the bearer token for one workspace under a fixed storage key.
type Manager struct {
	store sessionStore
	key   string
}

// NewManager binds a storage area to the configured token key.
func NewManager(store sessionStore, key string) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if strings.TrimSpace(key) == "" {
		return nil, fmt.Errorf("token key is required")
	}
	return &Manager{store: store, key: key}, nil
}

// Persist writes the token, replacing any previous one.
func (m *Manager) Persist(ctx context.Context, token string) error {
	if strings.TrimSpace(token) == "" {
		return ErrEmptyToken
	}
	if err := m.store.Set(ctx, m.key, token); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	return nil
}

// Token returns the stored token, or "" when none is present.
func (m *Manager) Token(ctx context.Context) (string, error) {
	token, ok, err := m.store.Get(ctx, m.key)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	if !ok {
		return "", nil
	}
	return token, nil
}

// HasSession reports whether a token is currently stored.
func (m *Manager) HasSession(ctx context.Context) (bool, error) {
	token, err := m.Token(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}

// Clear removes the stored token. Clearing an empty store is not an error.
func (m *Manager) Clear(ctx context.Context) error {
	if err := m.store.Remove(ctx, m.key); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Key is the storage key the token lives under.
func (m *Manager) Key() string {
	return m.key
}
