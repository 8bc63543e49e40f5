package tokenstore

import (
	"context"
	"sync"

	"github.com/mandaangerajaonarihery/frontend-bngrc/internal/common"
)

// MemoryStore keeps the session in process memory only.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) get(key string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[key]
}

func (m *MemoryStore) AccessToken(context.Context) (string, error) {
	return m.get(common.AccessTokenKey), nil
}

func (m *MemoryStore) RefreshToken(context.Context) (string, error) {
	return m.get(common.RefreshTokenKey), nil
}

func (m *MemoryStore) UserID(context.Context) (string, error) {
	return m.get(common.UserIDKey), nil
}

func (m *MemoryStore) SetTokens(_ context.Context, access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[common.AccessTokenKey] = access
	if refresh != "" {
		m.values[common.RefreshTokenKey] = refresh
	}
	return nil
}

func (m *MemoryStore) SetUserID(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[common.UserIDKey] = id
	return nil
}

func (m *MemoryStore) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, common.AccessTokenKey)
	delete(m.values, common.RefreshTokenKey)
	delete(m.values, common.UserIDKey)
	return nil
}
