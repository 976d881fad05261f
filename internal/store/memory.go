package store

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu    sync.Mutex
	creds *Credentials
}

// NewMemory returns a Store that lives only as long as the process.
func NewMemory() Store {
	return &memoryStore{}
}

func (m *memoryStore) Load(_ context.Context) (*Credentials, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.creds == nil {
		return nil, ErrNotFound
	}

	c := *m.creds
	return &c, nil
}

func (m *memoryStore) Save(_ context.Context, creds Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.creds = &creds
	return nil
}

func (m *memoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.creds = nil
	return nil
}
