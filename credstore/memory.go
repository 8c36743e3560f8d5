package credstore

import (
	"context"
	"sync"
)

// Memory is a process-local Store for tests and ephemeral sessions. The
// session does not survive a restart.
type Memory struct {
	mu       sync.Mutex
	pair     Pair
	identity []byte
	present  bool
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// Save implements Store.
func (m *Memory) Save(_ context.Context, pair Pair, identity []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = pair
	m.identity = append([]byte(nil), identity...)
	m.present = true
	return nil
}

// Load implements Store.
func (m *Memory) Load(_ context.Context) (Pair, []byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.present {
		return Pair{}, nil, nil
	}
	return m.pair, append([]byte(nil), m.identity...), nil
}

// Clear implements Store.
func (m *Memory) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pair = Pair{}
	m.identity = nil
	m.present = false
	return nil
}
