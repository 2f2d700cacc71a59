package alert

import (
	"context"
	"sync"

	"github.com/thanesh002/Crypto-Note/internal/model"
)

const memoryHistoryCap = 1000

// MemoryStore is an in-process StateStore used for tests and dry runs.
// State does not survive a restart.
type MemoryStore struct {
	mu      sync.Mutex
	states  map[string]model.AlertState
	history []model.AlertState
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{states: make(map[string]model.AlertState)}
}

func (m *MemoryStore) Get(_ context.Context, symbol string) (*model.AlertState, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[symbol]
	if !ok {
		return nil, false, nil
	}
	return &s, true, nil
}

func (m *MemoryStore) Put(_ context.Context, state *model.AlertState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[state.Symbol] = *state
	return nil
}

func (m *MemoryStore) All(_ context.Context) ([]model.AlertState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.AlertState, 0, len(m.states))
	for _, s := range m.states {
		out = append(out, s)
	}
	return out, nil
}

func (m *MemoryStore) RecordAlert(_ context.Context, state *model.AlertState) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = append(m.history, *state)
	if len(m.history) > memoryHistoryCap {
		m.history = m.history[len(m.history)-memoryHistoryCap:]
	}
	return nil
}

// History returns a copy of the emitted-alert log, oldest first.
func (m *MemoryStore) History() []model.AlertState {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.AlertState, len(m.history))
	copy(out, m.history)
	return out
}

func (m *MemoryStore) Close() error { return nil }
