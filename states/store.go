package states

import "sync"

// Store is the per-instance state collaborator. Component logic reads its
// state through the execution context and writes through the mutator; the
// store itself only keys by instance id.
type Store interface {
	Get(instanceID string) (any, bool)
	Set(instanceID string, state any)
	Clear(instanceID string)
}

// MemoryStore keeps instance state in process memory. Zero value is ready
// to use.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states: make(map[string]any),
	}
}

var _ Store = (*MemoryStore)(nil)

func (m *MemoryStore) Get(instanceID string) (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.states[instanceID]
	return state, ok
}

func (m *MemoryStore) Set(instanceID string, state any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.states == nil {
		m.states = make(map[string]any)
	}
	m.states[instanceID] = state
}

func (m *MemoryStore) Clear(instanceID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, instanceID)
}

// Len reports how many instances currently hold state.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.states)
}
