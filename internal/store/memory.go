package store

import (
	"context"
	"sync"
)

// MemoryProgressRepo keeps snapshots in memory. Used by tests and by
// throwaway sessions that should not touch the database.
type MemoryProgressRepo struct {
	mu   sync.Mutex
	data map[string][]byte

	// GetErr, PutErr and DeleteErr, when set, are returned from the
	// matching calls.
	GetErr    error
	PutErr    error
	DeleteErr error
}

// NewMemoryProgressRepo creates an empty in-memory repo.
func NewMemoryProgressRepo() *MemoryProgressRepo {
	return &MemoryProgressRepo{data: make(map[string][]byte)}
}

func (m *MemoryProgressRepo) Get(_ context.Context, scope Scope) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetErr != nil {
		return nil, m.GetErr
	}
	b, ok := m.data[scope.Key()]
	if !ok {
		return nil, nil
	}
	return append([]byte(nil), b...), nil
}

func (m *MemoryProgressRepo) Put(_ context.Context, scope Scope, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.PutErr != nil {
		return m.PutErr
	}
	m.data[scope.Key()] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryProgressRepo) Delete(_ context.Context, scope Scope) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.DeleteErr != nil {
		return m.DeleteErr
	}
	delete(m.data, scope.Key())
	return nil
}

// Len returns the number of stored snapshots.
func (m *MemoryProgressRepo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.data)
}
