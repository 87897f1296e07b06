// Package store provides leave.Store implementations.
package store

import (
	"sync"

	"github.com/warp/leave-tracker/leave"
)

// =============================================================================
// MEMORY STORE - In-memory registry (process lifetime)
// =============================================================================

// Memory keeps accounts in a map and remembers first-insertion order so
// List is stable across calls.
type Memory struct {
	mu       sync.RWMutex
	accounts map[leave.AccountID]*leave.Account
	order    []leave.AccountID
}

func NewMemory() *Memory {
	return &Memory{
		accounts: make(map[leave.AccountID]*leave.Account),
	}
}

// Put inserts or replaces by id. A replaced account keeps its position.
func (m *Memory) Put(a *leave.Account) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := a.ID()
	_, exists := m.accounts[id]
	if !exists {
		m.order = append(m.order, id)
	}
	m.accounts[id] = a
	return exists
}

func (m *Memory) Get(id leave.AccountID) (*leave.Account, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[id]
	return a, ok
}

// List returns a fresh slice; callers may mutate it freely.
func (m *Memory) List() []*leave.Account {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*leave.Account, 0, len(m.order))
	for _, id := range m.order {
		result = append(result, m.accounts[id])
	}
	return result
}

func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.accounts)
}

var _ leave.Store = (*Memory)(nil)
