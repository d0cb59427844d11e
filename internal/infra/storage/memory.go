package storage

import (
	"context"
	"sync"

	domain "github.com/promptlift/cli/internal/domain"
)

// MemoryStore implements domain.UsageStore with an in-memory slice.
// It lets the usage ledger work without persistent storage, e.g. in
// tests or one-shot command invocations.
type MemoryStore struct {
	events []domain.TokenUsageEvent
	mutex  sync.RWMutex
}

// NewMemoryStore creates a new in-memory usage store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Append adds an event, evicting the oldest once the cap is exceeded
func (m *MemoryStore) Append(ctx context.Context, event domain.TokenUsageEvent) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.events = append(m.events, event)
	if len(m.events) > MaxEvents {
		m.events = m.events[len(m.events)-MaxEvents:]
	}

	return nil
}

// List returns all retained events in insertion order
func (m *MemoryStore) List(ctx context.Context) ([]domain.TokenUsageEvent, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	events := make([]domain.TokenUsageEvent, len(m.events))
	copy(events, m.events)
	return events, nil
}

// Close clears the store
func (m *MemoryStore) Close() error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.events = nil
	return nil
}

// Health reports whether the store is usable
func (m *MemoryStore) Health(ctx context.Context) error {
	return nil
}
