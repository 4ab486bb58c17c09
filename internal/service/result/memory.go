package result

import (
	"context"
	"fmt"
	"sync"

	"github.com/kapu/ayovirals-go/internal/domain"
)

// MemoryStore keeps records in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*domain.VideoRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*domain.VideoRecord)}
}

func (m *MemoryStore) Name() string {
	return "memory"
}

func (m *MemoryStore) Save(_ context.Context, record *domain.VideoRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.records[record.ID]; exists {
		return fmt.Errorf("record %s already exists", record.ID)
	}
	m.records[record.ID] = cloneRecord(record)
	return nil
}

func (m *MemoryStore) FindByID(_ context.Context, id string) (*domain.VideoRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRecord(record), nil
}

func (m *MemoryStore) Ping(context.Context) error {
	return nil
}

// Len reports how many records are held.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

func cloneRecord(r *domain.VideoRecord) *domain.VideoRecord {
	c := *r
	c.Hooks = append([]string(nil), r.Hooks...)
	c.Keywords = append([]string(nil), r.Keywords...)
	return &c
}
