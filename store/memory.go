package store

import (
	"context"
	"sync"
	"time"
)

type memoryRecord struct {
	vars  Vars
	ctime time.Time
	atime time.Time
}

// MemoryStore implements Store with process-local storage. It is intended
// for tests and single-process deployments; session data does not survive a
// restart.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*memoryRecord
	timeout time.Duration
}

// NewMemoryStore creates an in-memory session store with the given idle
// timeout.
func NewMemoryStore(timeout time.Duration) *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*memoryRecord),
		timeout: timeout,
	}
}

// Save persists vars under id, deleting the record when vars is empty.
// The creation time is preserved across updates.
func (m *MemoryStore) Save(ctx context.Context, id string, vars Vars) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(vars) == 0 {
		delete(m.records, id)
		return nil
	}

	now := time.Now()
	rec, exists := m.records[id]
	if !exists {
		rec = &memoryRecord{ctime: now}
		m.records[id] = rec
	}
	rec.atime = now
	rec.vars = vars.Clone()
	return nil
}

// Load returns the vars stored under id or ErrTimedOut.
func (m *MemoryStore) Load(ctx context.Context, id string) (Vars, error) {
	m.mu.RLock()
	rec, exists := m.records[id]
	m.mu.RUnlock()

	if !exists || time.Since(rec.atime) > m.timeout {
		return nil, ErrTimedOut
	}

	return rec.vars.Clone(), nil
}

// GC removes every record past its idle deadline.
func (m *MemoryStore) GC(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := time.Now().Add(-m.timeout)
	for id, rec := range m.records {
		if !rec.atime.After(cutoff) {
			delete(m.records, id)
		}
	}
	return nil
}

// Len reports the number of live records. Expired records that have not
// been collected yet are counted.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}
