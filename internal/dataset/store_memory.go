package dataset

import (
	"sync"
	"time"
)

// memoryStore 는 단일 프로세스용 백엔드다. 만료는 접근 시점에 걷어낸다.
type memoryStore struct {
	mu        sync.RWMutex
	snapshots map[string]*Snapshot
	expiresAt map[string]time.Time
	ttl       time.Duration
}

func newMemoryStore(ttl time.Duration) *memoryStore {
	return &memoryStore{
		snapshots: make(map[string]*Snapshot),
		expiresAt: make(map[string]time.Time),
		ttl:       ttl,
	}
}

func (m *memoryStore) save(snapshot *Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	clone := *snapshot
	m.snapshots[snapshot.ID] = &clone
	m.expiresAt[snapshot.ID] = time.Now().Add(m.ttl)
	return nil
}

func (m *memoryStore) get(id string) (*Snapshot, error) {
	m.mu.RLock()
	snapshot, ok := m.snapshots[id]
	expiry := m.expiresAt[id]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(expiry) {
		m.mu.Lock()
		delete(m.snapshots, id)
		delete(m.expiresAt, id)
		m.mu.Unlock()
		return nil, ErrNotFound
	}

	clone := *snapshot
	return &clone, nil
}

func (m *memoryStore) delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.snapshots, id)
	delete(m.expiresAt, id)
	return nil
}

func (m *memoryStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	for id, expiry := range m.expiresAt {
		if now.After(expiry) {
			delete(m.snapshots, id)
			delete(m.expiresAt, id)
		}
	}
	return len(m.snapshots)
}
