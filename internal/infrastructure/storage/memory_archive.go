package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/stockmesh/backend/internal/domain/analytics"
)

var _ analytics.SnapshotArchive = (*MemoryArchive)(nil)

// MemoryArchive keeps archived snapshots in process memory.
// Used when object storage is not configured.
type MemoryArchive struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryArchive creates an empty MemoryArchive
func NewMemoryArchive() *MemoryArchive {
	return &MemoryArchive{objects: make(map[string][]byte)}
}

// Archive stores a copy of the payload under key
func (m *MemoryArchive) Archive(_ context.Context, key string, payload []byte) (string, error) {
	if key == "" {
		return "", errors.New("storage key is required")
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)

	m.mu.Lock()
	m.objects[key] = buf
	m.mu.Unlock()
	return "memory://" + key, nil
}

// Get returns the payload stored under key
func (m *MemoryArchive) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.objects[key]
	return b, ok
}

// Len returns the number of stored objects
func (m *MemoryArchive) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
