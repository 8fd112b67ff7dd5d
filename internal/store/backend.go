package store

import (
	"context"
	"sync"
)

// SnapshotKey is the key under which the whole dataset is persisted.
const SnapshotKey = "ic_store_v1"

// Backend persists the serialized snapshot document under a single key.
// Load returns ErrNoSnapshot when nothing has been stored yet.
type Backend interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
}

// MemoryBackend keeps the snapshot in process memory. It backs tests and
// ephemeral deployments.
type MemoryBackend struct {
	mu   sync.Mutex
	data []byte

	// FailSaves makes every Save return the given error when non-nil.
	FailSaves error
}

// NewMemoryBackend returns an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{}
}

// Load implements Backend.
func (m *MemoryBackend) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNoSnapshot
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, nil
}

// Save implements Backend.
func (m *MemoryBackend) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailSaves != nil {
		return m.FailSaves
	}
	m.data = make([]byte, len(data))
	copy(m.data, data)
	return nil
}
