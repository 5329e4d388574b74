package storage

import (
	"context"
	"io"
	"sync"

	"github.com/pkg/errors"

	"virtualab/apperror"
)

// MemoryStore keeps objects in a map. It backs tests and local runs without a file server.
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[Bucket]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[Bucket]map[string][]byte)}
}

func (m *MemoryStore) Upload(_ context.Context, bucket Bucket, name string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return apperror.Transport("Failed to upload file!", errors.Wrap(err, "read upload"))
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects[bucket] == nil {
		m.objects[bucket] = make(map[string][]byte)
	}
	m.objects[bucket][name] = data
	return nil
}

func (m *MemoryStore) Download(_ context.Context, bucket Bucket, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.objects[bucket][name]
	if !ok {
		return nil, apperror.NotFound("File not found!")
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

func (m *MemoryStore) Delete(_ context.Context, bucket Bucket, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[bucket][name]; !ok {
		return apperror.NotFound("File not found!")
	}
	delete(m.objects[bucket], name)
	return nil
}

// Has reports whether an object exists.
func (m *MemoryStore) Has(bucket Bucket, name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.objects[bucket][name]
	return ok
}
