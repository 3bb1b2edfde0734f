package repository

import (
	"context"
	"sync"
)

// MemoryBlobStore in-memory хранилище, живёт до конца процесса
type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string]string
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string]string)}
}

// Ensure interfaces
var _ BlobStore = (*MemoryBlobStore)(nil)

func (m *MemoryBlobStore) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.blobs[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *MemoryBlobStore) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = value
	return nil
}
