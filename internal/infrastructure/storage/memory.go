package storage

import (
	"context"
	"sync"

	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
)

var _ repository.KeyValueStore = (*MemoryStore)(nil)

// MemoryStore almacenamiento en memoria del proceso; se pierde al reiniciar.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
	hub  *hub
}

// NewMemoryStore construye un almacenamiento vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte), hub: newHub()}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return cloneBytes(v), ok, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	s.data[key] = cloneBytes(value)
	s.mu.Unlock()
	s.hub.publish(repository.Change{Key: key, Value: cloneBytes(value)})
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	_, existed := s.data[key]
	delete(s.data, key)
	s.mu.Unlock()
	if existed {
		s.hub.publish(repository.Change{Key: key, Deleted: true})
	}
	return nil
}

func (s *MemoryStore) Watch(ctx context.Context, key string) (<-chan repository.Change, error) {
	return s.hub.watch(ctx, key), nil
}

func (s *MemoryStore) Close() error {
	s.hub.close()
	return nil
}
