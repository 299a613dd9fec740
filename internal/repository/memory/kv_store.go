package memory

import (
	"context"
	"sync"

	"github.com/vytor/flashdeck/internal/logger"
)

// KeyValueStore keeps values in process memory. It is used by tests and
// by STORE_BACKEND=memory for throwaway sessions.
type KeyValueStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{values: make(map[string]string)}
}

func (s *KeyValueStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	logger.FromContext(ctx).WithPrefix("memory_kv").Debug("get key=%s found=%t", key, ok)
	return v, ok, nil
}

func (s *KeyValueStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	logger.FromContext(ctx).WithPrefix("memory_kv").Debug("set key=%s (%d bytes)", key, len(value))
	return nil
}

func (s *KeyValueStore) Ping(context.Context) error {
	return nil
}

// Len reports how many keys are stored.
func (s *KeyValueStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.values)
}
