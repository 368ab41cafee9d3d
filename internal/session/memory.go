package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

type memoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore keeps sessions in process. Expired entries are purged every
// cleanupInterval.
func NewMemoryStore(cleanupInterval time.Duration) Store {
	return &memoryStore{
		cache: cache.New(cache.NoExpiration, cleanupInterval),
	}
}

func (m *memoryStore) Save(_ context.Context, s *Session, ttl time.Duration) error {
	cp := *s
	cp.Roles = append([]string(nil), s.Roles...)
	m.cache.Set(s.ID, cp, ttl)
	return nil
}

func (m *memoryStore) Get(_ context.Context, id string) (*Session, error) {
	v, ok := m.cache.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	s := v.(Session)
	s.Roles = append([]string(nil), s.Roles...)
	return &s, nil
}

func (m *memoryStore) Delete(_ context.Context, id string) error {
	m.cache.Delete(id)
	return nil
}
