package ephemeris

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru"
)

type memoryEntry struct {
	long      float64
	expiresAt time.Time
}

// MemoryStore is a bounded in-process Store. The least recently used entry is
// evicted once size is reached.
type MemoryStore struct {
	cache *lru.Cache
	now   func() time.Time
}

// NewMemoryStore constructs a store holding at most size entries.
func NewMemoryStore(size int) (*MemoryStore, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{cache: cache, now: time.Now}, nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) (float64, bool, error) {
	raw, ok := s.cache.Get(key)
	if !ok {
		return 0, false, nil
	}
	entry := raw.(memoryEntry)
	if !entry.expiresAt.IsZero() && entry.expiresAt.Before(s.now()) {
		s.cache.Remove(key)
		return 0, false, nil
	}
	return entry.long, true, nil
}

// Set implements Store. A non-positive ttl keeps the entry until evicted.
func (s *MemoryStore) Set(_ context.Context, key string, long float64, ttl time.Duration) error {
	entry := memoryEntry{long: long}
	if ttl > 0 {
		entry.expiresAt = s.now().Add(ttl)
	}
	s.cache.Add(key, entry)
	return nil
}

// Len reports the number of cached entries.
func (s *MemoryStore) Len() int {
	return s.cache.Len()
}

var _ Store = (*MemoryStore)(nil)
