package store

import (
	"context"
	"path"
	"sync"
	"time"

	"github.com/serroba/portfolio-go/internal/ratelimit"
)

// MemoryWindowStore is an in-memory implementation of ratelimit.WindowStore
// for tests and local development. TTLs are honored lazily on access.
type MemoryWindowStore struct {
	mu        sync.Mutex
	lists     map[string][]int64
	deadlines map[string]time.Time
}

// NewMemoryWindowStore creates a new in-memory window store.
func NewMemoryWindowStore() *MemoryWindowStore {
	return &MemoryWindowStore{
		lists:     make(map[string][]int64),
		deadlines: make(map[string]time.Time),
	}
}

func (s *MemoryWindowStore) Entries(_ context.Context, key string) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked(key)

	return append([]int64(nil), s.lists[key]...), nil
}

func (s *MemoryWindowStore) Trim(_ context.Context, key string, start, stop int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.lists[key]
	size := int64(len(list))

	if start < 0 {
		start += size
	}

	if stop < 0 {
		stop += size
	}

	if start >= size || start > stop {
		delete(s.lists, key)

		return nil
	}

	if stop >= size {
		stop = size - 1
	}

	s.lists[key] = list[start : stop+1]

	return nil
}

func (s *MemoryWindowStore) Append(_ context.Context, key string, ts int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.expireLocked(key)
	s.lists[key] = append(s.lists[key], ts)

	return nil
}

func (s *MemoryWindowStore) Expire(_ context.Context, key string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.deadlines[key] = time.Now().Add(ttl)

	return nil
}

func (s *MemoryWindowStore) Keys(_ context.Context, pattern string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var keys []string

	for k := range s.lists {
		if ok, _ := path.Match(pattern, k); ok {
			keys = append(keys, k)
		}
	}

	return keys, nil
}

func (s *MemoryWindowStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, k := range keys {
		delete(s.lists, k)
		delete(s.deadlines, k)
	}

	return nil
}

func (s *MemoryWindowStore) expireLocked(key string) {
	if deadline, ok := s.deadlines[key]; ok && time.Now().After(deadline) {
		delete(s.lists, key)
		delete(s.deadlines, key)
	}
}

// Compile-time check.
var _ ratelimit.WindowStore = (*MemoryWindowStore)(nil)
