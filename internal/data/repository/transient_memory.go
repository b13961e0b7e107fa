package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"google-reviews/internal/data/entity"
)

// MemoryTransientRepository is an in-process TransientRepository. Expired
// entries are dropped lazily on read.
type MemoryTransientRepository struct {
	mu      sync.Mutex
	entries map[string]entity.Transient
	now     func() time.Time
}

func NewMemoryTransientRepository() *MemoryTransientRepository {
	return &MemoryTransientRepository{
		entries: make(map[string]entity.Transient),
		now:     time.Now,
	}
}

// WithClock replaces the time source, used by tests to move past a TTL
func (r *MemoryTransientRepository) WithClock(now func() time.Time) *MemoryTransientRepository {
	r.now = now
	return r
}

func (r *MemoryTransientRepository) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[key]
	if !ok {
		return "", false, nil
	}
	if entry.Expired(r.now()) {
		delete(r.entries, key)
		return "", false, nil
	}

	return entry.Value, true, nil
}

func (r *MemoryTransientRepository) Set(_ context.Context, key, value string, ttl time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries[key] = entity.Transient{
		Key:       key,
		Value:     value,
		ExpiresAt: r.now().Add(ttl),
	}
	return nil
}

func (r *MemoryTransientRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, key)
	return nil
}

func (r *MemoryTransientRepository) DeleteByPrefix(_ context.Context, prefix string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var count int64
	for key := range r.entries {
		if strings.HasPrefix(key, prefix) {
			delete(r.entries, key)
			count++
		}
	}
	return count, nil
}
