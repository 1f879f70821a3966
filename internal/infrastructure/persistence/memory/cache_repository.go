// Package memory provides in-process implementations of the outbound stores
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/alchemorsel/composer/internal/ports/outbound"
)

// CacheItem represents a cached item. A zero ExpiresAt never expires.
type CacheItem struct {
	Value     []byte
	ExpiresAt time.Time
}

func (i CacheItem) expired(now time.Time) bool {
	return !i.ExpiresAt.IsZero() && now.After(i.ExpiresAt)
}

// CacheRepository implements an in-memory cache repository
type CacheRepository struct {
	data  map[string]CacheItem
	mutex sync.RWMutex
	done  chan struct{}
	once  sync.Once
}

// NewCacheRepository creates a new in-memory cache repository. Expired
// entries are swept every interval until Close is called.
func NewCacheRepository(interval time.Duration) *CacheRepository {
	repo := &CacheRepository{
		data: make(map[string]CacheItem),
		done: make(chan struct{}),
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}

	go repo.cleanup(interval)

	return repo
}

var _ outbound.CacheRepository = (*CacheRepository)(nil)

// Get retrieves a value from cache
func (r *CacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mutex.RLock()
	item, exists := r.data[key]
	r.mutex.RUnlock()

	if !exists || item.expired(time.Now()) {
		return nil, outbound.ErrCacheMiss
	}

	value := make([]byte, len(item.Value))
	copy(value, item.Value)
	return value, nil
}

// Set stores a value in cache with TTL
func (r *CacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	item := CacheItem{Value: make([]byte, len(value))}
	copy(item.Value, value)
	if ttl > 0 {
		item.ExpiresAt = time.Now().Add(ttl)
	}

	r.mutex.Lock()
	r.data[key] = item
	r.mutex.Unlock()

	return nil
}

// Delete removes a key from cache
func (r *CacheRepository) Delete(ctx context.Context, key string) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	delete(r.data, key)
	return nil
}

// Exists checks if a key exists in cache
func (r *CacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	item, exists := r.data[key]
	return exists && !item.expired(time.Now()), nil
}

// Len returns the number of stored entries, expired or not
func (r *CacheRepository) Len() int {
	r.mutex.RLock()
	defer r.mutex.RUnlock()
	return len(r.data)
}

// Close stops the sweeper
func (r *CacheRepository) Close() error {
	r.once.Do(func() { close(r.done) })
	return nil
}

// cleanup removes expired items periodically
func (r *CacheRepository) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.sweep(time.Now())
		case <-r.done:
			return
		}
	}
}

func (r *CacheRepository) sweep(now time.Time) {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	for key, item := range r.data {
		if item.expired(now) {
			delete(r.data, key)
		}
	}
}
