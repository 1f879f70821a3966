package memory

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/alchemorsel/composer/internal/domain/composition"
	"github.com/alchemorsel/composer/internal/ports/outbound"
	"github.com/google/uuid"
)

type compositionEntry struct {
	mu          sync.Mutex
	composition *composition.Composition
	// lastAccess is a unix nano timestamp, written under the store's read lock
	lastAccess atomic.Int64
}

// CompositionStore keeps session compositions in process memory. Each
// composition has its own lock so edits to different compositions never
// contend. Compositions left idle are dropped once eviction is started.
type CompositionStore struct {
	mutex   sync.RWMutex
	entries map[uuid.UUID]*compositionEntry
	now     func() time.Time

	done chan struct{}
	once sync.Once
}

// NewCompositionStore creates an empty composition store
func NewCompositionStore() *CompositionStore {
	return &CompositionStore{
		entries: make(map[uuid.UUID]*compositionEntry),
		now:     time.Now,
		done:    make(chan struct{}),
	}
}

var _ outbound.CompositionStore = (*CompositionStore)(nil)

// StartEviction sweeps compositions not read or written for idleTTL, every
// interval, until Close is called. A non-positive idleTTL disables eviction.
func (s *CompositionStore) StartEviction(idleTTL, interval time.Duration) {
	if idleTTL <= 0 {
		return
	}
	if interval <= 0 {
		interval = time.Minute
	}
	go s.evict(idleTTL, interval)
}

// Close stops the eviction sweeper
func (s *CompositionStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

// Create stores a new composition
func (s *CompositionStore) Create(ctx context.Context, c *composition.Composition) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.entries[c.ID()]; exists {
		return composition.ErrDuplicateComposition
	}
	entry := &compositionEntry{composition: c}
	entry.lastAccess.Store(s.now().UnixNano())
	s.entries[c.ID()] = entry
	return nil
}

// View runs fn with the composition locked. fn must not retain c.
func (s *CompositionStore) View(ctx context.Context, id uuid.UUID, fn func(c *composition.Composition) error) error {
	return s.with(ctx, id, fn)
}

// Update runs fn with the composition locked; mutations made by fn are kept
func (s *CompositionStore) Update(ctx context.Context, id uuid.UUID, fn func(c *composition.Composition) error) error {
	return s.with(ctx, id, fn)
}

// Delete removes a composition
func (s *CompositionStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, exists := s.entries[id]; !exists {
		return composition.ErrCompositionNotFound
	}
	delete(s.entries, id)
	return nil
}

// Count returns the number of stored compositions
func (s *CompositionStore) Count(ctx context.Context) (int, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	return len(s.entries), nil
}

func (s *CompositionStore) with(ctx context.Context, id uuid.UUID, fn func(c *composition.Composition) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mutex.RLock()
	entry, exists := s.entries[id]
	if exists {
		entry.lastAccess.Store(s.now().UnixNano())
	}
	s.mutex.RUnlock()
	if !exists {
		return composition.ErrCompositionNotFound
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return fn(entry.composition)
}

func (s *CompositionStore) evict(idleTTL, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(s.now().Add(-idleTTL))
		case <-s.done:
			return
		}
	}
}

// sweep drops compositions last accessed before cutoff and returns how many
func (s *CompositionStore) sweep(cutoff time.Time) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	removed := 0
	for id, entry := range s.entries {
		if entry.lastAccess.Load() < cutoff.UnixNano() {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}
