// Package memory holds per-process state that does not outlive the gateway.
package memory

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/soldiers/admin-gateway/internal/api/metrics"
	"github.com/soldiers/admin-gateway/internal/core/domain"
)

type cartEntry struct {
	mu       sync.Mutex
	state    *domain.CartState
	closed   bool
	lastUsed atomic.Int64 // unix nanos
}

func (e *cartEntry) touch() {
	e.lastUsed.Store(time.Now().UnixNano())
}

// CartStore keeps one cart per session. Each cart has its own lock so
// sessions never wait on each other.
type CartStore struct {
	mu      sync.RWMutex
	entries map[string]*cartEntry
	gen     atomic.Uint64
}

func NewCartStore() *CartStore {
	return &CartStore{entries: make(map[string]*cartEntry)}
}

// Open installs st as the session's cart with a fresh generation.
func (s *CartStore) Open(sessionID string, st *domain.CartState) *domain.CartState {
	st.Generation = s.gen.Add(1)
	e := &cartEntry{state: st}
	e.touch()

	s.mu.Lock()
	old, replaced := s.entries[sessionID]
	s.entries[sessionID] = e
	metrics.OpenCarts.Set(float64(len(s.entries)))
	s.mu.Unlock()

	if replaced {
		old.mu.Lock()
		old.closed = true
		old.mu.Unlock()
	}
	return st
}

func (s *CartStore) With(sessionID string, fn func(st *domain.CartState) error) error {
	s.mu.RLock()
	e, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok {
		return domain.ErrCartNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return domain.ErrCartNotFound
	}
	e.touch()
	return fn(e.state)
}

func (s *CartStore) Discard(sessionID string) {
	s.mu.Lock()
	e, ok := s.entries[sessionID]
	delete(s.entries, sessionID)
	metrics.OpenCarts.Set(float64(len(s.entries)))
	s.mu.Unlock()
	if !ok {
		return
	}
	e.mu.Lock()
	e.closed = true
	e.mu.Unlock()
}

func (s *CartStore) ReplaceCatalog(sessionID string, gen uint64, c domain.Catalog) bool {
	replaced := false
	err := s.With(sessionID, func(st *domain.CartState) error {
		if st.Generation != gen {
			return nil
		}
		st.ReplaceCatalog(c)
		replaced = true
		return nil
	})
	return err == nil && replaced
}

// Prune drops carts idle for longer than maxIdle. Carts busy at the time of
// the sweep are left for the next one.
func (s *CartStore) Prune(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle).UnixNano()

	s.mu.Lock()
	defer s.mu.Unlock()
	pruned := 0
	for id, e := range s.entries {
		if e.lastUsed.Load() > cutoff {
			continue
		}
		if !e.mu.TryLock() {
			continue
		}
		e.closed = true
		e.mu.Unlock()
		delete(s.entries, id)
		pruned++
	}
	metrics.OpenCarts.Set(float64(len(s.entries)))
	return pruned
}
