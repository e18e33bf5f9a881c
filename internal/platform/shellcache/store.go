// Package shellcache keeps the application shell (login page, stylesheet,
// script, manifest and the vendored icon/font stylesheets) in named cache
// generations so the shell can still be served when its origin fails.
package shellcache

import (
	"net/http"
	"slices"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Entry is a stored response.
type Entry struct {
	Status   int
	Header   http.Header
	Body     []byte
	StoredAt time.Time
}

// Store holds named cache generations. Each generation is an LRU keyed by
// request URI.
type Store struct {
	mu          sync.RWMutex
	size        int
	generations map[string]*lru.Cache[string, Entry]
}

// NewStore creates a store whose generations hold up to size entries each.
func NewStore(size int) *Store {
	if size <= 0 {
		size = 64
	}
	return &Store{size: size, generations: make(map[string]*lru.Cache[string, Entry])}
}

// Open returns the named generation, creating it when missing.
func (s *Store) Open(name string) *lru.Cache[string, Entry] {
	s.mu.RLock()
	gen, ok := s.generations[name]
	s.mu.RUnlock()
	if ok {
		return gen
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen, ok = s.generations[name]; ok {
		return gen
	}
	// lru.New only fails for a non-positive size, which NewStore rules out.
	gen, _ = lru.New[string, Entry](s.size)
	s.generations[name] = gen
	return gen
}

// Lookup returns the generation without creating it.
func (s *Store) Lookup(name string) (*lru.Cache[string, Entry], bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	gen, ok := s.generations[name]
	return gen, ok
}

// Names lists the generations in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.generations))
	for name := range s.generations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Delete drops a generation. It reports whether it existed.
func (s *Store) Delete(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	gen, ok := s.generations[name]
	if !ok {
		return false
	}
	gen.Purge()
	delete(s.generations, name)
	return true
}
