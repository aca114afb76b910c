// Package cache implements the bounded replacement cache shared by the
// corrector: (lowercased word, context window) -> replacement, evicted in
// insertion order and persisted wholesale after every store.
package cache

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"
)

const (
	// DefaultMaxWords is the default ceiling on distinct cached words.
	DefaultMaxWords = 10000
	// KeySep joins a context window into its cache key.
	KeySep = "|"
)

// Entry holds every cached context for one word.
type Entry struct {
	Word     string
	Contexts map[string]string
}

// Snapshot is the persisted form of the cache, oldest word first.
type Snapshot struct {
	Words []Entry
}

// Backend persists snapshots. Save always receives the complete cache.
type Backend interface {
	Load(ctx context.Context) (*Snapshot, error)
	Save(ctx context.Context, s *Snapshot) error
}

// Cache is safe for concurrent use. Store holds the lock across the
// check-evict-insert-persist sequence.
type Cache struct {
	mu       sync.Mutex
	backend  Backend
	maxWords int
	timeout  time.Duration
	logger   *log.Logger

	order   []string
	entries map[string]map[string]string
}

// Option configures a Cache.
type Option func(*Cache)

// WithMaxWords sets the distinct-word ceiling. Values below 1 are ignored.
func WithMaxWords(n int) Option {
	return func(c *Cache) {
		if n > 0 {
			c.maxWords = n
		}
	}
}

// WithLogger sets the logger used for load and persistence warnings.
func WithLogger(l *log.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithTimeout bounds every backend call.
func WithTimeout(d time.Duration) Option {
	return func(c *Cache) { c.timeout = d }
}

// Open creates a cache over backend and loads its prior state. Open never
// fails: an unreadable or corrupt store yields an empty cache. A nil backend
// keeps the cache in memory only.
func Open(backend Backend, opts ...Option) *Cache {
	c := &Cache{
		backend:  backend,
		maxWords: DefaultMaxWords,
		timeout:  5 * time.Second,
		logger:   log.Default(),
		entries:  make(map[string]map[string]string),
	}
	for _, o := range opts {
		o(c)
	}
	if backend == nil {
		return c
	}

	ctx, cancel := c.ioContext()
	defer cancel()
	snap, err := backend.Load(ctx)
	if err != nil {
		c.logger.Printf("warning: cache load failed, starting empty: %v", err)
		return c
	}
	if snap == nil {
		return c
	}
	for _, e := range snap.Words {
		w := strings.ToLower(e.Word)
		if w == "" {
			continue
		}
		m, ok := c.entries[w]
		if !ok {
			m = make(map[string]string, len(e.Contexts))
			c.entries[w] = m
			c.order = append(c.order, w)
		}
		for k, v := range e.Contexts {
			m[k] = v
		}
	}
	for len(c.order) > c.maxWords {
		c.evictOldest()
	}
	return c
}

func (c *Cache) ioContext() (context.Context, context.CancelFunc) {
	if c.timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), c.timeout)
}

// ContextKey joins a context window into a cache key.
func ContextKey(window []string) string {
	return strings.Join(window, KeySep)
}

// Lookup returns the replacement cached for word in window.
func (c *Cache) Lookup(word string, window []string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	m, ok := c.entries[strings.ToLower(word)]
	if !ok {
		return "", false
	}
	v, ok := m[ContextKey(window)]
	return v, ok
}

// Store records replacement for word in window and persists the whole cache.
// When word is new and the ceiling is reached, the oldest inserted word is
// evicted first. A persistence error leaves the in-memory state in place and
// is returned for the caller to report.
func (c *Cache) Store(word string, window []string, replacement string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.storeLocked(strings.ToLower(word), window, replacement)
}

// LoadOrStore returns the replacement cached for word in window. On a miss it
// calls compute and, when compute reports a replacement, stores and persists
// it. The lookup, compute and store run under one lock acquisition, so
// concurrent callers missing on the same key compute it once.
func (c *Cache) LoadOrStore(word string, window []string, compute func() (string, bool)) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	w := strings.ToLower(word)
	if v, ok := c.entries[w][ContextKey(window)]; ok {
		return v, true, nil
	}
	v, ok := compute()
	if !ok {
		return "", false, nil
	}
	return v, true, c.storeLocked(w, window, v)
}

func (c *Cache) storeLocked(w string, window []string, replacement string) error {
	m, ok := c.entries[w]
	if !ok {
		if len(c.order) >= c.maxWords {
			c.evictOldest()
		}
		m = make(map[string]string)
		c.entries[w] = m
		c.order = append(c.order, w)
	}
	m[ContextKey(window)] = replacement

	if c.backend == nil {
		return nil
	}
	ctx, cancel := c.ioContext()
	defer cancel()
	return c.backend.Save(ctx, c.snapshotLocked())
}

func (c *Cache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	delete(c.entries, c.order[0])
	c.order = append(c.order[:0:0], c.order[1:]...)
}

func (c *Cache) snapshotLocked() *Snapshot {
	s := &Snapshot{Words: make([]Entry, 0, len(c.order))}
	for _, w := range c.order {
		src := c.entries[w]
		ctxs := make(map[string]string, len(src))
		for k, v := range src {
			ctxs[k] = v
		}
		s.Words = append(s.Words, Entry{Word: w, Contexts: ctxs})
	}
	return s
}

// Len returns the number of distinct cached words.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Words returns the cached words in insertion order.
func (c *Cache) Words() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.order...)
}
