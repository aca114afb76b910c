// Package vocab holds the case-insensitive word sets the corrector checks
// tokens against: the reference vocabulary and the stop-word list.
package vocab

import (
	"embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"formalizer/internal/wordfile"
)

// ErrEmpty is returned when a word list yields no words.
var ErrEmpty = errors.New("vocab: no words loaded")

//go:embed data/stopwords_es.txt
var dataFS embed.FS

// Set is a lowercase word set. It is safe for concurrent use; writes only
// happen when custom words are added or removed at runtime.
type Set struct {
	mu    sync.RWMutex
	words map[string]struct{}
}

// New builds a set from the given words.
func New(words ...string) *Set {
	s := &Set{words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		s.add(w)
	}
	return s
}

// LoadFile reads a word list. Each line holds a word, optionally followed by
// a frequency column as in frequency dictionaries; only the first field is used.
func LoadFile(path string) (*Set, error) {
	s := New()
	err := wordfile.Read(path, func(line string) error {
		s.add(firstField(line))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("load word list: %w", err)
	}
	if s.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrEmpty)
	}
	return s, nil
}

// DefaultStopwords returns the bundled Spanish stop-word list.
func DefaultStopwords() *Set {
	data, err := dataFS.ReadFile("data/stopwords_es.txt")
	if err != nil {
		panic(fmt.Sprintf("vocab: embedded stopwords: %v", err))
	}
	s := New()
	_ = wordfile.Scan(data, func(line string) error {
		s.add(firstField(line))
		return nil
	})
	return s
}

func firstField(line string) string {
	if i := strings.IndexAny(line, " \t"); i >= 0 {
		return line[:i]
	}
	return line
}

func (s *Set) add(w string) {
	w = strings.ToLower(strings.TrimSpace(w))
	if w == "" {
		return
	}
	s.words[w] = struct{}{}
}

// Contains reports whether the lowercase form of w is in the set.
func (s *Set) Contains(w string) bool {
	if s == nil {
		return false
	}
	s.mu.RLock()
	_, ok := s.words[strings.ToLower(w)]
	s.mu.RUnlock()
	return ok
}

// Add inserts w and reports whether it was new.
func (s *Set) Add(w string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	lw := strings.ToLower(strings.TrimSpace(w))
	if lw == "" {
		return false
	}
	if _, ok := s.words[lw]; ok {
		return false
	}
	s.words[lw] = struct{}{}
	return true
}

// Remove deletes w from the set.
func (s *Set) Remove(w string) {
	s.mu.Lock()
	delete(s.words, strings.ToLower(w))
	s.mu.Unlock()
}

// Len returns the number of words.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// Each calls fn for every word in unspecified order. fn must not modify the set.
func (s *Set) Each(fn func(word string)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for w := range s.words {
		fn(w)
	}
}
