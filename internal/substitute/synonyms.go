package substitute

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed data/synonyms.yaml
var defaultSynonyms []byte

// Synonyms stores groups of interchangeable words.
type Synonyms struct {
	groups [][]string
	// word -> indexes into groups
	index map[string][]int
}

// NewSynonyms returns an empty lexicon.
func NewSynonyms() *Synonyms {
	return &Synonyms{index: make(map[string][]int)}
}

// LoadSynonyms reads synonym groups from a YAML file.
//
// Expected format:
//
//	synonyms:
//	  - canonical: coche
//	    variants: [automóvil, vehículo]
func LoadSynonyms(path string) (*Synonyms, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read synonyms: %w", err)
	}
	s, err := ParseSynonyms(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// ParseSynonyms decodes synonym groups from YAML.
func ParseSynonyms(data []byte) (*Synonyms, error) {
	var config struct {
		Synonyms []struct {
			Canonical string   `yaml:"canonical"`
			Variants  []string `yaml:"variants"`
		} `yaml:"synonyms"`
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parse synonyms: %w", err)
	}
	s := NewSynonyms()
	for _, e := range config.Synonyms {
		s.AddGroup(append([]string{e.Canonical}, e.Variants...)...)
	}
	return s, nil
}

// DefaultSynonyms returns the bundled groups.
func DefaultSynonyms() *Synonyms {
	s, err := ParseSynonyms(defaultSynonyms)
	if err != nil {
		panic(err)
	}
	return s
}

// AddGroup registers words as mutual synonyms. Words are lowercased and
// deduplicated; groups of fewer than two words are ignored.
func (s *Synonyms) AddGroup(words ...string) {
	seen := make(map[string]bool, len(words))
	group := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		group = append(group, w)
	}
	if len(group) < 2 {
		return
	}
	id := len(s.groups)
	s.groups = append(s.groups, group)
	for _, w := range group {
		s.index[w] = append(s.index[w], id)
	}
}

// Of returns every synonym of word, sorted, without word itself.
func (s *Synonyms) Of(word string) []string {
	if s == nil {
		return nil
	}
	lw := strings.ToLower(word)
	seen := make(map[string]bool)
	var out []string
	for _, id := range s.index[lw] {
		for _, w := range s.groups[id] {
			if w != lw && !seen[w] {
				seen[w] = true
				out = append(out, w)
			}
		}
	}
	sort.Strings(out)
	return out
}

// Best returns the longest single-word synonym of word accepted by known,
// breaking ties by the lexicographically greatest.
func (s *Synonyms) Best(word string, known func(string) bool) (string, bool) {
	best, bestLen := "", -1
	for _, c := range s.Of(word) {
		if strings.ContainsAny(c, " _") {
			continue
		}
		if known != nil && !known(c) {
			continue
		}
		n := utf8.RuneCountInString(c)
		if n > bestLen || (n == bestLen && c > best) {
			best, bestLen = c, n
		}
	}
	return best, bestLen >= 0
}

// Len returns the number of groups.
func (s *Synonyms) Len() int {
	if s == nil {
		return 0
	}
	return len(s.groups)
}
