// Package substitute rewrites tokens towards a register: a fixed dictionary
// with context overrides, per-mode lemma tables, and synonym groups.
package substitute

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/rules.yaml
var defaultRules []byte

// Trigger overrides a rule's default when Word appears in the context window.
type Trigger struct {
	Word        string
	Replacement string
}

// Rule is one fixed-dictionary entry.
type Rule struct {
	Term     string
	Default  string
	Contexts []Trigger
}

// triggers decodes a YAML mapping into a slice in document order.
type triggers []Trigger

func (t *triggers) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: contexts must be a mapping", value.Line)
	}
	out := make(triggers, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		k, v := value.Content[i], value.Content[i+1]
		if v.Kind != yaml.ScalarNode {
			return fmt.Errorf("line %d: replacement for %q must be a string", v.Line, k.Value)
		}
		out = append(out, Trigger{Word: strings.ToLower(k.Value), Replacement: v.Value})
	}
	*t = out
	return nil
}

// Rules holds the fixed dictionary and the mode tables. It is read-only
// after loading.
type Rules struct {
	Fixed map[string]Rule
	Modes map[Mode]map[string]string
}

type rulesFile struct {
	Fixed map[string]struct {
		Default  string   `yaml:"default"`
		Contexts triggers `yaml:"contexts"`
	} `yaml:"fixed"`
	Modes map[string]map[string]string `yaml:"modes"`
}

// LoadRules reads a rules YAML file.
//
// Expected format:
//
//	fixed:
//	  escuela:
//	    default: institución
//	    contexts:
//	      educativa: institución educativa
//	modes:
//	  formal:
//	    hacer: realizar
func LoadRules(path string) (*Rules, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules: %w", err)
	}
	r, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return r, nil
}

// ParseRules decodes rules from YAML. Terms, triggers and lemmas are
// lowercased.
func ParseRules(data []byte) (*Rules, error) {
	var f rulesFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse rules: %w", err)
	}
	r := &Rules{
		Fixed: make(map[string]Rule, len(f.Fixed)),
		Modes: make(map[Mode]map[string]string, len(f.Modes)),
	}
	for term, e := range f.Fixed {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" || e.Default == "" {
			return nil, fmt.Errorf("parse rules: fixed rule %q needs a default", term)
		}
		r.Fixed[term] = Rule{Term: term, Default: e.Default, Contexts: e.Contexts}
	}
	for name, table := range f.Modes {
		m, err := ParseMode(name)
		if err != nil {
			return nil, fmt.Errorf("parse rules: %w", err)
		}
		if m == ModeNone {
			return nil, fmt.Errorf("parse rules: table for mode %q", name)
		}
		t := make(map[string]string, len(table))
		for lemma, repl := range table {
			t[strings.ToLower(lemma)] = repl
		}
		r.Modes[m] = t
	}
	return r, nil
}

// DefaultRules returns the bundled Spanish rules.
func DefaultRules() *Rules {
	r, err := ParseRules(defaultRules)
	if err != nil {
		panic(err)
	}
	return r
}

// Table returns the lemma table for m, or nil.
func (r *Rules) Table(m Mode) map[string]string {
	if r == nil {
		return nil
	}
	return r.Modes[m]
}

// Resolve picks the replacement for term given a context window: the first
// window word that is a trigger wins, otherwise the default.
func (r Rule) Resolve(window []string) string {
	for _, w := range window {
		lw := strings.ToLower(w)
		for _, t := range r.Contexts {
			if t.Word == lw {
				return t.Replacement
			}
		}
	}
	return r.Default
}
