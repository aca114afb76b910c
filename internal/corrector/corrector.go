// Package corrector fixes misspelled tokens by replacing them with the
// nearest vocabulary word, consulting the replacement cache first.
//
// Verbs and stop words are never respelled: nearest-match substitution would
// destroy conjugated forms. The nearest-word search is a linear scan of the
// vocabulary, O(|V|) per unknown token; UseIndex swaps in a BK-tree built
// once at construction, which returns the same word.
package corrector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"

	"formalizer/internal/annotator"
	"formalizer/internal/cache"
	"formalizer/internal/customdict"
	"formalizer/internal/textcase"
	"formalizer/internal/vocab"
)

// SpellCorrector is safe for concurrent use.
type SpellCorrector struct {
	config CorrectorConfig
	vocab  *vocab.Set
	stops  *vocab.Set
	cache  *cache.Cache
	dict   *customdict.CustomDict
	logger *log.Logger

	mu          sync.RWMutex
	index       *bkTree
	customWords map[string]bool
}

// Option configures a SpellCorrector.
type Option func(*SpellCorrector)

// WithCache makes the corrector consult and populate c.
func WithCache(c *cache.Cache) Option {
	return func(sc *SpellCorrector) { sc.cache = c }
}

// WithCustomDict loads words from dict at construction and persists custom
// words added later.
func WithCustomDict(dict *customdict.CustomDict) Option {
	return func(sc *SpellCorrector) { sc.dict = dict }
}

// WithLogger sets the logger for non-fatal warnings.
func WithLogger(l *log.Logger) Option {
	return func(sc *SpellCorrector) {
		if l != nil {
			sc.logger = l
		}
	}
}

// NewSpellCorrector builds a corrector over the given vocabulary and
// stop-word sets. stops may be nil.
func NewSpellCorrector(cfg CorrectorConfig, vocabulary, stops *vocab.Set, opts ...Option) (*SpellCorrector, error) {
	if vocabulary == nil {
		return nil, errors.New("corrector: vocabulary is required")
	}
	if cfg.MaxEditDistance < 0 {
		return nil, fmt.Errorf("corrector: negative MaxEditDistance %d", cfg.MaxEditDistance)
	}
	if stops == nil {
		stops = vocab.New()
	}
	sc := &SpellCorrector{
		config:      cfg,
		vocab:       vocabulary,
		stops:       stops,
		logger:      log.Default(),
		customWords: make(map[string]bool),
	}
	for _, o := range opts {
		o(sc)
	}
	sc.loadCustomWords()
	if cfg.UseIndex {
		sc.index = &bkTree{}
		vocabulary.Each(sc.index.add)
	}
	return sc, nil
}

func (sc *SpellCorrector) loadCustomWords() {
	if sc.dict == nil {
		return
	}
	words, err := sc.dict.All(context.Background())
	if err != nil {
		sc.logger.Printf("warning: could not load custom words: %v", err)
		return
	}
	for _, w := range words {
		lw := strings.ToLower(w)
		if sc.vocab.Add(lw) {
			sc.customWords[lw] = true
		}
	}
}

// Correct returns one Pair per token, in order.
func (sc *SpellCorrector) Correct(tokens []annotator.Token) []Pair {
	out := make([]Pair, len(tokens))
	leading := true
	for i, tok := range tokens {
		out[i] = Pair{Original: tok.Text, Corrected: tok.Text}
		if !tok.Alpha {
			continue
		}
		first := leading
		leading = false

		lw := strings.ToLower(tok.Text)
		if tok.POS == annotator.Verb || sc.stops.Contains(lw) {
			continue
		}
		if sc.vocab.Contains(lw) {
			continue
		}
		if sc.config.SkipProperNouns && !first && textcase.IsTitle(tok.Text) {
			continue
		}

		window := annotator.Window(tokens, i, annotator.ContextRadius)
		nearest := func() (string, bool) {
			match, dist, ok := sc.Nearest(lw)
			return match, ok && dist <= sc.config.MaxEditDistance
		}
		if sc.cache == nil {
			if match, ok := nearest(); ok {
				out[i].Corrected = sc.shape(tok.Text, match)
			}
			continue
		}
		match, ok, err := sc.cache.LoadOrStore(lw, window, nearest)
		if err != nil {
			sc.logger.Printf("warning: cache persistence failed: %v", err)
		}
		if ok {
			out[i].Corrected = sc.shape(tok.Text, match)
		}
	}
	return out
}

func (sc *SpellCorrector) shape(original, word string) string {
	if !sc.config.PreserveCase {
		return word
	}
	return textcase.Match(original, word)
}

// Nearest returns the vocabulary word closest to the lowercase form of word,
// its distance, and whether any candidate was found. With the index enabled
// only words within MaxEditDistance are considered, which does not change
// which corrections are accepted.
func (sc *SpellCorrector) Nearest(word string) (string, int, bool) {
	lw := strings.ToLower(word)
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	if sc.index != nil {
		return sc.index.nearest(lw, sc.config.MaxEditDistance, sc.vocab.Contains)
	}
	return sc.nearestLinear(lw)
}

// nearestLinear scans the whole vocabulary.
func (sc *SpellCorrector) nearestLinear(lw string) (string, int, bool) {
	bestW, bestD, found := "", 0, false
	n := len([]rune(lw))
	sc.vocab.Each(func(w string) {
		// the length difference is a lower bound on the distance
		if found && abs(len([]rune(w))-n) > bestD {
			return
		}
		d := levenshtein(lw, w)
		if !found || better(d, w, bestD, bestW) {
			bestW, bestD, found = w, d, true
		}
	})
	return bestW, bestD, found
}

// AddCustomWord makes word part of the vocabulary and stores it in the
// custom dictionary when one is configured. A word already in the base
// vocabulary is stored but not tracked as custom, so removing it later
// leaves the vocabulary intact.
func (sc *SpellCorrector) AddCustomWord(word string) error {
	lw := strings.ToLower(strings.TrimSpace(word))
	if lw == "" {
		return errors.New("corrector: empty word")
	}
	if sc.dict != nil {
		if err := sc.dict.Add(context.Background(), lw); err != nil {
			return err
		}
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if !sc.vocab.Add(lw) {
		return nil
	}
	sc.customWords[lw] = true
	if sc.index != nil {
		sc.index.add(lw)
	}
	return nil
}

// RemoveCustomWord removes a word previously added with AddCustomWord.
// Words from the base vocabulary are left alone.
func (sc *SpellCorrector) RemoveCustomWord(word string) error {
	lw := strings.ToLower(strings.TrimSpace(word))
	if sc.dict != nil {
		if err := sc.dict.Remove(context.Background(), lw); err != nil {
			return err
		}
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	if !sc.customWords[lw] {
		return nil
	}
	delete(sc.customWords, lw)
	sc.vocab.Remove(lw)
	return nil
}

// Vocabulary returns the set the corrector checks against.
func (sc *SpellCorrector) Vocabulary() *vocab.Set { return sc.vocab }
