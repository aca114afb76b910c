package annotator

import (
	"strings"
	"unicode/utf8"
)

// LexiconAnnotator tags tokens from a lexicon and falls back to Spanish
// suffix heuristics for forms the lexicon does not know.
type LexiconAnnotator struct {
	lex *Lexicon
}

// New returns an annotator backed by lex. A nil lex means the bundled seed
// lexicon.
func New(lex *Lexicon) *LexiconAnnotator {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &LexiconAnnotator{lex: lex}
}

// Annotate implements Annotator.
func (a *LexiconAnnotator) Annotate(text string) []Token {
	spans := split(text)
	tokens := make([]Token, len(spans))
	for i, s := range spans {
		t := Token{Text: s.text, Index: i, Space: s.space, Alpha: isAlpha(s.text)}
		lw := strings.ToLower(s.text)
		switch {
		case isPunct(s.text):
			t.POS = Punct
			t.Lemma = s.text
		case !t.Alpha:
			t.POS = Other
			t.Lemma = lw
		default:
			e, ok := a.lex.Lookup(lw)
			if !ok {
				e = guess(lw)
			}
			t.POS, t.Lemma, t.Gender, t.Tense = e.POS, e.Lemma, e.Gender, e.Tense
			if t.Lemma == "" {
				t.Lemma = lw
			}
		}
		tokens[i] = t
	}
	return tokens
}

var (
	femSuffixes  = []string{"ción", "sión", "dad", "tad", "tud", "umbre", "eza"}
	verbSuffixes = []string{"ar", "er", "ir"}
)

// guess analyses an unknown lowercase word by its ending.
func guess(lw string) Entry {
	n := utf8.RuneCountInString(lw)
	switch {
	case n > 6 && strings.HasSuffix(lw, "mente"):
		return Entry{Lemma: lw, POS: Adv}
	case n > 4 && (strings.HasSuffix(lw, "ando") || strings.HasSuffix(lw, "iendo")):
		return Entry{Lemma: lw, POS: Verb}
	// Also catches misspelled nouns such as "muger", which the corrector
	// then leaves alone.
	case n > 3 && hasAnySuffix(lw, verbSuffixes):
		return Entry{Lemma: lw, POS: Verb}
	case hasAnySuffix(lw, femSuffixes):
		return Entry{Lemma: lw, POS: Noun, Gender: Fem}
	case strings.HasSuffix(lw, "a"):
		return Entry{Lemma: lw, POS: Noun, Gender: Fem}
	case strings.HasSuffix(lw, "o"):
		return Entry{Lemma: lw, POS: Noun, Gender: Masc}
	default:
		return Entry{Lemma: lw, POS: Noun}
	}
}

func hasAnySuffix(s string, suffixes []string) bool {
	for _, suf := range suffixes {
		if strings.HasSuffix(s, suf) {
			return true
		}
	}
	return false
}
