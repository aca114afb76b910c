// Package annotator defines the token model the rewriting pipeline works on
// and ships a lexicon-backed annotator for Spanish.
//
// Any tagger can be plugged in by implementing Annotator; the pipeline only
// reads the fields of Token.
package annotator

import "strings"

// POS is a coarse part-of-speech tag.
type POS int

const (
	Other POS = iota
	Verb
	Noun
	Adj
	Adv
	Det
	Punct
	Space
)

var posNames = [...]string{"OTHER", "VERB", "NOUN", "ADJ", "ADV", "DET", "PUNCT", "SPACE"}

func (p POS) String() string {
	if p < 0 || int(p) >= len(posNames) {
		return "OTHER"
	}
	return posNames[p]
}

// IsContent reports whether p is one of the open word classes the mode
// tables apply to.
func (p POS) IsContent() bool {
	return p == Verb || p == Noun || p == Adj || p == Adv
}

// ParsePOS maps a Universal Dependencies tag to POS. Auxiliaries count as
// verbs; tags outside the coarse set map to Other.
func ParsePOS(tag string) POS {
	switch strings.ToUpper(strings.TrimSpace(tag)) {
	case "VERB", "AUX":
		return Verb
	case "NOUN":
		return Noun
	case "ADJ":
		return Adj
	case "ADV":
		return Adv
	case "DET":
		return Det
	case "PUNCT", "SYM":
		return Punct
	case "SPACE":
		return Space
	default:
		return Other
	}
}

// Gender is the grammatical gender carried in a token's morphology.
type Gender int

const (
	GenderNone Gender = iota
	Masc
	Fem
)

func (g Gender) String() string {
	switch g {
	case Masc:
		return "Masc"
	case Fem:
		return "Fem"
	default:
		return ""
	}
}

// Token is one annotated unit of text. Space holds the whitespace that
// followed the token, so concatenating Text+Space over a token slice yields
// the annotated text minus its leading whitespace.
type Token struct {
	Text   string
	Index  int
	POS    POS
	Lemma  string
	Alpha  bool
	Gender Gender
	Tense  bool
	Space  string
}

// Annotator tokenizes and tags a piece of text. Implementations must be
// deterministic and must not fail on any input.
type Annotator interface {
	Annotate(text string) []Token
}

// ContextRadius is the number of tokens on each side of a target that make
// up its context window.
const ContextRadius = 2

// Window returns the surface forms of the tokens within radius of tokens[i],
// in order, excluding tokens[i] itself and whitespace tokens.
func Window(tokens []Token, i, radius int) []string {
	start := max(0, i-radius)
	end := min(len(tokens), i+radius+1)
	out := make([]string, 0, end-start)
	for j := start; j < end; j++ {
		if j == i || tokens[j].POS == Space {
			continue
		}
		out = append(out, tokens[j].Text)
	}
	return out
}

// Join concatenates texts[i] and the whitespace that followed tokens[i].
// texts must be parallel to tokens.
func Join(tokens []Token, texts []string) string {
	var b strings.Builder
	for i, t := range tokens {
		b.WriteString(texts[i])
		b.WriteString(t.Space)
	}
	return b.String()
}

// Texts returns the surface forms of tokens.
func Texts(tokens []Token) []string {
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}
