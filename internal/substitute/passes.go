package substitute

import (
	"strings"

	"formalizer/internal/annotator"
	"formalizer/internal/textcase"
)

// Protected words are never replaced by the improve pass.
var Protected = map[string]bool{
	"al": true, "a": true, "de": true, "del": true, "mi": true,
	"su": true, "la": true, "el": true, "los": true, "las": true,
}

// FixedPass applies the fixed dictionary. corrected is parallel to tokens
// and holds the spelling corrector's output. A token is a rule term when its
// original form is, or failing that its corrected form; the context window is
// taken over original surfaces. Non-terms keep their corrected form.
func (r *Rules) FixedPass(tokens []annotator.Token, corrected []string) []string {
	out := make([]string, len(tokens))
	copy(out, corrected)
	if r == nil || len(r.Fixed) == 0 {
		return out
	}
	for i, tok := range tokens {
		if !tok.Alpha {
			continue
		}
		rule, ok := r.Fixed[strings.ToLower(tok.Text)]
		if !ok {
			rule, ok = r.Fixed[strings.ToLower(corrected[i])]
		}
		if !ok {
			continue
		}
		window := annotator.Window(tokens, i, annotator.ContextRadius)
		out[i] = textcase.Match(corrected[i], rule.Resolve(window))
	}
	return out
}

// ModePass replaces content words whose lemma is in m's table. Other parts
// of speech are never touched. Without a table every token passes through.
func (r *Rules) ModePass(tokens []annotator.Token, m Mode) []string {
	out := annotator.Texts(tokens)
	table := r.Table(m)
	if table == nil {
		return out
	}
	for i, tok := range tokens {
		if !tok.POS.IsContent() {
			continue
		}
		repl, ok := table[strings.ToLower(tok.Lemma)]
		if !ok {
			continue
		}
		out[i] = textcase.Match(tok.Text, repl)
	}
	return out
}

// ImprovePass swaps nouns and adjectives for their longest known synonym.
// Protected words, punctuation and tensed verbs are left alone.
func (s *Synonyms) ImprovePass(tokens []annotator.Token, known func(string) bool) []string {
	out := annotator.Texts(tokens)
	for i, tok := range tokens {
		lw := strings.ToLower(tok.Text)
		switch {
		case Protected[lw], tok.POS == annotator.Punct, tok.POS == annotator.Space:
			continue
		case tok.POS == annotator.Verb && tok.Tense:
			continue
		case tok.POS != annotator.Noun && tok.POS != annotator.Adj:
			continue
		}
		if syn, ok := s.Best(lw, known); ok {
			out[i] = textcase.Match(tok.Text, syn)
		}
	}
	return out
}
