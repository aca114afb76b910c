// Package agreement fixes the gender of a singular masculine determiner
// after the noun that follows it was replaced by a feminine one.
//
// Plural determiners and determiners outside the fixed set are not handled.
package agreement

import (
	"strings"

	"formalizer/internal/annotator"
	"formalizer/internal/textcase"
)

var feminine = map[string]string{
	"el":    "la",
	"un":    "una",
	"este":  "esta",
	"ese":   "esa",
	"aquel": "aquella",
}

// Feminine returns the feminine form of a masculine singular determiner,
// keeping its initial capital.
func Feminine(det string) (string, bool) {
	f, ok := feminine[strings.ToLower(det)]
	if !ok {
		return det, false
	}
	if textcase.StartsUpper(det) {
		f = textcase.Capitalize(f)
	}
	return f, true
}

// Adjust rewrites after in place. before and after are parallel to tokens:
// before is what the substitution stage received, after what it emitted.
// Each replaced noun whose new form annotates as feminine turns a preceding
// determiner from the fixed set feminine. It returns the indexes of the
// determiners it rewrote.
func Adjust(ann annotator.Annotator, tokens []annotator.Token, before, after []string) []int {
	var changed []int
	for i := 1; i < len(tokens); i++ {
		if tokens[i].POS != annotator.Noun || strings.EqualFold(before[i], after[i]) {
			continue
		}
		prev := tokens[i-1]
		if prev.POS != annotator.Det {
			continue
		}
		if _, ok := feminine[strings.ToLower(prev.Text)]; !ok {
			continue
		}
		f, ok := Feminine(after[i-1])
		if !ok || !isFeminine(ann, after[i]) {
			continue
		}
		after[i-1] = f
		changed = append(changed, i-1)
	}
	return changed
}

func isFeminine(ann annotator.Annotator, word string) bool {
	toks := ann.Annotate(word)
	return len(toks) > 0 && toks[0].Gender == annotator.Fem
}
