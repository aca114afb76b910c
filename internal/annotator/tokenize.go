package annotator

import (
	"regexp"
	"unicode"
)

// A token is a run of letters (with combining marks), a run of digits, or a
// single other non-space character, followed by any whitespace.
var tokenRe = regexp.MustCompile(`([\p{L}\p{M}]+|\p{Nd}+|[^\s\p{L}\p{M}\p{Nd}])(\s*)`)

type span struct {
	text  string
	space string
}

func split(text string) []span {
	idx := tokenRe.FindAllStringSubmatchIndex(text, -1)
	out := make([]span, 0, len(idx))
	for _, m := range idx {
		out = append(out, span{text: text[m[2]:m[3]], space: text[m[4]:m[5]]})
	}
	return out
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.Is(unicode.Mn, r) {
			return false
		}
	}
	return true
}

func isPunct(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
