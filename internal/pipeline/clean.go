package pipeline

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

var spaceRun = regexp.MustCompile(`\s+`)

// normalize composes to NFC, collapses whitespace runs to one space and
// drops trailing whitespace.
func normalize(s string) string {
	s = norm.NFC.String(s)
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimRight(s, " ")
}

// StripAccents removes combining marks after compatibility decomposition,
// so "canción" becomes "cancion" and "niño" becomes "nino".
func StripAccents(s string) string {
	decomposed := norm.NFKD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return norm.NFC.String(b.String())
}

// splitIndent separates leading whitespace from the rest of s.
func splitIndent(s string) (string, string) {
	rest := strings.TrimLeftFunc(s, unicode.IsSpace)
	return s[:len(s)-len(rest)], rest
}
