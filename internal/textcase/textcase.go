// Package textcase copies the capitalisation shape of one word onto another.
package textcase

import "strings"

// IsTitle reports whether s starts with an upper-case letter and has no
// upper-case letters after it.
func IsTitle(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)
	head, rest := string(r[0]), string(r[1:])
	return strings.ToUpper(head) == head && strings.ToLower(head) != head && strings.ToLower(rest) == rest
}

// IsUpper reports whether s has at least one cased letter and no lower-case ones.
func IsUpper(s string) bool { return strings.ToUpper(s) == s && strings.ToLower(s) != s }

// Capitalize upper-cases the first rune of s and leaves the rest alone.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// StartsUpper reports whether the first rune of s is upper case.
func StartsUpper(s string) bool {
	for _, r := range s {
		head := string(r)
		return strings.ToUpper(head) == head && strings.ToLower(head) != head
	}
	return false
}

// Match gives word the UPPER or Title shape of like. Single-letter words
// only carry Title shape. Anything else returns word unchanged.
func Match(like, word string) string {
	switch {
	case len([]rune(like)) > 1 && IsUpper(like):
		return strings.ToUpper(word)
	case IsTitle(like):
		return Capitalize(word)
	default:
		return word
	}
}
