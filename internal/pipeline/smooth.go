package pipeline

import (
	"strings"

	"formalizer/internal/annotator"
	"formalizer/internal/textcase"
)

type piece struct {
	text  string
	space string
	alpha bool
}

func pieces(tokens []annotator.Token) []piece {
	out := make([]piece, len(tokens))
	for i, t := range tokens {
		out[i] = piece{text: t.Text, space: t.Space, alpha: t.Alpha}
	}
	return out
}

func joinPieces(ps []piece) string {
	var b strings.Builder
	for _, p := range ps {
		b.WriteString(p.text)
		b.WriteString(p.space)
	}
	return b.String()
}

// smooth drops a word that repeats the word right before it, ignoring case.
// The dropped word's trailing whitespace moves to the word that is kept.
func smooth(ps []piece, record func(i int, before, after string)) []piece {
	out := make([]piece, 0, len(ps))
	for i, p := range ps {
		if n := len(out); n > 0 && p.alpha && out[n-1].alpha && strings.EqualFold(out[n-1].text, p.text) {
			out[n-1].space = p.space
			record(i, p.text, "")
			continue
		}
		out = append(out, p)
	}
	return out
}

var contractions = map[string]string{"a": "al", "de": "del"}

// contract merges "a el" and "de el" separated by a single space. A
// capitalised "El" is left alone since it usually starts a name.
func contract(ps []piece, record func(i int, before, after string)) []piece {
	out := make([]piece, 0, len(ps))
	for i := 0; i < len(ps); i++ {
		p := ps[i]
		merged, ok := contractions[strings.ToLower(p.text)]
		if ok && p.space == " " && i+1 < len(ps) && ps[i+1].text == "el" {
			if textcase.StartsUpper(p.text) {
				merged = textcase.Capitalize(merged)
			}
			record(i, p.text+p.space+ps[i+1].text, merged)
			out = append(out, piece{text: merged, space: ps[i+1].space, alpha: true})
			i++
			continue
		}
		out = append(out, p)
	}
	return out
}
