package ingest

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
	"rsc.io/pdf"
)

// PDF extracts the text of the first maxPages pages of the file at path.
// Glyphs are ordered top to bottom, left to right; a vertical jump starts a
// new line and a horizontal gap inserts a space.
func PDF(path string, maxPages int) (text string, err error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	// the parser panics on some malformed files
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("read pdf %s: %v", path, r)
		}
	}()

	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()
	fi, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat pdf %s: %w", path, err)
	}
	r, err := pdf.NewReader(f, fi.Size())
	if err != nil {
		return "", fmt.Errorf("read pdf %s: %w", path, err)
	}
	n := min(r.NumPage(), maxPages)
	pages := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		pages = append(pages, pageText(p.Content().Text))
	}
	return norm.NFC.String(strings.Join(pages, "\n")), nil
}

func pageText(texts []pdf.Text) string {
	if len(texts) == 0 {
		return ""
	}
	sorted := make([]pdf.Text, len(texts))
	copy(sorted, texts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if math.Abs(sorted[i].Y-sorted[j].Y) > rowTolerance(sorted[i], sorted[j]) {
			return sorted[i].Y > sorted[j].Y
		}
		return sorted[i].X < sorted[j].X
	})

	var b strings.Builder
	prev := sorted[0]
	b.WriteString(prev.S)
	for _, t := range sorted[1:] {
		switch {
		case math.Abs(t.Y-prev.Y) > rowTolerance(prev, t):
			b.WriteString("\n")
		case t.X-(prev.X+prev.W) > 0.15*math.Max(t.FontSize, 1):
			b.WriteString(" ")
		}
		b.WriteString(t.S)
		prev = t
	}
	return b.String()
}

func rowTolerance(a, b pdf.Text) float64 {
	return math.Max(math.Max(a.FontSize, b.FontSize)/2, 1)
}
