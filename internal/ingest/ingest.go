// Package ingest turns documents into plain text for the pipeline.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// DefaultMaxPages bounds how much of a PDF is read.
const DefaultMaxPages = 20

// ErrUnsupportedFormat is returned for file extensions Load cannot read.
var ErrUnsupportedFormat = errors.New("ingest: unsupported format")

// Options controls Load.
type Options struct {
	// MaxPages limits PDF extraction. Zero or less means DefaultMaxPages.
	MaxPages int
}

// Load reads the document at path according to its extension: .txt (or
// none), .html/.htm and .pdf. The result is NFC normalised.
func Load(path string, opts Options) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case "", ".txt", ".text", ".md":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", path, err)
		}
		return norm.NFC.String(string(data)), nil
	case ".html", ".htm":
		f, err := os.Open(path)
		if err != nil {
			return "", fmt.Errorf("open %s: %w", path, err)
		}
		defer f.Close()
		return HTML(f)
	case ".pdf":
		return PDF(path, opts.MaxPages)
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// Reader reads plain text from r.
func Reader(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read input: %w", err)
	}
	return norm.NFC.String(string(data)), nil
}
