// Package wordfile reads newline-delimited word resources (vocabularies,
// stop-word lists, lexicons) through a read-only memory map.
package wordfile

import (
	"bytes"
	"fmt"
	"os"

	"github.com/edsrzf/mmap-go"
)

// Read maps the file at path and calls fn for every non-empty line that is
// not a '#' comment. Lines are copied before fn sees them, so fn may retain
// them after the mapping is released.
func Read(path string, fn func(line string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	// mmap of a zero-length file fails on most platforms.
	if info.Size() == 0 {
		return nil
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return fmt.Errorf("mmap %s: %w", path, err)
	}
	defer m.Unmap()

	return Scan(m, fn)
}

// Scan splits data into lines and applies the same filtering as Read.
func Scan(data []byte, fn func(line string) error) error {
	for len(data) > 0 {
		var line []byte
		if i := bytes.IndexByte(data, '\n'); i >= 0 {
			line, data = data[:i], data[i+1:]
		} else {
			line, data = data, nil
		}
		line = bytes.TrimSpace(line)
		if len(line) == 0 || line[0] == '#' {
			continue
		}
		if err := fn(string(line)); err != nil {
			return err
		}
	}
	return nil
}
