package cache

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// FileBackend stores the cache as a UTF-8 JSON object
//
//	{"word": {"ctx|key": "replacement", ...}, ...}
//
// with words in insertion order. Writes go to a temporary file in the same
// directory and are renamed over the target.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend for path. The file need not exist.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the backing file path.
func (b *FileBackend) Path() string { return b.path }

// Load reads the file. A missing file is an empty snapshot.
func (b *FileBackend) Load(_ context.Context) (*Snapshot, error) {
	data, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Snapshot{}, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(data)
}

// Save overwrites the file with s.
func (b *FileBackend) Save(_ context.Context, s *Snapshot) error {
	data, err := encodeSnapshot(s)
	if err != nil {
		return err
	}
	dir := filepath.Dir(b.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(b.path)+".*")
	if err != nil {
		return fmt.Errorf("cache file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("cache file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cache file: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("cache file: %w", err)
	}
	return nil
}

// decodeSnapshot reads the top-level object token by token so that word
// order survives the round trip.
func decodeSnapshot(data []byte) (*Snapshot, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("cache file: %w", err)
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, fmt.Errorf("cache file: want object, got %v", tok)
	}
	s := &Snapshot{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("cache file: %w", err)
		}
		word, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("cache file: want word key, got %v", tok)
		}
		var ctxs map[string]string
		if err := dec.Decode(&ctxs); err != nil {
			return nil, fmt.Errorf("cache file: word %q: %w", word, err)
		}
		s.Words = append(s.Words, Entry{Word: word, Contexts: ctxs})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("cache file: %w", err)
	}
	return s, nil
}

func encodeSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, e := range s.Words {
		if i > 0 {
			buf.WriteString(",")
		}
		buf.WriteString("\n  ")
		if err := writeString(&buf, e.Word); err != nil {
			return nil, err
		}
		buf.WriteString(": {")
		keys := make([]string, 0, len(e.Contexts))
		for k := range e.Contexts {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for j, k := range keys {
			if j > 0 {
				buf.WriteString(",")
			}
			buf.WriteString("\n    ")
			if err := writeString(&buf, k); err != nil {
				return nil, err
			}
			buf.WriteString(": ")
			if err := writeString(&buf, e.Contexts[k]); err != nil {
				return nil, err
			}
		}
		if len(keys) > 0 {
			buf.WriteString("\n  ")
		}
		buf.WriteString("}")
	}
	if len(s.Words) > 0 {
		buf.WriteString("\n")
	}
	buf.WriteString("}\n")
	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode appends a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}
