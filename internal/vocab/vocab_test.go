package vocab

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSet_CaseInsensitive(t *testing.T) {
	s := New("Casa", "PERRO")
	assert.True(t, s.Contains("casa"))
	assert.True(t, s.Contains("CASA"))
	assert.True(t, s.Contains("perro"))
	assert.False(t, s.Contains("gato"))
	assert.Equal(t, 2, s.Len())
}

func TestSet_AddRemove(t *testing.T) {
	s := New()
	assert.True(t, s.Add("Ave"))
	assert.False(t, s.Add("ave"), "second add is a no-op")
	assert.True(t, s.Contains("AVE"))
	s.Remove("AVE")
	assert.False(t, s.Contains("ave"))
}

func TestSet_NilIsEmpty(t *testing.T) {
	var s *Set
	assert.False(t, s.Contains("x"))
	assert.Zero(t, s.Len())
}

func TestLoadFile_FrequencyColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "es.txt")
	require.NoError(t, os.WriteFile(path, []byte("casa 120\nAve\t7\nperro\n"), 0o644))

	s, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())
	assert.True(t, s.Contains("ave"))
	assert.False(t, s.Contains("120"))
}

func TestLoadFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("# only a comment\n"), 0o644))

	_, err := LoadFile(path)
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestDefaultStopwords(t *testing.T) {
	s := DefaultStopwords()
	for _, w := range []string{"la", "el", "de", "es", "muy"} {
		assert.True(t, s.Contains(w), w)
	}
	assert.False(t, s.Contains("escuela"))
}
