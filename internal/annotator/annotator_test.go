package annotator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnnotate_RoundTripsText(t *testing.T) {
	a := New(nil)
	for _, text := range []string{
		"la escuela es buena",
		"¡Hola,  mundo!  ",
		"abc123 def\tghi.",
		"",
		"...",
	} {
		toks := a.Annotate(text)
		got := Join(toks, Texts(toks))
		want := text
		// leading whitespace is not part of any token
		for len(want) > 0 && (want[0] == ' ' || want[0] == '\t') {
			want = want[1:]
		}
		assert.Equal(t, want, got, "text %q", text)
	}
}

func TestAnnotate_LexiconEntries(t *testing.T) {
	toks := New(nil).Annotate("El chico camina, ¿no?")
	require.Len(t, toks, 7)

	assert.Equal(t, Det, toks[0].POS)
	assert.Equal(t, Masc, toks[0].Gender)
	assert.Equal(t, Noun, toks[1].POS)
	assert.Equal(t, "chico", toks[1].Lemma)
	assert.Equal(t, Verb, toks[2].POS)
	assert.Equal(t, "caminar", toks[2].Lemma)
	assert.True(t, toks[2].Tense)
	assert.Equal(t, Punct, toks[3].POS)
	assert.False(t, toks[3].Alpha)
	assert.Equal(t, " ", toks[3].Space)
	assert.Equal(t, Punct, toks[4].POS)
	for i, tok := range toks {
		assert.Equal(t, i, tok.Index)
	}
}

func TestAnnotate_Guesses(t *testing.T) {
	a := New(NewLexicon())
	cases := []struct {
		word   string
		pos    POS
		gender Gender
	}{
		{"felizmente", Adv, GenderNone},
		{"cantar", Verb, GenderNone},
		{"cantando", Verb, GenderNone},
		{"muger", Verb, GenderNone},
		{"canción", Noun, Fem},
		{"mesa", Noun, Fem},
		{"gato", Noun, Masc},
		{"aze", Noun, GenderNone},
	}
	for _, c := range cases {
		toks := a.Annotate(c.word)
		require.Len(t, toks, 1, c.word)
		assert.Equal(t, c.pos, toks[0].POS, c.word)
		assert.Equal(t, c.gender, toks[0].Gender, c.word)
		assert.Equal(t, c.word, toks[0].Lemma, c.word)
	}
}

func TestAnnotate_Digits(t *testing.T) {
	toks := New(nil).Annotate("20 páginas")
	require.Len(t, toks, 2)
	assert.Equal(t, Other, toks[0].POS)
	assert.False(t, toks[0].Alpha)
	assert.True(t, toks[1].Alpha)
}

func TestLoadLexicon(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lex.tsv")
	content := "# comment\ncoches\tcoche\tNOUN\tGender=Masc|Number=Plur\ncorrió\tcorrer\tVERB\tTense=Past\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	lex, err := LoadLexicon(path)
	require.NoError(t, err)
	assert.Equal(t, 2, lex.Len())

	e, ok := lex.Lookup("Coches")
	require.True(t, ok)
	assert.Equal(t, Entry{Lemma: "coche", POS: Noun, Gender: Masc}, e)

	e, ok = lex.Lookup("corrió")
	require.True(t, ok)
	assert.True(t, e.Tense)
}

func TestLoadLexicon_BadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lex.tsv")
	require.NoError(t, os.WriteFile(path, []byte("solo\n"), 0o644))
	_, err := LoadLexicon(path)
	assert.Error(t, err)
}

func TestWindow(t *testing.T) {
	toks := New(nil).Annotate("una escuela muy educativa hoy")
	assert.Equal(t, []string{"una", "muy", "educativa"}, Window(toks, 1, ContextRadius))
	assert.Equal(t, []string{"escuela", "muy"}, Window(toks, 0, ContextRadius))
	assert.Equal(t, []string{"muy", "educativa"}, Window(toks, 4, ContextRadius))
}

func TestParsePOS(t *testing.T) {
	assert.Equal(t, Verb, ParsePOS("aux"))
	assert.Equal(t, Other, ParsePOS("PROPN"))
	assert.Equal(t, "ADJ", Adj.String())
	assert.True(t, Adv.IsContent())
	assert.False(t, Det.IsContent())
}
