package substitute

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formalizer/internal/annotator"
)

var ann = annotator.New(nil)

func fixed(t *testing.T, text string) string {
	t.Helper()
	toks := ann.Annotate(text)
	return annotator.Join(toks, DefaultRules().FixedPass(toks, annotator.Texts(toks)))
}

func TestParseMode(t *testing.T) {
	cases := map[string]Mode{
		"formal":        Formal,
		"FORMAL":        Formal,
		"very-formal":   VeryFormal,
		"VERY_FORMAL":   VeryFormal,
		"Very Informal": VeryInformal,
		"muy formal":    VeryFormal,
		"informal":      Informal,
		"":              ModeNone,
	}
	for in, want := range cases {
		got, err := ParseMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	m, err := ParseMode("casual")
	assert.True(t, errors.Is(err, ErrUnknownMode))
	assert.Equal(t, ModeNone, m)

	assert.True(t, Formal.IsFormal())
	assert.True(t, VeryFormal.IsFormal())
	assert.False(t, Informal.IsFormal())
	assert.Equal(t, "very_informal", VeryInformal.String())

	var u Mode
	require.NoError(t, u.UnmarshalText([]byte("very-formal")))
	assert.Equal(t, VeryFormal, u)
}

func TestDefaultRules(t *testing.T) {
	r := DefaultRules()
	assert.Len(t, r.Fixed, 6)
	for _, m := range Modes() {
		assert.NotEmpty(t, r.Table(m), m.String())
	}
	assert.Nil(t, r.Table(ModeNone))
	assert.NotEqual(t, r.Table(VeryInformal)["hacer"], r.Table(Formal)["hacer"])
}

func TestFixedPass_Default(t *testing.T) {
	assert.Equal(t, "la institución es buena", fixed(t, "la escuela es buena"))
}

func TestFixedPass_ContextOverride(t *testing.T) {
	assert.Equal(t, "una institución educativa educativa", fixed(t, "una escuela educativa"))
	assert.Equal(t, "el caballero, hombre", fixed(t, "el chico, hombre"))
	// trigger outside the window
	assert.Equal(t, "el joven que vino con un hombre", fixed(t, "el chico que vino con un hombre"))
	assert.Equal(t, "muy excelente", fixed(t, "muy bueno"))
}

func TestFixedPass_KeepsCaseAndPunctuation(t *testing.T) {
	assert.Equal(t, "Institución, ¿no?", fixed(t, "Escuela, ¿no?"))
	assert.Equal(t, "Centro educativo.", fixed(t, "Colegio."))
}

func TestFixedPass_FallsBackToCorrectedForm(t *testing.T) {
	toks := ann.Annotate("la escuala")
	out := DefaultRules().FixedPass(toks, []string{"la", "escuela"})
	assert.Equal(t, []string{"la", "institución"}, out)

	// non-terms keep the corrected form
	out = DefaultRules().FixedPass(toks, []string{"la", "escuelo"})
	assert.Equal(t, []string{"la", "escuelo"}, out)
}

func TestResolve_FirstWindowWordWins(t *testing.T) {
	r := Rule{Term: "x", Default: "d", Contexts: []Trigger{{"b", "B"}, {"a", "A"}}}
	assert.Equal(t, "A", r.Resolve([]string{"A", "b"}))
	assert.Equal(t, "B", r.Resolve([]string{"c", "b", "a"}))
	assert.Equal(t, "d", r.Resolve(nil))
}

func TestModePass(t *testing.T) {
	r := DefaultRules()
	toks := ann.Annotate("hacer")
	require.Equal(t, annotator.Verb, toks[0].POS)

	vi := r.ModePass(toks, VeryInformal)
	f := r.ModePass(toks, Formal)
	assert.Equal(t, []string{"armar"}, vi)
	assert.Equal(t, []string{"realizar"}, f)
	assert.NotEqual(t, vi, f)

	assert.Equal(t, []string{"hacer"}, r.ModePass(toks, ModeNone))

	// lemma lookup, not surface
	assert.Equal(t, []string{"Realizar", "."}, r.ModePass(ann.Annotate("Hace."), Formal))
}

func TestModePass_OnlyContentWords(t *testing.T) {
	r := &Rules{Modes: map[Mode]map[string]string{
		Formal: {"el": "EL", "hacer": "realizar", ",": "X", "de": "desde"},
	}}
	toks := ann.Annotate("el hace, de")
	out := r.ModePass(toks, Formal)
	for i, tok := range toks {
		if !tok.POS.IsContent() {
			assert.Equal(t, tok.Text, out[i], tok.Text)
		}
	}
	assert.Equal(t, "realizar", out[1])
}

func TestParseRules_KeepsTriggerOrder(t *testing.T) {
	r, err := ParseRules([]byte(`
fixed:
  Banco:
    default: entidad
    contexts:
      Río: orilla
      dinero: entidad financiera
      parque: asiento
modes:
  very-formal:
    Hacer: efectuar
`))
	require.NoError(t, err)
	rule := r.Fixed["banco"]
	require.Len(t, rule.Contexts, 3)
	assert.Equal(t, []string{"río", "dinero", "parque"},
		[]string{rule.Contexts[0].Word, rule.Contexts[1].Word, rule.Contexts[2].Word})
	assert.Equal(t, "efectuar", r.Table(VeryFormal)["hacer"])
}

func TestParseRules_Errors(t *testing.T) {
	_, err := ParseRules([]byte("modes:\n  casual:\n    a: b\n"))
	assert.True(t, errors.Is(err, ErrUnknownMode))

	_, err = ParseRules([]byte("fixed:\n  x:\n    contexts:\n      a: b\n"))
	assert.Error(t, err)

	_, err = ParseRules([]byte("fixed:\n  x:\n    default: y\n    contexts: [a, b]\n"))
	assert.Error(t, err)

	_, err = ParseRules([]byte("fixed: ["))
	assert.Error(t, err)
}

func TestLoadRules(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte("modes:\n  formal:\n    ver: observar\n"), 0o644))
	r, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, "observar", r.Table(Formal)["ver"])

	_, err = LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestSynonyms_Best(t *testing.T) {
	s := DefaultSynonyms()
	assert.Greater(t, s.Len(), 5)

	all := func(string) bool { return true }
	got, ok := s.Best("coche", all)
	require.True(t, ok)
	assert.Equal(t, "automóvil", got, "longest, ties to the greatest")

	only := func(w string) bool { return w == "carro" }
	got, ok = s.Best("Coche", only)
	require.True(t, ok)
	assert.Equal(t, "carro", got)

	_, ok = s.Best("coche", func(string) bool { return false })
	assert.False(t, ok)
	_, ok = s.Best("inexistente", all)
	assert.False(t, ok)
}

func TestSynonyms_SkipsMultiWord(t *testing.T) {
	s := NewSynonyms()
	s.AddGroup("ml", "machine learning", "aprendizaje_automático", "ia")
	s.AddGroup("solo")
	assert.Equal(t, 1, s.Len())
	got, ok := s.Best("ml", nil)
	require.True(t, ok)
	assert.Equal(t, "ia", got)
	assert.Equal(t, []string{"aprendizaje_automático", "ia", "machine learning"}, s.Of("ML"))
}

func TestImprovePass(t *testing.T) {
	s := DefaultSynonyms()
	known := func(w string) bool { return w != "ocupación" }
	toks := ann.Annotate("El trabajo de la casa camina rápido.")
	out := s.ImprovePass(toks, known)
	joined := annotator.Join(toks, out)
	assert.Equal(t, "El tarea de la residencia camina veloz.", joined)

	// protected words never change even when a group contains them
	s2 := NewSynonyms()
	s2.AddGroup("la", "lalala")
	toks = ann.Annotate("la")
	assert.Equal(t, []string{"la"}, s2.ImprovePass(toks, nil))
}

func TestLoadSynonyms(t *testing.T) {
	path := filepath.Join(t.TempDir(), "syn.yaml")
	body := strings.Join([]string{
		"synonyms:",
		"  - canonical: perro",
		"    variants: [can, chucho]",
	}, "\n")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	s, err := LoadSynonyms(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"can", "perro"}, s.Of("chucho"))
}
