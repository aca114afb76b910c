package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"rsc.io/pdf"
)

func TestHTML(t *testing.T) {
	doc := `<html><head><title>Aviso</title><style>p{color:red}</style></head>
<body><script>var x = "no";</script>
<h1>La escuela</h1>
<p>El chico   es <b>bueno</b>.</p>
<ul><li>uno</li><li>dos</li></ul>
</body></html>`
	got, err := HTML(strings.NewReader(doc))
	require.NoError(t, err)
	assert.NotContains(t, got, "color")
	assert.NotContains(t, got, "var x")
	assert.Contains(t, got, "El chico es bueno.")
	assert.Equal(t, []string{"Aviso", "", "La escuela", "", "El chico es bueno.", "", "uno", "", "dos"},
		strings.Split(got, "\n"))
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	txt := filepath.Join(dir, "a.txt")
	// decomposed "ó" comes back composed
	require.NoError(t, os.WriteFile(txt, []byte("institucio\u0301n\n\nhola"), 0o644))
	got, err := Load(txt, Options{})
	require.NoError(t, err)
	assert.Equal(t, "institución\n\nhola", got)

	page := filepath.Join(dir, "a.HTM")
	require.NoError(t, os.WriteFile(page, []byte("<p>uno</p>dos"), 0o644))
	got, err = Load(page, Options{})
	require.NoError(t, err)
	assert.Equal(t, "uno\ndos", got)

	_, err = Load(filepath.Join(dir, "a.docx"), Options{})
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = Load(filepath.Join(dir, "missing.txt"), Options{})
	assert.Error(t, err)
}

func TestPDF_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\nnot really"), 0o644))
	_, err := Load(path, Options{MaxPages: 2})
	assert.Error(t, err)
}

func TestPageText(t *testing.T) {
	texts := []pdf.Text{
		{S: "mundo", X: 40, Y: 700, W: 25, FontSize: 10},
		{S: "Hola", X: 10, Y: 700, W: 20, FontSize: 10},
		{S: "adiós", X: 10, Y: 680, W: 25, FontSize: 10},
		{S: "s", X: 35, Y: 680, W: 5, FontSize: 10},
	}
	assert.Equal(t, "Hola mundo\nadióss", pageText(texts))
	assert.Equal(t, "", pageText(nil))
}

func TestReader(t *testing.T) {
	got, err := Reader(strings.NewReader("nin\u0303o"))
	require.NoError(t, err)
	assert.Equal(t, "niño", got)
}
