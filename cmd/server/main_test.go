package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"formalizer/internal/config"
)

func newTestMux(t *testing.T) (http.Handler, *config.Components, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	vocabPath := filepath.Join(dir, "vocab.txt")
	require.NoError(t, os.WriteFile(vocabPath,
		[]byte("la\nescuela\nes\nbuena\nave\ncasa\ntrabajo\nocupación\ntarea\n"), 0o644))
	srv := miniredis.RunT(t)
	comp, err := config.Assemble(context.Background(), config.Config{
		VocabPath:       vocabPath,
		CacheBackend:    config.BackendNone,
		CacheMaxWords:   100,
		RedisAddr:       srv.Addr(),
		MaxEditDistance: 2,
		UseIndex:        true,
		PreserveCase:    true,
		SkipProperNouns: true,
		DefaultMode:     "formal",
	}, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	t.Cleanup(func() { comp.Close() })

	var logs bytes.Buffer
	mux, err := newMux(comp, log.New(&logs, "", 0))
	require.NoError(t, err)
	return mux, comp, &logs
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		rd = bytes.NewReader(b)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, path, rd))
	return rec
}

func TestProcess(t *testing.T) {
	h, _, logs := newTestMux(t)
	rec := do(t, h, http.MethodPost, "/api/v1/process", map[string]string{"text": "la escuela es buena\n\nhacer"})
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Original string `json:"original"`
		Output   string `json:"output"`
		Mode     string `json:"mode"`
		Changes  []struct {
			Stage string `json:"stage"`
		} `json:"changes"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "la institución es buena\n\nrealizar", res.Output)
	assert.Equal(t, "formal", res.Mode)
	assert.NotEmpty(t, res.Changes)

	id := rec.Header().Get("X-Request-ID")
	assert.Len(t, id, 26)
	assert.Contains(t, logs.String(), id)

	rec = do(t, h, http.MethodPost, "/api/v1/process", map[string]string{"text": "hacer", "mode": "very-informal"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"output":"armar"`)

	rec = do(t, h, http.MethodPost, "/api/v1/process", map[string]string{"text": "El trabajo", "mode": "none", "variant": "improve"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"output":"La ocupación"`)
}

func TestProcess_BadRequests(t *testing.T) {
	h, _, _ := newTestMux(t)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/process", map[string]string{"text": " "}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/process", map[string]string{"text": "x", "mode": "casual"}).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/process", map[string]string{"text": "x", "variant": "other"}).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/process", nil).Code)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/process", bytes.NewReader([]byte("{"))))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request")
}

func TestCorrect(t *testing.T) {
	h, _, _ := newTestMux(t)
	rec := do(t, h, http.MethodPost, "/api/v1/correct", map[string]string{"text": "la escuela es buena, una aze"})
	require.Equal(t, http.StatusOK, rec.Code)
	var res map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, "la escuela es buena, una ave", res["corrected"])
}

func TestCustomWord(t *testing.T) {
	h, comp, _ := newTestMux(t)
	rec := do(t, h, http.MethodPost, "/api/v1/custom-word", map[string]string{"word": "Finde"})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, comp.Vocab.Contains("finde"))

	stored, err := comp.CustomDict.All(context.Background())
	require.NoError(t, err)
	assert.Contains(t, stored, "finde")

	rec = do(t, h, http.MethodDelete, "/api/v1/custom-word/finde", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, comp.Vocab.Contains("finde"))

	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodDelete, "/api/v1/custom-word/", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodPost, "/api/v1/custom-word", map[string]string{}).Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/api/v1/custom-word", nil).Code)
}
