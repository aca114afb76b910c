package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"formalizer/internal/config"
	"formalizer/internal/pipeline"
	"formalizer/internal/substitute"
	"formalizer/pkg/options"
)

const maxBody = 1 << 20

func main() {
	cfg := config.FromEnv()
	comp, err := config.Assemble(context.Background(), cfg, log.Default())
	if err != nil {
		log.Fatalf("init error: %v", err)
	}
	defer comp.Close()

	mux, err := newMux(comp, log.Default())
	if err != nil {
		log.Fatalf("init error: %v", err)
	}

	log.Printf("listening on %s", cfg.HTTPAddr)
	log.Fatal(http.ListenAndServe(cfg.HTTPAddr, mux))
}

type server struct {
	comp     *config.Components
	mode     substitute.Mode
	byName   map[options.Variant]*pipeline.Pipeline
	spelling *pipeline.Pipeline
	logger   *log.Logger

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newMux(comp *config.Components, logger *log.Logger) (http.Handler, error) {
	mode, err := comp.Config.Mode()
	if err != nil {
		return nil, err
	}
	s := &server{
		comp:    comp,
		mode:    mode,
		byName:  make(map[options.Variant]*pipeline.Pipeline),
		logger:  logger,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
	if s.byName[options.VariantMode], err = comp.Pipeline(); err != nil {
		return nil, err
	}
	if s.byName[options.VariantImprove], err = comp.Pipeline(options.WithImproveVariant()); err != nil {
		return nil, err
	}
	if s.spelling, err = comp.Pipeline(options.WithSpellingOnly()); err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/process", s.handleProcess)
	mux.HandleFunc("/api/v1/correct", s.handleCorrect)
	mux.HandleFunc("/api/v1/custom-word", s.handleAddWord)
	mux.HandleFunc("/api/v1/custom-word/", s.handleRemoveWord)
	return s.logged(mux), nil
}

func (s *server) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Now(), s.entropy).String()
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// logged tags every request with a ULID, echoed in X-Request-ID.
func (s *server) logged(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := s.newID()
		start := time.Now()
		w.Header().Set("X-Request-ID", id)
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		s.logger.Printf("%s %s %s %d %s", id, r.Method, r.URL.Path, sw.status, time.Since(start).Round(time.Microsecond))
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *server) handleProcess(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req struct {
		Text    string `json:"text"`
		Mode    string `json:"mode"`
		Variant string `json:"variant"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	mode := s.mode
	if req.Mode != "" {
		m, err := substitute.ParseMode(req.Mode)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		mode = m
	}
	v, ok := options.ParseVariant(req.Variant)
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown variant "+req.Variant)
		return
	}
	writeJSON(w, http.StatusOK, s.byName[v].Process(req.Text, mode))
}

func (s *server) handleCorrect(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	res := s.spelling.Process(req.Text, substitute.ModeNone)
	writeJSON(w, http.StatusOK, map[string]any{
		"original":  res.Original,
		"corrected": res.Output,
		"changes":   res.Changes,
	})
}

func (s *server) handleAddWord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req struct {
		Word string `json:"word"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody)).Decode(&req); err != nil || strings.TrimSpace(req.Word) == "" {
		writeError(w, http.StatusBadRequest, "invalid request")
		return
	}
	if err := s.comp.Corrector.AddCustomWord(req.Word); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *server) handleRemoveWord(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	word := strings.TrimPrefix(r.URL.Path, "/api/v1/custom-word/")
	if word == "" {
		writeError(w, http.StatusBadRequest, "word is required")
		return
	}
	if err := s.comp.Corrector.RemoveCustomWord(word); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
