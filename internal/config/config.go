// Package config reads the process configuration from the environment and
// assembles the rewriting components from it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"formalizer/internal/cache"
	"formalizer/internal/substitute"
)

// Cache backends accepted in CACHE_BACKEND.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendNone   = "none"
)

type Config struct {
	VocabPath     string
	StopwordsPath string // empty: bundled list
	LexiconPath   string // empty: bundled lexicon
	RulesPath     string // empty: bundled rules
	SynonymsPath  string // empty: bundled groups

	CacheBackend  string
	CachePath     string
	CacheMaxWords int

	RedisAddr     string // empty disables the custom dictionary unless the cache uses redis
	RedisPassword string
	RedisDB       int

	MaxEditDistance int
	UseIndex        bool
	PreserveCase    bool
	SkipProperNouns bool

	HTTPAddr    string
	DefaultMode string
	IOTimeout   time.Duration
}

// FromEnv reads Config from the environment, applying defaults.
func FromEnv() Config {
	c := Config{
		VocabPath:     getenv("VOCAB_PATH", "vocab_es.txt"),
		StopwordsPath: os.Getenv("STOPWORDS_PATH"),
		LexiconPath:   os.Getenv("LEXICON_PATH"),
		RulesPath:     os.Getenv("RULES_PATH"),
		SynonymsPath:  os.Getenv("SYNONYMS_PATH"),

		CacheBackend:  strings.ToLower(getenv("CACHE_BACKEND", BackendFile)),
		CachePath:     os.Getenv("CACHE_PATH"),
		CacheMaxWords: getEnvInt("CACHE_MAX_WORDS", cache.DefaultMaxWords),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		MaxEditDistance: getEnvInt("MAX_EDIT_DISTANCE", 2),
		UseIndex:        getEnvBool("USE_INDEX", true),
		PreserveCase:    getEnvBool("PRESERVE_CASE", true),
		SkipProperNouns: getEnvBool("SKIP_PROPER_NOUNS", true),

		HTTPAddr:    getenv("HTTP_ADDR", ":8080"),
		DefaultMode: getenv("DEFAULT_MODE", "formal"),
		IOTimeout:   getEnvDuration("IO_TIMEOUT", 5*time.Second),
	}
	if c.CachePath == "" {
		switch c.CacheBackend {
		case BackendFile:
			c.CachePath = "word_cache.json"
		case BackendSQLite:
			c.CachePath = "word_cache.db"
		}
	}
	if c.CacheBackend == BackendRedis && c.RedisAddr == "" {
		c.RedisAddr = "localhost:6379"
	}
	return c
}

// Validate checks values FromEnv cannot default away.
func (c Config) Validate() error {
	switch c.CacheBackend {
	case BackendFile, BackendSQLite:
		if c.CachePath == "" {
			return fmt.Errorf("config: CACHE_PATH is required for the %s backend", c.CacheBackend)
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			return fmt.Errorf("config: REDIS_ADDR is required for the redis backend")
		}
	case BackendNone:
	default:
		return fmt.Errorf("config: unknown CACHE_BACKEND %q", c.CacheBackend)
	}
	if c.VocabPath == "" {
		return fmt.Errorf("config: VOCAB_PATH is required")
	}
	if c.MaxEditDistance < 0 {
		return fmt.Errorf("config: MAX_EDIT_DISTANCE must not be negative")
	}
	if _, err := c.Mode(); err != nil {
		return fmt.Errorf("config: DEFAULT_MODE: %w", err)
	}
	return nil
}

// Mode parses DefaultMode.
func (c Config) Mode() (substitute.Mode, error) {
	return substitute.ParseMode(c.DefaultMode)
}

func getenv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	return def
}
