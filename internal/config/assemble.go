package config

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"

	"formalizer/internal/annotator"
	"formalizer/internal/cache"
	"formalizer/internal/corrector"
	"formalizer/internal/customdict"
	"formalizer/internal/pipeline"
	"formalizer/internal/substitute"
	"formalizer/internal/vocab"
	"formalizer/pkg/options"
)

// Components are the long-lived objects built from a Config.
type Components struct {
	Config     Config
	Vocab      *vocab.Set
	Stopwords  *vocab.Set
	Annotator  annotator.Annotator
	Rules      *substitute.Rules
	Synonyms   *substitute.Synonyms
	Cache      *cache.Cache
	Redis      *redis.Client // nil without REDIS_ADDR
	CustomDict *customdict.CustomDict
	Corrector  *corrector.SpellCorrector

	logger  *log.Logger
	closers []func() error
}

// Assemble loads every resource named in cfg. Missing or unreadable
// vocabulary, stop-word, lexicon or rule files are errors; an unavailable
// cache store is not.
func Assemble(ctx context.Context, cfg Config, logger *log.Logger) (*Components, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Components{Config: cfg, logger: logger}
	ok := false
	defer func() {
		if !ok {
			c.Close()
		}
	}()

	var err error
	if c.Vocab, err = vocab.LoadFile(cfg.VocabPath); err != nil {
		return nil, fmt.Errorf("load vocabulary: %w", err)
	}
	if cfg.StopwordsPath != "" {
		if c.Stopwords, err = vocab.LoadFile(cfg.StopwordsPath); err != nil {
			return nil, fmt.Errorf("load stopwords: %w", err)
		}
	} else {
		c.Stopwords = vocab.DefaultStopwords()
	}

	lex := annotator.DefaultLexicon()
	if cfg.LexiconPath != "" {
		if lex, err = annotator.LoadLexicon(cfg.LexiconPath); err != nil {
			return nil, fmt.Errorf("load lexicon: %w", err)
		}
	}
	c.Annotator = annotator.New(lex)

	c.Rules = substitute.DefaultRules()
	if cfg.RulesPath != "" {
		if c.Rules, err = substitute.LoadRules(cfg.RulesPath); err != nil {
			return nil, fmt.Errorf("load rules: %w", err)
		}
	}
	c.Synonyms = substitute.DefaultSynonyms()
	if cfg.SynonymsPath != "" {
		if c.Synonyms, err = substitute.LoadSynonyms(cfg.SynonymsPath); err != nil {
			return nil, fmt.Errorf("load synonyms: %w", err)
		}
	}

	if cfg.RedisAddr != "" {
		c.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		c.closers = append(c.closers, c.Redis.Close)
		c.CustomDict = customdict.New(c.Redis, customdict.DefaultKey)
	}

	c.Cache = cache.Open(c.cacheBackend(ctx),
		cache.WithMaxWords(cfg.CacheMaxWords),
		cache.WithTimeout(cfg.IOTimeout),
		cache.WithLogger(logger))

	copts := []corrector.Option{corrector.WithCache(c.Cache), corrector.WithLogger(logger)}
	if c.CustomDict != nil {
		copts = append(copts, corrector.WithCustomDict(c.CustomDict))
	}
	ccfg := corrector.CorrectorConfig{
		MaxEditDistance: cfg.MaxEditDistance,
		UseIndex:        cfg.UseIndex,
		PreserveCase:    cfg.PreserveCase,
		SkipProperNouns: cfg.SkipProperNouns,
	}
	if c.Corrector, err = corrector.NewSpellCorrector(ccfg, c.Vocab, c.Stopwords, copts...); err != nil {
		return nil, err
	}
	ok = true
	return c, nil
}

// cacheBackend builds the configured backend. A SQLite database that cannot
// be opened leaves the cache in memory.
func (c *Components) cacheBackend(ctx context.Context) cache.Backend {
	switch c.Config.CacheBackend {
	case BackendFile:
		b := cache.NewFileBackend(c.Config.CachePath)
		c.logger.Printf("cache file: %s", b.Path())
		return b
	case BackendRedis:
		return cache.NewRedisBackend(c.Redis, "")
	case BackendSQLite:
		b, err := cache.OpenSQLiteBackend(ctx, c.Config.CachePath)
		if err != nil {
			c.logger.Printf("warning: sqlite cache unavailable, keeping it in memory: %v", err)
			return nil
		}
		c.closers = append(c.closers, b.Close)
		return b
	default:
		return cache.NewMemoryBackend(nil)
	}
}

// Pipeline builds a pipeline over the components.
func (c *Components) Pipeline(opts ...options.Options) (*pipeline.Pipeline, error) {
	return pipeline.New(pipeline.Deps{
		Annotator: c.Annotator,
		Corrector: c.Corrector,
		Rules:     c.Rules,
		Synonyms:  c.Synonyms,
		Vocab:     c.Vocab,
	}, opts...)
}

// Close releases the cache store and the Redis connection.
func (c *Components) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}
