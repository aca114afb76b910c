package cache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores the cache as a list of words (oldest first) under
// "<prefix>:words" and one hash per word under "<prefix>:word:<word>".
// Save replaces everything inside a MULTI/EXEC transaction.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// NewRedisBackend returns a backend using client. An empty prefix defaults
// to "formalizer:cache".
func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	if prefix == "" {
		prefix = "formalizer:cache"
	}
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) orderKey() string { return b.prefix + ":words" }

func (b *RedisBackend) wordKey(w string) string { return b.prefix + ":word:" + w }

// Load reads the word list and every word hash in one pipeline.
func (b *RedisBackend) Load(ctx context.Context) (*Snapshot, error) {
	words, err := b.client.LRange(ctx, b.orderKey(), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	if len(words) == 0 {
		return &Snapshot{}, nil
	}
	cmds := make([]*redis.MapStringStringCmd, len(words))
	_, err = b.client.Pipelined(ctx, func(p redis.Pipeliner) error {
		for i, w := range words {
			cmds[i] = p.HGetAll(ctx, b.wordKey(w))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("redis cache: %w", err)
	}
	s := &Snapshot{Words: make([]Entry, 0, len(words))}
	for i, w := range words {
		s.Words = append(s.Words, Entry{Word: w, Contexts: cmds[i].Val()})
	}
	return s, nil
}

// Save replaces the stored cache with s.
func (b *RedisBackend) Save(ctx context.Context, s *Snapshot) error {
	old, err := b.client.LRange(ctx, b.orderKey(), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("redis cache: %w", err)
	}
	stale := make([]string, 0, len(old)+1)
	stale = append(stale, b.orderKey())
	for _, w := range old {
		stale = append(stale, b.wordKey(w))
	}

	_, err = b.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Del(ctx, stale...)
		if len(s.Words) == 0 {
			return nil
		}
		words := make([]interface{}, 0, len(s.Words))
		for _, e := range s.Words {
			words = append(words, e.Word)
			if len(e.Contexts) == 0 {
				continue
			}
			fields := make([]interface{}, 0, 2*len(e.Contexts))
			for k, v := range e.Contexts {
				fields = append(fields, k, v)
			}
			p.HSet(ctx, b.wordKey(e.Word), fields...)
		}
		p.RPush(ctx, b.orderKey(), words...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis cache: %w", err)
	}
	return nil
}
