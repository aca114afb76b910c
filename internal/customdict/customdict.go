// Package customdict keeps user-approved words in a Redis set. The corrector
// treats them as part of the vocabulary.
package customdict

import (
	"context"
	"strings"

	"github.com/redis/go-redis/v9"
)

// DefaultKey is the Redis set used when none is given.
const DefaultKey = "formalizer:custom_words"

// CustomDict wraps a Redis client to store custom dictionary words.
type CustomDict struct {
	client *redis.Client
	key    string
}

// New creates a new CustomDict with the provided Redis client and set key.
func New(client *redis.Client, key string) *CustomDict {
	if key == "" {
		key = DefaultKey
	}
	return &CustomDict{client: client, key: key}
}

// Add inserts the lowercase form of word.
func (cd *CustomDict) Add(ctx context.Context, word string) error {
	return cd.client.SAdd(ctx, cd.key, strings.ToLower(word)).Err()
}

// Remove deletes the lowercase form of word.
func (cd *CustomDict) Remove(ctx context.Context, word string) error {
	return cd.client.SRem(ctx, cd.key, strings.ToLower(word)).Err()
}

// All returns all words stored in the custom dictionary.
func (cd *CustomDict) All(ctx context.Context) ([]string, error) {
	return cd.client.SMembers(ctx, cd.key).Result()
}
