// Package cacherepo stores JSON encoded values in Redis.
package cacherepo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
)

// RepoRedis facilitates cache repository layer logic.
type RepoRedis struct {
	client redis.Cmdable
	prefix string
}

// NewRepoRedis returns RepoRedis namespacing every key with prefix.
func NewRepoRedis(client redis.Cmdable, prefix string) *RepoRedis {
	return &RepoRedis{
		client: client,
		prefix: prefix,
	}
}

// Get decodes the value stored under key into dest and reports whether it was found.
func (r *RepoRedis) Get(ctx context.Context, key string, dest any) (bool, error) {
	l := zerolog.Ctx(ctx)

	raw, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}

		l.Warn().Err(err).Str("key", key).Msg("cache get failed")

		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		l.Warn().Err(err).Str("key", key).Msg("cache entry is corrupted")
		return false, err
	}

	return true, nil
}

// Set stores value under key for ttl.
func (r *RepoRedis) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	l := zerolog.Ctx(ctx)

	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}

	if err := r.client.Set(ctx, r.prefix+key, raw, ttl).Err(); err != nil {
		l.Warn().Err(err).Str("key", key).Msg("cache set failed")
		return err
	}

	return nil
}

// Delete removes the keys.
func (r *RepoRedis) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.prefix + k
	}

	return r.client.Del(ctx, full...).Err()
}
