package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"

	apperrors "github.com/yourusername/sekolah-api/internal/pkg/errors"
)

// keyspace namespaces cache keys so several deployments can share one Redis
type keyspace string

func (ks keyspace) of(key string) string {
	if ks == "" {
		return key
	}
	return string(ks) + ":" + key
}

func (ks keyspace) all(keys []string) []string {
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = ks.of(k)
	}
	return out
}

// CacheRepo implements repository.CacheRepository on Redis
type CacheRepo struct {
	client redis.UniversalClient
	ks     keyspace
}

// NewCacheRepo creates a cache repository. A trailing colon on prefix is ignored.
func NewCacheRepo(client redis.UniversalClient, prefix string) (*CacheRepo, error) {
	if client == nil {
		return nil, fmt.Errorf("Redis client cannot be nil for CacheRepo")
	}
	return &CacheRepo{client: client, ks: keyspace(strings.TrimSuffix(prefix, ":"))}, nil
}

// miss turns redis.Nil into apperrors.ErrNotFound
func miss(err error) error {
	if errors.Is(err, redis.Nil) {
		return apperrors.ErrNotFound
	}
	return err
}

func (r *CacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return r.client.Set(ctx, r.ks.of(key), value, ttl).Err()
}

func (r *CacheRepo) Get(ctx context.Context, key string) (string, error) {
	val, err := r.client.Get(ctx, r.ks.of(key)).Result()
	return val, miss(err)
}

// GetInt fails with a plain error when the stored value is not a number
func (r *CacheRepo) GetInt(ctx context.Context, key string) (int, error) {
	n, err := r.client.Get(ctx, r.ks.of(key)).Int()
	return n, miss(err)
}

// Delete removes keys; missing keys are not an error
func (r *CacheRepo) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.client.Del(ctx, r.ks.all(keys)...).Err()
}

func (r *CacheRepo) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value %s: %w", key, err)
	}
	return r.Set(ctx, key, data, ttl)
}

func (r *CacheRepo) GetJSON(ctx context.Context, key string, dest interface{}) error {
	data, err := r.client.Get(ctx, r.ks.of(key)).Bytes()
	if err != nil {
		return miss(err)
	}
	return json.Unmarshal(data, dest)
}
