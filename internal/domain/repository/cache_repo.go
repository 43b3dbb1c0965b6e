package repository

import (
	"context"
	"time"
)

// CacheRepository defines access to the key/value cache.
// Every read reports a miss as apperrors.ErrNotFound.
type CacheRepository interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	// GetInt reads a counter such as the selected-question count of a question file
	GetInt(ctx context.Context, key string) (int, error)
	Delete(ctx context.Context, keys ...string) error
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	GetJSON(ctx context.Context, key string, dest interface{}) error
}
