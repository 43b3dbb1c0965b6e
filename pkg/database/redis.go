package database

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/yourusername/sekolah-api/internal/config"
)

// Redis deployment modes accepted in redis.mode
const (
	RedisModeSingle   = "single"
	RedisModeSentinel = "sentinel"
	RedisModeCluster  = "cluster"
)

const redisPingTimeout = 5 * time.Second

// NewUniversalRedisClient connects to Redis and pings it. The client kind
// follows from the options: MasterName gives sentinel, several addresses give cluster.
func NewUniversalRedisClient(cfg config.RedisConfig) (redis.UniversalClient, error) {
	opts, mode, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}
	client := redis.NewUniversalClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis (mode: %s, addrs: %v): %w", mode, opts.Addrs, err)
	}
	return client, nil
}

// redisOptions validates cfg and returns the client options with the effective mode
func redisOptions(cfg config.RedisConfig) (*redis.UniversalOptions, string, error) {
	addrs := cfg.Addrs
	if len(addrs) == 0 && cfg.Addr != "" {
		addrs = []string{cfg.Addr}
	}
	if len(addrs) == 0 {
		return nil, "", fmt.Errorf("redis configuration error: Addrs or Addr must be provided")
	}

	opts := &redis.UniversalOptions{
		Addrs:           addrs,
		Password:        cfg.Password,
		DB:              cfg.DB,
		MaxRetries:      cfg.MaxRetries,
		MinRetryBackoff: millis(cfg.MinRetryBackoff),
		MaxRetryBackoff: millis(cfg.MaxRetryBackoff),
	}

	mode := cfg.Mode
	if mode == "" {
		mode = RedisModeSingle
	}
	switch mode {
	case RedisModeSingle, RedisModeCluster:
	case RedisModeSentinel:
		if cfg.MasterName == "" {
			return nil, "", fmt.Errorf("redis sentinel mode requires MasterName")
		}
		opts.MasterName = cfg.MasterName
	default:
		return nil, "", fmt.Errorf("unsupported redis mode: %s", mode)
	}
	return opts, mode, nil
}

// millis converts a millisecond setting; zero keeps the go-redis default
func millis(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}
