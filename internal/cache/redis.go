package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Alias1177/QuotexSignals/models"
	"github.com/redis/go-redis/v9"
)

const keyFormat = "%sseries:%s"

// RedisStore shares cached series between bot instances
type RedisStore struct {
	client *redis.Client
	prefix string
}

// RedisOptions holds the connection settings for NewRedisClient
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisClient creates a client with the timeouts used across the bot
func NewRedisClient(opts RedisOptions) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (r *RedisStore) key(symbol string) string {
	return fmt.Sprintf(keyFormat, r.prefix, symbol)
}

func (r *RedisStore) Get(ctx context.Context, symbol string) (models.PriceSeries, bool, error) {
	raw, err := r.client.Get(ctx, r.key(symbol)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil // cache miss, not a failure
		}
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var series models.PriceSeries
	if err := json.Unmarshal(raw, &series); err != nil {
		return nil, false, fmt.Errorf("decoding cached series: %w", err)
	}
	return series, true, nil
}

func (r *RedisStore) Set(ctx context.Context, symbol string, series models.PriceSeries, ttl time.Duration) error {
	raw, err := json.Marshal(series)
	if err != nil {
		return fmt.Errorf("encoding series: %w", err)
	}
	if err := r.client.Set(ctx, r.key(symbol), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

// Ping checks connectivity
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
