package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/raphaelgruber/studioflow/internal/models"
)

// RedisConfig configures the Redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Key      string
}

// RedisStore keeps the JSON envelope under a single key.
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisStore connects to Redis and pings it.
func NewRedisStore(ctx context.Context, cfg RedisConfig) (*RedisStore, error) {
	if cfg.Addr == "" {
		return nil, errors.New("redis address is required")
	}
	if cfg.Key == "" {
		cfg.Key = "studioflow:jobs"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client, key: cfg.Key}, nil
}

// LoadAll reads the envelope. A missing key is an empty collection.
func (s *RedisStore) LoadAll(ctx context.Context) ([]models.Job, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return []models.Job{}, nil
	}
	if err != nil {
		return []models.Job{}, fmt.Errorf("get %s: %w", s.key, err)
	}
	return models.DecodeJobs(data)
}

// SaveAll overwrites the envelope.
func (s *RedisStore) SaveAll(ctx context.Context, jobs []models.Job) error {
	data, err := models.EncodeJobs(jobs)
	if err != nil {
		return fmt.Errorf("encode jobs: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	return nil
}

func (s *RedisStore) Close(context.Context) error {
	return s.client.Close()
}
