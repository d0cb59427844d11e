package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	config "github.com/promptlift/cli/config"
	domain "github.com/promptlift/cli/internal/domain"
)

const usageEventsKey = "usage:events"

// RedisStore implements domain.UsageStore using a Redis list.
// RPUSH+LTRIM keeps the list bounded to the retention cap.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new Redis usage store
func NewRedisStore(cfg config.RedisConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		DB:       cfg.Database,
		Username: cfg.Username,
		Password: cfg.Password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Append pushes an event and trims the list to the retention cap
func (s *RedisStore) Append(ctx context.Context, event domain.TokenUsageEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal usage event: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.RPush(ctx, usageEventsKey, data)
	pipe.LTrim(ctx, usageEventsKey, int64(-MaxEvents), -1)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to append usage event: %w", err)
	}

	return nil
}

// List returns all retained events in insertion order. Entries that
// fail to unmarshal are skipped so one corrupt record cannot poison
// every read.
func (s *RedisStore) List(ctx context.Context) ([]domain.TokenUsageEvent, error) {
	values, err := s.client.LRange(ctx, usageEventsKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read usage events: %w", err)
	}

	events := make([]domain.TokenUsageEvent, 0, len(values))
	for _, value := range values {
		var event domain.TokenUsageEvent
		if err := json.Unmarshal([]byte(value), &event); err != nil {
			continue
		}
		events = append(events, event)
	}

	return events, nil
}

// Close closes the Redis connection
func (s *RedisStore) Close() error {
	return s.client.Close()
}

// Health checks if Redis is reachable
func (s *RedisStore) Health(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
