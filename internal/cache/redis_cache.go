package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/43mm/twitch-drops-list/internal/models"
)

const snapshotKey = "dropslist:snapshot:active"

// redisCache implements Redis-based snapshot caching shared across
// instances.
type redisCache struct {
	client *redis.Client
	config CacheConfig
}

// newRedisCache creates a new Redis cache client
func newRedisCache(config CacheConfig) (*redisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr,
		Password: config.RedisPassword,
		DB:       config.RedisDB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisCache{
		client: client,
		config: config,
	}, nil
}

func (rc *redisCache) getSnapshot(ctx context.Context) (models.Snapshot, error) {
	data, err := rc.client.Get(ctx, snapshotKey).Result()
	if err != nil {
		if err == redis.Nil {
			return models.Snapshot{}, ErrCacheMiss
		}
		return models.Snapshot{}, fmt.Errorf("Redis get error: %w", err)
	}

	var snap models.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return models.Snapshot{}, fmt.Errorf("JSON unmarshal error: %w", err)
	}

	return snap, nil
}

func (rc *redisCache) setSnapshot(ctx context.Context, snap models.Snapshot, ttl time.Duration) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("JSON marshal error: %w", err)
	}

	if err := rc.client.Set(ctx, snapshotKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("Redis set error: %w", err)
	}

	return nil
}

func (rc *redisCache) clear(ctx context.Context) error {
	if err := rc.client.Del(ctx, snapshotKey).Err(); err != nil {
		return fmt.Errorf("Redis delete error: %w", err)
	}
	return nil
}
