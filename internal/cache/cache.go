package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/43mm/twitch-drops-list/internal/models"
)

// Cache defines the interface for caching the current campaign snapshot in
// serving mode. Only the live snapshot is cached, within its TTL; nothing
// historical is retained.
type Cache interface {
	GetSnapshot(ctx context.Context) (models.Snapshot, error)
	SetSnapshot(ctx context.Context, snap models.Snapshot, ttl time.Duration) error

	InvalidateAll(ctx context.Context) error
	GetStats() CacheStats
}

// CacheStats holds cache performance statistics
type CacheStats struct {
	Hits        int64
	Misses      int64
	Errors      int64
	HitRatio    float64
	TotalOps    int64
	LastUpdated time.Time
}

// CacheConfig holds cache configuration
type CacheConfig struct {
	DefaultTTL    time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	EnableMemory  bool
	EnableRedis   bool
}

// HybridCache layers an in-memory snapshot over a shared Redis copy.
type HybridCache struct {
	memoryCache *memoryCache
	redisCache  *redisCache
	config      CacheConfig
	stats       CacheStats
	mu          sync.RWMutex
}

// NewHybridCache creates a new hybrid cache
func NewHybridCache(config CacheConfig) (*HybridCache, error) {
	hc := &HybridCache{
		config: config,
		stats: CacheStats{
			LastUpdated: time.Now(),
		},
	}

	if config.EnableMemory {
		hc.memoryCache = newMemoryCache()
	}

	if config.EnableRedis {
		var err error
		hc.redisCache, err = newRedisCache(config)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Redis cache: %w", err)
		}
	}

	return hc, nil
}

// GetSnapshot retrieves the snapshot from cache (memory first, then Redis, then miss)
func (hc *HybridCache) GetSnapshot(ctx context.Context) (models.Snapshot, error) {
	if hc.memoryCache != nil {
		if snap, found := hc.memoryCache.getSnapshot(); found {
			hc.recordHit()
			return snap, nil
		}
	}

	if hc.redisCache != nil {
		snap, err := hc.redisCache.getSnapshot(ctx)
		if err == nil {
			hc.recordHit()
			// Warm memory cache
			if hc.memoryCache != nil {
				hc.memoryCache.setSnapshot(snap, hc.config.DefaultTTL)
			}
			return snap, nil
		}
	}

	hc.recordMiss()
	return models.Snapshot{}, ErrCacheMiss
}

// SetSnapshot stores the snapshot in both caches
func (hc *HybridCache) SetSnapshot(ctx context.Context, snap models.Snapshot, ttl time.Duration) error {
	if hc.memoryCache != nil {
		hc.memoryCache.setSnapshot(snap, ttl)
	}

	if hc.redisCache != nil {
		if err := hc.redisCache.setSnapshot(ctx, snap, ttl); err != nil {
			hc.recordError()
			return fmt.Errorf("cache store error: %w", err)
		}
	}

	return nil
}

// InvalidateAll clears all caches
func (hc *HybridCache) InvalidateAll(ctx context.Context) error {
	if hc.memoryCache != nil {
		hc.memoryCache.clear()
	}

	if hc.redisCache != nil {
		if err := hc.redisCache.clear(ctx); err != nil {
			return fmt.Errorf("cache invalidation error: %w", err)
		}
	}

	return nil
}

// GetStats returns cache statistics
func (hc *HybridCache) GetStats() CacheStats {
	hc.mu.RLock()
	defer hc.mu.RUnlock()

	stats := hc.stats
	if stats.TotalOps > 0 {
		stats.HitRatio = float64(stats.Hits) / float64(stats.TotalOps)
	}
	return stats
}

func (hc *HybridCache) recordHit() {
	hc.mu.Lock()
	hc.stats.Hits++
	hc.stats.TotalOps++
	hc.mu.Unlock()
}

func (hc *HybridCache) recordMiss() {
	hc.mu.Lock()
	hc.stats.Misses++
	hc.stats.TotalOps++
	hc.mu.Unlock()
}

func (hc *HybridCache) recordError() {
	hc.mu.Lock()
	hc.stats.Errors++
	hc.mu.Unlock()
}

// ErrCacheMiss is returned when no live snapshot is cached.
var ErrCacheMiss = fmt.Errorf("cache miss")
