package cache

import (
	"context"
	"time"

	"github.com/go-kit/log"

	"github.com/43mm/twitch-drops-list/internal/models"
	"github.com/43mm/twitch-drops-list/internal/service"
)

// CachedProvider wraps a snapshot provider with caching so serving-mode
// requests inside the TTL do not refetch the remote API.
type CachedProvider struct {
	provider service.SnapshotProvider
	cache    Cache
	ttl      time.Duration
	logger   log.Logger
}

// NewCachedProvider creates a new cached snapshot provider
func NewCachedProvider(provider service.SnapshotProvider, cache Cache, ttl time.Duration, logger log.Logger) service.SnapshotProvider {
	return &CachedProvider{
		provider: provider,
		cache:    cache,
		ttl:      ttl,
		logger:   logger,
	}
}

// Snapshot retrieves the snapshot from cache first, falling back to the
// upstream provider on a miss.
func (cp *CachedProvider) Snapshot(ctx context.Context) (models.Snapshot, error) {
	snap, err := cp.cache.GetSnapshot(ctx)
	if err == nil {
		return snap, nil
	}

	snap, err = cp.provider.Snapshot(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}

	// Store for next time, async to not block the response.
	go func() {
		cacheCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := cp.cache.SetSnapshot(cacheCtx, snap, cp.ttl); err != nil {
			cp.logger.Log("msg", "failed to cache snapshot", "err", err.Error())
		}
	}()

	return snap, nil
}
