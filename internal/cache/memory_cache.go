package cache

import (
	"sync"
	"time"

	"github.com/43mm/twitch-drops-list/internal/models"
)

// memoryCache holds the current snapshot in memory with a TTL.
type memoryCache struct {
	mu        sync.RWMutex
	snapshot  models.Snapshot
	hasValue  bool
	expiresAt time.Time
}

func newMemoryCache() *memoryCache {
	return &memoryCache{}
}

func (mc *memoryCache) getSnapshot() (models.Snapshot, bool) {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	if !mc.hasValue || time.Now().After(mc.expiresAt) {
		return models.Snapshot{}, false
	}
	return mc.snapshot, true
}

func (mc *memoryCache) setSnapshot(snap models.Snapshot, ttl time.Duration) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.snapshot = snap
	mc.hasValue = true
	mc.expiresAt = time.Now().Add(ttl)
}

func (mc *memoryCache) clear() {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.snapshot = models.Snapshot{}
	mc.hasValue = false
	mc.expiresAt = time.Time{}
}
