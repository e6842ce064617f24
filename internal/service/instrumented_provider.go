package service

import (
	"context"
	"time"

	"github.com/43mm/twitch-drops-list/internal/metrics"
	"github.com/43mm/twitch-drops-list/internal/models"
)

// instrumentedProvider wraps a snapshot provider with fetch metrics.
type instrumentedProvider struct {
	next    SnapshotProvider
	metrics *metrics.Metrics
}

// NewInstrumentedProvider creates a snapshot provider that records fetch
// counts and durations. It should wrap the provider that actually hits the
// remote API, inside any cache layer, so cache hits are not counted as
// fetches.
func NewInstrumentedProvider(next SnapshotProvider, metrics *metrics.Metrics) SnapshotProvider {
	return &instrumentedProvider{
		next:    next,
		metrics: metrics,
	}
}

// Snapshot implements SnapshotProvider with fetch metrics
func (p *instrumentedProvider) Snapshot(ctx context.Context) (snap models.Snapshot, err error) {
	defer func(begin time.Time) {
		outcome := "success"
		if err != nil {
			outcome = "error"
		}
		p.metrics.RecordFetch(outcome, time.Since(begin).Seconds())
	}(time.Now())

	snap, err = p.next.Snapshot(ctx)
	return
}
