package service

import (
	"context"

	"github.com/43mm/twitch-drops-list/internal/fetch"
	"github.com/43mm/twitch-drops-list/internal/models"
	"github.com/43mm/twitch-drops-list/internal/normalize"
)

// apiSnapshotProvider builds snapshots by fetching the remote API and
// normalizing the raw payload.
type apiSnapshotProvider struct {
	fetcher    fetch.Fetcher
	normalizer *normalize.Normalizer
}

// NewAPISnapshotProvider wires the fetcher and normalizer into a
// SnapshotProvider.
func NewAPISnapshotProvider(fetcher fetch.Fetcher, normalizer *normalize.Normalizer) SnapshotProvider {
	return &apiSnapshotProvider{
		fetcher:    fetcher,
		normalizer: normalizer,
	}
}

// Snapshot performs the fetch half of the pipeline and normalizes the
// result. A fetch failure propagates as *fetch.FetchError; malformed
// records are skipped by the normalizer and reported as warnings.
func (p *apiSnapshotProvider) Snapshot(ctx context.Context) (models.Snapshot, error) {
	games, err := p.fetcher.Fetch(ctx)
	if err != nil {
		return models.Snapshot{}, err
	}
	return p.normalizer.Snapshot(games), nil
}
