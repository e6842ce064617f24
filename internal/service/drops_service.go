package service

import (
	"context"
	"fmt"
	"time"

	"github.com/43mm/twitch-drops-list/internal/listing"
	"github.com/43mm/twitch-drops-list/internal/models"
)

// DropsService defines the interface for deriving campaign listings
type DropsService interface {
	GetListings(ctx context.Context, now time.Time) (models.Listings, error)
}

// SnapshotProvider is the data access interface: one call returns the full
// normalized campaign snapshot for the current run.
type SnapshotProvider interface {
	Snapshot(ctx context.Context) (models.Snapshot, error)
}

// ListingService derives the two listing views from a fresh snapshot.
type ListingService struct {
	provider SnapshotProvider
	builder  *listing.Builder
}

// NewListingService creates a new listing service
func NewListingService(provider SnapshotProvider, builder *listing.Builder) *ListingService {
	if builder == nil {
		builder = listing.NewBuilder()
	}
	return &ListingService{
		provider: provider,
		builder:  builder,
	}
}

// GetListings retrieves the current snapshot and derives both views from it
// at the given reference time. Snapshot retrieval failures are fatal and
// propagate; normalization warnings ride along in the listings.
func (s *ListingService) GetListings(ctx context.Context, now time.Time) (models.Listings, error) {
	snap, err := s.provider.Snapshot(ctx)
	if err != nil {
		return models.Listings{}, fmt.Errorf("retrieving campaign snapshot: %w", err)
	}

	return s.builder.Build(snap, now), nil
}
