package middleware

import (
	"context"
	"time"

	"github.com/43mm/twitch-drops-list/internal/metrics"
	"github.com/43mm/twitch-drops-list/internal/models"
	"github.com/43mm/twitch-drops-list/internal/service"
)

// serviceMetricsMiddleware implements metrics collection for DropsService
type serviceMetricsMiddleware struct {
	metrics *metrics.Metrics
	next    service.DropsService
}

// NewServiceMetricsMiddleware creates a new service metrics middleware
func NewServiceMetricsMiddleware(metrics *metrics.Metrics) func(service.DropsService) service.DropsService {
	return func(next service.DropsService) service.DropsService {
		return &serviceMetricsMiddleware{
			metrics: metrics,
			next:    next,
		}
	}
}

// GetListings implements service.DropsService with pipeline metrics
func (mw *serviceMetricsMiddleware) GetListings(ctx context.Context, now time.Time) (listings models.Listings, err error) {
	listings, err = mw.next.GetListings(ctx, now)

	if err != nil {
		mw.metrics.RecordListingRun("error", 0)
		return listings, err
	}

	total := 0
	for _, group := range listings.ByGame.Groups {
		total += len(group.Campaigns)
	}
	mw.metrics.RecordListingRun("success", total)
	mw.metrics.RecordSkippedRecords(len(listings.Warnings))

	return listings, err
}
