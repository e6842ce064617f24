package middleware

import (
	"context"
	"time"

	"github.com/go-kit/log"

	reqcontext "github.com/43mm/twitch-drops-list/internal/context"
	"github.com/43mm/twitch-drops-list/internal/models"
	"github.com/43mm/twitch-drops-list/internal/service"
)

// loggingMiddleware implements logging middleware for DropsService
type loggingMiddleware struct {
	logger log.Logger
	next   service.DropsService
}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware(logger log.Logger) func(service.DropsService) service.DropsService {
	return func(next service.DropsService) service.DropsService {
		return &loggingMiddleware{
			logger: logger,
			next:   next,
		}
	}
}

// GetListings implements service.DropsService with request logging
func (mw *loggingMiddleware) GetListings(ctx context.Context, now time.Time) (listings models.Listings, err error) {
	defer func(begin time.Time) {
		logFields := []interface{}{
			"method", "GetListings",
			"now", now.Format(time.RFC3339),
			"recent_count", len(listings.Recent.Campaigns),
			"game_groups", len(listings.ByGame.Groups),
			"warnings", len(listings.Warnings),
			"took", time.Since(begin),
		}

		if requestID := reqcontext.GetRequestID(ctx); requestID != "" {
			logFields = append(logFields, "request_id", requestID)
		}
		if remoteAddr := reqcontext.GetRemoteAddr(ctx); remoteAddr != "" {
			logFields = append(logFields, "remote_addr", remoteAddr)
		}

		if err != nil {
			logFields = append(logFields, "error", err.Error(), "success", false)
		} else {
			logFields = append(logFields, "success", true)
		}

		mw.logger.Log(logFields...)
	}(time.Now())

	return mw.next.GetListings(ctx, now)
}
