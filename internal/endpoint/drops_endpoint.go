package endpoint

import (
	"context"
	"time"

	"github.com/go-kit/kit/endpoint"

	"github.com/43mm/twitch-drops-list/internal/models"
	"github.com/43mm/twitch-drops-list/internal/service"
)

// DropsEndpoints holds all endpoints for the drops listing service
type DropsEndpoints struct {
	GetRecentEndpoint endpoint.Endpoint
	GetByGameEndpoint endpoint.Endpoint
}

// MakeDropsEndpoints creates endpoints for the drops listing service. The
// clock supplies the reference time for each request so the service itself
// never reads a global clock.
func MakeDropsEndpoints(s service.DropsService, clock func() time.Time) DropsEndpoints {
	if clock == nil {
		clock = time.Now
	}
	return DropsEndpoints{
		GetRecentEndpoint: makeGetRecentEndpoint(s, clock),
		GetByGameEndpoint: makeGetByGameEndpoint(s, clock),
	}
}

// GetRecentRequest represents the request for the recent-campaigns view
type GetRecentRequest struct{}

// GetRecentResponse represents the response for the recent-campaigns view
type GetRecentResponse struct {
	Now  time.Time         `json:"now"`
	View models.RecentView `json:"view"`
	Err  error             `json:"error,omitempty"`
}

// Failed implements the endpoint.Failer interface
func (r GetRecentResponse) Failed() error {
	return r.Err
}

// GetByGameRequest represents the request for the by-game view
type GetByGameRequest struct{}

// GetByGameResponse represents the response for the by-game view
type GetByGameResponse struct {
	Now  time.Time         `json:"now"`
	View models.ByGameView `json:"view"`
	Err  error             `json:"error,omitempty"`
}

// Failed implements the endpoint.Failer interface
func (r GetByGameResponse) Failed() error {
	return r.Err
}

func makeGetRecentEndpoint(s service.DropsService, clock func() time.Time) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		now := clock()
		listings, err := s.GetListings(ctx, now)
		return GetRecentResponse{
			Now:  now,
			View: listings.Recent,
			Err:  err,
		}, nil
	}
}

func makeGetByGameEndpoint(s service.DropsService, clock func() time.Time) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		now := clock()
		listings, err := s.GetListings(ctx, now)
		return GetByGameResponse{
			Now:  now,
			View: listings.ByGame,
			Err:  err,
		}, nil
	}
}
