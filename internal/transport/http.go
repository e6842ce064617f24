package transport

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	httptransport "github.com/go-kit/kit/transport/http"
	"github.com/go-kit/log"
	"github.com/gorilla/mux"

	"github.com/43mm/twitch-drops-list/internal/cache"
	"github.com/43mm/twitch-drops-list/internal/endpoint"
	"github.com/43mm/twitch-drops-list/internal/fetch"
	"github.com/43mm/twitch-drops-list/internal/models"
	"github.com/43mm/twitch-drops-list/internal/render"
)

const markdownContentType = "text/markdown; charset=utf-8"

// NewHTTPHandler creates HTTP handlers for the drops listing service. A nil
// snapshot cache disables the cache admin endpoints.
func NewHTTPHandler(endpoints endpoint.DropsEndpoints, snapshotCache cache.Cache, logger log.Logger) http.Handler {
	options := []httptransport.ServerOption{
		httptransport.ServerErrorEncoder(encodeError),
	}

	renderer := render.NewMarkdown()

	getRecentHandler := httptransport.NewServer(
		endpoints.GetRecentEndpoint,
		decodeGetRecentRequest,
		makeRecentEncoder(renderer),
		options...,
	)

	getByGameHandler := httptransport.NewServer(
		endpoints.GetByGameEndpoint,
		decodeGetByGameRequest,
		makeByGameEncoder(renderer),
		options...,
	)

	r := mux.NewRouter()

	// Listing endpoints
	r.Handle("/v1/drops/recent", getRecentHandler).Methods("GET")
	r.Handle("/v1/drops/games", getByGameHandler).Methods("GET")

	// Cache admin endpoints
	if snapshotCache != nil {
		r.HandleFunc("/v1/cache/stats", makeCacheStatsHandler(snapshotCache)).Methods("GET")
		r.HandleFunc("/v1/cache/invalidate", makeCacheInvalidateHandler(snapshotCache, logger)).Methods("POST")
	}

	// Health check endpoint
	r.HandleFunc("/health", healthHandler).Methods("GET")

	return r
}

// makeCacheStatsHandler exposes snapshot cache statistics
func makeCacheStatsHandler(snapshotCache cache.Cache) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(snapshotCache.GetStats())
	}
}

// makeCacheInvalidateHandler drops the cached snapshot so the next request
// refetches from the remote source
func makeCacheInvalidateHandler(snapshotCache cache.Cache, logger log.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := snapshotCache.InvalidateAll(r.Context()); err != nil {
			logger.Log("msg", "cache invalidation failed", "err", err.Error())
			encodeError(r.Context(), err, w)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// decodeGetRecentRequest decodes HTTP request to GetRecentRequest
func decodeGetRecentRequest(_ context.Context, r *http.Request) (interface{}, error) {
	return endpoint.GetRecentRequest{}, nil
}

// decodeGetByGameRequest decodes HTTP request to GetByGameRequest
func decodeGetByGameRequest(_ context.Context, r *http.Request) (interface{}, error) {
	return endpoint.GetByGameRequest{}, nil
}

// makeRecentEncoder encodes GetRecentResponse as the rendered markdown
// section
func makeRecentEncoder(renderer *render.MarkdownRenderer) httptransport.EncodeResponseFunc {
	return func(ctx context.Context, w http.ResponseWriter, response interface{}) error {
		resp := response.(endpoint.GetRecentResponse)

		if resp.Err != nil {
			encodeError(ctx, resp.Err, w)
			return nil
		}

		w.Header().Set("Content-Type", markdownContentType)
		w.WriteHeader(http.StatusOK)
		return renderer.RenderRecent(w, resp.View, resp.Now)
	}
}

// makeByGameEncoder encodes GetByGameResponse as the rendered markdown
// section
func makeByGameEncoder(renderer *render.MarkdownRenderer) httptransport.EncodeResponseFunc {
	return func(ctx context.Context, w http.ResponseWriter, response interface{}) error {
		resp := response.(endpoint.GetByGameResponse)

		if resp.Err != nil {
			encodeError(ctx, resp.Err, w)
			return nil
		}

		w.Header().Set("Content-Type", markdownContentType)
		w.WriteHeader(http.StatusOK)
		return renderer.RenderByGame(w, resp.View, resp.Now)
	}
}

// encodeError encodes error to HTTP response
func encodeError(_ context.Context, err error, w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")

	// A failed upstream fetch is a bad gateway, everything else is on us.
	var fetchErr *fetch.FetchError
	if errors.As(err, &fetchErr) {
		w.WriteHeader(http.StatusBadGateway)
	} else {
		w.WriteHeader(http.StatusInternalServerError)
	}

	errorResponse := models.NewErrorResponse(err.Error())
	json.NewEncoder(w).Encode(errorResponse)
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]any{
		"status":  "healthy",
		"service": "twitch-drops-list",
		"version": "1.0.0",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
