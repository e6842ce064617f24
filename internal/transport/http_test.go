package transport

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/43mm/twitch-drops-list/internal/cache"
	"github.com/43mm/twitch-drops-list/internal/endpoint"
	"github.com/43mm/twitch-drops-list/internal/fetch"
	"github.com/43mm/twitch-drops-list/internal/listing"
	"github.com/43mm/twitch-drops-list/internal/models"
)

// MockDropsService is a mock implementation of service.DropsService
type MockDropsService struct {
	mock.Mock
}

func (m *MockDropsService) GetListings(ctx context.Context, now time.Time) (models.Listings, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(models.Listings), args.Error(1)
}

func testListings(now time.Time) models.Listings {
	campaigns := []models.Campaign{
		{
			ID:      "a1",
			Name:    "Launch Party",
			Game:    "Alpha Quest",
			StartAt: now.Add(-24 * time.Hour),
			EndAt:   now.Add(72 * time.Hour),
		},
	}
	return listing.NewBuilder().Build(models.Snapshot{Campaigns: campaigns}, now)
}

func newTestHandler(svc *MockDropsService, now time.Time) http.Handler {
	endpoints := endpoint.MakeDropsEndpoints(svc, func() time.Time { return now })
	return NewHTTPHandler(endpoints, nil, log.NewNopLogger())
}

func TestHTTPHandler_GetRecent(t *testing.T) {
	now := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	mockSvc := &MockDropsService{}
	mockSvc.On("GetListings", mock.Anything, now).Return(testListings(now), nil)

	handler := newTestHandler(mockSvc, now)

	req := httptest.NewRequest(http.MethodGet, "/v1/drops/recent", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, markdownContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "## Recent Drops")
	assert.Contains(t, rec.Body.String(), "Launch Party")
}

func TestHTTPHandler_GetByGame(t *testing.T) {
	now := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	mockSvc := &MockDropsService{}
	mockSvc.On("GetListings", mock.Anything, now).Return(testListings(now), nil)

	handler := newTestHandler(mockSvc, now)

	req := httptest.NewRequest(http.MethodGet, "/v1/drops/games", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, markdownContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "## All Drops")
	assert.Contains(t, rec.Body.String(), "Alpha Quest")
}

func TestHTTPHandler_FetchErrorIsBadGateway(t *testing.T) {
	now := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	mockSvc := &MockDropsService{}
	fetchErr := &fetch.FetchError{URL: "https://example.com/drops", Err: assert.AnError}
	mockSvc.On("GetListings", mock.Anything, now).Return(models.Listings{}, fetchErr)

	handler := newTestHandler(mockSvc, now)

	req := httptest.NewRequest(http.MethodGet, "/v1/drops/recent", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Contains(t, errResp.Error, "fetching drops")
}

func TestHTTPHandler_OtherErrorsAreInternal(t *testing.T) {
	now := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	mockSvc := &MockDropsService{}
	mockSvc.On("GetListings", mock.Anything, now).Return(models.Listings{}, assert.AnError)

	handler := newTestHandler(mockSvc, now)

	req := httptest.NewRequest(http.MethodGet, "/v1/drops/games", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHTTPHandler_Health(t *testing.T) {
	now := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	handler := newTestHandler(&MockDropsService{}, now)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestHTTPHandler_CacheStats(t *testing.T) {
	now := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	snapshotCache, err := cache.NewHybridCache(cache.CacheConfig{EnableMemory: true})
	require.NoError(t, err)

	// One miss, then one hit.
	ctx := context.Background()
	_, _ = snapshotCache.GetSnapshot(ctx)
	require.NoError(t, snapshotCache.SetSnapshot(ctx, models.Snapshot{}, time.Minute))
	_, err = snapshotCache.GetSnapshot(ctx)
	require.NoError(t, err)

	endpoints := endpoint.MakeDropsEndpoints(&MockDropsService{}, func() time.Time { return now })
	handler := NewHTTPHandler(endpoints, snapshotCache, log.NewNopLogger())

	req := httptest.NewRequest(http.MethodGet, "/v1/cache/stats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var stats cache.CacheStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestHTTPHandler_CacheInvalidate(t *testing.T) {
	now := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	snapshotCache, err := cache.NewHybridCache(cache.CacheConfig{EnableMemory: true})
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, snapshotCache.SetSnapshot(ctx, models.Snapshot{}, time.Minute))

	endpoints := endpoint.MakeDropsEndpoints(&MockDropsService{}, func() time.Time { return now })
	handler := NewHTTPHandler(endpoints, snapshotCache, log.NewNopLogger())

	req := httptest.NewRequest(http.MethodPost, "/v1/cache/invalidate", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)

	_, err = snapshotCache.GetSnapshot(ctx)
	assert.ErrorIs(t, err, cache.ErrCacheMiss)
}

func TestHTTPHandler_CacheEndpointsAbsentWithoutCache(t *testing.T) {
	now := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	handler := newTestHandler(&MockDropsService{}, now)

	req := httptest.NewRequest(http.MethodGet, "/v1/cache/stats", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHTTPHandler_MethodNotAllowed(t *testing.T) {
	now := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	handler := newTestHandler(&MockDropsService{}, now)

	req := httptest.NewRequest(http.MethodPost, "/v1/drops/recent", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
