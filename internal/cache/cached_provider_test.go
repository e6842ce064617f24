package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/43mm/twitch-drops-list/internal/fetch"
	"github.com/43mm/twitch-drops-list/internal/models"
)

// MockSnapshotProvider is a mock implementation of service.SnapshotProvider
type MockSnapshotProvider struct {
	mock.Mock
}

func (m *MockSnapshotProvider) Snapshot(ctx context.Context) (models.Snapshot, error) {
	args := m.Called(ctx)
	return args.Get(0).(models.Snapshot), args.Error(1)
}

func TestCachedProvider_MissFallsBackToUpstream(t *testing.T) {
	snapCache, err := NewHybridCache(CacheConfig{EnableMemory: true})
	require.NoError(t, err)

	mockProvider := &MockSnapshotProvider{}
	mockProvider.On("Snapshot", mock.Anything).Return(testSnapshot(), nil).Once()

	provider := NewCachedProvider(mockProvider, snapCache, time.Minute, log.NewNopLogger())

	snap, err := provider.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testSnapshot(), snap)

	// The snapshot is stored asynchronously; wait for it to land.
	assert.Eventually(t, func() bool {
		_, err := snapCache.GetSnapshot(context.Background())
		return err == nil
	}, time.Second, 10*time.Millisecond)

	// Second call is served from cache; the upstream mock only allows one
	// call.
	snap, err = provider.Snapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testSnapshot(), snap)

	mockProvider.AssertExpectations(t)
}

func TestCachedProvider_UpstreamErrorPropagates(t *testing.T) {
	snapCache, err := NewHybridCache(CacheConfig{EnableMemory: true})
	require.NoError(t, err)

	mockProvider := &MockSnapshotProvider{}
	fetchErr := &fetch.FetchError{URL: "https://example.com/drops", Err: assert.AnError}
	mockProvider.On("Snapshot", mock.Anything).Return(models.Snapshot{}, fetchErr)

	provider := NewCachedProvider(mockProvider, snapCache, time.Minute, log.NewNopLogger())

	_, err = provider.Snapshot(context.Background())
	require.Error(t, err)

	var gotFetchErr *fetch.FetchError
	assert.ErrorAs(t, err, &gotFetchErr)
}
