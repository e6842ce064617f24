package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/43mm/twitch-drops-list/internal/fetch"
	"github.com/43mm/twitch-drops-list/internal/listing"
	"github.com/43mm/twitch-drops-list/internal/models"
	"github.com/43mm/twitch-drops-list/internal/publish"
	"github.com/43mm/twitch-drops-list/internal/render"
	"github.com/43mm/twitch-drops-list/internal/service"
)

// MockDropsService is a mock implementation of service.DropsService
type MockDropsService struct {
	mock.Mock
}

func (m *MockDropsService) GetListings(ctx context.Context, now time.Time) (models.Listings, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(models.Listings), args.Error(1)
}

var _ service.DropsService = (*MockDropsService)(nil)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func sampleListings(now time.Time) models.Listings {
	campaigns := []models.Campaign{
		{
			ID:      "a1",
			Name:    "Launch Party",
			Game:    "Alpha Quest",
			StartAt: now.Add(-48 * time.Hour),
		},
	}
	return listing.NewBuilder().Build(models.Snapshot{Campaigns: campaigns}, now)
}

func TestRunner_RunOnce_PublishesRenderedListing(t *testing.T) {
	now := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)

	mockSvc := &MockDropsService{}
	mockSvc.On("GetListings", mock.Anything, now).Return(sampleListings(now), nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "DROPS.md")

	run := New(mockSvc, render.NewMarkdown(), publish.NewFilePublisher(path), fixedClock(now), log.NewNopLogger())
	require.NoError(t, run.RunOnce(context.Background()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# Twitch Drops Campaigns")
	assert.Contains(t, string(content), "Launch Party")

	mockSvc.AssertExpectations(t)
}

func TestRunner_RunOnce_FetchFailureProducesNoOutput(t *testing.T) {
	now := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)

	mockSvc := &MockDropsService{}
	fetchErr := &fetch.FetchError{URL: "https://example.com/drops", Err: assert.AnError}
	mockSvc.On("GetListings", mock.Anything, now).Return(models.Listings{}, fetchErr)

	dir := t.TempDir()
	path := filepath.Join(dir, "DROPS.md")

	run := New(mockSvc, render.NewMarkdown(), publish.NewFilePublisher(path), fixedClock(now), log.NewNopLogger())
	err := run.RunOnce(context.Background())
	require.Error(t, err)

	// No file appears: a failed fetch never publishes empty output.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestRunner_RunOnce_FailedRunKeepsPreviousOutput(t *testing.T) {
	now := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)

	mockSvc := &MockDropsService{}
	fetchErr := &fetch.FetchError{URL: "https://example.com/drops", Err: assert.AnError}
	mockSvc.On("GetListings", mock.Anything, now).Return(models.Listings{}, fetchErr)

	dir := t.TempDir()
	path := filepath.Join(dir, "DROPS.md")
	require.NoError(t, os.WriteFile(path, []byte("previous listing"), 0o644))

	run := New(mockSvc, render.NewMarkdown(), publish.NewFilePublisher(path), fixedClock(now), log.NewNopLogger())
	require.Error(t, run.RunOnce(context.Background()))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "previous listing", string(content))
}

func TestRunner_RunOnce_IdenticalRunsProduceIdenticalBytes(t *testing.T) {
	now := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)
	listings := sampleListings(now)

	mockSvc := &MockDropsService{}
	mockSvc.On("GetListings", mock.Anything, now).Return(listings, nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "DROPS.md")
	run := New(mockSvc, render.NewMarkdown(), publish.NewFilePublisher(path), fixedClock(now), log.NewNopLogger())

	require.NoError(t, run.RunOnce(context.Background()))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, run.RunOnce(context.Background()))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRunner_Run_StopsOnContextCancel(t *testing.T) {
	now := time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC)

	mockSvc := &MockDropsService{}
	mockSvc.On("GetListings", mock.Anything, now).Return(sampleListings(now), nil)

	dir := t.TempDir()
	run := New(mockSvc, render.NewMarkdown(), publish.NewFilePublisher(filepath.Join(dir, "DROPS.md")), fixedClock(now), log.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- run.Run(ctx, time.Hour)
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("runner did not stop after context cancel")
	}
}
