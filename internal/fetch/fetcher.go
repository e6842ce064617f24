package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/43mm/twitch-drops-list/internal/models"
)

// Fetcher retrieves the raw active-campaign snapshot from the remote source.
type Fetcher interface {
	Fetch(ctx context.Context) ([]models.RawGame, error)
}

// FetchError wraps any transport, status or decode failure of the single
// fetch call. It is fatal to a run: no listing can be produced without data.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetching drops from %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// HTTPFetcher fetches the campaign snapshot over HTTP.
type HTTPFetcher struct {
	client *http.Client
	url    string
}

// NewHTTPFetcher creates a fetcher for the given endpoint. A nil client
// falls back to http.DefaultClient; callers normally pass a client with a
// bounded timeout.
func NewHTTPFetcher(url string, client *http.Client) *HTTPFetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPFetcher{
		client: client,
		url:    url,
	}
}

// Fetch performs the one network call of a run and decodes the response
// body. Any failure is reported as a *FetchError.
func (f *HTTPFetcher) Fetch(ctx context.Context) ([]models.RawGame, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: f.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: f.url, Err: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	var games []models.RawGame
	if err := json.NewDecoder(resp.Body).Decode(&games); err != nil {
		return nil, &FetchError{URL: f.url, Err: fmt.Errorf("decoding response body: %w", err)}
	}

	return games, nil
}
