package onthisday

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// DefaultUserAgent identifies this client to the Wikimedia API.
const DefaultUserAgent = "onthisday-mcp/1.0 (https://github.com/MrLeeang/onthisday-mcp)"

// Fetcher performs the single outbound GET for a lookup.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewFetcher creates a Fetcher. A nil client means http.DefaultClient.
func NewFetcher(client *http.Client, userAgent string) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	return &Fetcher{client: client, userAgent: userAgent}
}

// Fetch issues one GET to rawURL and returns the response body.
// It does not retry. Any failure is reported as a *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("failed to create request: %w", err)}
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "application/json, application/atom+xml;q=0.9, */*;q=0.1")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// drain so the connection can be reused
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: rawURL, Err: fmt.Errorf("failed to read response body: %w", err)}
	}
	return body, nil
}
