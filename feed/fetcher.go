package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/poiesic/libsearch/ingestion"
)

const defaultFetchTimeout = 30 * time.Second

// HTTPFetcher retrieves raw feed bytes over HTTP. Any non-2xx response or
// transport error is reported as ErrTransport; the pipeline treats it the
// same as a validation rejection and aborts the run. No in-run retries: the
// next scheduled run is the retry.
type HTTPFetcher struct {
	client *http.Client
}

var _ ingestion.Fetcher = (*HTTPFetcher)(nil)

// NewHTTPFetcher creates a fetcher with a default timeout.
// Pass a nil client to use defaults.
func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &HTTPFetcher{client: client}
}

// Fetch retrieves the body at uri.
func (f *HTTPFetcher) Fetch(ctx context.Context, uri string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned status %d", ErrTransport, uri, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	return body, nil
}
