package ingestion

import (
	"context"

	"github.com/poiesic/libsearch/core"
)

// Source describes one feed type to the pipeline: where its bytes live, what
// shape they must have, and how one row becomes a candidate record. The
// generic pipeline is composed with a Source per feed rather than specialized
// per feed.
type Source interface {
	// Feed returns the feed type this source produces records for.
	Feed() core.FeedType

	// URI returns the location the feed bytes are fetched from.
	URI() string

	// ExpectedHeader returns the exact ordered header row the feed must
	// carry. Any drift rejects the whole run.
	ExpectedHeader() []string

	// MinRows returns the minimum plausible number of data rows. A feed
	// below this threshold is rejected, protecting existing records from
	// a truncated upstream response.
	MinRows() int

	// MapRow converts one validated row into a candidate record.
	// A row-scoped error skips the row without aborting the run.
	MapRow(row []string) (*core.Record, error)
}

// Fetcher retrieves raw feed bytes from a URI. It is an external
// collaborator: transport policy (timeouts, TLS) lives behind this interface,
// and a fetch failure aborts the run exactly like a validation rejection.
type Fetcher interface {
	Fetch(ctx context.Context, uri string) ([]byte, error)
}
