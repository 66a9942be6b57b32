package ingestion

import "errors"

var (
	// ErrRecordRepositoryRequired is returned when a record repository is not provided.
	ErrRecordRepositoryRequired = errors.New("record repository required")

	// ErrFetcherRequired is returned when a feed fetcher is not provided.
	ErrFetcherRequired = errors.New("feed fetcher required")

	// ErrSourceRequired is returned when a feed source is not provided.
	ErrSourceRequired = errors.New("feed source required")

	// ErrFetchFailed indicates the feed bytes could not be retrieved.
	// The run aborts with no persistence.
	ErrFetchFailed = errors.New("feed fetch failed")

	// ErrValidationFailed indicates the fetched feed was structurally
	// unacceptable. The run aborts with no persistence.
	ErrValidationFailed = errors.New("feed validation failed")

	// ErrHeaderMismatch indicates the feed's header row did not exactly
	// match the expected ordered header for the feed type.
	ErrHeaderMismatch = errors.New("header mismatch")

	// ErrTooFewRows indicates the feed's row count was implausibly small,
	// suggesting a truncated or empty upstream response.
	ErrTooFewRows = errors.New("too few rows")
)
