package feed

import "errors"

var (
	// ErrTransport indicates the feed could not be retrieved from its URI.
	ErrTransport = errors.New("feed transport failure")

	// ErrBadRow indicates a row that cannot be mapped to a record.
	ErrBadRow = errors.New("unmappable row")
)
