package storage

import (
	"context"

	"github.com/poiesic/libsearch/core"
)

// Repository provides the lifecycle operations shared across all
// repositories. Implementations must be thread-safe and support concurrent
// access; each repository method is individually transactional.
type Repository interface {
	// Close closes the storage backend and releases resources.
	Close() error
}

// RecordRepository provides operations for managing feed records.
// Each record lives in exactly one feed's namespace; the (feed, external key)
// pair is unique at all times.
type RecordRepository interface {
	Repository

	// AddRecords adds one or more records to storage.
	// Derives a content-based ID from feed and external key when ID is 0,
	// assigns a creation-order position from sequence, sets the InsertedAt
	// timestamp, and rebuilds the derived index text.
	// Returns ErrDuplicateKey if a record with the same feed and external
	// key already exists.
	AddRecords(ctx context.Context, records ...*core.Record) ([]*core.Record, error)

	// UpdateRecords updates existing records in place.
	// Preserves the original position and InsertedAt timestamp, updates
	// the UpdatedAt timestamp, and rebuilds the derived index text.
	// The external key is immutable: ErrImmutableKey is returned if an
	// update tries to change it. Returns ErrNotFound if any record
	// doesn't exist.
	UpdateRecords(ctx context.Context, records ...*core.Record) ([]*core.Record, error)

	// DeleteRecords removes records by their IDs, along with their key
	// index entries. Returns ErrNotFound if any record doesn't exist.
	DeleteRecords(ctx context.Context, ids ...core.ID) error

	// GetRecord retrieves a single record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetRecord(ctx context.Context, id core.ID) (*core.Record, error)

	// GetRecordByKey retrieves a single record by feed and external key.
	// Returns ErrNotFound if no such record exists.
	GetRecordByKey(ctx context.Context, feed core.FeedType, externalKey string) (*core.Record, error)

	// GetRecordsByFeed retrieves all records belonging to a feed,
	// ordered by creation position ascending.
	GetRecordsByFeed(ctx context.Context, feed core.FeedType) ([]*core.Record, error)

	// CountRecords returns the number of records in a feed.
	CountRecords(ctx context.Context, feed core.FeedType) (int, error)
}
