package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/poiesic/libsearch/core"
	"github.com/poiesic/libsearch/storage"
)

// RecordRepository implements storage.RecordRepository for BadgerDB.
type RecordRepository struct {
	backend *Backend
	posSeq  *badger.Sequence
}

var _ storage.RecordRepository = (*RecordRepository)(nil)

// NewRecordRepository creates a new RecordRepository.
func NewRecordRepository(backend *Backend) (storage.RecordRepository, error) {
	posSeq, err := backend.GetSequence(recordPosSeq)
	if err != nil {
		return nil, err
	}

	return &RecordRepository{
		backend: backend,
		posSeq:  posSeq,
	}, nil
}

// Close releases the position sequence.
func (r *RecordRepository) Close() error {
	return r.posSeq.Release()
}

// AddRecords adds one or more records to storage.
func (r *RecordRepository) AddRecords(ctx context.Context, records ...*core.Record) ([]*core.Record, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			// Derive content-based ID if not set
			if record.Id == 0 {
				record.Id = core.RecordID(record.Feed, record.ExternalKey)
			}

			// External key uniqueness within the feed
			keyIdx := makeExternalKeyKey(record.Feed, record.ExternalKey)
			if _, err := tx.Get(keyIdx); err == nil {
				return storage.ErrDuplicateKey
			} else if err != badger.ErrKeyNotFound {
				return err
			}

			// Assign creation-order position
			pos, err := r.posSeq.Next()
			if err != nil {
				return err
			}
			// BadgerDB sequences can return 0 on first call, so we skip it
			if pos == 0 {
				pos, err = r.posSeq.Next()
				if err != nil {
					return err
				}
			}
			record.Position = pos

			record.InsertedAt = time.Now().UTC()
			record.UpdatedAt = record.InsertedAt

			// Derived index text is rebuilt on every create
			record.RebuildIndex()

			// Store primary record
			value, err := storage.MarshalRecord(record)
			if err != nil {
				return err
			}
			if err := tx.Set(makeRecordKey(record.Id), value); err != nil {
				return err
			}

			// Store key index
			if err := tx.Set(keyIdx, storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return records, nil
}

// UpdateRecords updates existing records in place.
func (r *RecordRepository) UpdateRecords(ctx context.Context, records ...*core.Record) ([]*core.Record, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, record := range records {
			key := makeRecordKey(record.Id)

			// Read old record to enforce immutability and preserve identity
			old, err := readRecord(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}
			if old.Feed != record.Feed || old.ExternalKey != record.ExternalKey {
				return storage.ErrImmutableKey
			}

			record.Position = old.Position
			record.InsertedAt = old.InsertedAt
			record.UpdatedAt = time.Now().UTC()

			// Derived index text is rebuilt on every update
			record.RebuildIndex()

			value, err := storage.MarshalRecord(record)
			if err != nil {
				return err
			}
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	if err != nil {
		return nil, err
	}
	return records, nil
}

// DeleteRecords removes records by their IDs.
func (r *RecordRepository) DeleteRecords(ctx context.Context, ids ...core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeRecordKey(id)

			// Read record to locate its key index entry
			record, err := readRecord(tx, key)
			if err != nil {
				return err
			}
			if record == nil {
				return storage.ErrNotFound
			}

			if err := tx.Delete(makeExternalKeyKey(record.Feed, record.ExternalKey)); err != nil {
				return err
			}
			if err := tx.Delete(key); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// GetRecord retrieves a single record by ID.
func (r *RecordRepository) GetRecord(ctx context.Context, id core.ID) (*core.Record, error) {
	var result *core.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		record, err := readRecord(tx, makeRecordKey(id))
		if err != nil {
			return err
		}
		if record == nil {
			return storage.ErrNotFound
		}
		result = record
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetRecordByKey retrieves a single record by feed and external key.
func (r *RecordRepository) GetRecordByKey(ctx context.Context, feed core.FeedType, externalKey string) (*core.Record, error) {
	var result *core.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeExternalKeyKey(feed, externalKey))
		if err == badger.ErrKeyNotFound {
			return storage.ErrNotFound
		}
		if err != nil {
			return err
		}

		var id core.ID
		err = item.Value(func(val []byte) error {
			var err error
			id, err = storage.UnmarshalID(val)
			return err
		})
		if err != nil {
			return err
		}

		record, err := readRecord(tx, makeRecordKey(id))
		if err != nil {
			return err
		}
		if record == nil {
			return storage.ErrNotFound
		}
		result = record
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return result, nil
}

// GetRecordsByFeed retrieves all records of a feed, ordered by creation
// position ascending.
func (r *RecordRepository) GetRecordsByFeed(ctx context.Context, feed core.FeedType) ([]*core.Record, error) {
	var results []*core.Record
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanRecords(tx, func(record *core.Record) error {
			if record.Feed == feed {
				results = append(results, record)
			}
			return nil
		})
	}, false)

	if err != nil {
		return nil, err
	}

	slices.SortFunc(results, func(a, b *core.Record) int {
		switch {
		case a.Position < b.Position:
			return -1
		case a.Position > b.Position:
			return 1
		default:
			return 0
		}
	})

	return results, nil
}

// CountRecords returns the number of records in a feed.
func (r *RecordRepository) CountRecords(ctx context.Context, feed core.FeedType) (int, error) {
	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanRecords(tx, func(record *core.Record) error {
			if record.Feed == feed {
				count++
			}
			return nil
		})
	}, false)

	if err != nil {
		return 0, err
	}
	return count, nil
}

// readRecord reads and unmarshals a record by its primary key.
// Returns nil (and no error) if the key does not exist.
func readRecord(tx *badger.Txn, key []byte) (*core.Record, error) {
	item, err := tx.Get(key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var record *core.Record
	err = item.Value(func(val []byte) error {
		var err error
		record, err = storage.UnmarshalRecord(val)
		return err
	})
	if err != nil {
		return nil, err
	}
	return record, nil
}

// scanRecords iterates all primary record entries, invoking fn per record.
func scanRecords(tx *badger.Txn, fn func(record *core.Record) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = makeRecordScanPrefix()
	iter := tx.NewIterator(opts)
	defer iter.Close()

	for iter.Rewind(); iter.Valid(); iter.Next() {
		var record *core.Record
		err := iter.Item().Value(func(val []byte) error {
			var err error
			record, err = storage.UnmarshalRecord(val)
			return err
		})
		if err != nil {
			return err
		}
		if record == nil {
			continue
		}
		if err := fn(record); err != nil {
			return err
		}
	}
	return nil
}
