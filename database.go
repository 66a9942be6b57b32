// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package libsearch ties the record store, the feed ingestion pipeline and
// the query engine together behind a single Database handle.
package libsearch

import (
	"context"
	"log/slog"

	"github.com/poiesic/libsearch/core"
	"github.com/poiesic/libsearch/feed"
	"github.com/poiesic/libsearch/ingestion"
	"github.com/poiesic/libsearch/search"
	"github.com/poiesic/libsearch/storage"
	"github.com/poiesic/libsearch/storage/badger"
)

// Database wires a BadgerDB-backed record repository to the ingestion
// pipeline and searcher. The store handle is explicit: both subsystems
// receive it by injection, never through package state.
type Database struct {
	backend *badger.Backend
	records storage.RecordRepository
	fetcher ingestion.Fetcher
	logger  *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	fetcher  ingestion.Fetcher
	logger   *slog.Logger
	inMemory bool
}

// WithFetcher overrides the HTTP fetcher, e.g. with a stub in tests.
func WithFetcher(fetcher ingestion.Fetcher) DatabaseOption {
	return func(o *databaseOptions) {
		o.fetcher = fetcher
	}
}

// WithDatabaseLogger sets a custom logger. Default is slog.Default().
func WithDatabaseLogger(logger *slog.Logger) DatabaseOption {
	return func(o *databaseOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithInMemory opens the store in memory, discarding all data on Close.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens (creating if necessary) a record store at filePath.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{
		fetcher: feed.NewHTTPFetcher(nil),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	records, err := badger.NewRecordRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	return &Database{
		backend: backend,
		records: records,
		fetcher: options.fetcher,
		logger:  options.logger,
	}, nil
}

// Records exposes the underlying record repository.
func (d *Database) Records() storage.RecordRepository {
	return d.records
}

// NewPipeline creates an ingestion pipeline bound to this database.
func (d *Database) NewPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	merged := append([]ingestion.Option{ingestion.WithLogger(d.logger)}, opts...)
	return ingestion.NewPipeline(d.records, d.fetcher, merged...)
}

// NewSearcher creates a searcher bound to this database.
func (d *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	merged := append([]search.Option{search.WithLogger(d.logger)}, opts...)
	return search.NewSearcher(d.records, merged...)
}

// Ingest runs one ingestion run for the given source.
func (d *Database) Ingest(ctx context.Context, src ingestion.Source, opts ...ingestion.Option) (*ingestion.Report, error) {
	pipeline, err := d.NewPipeline(opts...)
	if err != nil {
		return nil, err
	}
	defer pipeline.Release()

	return pipeline.Run(ctx, src)
}

// Search matches a raw query against one feed's records.
func (d *Database) Search(ctx context.Context, feedType core.FeedType, query string) ([]*core.SearchResult, error) {
	searcher, err := d.NewSearcher()
	if err != nil {
		return nil, err
	}
	return searcher.Search(ctx, feedType, query)
}

// Close closes the repository and backend.
func (d *Database) Close() error {
	if err := d.records.Close(); err != nil {
		d.backend.Close()
		return err
	}
	return d.backend.Close()
}
