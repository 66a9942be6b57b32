package ingestion

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/libsearch/core"
	"github.com/poiesic/libsearch/storage"
)

// Pipeline reconciles an external tabular feed into the record store.
// One Run per feed: fetch, validate, map rows concurrently, then diff each
// candidate against the persisted set by external key. Repeated runs against
// an unchanged feed are a pure no-op.
//
// Runs for the same feed must not overlap; the create/update decision is not
// guarded by per-key locking.
type Pipeline struct {
	records      storage.RecordRepository
	fetcher      Fetcher
	pool         *ants.Pool
	pruneMissing bool
	logger       *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent row mapping.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.pool != nil {
			p.pool.Release()
		}

		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// WithPruneMissing controls whether records whose external keys disappeared
// from the feed snapshot are deleted at the end of a run. Default is off:
// the store is append-only and disappearing keys are kept.
func WithPruneMissing(prune bool) Option {
	return func(p *Pipeline) error {
		p.pruneMissing = prune
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(records storage.RecordRepository, fetcher Fetcher, opts ...Option) (*Pipeline, error) {
	if records == nil {
		return nil, ErrRecordRepositoryRequired
	}
	if fetcher == nil {
		return nil, ErrFetcherRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		records: records,
		fetcher: fetcher,
		pool:    pool,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// Run executes one ingestion run for the given source.
//
// A fetch failure or validation rejection aborts the run before any record
// is touched. Inside an accepted feed, a single row's mapping failure skips
// that row and the run continues; storage failures propagate and stop the
// run. Commits are per-row atomic, so an interrupted run leaves previously
// committed rows intact and is safe to retry.
func (p *Pipeline) Run(ctx context.Context, src Source) (*Report, error) {
	if src == nil {
		return nil, ErrSourceRequired
	}

	report := &Report{Feed: src.Feed(), State: StateIdle}

	raw, err := p.fetcher.Fetch(ctx, src.URI())
	if err != nil {
		report.State = StateAborted
		p.logger.Error("feed fetch failed", "feed", src.Feed(), "uri", src.URI(), "err", err)
		return report, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	report.State = StateFetched

	rows, err := parseTabular(raw)
	if err != nil {
		report.State = StateAborted
		p.logger.Error("feed is not parseable", "feed", src.Feed(), "err", err)
		return report, fmt.Errorf("%w: %w", ErrValidationFailed, err)
	}

	if err := Validate(rows, src.ExpectedHeader(), src.MinRows()); err != nil {
		report.State = StateAborted
		p.logger.Error("feed rejected by validation gate", "feed", src.Feed(), "err", err)
		return report, err
	}
	report.State = StateValidated

	report.State = StateMapping
	outcomes := p.mapRows(src, rows[1:])

	seen := make(map[string]bool, len(outcomes))
	for i, out := range outcomes {
		line := i + 2 // 1-based, after the header row

		if out.err != nil {
			report.Skipped++
			report.RowErrors = append(report.RowErrors, RowError{Line: line, Err: out.err})
			p.logger.Warn("row skipped", "feed", src.Feed(), "line", line, "err", out.err)
			continue
		}

		candidate := out.record
		seen[candidate.ExternalKey] = true

		existing, err := p.records.GetRecordByKey(ctx, candidate.Feed, candidate.ExternalKey)
		switch {
		case errors.Is(err, storage.ErrNotFound):
			if _, err := p.records.AddRecords(ctx, candidate); err != nil {
				return report, err
			}
			report.Created++
		case err != nil:
			return report, err
		case existing.SameSource(candidate):
			report.Unchanged++
		default:
			candidate.Id = existing.Id
			if _, err := p.records.UpdateRecords(ctx, candidate); err != nil {
				return report, err
			}
			report.Updated++
		}
	}
	report.State = StateReconciled

	if p.pruneMissing {
		if err := p.prune(ctx, src.Feed(), seen, report); err != nil {
			return report, err
		}
	}
	report.State = StateCommitted

	p.logger.Info("ingestion run finished",
		"feed", src.Feed(),
		"created", report.Created,
		"updated", report.Updated,
		"unchanged", report.Unchanged,
		"skipped", report.Skipped,
		"pruned", report.Pruned)

	return report, nil
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

type rowOutcome struct {
	record *core.Record
	err    error
}

// mapRows maps and normalizes rows concurrently. Rows have no cross-row
// dependency, so ordering is only restored by outcome index.
func (p *Pipeline) mapRows(src Source, rows [][]string) []rowOutcome {
	outcomes := make([]rowOutcome, len(rows))

	var wg sync.WaitGroup
	for i, row := range rows {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			record, err := src.MapRow(row)
			if err == nil {
				if err = core.ValidateRecord(record); err == nil {
					record.RebuildIndex()
				}
			}
			outcomes[i] = rowOutcome{record: record, err: err}
		}
		if err := p.pool.Submit(task); err != nil {
			// Pool unavailable; fall back to mapping inline.
			task()
		}
	}
	wg.Wait()

	return outcomes
}

// prune deletes records of the feed whose external keys were absent from the
// snapshot just reconciled.
func (p *Pipeline) prune(ctx context.Context, feed core.FeedType, seen map[string]bool, report *Report) error {
	existing, err := p.records.GetRecordsByFeed(ctx, feed)
	if err != nil {
		return err
	}

	for _, record := range existing {
		if seen[record.ExternalKey] {
			continue
		}
		if err := p.records.DeleteRecords(ctx, record.Id); err != nil {
			return err
		}
		report.Pruned++
		p.logger.Info("pruned record missing from feed snapshot",
			"feed", feed, "externalKey", record.ExternalKey)
	}
	return nil
}

// parseTabular parses raw feed bytes as CSV. Rows may be ragged; the
// validation gate decides whether the shape is acceptable.
func parseTabular(raw []byte) ([][]string, error) {
	reader := csv.NewReader(bytes.NewReader(raw))
	reader.FieldsPerRecord = -1

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}
