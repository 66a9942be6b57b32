package ingestion

import (
	"fmt"

	"github.com/poiesic/libsearch/core"
)

// RunState tracks how far an ingestion run progressed.
type RunState int

const (
	// StateIdle means the run has not started.
	StateIdle RunState = iota
	// StateFetched means the feed bytes were retrieved.
	StateFetched
	// StateValidated means the feed passed the validation gate.
	StateValidated
	// StateMapping means rows are being mapped to candidate records.
	StateMapping
	// StateReconciled means every mapped row was diffed against the store.
	StateReconciled
	// StateCommitted means the run finished, including any pruning.
	StateCommitted
	// StateAborted means the run stopped before touching any record.
	StateAborted
)

func (s RunState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFetched:
		return "fetched"
	case StateValidated:
		return "validated"
	case StateMapping:
		return "mapping"
	case StateReconciled:
		return "reconciled"
	case StateCommitted:
		return "committed"
	case StateAborted:
		return "aborted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// RowError records a single row that could not be mapped. The row was
// skipped; the rest of the run continued.
type RowError struct {
	// Line is the 1-based line number in the feed, counting the header.
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// Report summarizes the outcome of one ingestion run. A rerun against an
// unchanged feed reports everything as Unchanged.
type Report struct {
	Feed      core.FeedType
	State     RunState
	Created   int
	Updated   int
	Unchanged int
	Skipped   int
	Pruned    int
	RowErrors []RowError
}

// Mutations returns the number of records the run created or changed.
func (r *Report) Mutations() int {
	return r.Created + r.Updated + r.Pruned
}
