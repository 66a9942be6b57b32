package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/poiesic/libsearch/core"
	"github.com/poiesic/libsearch/storage"
)

// Field weights: where a term matches decides most of its score.
const (
	weightTitle = 3.0
	weightBody  = 2.0
	weightSets  = 1.0
)

// Match specificity: an exact full-field match outranks a prefix match,
// which outranks a substring match.
const (
	specificityExact     = 3.0
	specificityPrefix    = 2.0
	specificitySubstring = 1.0
)

// Searcher evaluates parsed queries against the normalized, weighted field
// text of persisted records and returns relevance-ordered results.
type Searcher struct {
	records storage.RecordRepository
	logger  *slog.Logger
}

// Option configures a Searcher.
type Option func(*Searcher) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		if logger == nil {
			logger = slog.Default()
		}
		s.logger = logger
		return nil
	}
}

// NewSearcher creates a new searcher.
func NewSearcher(records storage.RecordRepository, opts ...Option) (*Searcher, error) {
	if records == nil {
		return nil, ErrRecordRepositoryRequired
	}

	s := &Searcher{
		records: records,
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// Search matches a raw query against one feed's records and returns results
// best match first. Malformed or adversarial input never fails a search;
// the worst case is zero results.
func (s *Searcher) Search(ctx context.Context, feed core.FeedType, rawQuery string) ([]*core.SearchResult, error) {
	return s.SearchWithMonitor(ctx, feed, rawQuery, nil)
}

// SearchWithMonitor runs Search with monitoring. The monitor receives
// callbacks at each stage of the search process.
func (s *Searcher) SearchWithMonitor(ctx context.Context, feed core.FeedType, rawQuery string, monitor Monitor) ([]*core.SearchResult, error) {
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	monitor.Start(rawQuery)

	query := ParseQuery(rawQuery)
	monitor.Parsed(query)

	if query.IsEmpty() {
		s.logger.Debug("query parsed to nothing", "feed", feed, "raw", rawQuery)
		monitor.Finish(nil)
		return []*core.SearchResult{}, nil
	}

	records, err := s.records.GetRecordsByFeed(ctx, feed)
	if err != nil {
		s.logger.Error("error scanning feed records", "feed", feed, "err", err)
		return nil, err
	}

	results := make([]*core.SearchResult, 0, len(records))
	for _, record := range records {
		if !qualifies(record, query) {
			continue
		}
		result := &core.SearchResult{
			Record: record,
			Score:  scoreRecord(record, query.Required),
		}
		monitor.Matched(result)
		results = append(results, result)
	}

	// Best score first; ties broken by creation order so repeated identical
	// queries return a deterministic order.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Record.Position < results[j].Record.Position
	})

	monitor.Finish(results)
	return results, nil
}

// qualifies reports whether a record's index text contains every required
// term and none of the excluded terms.
func qualifies(record *core.Record, query Query) bool {
	for _, term := range query.Required {
		if !strings.Contains(record.IndexText, term) {
			return false
		}
	}
	for _, term := range query.Excluded {
		if strings.Contains(record.IndexText, term) {
			return false
		}
	}
	return true
}

// scoreRecord combines, per distinct required term, the weight of the field
// the match occurred in with the specificity of the match, taking each
// term's best-scoring field.
func scoreRecord(record *core.Record, required []string) float64 {
	var score float64
	for _, term := range required {
		best := 0.0
		for _, field := range []struct {
			text   string
			weight float64
		}{
			{record.IndexTitle, weightTitle},
			{record.IndexBody, weightBody},
			{record.IndexSets, weightSets},
		} {
			if s := field.weight * specificity(field.text, term); s > best {
				best = s
			}
		}
		score += best
	}
	return score
}

func specificity(fieldText, term string) float64 {
	switch {
	case fieldText == "":
		return 0
	case fieldText == term:
		return specificityExact
	case strings.HasPrefix(fieldText, term):
		return specificityPrefix
	case strings.Contains(fieldText, term):
		return specificitySubstring
	default:
		return 0
	}
}
