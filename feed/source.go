package feed

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/poiesic/libsearch/core"
	"github.com/poiesic/libsearch/ingestion"
)

// setDelimiter separates members of set-valued cells.
const setDelimiter = ";"

// SourceFor returns the default source for a feed type.
func SourceFor(feedType core.FeedType) (ingestion.Source, error) {
	switch feedType {
	case core.FeedStaff:
		return NewStaffSource(""), nil
	case core.FeedDatabase:
		return NewDatabaseSource(""), nil
	case core.FeedBestBet:
		return NewBestBetSource(""), nil
	default:
		return nil, fmt.Errorf("%w: value %d", core.ErrUnknownFeedType, feedType)
	}
}

// splitSet splits a delimiter-joined cell into trimmed, non-empty members
// with duplicates collapsed. Members are returned sorted so that two runs
// over the same cell always produce equal sets.
func splitSet(cell string) []string {
	if strings.TrimSpace(cell) == "" {
		return nil
	}

	parts := strings.Split(cell, setDelimiter)
	members := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			members = append(members, trimmed)
		}
	}
	if len(members) == 0 {
		return nil
	}

	slices.Sort(members)
	return slices.Compact(members)
}

// parseRowInt coerces an identifier cell to an integer.
func parseRowInt(name, cell string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(cell))
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrBadRow, name, cell)
	}
	return n, nil
}

// parseRowDate coerces a date cell (YYYY-MM-DD) to a calendar date.
// An empty cell yields the zero time.
func parseRowDate(name, cell string) (time.Time, error) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse("2006-01-02", trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s %q is not a date", ErrBadRow, name, cell)
	}
	return t, nil
}

// checkWidth rejects rows whose column count differs from the feed header.
func checkWidth(row []string, want int) error {
	if len(row) != want {
		return fmt.Errorf("%w: got %d columns, want %d", ErrBadRow, len(row), want)
	}
	return nil
}
