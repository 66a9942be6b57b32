package core

import (
	"encoding/binary"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"

	"github.com/poiesic/libsearch/normalize"
)

// ID is a unique identifier for domain entities.
// It is generated by content-based hashing of a record's feed and external key,
// so the same feed row addresses the same record on every ingestion run.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// FeedType identifies which upstream feed a record belongs to.
type FeedType int

const (
	// FeedStaff is the staff directory feed.
	FeedStaff FeedType = iota + 1
	// FeedDatabase is the external database catalog feed.
	FeedDatabase
	// FeedBestBet is the curated best-bet answers feed.
	FeedBestBet
)

// String returns the canonical feed name, as used in store keys, CLI flags
// and search URLs.
func (f FeedType) String() string {
	switch f {
	case FeedStaff:
		return "staff"
	case FeedDatabase:
		return "database"
	case FeedBestBet:
		return "best-bet"
	default:
		return fmt.Sprintf("feed(%d)", int(f))
	}
}

// ParseFeedType parses a canonical feed name back into a FeedType.
func ParseFeedType(s string) (FeedType, error) {
	switch s {
	case "staff":
		return FeedStaff, nil
	case "database":
		return FeedDatabase, nil
	case "best-bet", "bestbet":
		return FeedBestBet, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownFeedType, s)
	}
}

// Record is a searchable document reconciled from one feed row.
// A record is identified within its feed by ExternalKey, which is stable
// across runs and immutable once assigned.
type Record struct {
	Id          ID       `json:"id"`
	Feed        FeedType `json:"feed"`
	ExternalKey string   `json:"external_key"`

	// Weighted text fields. Title ranks highest, Description next.
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	// Set fields: order irrelevant, duplicates collapsed. Stored sorted.
	AltNames    []string `json:"alt_names,omitempty"`
	Subjects    []string `json:"subjects,omitempty"`
	SearchTerms []string `json:"search_terms,omitempty"`

	// Scalar fields, returned but not searched.
	URL         string            `json:"url,omitempty"`
	FriendlyURL string            `json:"friendly_url,omitempty"`
	LastUpdate  time.Time         `json:"last_update"`
	Details     map[string]string `json:"details,omitempty"`

	// Derived index text, regenerated whenever source fields change.
	// Never the source of truth and never hand-edited.
	IndexTitle string `json:"index_title,omitempty"`
	IndexBody  string `json:"index_body,omitempty"`
	IndexSets  string `json:"index_sets,omitempty"`
	IndexText  string `json:"index_text,omitempty"`

	// Position is the creation order within the store, used as the
	// deterministic tie-break key when ranking. Stable across updates.
	Position uint64 `json:"position"`

	InsertedAt time.Time `json:"inserted_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Key returns the feed-qualified external key, e.g. "database:2939016".
// It is the content that record IDs are hashed from.
func (r *Record) Key() string {
	return r.Feed.String() + ":" + r.ExternalKey
}

// RecordID returns the deterministic ID for a record of the given feed
// and external key.
func RecordID(feed FeedType, externalKey string) ID {
	return IDFromContent(feed.String() + ":" + externalKey)
}

// RebuildIndex recomputes the derived index text from the record's source
// fields. It is a pure function of those fields and must be called whenever
// any of them change.
func (r *Record) RebuildIndex() {
	r.IndexTitle = normalize.Normalize(r.Title)
	r.IndexBody = normalize.Normalize(r.Description)

	members := make([]string, 0, len(r.AltNames)+len(r.Subjects)+len(r.SearchTerms)+len(r.Details))
	members = append(members, r.AltNames...)
	members = append(members, r.Subjects...)
	members = append(members, r.SearchTerms...)
	for _, k := range slices.Sorted(maps.Keys(r.Details)) {
		members = append(members, r.Details[k])
	}

	parts := make([]string, 0, len(members))
	for _, m := range members {
		if n := normalize.Normalize(m); n != "" {
			parts = append(parts, n)
		}
	}
	r.IndexSets = strings.Join(parts, " ")

	full := make([]string, 0, 3)
	for _, s := range []string{r.IndexTitle, r.IndexBody, r.IndexSets} {
		if s != "" {
			full = append(full, s)
		}
	}
	r.IndexText = strings.Join(full, " ")
}

// SameSource reports whether two records carry identical source field values.
// Derived index text, position and timestamps are not compared; reconciliation
// uses this to decide between a no-op and an in-place update.
func (r *Record) SameSource(other *Record) bool {
	if other == nil {
		return false
	}
	return r.Feed == other.Feed &&
		r.ExternalKey == other.ExternalKey &&
		r.Title == other.Title &&
		r.Description == other.Description &&
		slices.Equal(r.AltNames, other.AltNames) &&
		slices.Equal(r.Subjects, other.Subjects) &&
		slices.Equal(r.SearchTerms, other.SearchTerms) &&
		r.URL == other.URL &&
		r.FriendlyURL == other.FriendlyURL &&
		r.LastUpdate.Equal(other.LastUpdate) &&
		maps.Equal(r.Details, other.Details)
}

// SearchResult represents a search result with the full record and relevance score.
type SearchResult struct {
	Record *Record `json:"record"`
	Score  float64 `json:"score"`
}
