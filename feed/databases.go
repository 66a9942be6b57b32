package feed

import (
	"strconv"
	"strings"

	"github.com/poiesic/libsearch/core"
	"github.com/poiesic/libsearch/ingestion"
)

const defaultDatabaseURI = "https://lib-jobs.princeton.edu/library-databases.csv"

// databaseHeader is the exact ordered header of the database catalog feed.
var databaseHeader = []string{
	"ID", "NAME", "DESCRIPTION", "ALT_NAMES", "URL", "FRIENDLY_URL", "SUBJECTS",
}

// DatabaseSource maps the external database catalog feed. Records are keyed
// by the catalog's numeric identifier.
type DatabaseSource struct {
	uri string
}

var _ ingestion.Source = (*DatabaseSource)(nil)

// NewDatabaseSource creates a database catalog source.
// Pass an empty uri to use the default upstream location.
func NewDatabaseSource(uri string) *DatabaseSource {
	if uri == "" {
		uri = defaultDatabaseURI
	}
	return &DatabaseSource{uri: uri}
}

func (s *DatabaseSource) Feed() core.FeedType { return core.FeedDatabase }

func (s *DatabaseSource) URI() string { return s.uri }

func (s *DatabaseSource) ExpectedHeader() []string { return databaseHeader }

// MinRows guards against a truncated catalog. The live catalog carries
// around a thousand databases.
func (s *DatabaseSource) MinRows() int { return 3 }

// MapRow converts one catalog row into a candidate record.
// The identifier cell must coerce to an integer; set-valued cells
// (alt names, subjects) are split on the feed delimiter.
func (s *DatabaseSource) MapRow(row []string) (*core.Record, error) {
	if err := checkWidth(row, len(databaseHeader)); err != nil {
		return nil, err
	}

	id, err := parseRowInt("ID", row[0])
	if err != nil {
		return nil, err
	}

	record := &core.Record{
		Feed:        core.FeedDatabase,
		ExternalKey: strconv.Itoa(id),
		Title:       strings.TrimSpace(row[1]),
		Description: strings.TrimSpace(row[2]),
		AltNames:    splitSet(row[3]),
		URL:         strings.TrimSpace(row[4]),
		FriendlyURL: strings.TrimSpace(row[5]),
		Subjects:    splitSet(row[6]),
	}
	return record, nil
}
