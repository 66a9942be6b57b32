package feed

import (
	"fmt"
	"strings"

	"github.com/poiesic/libsearch/core"
	"github.com/poiesic/libsearch/ingestion"
)

const defaultBestBetURI = "https://docs.google.com/spreadsheets/d/e/2PACX-1vSSDYbAmj_SDVK96DJItSsir_PbjMIqe8cBMvBfRIh4fpVzv3aozhCdulrgJXZzwl-fh-lbULMuLZuO/pub?gid=170493948&single=true&output=csv"

// bestBetHeader is the exact ordered header of the curated best-bets sheet.
var bestBetHeader = []string{
	"Title", "Description", "URL", "Search Terms", "Last Update",
}

// BestBetSource maps the curated best-bet answers feed. Records are keyed by
// their target URL, the only cell the curators keep stable across edits.
type BestBetSource struct {
	uri string
}

var _ ingestion.Source = (*BestBetSource)(nil)

// NewBestBetSource creates a best-bets source.
// Pass an empty uri to use the published sheet.
func NewBestBetSource(uri string) *BestBetSource {
	if uri == "" {
		uri = defaultBestBetURI
	}
	return &BestBetSource{uri: uri}
}

func (s *BestBetSource) Feed() core.FeedType { return core.FeedBestBet }

func (s *BestBetSource) URI() string { return s.uri }

func (s *BestBetSource) ExpectedHeader() []string { return bestBetHeader }

// MinRows is low on purpose: the curated sheet is small.
func (s *BestBetSource) MinRows() int { return 1 }

// MapRow converts one best-bet row into a candidate record.
func (s *BestBetSource) MapRow(row []string) (*core.Record, error) {
	if err := checkWidth(row, len(bestBetHeader)); err != nil {
		return nil, err
	}

	url := strings.TrimSpace(row[2])
	if url == "" {
		return nil, fmt.Errorf("%w: missing URL", ErrBadRow)
	}

	lastUpdate, err := parseRowDate("Last Update", row[4])
	if err != nil {
		return nil, err
	}

	record := &core.Record{
		Feed:        core.FeedBestBet,
		ExternalKey: url,
		Title:       strings.TrimSpace(row[0]),
		Description: strings.TrimSpace(row[1]),
		SearchTerms: splitSet(row[3]),
		URL:         url,
		LastUpdate:  lastUpdate,
	}
	return record, nil
}
