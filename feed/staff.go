package feed

import (
	"fmt"
	"strings"

	"github.com/poiesic/libsearch/core"
	"github.com/poiesic/libsearch/ingestion"
)

const defaultStaffURI = "https://lib-jobs.princeton.edu/staff-directory.csv"

// staffHeader is the exact ordered header the staff directory feed must
// carry. Upstream occasionally reshuffles columns; an exact match turns
// silent schema drift into a rejected run.
var staffHeader = []string{
	"PUID", "NetID", "Phone", "Name", "lastName", "firstName", "middleName",
	"Title", "LibraryTitle", "LongTitle", "Email", "Section", "Division",
	"Department", "StartDate", "StaffSort", "UnitSort", "DeptSort", "Unit",
	"DivSect", "FireWarden", "BackupFireWarden", "FireWardenNotes",
	"Office", "Building",
}

// StaffSource maps the staff directory feed. Records are keyed by PUID.
type StaffSource struct {
	uri string
}

var _ ingestion.Source = (*StaffSource)(nil)

// NewStaffSource creates a staff directory source.
// Pass an empty uri to use the default upstream location.
func NewStaffSource(uri string) *StaffSource {
	if uri == "" {
		uri = defaultStaffURI
	}
	return &StaffSource{uri: uri}
}

func (s *StaffSource) Feed() core.FeedType { return core.FeedStaff }

func (s *StaffSource) URI() string { return s.uri }

func (s *StaffSource) ExpectedHeader() []string { return staffHeader }

// MinRows guards against a truncated directory wiping the staff table.
// The directory holds a few hundred people; anything under a handful of
// rows is an upstream failure, not a layoff.
func (s *StaffSource) MinRows() int { return 3 }

// MapRow converts one staff directory row into a candidate record.
func (s *StaffSource) MapRow(row []string) (*core.Record, error) {
	if err := checkWidth(row, len(staffHeader)); err != nil {
		return nil, err
	}

	puid := strings.TrimSpace(row[0])
	if puid == "" {
		return nil, fmt.Errorf("%w: missing PUID", ErrBadRow)
	}
	// PUIDs are numeric; a non-numeric cell means the columns slipped.
	if _, err := parseRowInt("PUID", puid); err != nil {
		return nil, err
	}

	startDate, err := parseRowDate("StartDate", row[14])
	if err != nil {
		return nil, err
	}

	details := map[string]string{}
	for k, v := range map[string]string{
		"netid":      row[1],
		"phone":      row[2],
		"email":      row[10],
		"job_title":  row[7],
		"long_title": row[9],
		"office":     row[23],
		"building":   row[24],
	} {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			details[k] = trimmed
		}
	}

	var units []string
	for _, cell := range []string{row[11], row[12], row[13], row[18]} { // Section, Division, Department, Unit
		if trimmed := strings.TrimSpace(cell); trimmed != "" {
			units = append(units, trimmed)
		}
	}

	record := &core.Record{
		Feed:        core.FeedStaff,
		ExternalKey: puid,
		Title:       strings.TrimSpace(row[3]),
		Description: strings.TrimSpace(row[8]), // LibraryTitle
		Subjects:    splitSet(strings.Join(units, setDelimiter)),
		LastUpdate:  startDate,
		Details:     details,
	}
	return record, nil
}
