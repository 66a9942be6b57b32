package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/libsearch/normalize"
)

func TestIDFromContent_Deterministic(t *testing.T) {
	id1 := IDFromContent("database:123")
	id2 := IDFromContent("database:123")
	id3 := IDFromContent("database:124")

	assert.Equal(t, id1, id2)
	assert.NotEqual(t, id1, id3)
}

func TestRecordID_NamespacedByFeed(t *testing.T) {
	// The same external key in different feeds must address different records.
	assert.NotEqual(t, RecordID(FeedStaff, "42"), RecordID(FeedDatabase, "42"))
	assert.Equal(t, RecordID(FeedDatabase, "42"), RecordID(FeedDatabase, "42"))
}

func TestFeedType_RoundTrip(t *testing.T) {
	for _, feed := range []FeedType{FeedStaff, FeedDatabase, FeedBestBet} {
		parsed, err := ParseFeedType(feed.String())
		assert.NoError(t, err)
		assert.Equal(t, feed, parsed)
	}

	_, err := ParseFeedType("bagpipes")
	assert.ErrorIs(t, err, ErrUnknownFeedType)
}

func TestRebuildIndex(t *testing.T) {
	record := &Record{
		Feed:        FeedDatabase,
		ExternalKey: "1",
		Title:       "Resource",
		Description: "Great Database",
		AltNames:    []string{"EBSCO", "JSTOR"},
		Subjects:    []string{"Computer science", "Electrical engineering"},
	}
	record.RebuildIndex()

	assert.Equal(t, normalize.Normalize("resource"), record.IndexTitle)
	assert.Equal(t, normalize.Normalize("great database"), record.IndexBody)
	assert.Contains(t, record.IndexSets, normalize.Normalize("jstor"))
	assert.Contains(t, record.IndexSets, normalize.Normalize("computer science"))
	assert.Contains(t, record.IndexText, record.IndexTitle)
	assert.Contains(t, record.IndexText, record.IndexBody)
	assert.Contains(t, record.IndexText, record.IndexSets)
}

func TestRebuildIndex_PureFunctionOfSourceFields(t *testing.T) {
	record := &Record{Feed: FeedBestBet, ExternalKey: "u", Title: "Access and Borrowing"}
	record.RebuildIndex()
	first := record.IndexText

	// Rebuilding without a source change is a no-op.
	record.RebuildIndex()
	assert.Equal(t, first, record.IndexText)

	// Changing a source field changes the derived text.
	record.Title = "Borrowing Privileges"
	record.RebuildIndex()
	assert.NotEqual(t, first, record.IndexText)
}

func TestSameSource(t *testing.T) {
	base := func() *Record {
		return &Record{
			Feed:        FeedDatabase,
			ExternalKey: "123",
			Title:       "Academic Search",
			Description: "A very good database",
			AltNames:    []string{"Academic Search Plus"},
			Subjects:    []string{"Energy", "Environment"},
			URL:         "http://ebsco.com",
			LastUpdate:  time.Date(2021, 7, 8, 0, 0, 0, 0, time.UTC),
		}
	}

	a, b := base(), base()
	// Derived and store-assigned fields don't participate.
	b.Position = 99
	b.IndexText = "something stale"
	b.InsertedAt = time.Now()
	assert.True(t, a.SameSource(b))

	c := base()
	c.Description = "A mediocre database"
	assert.False(t, a.SameSource(c))

	d := base()
	d.Subjects = []string{"Energy"}
	assert.False(t, a.SameSource(d))

	assert.False(t, a.SameSource(nil))
}
