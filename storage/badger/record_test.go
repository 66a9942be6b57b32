package badger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/libsearch/core"
	"github.com/poiesic/libsearch/normalize"
	"github.com/poiesic/libsearch/storage"
)

func newTestRecord(feed core.FeedType, key, title string) *core.Record {
	return &core.Record{
		Feed:        feed,
		ExternalKey: key,
		Title:       title,
	}
}

func TestAddRecords(t *testing.T) {
	records, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		records.Close()
		backend.Close()
	}()

	ctx := context.Background()

	added, err := records.AddRecords(ctx,
		newTestRecord(core.FeedDatabase, "1", "Academic Search"),
		newTestRecord(core.FeedDatabase, "2", "Oxford Music Online"))
	require.NoError(t, err)
	require.Len(t, added, 2)

	for _, record := range added {
		assert.NotZero(t, record.Id)
		assert.NotZero(t, record.Position)
		assert.False(t, record.InsertedAt.IsZero())
		assert.NotEmpty(t, record.IndexText, "index text rebuilt on create")
	}
	assert.Less(t, added[0].Position, added[1].Position, "positions follow creation order")
	assert.Equal(t, core.RecordID(core.FeedDatabase, "1"), added[0].Id)
}

func TestAddRecords_DuplicateKey(t *testing.T) {
	records, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		records.Close()
		backend.Close()
	}()

	ctx := context.Background()

	_, err = records.AddRecords(ctx, newTestRecord(core.FeedDatabase, "1", "Academic Search"))
	require.NoError(t, err)

	_, err = records.AddRecords(ctx, newTestRecord(core.FeedDatabase, "1", "Imposter"))
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	// Same key in a different feed is a different record.
	_, err = records.AddRecords(ctx, newTestRecord(core.FeedStaff, "1", "Some Person"))
	assert.NoError(t, err)
}

func TestGetRecordByKey(t *testing.T) {
	records, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		records.Close()
		backend.Close()
	}()

	ctx := context.Background()

	_, err = records.AddRecords(ctx, newTestRecord(core.FeedBestBet, "https://example.org", "Borrowing"))
	require.NoError(t, err)

	record, err := records.GetRecordByKey(ctx, core.FeedBestBet, "https://example.org")
	require.NoError(t, err)
	assert.Equal(t, "Borrowing", record.Title)

	_, err = records.GetRecordByKey(ctx, core.FeedBestBet, "https://nowhere.org")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateRecords(t *testing.T) {
	records, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		records.Close()
		backend.Close()
	}()

	ctx := context.Background()

	added, err := records.AddRecords(ctx, newTestRecord(core.FeedDatabase, "1", "Academic Search"))
	require.NoError(t, err)
	original := added[0]

	updated := newTestRecord(core.FeedDatabase, "1", "Academic Search Premier")
	updated.Id = original.Id
	_, err = records.UpdateRecords(ctx, updated)
	require.NoError(t, err)

	fetched, err := records.GetRecord(ctx, original.Id)
	require.NoError(t, err)
	assert.Equal(t, "Academic Search Premier", fetched.Title)
	assert.Equal(t, original.Position, fetched.Position, "position survives updates")
	assert.Equal(t, normalize.Normalize("Academic Search Premier"), fetched.IndexTitle,
		"index text rebuilt on update")
}

func TestUpdateRecords_NotFound(t *testing.T) {
	records, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		records.Close()
		backend.Close()
	}()

	missing := newTestRecord(core.FeedDatabase, "1", "Ghost")
	missing.Id = core.RecordID(core.FeedDatabase, "1")
	_, err = records.UpdateRecords(context.Background(), missing)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestUpdateRecords_ImmutableKey(t *testing.T) {
	records, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		records.Close()
		backend.Close()
	}()

	ctx := context.Background()

	added, err := records.AddRecords(ctx, newTestRecord(core.FeedDatabase, "1", "Academic Search"))
	require.NoError(t, err)

	moved := newTestRecord(core.FeedDatabase, "2", "Academic Search")
	moved.Id = added[0].Id
	_, err = records.UpdateRecords(ctx, moved)
	assert.ErrorIs(t, err, storage.ErrImmutableKey)
}

func TestDeleteRecords(t *testing.T) {
	records, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		records.Close()
		backend.Close()
	}()

	ctx := context.Background()

	added, err := records.AddRecords(ctx, newTestRecord(core.FeedDatabase, "1", "Academic Search"))
	require.NoError(t, err)

	require.NoError(t, records.DeleteRecords(ctx, added[0].Id))

	_, err = records.GetRecord(ctx, added[0].Id)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = records.GetRecordByKey(ctx, core.FeedDatabase, "1")
	assert.ErrorIs(t, err, storage.ErrNotFound, "key index entry removed too")

	assert.ErrorIs(t, records.DeleteRecords(ctx, added[0].Id), storage.ErrNotFound)

	// The key is reusable after deletion.
	_, err = records.AddRecords(ctx, newTestRecord(core.FeedDatabase, "1", "Academic Search"))
	assert.NoError(t, err)
}

func TestGetRecordsByFeed(t *testing.T) {
	records, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	defer func() {
		records.Close()
		backend.Close()
	}()

	ctx := context.Background()

	_, err = records.AddRecords(ctx,
		newTestRecord(core.FeedDatabase, "1", "First"),
		newTestRecord(core.FeedDatabase, "2", "Second"),
		newTestRecord(core.FeedStaff, "10", "A Person"),
		newTestRecord(core.FeedDatabase, "3", "Third"))
	require.NoError(t, err)

	byFeed, err := records.GetRecordsByFeed(ctx, core.FeedDatabase)
	require.NoError(t, err)
	require.Len(t, byFeed, 3)

	// Creation order
	assert.Equal(t, "First", byFeed[0].Title)
	assert.Equal(t, "Second", byFeed[1].Title)
	assert.Equal(t, "Third", byFeed[2].Title)

	count, err := records.CountRecords(ctx, core.FeedDatabase)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	count, err = records.CountRecords(ctx, core.FeedBestBet)
	require.NoError(t, err)
	assert.Zero(t, count)
}
