package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRecord(t *testing.T) {
	valid := &Record{Feed: FeedDatabase, ExternalKey: "123", Title: "Academic Search"}

	t.Run("valid record", func(t *testing.T) {
		assert.NoError(t, ValidateRecord(valid))
	})

	t.Run("nil record", func(t *testing.T) {
		assert.ErrorIs(t, ValidateRecord(nil), ErrInvalidRecord)
	})

	t.Run("unknown feed", func(t *testing.T) {
		record := *valid
		record.Feed = FeedType(42)
		err := ValidateRecord(&record)
		assert.ErrorIs(t, err, ErrInvalidRecord)
		assert.ErrorIs(t, err, ErrUnknownFeedType)
	})

	t.Run("empty external key", func(t *testing.T) {
		record := *valid
		record.ExternalKey = ""
		err := ValidateRecord(&record)
		assert.ErrorIs(t, err, ErrInvalidRecord)
		assert.ErrorIs(t, err, ErrEmptyExternalKey)
	})

	t.Run("empty title", func(t *testing.T) {
		record := *valid
		record.Title = ""
		err := ValidateRecord(&record)
		assert.ErrorIs(t, err, ErrInvalidRecord)
		assert.ErrorIs(t, err, ErrEmptyTitle)
	})
}

func TestValidateFeedType(t *testing.T) {
	assert.NoError(t, ValidateFeedType(FeedStaff))
	assert.NoError(t, ValidateFeedType(FeedDatabase))
	assert.NoError(t, ValidateFeedType(FeedBestBet))
	assert.ErrorIs(t, ValidateFeedType(FeedType(0)), ErrUnknownFeedType)
}
