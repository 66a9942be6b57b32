package main

import (
	"context"
	"flag"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/poiesic/libsearch/core"
	"github.com/poiesic/libsearch/feed"
)

func TestNewApp(t *testing.T) {
	app := newApp()

	assert.Equal(t, "libsearch", app.Name)

	names := make([]string, 0, len(app.Commands))
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.ElementsMatch(t, []string{"ingest", "search", "serve"}, names)
}

func TestSetupLogger(t *testing.T) {
	newContext := func(level string) *cli.Context {
		set := flag.NewFlagSet("test", flag.ContinueOnError)
		set.String("log-level", level, "")
		return cli.NewContext(newApp(), set, nil)
	}

	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		t.Run(level, func(t *testing.T) {
			assert.NoError(t, setupLogger(newContext(level)))
		})
	}

	t.Run("unknown level", func(t *testing.T) {
		assert.Error(t, setupLogger(newContext("verbose")))
	})
}

func TestSourceFor(t *testing.T) {
	t.Run("default sources", func(t *testing.T) {
		for _, feedType := range []core.FeedType{core.FeedStaff, core.FeedDatabase, core.FeedBestBet} {
			src, err := sourceFor(feedType, "")
			require.NoError(t, err)
			assert.Equal(t, feedType, src.Feed())
			assert.NotEmpty(t, src.URI())
		}
	})

	t.Run("uri override", func(t *testing.T) {
		src, err := sourceFor(core.FeedDatabase, "http://localhost:8000/databases.csv")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8000/databases.csv", src.URI())
		assert.IsType(t, &feed.DatabaseSource{}, src)
	})

	t.Run("unknown feed", func(t *testing.T) {
		_, err := sourceFor(core.FeedType(99), "")
		assert.ErrorIs(t, err, core.ErrUnknownFeedType)
	})
}

func TestIngestCommand_RejectsUnknownFeed(t *testing.T) {
	app := newApp()
	err := app.RunContext(context.Background(), []string{
		"libsearch", "ingest", "--db", t.TempDir(), "--feed", "bogus",
	})
	assert.ErrorIs(t, err, core.ErrUnknownFeedType)
}
