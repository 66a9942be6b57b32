// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	libsearch "github.com/poiesic/libsearch"
	"github.com/poiesic/libsearch/core"
	"github.com/poiesic/libsearch/feed"
	"github.com/poiesic/libsearch/ingestion"
)

func main() {
	app := newApp()
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "libsearch",
		Usage: "Feed ingestion and free-text search over library records",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Run one ingestion pass for a feed",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "feed",
						Aliases:  []string{"f"},
						Usage:    "Feed to ingest (staff, database, best-bet)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "uri",
						Usage: "Override the feed's upstream URI",
					},
					&cli.BoolFlag{
						Name:  "prune",
						Usage: "Delete records whose keys disappeared from the feed",
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Search a feed's records",
				ArgsUsage: "<query terms>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "feed",
						Aliases:  []string{"f"},
						Usage:    "Feed to search (staff, database, best-bet)",
						Required: true,
					},
				},
			},
			{
				Name:   "serve",
				Usage:  "Serve JSON search endpoints over HTTP",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "db",
						Aliases:  []string{"d"},
						Usage:    "Path to BadgerDB database directory",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Listen address",
						Value: ":8080",
					},
				},
			},
		},
	}
}

func setupLogger(c *cli.Context) error {
	var level slog.Level
	switch strings.ToLower(c.String("log-level")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("unknown log level %q", c.String("log-level"))
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

func ingestCommand(c *cli.Context) error {
	feedType, err := core.ParseFeedType(c.String("feed"))
	if err != nil {
		return err
	}

	src, err := sourceFor(feedType, c.String("uri"))
	if err != nil {
		return err
	}

	db, err := libsearch.NewDatabase(c.String("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	var opts []ingestion.Option
	if c.Bool("prune") {
		opts = append(opts, ingestion.WithPruneMissing(true))
	}

	report, err := db.Ingest(c.Context, src, opts...)
	if err != nil {
		return err
	}

	fmt.Printf("%s: created=%d updated=%d unchanged=%d skipped=%d pruned=%d\n",
		report.Feed, report.Created, report.Updated, report.Unchanged,
		report.Skipped, report.Pruned)
	for _, rowErr := range report.RowErrors {
		fmt.Printf("  skipped %v\n", rowErr)
	}
	return nil
}

func searchCommand(c *cli.Context) error {
	feedType, err := core.ParseFeedType(c.String("feed"))
	if err != nil {
		return err
	}

	db, err := libsearch.NewDatabase(c.String("db"))
	if err != nil {
		return err
	}
	defer db.Close()

	query := strings.Join(c.Args().Slice(), " ")
	results, err := db.Search(c.Context, feedType, query)
	if err != nil {
		return err
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: %q (%s)[%0.3f]\n", i, hit.Record.Title, hit.Record.ExternalKey, hit.Score)
	}
	return nil
}

func sourceFor(feedType core.FeedType, uri string) (ingestion.Source, error) {
	if uri == "" {
		return feed.SourceFor(feedType)
	}
	switch feedType {
	case core.FeedStaff:
		return feed.NewStaffSource(uri), nil
	case core.FeedDatabase:
		return feed.NewDatabaseSource(uri), nil
	case core.FeedBestBet:
		return feed.NewBestBetSource(uri), nil
	default:
		return nil, fmt.Errorf("%w: value %d", core.ErrUnknownFeedType, feedType)
	}
}
