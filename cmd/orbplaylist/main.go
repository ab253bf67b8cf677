package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"orbplaylist/internal/archive"
	"orbplaylist/internal/config"
	"orbplaylist/internal/fetch"
	"orbplaylist/internal/firestore"
	"orbplaylist/internal/logger"
	"orbplaylist/internal/playlist"
	"orbplaylist/internal/schedule"
)

const maxOffset = 6

func main() {
	var verbose int

	app := &cli.App{
		Name:      "orbplaylist",
		Usage:     "fetch, print and archive a radio station's daily playlist",
		ArgsUsage: "<station> [offset ...]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "archive",
				Aliases: []string{"a"},
				Usage:   "archive fetched playlists, one file per day",
			},
			&cli.IntFlag{
				Name:    "days",
				Aliases: []string{"d"},
				Usage:   "single day offset (0-6), instead of positional offsets",
			},
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "suppress song output",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Count:   &verbose,
				Usage:   "increase log verbosity (repeatable)",
			},
			&cli.BoolFlag{
				Name:    "test",
				Aliases: []string{"t"},
				Usage:   "test mode (reserved)",
			},
			&cli.BoolFlag{
				Name:  "render",
				Usage: "fetch pages through headless Chrome",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "config file path",
			},
		},
		Action: func(c *cli.Context) error {
			return run(c, verbose)
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context, verbose int) error {
	quiet := c.Bool("quiet")
	log := logger.New(logger.LevelFromVerbosity(verbose, quiet))

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	applyEnv(cfg)
	if c.Bool("render") {
		cfg.Render = true
	}

	station, offsets, err := parseArgs(c.Args().Slice())
	if err != nil {
		return err
	}
	if c.IsSet("days") {
		offsets = []int{c.Int("days")}
	}
	if len(offsets) == 0 {
		offsets = []int{0}
	}

	ctx := context.Background()
	timeout := time.Duration(cfg.TimeoutSec) * time.Second

	client := fetch.NewClient(fetch.Options{
		Host:      cfg.Host,
		Timeout:   timeout,
		UserAgent: cfg.UserAgent,
		Render:    cfg.Render,
	})

	var (
		archiver  *archive.Archiver
		publisher *firestore.Client
	)
	if c.Bool("archive") {
		store, err := openStore(ctx, cfg, log)
		if err != nil {
			return err
		}
		if closer, ok := store.(interface{ Close() error }); ok {
			defer closer.Close()
		}
		archiver = archive.New(store, log)

		if cfg.Firestore.ProjectID != "" {
			publisher, err = firestore.New(ctx, cfg.Firestore.ProjectID, cfg.Firestore.Collection)
			if err != nil {
				return fmt.Errorf("initializing firestore: %w", err)
			}
			defer publisher.Close()
			log.Info("publishing to firestore", "project", cfg.Firestore.ProjectID, "collection", cfg.Firestore.Collection)
		}
	}

	batchID := time.Now().UTC().Format("20060102-150405")
	failed := 0

	for _, offset := range offsets {
		if !validOffset(offset) {
			log.Warn("skipping day offset outside 0-6", "offset", offset)
			continue
		}

		rec, err := fetchDay(ctx, client, log, station, offset, timeout)
		if err != nil {
			log.Error("day failed", "station", station, "offset", offset, "error", err)
			failed++
			continue
		}
		if rec == nil {
			continue
		}

		if !quiet {
			for _, line := range rec.Lines() {
				fmt.Println(line)
			}
		}

		if archiver == nil {
			continue
		}
		written, err := archiver.Archive(ctx, rec)
		if err != nil {
			// A broken archive target would fail every remaining day too.
			return fmt.Errorf("archiving %s: %w", rec.ArchiveKey(), err)
		}
		if written && publisher != nil {
			date := rec.Date.Local().Format("2006-01-02")
			if err := publisher.ReplaceSongsForDay(ctx, station, date, rec.Songs, batchID); err != nil {
				log.Error("publishing failed", "station", station, "date", date, "error", err)
				failed++
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d requested days failed", failed, len(offsets))
	}
	return nil
}

// fetchDay runs the fetch-parse-resolve pipeline for one day offset.
// A nil record with a nil error means there was nothing to process.
func fetchDay(ctx context.Context, client *fetch.Client, log *logger.Logger, station string, offset int, timeout time.Duration) (*playlist.Record, error) {
	fctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	markup, err := client.FetchPlaylist(fctx, station, offset)
	if err != nil {
		// Fetch failures abort this day only.
		log.Info("fetch failed", "station", station, "offset", offset, "error", err)
		return nil, nil
	}

	res, err := schedule.Parse(markup)
	if err != nil {
		return nil, err
	}
	if len(res.Songs) == 0 {
		log.Info("no songs on page", "station", station, "offset", offset)
		return nil, nil
	}

	rec, err := playlist.Build(station, res, offset, time.Now())
	if err != nil {
		return nil, err
	}

	log.Debug("fetched playlist", "station", station, "offset", offset,
		"date", rec.Date.Local().Format("2006-01-02"), "songs", len(rec.Songs))
	return rec, nil
}

// validOffset reports whether a day offset is fetchable. Anything outside
// 0-6 is skipped before any network request.
func validOffset(n int) bool {
	return n >= 0 && n <= maxOffset
}

// parseArgs splits positional arguments into the station id and day
// offsets. Numeric tokens are offsets, the one non-numeric token is the
// station; order does not matter.
func parseArgs(args []string) (string, []int, error) {
	var (
		station string
		offsets []int
	)

	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			offsets = append(offsets, n)
			continue
		}
		if station != "" {
			return "", nil, fmt.Errorf("more than one station id given: %q and %q", station, arg)
		}
		station = arg
	}

	if station == "" {
		return "", nil, errors.New("usage: orbplaylist [options] <station> [offset ...]")
	}
	return station, offsets, nil
}

func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (archive.Store, error) {
	if cfg.Archive.GCSBucket != "" {
		store, err := archive.NewGCS(ctx, cfg.Archive.GCSBucket)
		if err != nil {
			return nil, fmt.Errorf("initializing GCS store: %w", err)
		}
		log.Info("archive store", "gcs_bucket", cfg.Archive.GCSBucket)
		return store, nil
	}

	store, err := archive.NewLocal(cfg.Archive.BaseDir)
	if err != nil {
		return nil, fmt.Errorf("initializing local store: %w", err)
	}
	log.Info("archive store", "base_dir", cfg.Archive.BaseDir)
	return store, nil
}

func applyEnv(cfg *config.Config) {
	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		cfg.Archive.GCSBucket = bucket
	}
	if project := os.Getenv("GCP_PROJECT_ID"); project != "" {
		cfg.Firestore.ProjectID = project
	}
	if coll := os.Getenv("FIRESTORE_COLLECTION"); coll != "" {
		cfg.Firestore.Collection = coll
	}
}
