package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"rentarc/internal/archive"
	"rentarc/internal/archivedb"
	"rentarc/internal/config"
	"rentarc/internal/tui"
	"rentarc/internal/version"
)

func main() {
	app := &cli.Command{
		Name:    "rentarc",
		Usage:   "Archive rentry.co pages as rentry-flavored Markdown",
		Version: version.Version,
		Commands: []*cli.Command{
			{
				Name:      "archive",
				Usage:     "Fetch one or more pages and store them in the archive",
				ArgsUsage: "url...",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "out", Usage: "Output directory for .md files (default from config)"},
					&cli.BoolFlag{Name: "stdout", Usage: "Print the rendered markdown instead of writing files"},
					&cli.IntFlag{Name: "timeout", Usage: "Fetch timeout in seconds"},
					&cli.BoolFlag{Name: "no-generic", Usage: "Disable readability fallback for non-rentry pages"},
					&cli.StringFlag{Name: "log-file", Usage: "Path to run log file"},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					urls := c.Args().Slice()
					if len(urls) == 0 {
						return fmt.Errorf("at least one url is required")
					}
					opts := archive.Options{
						OutputDir:  c.String("out"),
						TimeoutSec: c.Int("timeout"),
						Stdout:     c.Bool("stdout"),
						NoGeneric:  c.Bool("no-generic"),
						LogFile:    c.String("log-file"),
					}
					return archive.Run(ctx, urls, opts)
				},
			},
			{
				Name:  "list",
				Usage: "List archived snapshots",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "hours", Usage: "Time window in hours (0 = everything)", Value: 0},
					&cli.IntFlag{Name: "limit", Usage: "Maximum number of snapshots to show", Value: 50},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return runList(ctx, c.Int("hours"), c.Int("limit"))
				},
			},
			{
				Name:  "show",
				Usage: "Print the stored markdown of a snapshot",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name:      "ref",
						UsageText: "id-or-url",
					},
				},
				Action: func(ctx context.Context, c *cli.Command) error {
					return runShow(ctx, c.StringArg("ref"))
				},
			},
			{
				Name:  "tui",
				Usage: "Browse the archive in the terminal",
				Action: func(ctx context.Context, c *cli.Command) error {
					return tui.Run(ctx)
				},
			},
			{
				Name:  "init",
				Usage: "Write a default configuration file",
				Action: func(ctx context.Context, c *cli.Command) error {
					path, err := config.WriteDefault()
					if err != nil {
						return err
					}
					fmt.Printf("configuration written: %s\n", path)
					return nil
				},
			},
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func runList(ctx context.Context, hours, limit int) error {
	dbPath, err := config.LoadDBPath()
	if err != nil {
		return err
	}
	if !fileExists(dbPath) {
		fmt.Printf("rentarc database not found at %s\n", dbPath)
		fmt.Println("Hint: run 'rentarc archive <url>' first, or set database.path in ~/.config/rentarc/config.yaml.")
		return nil
	}

	db, err := archivedb.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed opening the rentarc database: %w", err)
	}
	defer db.Close()

	var since time.Time
	if hours > 0 {
		since = time.Now().Add(-time.Duration(hours) * time.Hour)
	}
	rows, err := archivedb.ListSince(ctx, db, since, limit)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "no such table") {
			fmt.Println("rentarc database is present but not initialized (missing tables)")
			fmt.Println("Hint: run 'rentarc archive <url>' once to initialize the schema.")
			return nil
		}
		return fmt.Errorf("query failed while reading from the rentarc database: %w", err)
	}

	if len(rows) == 0 {
		fmt.Println("No snapshots found.")
		return nil
	}

	fmt.Printf("Found %d snapshots:\n\n", len(rows))
	for _, s := range rows {
		title := s.Title.String
		if title == "" {
			title = "No title"
		}
		fmt.Printf("ID: %s\n", s.ID)
		fmt.Printf("Title: %s\n", title)
		fmt.Printf("URL: %s\n", s.URL)
		fmt.Printf("Date: %s\n", s.FetchedAt.Format("2006-01-02 15:04:05"))
		fmt.Printf("Size: %d bytes\n", s.ByteSize)
		fmt.Println(strings.Repeat("-", 80))
	}
	return nil
}

func runShow(ctx context.Context, ref string) error {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return fmt.Errorf("missing snapshot id or url")
	}

	dbPath, err := config.LoadDBPath()
	if err != nil {
		return err
	}
	db, err := archivedb.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed opening the rentarc database: %w", err)
	}
	defer db.Close()

	s, err := archivedb.GetByID(ctx, db, ref)
	if err != nil {
		return err
	}
	if s == nil {
		s, err = archivedb.LatestByURL(ctx, db, ref)
		if err != nil {
			return err
		}
	}
	if s == nil {
		return fmt.Errorf("no snapshot found for %q", ref)
	}
	fmt.Print(s.Markdown)
	return nil
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	if _, err := os.Stat(path); err == nil {
		return true
	}
	return false
}
