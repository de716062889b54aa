// Package archive orchestrates one archival run: fetch each page, locate
// its content root, render it to rentry Markdown, then persist the result
// as a file and a database snapshot.
package archive

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"log"
	neturl "net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	trafilatura "github.com/markusmobius/go-trafilatura"
	"github.com/segmentio/ksuid"
	"golang.org/x/net/html"

	"rentarc/internal/archivedb"
	"rentarc/internal/config"
	"rentarc/internal/content"
	"rentarc/internal/httpclient"
	"rentarc/internal/render"
)

// Options allow overriding config values from CLI flags.
type Options struct {
	OutputDir  string
	TimeoutSec int
	Stdout     bool
	NoGeneric  bool
	LogFile    string
}

// Result describes one successfully archived page.
type Result struct {
	ID    string
	URL   string
	Title string
	Path  string
	Size  int
}

// Run archives every URL, fanning out across a bounded worker pool.
// Individual failures are reported but do not abort the run; an error
// comes back only when nothing at all could be archived.
func Run(ctx context.Context, urls []string, opts Options) error {
	appCfg, _ := config.LoadAppConfig()
	if opts.OutputDir != "" {
		appCfg.OutputDir = config.ExpandPath(opts.OutputDir)
	}
	if opts.TimeoutSec > 0 {
		appCfg.TimeoutSec = opts.TimeoutSec
	}
	if opts.NoGeneric {
		appCfg.GenericFallback = false
	}

	logger := log.New(os.Stdout, "[rentarc] ", log.LstdFlags)
	closeLog := func() error { return nil }
	if logFile := strings.TrimSpace(opts.LogFile); logFile != "" {
		logFile = config.ExpandPath(logFile)
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err == nil {
			if f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644); err == nil {
				logger.SetOutput(f)
				closeLog = f.Close
			}
		}
	}
	defer closeLog()

	db, err := archivedb.Open(appCfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed opening the rentarc database: %w", err)
	}
	defer db.Close()
	if err := archivedb.InitSchema(db); err != nil {
		return err
	}

	a := New(appCfg, logger)

	type outcome struct {
		url string
		res *Result
		err error
	}
	sem := make(chan struct{}, appCfg.MaxWorkers)
	outCh := make(chan outcome, len(urls))
	var wg sync.WaitGroup
	for _, raw := range urls {
		pageURL := strings.TrimSpace(raw)
		if pageURL == "" {
			continue
		}
		wg.Add(1)
		go func(pageURL string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			res, err := a.ArchiveOne(ctx, db, pageURL, appCfg.OutputDir, opts.Stdout)
			outCh <- outcome{url: pageURL, res: res, err: err}
		}(pageURL)
	}
	go func() { wg.Wait(); close(outCh) }()

	saved := 0
	for o := range outCh {
		if o.err != nil {
			logger.Printf("archive failed: url=%s err=%v", o.url, o.err)
			fmt.Printf("❌ %s: %v\n", o.url, o.err)
			continue
		}
		saved++
		logger.Printf("archive saved: url=%s id=%s bytes=%d", o.url, o.res.ID, o.res.Size)
		if !opts.Stdout {
			fmt.Printf("✅ %s → %s (%d bytes)\n", o.url, o.res.Path, o.res.Size)
		}
	}
	logger.Printf("archive run completed: saved=%d", saved)
	if saved == 0 && len(urls) > 0 {
		return fmt.Errorf("no pages archived")
	}
	return nil
}

// Archiver converts single pages. It is safe for concurrent use; each
// call builds its own render state.
type Archiver struct {
	client    *httpclient.Client
	userAgent string
	generic   bool
	logger    *log.Logger
}

func New(cfg config.AppConfig, logger *log.Logger) *Archiver {
	return &Archiver{
		client:    httpclient.New(time.Duration(cfg.TimeoutSec) * time.Second),
		userAgent: cfg.UserAgent,
		generic:   cfg.GenericFallback,
		logger:    logger,
	}
}

// Snapshot fetches pageURL and renders it, returning the snapshot row to
// persist. The markdown always ends in exactly one newline.
func (a *Archiver) Snapshot(ctx context.Context, pageURL string) (*archivedb.Snapshot, error) {
	body, err := a.client.Fetch(ctx, pageURL, map[string]string{"User-Agent": a.userAgent})
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	title := content.Title(doc)
	root, err := content.FindRoot(doc)
	if err != nil {
		if !a.generic {
			return nil, err
		}
		root, title, err = a.extractGeneric(body, pageURL, title)
		if err != nil {
			return nil, err
		}
	}

	md := render.Document(root)
	s := &archivedb.Snapshot{
		ID:        ksuid.New().String(),
		URL:       pageURL,
		Markdown:  md,
		FetchedAt: time.Now().UTC(),
		ByteSize:  int64(len(md)),
	}
	s.Title.String = title
	s.Title.Valid = title != ""
	return s, nil
}

// ArchiveOne runs the full pipeline for one URL: snapshot, write the
// markdown file (or stdout), insert the database row.
func (a *Archiver) ArchiveOne(ctx context.Context, db *sql.DB, pageURL, outputDir string, stdout bool) (*Result, error) {
	s, err := a.Snapshot(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	path := ""
	if stdout {
		fmt.Print(s.Markdown)
	} else {
		if err := os.MkdirAll(outputDir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
		path = filepath.Join(outputDir, Filename(pageURL, s.FetchedAt))
		if err := os.WriteFile(path, []byte(s.Markdown), 0o644); err != nil {
			return nil, err
		}
	}

	if err := archivedb.Insert(ctx, db, *s); err != nil {
		return nil, err
	}
	return &Result{
		ID:    s.ID,
		URL:   pageURL,
		Title: s.Title.String,
		Path:  path,
		Size:  int(s.ByteSize),
	}, nil
}

// extractGeneric is the fallback for pages without a recognizable
// content area: trafilatura picks the main content and the render engine
// runs over the extracted node.
func (a *Archiver) extractGeneric(body []byte, pageURL, title string) (*html.Node, string, error) {
	res, xerr := trafilatura.Extract(bytes.NewReader(body), trafilatura.Options{
		OriginalURL:    mustParseURL(pageURL),
		EnableFallback: true,
		Focus:          trafilatura.Balanced,
	})
	if xerr != nil || res == nil || res.ContentNode == nil {
		return nil, "", content.ErrNoContent
	}
	if a.logger != nil {
		a.logger.Printf("generic extraction used: url=%s", pageURL)
	}
	if t := strings.TrimSpace(res.Metadata.Title); t != "" {
		title = t
	}
	return res.ContentNode, title, nil
}

func mustParseURL(raw string) *neturl.URL {
	u, _ := neturl.Parse(raw)
	return u
}

var slugRE = regexp.MustCompile(`[^a-zA-Z0-9]+`)

// Slug derives a filename stem from the URL path, falling back to the
// host and then to "page".
func Slug(pageURL string) string {
	u, err := neturl.Parse(pageURL)
	if err != nil {
		return "page"
	}
	base := filepath.Base(strings.TrimRight(u.Path, "/"))
	if base == "." || base == "/" || base == "" {
		base = u.Host
	}
	slug := strings.Trim(slugRE.ReplaceAllString(strings.ToLower(base), "-"), "-")
	if slug == "" {
		return "page"
	}
	return slug
}

// Filename is <slug>-<timestamp>.md so repeated runs never collide.
func Filename(pageURL string, fetchedAt time.Time) string {
	return fmt.Sprintf("%s-%s.md", Slug(pageURL), fetchedAt.Format("20060102-150405"))
}
