// Package archivedb stores rendered page snapshots in a local SQLite
// database. Every archive run inserts a fresh snapshot row, so the table
// accumulates history per URL rather than overwriting it.
package archivedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

type Snapshot struct {
	ID        string
	URL       string
	Title     sql.NullString
	Markdown  string
	FetchedAt time.Time
	ByteSize  int64
}

func Open(dbPath string) (*sql.DB, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(ON)", dbPath)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	return db, nil
}

// Insert stores one snapshot. ID and URL are required.
func Insert(ctx context.Context, db *sql.DB, s Snapshot) error {
	if strings.TrimSpace(s.ID) == "" || strings.TrimSpace(s.URL) == "" {
		return errors.New("missing id or url")
	}
	_, err := db.ExecContext(ctx, `INSERT INTO snapshots
        (id, url, title, markdown, fetched_at, byte_size)
        VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.URL, nullIfEmpty(s.Title.String), s.Markdown,
		s.FetchedAt.UTC().Format(time.RFC3339), s.ByteSize,
	)
	return err
}

func GetByID(ctx context.Context, db *sql.DB, id string) (*Snapshot, error) {
	row := db.QueryRowContext(ctx, `SELECT id, url, title, markdown, fetched_at, byte_size
        FROM snapshots WHERE id = ?`, id)
	return scanSnapshot(row)
}

// LatestByURL returns the most recent snapshot of a URL, or nil when the
// URL was never archived.
func LatestByURL(ctx context.Context, db *sql.DB, url string) (*Snapshot, error) {
	row := db.QueryRowContext(ctx, `SELECT id, url, title, markdown, fetched_at, byte_size
        FROM snapshots WHERE url = ? ORDER BY datetime(fetched_at) DESC, id DESC LIMIT 1`, url)
	return scanSnapshot(row)
}

// ListSince returns snapshots fetched at or after since, newest first.
// A zero since means no time filter; limit <= 0 means no limit.
func ListSince(ctx context.Context, db *sql.DB, since time.Time, limit int) ([]Snapshot, error) {
	q := `SELECT id, url, title, markdown, fetched_at, byte_size FROM snapshots`
	var args []any
	if !since.IsZero() {
		q += ` WHERE datetime(fetched_at) >= datetime(?)`
		args = append(args, since.UTC().Format(time.RFC3339))
	}
	q += ` ORDER BY datetime(fetched_at) DESC, id DESC`
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	return querySnapshots(ctx, db, q, args...)
}

// Search matches term as a substring of the URL or title, newest first.
func Search(ctx context.Context, db *sql.DB, term string, limit int) ([]Snapshot, error) {
	pattern := "%" + strings.TrimSpace(term) + "%"
	q := `SELECT id, url, title, markdown, fetched_at, byte_size FROM snapshots
        WHERE url LIKE ? OR title LIKE ?
        ORDER BY datetime(fetched_at) DESC, id DESC`
	args := []any{pattern, pattern}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	return querySnapshots(ctx, db, q, args...)
}

func querySnapshots(ctx context.Context, db *sql.DB, q string, args ...any) ([]Snapshot, error) {
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Snapshot
	for rows.Next() {
		var s Snapshot
		var fetched string
		if err := rows.Scan(&s.ID, &s.URL, &s.Title, &s.Markdown, &fetched, &s.ByteSize); err != nil {
			return nil, err
		}
		s.FetchedAt, _ = time.Parse(time.RFC3339, fetched)
		out = append(out, s)
	}
	return out, rows.Err()
}

func scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var s Snapshot
	var fetched string
	if err := row.Scan(&s.ID, &s.URL, &s.Title, &s.Markdown, &fetched, &s.ByteSize); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	s.FetchedAt, _ = time.Parse(time.RFC3339, fetched)
	return &s, nil
}

func nullIfEmpty(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
