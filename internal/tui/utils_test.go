package tui

import (
	"database/sql"
	"testing"
	"time"

	"rentarc/internal/archivedb"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in       string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"this is a long string", 10, "this is..."},
		{"abc", 2, "ab"},
	}
	for _, tt := range tests {
		if got := truncateString(tt.in, tt.maxLen); got != tt.expected {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.expected)
		}
	}
}

func TestSnapshotToDetail(t *testing.T) {
	fetched := time.Date(2026, 8, 20, 10, 0, 0, 0, time.UTC)
	s := &archivedb.Snapshot{
		ID:        "abc",
		URL:       "https://rentry.co/x",
		Title:     sql.NullString{String: "X", Valid: true},
		Markdown:  "# X\n",
		FetchedAt: fetched,
	}
	d := snapshotToDetail(s)
	if d.id != "abc" || d.title != "X" || d.url != s.URL || d.markdown != s.Markdown || !d.fetchedAt.Equal(fetched) {
		t.Errorf("snapshotToDetail = %+v", d)
	}
}
