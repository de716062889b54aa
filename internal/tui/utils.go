package tui

import (
	"rentarc/internal/archivedb"
)

func snapshotToDetail(s *archivedb.Snapshot) *snapshotDetail {
	return &snapshotDetail{
		id:        s.ID,
		title:     s.Title.String,
		url:       s.URL,
		markdown:  s.Markdown,
		fetchedAt: s.FetchedAt,
	}
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
