package archivedb

import "database/sql"

// InitSchema ensures the DB has the tables needed for the archive.
func InitSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS snapshots (
            id TEXT PRIMARY KEY,
            url TEXT NOT NULL,
            title TEXT,
            markdown TEXT NOT NULL,
            fetched_at TEXT NOT NULL,
            byte_size INTEGER NOT NULL DEFAULT 0
        )`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_url ON snapshots(url)`,
		`CREATE INDEX IF NOT EXISTS idx_snapshots_fetched_at ON snapshots(fetched_at)`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
