package store

import "github.com/go-faster/errors"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS runs (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			feed_name     TEXT NOT NULL,
			generated_at  TEXT NOT NULL,
			trips         INTEGER NOT NULL DEFAULT 0,
			stop_times    INTEGER NOT NULL DEFAULT 0,
			service_start TEXT,
			service_end   TEXT,
			errors        INTEGER NOT NULL DEFAULT 0,
			warnings      INTEGER NOT NULL DEFAULT 0,
			infos         INTEGER NOT NULL DEFAULT 0
		);

		CREATE TABLE IF NOT EXISTS notices (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id   INTEGER NOT NULL REFERENCES runs(id),
			code     TEXT NOT NULL,
			severity TEXT NOT NULL CHECK(severity IN ('ERROR', 'WARNING', 'INFO')),
			file     TEXT NOT NULL DEFAULT '',
			csv_row  INTEGER NOT NULL DEFAULT 0,
			field    TEXT NOT NULL DEFAULT '',
			value    TEXT NOT NULL DEFAULT '',
			trip_id  TEXT NOT NULL DEFAULT '',
			message  TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_runs_feed ON runs(feed_name);
		CREATE INDEX IF NOT EXISTS idx_notices_run ON notices(run_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return errors.Wrap(err, "create tables")
	}
	return nil
}
