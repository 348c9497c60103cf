// Package store persists validation reports in SQLite.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/go-faster/errors"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/timeutils"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/validation"
)

// Run is a stored report without its notices.
type Run struct {
	ID           int64
	FeedName     string
	GeneratedAt  time.Time
	ServiceStart *timeutils.NoonOffset
	ServiceEnd   *timeutils.NoonOffset
	Errors       int
	Warnings     int
	Infos        int
}

// SQLite stores reports in a SQLite database.
type SQLite struct {
	db *sql.DB
}

// New opens the database at path and runs migrations. Use ":memory:" for a
// throwaway store.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	// A second connection to ":memory:" would see an empty database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "connect to database")
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "run migrations")
	}
	return s, nil
}

// Close closes the database.
func (s *SQLite) Close() error { return s.db.Close() }

// SaveReport stores a report and its notices, returning the run id.
func (s *SQLite) SaveReport(ctx context.Context, rep *validation.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, errors.Wrap(err, "begin")
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx, `
		INSERT INTO runs (
			feed_name, generated_at, trips, stop_times, service_start, service_end,
			errors, warnings, infos
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rep.FeedName,
		rep.GeneratedAt.UTC().Format(time.RFC3339),
		rep.Summary.Trips,
		rep.Summary.StopTimes,
		nullableOffset(rep.Summary.ServiceStart),
		nullableOffset(rep.Summary.ServiceEnd),
		rep.Summary.Errors,
		rep.Summary.Warnings,
		rep.Summary.Infos,
	)
	if err != nil {
		return 0, errors.Wrap(err, "insert run")
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, errors.Wrap(err, "get run id")
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO notices (run_id, code, severity, file, csv_row, field, value, trip_id, message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, errors.Wrap(err, "prepare notice insert")
	}
	defer func() { _ = stmt.Close() }()

	for _, n := range rep.Notices {
		if _, err := stmt.ExecContext(ctx, runID, n.Code, string(n.Severity), n.File, n.Row,
			n.Field, n.Value, n.TripID, n.Message); err != nil {
			return 0, errors.Wrap(err, "insert notice")
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, errors.Wrap(err, "commit")
	}
	return runID, nil
}

// ListRuns returns the latest runs, newest first. An empty feedName lists all feeds.
func (s *SQLite) ListRuns(ctx context.Context, feedName string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, feed_name, generated_at, service_start, service_end, errors, warnings, infos
		FROM runs
		WHERE ? = '' OR feed_name = ?
		ORDER BY id DESC
		LIMIT ?`, feedName, feedName, limit)
	if err != nil {
		return nil, errors.Wrap(err, "query runs")
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var (
			r           Run
			generatedAt string
			start, end  nullOffset
		)
		if err := rows.Scan(&r.ID, &r.FeedName, &generatedAt, &start, &end,
			&r.Errors, &r.Warnings, &r.Infos); err != nil {
			return nil, errors.Wrap(err, "scan run")
		}
		r.GeneratedAt, err = time.Parse(time.RFC3339, generatedAt)
		if err != nil {
			return nil, errors.Wrap(err, "parse generated_at")
		}
		r.ServiceStart, r.ServiceEnd = start.ptr(), end.ptr()
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate runs")
	}
	return runs, nil
}

// NoticesForRun returns the notices stored for a run in insertion order.
func (s *SQLite) NoticesForRun(ctx context.Context, runID int64) ([]validation.Notice, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT code, severity, file, csv_row, field, value, trip_id, message
		FROM notices
		WHERE run_id = ?
		ORDER BY id`, runID)
	if err != nil {
		return nil, errors.Wrap(err, "query notices")
	}
	defer func() { _ = rows.Close() }()

	var out []validation.Notice
	for rows.Next() {
		var (
			n        validation.Notice
			severity string
		)
		if err := rows.Scan(&n.Code, &severity, &n.File, &n.Row, &n.Field, &n.Value, &n.TripID, &n.Message); err != nil {
			return nil, errors.Wrap(err, "scan notice")
		}
		n.Severity = validation.Severity(severity)
		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate notices")
	}
	return out, nil
}

func nullableOffset(o *timeutils.NoonOffset) any {
	if o == nil {
		return nil
	}
	return *o
}

// nullOffset scans a nullable HH:MM:SS column.
type nullOffset struct {
	offset timeutils.NoonOffset
	valid  bool
}

func (n *nullOffset) Scan(v any) error {
	if v == nil {
		n.valid = false
		return nil
	}
	n.valid = true
	return n.offset.Scan(v)
}

func (n nullOffset) ptr() *timeutils.NoonOffset {
	if !n.valid {
		return nil
	}
	o := n.offset
	return &o
}
