// Package store keeps the server's privacy-conscious visitor log and the
// contact delivery journal in SQLite.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Zachkp/portfolio/internal/contact"
)

// VisitorRetention is how long visitor rows are kept.
const VisitorRetention = 365 * 24 * time.Hour

// DB wraps a sql.DB with portfolio-specific helpers.
type DB struct {
	*sql.DB
	path string
}

// Open creates or opens a SQLite database at the given path.
func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	d := &DB{DB: sqlDB, path: path}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}

// OpenMemory creates an in-memory SQLite database (useful for testing).
func OpenMemory() (*DB, error) {
	sqlDB, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("opening in-memory database: %w", err)
	}
	// Every connection to :memory: is its own database.
	sqlDB.SetMaxOpenConns(1)

	d := &DB{DB: sqlDB, path: ":memory:"}
	if err := d.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return d, nil
}

// Path returns the database file path.
func (d *DB) Path() string { return d.path }

func (d *DB) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS visitors (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			hashed_ip TEXT NOT NULL,
			user_agent TEXT NOT NULL DEFAULT '',
			path TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_visitors_created_at ON visitors(created_at)`,
		`CREATE TABLE IF NOT EXISTS deliveries (
			submission_id TEXT PRIMARY KEY,
			relay TEXT NOT NULL,
			status TEXT NOT NULL,
			error TEXT NOT NULL DEFAULT '',
			created_at INTEGER NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_deliveries_created_at ON deliveries(created_at)`,
	}
	for _, s := range stmts {
		if _, err := d.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Visitor is one tracked page view. The address is stored hashed.
type Visitor struct {
	ID        int64     `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// TrackVisitor records a page view.
func (d *DB) TrackVisitor(ctx context.Context, v Visitor) error {
	if v.Timestamp.IsZero() {
		v.Timestamp = time.Now()
	}
	_, err := d.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, created_at) VALUES (?, ?, ?, ?)`,
		v.HashedIP, v.UserAgent, v.Path, v.Timestamp.Unix(),
	)
	if err != nil {
		return fmt.Errorf("recording visitor: %w", err)
	}
	return nil
}

// RecentVisitors returns the latest page views, newest first.
func (d *DB) RecentVisitors(ctx context.Context, limit int) ([]Visitor, error) {
	rows, err := d.QueryContext(ctx, `
		SELECT id, hashed_ip, user_agent, path, created_at
		FROM visitors
		ORDER BY created_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying visitors: %w", err)
	}
	defer rows.Close()

	var out []Visitor
	for rows.Next() {
		var v Visitor
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scanning visitor: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0)
		out = append(out, v)
	}
	return out, rows.Err()
}

// CleanupVisitors deletes visitor rows recorded before cutoff.
func (d *DB) CleanupVisitors(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := d.ExecContext(ctx, `DELETE FROM visitors WHERE created_at < ?`, cutoff.Unix())
	if err != nil {
		return 0, fmt.Errorf("cleaning up visitors: %w", err)
	}
	return res.RowsAffected()
}

// RecordDelivery stores a delivery outcome. It implements contact.Journal.
func (d *DB) RecordDelivery(ctx context.Context, del contact.Delivery) error {
	if del.At.IsZero() {
		del.At = time.Now()
	}
	_, err := d.ExecContext(ctx, `
		INSERT INTO deliveries (submission_id, relay, status, error, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(submission_id) DO UPDATE SET
			status = excluded.status,
			error = excluded.error,
			created_at = excluded.created_at`,
		del.SubmissionID, del.Relay, string(del.Status), del.Error, del.At.Unix(),
	)
	if err != nil {
		return fmt.Errorf("recording delivery: %w", err)
	}
	return nil
}

// RecentDeliveries returns the latest delivery outcomes, newest first.
func (d *DB) RecentDeliveries(ctx context.Context, limit int) ([]contact.Delivery, error) {
	rows, err := d.QueryContext(ctx, `
		SELECT submission_id, relay, status, error, created_at
		FROM deliveries
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying deliveries: %w", err)
	}
	defer rows.Close()

	var out []contact.Delivery
	for rows.Next() {
		var del contact.Delivery
		var status string
		var ts int64
		if err := rows.Scan(&del.SubmissionID, &del.Relay, &status, &del.Error, &ts); err != nil {
			return nil, fmt.Errorf("scanning delivery: %w", err)
		}
		del.Status = contact.DeliveryStatus(status)
		del.At = time.Unix(ts, 0)
		out = append(out, del)
	}
	return out, rows.Err()
}

// Stats summarises visitors and deliveries for the admin dashboard.
type Stats struct {
	TotalVisitors    int64              `json:"total_visitors"`
	UniqueVisitors   int64              `json:"unique_visitors"`
	VisitorsToday    int64              `json:"visitors_today"`
	VisitorsThisWeek int64              `json:"visitors_this_week"`
	DeliveriesSent   int64              `json:"deliveries_sent"`
	DeliveriesFailed int64              `json:"deliveries_failed"`
	RecentVisitors   []Visitor          `json:"recent_visitors"`
	RecentDeliveries []contact.Delivery `json:"recent_deliveries"`
}

// Stats computes dashboard statistics relative to now.
func (d *DB) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.Add(-7 * 24 * time.Hour)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE created_at >= ?`, []any{midnight.Unix()}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE created_at >= ?`, []any{weekAgo.Unix()}},
		{&stats.DeliveriesSent, `SELECT COUNT(*) FROM deliveries WHERE status = ?`, []any{string(contact.StatusSent)}},
		{&stats.DeliveriesFailed, `SELECT COUNT(*) FROM deliveries WHERE status = ?`, []any{string(contact.StatusFailed)}},
	}
	for _, c := range counts {
		if err := d.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("computing stats: %w", err)
		}
	}

	var err error
	if stats.RecentVisitors, err = d.RecentVisitors(ctx, 50); err != nil {
		return nil, err
	}
	if stats.RecentDeliveries, err = d.RecentDeliveries(ctx, 20); err != nil {
		return nil, err
	}
	return stats, nil
}
