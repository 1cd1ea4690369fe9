package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/yuchhuang/dodo/internal/models"
)

// DefaultArchivePath is the archive database location relative to the
// working directory, next to the task file.
const DefaultArchivePath = "data/archive.db"

// Archive keeps completed tasks that were cleared from the live task file.
// The JSON task file stays the single source of truth for live tasks; the
// archive only ever grows and feeds all-time statistics.
type Archive struct {
	db *sql.DB
}

// ArchiveStats summarizes archived completions
type ArchiveStats struct {
	Total      int            `json:"total"`
	ByCategory map[string]int `json:"by_category"`
	Oldest     *time.Time     `json:"oldest,omitempty"`
	Newest     *time.Time     `json:"newest,omitempty"`
}

// OpenArchive opens (creating if necessary) the archive database
func OpenArchive(ctx context.Context, path string) (*Archive, error) {
	if path == "" {
		path = DefaultArchivePath
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create archive directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive database: %w", err)
	}

	// Single writer connection keeps SQLite contention out of the picture
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode = WAL"); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing archive db", "error", closeErr)
		}
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if err := migrateArchive(ctx, db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("error closing archive db", "error", closeErr)
		}
		return nil, fmt.Errorf("migrate archive: %w", err)
	}

	return &Archive{db: db}, nil
}

// migrateArchive creates the archive schema
func migrateArchive(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS archived_tasks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL,
			notes TEXT,
			category TEXT NOT NULL,
			created_at DATETIME NOT NULL,
			completed_at DATETIME,
			archived_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS idx_archived_category
		ON archived_tasks(category)
	`)
	return err
}

// Append inserts cleared tasks into the archive. Re-archiving the same
// task ID is a no-op rather than an error, so a retried clear is safe.
func (a *Archive) Append(ctx context.Context, tasks []*models.Task) error {
	if len(tasks) == 0 {
		return nil
	}
	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin archive transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO archived_tasks (id, title, notes, category, created_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("prepare archive insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range tasks {
		var completedAt interface{}
		if t.CompletedAt != nil {
			completedAt = t.CompletedAt.UTC()
		}
		if _, err := stmt.ExecContext(ctx, t.ID, t.Title, t.Notes, t.Category, t.CreatedAt.UTC(), completedAt); err != nil {
			return fmt.Errorf("archive task %s: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit archive transaction: %w", err)
	}
	return nil
}

// Stats reports all-time archived completions
func (a *Archive) Stats(ctx context.Context) (ArchiveStats, error) {
	stats := ArchiveStats{ByCategory: make(map[string]int)}

	rows, err := a.db.QueryContext(ctx, `
		SELECT category, COUNT(*)
		FROM archived_tasks
		GROUP BY category
	`)
	if err != nil {
		return stats, fmt.Errorf("query archive categories: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return stats, fmt.Errorf("scan archive row: %w", err)
		}
		stats.ByCategory[category] = count
		stats.Total += count
	}
	if err := rows.Err(); err != nil {
		return stats, fmt.Errorf("iterate archive rows: %w", err)
	}

	// Aggregates lose the column's DATETIME decltype under modernc.org/sqlite,
	// so MIN/MAX come back as TEXT and must be parsed by hand.
	var oldest, newest sql.NullString
	err = a.db.QueryRowContext(ctx, `
		SELECT MIN(completed_at), MAX(completed_at) FROM archived_tasks
	`).Scan(&oldest, &newest)
	if err != nil && err != sql.ErrNoRows {
		return stats, fmt.Errorf("query archive range: %w", err)
	}
	if oldest.Valid {
		t, err := parseArchiveTime(oldest.String)
		if err != nil {
			return stats, fmt.Errorf("parse archive oldest: %w", err)
		}
		stats.Oldest = &t
	}
	if newest.Valid {
		t, err := parseArchiveTime(newest.String)
		if err != nil {
			return stats, fmt.Errorf("parse archive newest: %w", err)
		}
		stats.Newest = &t
	}

	return stats, nil
}

// archiveTimeFormats are the text layouts the sqlite driver may have used to
// store a time.Time value: Go's time.Time.String() default first, then the
// SQLite datetime formats the driver itself recognizes.
var archiveTimeFormats = []string{
	"2006-01-02 15:04:05.999999999 -0700 MST",
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02T15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// parseArchiveTime decodes a completed_at value read back as raw text
func parseArchiveTime(s string) (time.Time, error) {
	for _, layout := range archiveTimeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// Close closes the archive database
func (a *Archive) Close() error {
	return a.db.Close()
}
