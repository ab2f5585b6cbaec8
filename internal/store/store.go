package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Store keeps the publish run history in SQLite
type Store struct {
	db   *sql.DB
	path string
}

// Run is one pipeline execution
type Run struct {
	RunID         string    `json:"run_id"`
	Slug          string    `json:"slug"`
	Title         string    `json:"title"`
	Score         int       `json:"score"`
	Grade         string    `json:"grade"`
	DryRun        bool      `json:"dry_run"`
	PostID        int       `json:"post_id,omitempty"`
	Link          string    `json:"link,omitempty"`
	Status        string    `json:"status"`
	ContentSource string    `json:"content_source"`
	CreatedAt     time.Time `json:"created_at"`
}

// NewStore opens (and creates if needed) the database at dbPath
func NewStore(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{
		db:   db,
		path: dbPath,
	}

	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return store, nil
}

// initialize creates the necessary tables
func (s *Store) initialize() error {
	runsTable := `
	CREATE TABLE IF NOT EXISTS runs (
		run_id TEXT PRIMARY KEY,
		slug TEXT NOT NULL,
		title TEXT,
		score INTEGER,
		grade TEXT,
		dry_run BOOLEAN,
		post_id INTEGER,
		link TEXT,
		status TEXT,
		content_source TEXT,
		created_at DATETIME
	);`

	slugIndex := `CREATE INDEX IF NOT EXISTS idx_runs_slug ON runs (slug);`

	for _, stmt := range []string{runsTable, slugIndex} {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordRun stores a finished run. Re-recording a run id replaces it.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	if run.RunID == "" || run.Slug == "" {
		return errors.New("run id and slug are required")
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := `
	INSERT OR REPLACE INTO runs
	(run_id, slug, title, score, grade, dry_run, post_id, link, status, content_source, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := s.db.ExecContext(ctx, query,
		run.RunID,
		run.Slug,
		run.Title,
		run.Score,
		run.Grade,
		run.DryRun,
		run.PostID,
		run.Link,
		run.Status,
		run.ContentSource,
		run.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}
	return nil
}

const selectRuns = `
	SELECT run_id, slug, title, score, grade, dry_run, post_id, link, status, content_source, created_at
	FROM runs`

// ListRuns returns the most recent runs first. limit <= 0 means 20.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, selectRuns+` ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return scanRuns(rows)
}

// RunsForSlug returns every run of one article, newest first.
func (s *Store) RunsForSlug(ctx context.Context, slug string) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, selectRuns+` WHERE slug = ? ORDER BY created_at DESC`, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs for %s: %w", slug, err)
	}
	return scanRuns(rows)
}

// GetRun returns one run, or nil when it does not exist.
func (s *Store) GetRun(ctx context.Context, runID string) (*Run, error) {
	rows, err := s.db.QueryContext(ctx, selectRuns+` WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query run: %w", err)
	}
	runs, err := scanRuns(rows)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		var title, grade, link, status, source sql.NullString
		var postID sql.NullInt64
		if err := rows.Scan(
			&run.RunID,
			&run.Slug,
			&title,
			&run.Score,
			&grade,
			&run.DryRun,
			&postID,
			&link,
			&status,
			&source,
			&run.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Title = title.String
		run.Grade = grade.String
		run.PostID = int(postID.Int64)
		run.Link = link.String
		run.Status = status.String
		run.ContentSource = source.String
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// Stats summarises the run history
type Stats struct {
	RunCount       int
	PublishedCount int
	AverageScore   float64
	DatabaseSize   int64
	LastUpdated    time.Time
}

// GetStats returns statistics about the run history
func (s *Store) GetStats(ctx context.Context) (*Stats, error) {
	stats := &Stats{}

	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx, `
	SELECT COUNT(*),
		COALESCE(SUM(CASE WHEN dry_run = 0 AND post_id > 0 THEN 1 ELSE 0 END), 0),
		AVG(score)
	FROM runs`).Scan(&stats.RunCount, &stats.PublishedCount, &avg)
	if err != nil {
		return nil, fmt.Errorf("failed to get counts: %w", err)
	}
	stats.AverageScore = avg.Float64

	if fileInfo, err := os.Stat(s.path); err == nil {
		stats.DatabaseSize = fileInfo.Size()
		stats.LastUpdated = fileInfo.ModTime()
	}

	return stats, nil
}

// CleanupOldRuns removes runs older than maxAge and reports how many went.
func (s *Store) CleanupOldRuns(ctx context.Context, maxAge time.Duration) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE created_at < ?", time.Now().UTC().Add(-maxAge))
	if err != nil {
		return 0, fmt.Errorf("failed to clean old runs: %w", err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}
