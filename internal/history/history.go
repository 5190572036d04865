// Package history persists one row per classification run to a local
// SQLite database (.sweep/history.db). Persistence is advisory: callers
// log and continue on error rather than failing a check over bookkeeping.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/codesweep/sweep/internal/classify"
)

// FileName is the history database inside the toolkit directory.
const FileName = "history.db"

// Run triggers, stored in the trigger_kind column.
const (
	TriggerCheck   = "check"
	TriggerScan    = "scan"
	TriggerCleanup = "cleanup"
)

// Run is one recorded classification pass.
type Run struct {
	ID              string
	RecordedAt      time.Time
	Trigger         string // check | scan | cleanup
	SizeClass       string
	FilesTotal      int
	FilesFlagged    int
	FilesSkipped    int
	Insertions      int
	Deletions       int
	DebugStatements int
	TodoMarkers     int
	LargeFiles      int
	DuplicateNames  int
	DurationMS      int64
}

// NewRun builds a Run from a classification result, stamped with a fresh
// uuid and the current time.
func NewRun(trigger string, cs classify.ChangeSet, result *classify.Result, duration time.Duration) Run {
	counts := result.IssueCounts()
	return Run{
		ID:              uuid.New().String(),
		RecordedAt:      time.Now(),
		Trigger:         trigger,
		SizeClass:       string(result.SizeClass),
		FilesTotal:      len(result.FileRecords),
		FilesFlagged:    len(result.Flagged()),
		FilesSkipped:    len(result.SkippedFiles),
		Insertions:      cs.Insertions,
		Deletions:       cs.Deletions,
		DebugStatements: counts[classify.IssueDebugStatement],
		TodoMarkers:     counts[classify.IssueTodoMarker],
		LargeFiles:      counts[classify.IssueLargeFile],
		DuplicateNames:  counts[classify.IssueDuplicateName],
		DurationMS:      duration.Milliseconds(),
	}
}

// Store is the SQLite-backed run history.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	// WAL keeps a hook invocation from blocking a concurrent sweep command
	db, err := sql.Open("sqlite3", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// RecordRun inserts a run row. ID and RecordedAt are filled in when the
// caller left them zero.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.RecordedAt.IsZero() {
		run.RecordedAt = time.Now()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, recorded_at, trigger_kind, size_class,
			files_total, files_flagged, files_skipped,
			insertions, deletions,
			debug_statements, todo_markers, large_files, duplicate_names,
			duration_ms
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID, run.RecordedAt.UnixMilli(), run.Trigger, run.SizeClass,
		run.FilesTotal, run.FilesFlagged, run.FilesSkipped,
		run.Insertions, run.Deletions,
		run.DebugStatements, run.TodoMarkers, run.LargeFiles, run.DuplicateNames,
		run.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	return nil
}

// ListRuns returns the most recent runs, newest first. limit <= 0 returns
// everything.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `
		SELECT id, recorded_at, trigger_kind, size_class,
		       files_total, files_flagged, files_skipped,
		       insertions, deletions,
		       debug_statements, todo_markers, large_files, duplicate_names,
		       duration_ms
		FROM runs
		ORDER BY recorded_at DESC, id
	`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []Run
	for rows.Next() {
		var run Run
		var recordedAt int64

		err := rows.Scan(
			&run.ID, &recordedAt, &run.Trigger, &run.SizeClass,
			&run.FilesTotal, &run.FilesFlagged, &run.FilesSkipped,
			&run.Insertions, &run.Deletions,
			&run.DebugStatements, &run.TodoMarkers, &run.LargeFiles, &run.DuplicateNames,
			&run.DurationMS,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		run.RecordedAt = time.UnixMilli(recordedAt)
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}

	return runs, nil
}

// Stats contains aggregates across all recorded runs
type Stats struct {
	TotalRuns       int
	CleanRuns       int // runs with no flagged files
	FilesSeen       int
	FilesFlagged    int
	DebugStatements int
	TodoMarkers     int
	LargeFiles      int
	DuplicateNames  int
	FirstRun        time.Time
	LastRun         time.Time
}

// Stats aggregates all recorded runs
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	var stats Stats
	var first, last sql.NullInt64

	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN files_flagged = 0 THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(files_total), 0),
		       COALESCE(SUM(files_flagged), 0),
		       COALESCE(SUM(debug_statements), 0),
		       COALESCE(SUM(todo_markers), 0),
		       COALESCE(SUM(large_files), 0),
		       COALESCE(SUM(duplicate_names), 0),
		       MIN(recorded_at),
		       MAX(recorded_at)
		FROM runs
	`).Scan(
		&stats.TotalRuns, &stats.CleanRuns,
		&stats.FilesSeen, &stats.FilesFlagged,
		&stats.DebugStatements, &stats.TodoMarkers,
		&stats.LargeFiles, &stats.DuplicateNames,
		&first, &last,
	)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to aggregate runs: %w", err)
	}

	if first.Valid {
		stats.FirstRun = time.UnixMilli(first.Int64)
	}
	if last.Valid {
		stats.LastRun = time.UnixMilli(last.Int64)
	}

	return stats, nil
}

// PruneBefore deletes runs recorded before cutoff and reports how many
// rows were removed.
func (s *Store) PruneBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM runs WHERE recorded_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count pruned runs: %w", err)
	}

	return removed, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}
