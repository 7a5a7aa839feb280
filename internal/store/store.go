// Package store handles SQLite persistence of attempt history.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Store wraps SQLite access for attempt data.
type Store struct {
	db *sql.DB
}

// Attempt is one recorded run attempt.
type Attempt struct {
	ID         int64
	RunKey     string
	StartedAt  time.Time
	EndedAt    time.Time
	DurationMs int64
	Completed  bool
	Method     string
}

// AttemptSegment is one segment time within an attempt. SplitMs is the
// cumulative time at which the segment ended, SegmentMs its own
// duration; both zero when the segment was skipped.
type AttemptSegment struct {
	AttemptID int64
	Idx       int
	Name      string
	SplitMs   int64
	SegmentMs int64
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS attempts (
			id INTEGER PRIMARY KEY,
			run_key TEXT NOT NULL,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			completed INTEGER NOT NULL,
			method TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS attempt_segments (
			attempt_id INTEGER NOT NULL,
			idx INTEGER NOT NULL,
			name TEXT NOT NULL,
			split_ms INTEGER NOT NULL,
			segment_ms INTEGER NOT NULL,
			PRIMARY KEY (attempt_id, idx)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_attempts_run_key ON attempts(run_key, ended_at);`,
		`CREATE INDEX IF NOT EXISTS idx_attempt_segments_idx ON attempt_segments(idx);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertAttempt stores an attempt and its segment times.
func (s *Store) InsertAttempt(ctx context.Context, attempt Attempt, segments []AttemptSegment) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO attempts (run_key, started_at, ended_at, duration_ms, completed, method)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		attempt.RunKey,
		attempt.StartedAt.Format(time.RFC3339Nano),
		attempt.EndedAt.Format(time.RFC3339Nano),
		attempt.DurationMs,
		boolToInt(attempt.Completed),
		attempt.Method,
	)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(segments) > 0 {
		stmt, err := tx.PrepareContext(ctx,
			`INSERT INTO attempt_segments (attempt_id, idx, name, split_ms, segment_ms)
			 VALUES (?, ?, ?, ?, ?)`)
		if err != nil {
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, seg := range segments {
			if _, err := stmt.ExecContext(ctx, id, seg.Idx, seg.Name, seg.SplitMs, seg.SegmentMs); err != nil {
				return 0, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListAttempts returns attempts for a run, oldest first.
func (s *Store) ListAttempts(ctx context.Context, runKey string) ([]Attempt, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_key, started_at, ended_at, duration_ms, completed, method
		 FROM attempts
		 WHERE (? = '' OR run_key = ?)
		 ORDER BY ended_at ASC`, runKey, runKey)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var attempts []Attempt
	for rows.Next() {
		var a Attempt
		var startedAt, endedAt string
		var completed int
		if err := rows.Scan(&a.ID, &a.RunKey, &startedAt, &endedAt, &a.DurationMs, &completed, &a.Method); err != nil {
			return nil, err
		}
		if a.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if a.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		a.Completed = completed != 0
		attempts = append(attempts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return attempts, nil
}

// BestSegments returns the fastest recorded duration per segment index
// for a run. Skipped segments (zero duration) are ignored.
func (s *Store) BestSegments(ctx context.Context, runKey string) (map[int]int64, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seg.idx, MIN(seg.segment_ms)
		 FROM attempt_segments seg
		 JOIN attempts a ON a.id = seg.attempt_id
		 WHERE a.run_key = ? AND seg.segment_ms > 0
		 GROUP BY seg.idx`, runKey)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	golds := map[int]int64{}
	for rows.Next() {
		var idx int
		var ms int64
		if err := rows.Scan(&idx, &ms); err != nil {
			return nil, err
		}
		golds[idx] = ms
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return golds, nil
}

// PersonalBest returns the segment times of the fastest completed
// attempt for a run, keyed by segment index, or nil when no attempt
// has been completed.
func (s *Store) PersonalBest(ctx context.Context, runKey string) (map[int]int64, error) {
	var attemptID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM attempts
		 WHERE run_key = ? AND completed = 1
		 ORDER BY duration_ms ASC
		 LIMIT 1`, runKey).Scan(&attemptID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT idx, split_ms FROM attempt_segments
		 WHERE attempt_id = ? AND split_ms > 0`, attemptID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	splits := map[int]int64{}
	for rows.Next() {
		var idx int
		var ms int64
		if err := rows.Scan(&idx, &ms); err != nil {
			return nil, err
		}
		splits[idx] = ms
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return splits, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
