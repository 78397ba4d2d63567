// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a local SQLite log of every file submitted for
// conversion and how it ended.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/extract-client/pkg/types"
)

const (
	dbFile            = "history.db"
	defaultMaxResults = 20
)

// Store manages the history database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// Open opens or creates stateDir/history.db and its schema.
func Open(cfg types.HistoryConfig) (*Store, error) {
	if cfg.StateDir == "" {
		return nil, fmt.Errorf("history state directory not set")
	}
	if err := os.MkdirAll(cfg.StateDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating state directory: %w", err)
	}

	dbPath := filepath.Join(cfg.StateDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	s := &Store{db: db, maxResults: maxResults}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS outcomes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			batch_id TEXT NOT NULL,
			file TEXT NOT NULL,
			size INTEGER NOT NULL,
			format TEXT NOT NULL,
			status TEXT NOT NULL,
			message TEXT,
			artifact_path TEXT,
			at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_batch ON outcomes(batch_id)`,
		`CREATE INDEX IF NOT EXISTS idx_outcomes_status ON outcomes(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record appends one outcome.
func (s *Store) Record(ctx context.Context, o types.Outcome) error {
	at := o.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO outcomes (batch_id, file, size, format, status, message, artifact_path, at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		o.BatchID, o.File, o.Size, string(o.Format), string(o.Status),
		o.Message, o.ArtifactPath, at.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording %s: %w", o.File, err)
	}
	return nil
}

// Filter narrows a Recent listing. Zero fields match everything.
type Filter struct {
	Status  types.OutcomeStatus
	BatchID string
	Limit   int
}

// Recent returns outcomes newest first.
func (s *Store) Recent(ctx context.Context, f Filter) ([]types.Outcome, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = s.maxResults
	}

	query := `SELECT batch_id, file, size, format, status, message, artifact_path, at
		FROM outcomes WHERE 1=1`
	var args []any
	if f.Status != "" {
		query += ` AND status = ?`
		args = append(args, string(f.Status))
	}
	if f.BatchID != "" {
		query += ` AND batch_id = ?`
		args = append(args, f.BatchID)
	}
	query += ` ORDER BY id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []types.Outcome
	for rows.Next() {
		var (
			o                     types.Outcome
			format, status, at    string
			message, artifactPath sql.NullString
		)
		if err := rows.Scan(&o.BatchID, &o.File, &o.Size, &format, &status, &message, &artifactPath, &at); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		o.Format = types.Format(format)
		o.Status = types.OutcomeStatus(status)
		o.Message = message.String
		o.ArtifactPath = artifactPath.String
		if t, err := time.Parse(time.RFC3339Nano, at); err == nil {
			o.At = t
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

// Counts returns the number of recorded outcomes per status.
func (s *Store) Counts(ctx context.Context) (map[types.OutcomeStatus]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, count(*) FROM outcomes GROUP BY status`)
	if err != nil {
		return nil, fmt.Errorf("counting history: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.OutcomeStatus]int)
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("scanning count: %w", err)
		}
		counts[types.OutcomeStatus(status)] = n
	}
	return counts, rows.Err()
}
