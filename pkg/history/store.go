// Package history persists a rolling audit log of applied batches. It lives
// beside pkg/editcore/apply, never inside it: the engine returns an
// apply.EditResult and forgets it; Store is what the HTTP server uses to
// remember one.
package history

import (
	"database/sql"
	"embed"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/mattn/go-sqlite3"

	"github.com/chainlaunch/editcore/pkg/editcore/apply"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Store persists batch outcomes to a SQLite database, migrated on Open the
// way golang-migrate's iofs source lets an embedded migration set travel
// inside the compiled binary rather than as loose files on disk.
type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) the SQLite database at path and applies
// any pending migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := migrateUp(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func migrateUp(db *sql.DB) error {
	srcDriver, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	dbDriver, err := sqlite3.WithInstance(db, &sqlite3.Config{})
	if err != nil {
		return fmt.Errorf("migrate driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", srcDriver, "sqlite3", dbDriver)
	if err != nil {
		return fmt.Errorf("migrate init: %w", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Close closes the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// RecordBatch inserts one row per batch and one row per file the batch
// touched, capturing whether that file ended up updated or rolled back.
func (s *Store) RecordBatch(startedAt, finishedAt time.Time, result apply.EditResult) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var parseError sql.NullString

	if _, err := tx.Exec(
		`INSERT INTO batches (id, started_at, finished_at, parse_error) VALUES (?, ?, ?, ?)`,
		result.BatchID, startedAt.Format(time.RFC3339Nano), finishedAt.Format(time.RFC3339Nano), parseError,
	); err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	// Reasons are reported per-block, not per-file; a rolled-back file's
	// reason is whichever of its failing blocks reported last. A block is
	// tied to a file only when its filename token equals the file's
	// relative path, so a file whose failing block named it by a partial or
	// differently spelled token is recorded with no reason.
	reasonByKey := map[string]apply.Reason{}
	for _, fb := range result.FailedBlocks {
		if fb.Block.Filename == "" {
			continue
		}
		for key, file := range result.Files {
			if file.RelativePath() == fb.Block.Filename {
				reasonByKey[key] = fb.Reason
			}
		}
	}

	for key := range result.Files {
		outcome := "updated"
		var reason sql.NullString
		if result.RolledBackKeys[key] {
			outcome = "rolled_back"
			if r, ok := reasonByKey[key]; ok {
				reason = sql.NullString{String: string(r), Valid: true}
			}
		}
		if _, err := tx.Exec(
			`INSERT INTO batch_files (batch_id, file, outcome, reason) VALUES (?, ?, ?, ?)`,
			result.BatchID, key, outcome, reason,
		); err != nil {
			return fmt.Errorf("insert batch_file: %w", err)
		}
	}

	return tx.Commit()
}

// BatchSummary is one row of ListBatches' output.
type BatchSummary struct {
	ID           string
	StartedAt    time.Time
	FinishedAt   time.Time
	UpdatedFiles int
	RolledBack   int
}

// ListBatches returns the most recently recorded batches, newest first.
func (s *Store) ListBatches(limit int) ([]BatchSummary, error) {
	rows, err := s.db.Query(
		`SELECT b.id, b.started_at, b.finished_at,
		        SUM(CASE WHEN f.outcome = 'updated' THEN 1 ELSE 0 END),
		        SUM(CASE WHEN f.outcome = 'rolled_back' THEN 1 ELSE 0 END)
		 FROM batches b
		 LEFT JOIN batch_files f ON f.batch_id = b.id
		 GROUP BY b.id
		 ORDER BY b.started_at DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var out []BatchSummary
	for rows.Next() {
		var (
			id, startedAt, finishedAt string
			updated, rolledBack       int
		)
		if err := rows.Scan(&id, &startedAt, &finishedAt, &updated, &rolledBack); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		started, _ := time.Parse(time.RFC3339Nano, startedAt)
		finished, _ := time.Parse(time.RFC3339Nano, finishedAt)
		out = append(out, BatchSummary{
			ID: id, StartedAt: started, FinishedAt: finished,
			UpdatedFiles: updated, RolledBack: rolledBack,
		})
	}
	return out, rows.Err()
}
