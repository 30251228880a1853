/*
Package sqlite provides a SQLite-backed implementation of the publish store.

PURPOSE:
  Persists published SolutionBundles so future solves can minimize change
  against the current baseline. In production the same patterns apply to
  PostgreSQL - only minor SQL dialect differences.

INTERFACES IMPLEMENTED:
  engine.PublishStore: Publish / LatestPublished / ListPublished

PUBLISH SEMANTICS:
  Exactly one current baseline per (org_id, tag). Publishing inserts a new
  row and clears the is_current flag on the previous one inside a single
  transaction; history rows are never deleted.

KEY TABLES:
  published_solutions: Bundle snapshots as JSON plus publish bookkeeping

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging) for better concurrency:
  multiple readers don't block and crash recovery improves.

USAGE:
  store, err := sqlite.New("./data/roster.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  baseline, err := store.LatestPublished(ctx, orgID, "weekly")

SEE ALSO:
  - engine/history.go: Interface definition
  - engine/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/warp/roster-engine/engine"
)

// Store implements engine.PublishStore using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS published_solutions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		solution_id TEXT NOT NULL,
		org_id TEXT NOT NULL,
		tag TEXT NOT NULL,
		bundle_json TEXT NOT NULL,
		is_current INTEGER NOT NULL DEFAULT 1,
		published_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_published_org_tag
		ON published_solutions(org_id, tag);

	-- Hot path: fetching the baseline before a change-minimizing solve
	CREATE UNIQUE INDEX IF NOT EXISTS idx_published_current
		ON published_solutions(org_id, tag)
		WHERE is_current = 1;
	`
	_, err := s.db.Exec(schema)
	return err
}

// Publish records the bundle as the new current baseline for (org, tag).
// The previous baseline row stays in history with is_current cleared.
func (s *Store) Publish(ctx context.Context, orgID engine.OrgID, tag string, bundle *engine.SolutionBundle) error {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return fmt.Errorf("failed to encode bundle: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`UPDATE published_solutions SET is_current = 0 WHERE org_id = ? AND tag = ? AND is_current = 1`,
		string(orgID), tag)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO published_solutions (solution_id, org_id, tag, bundle_json, is_current, published_at)
		 VALUES (?, ?, ?, ?, 1, ?)`,
		string(bundle.Meta.ID), string(orgID), tag, string(payload),
		time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LatestPublished returns the current baseline for (org, tag).
func (s *Store) LatestPublished(ctx context.Context, orgID engine.OrgID, tag string) (*engine.SolutionBundle, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT bundle_json FROM published_solutions
		 WHERE org_id = ? AND tag = ? AND is_current = 1`,
		string(orgID), tag).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, engine.ErrSolutionNotFound
	}
	if err != nil {
		return nil, err
	}

	var bundle engine.SolutionBundle
	if err := json.Unmarshal([]byte(payload), &bundle); err != nil {
		return nil, fmt.Errorf("failed to decode bundle: %w", err)
	}
	return &bundle, nil
}

// ListPublished returns the publish history for an org, newest first.
func (s *Store) ListPublished(ctx context.Context, orgID engine.OrgID) ([]engine.PublishedRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT tag, bundle_json, published_at FROM published_solutions
		 WHERE org_id = ? ORDER BY published_at DESC, id DESC`,
		string(orgID))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []engine.PublishedRecord
	for rows.Next() {
		var (
			tag         string
			payload     string
			publishedAt string
		)
		if err := rows.Scan(&tag, &payload, &publishedAt); err != nil {
			return nil, err
		}

		var bundle engine.SolutionBundle
		if err := json.Unmarshal([]byte(payload), &bundle); err != nil {
			return nil, fmt.Errorf("failed to decode bundle: %w", err)
		}
		at, err := time.Parse(time.RFC3339, publishedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse publish time: %w", err)
		}

		out = append(out, engine.PublishedRecord{
			OrgID:       orgID,
			Tag:         tag,
			Bundle:      &bundle,
			PublishedAt: at,
		})
	}
	return out, rows.Err()
}

var _ engine.PublishStore = (*Store)(nil)
