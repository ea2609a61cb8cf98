package backup

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// schemaVersion is the current schema version. Bump this when the schema
// changes; stale databases are rejected rather than migrated.
const schemaVersion = 1

// ErrNoBackup indicates no restorable rename record exists for the directory.
var ErrNoBackup = errors.New("no backup record found")

// ErrSchemaMismatch indicates the backup database was written by an
// incompatible version of the tool.
var ErrSchemaMismatch = errors.New("backup schema version mismatch")

// Mapping relates a file's current name to the name it had before the
// first apply run touched it.
type Mapping struct {
	NewName      string
	OriginalName string
}

// Store manages rename records backed by SQLite. One store serves one
// target directory; the database lives inside that directory's state dir.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the backup database under stateDir,
// creating the directory when needed.
func Open(stateDir string) (*Store, error) {
	if err := os.MkdirAll(stateDir, 0o755); err != nil {
		return nil, fmt.Errorf("create state directory: %w", err)
	}

	dbPath := filepath.Join(stateDir, "backup.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the backup database location.
func (s *Store) Path() string { return s.path }

func (s *Store) initSchema(ctx context.Context) error {
	var tableExists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(1) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	).Scan(&tableExists)
	if err != nil {
		return fmt.Errorf("check schema_version table: %w", err)
	}

	if tableExists == 0 {
		return s.createSchema(ctx)
	}

	var version int
	if err := s.db.QueryRowContext(ctx, "SELECT version FROM schema_version LIMIT 1").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version != schemaVersion {
		return fmt.Errorf("%w: database has version %d, expected %d (delete %s to start over)",
			ErrSchemaMismatch, version, schemaVersion, s.path)
	}
	return nil
}

func (s *Store) createSchema(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_version (version) VALUES (?)", schemaVersion); err != nil {
		return fmt.Errorf("record schema version: %w", err)
	}
	return tx.Commit()
}

// SaveRun persists the full mapping for one apply run in a single
// transaction, before any rename happens, and returns the run ID.
//
// When a file being renamed is itself the product of an earlier run, the
// new row chains to the earliest recorded original name and the
// superseded row is dropped, so restore always recovers the true original.
func (s *Store) SaveRun(ctx context.Context, directory string, mappings []Mapping) (string, error) {
	if len(mappings) == 0 {
		return "", errors.New("empty rename mapping")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	runID := uuid.NewString()
	createdAt := time.Now().UTC().Format(time.RFC3339Nano)
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO runs (id, directory, created_at) VALUES (?, ?, ?)",
		runID, directory, createdAt,
	); err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}

	for _, m := range mappings {
		original := m.OriginalName

		var earlier string
		err := tx.QueryRowContext(ctx,
			"SELECT original_name FROM renames WHERE new_name = ? AND restored_at IS NULL",
			m.OriginalName,
		).Scan(&earlier)
		switch {
		case err == nil:
			original = earlier
			if _, err := tx.ExecContext(ctx,
				"DELETE FROM renames WHERE new_name = ? AND restored_at IS NULL",
				m.OriginalName,
			); err != nil {
				return "", fmt.Errorf("supersede rename row: %w", err)
			}
		case errors.Is(err, sql.ErrNoRows):
			// First rename of this file.
		default:
			return "", fmt.Errorf("look up earlier rename: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			"INSERT INTO renames (run_id, new_name, original_name) VALUES (?, ?, ?)",
			runID, m.NewName, original,
		); err != nil {
			return "", fmt.Errorf("insert rename row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit run: %w", err)
	}
	return runID, nil
}

// ActiveMappings returns every rename row not yet restored, ordered by
// current name.
func (s *Store) ActiveMappings(ctx context.Context) ([]Mapping, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT new_name, original_name FROM renames WHERE restored_at IS NULL ORDER BY new_name",
	)
	if err != nil {
		return nil, fmt.Errorf("query mappings: %w", err)
	}
	defer rows.Close()

	var mappings []Mapping
	for rows.Next() {
		var m Mapping
		if err := rows.Scan(&m.NewName, &m.OriginalName); err != nil {
			return nil, fmt.Errorf("scan mapping: %w", err)
		}
		mappings = append(mappings, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mappings: %w", err)
	}
	return mappings, nil
}

// MarkRestored flags a rename row as undone.
func (s *Store) MarkRestored(ctx context.Context, newName string) error {
	restoredAt := time.Now().UTC().Format(time.RFC3339Nano)
	res, err := s.db.ExecContext(ctx,
		"UPDATE renames SET restored_at = ? WHERE new_name = ? AND restored_at IS NULL",
		restoredAt, newName,
	)
	if err != nil {
		return fmt.Errorf("mark restored: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no active rename row for %q", newName)
	}
	return nil
}

// Prune deletes restored rename rows and any run left without rows. Runs
// with an active row are kept so a partial restore stays recoverable.
func (s *Store) Prune(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin prune tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM renames WHERE restored_at IS NOT NULL"); err != nil {
		return fmt.Errorf("prune rename rows: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM runs WHERE id NOT IN (SELECT DISTINCT run_id FROM renames)",
	); err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}
	return tx.Commit()
}
