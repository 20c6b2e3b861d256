package tasklist

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteBackend stores the raw lines of every list in one SQLite database.
type SQLiteBackend struct {
	db *sqlx.DB
}

type migration struct {
	version    int
	statements []string
}

// migrations must be sequential starting from 1.
var migrations = []migration{
	{
		version: 1,
		statements: []string{
			`CREATE TABLE IF NOT EXISTS schema_version (
	version INTEGER NOT NULL
)`,
			`CREATE TABLE IF NOT EXISTS lines (
	list     TEXT    NOT NULL,
	position INTEGER NOT NULL,
	line     TEXT    NOT NULL,
	PRIMARY KEY (list, position)
)`,
		},
	},
}

// NewSQLiteBackend opens (or creates) the database at path and applies any
// pending migrations.
func NewSQLiteBackend(path string) (*SQLiteBackend, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// One connection keeps writers from tripping over SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	b := &SQLiteBackend{db: db}
	if err := b.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return b, nil
}

func (b *SQLiteBackend) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := b.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}
	if tableCount > 0 {
		err = b.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		for _, statement := range m.statements {
			if _, err := b.db.Exec(statement); err != nil {
				return fmt.Errorf("applying migration v%d: %w", m.version, err)
			}
		}
		if _, err := b.db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.version); err != nil {
			return fmt.Errorf("recording migration v%d: %w", m.version, err)
		}
	}
	return nil
}

// Lines implements Backend.
func (b *SQLiteBackend) Lines(ctx context.Context, list string) ([]string, error) {
	var lines []string
	err := b.db.SelectContext(ctx, &lines,
		"SELECT line FROM lines WHERE list = ? ORDER BY position", list)
	if err != nil {
		return nil, fmt.Errorf("selecting lines: %w", err)
	}
	return lines, nil
}

// Append implements Backend.
func (b *SQLiteBackend) Append(ctx context.Context, list, line string) error {
	_, err := b.db.ExecContext(ctx, `
		INSERT INTO lines (list, position, line)
		VALUES (?, (SELECT COALESCE(MAX(position), -1) + 1 FROM lines WHERE list = ?), ?)`,
		list, list, line)
	if err != nil {
		return fmt.Errorf("inserting line: %w", err)
	}
	return nil
}

// Rewrite implements Backend. The delete and inserts share one transaction.
func (b *SQLiteBackend) Rewrite(ctx context.Context, list string, lines []string) error {
	tx, err := b.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM lines WHERE list = ?", list); err != nil {
		return fmt.Errorf("clearing list: %w", err)
	}

	stmt, err := tx.PreparexContext(ctx, "INSERT INTO lines (list, position, line) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for i, line := range lines {
		if _, err := stmt.ExecContext(ctx, list, i, line); err != nil {
			return fmt.Errorf("inserting line %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// Lock implements Backend. SQLite serializes writers itself.
func (b *SQLiteBackend) Lock(context.Context, string) (func() error, error) {
	return noopUnlock, nil
}

// Close closes the underlying database connection.
func (b *SQLiteBackend) Close() error {
	return b.db.Close()
}
