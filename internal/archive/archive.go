package archive

import (
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/roach88/stepgraph/internal/ir"
)

//go:embed schema.sql
var schemaSQL string

// SchemaVersion is the layout of schema.sql. It is stored in the
// database's user_version, and archives written by a newer layout are
// refused rather than read with the wrong columns.
const SchemaVersion = 1

// connParams are applied by the driver on every connection it opens.
const connParams = "_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000&_foreign_keys=on"

// Archive is a SQLite database of archived files.
type Archive struct {
	db *sql.DB
}

// SchemaVersionError reports an archive created with a newer layout.
type SchemaVersionError struct {
	Path    string
	Version int
}

func (e *SchemaVersionError) Error() string {
	return fmt.Sprintf("archive %s has schema version %d, this build of stepgraph %s reads up to %d",
		e.Path, e.Version, ir.LibraryVersion, SchemaVersion)
}

// Open creates or opens the archive at path. Reopening an existing
// archive leaves its contents untouched.
func Open(path string) (*Archive, error) {
	db, err := sql.Open("sqlite3", path+"?"+connParams)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if err := ensureSchema(db, path); err != nil {
		db.Close()
		return nil, err
	}
	return &Archive{db: db}, nil
}

func ensureSchema(db *sql.DB, path string) error {
	var version int
	if err := db.QueryRow("PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}
	if version > SchemaVersion {
		return &SchemaVersionError{Path: path, Version: version}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	if _, err := db.Exec(fmt.Sprintf("PRAGMA user_version = %d", SchemaVersion)); err != nil {
		return fmt.Errorf("write schema version: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (a *Archive) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
