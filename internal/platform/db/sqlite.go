package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure Go SQLite driver, no CGO
)

// OpenSQLite opens (and creates if needed) a local SQLite database. Write
// transactions are opened immediate so concurrent writers queue instead of
// failing at commit time.
func OpenSQLite(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite directory: %w", err)
		}
	}

	handle, err := sql.Open("sqlite", path+"?_txlock=immediate")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// The driver serializes writes; a single connection avoids busy errors.
	handle.SetMaxOpenConns(1)

	if _, err := handle.Exec("PRAGMA foreign_keys = ON"); err != nil {
		_ = handle.Close()
		return nil, fmt.Errorf("enable sqlite foreign keys: %w", err)
	}
	return handle, nil
}
