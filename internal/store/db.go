package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/duckdb/duckdb-go/v2"
)

const dbFile = "harness.duckdb"

// NewDB opens the DuckDB database at path. ":memory:" opens an in-memory database.
func NewDB(path string) (*sql.DB, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb %q: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to duckdb %q: %w", path, err)
	}
	return db, nil
}

// DBPath returns the database location for a data folder. An empty folder keeps
// everything in memory.
func DBPath(dataFolder string) (string, error) {
	if dataFolder == "" {
		return ":memory:", nil
	}
	if err := os.MkdirAll(dataFolder, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data folder %s: %w", dataFolder, err)
	}
	return filepath.Join(dataFolder, dbFile), nil
}
