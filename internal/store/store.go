package store

import (
	"context"
	"database/sql"
)

// QueryInterceptor is the subset of *sql.DB the sub-stores need.
type QueryInterceptor interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store provides access to all storage repositories.
type Store struct {
	db   *sql.DB
	runs *RunStore
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:   db,
		runs: NewRunStore(db),
	}
}

func (s *Store) Runs() *RunStore {
	return s.runs
}

func (s *Store) Close() error {
	return s.db.Close()
}
