// Package store implements the run history storage of the harness.
//
// Runs are kept in DuckDB. When no data folder is configured the database lives
// in memory and history is lost on exit.
//
// # Architecture Overview
//
//	┌──────────────────────────────────┐
//	│          Store (facade)          │
//	├──────────────────────────────────┤
//	│            RunStore              │
//	│               ▼                  │
//	│             runs                 │
//	└──────────────────────────────────┘
//
// Tables created by migrations (internal/store/migrations/sql/):
//
//	┌────────────────────┬──────────────────────────────────────────┐
//	│  Table             │  Purpose                                 │
//	├────────────────────┼──────────────────────────────────────────┤
//	│  runs              │  One row per dispatched test run         │
//	│  schema_migrations │  Migration version tracking              │
//	└────────────────────┴──────────────────────────────────────────┘
//
// # Initialization Flow
//
//	path, _ := store.DBPath(cfg.Server.DataFolder)
//	db, _ := store.NewDB(path)
//	migrations.Run(ctx, db)
//	s := store.NewStore(db)
//
// # RunStore
//
// Schema:
//
//	runs (
//	    id VARCHAR PRIMARY KEY,         -- uuid
//	    keyword VARCHAR NOT NULL,
//	    mode VARCHAR NOT NULL,          -- ui | api
//	    test_type VARCHAR,
//	    status VARCHAR,                 -- success | error, empty while running
//	    return_code INTEGER,            -- NULL when no subprocess ran
//	    stdout VARCHAR,
//	    stderr VARCHAR,
//	    error VARCHAR,
//	    payload VARCHAR,                -- JSON sent to the test
//	    started_at TIMESTAMP NOT NULL,
//	    finished_at TIMESTAMP
//	)
//
// Methods:
//   - Save(ctx, run) → error (UPSERT on id; only the outcome columns are updated)
//   - Get(ctx, id) → *models.TestRun or ResourceNotFoundError
//   - List(ctx, opts...) → []models.TestRun, newest first
//   - Count(ctx, opts...) → int
//   - Prune(ctx, before) → rows deleted
//
// List options compose squirrel builders:
//
//	s.Runs().List(ctx,
//	    store.ByKeyword("create_account"),
//	    store.ByStatus(models.StatusError),
//	    store.WithLimit(20),
//	    store.WithOffset(40),
//	)
package store
