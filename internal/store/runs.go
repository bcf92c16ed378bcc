package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/eventsqa/harness/internal/models"
	srvErrors "github.com/eventsqa/harness/pkg/errors"
)

// RunStore persists test run history.
type RunStore struct {
	db QueryInterceptor
}

func NewRunStore(db QueryInterceptor) *RunStore {
	return &RunStore{db: db}
}

// Save inserts run or updates its outcome if it already exists.
func (s *RunStore) Save(ctx context.Context, run *models.TestRun) error {
	var returnCode sql.NullInt64
	if run.ReturnCode != nil {
		returnCode = sql.NullInt64{Int64: int64(*run.ReturnCode), Valid: true}
	}
	var finishedAt sql.NullTime
	if !run.FinishedAt.IsZero() {
		finishedAt = sql.NullTime{Time: run.FinishedAt, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, queryUpsertRun,
		run.ID.String(),
		run.Keyword,
		string(run.Mode),
		string(run.TestType),
		run.Status,
		returnCode,
		run.Stdout,
		run.Stderr,
		run.Error,
		string(run.Payload),
		run.StartedAt,
		finishedAt,
	)
	return err
}

func (s *RunStore) Get(ctx context.Context, id uuid.UUID) (*models.TestRun, error) {
	query, args, err := sq.Select(runColumns...).From("runs").Where(sq.Eq{"id": id.String()}).ToSql()
	if err != nil {
		return nil, err
	}

	run, err := scanRun(s.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewRunNotFoundError(id.String())
	}
	return run, err
}

// List returns runs newest first.
func (s *RunStore) List(ctx context.Context, opts ...ListOption) ([]models.TestRun, error) {
	builder := sq.Select(runColumns...).From("runs").OrderBy("started_at DESC", "id")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []models.TestRun{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

func (s *RunStore) Count(ctx context.Context, opts ...ListOption) (int, error) {
	builder := sq.Select("COUNT(*)").From("runs")

	for _, opt := range opts {
		builder = opt(builder)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return 0, err
	}

	var count int
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&count)
	return count, err
}

// Prune removes runs started before t and returns how many were deleted.
func (s *RunStore) Prune(ctx context.Context, t time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx, queryDeleteRunsBefore, t)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

type ListOption func(sq.SelectBuilder) sq.SelectBuilder

func ByKeyword(keywords ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(keywords) == 0 {
			return b
		}
		return b.Where(sq.Eq{"keyword": keywords})
	}
}

func ByStatus(statuses ...string) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(statuses) == 0 {
			return b
		}
		return b.Where(sq.Eq{"status": statuses})
	}
}

func ByMode(modes ...models.Mode) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		if len(modes) == 0 {
			return b
		}
		values := make([]string, 0, len(modes))
		for _, m := range modes {
			values = append(values, string(m))
		}
		return b.Where(sq.Eq{"mode": values})
	}
}

func WithLimit(limit uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Limit(limit)
	}
}

func WithOffset(offset uint64) ListOption {
	return func(b sq.SelectBuilder) sq.SelectBuilder {
		return b.Offset(offset)
	}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*models.TestRun, error) {
	var (
		run        models.TestRun
		id         string
		mode       string
		testType   sql.NullString
		status     sql.NullString
		returnCode sql.NullInt64
		stdout     sql.NullString
		stderr     sql.NullString
		errMsg     sql.NullString
		payload    sql.NullString
		finishedAt sql.NullTime
	)
	err := row.Scan(
		&id,
		&run.Keyword,
		&mode,
		&testType,
		&status,
		&returnCode,
		&stdout,
		&stderr,
		&errMsg,
		&payload,
		&run.StartedAt,
		&finishedAt,
	)
	if err != nil {
		return nil, err
	}

	run.ID, err = uuid.Parse(id)
	if err != nil {
		return nil, err
	}
	run.Mode = models.Mode(mode)
	run.TestType = models.TestType(testType.String)
	run.Status = status.String
	if returnCode.Valid {
		code := int(returnCode.Int64)
		run.ReturnCode = &code
	}
	run.Stdout = stdout.String
	run.Stderr = stderr.String
	run.Error = errMsg.String
	if payload.Valid {
		run.Payload = []byte(payload.String)
	}
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}
	return &run, nil
}
