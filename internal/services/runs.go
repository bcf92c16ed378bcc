package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/eventsqa/harness/internal/models"
	"github.com/eventsqa/harness/internal/store"
)

type RunService struct {
	store *store.Store
}

func NewRunService(st *store.Store) *RunService {
	return &RunService{store: st}
}

type RunListParams struct {
	Keywords []string
	Statuses []string
	Modes    []models.Mode
	Limit    uint64
	Offset   uint64
}

type RunListResult struct {
	Runs  []models.TestRun
	Total int
}

func (s *RunService) Get(ctx context.Context, id uuid.UUID) (*models.TestRun, error) {
	return s.store.Runs().Get(ctx, id)
}

func (s *RunService) List(ctx context.Context, params RunListParams) (*RunListResult, error) {
	runs, err := s.store.Runs().List(ctx, s.buildListOptions(params)...)
	if err != nil {
		return nil, err
	}

	// total ignores pagination
	total, err := s.store.Runs().Count(ctx, s.buildListOptions(RunListParams{
		Keywords: params.Keywords,
		Statuses: params.Statuses,
		Modes:    params.Modes,
	})...)
	if err != nil {
		return nil, err
	}

	return &RunListResult{
		Runs:  runs,
		Total: total,
	}, nil
}

// Save implements RunRecorder.
func (s *RunService) Save(ctx context.Context, run *models.TestRun) error {
	return s.store.Runs().Save(ctx, run)
}

func (s *RunService) buildListOptions(params RunListParams) []store.ListOption {
	var opts []store.ListOption

	if len(params.Keywords) > 0 {
		opts = append(opts, store.ByKeyword(params.Keywords...))
	}
	if len(params.Statuses) > 0 {
		opts = append(opts, store.ByStatus(params.Statuses...))
	}
	if len(params.Modes) > 0 {
		opts = append(opts, store.ByMode(params.Modes...))
	}
	if params.Limit > 0 {
		opts = append(opts, store.WithLimit(params.Limit))
	}
	if params.Offset > 0 {
		opts = append(opts, store.WithOffset(params.Offset))
	}

	return opts
}
