package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	v1 "github.com/eventsqa/harness/api/v1"
	"github.com/eventsqa/harness/internal/models"
	"github.com/eventsqa/harness/internal/services"
	"github.com/eventsqa/harness/internal/util"
	srvErrors "github.com/eventsqa/harness/pkg/errors"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ListRuns returns the run history with filtering and pagination
// (GET /api/v1/runs)
func (h *Handler) ListRuns(c *gin.Context) {
	var params v1.RunListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
		return
	}

	limit, offset := util.ClampPage(params.Limit, params.Offset, defaultLimit, maxLimit)

	modes := make([]models.Mode, 0, len(params.Mode))
	for _, m := range params.Mode {
		modes = append(modes, models.Mode(m))
	}

	result, err := h.runSrv.List(c.Request.Context(), services.RunListParams{
		Keywords: params.Keyword,
		Statuses: params.Status,
		Modes:    modes,
		Limit:    uint64(limit),
		Offset:   uint64(offset),
	})
	if err != nil {
		zap.S().Named("run_handler").Errorw("failed to list runs", "error", err)
		c.JSON(http.StatusInternalServerError, v1.ErrorResponse{Error: "failed to list runs"})
		return
	}

	runs := make([]v1.Run, 0, len(result.Runs))
	for _, r := range result.Runs {
		runs = append(runs, v1.NewRunFromModel(r))
	}

	c.JSON(http.StatusOK, v1.RunListResponse{
		Total:  result.Total,
		Limit:  limit,
		Offset: offset,
		Runs:   runs,
	})
}

// GetRun returns a single run
// (GET /api/v1/runs/:id)
func (h *Handler) GetRun(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: "invalid run id"})
		return
	}

	run, err := h.runSrv.Get(c.Request.Context(), id)
	if err != nil {
		if srvErrors.IsResourceNotFoundError(err) {
			c.JSON(http.StatusNotFound, v1.ErrorResponse{Error: err.Error()})
			return
		}
		zap.S().Named("run_handler").Errorw("failed to get run", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, v1.ErrorResponse{Error: "failed to get run"})
		return
	}

	c.JSON(http.StatusOK, v1.NewRunFromModel(*run))
}
