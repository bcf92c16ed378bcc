package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/eventsqa/harness/internal/models"
	"github.com/eventsqa/harness/internal/services"
)

// Dispatcher runs a keyword with its payload.
type Dispatcher interface {
	Dispatch(ctx context.Context, keyword string, payload map[string]any) map[string]any
}

// RunService reads the run history.
type RunService interface {
	Get(ctx context.Context, id uuid.UUID) (*models.TestRun, error)
	List(ctx context.Context, params services.RunListParams) (*services.RunListResult, error)
}

type Handler struct {
	dispatcher Dispatcher
	runSrv     RunService
}

func New(dispatcher Dispatcher, runSrv RunService) *Handler {
	return &Handler{
		dispatcher: dispatcher,
		runSrv:     runSrv,
	}
}

// RegisterRoutes mounts the keyword endpoints on root and the run history under api.
func RegisterRoutes(root *gin.RouterGroup, api *gin.RouterGroup, h *Handler) {
	root.GET("/health", h.Health)
	root.POST("/create_account", h.CreateAccount)
	root.POST("/create_user", h.CreateUser)
	root.POST("/run_test", h.RunTest)

	api.GET("/runs", h.ListRuns)
	api.GET("/runs/:id", h.GetRun)
}
