package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	v1 "github.com/eventsqa/harness/api/v1"
	"github.com/eventsqa/harness/internal/dispatch"
	"github.com/eventsqa/harness/internal/util"
)

// Health reports liveness
// (GET /health)
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// CreateAccount runs the create_account keyword
// (POST /create_account)
func (h *Handler) CreateAccount(c *gin.Context) {
	var req v1.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
		return
	}

	h.runKeyword(c, dispatch.KeywordCreateAccount, req.Payload())
}

// CreateUser runs the keyword named by the action field, create_user by default
// (POST /create_user)
func (h *Handler) CreateUser(c *gin.Context) {
	var req v1.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
		return
	}

	h.runKeyword(c, req.Keyword(), req.Payload())
}

// RunTest runs any keyword and answers in the legacy shape
// (POST /run_test)
func (h *Handler) RunTest(c *gin.Context) {
	var req v1.RunTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, v1.ErrorResponse{Error: err.Error()})
		return
	}
	if req.Payload == nil {
		req.Payload = map[string]any{}
	}

	log := zap.S().Named("test_handler")
	log.Infow("request received", "endpoint", "/run_test", "keyword", req.Keyword, "payload", req.Payload)

	result := h.dispatcher.Dispatch(c.Request.Context(), req.Keyword, req.Payload)
	c.JSON(http.StatusOK, v1.LegacyResponse{Status: "ok", Result: result})
}

func (h *Handler) runKeyword(c *gin.Context, keyword string, payload map[string]any) {
	log := zap.S().Named("test_handler")
	log.Infow("request received", "endpoint", c.FullPath(), "keyword", keyword, "ui_test", payload["ui_test"])

	result := h.dispatcher.Dispatch(c.Request.Context(), keyword, payload)

	status := util.StringFrom(result, "status", "ok")
	message := util.StringFrom(result, "message", fmt.Sprintf("%s dispatched", keyword))
	if status != "ok" && status != "success" {
		log.Errorw("test did not succeed", "keyword", keyword, "status", status, "message", message)
	}

	c.JSON(http.StatusOK, v1.TestResponse{
		Status:     status,
		Message:    message,
		TestResult: result,
		Timestamp:  time.Now().UTC(),
	})
}
