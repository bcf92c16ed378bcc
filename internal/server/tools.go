package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eventsqa/harness/internal/config"
	"github.com/eventsqa/harness/internal/server/middlewares"
	"github.com/eventsqa/harness/pkg/envelope"
)

const toolServerVersion = "1.0.0"

// KeywordLister lists the keywords the harness can run.
type KeywordLister interface {
	Keywords() []string
}

type toolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Endpoint    string `json:"endpoint"`
}

type validateEnvelopeRequest struct {
	Operation string         `json:"operation" binding:"required,oneof=create update delete get list"`
	Payload   map[string]any `json:"payload" binding:"required"`
}

// ToolServer is the side listener describing the harness to tool clients.
// It never affects the main server: start-up and serve errors are only logged.
type ToolServer struct {
	name     string
	keywords KeywordLister
	srvs     []*http.Server
	engine   *gin.Engine
	log      *zap.SugaredLogger
}

func NewToolServer(cfg config.Tools, keywords KeywordLister) *ToolServer {
	t := &ToolServer{
		name:     cfg.Name,
		keywords: keywords,
		log:      zap.S().Named("tool_server"),
	}

	engine := gin.New()
	engine.Use(middlewares.Logger(), ginzap.RecoveryWithZap(zap.L(), true))
	engine.GET("/", t.root)
	engine.GET("/health", t.health)
	engine.GET("/mcp/status", t.status)
	engine.GET("/tools", t.tools)
	engine.POST("/tools/validate_envelope", t.validateEnvelope)

	t.engine = engine
	ports := []int{cfg.Port}
	if cfg.AltPort > 0 {
		ports = append(ports, cfg.AltPort)
	}
	for _, port := range ports {
		t.srvs = append(t.srvs, &http.Server{
			Addr:              fmt.Sprintf(":%d", port),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		})
	}
	return t
}

// Addrs returns the listen addresses, the main port first.
func (t *ToolServer) Addrs() []string {
	addrs := make([]string, 0, len(t.srvs))
	for _, srv := range t.srvs {
		addrs = append(addrs, srv.Addr)
	}
	return addrs
}

func (t *ToolServer) Handler() http.Handler {
	return t.engine
}

// StartBackground serves in a goroutine and returns immediately.
func (t *ToolServer) StartBackground() {
	for _, srv := range t.srvs {
		go func(srv *http.Server) {
			t.log.Infow("starting tool server", "addr", srv.Addr, "name", t.name)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				t.log.Errorw("tool server stopped", "addr", srv.Addr, "error", err)
			}
		}(srv)
	}
}

func (t *ToolServer) Stop(ctx context.Context) {
	for _, srv := range t.srvs {
		if err := srv.Shutdown(ctx); err != nil {
			t.log.Errorw("failed to stop tool server", "addr", srv.Addr, "error", err)
		}
	}
}

func (t *ToolServer) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Tool Server Ready", "mcp_enabled": true})
}

func (t *ToolServer) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "mcp_server": "running"})
}

func (t *ToolServer) status(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"server_name":     t.name,
		"server_version":  toolServerVersion,
		"available_tools": append(t.keywords.Keywords(), "validate_envelope"),
	})
}

func (t *ToolServer) tools(c *gin.Context) {
	var list []toolInfo
	for _, k := range t.keywords.Keywords() {
		list = append(list, toolInfo{
			Name:        k,
			Description: fmt.Sprintf("Run the %s test", k),
			Endpoint:    "/run_test",
		})
	}
	list = append(list, toolInfo{
		Name:        "validate_envelope",
		Description: "Check a response body against the API envelope contract",
		Endpoint:    "/tools/validate_envelope",
	})
	c.JSON(http.StatusOK, gin.H{"tools": list})
}

func (t *ToolServer) validateEnvelope(c *gin.Context) {
	var req validateEnvelopeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := envelope.ExpectStatus(req.Payload, envelope.Operation(req.Operation)); err != nil {
		c.JSON(http.StatusOK, gin.H{"valid": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"valid": true})
}
