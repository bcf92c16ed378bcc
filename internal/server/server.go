package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/eventsqa/harness/internal/config"
	"github.com/eventsqa/harness/internal/server/middlewares"
)

// RegisterFn mounts handlers. root serves the keyword endpoints, api is prefixed with /api/v1.
type RegisterFn func(root *gin.RouterGroup, api *gin.RouterGroup)

type Server struct {
	srv    *http.Server
	engine *gin.Engine
}

func NewServer(cfg *config.Configuration, registerHandlerFn RegisterFn) (*Server, error) {
	if registerHandlerFn == nil {
		return nil, errors.New("no handler registration function")
	}

	if cfg.Server.ServerMode == "prod" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	engine := gin.New()
	engine.Use(
		middlewares.Logger(),
		ginzap.RecoveryWithZap(zap.L(), true),
	)

	registerHandlerFn(engine.Group("/"), engine.Group("/api/v1"))

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})

	return &Server{
		engine: engine,
		srv: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.Server.HTTPPort),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Handler exposes the router, mostly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start blocks until the server stops. A graceful Stop returns http.ErrServerClosed.
// Request contexts derive from ctx, so cancelling it stops running tests.
func (s *Server) Start(ctx context.Context) error {
	s.srv.BaseContext = func(net.Listener) context.Context { return ctx }
	zap.S().Named("server").Infow("starting http server", "addr", s.srv.Addr)
	return s.srv.ListenAndServe()
}

// Stop waits for in-flight requests until ctx expires.
func (s *Server) Stop(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
