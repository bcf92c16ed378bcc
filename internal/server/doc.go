// Package server provides the HTTP servers of the test harness.
//
// # Main server
//
// A gin engine listening on server.http-port (N8N_REST_PORT, default 8000).
// Gin runs in release mode when ServerMode is "prod" and in debug mode otherwise.
// Only plain HTTP is served; the harness runs next to the system under test.
//
//	┌───────────────────────────────────────────────────────────────┐
//	│                       Middleware Stack                        │
//	│  Logger   (middlewares.Logger, "http" logger)                 │
//	│  Recovery (ginzap.RecoveryWithZap, 500 on panic)              │
//	├───────────────────────────────────────────────────────────────┤
//	│  /            keyword endpoints (registered via callback)     │
//	│  /api/v1      run history (registered via callback)           │
//	│  anything else → 404 {"error":"not found"}                    │
//	└───────────────────────────────────────────────────────────────┘
//
// Lifecycle:
//
//	srv, err := server.NewServer(cfg, func(root, api *gin.RouterGroup) {
//	    handlers.RegisterRoutes(root, api, h)
//	})
//	go func() { _ = srv.Start(ctx) }()
//	<-shutdownCh
//	srv.Stop(ctx)
//
// # Tool server
//
// ToolServer is a second, fire-and-forget listener on tools.port (N8N_MCP_PORT,
// default 8003) that describes the harness to tool-calling clients:
//
//	GET  /                         readiness banner
//	GET  /health                   {"status":"healthy","mcp_server":"running"}
//	GET  /mcp/status               server name, version and available tools
//	GET  /tools                    one entry per registered keyword
//	POST /tools/validate_envelope  checks a response body against the envelope contract
//
// Its failures are logged and never stop the main server.
package server
