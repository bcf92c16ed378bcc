// Package config defines the configuration structure for the test harness.
//
// Configuration is organized into logical sections and loaded once at the entry point.
// The resulting *Configuration is passed explicitly to every component that needs it.
//
// # Configuration Structure
//
//	Configuration
//	├── Server         - HTTP server settings
//	├── Runner         - Subprocess test runner
//	├── Browser        - Browser session (UI tests)
//	├── API            - REST API under test
//	├── Mongo          - Document store cleaned between tests
//	├── Tools          - Side listener exposing tool/status endpoints
//	├── LogFormat      - Logging format
//	└── LogLevel       - Logging verbosity
//
// # Sources and precedence
//
//  1. Command line flags (when changed)
//  2. Environment variables: HARNESS_<SECTION>_<KEY> or the legacy names below
//  3. A dotenv file (".env" by default) loaded into the environment before parsing
//  4. Struct defaults (creasty/defaults tags)
//
// # Legacy environment names
//
//	┌────────────────┬──────────────────┬───────────────────────────┐
//	│ Variable       │ Key              │ Default                   │
//	├────────────────┼──────────────────┼───────────────────────────┤
//	│ BASE_URL       │ browser.base-url │ http://localhost:4200     │
//	│ HEADLESS       │ browser.headless │ false                     │
//	│ SLOW_MO        │ browser.slow-mo  │ 0                         │
//	│ API_BASE_URL   │ api.base-url     │ http://localhost:5500     │
//	│ MONGO_URI      │ mongo.uri        │ mongodb://localhost:27017 │
//	│ MONGO_DATABASE │ mongo.database   │ events_test               │
//	│ N8N_MCP_PORT   │ tools.port       │ 8003                      │
//	│ N8N_REST_PORT  │ server.http-port │ 8000                      │
//	└────────────────┴──────────────────┴───────────────────────────┘
//
// BASE_URL falls back to its default everywhere except where a caller asks for it
// explicitly through RequireBaseURL (the UI suites do).
//
// # Debug Logging
//
//	zap.S().Infow("configuration loaded", "config", cfg.DebugMap())
package config
