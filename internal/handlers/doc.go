// Package handlers implements the HTTP API layer of the test harness.
//
// Handlers validate requests, hand keywords to the dispatcher and convert run
// history records to API types. They do not run tests themselves.
//
//	┌─────────────────────────────────────────────────────────────────┐
//	│                     HTTP Request (Gin)                          │
//	└─────────────────────────────────────────────────────────────────┘
//	                              │
//	                              ▼
//	┌─────────────────────────────────────────────────────────────────┐
//	│                      Handler (this package)                     │
//	│  - Request binding and validation                               │
//	│  - Error mapping to HTTP status codes                           │
//	│  - Model-to-API conversion                                      │
//	└─────────────────────────────────────────────────────────────────┘
//	                 │                               │
//	                 ▼                               ▼
//	┌───────────────────────────────┐ ┌───────────────────────────────┐
//	│  Dispatcher (keywords)        │ │  RunService (history)         │
//	└───────────────────────────────┘ └───────────────────────────────┘
//
// # Endpoints
//
//	GET  /health               {"status":"healthy"}
//	POST /create_account       {status, message, test_result, timestamp}
//	POST /create_user          same as above, keyword taken from "action"
//	POST /run_test             {"status":"ok","result":{...}}
//	GET  /api/v1/runs          ?keyword=&status=&limit=&offset=
//	GET  /api/v1/runs/:id
//
// # Error Responses
//
//	400  binding errors and malformed run ids
//	404  unknown run id
//	500  store failures
//
// All errors are returned as {"error": "<message>"}.
//
// A test that fails is not an HTTP error: the keyword endpoints answer 200 and
// carry the failure in the status and test_result fields.
package handlers
