// Package services implements the test execution layer of the harness.
//
// # Service Dependency Graph
//
//	Dispatcher / Handlers
//	    │
//	    ▼
//	Services Layer
//	    ├── Controller ──► Scheduler, UIRunner, RunRecorder
//	    └── RunService ──► Store
//
// # Controller
//
// Controller routes a test to one of two paths depending on its mode:
//
//	mode "ui"  ──► UIRunner.Run            (StubUIRunner unless browser automation is enabled)
//	mode "api" ──► go test subprocess       (one suite focus per test type)
//	other      ──► InvalidTestTypeError
//
// The API path resolves the suite file from the payload's test_type:
//
//	┌─────────────┬─────────────────────┬──────────────────┐
//	│ test_type   │ file (runner pkg)   │ ginkgo focus     │
//	├─────────────┼─────────────────────┼──────────────────┤
//	│ account     │ account_test.go     │ Account API      │
//	│ user        │ user_test.go        │ User API         │
//	│ profile     │ profile_test.go     │ Profile API      │
//	│ tagaffinity │ tagaffinity_test.go │ TagAffinity API  │
//	│ event       │ event_test.go       │ Event API        │
//	│ userevent   │ userevent_test.go   │ UserEvent API    │
//	│ url         │ url_test.go         │ Url API          │
//	│ crawl       │ crawl_test.go       │ Crawl API        │
//	└─────────────┴─────────────────────┴──────────────────┘
//
// A missing or unknown test_type uses the account suite. When the file does not
// exist the run fails fast with TestFileNotFoundError inside the result.
//
// The subprocess is:
//
//	<runner.command...> <runner.package> -ginkgo.focus=^<focus>\b
//
// The focus is anchored so that "Event API" does not also select "UserEvent API".
//
// started in runner.project-root with the parent environment plus TEST_DATA holding
// the JSON payload. Exit code 0 is success. stdout, stderr and the exit code are
// returned verbatim. Launch failures and timeouts (runner.timeout) become failed
// results; they are never returned as errors.
//
// Every run goes through the scheduler, so runner.workers bounds the number of
// concurrent subprocesses and browser sessions. Finished runs are handed to the
// RunRecorder; recording errors are logged only.
//
// Usage:
//
//	ctrl := services.NewController(cfg.Runner, sched,
//	    services.WithRecorder(runService),
//	    services.WithUIRunner(uiRunner),
//	)
//	result, err := ctrl.RunTest(ctx, "api", map[string]any{"test_type": "user"})
//
// # RunService
//
// RunService is a thin facade over the run store used by the history endpoints.
//
//	result, err := runService.List(ctx, services.RunListParams{
//	    Keywords: []string{"create_account"},
//	    Limit:    20,
//	})
package services
