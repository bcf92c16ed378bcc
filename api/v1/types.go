package v1

import "time"

// CreateAccountRequest is the body of POST /create_account.
type CreateAccountRequest struct {
	ExpiredAt string `json:"expired_at" binding:"required"`
	UITest    bool   `json:"ui_test"`
}

// CreateUserRequest is the body of POST /create_user.
type CreateUserRequest struct {
	Action      string `json:"action"`
	UITest      bool   `json:"ui_test"`
	Username    string `json:"username" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	Gender      string `json:"gender"`
	Birth       string `json:"birth"`
	AgreedTerms bool   `json:"agreed_terms"`
	Salary      int    `json:"salary"`
	ID          string `json:"id"`
}

// RunTestRequest is the body of POST /run_test.
type RunTestRequest struct {
	Keyword string         `json:"keyword" binding:"required"`
	Payload map[string]any `json:"payload"`
}

// TestResponse wraps the outcome of a keyword endpoint.
type TestResponse struct {
	Status     string         `json:"status"`
	Message    string         `json:"message"`
	TestResult map[string]any `json:"test_result"`
	Timestamp  time.Time      `json:"timestamp"`
}

// LegacyResponse is returned by POST /run_test.
type LegacyResponse struct {
	Status string         `json:"status"`
	Result map[string]any `json:"result"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type Run struct {
	ID         string         `json:"id"`
	Keyword    string         `json:"keyword"`
	Mode       string         `json:"mode"`
	TestType   string         `json:"test_type,omitempty"`
	Status     string         `json:"status"`
	ReturnCode *int           `json:"return_code,omitempty"`
	Stdout     string         `json:"stdout,omitempty"`
	Stderr     string         `json:"stderr,omitempty"`
	Error      string         `json:"error,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	StartedAt  time.Time      `json:"started_at"`
	FinishedAt *time.Time     `json:"finished_at,omitempty"`
	DurationMS int64          `json:"duration_ms"`
}

// RunListParams are the query parameters of GET /api/v1/runs.
type RunListParams struct {
	Keyword []string `form:"keyword"`
	Status  []string `form:"status"`
	Mode    []string `form:"mode" binding:"omitempty,dive,oneof=ui api"`
	Limit   int      `form:"limit" binding:"omitempty,min=1"`
	Offset  int      `form:"offset" binding:"omitempty,min=0"`
}

type RunListResponse struct {
	Total  int   `json:"total"`
	Limit  int   `json:"limit"`
	Offset int   `json:"offset"`
	Runs   []Run `json:"runs"`
}
