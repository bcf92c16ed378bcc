package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Mode string

const (
	ModeUI  Mode = "ui"
	ModeAPI Mode = "api"
)

func ParseMode(s string) (Mode, error) {
	switch s {
	case "ui":
		return ModeUI, nil
	case "api":
		return ModeAPI, nil
	default:
		return "", fmt.Errorf("invalid mode: %s", s)
	}
}

// TestType names the entity a run targets.
type TestType string

const (
	TestTypeAccount     TestType = "account"
	TestTypeUser        TestType = "user"
	TestTypeProfile     TestType = "profile"
	TestTypeTagAffinity TestType = "tagaffinity"
	TestTypeEvent       TestType = "event"
	TestTypeUserEvent   TestType = "userevent"
	TestTypeURL         TestType = "url"
	TestTypeCrawl       TestType = "crawl"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// TestResult is the outcome of one controller run.
type TestResult struct {
	Status     string        `json:"status"`
	Message    string        `json:"message,omitempty"`
	Stdout     string        `json:"stdout,omitempty"`
	Stderr     string        `json:"stderr,omitempty"`
	ReturnCode *int          `json:"return_code,omitempty"`
	Error      string        `json:"error,omitempty"`
	Mode       Mode          `json:"mode,omitempty"`
	TestType   TestType      `json:"test_type,omitempty"`
	Duration   time.Duration `json:"duration_ns,omitempty"`
}

func (r *TestResult) Succeeded() bool {
	return r.Status == StatusSuccess
}

// NewErrorResult builds a failed result carrying err.
func NewErrorResult(mode Mode, testType TestType, err error) *TestResult {
	return &TestResult{
		Status:   StatusError,
		Error:    err.Error(),
		Mode:     mode,
		TestType: testType,
	}
}

// TestRun is a persisted record of a dispatched test.
type TestRun struct {
	ID         uuid.UUID
	Keyword    string
	Mode       Mode
	TestType   TestType
	Status     string
	ReturnCode *int
	Stdout     string
	Stderr     string
	Error      string
	Payload    json.RawMessage
	StartedAt  time.Time
	FinishedAt time.Time
}

func NewTestRun(keyword string, mode Mode, testType TestType, payload map[string]any) (*TestRun, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	return &TestRun{
		ID:        uuid.New(),
		Keyword:   keyword,
		Mode:      mode,
		TestType:  testType,
		Payload:   raw,
		StartedAt: time.Now().UTC(),
	}, nil
}

// Finish copies the outcome of result into the run.
func (r *TestRun) Finish(result *TestResult) {
	r.FinishedAt = time.Now().UTC()
	r.Status = result.Status
	r.ReturnCode = result.ReturnCode
	r.Stdout = result.Stdout
	r.Stderr = result.Stderr
	r.Error = result.Error
}

func (r *TestRun) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
