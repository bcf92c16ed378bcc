package services

import (
	"context"

	"github.com/eventsqa/harness/internal/models"
)

// UIRunner executes the browser side of a test.
type UIRunner interface {
	Run(ctx context.Context, testType models.TestType, data map[string]any) (*models.TestResult, error)
}

const uiStubMessage = "UI test executed successfully"

// StubUIRunner reports success without driving a browser.
type StubUIRunner struct{}

func (StubUIRunner) Run(_ context.Context, testType models.TestType, _ map[string]any) (*models.TestResult, error) {
	return &models.TestResult{
		Status:   models.StatusSuccess,
		Message:  uiStubMessage,
		Mode:     models.ModeUI,
		TestType: testType,
	}, nil
}
