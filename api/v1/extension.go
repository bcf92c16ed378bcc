package v1

import (
	"encoding/json"

	"github.com/eventsqa/harness/internal/models"
)

// NewRunFromModel converts a models.TestRun to an API Run.
func NewRunFromModel(r models.TestRun) Run {
	run := Run{
		ID:         r.ID.String(),
		Keyword:    r.Keyword,
		Mode:       string(r.Mode),
		TestType:   string(r.TestType),
		Status:     r.Status,
		ReturnCode: r.ReturnCode,
		Stdout:     r.Stdout,
		Stderr:     r.Stderr,
		Error:      r.Error,
		StartedAt:  r.StartedAt,
		DurationMS: r.Duration().Milliseconds(),
	}

	if !r.FinishedAt.IsZero() {
		finished := r.FinishedAt
		run.FinishedAt = &finished
	}

	if len(r.Payload) > 0 {
		var payload map[string]any
		if err := json.Unmarshal(r.Payload, &payload); err == nil {
			run.Payload = payload
		}
	}

	return run
}

// Payload converts a CreateAccountRequest into the payload handed to the dispatcher.
func (r CreateAccountRequest) Payload() map[string]any {
	return map[string]any{
		"expired_at": r.ExpiredAt,
		"ui_test":    r.UITest,
	}
}

// Keyword returns the action, defaulting to create_user.
func (r CreateUserRequest) Keyword() string {
	if r.Action == "" {
		return "create_user"
	}
	return r.Action
}

func (r CreateUserRequest) Payload() map[string]any {
	return map[string]any{
		"action":       r.Keyword(),
		"ui_test":      r.UITest,
		"username":     r.Username,
		"email":        r.Email,
		"first_name":   r.FirstName,
		"last_name":    r.LastName,
		"gender":       r.Gender,
		"birth":        r.Birth,
		"agreed_terms": r.AgreedTerms,
		"salary":       r.Salary,
		"id":           r.ID,
	}
}
