// Package envelope validates the response envelope returned by the Events API.
//
// Every API response is a JSON object with the top-level keys
//
//	data, message, level, metadata, notifications, status, summary
//
// Writes (create, update, delete) report status "completed". Reads (get, list)
// have been observed reporting either "perfect" or "completed"; both are accepted.
package envelope

import (
	"encoding/json"
	"fmt"
	"time"

	srvErrors "github.com/eventsqa/harness/pkg/errors"
)

// RequiredKeys are the top-level keys every response must carry.
var RequiredKeys = []string{"data", "message", "level", "metadata", "notifications", "status", "summary"}

type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpGet    Operation = "get"
	OpList   Operation = "list"
)

const (
	StatusCompleted = "completed"
	StatusPerfect   = "perfect"
)

// Envelope is the typed form of an API response.
type Envelope struct {
	Data          any    `json:"data"`
	Message       any    `json:"message"`
	Level         any    `json:"level"`
	Metadata      any    `json:"metadata"`
	Notifications any    `json:"notifications"`
	Status        string `json:"status"`
	Summary       any    `json:"summary"`
}

// Items returns data as a list of objects. A single object is returned as a one-element list.
func (e *Envelope) Items() ([]map[string]any, error) {
	switch d := e.Data.(type) {
	case nil:
		return nil, nil
	case map[string]any:
		return []map[string]any{d}, nil
	case []any:
		items := make([]map[string]any, 0, len(d))
		for i, v := range d {
			obj, ok := v.(map[string]any)
			if !ok {
				return nil, srvErrors.NewValidationError("data[%d] should be an object, got %T", i, v)
			}
			items = append(items, obj)
		}
		return items, nil
	default:
		return nil, srvErrors.NewValidationError("'data' should be a list, got %T", e.Data)
	}
}

// Decode parses body and validates its shape.
func Decode(body []byte) (*Envelope, error) {
	var raw map[string]any
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, srvErrors.NewValidationError("expected JSON object: %v", err)
	}
	if err := Validate(raw); err != nil {
		return nil, err
	}
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	return &env, nil
}

// Validate checks that payload is a JSON object holding every required key.
func Validate(payload any) error {
	obj, ok := payload.(map[string]any)
	if !ok {
		return srvErrors.NewValidationError("expected JSON object, got %T", payload)
	}
	for _, key := range RequiredKeys {
		if _, found := obj[key]; !found {
			return srvErrors.NewValidationError("missing top-level key: %s", key)
		}
	}
	return nil
}

// AcceptedStatuses returns the status values valid for op.
func AcceptedStatuses(op Operation) []string {
	switch op {
	case OpGet, OpList:
		return []string{StatusPerfect, StatusCompleted}
	default:
		return []string{StatusCompleted}
	}
}

// ExpectStatus validates payload and checks its status against op.
func ExpectStatus(payload any, op Operation) error {
	if err := Validate(payload); err != nil {
		return err
	}
	status, _ := payload.(map[string]any)["status"].(string)
	for _, s := range AcceptedStatuses(op) {
		if status == s {
			return nil
		}
	}
	return srvErrors.NewValidationError("unexpected status %q for %s, want one of %v", status, op, AcceptedStatuses(op))
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04",
	time.DateOnly,
}

// ParseTimestamp parses the ISO-8601 forms produced by the API.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not an ISO-8601 timestamp: %q", s)
}

// ValidateTimestamps checks createdAt and updatedAt when present.
func ValidateTimestamps(entity map[string]any) error {
	for _, key := range []string{"createdAt", "updatedAt"} {
		v, found := entity[key]
		if !found {
			continue
		}
		s, ok := v.(string)
		if !ok {
			return srvErrors.NewValidationError("%s should be a string", key)
		}
		if _, err := ParseTimestamp(s); err != nil {
			return srvErrors.NewValidationError("%s is not valid ISO datetime: %s", key, s)
		}
	}
	return nil
}
