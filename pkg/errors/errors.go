package errors

import (
	"errors"
	"fmt"
)

// InvalidTestTypeError is returned when a run is requested for a mode other than "ui" or "api".
type InvalidTestTypeError struct {
	testType string
}

func NewInvalidTestTypeError(testType string) *InvalidTestTypeError {
	return &InvalidTestTypeError{testType: testType}
}

func (e *InvalidTestTypeError) Error() string {
	return fmt.Sprintf("invalid test type: %s", e.testType)
}

func IsInvalidTestTypeError(err error) bool {
	var e *InvalidTestTypeError
	return errors.As(err, &e)
}

// TestFileNotFoundError is returned when the suite backing a test type is missing on disk.
type TestFileNotFoundError struct {
	path string
}

func NewTestFileNotFoundError(path string) *TestFileNotFoundError {
	return &TestFileNotFoundError{path: path}
}

func (e *TestFileNotFoundError) Error() string {
	return fmt.Sprintf("test file not found: %s", e.path)
}

type ResourceNotFoundError struct {
	kind string
	id   string
}

func NewResourceNotFoundError(kind, id string) *ResourceNotFoundError {
	return &ResourceNotFoundError{kind: kind, id: id}
}

func NewRunNotFoundError(id string) *ResourceNotFoundError {
	return NewResourceNotFoundError("run", id)
}

func (e *ResourceNotFoundError) Error() string {
	if e.id == "" {
		return fmt.Sprintf("%s not found", e.kind)
	}
	return fmt.Sprintf("%s %s not found", e.kind, e.id)
}

func IsResourceNotFoundError(err error) bool {
	var e *ResourceNotFoundError
	return errors.As(err, &e)
}

// ValidationError reports a response that does not satisfy the API contract.
type ValidationError struct {
	msg string
}

func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string {
	return e.msg
}

func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}
