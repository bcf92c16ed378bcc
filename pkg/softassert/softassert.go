// Package softassert collects assertion failures instead of stopping at the first one.
//
// A SoftAssert is in the accumulating state until AssertAll is called. Every
// assertion is evaluated immediately; failures are recorded in order and logged.
// AssertAll returns a single *Error describing all of them, or nil.
//
//	sa := softassert.New()
//	sa.True(visible, "Manage Accounts button is not visible")
//	sa.Equal(page.URL(), want, "URL does not match expected value")
//	if err := sa.AssertAll(); err != nil {
//	    return err
//	}
package softassert

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"go.uber.org/zap"
)

const failurePrefix = "SOFT ASSERT FAILED: "

// Error aggregates every failed soft assertion.
type Error struct {
	Failures []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d soft assertion(s) failed:\n  %s", len(e.Failures), strings.Join(e.Failures, "\n  "))
}

type SoftAssert struct {
	mu       sync.Mutex
	failures []string
	log      *zap.SugaredLogger
}

func New() *SoftAssert {
	return &SoftAssert{log: zap.S().Named("soft_assert")}
}

func (s *SoftAssert) record(msg string) {
	failure := failurePrefix + msg
	s.mu.Lock()
	s.failures = append(s.failures, failure)
	s.mu.Unlock()
	s.log.Warn(failure)
}

func message(custom []string, def string) string {
	if len(custom) > 0 && custom[0] != "" {
		return custom[0]
	}
	return def
}

func (s *SoftAssert) True(condition bool, msg ...string) {
	if !condition {
		s.record(message(msg, "Condition should be True"))
	}
}

func (s *SoftAssert) False(condition bool, msg ...string) {
	if condition {
		s.record(message(msg, "Condition should be False"))
	}
}

func (s *SoftAssert) Equal(actual, expected any, msg ...string) {
	if !equal(actual, expected) {
		s.record(message(msg, fmt.Sprintf("Expected %v, but got %v", expected, actual)))
	}
}

func (s *SoftAssert) NotEqual(actual, expected any, msg ...string) {
	if equal(actual, expected) {
		s.record(message(msg, fmt.Sprintf("Expected not %v, but got %v", expected, actual)))
	}
}

// Contains asserts that item is an element of container (slice, array or map key)
// or a substring when both are strings.
func (s *SoftAssert) Contains(container, item any, msg ...string) {
	if !contains(container, item) {
		s.record(message(msg, fmt.Sprintf("Expected %v to be in %v", item, container)))
	}
}

func (s *SoftAssert) NotContains(container, item any, msg ...string) {
	if contains(container, item) {
		s.record(message(msg, fmt.Sprintf("Expected %v to not be in %v", item, container)))
	}
}

func (s *SoftAssert) Nil(value any, msg ...string) {
	if !isNil(value) {
		s.record(message(msg, fmt.Sprintf("Expected nil, but got %v", value)))
	}
}

func (s *SoftAssert) NotNil(value any, msg ...string) {
	if isNil(value) {
		s.record(message(msg, "Expected not nil, but got nil"))
	}
}

// NoError records err when it is non-nil.
func (s *SoftAssert) NoError(err error, msg ...string) {
	if err != nil {
		s.record(message(msg, "Unexpected error") + ": " + err.Error())
	}
}

func (s *SoftAssert) Custom(condition bool, msg string) {
	if !condition {
		s.record(msg)
	}
}

// AssertAll finalizes the accumulated state.
func (s *SoftAssert) AssertAll() error {
	failures := s.Failures()
	if len(failures) == 0 {
		return nil
	}
	s.log.Errorw("soft assertions failed", "count", len(failures), "failures", failures)
	return &Error{Failures: failures}
}

func (s *SoftAssert) Failures() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.failures))
	copy(out, s.failures)
	return out
}

func (s *SoftAssert) HasFailures() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.failures) > 0
}

func (s *SoftAssert) Clear() {
	s.mu.Lock()
	s.failures = nil
	s.mu.Unlock()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	}
	return false
}

// equal compares numbers by value regardless of their Go type, so a decoded JSON
// float64 4 equals the literal 4. Everything else goes through reflect.DeepEqual.
func equal(a, b any) bool {
	av, aok := number(a)
	bv, bok := number(b)
	if aok && bok {
		return av == bv
	}
	return reflect.DeepEqual(a, b)
}

func number(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func contains(container, item any) bool {
	if cs, ok := container.(string); ok {
		is, ok := item.(string)
		return ok && strings.Contains(cs, is)
	}
	cv := reflect.ValueOf(container)
	switch cv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < cv.Len(); i++ {
			if equal(cv.Index(i).Interface(), item) {
				return true
			}
		}
	case reflect.Map:
		for _, k := range cv.MapKeys() {
			if equal(k.Interface(), item) {
				return true
			}
		}
	}
	return false
}
