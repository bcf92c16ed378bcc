// Package dispatch maps test keywords to the handlers that run them.
//
// Handlers are registered by keyword. Unknown keywords are echoed back as
//
//	{"keyword": K, "received": payload}
//
// The built-in create_account and create_user handlers tag the payload with its
// test_type, pick the mode from the ui_test flag and forward it to the controller.
package dispatch

import (
	"context"
	"maps"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/eventsqa/harness/internal/models"
)

const (
	KeywordCreateAccount = "create_account"
	KeywordCreateUser    = "create_user"
)

// Runner executes a normalized test payload.
type Runner interface {
	Run(ctx context.Context, keyword, mode string, data map[string]any) (*models.TestResult, error)
}

// Handler runs one keyword. The returned map always has a "status" key.
type Handler func(ctx context.Context, keyword string, payload map[string]any) map[string]any

type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]Handler
	log      *zap.SugaredLogger
}

// New returns a dispatcher with the built-in keywords bound to runner.
func New(runner Runner) *Dispatcher {
	d := &Dispatcher{
		handlers: map[string]Handler{},
		log:      zap.S().Named("dispatch"),
	}
	d.Register(KeywordCreateAccount, EntityHandler(runner, models.TestTypeAccount))
	d.Register(KeywordCreateUser, EntityHandler(runner, models.TestTypeUser))
	return d
}

// Register binds keyword to h, replacing any previous handler.
func (d *Dispatcher) Register(keyword string, h Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[keyword] = h
}

// Keywords returns the registered keywords in order.
func (d *Dispatcher) Keywords() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return slices.Sorted(maps.Keys(d.handlers))
}

func (d *Dispatcher) Dispatch(ctx context.Context, keyword string, payload map[string]any) map[string]any {
	d.mu.RLock()
	h, ok := d.handlers[keyword]
	d.mu.RUnlock()

	if !ok {
		d.log.Infow("unknown keyword", "keyword", keyword)
		return map[string]any{"keyword": keyword, "received": payload}
	}

	d.log.Infow("dispatching", "keyword", keyword)
	return h(ctx, keyword, payload)
}

// ModeOf returns "ui" when payload carries ui_test=true and "api" otherwise.
func ModeOf(payload map[string]any) models.Mode {
	if ui, ok := payload["ui_test"].(bool); ok && ui {
		return models.ModeUI
	}
	return models.ModeAPI
}

// EntityHandler forwards the payload to runner with test_type set to testType.
func EntityHandler(runner Runner, testType models.TestType) Handler {
	return func(ctx context.Context, keyword string, payload map[string]any) map[string]any {
		data := maps.Clone(payload)
		if data == nil {
			data = map[string]any{}
		}
		data["test_type"] = string(testType)
		mode := ModeOf(data)

		result, err := runner.Run(ctx, keyword, string(mode), data)
		if err != nil {
			zap.S().Named("dispatch").Errorw("run failed", "keyword", keyword, "error", err)
			return map[string]any{"status": models.StatusError, "message": err.Error()}
		}
		return resultMap(result)
	}
}

func resultMap(r *models.TestResult) map[string]any {
	m, err := models.ToMap(r)
	if err != nil {
		return map[string]any{"status": r.Status, "message": r.Message}
	}
	return m
}
