package services

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/eventsqa/harness/internal/config"
	"github.com/eventsqa/harness/internal/models"
	"github.com/eventsqa/harness/internal/util"
	srvErrors "github.com/eventsqa/harness/pkg/errors"
	"github.com/eventsqa/harness/pkg/scheduler"
)

// RunRecorder persists finished runs.
type RunRecorder interface {
	Save(ctx context.Context, run *models.TestRun) error
}

// Controller routes a test to the UI runner or to an isolated go test subprocess.
type Controller struct {
	runner    config.Runner
	scheduler *scheduler.Scheduler
	ui        UIRunner
	recorder  RunRecorder
	log       *zap.SugaredLogger
}

type ControllerOption func(*Controller)

func WithUIRunner(r UIRunner) ControllerOption {
	return func(c *Controller) { c.ui = r }
}

func WithRecorder(r RunRecorder) ControllerOption {
	return func(c *Controller) { c.recorder = r }
}

func NewController(runner config.Runner, s *scheduler.Scheduler, opts ...ControllerOption) *Controller {
	c := &Controller{
		runner:    runner,
		scheduler: s,
		ui:        StubUIRunner{},
		log:       zap.S().Named("controller"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunTest executes data in the given mode. Only an unknown mode is returned as an error;
// every other failure is reported through the result.
func (c *Controller) RunTest(ctx context.Context, mode string, data map[string]any) (*models.TestResult, error) {
	return c.Run(ctx, "", mode, data)
}

// Run is RunTest with the dispatching keyword recorded in the run history.
func (c *Controller) Run(ctx context.Context, keyword, mode string, data map[string]any) (*models.TestResult, error) {
	m, err := models.ParseMode(mode)
	if err != nil {
		c.log.Errorw("invalid test type", "mode", mode)
		return nil, srvErrors.NewInvalidTestTypeError(mode)
	}

	data = maps.Clone(data)
	if data == nil {
		data = map[string]any{}
	}
	testType := testTypeOf(data)
	if keyword == "" {
		keyword = "create_" + string(testType)
	}

	run, err := models.NewTestRun(keyword, m, testType, data)
	if err != nil {
		return models.NewErrorResult(m, testType, err), nil
	}

	c.log.Infow("running test", "run_id", run.ID, "keyword", keyword, "mode", m, "test_type", testType)

	future := c.scheduler.Submit(fmt.Sprintf("%s/%s", keyword, run.ID), func(jobCtx context.Context) (any, error) {
		if m == models.ModeUI {
			return c.runUI(jobCtx, testType, data), nil
		}
		return c.runAPI(jobCtx, testType, data), nil
	})

	v, err := scheduler.Wait(ctx, future)
	result, _ := v.(*models.TestResult)
	switch {
	case err != nil && result == nil:
		result = models.NewErrorResult(m, testType, fmt.Errorf("test run aborted: %w", err))
	case result == nil:
		result = models.NewErrorResult(m, testType, errors.New("test run produced no result"))
	}
	result.Mode = m
	result.TestType = testType

	run.Finish(result)
	result.Duration = run.Duration()
	c.record(ctx, run)

	if !result.Succeeded() {
		c.log.Warnw("test failed", "run_id", run.ID, "status", result.Status, "error", result.Error, "duration", result.Duration)
		return result, nil
	}
	c.log.Infow("test finished", "run_id", run.ID, "status", result.Status, "duration", result.Duration)
	return result, nil
}

func (c *Controller) runUI(ctx context.Context, testType models.TestType, data map[string]any) *models.TestResult {
	result, err := c.ui.Run(ctx, testType, data)
	if err != nil {
		c.log.Errorw("ui test failed", "test_type", testType, "error", err)
		return models.NewErrorResult(models.ModeUI, testType, err)
	}
	return result
}

func (c *Controller) runAPI(ctx context.Context, testType models.TestType, data map[string]any) *models.TestResult {
	suiteDir := filepath.Join(c.runner.ProjectRoot, c.runner.Package)
	target, err := resolveTarget(suiteDir, testType)
	if err != nil {
		c.log.Errorw("cannot resolve test target", "test_type", testType, "error", err)
		return models.NewErrorResult(models.ModeAPI, testType, err)
	}

	if c.runner.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.runner.Timeout)
		defer cancel()
	}

	argv := append(append([]string{}, c.runner.Command...), c.runner.Package, focusArg(target.Focus))
	c.log.Debugw("starting test process", "argv", argv, "dir", c.runner.ProjectRoot, "file", target.File)

	res, err := runCommand(ctx, c.runner.ProjectRoot, argv, data)
	if err != nil {
		c.log.Errorw("test process error", "test_type", testType, "error", err)
		result := models.NewErrorResult(models.ModeAPI, testType, err)
		if res != nil {
			result.Stdout, result.Stderr = res.stdout, res.stderr
			result.ReturnCode = util.IntPtr(res.exitCode)
		}
		return result
	}

	code := res.exitCode
	result := &models.TestResult{
		Stdout:     res.stdout,
		Stderr:     res.stderr,
		ReturnCode: util.IntPtr(code),
		Mode:       models.ModeAPI,
		TestType:   testType,
	}
	if code == 0 {
		result.Status = models.StatusSuccess
		result.Message = fmt.Sprintf("%s API test passed", testType)
	} else {
		result.Status = models.StatusError
		result.Message = fmt.Sprintf("%s API test failed with exit code %d", testType, code)
		c.log.Debugw("test process output", "test_type", testType, "stderr", util.Truncate(res.stderr, 2000))
	}
	return result
}

func (c *Controller) record(ctx context.Context, run *models.TestRun) {
	if c.recorder == nil {
		return
	}
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := c.recorder.Save(saveCtx, run); err != nil {
		c.log.Errorw("failed to record run", "run_id", run.ID, "error", err)
	}
}
