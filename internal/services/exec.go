package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"time"
)

// TestDataEnv carries the JSON encoded payload into the test subprocess.
const TestDataEnv = "TEST_DATA"

type execResult struct {
	stdout   string
	stderr   string
	exitCode int
}

// runCommand runs argv in dir with the current environment plus TEST_DATA.
// A non-zero exit is reported through exitCode; err is only set when the
// process could not be started or was killed by ctx.
func runCommand(ctx context.Context, dir string, argv []string, data map[string]any) (*execResult, error) {
	if len(argv) == 0 {
		return nil, errors.New("empty command")
	}

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to encode test data: %w", err)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir
	cmd.Env = append(os.Environ(), TestDataEnv+"="+string(payload))
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = 5 * time.Second

	err = cmd.Run()
	res := &execResult{stdout: stdout.String(), stderr: stderr.String()}

	if ctxErr := ctx.Err(); ctxErr != nil {
		res.exitCode = -1
		return res, fmt.Errorf("test process stopped: %w", ctxErr)
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return res, nil
	case errors.As(err, &exitErr):
		res.exitCode = exitErr.ExitCode()
		return res, nil
	default:
		return nil, fmt.Errorf("failed to launch %s: %w", argv[0], err)
	}
}
