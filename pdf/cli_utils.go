package pdf

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"
)

// CLI operation timeout constants
const (
	DefaultCLITimeout = 120 * time.Second
	VersionTimeout    = 10 * time.Second

	// waitDelay bounds how long we keep reading output after the process was killed
	waitDelay = 2 * time.Second
)

// execCommandWithTimeout executes a command with a timeout. The command is
// also killed when the parent context is cancelled.
func execCommandWithTimeout(parent context.Context, timeout time.Duration, name string, args ...string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(parent, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay
	output, err := cmd.CombinedOutput()

	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return output, fmt.Errorf("%w: command timed out after %v", ErrConversionTimeout, timeout)
	case errors.Is(ctx.Err(), context.Canceled):
		return output, fmt.Errorf("%w: %w", ErrConversionCanceled, ctx.Err())
	}

	if err != nil {
		return output, fmt.Errorf("command failed: %w", err)
	}

	return output, nil
}
