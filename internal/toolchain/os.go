package toolchain

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// OSRunner implements Runner using real subprocesses
type OSRunner struct{}

// NewOSRunner creates a new OSRunner
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

// Run executes the tool and captures combined stdout+stderr.
func (r *OSRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err := cmd.Run()
	if err == nil {
		return Result{ExitCode: 0, Output: out.String()}, nil
	}

	// The context killed the process: surface that, not the exit status.
	if ctx.Err() != nil {
		return Result{ExitCode: -1, Output: out.String()}, fmt.Errorf("%s interrupted: %w", name, ctx.Err())
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return Result{ExitCode: exitErr.ExitCode(), Output: out.String()}, nil
	}

	return Result{ExitCode: -1, Output: out.String()}, fmt.Errorf("failed to run %s: %w", name, err)
}

// LookPath resolves the tool on PATH.
func (r *OSRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}
