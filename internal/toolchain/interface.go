package toolchain

import (
	"context"
)

// Invocation describes one external tool call.
type Invocation struct {
	Dir  string
	Name string
	Args []string
}

// Result carries the outcome of a completed tool call.
//
// A non-zero exit code is a normal result, not an error: the build system
// signals compile failures and cppcheck signals findings this way. The error
// return of Run is reserved for the tool not running at all (missing binary,
// permission problem, cancelled context).
type Result struct {
	ExitCode int
	Output   string // combined stdout+stderr
}

// Runner provides an abstraction over external tool execution for testability
type Runner interface {
	// Run executes name with args in dir, blocking until the tool exits.
	Run(ctx context.Context, dir, name string, args ...string) (Result, error)

	// LookPath reports where name resolves on PATH, or an error if it does not.
	LookPath(name string) (string, error)
}
