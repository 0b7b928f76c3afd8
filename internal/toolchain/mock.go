package toolchain

import (
	"context"
	"fmt"
	"sync"
)

// MockRunner implements Runner for testing with scripted results
type MockRunner struct {
	mu      sync.Mutex
	scripts map[string][]scriptedCall
	missing map[string]bool
	calls   []Invocation

	// OnRun, when set, is invoked for every call before the scripted result is
	// returned. Tests use it to fake tool side effects such as the build
	// system writing compile_commands.json.
	OnRun func(inv Invocation)
}

type scriptedCall struct {
	result Result
	err    error
}

// NewMockRunner creates a new MockRunner. Unscripted calls succeed with exit 0.
func NewMockRunner() *MockRunner {
	return &MockRunner{
		scripts: make(map[string][]scriptedCall),
		missing: make(map[string]bool),
	}
}

// Script queues a result for the next call to the named tool.
// Results for a tool are consumed in FIFO order.
func (m *MockRunner) Script(name string, result Result, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.scripts[name] = append(m.scripts[name], scriptedCall{result: result, err: err})
}

// SetMissing makes LookPath fail for the named tool and every Run of it
// return a cannot-invoke error.
func (m *MockRunner) SetMissing(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.missing[name] = true
}

// Calls returns every recorded invocation in order.
func (m *MockRunner) Calls() []Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Invocation, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallsFor returns recorded invocations of the named tool.
func (m *MockRunner) CallsFor(name string) []Invocation {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Invocation
	for _, c := range m.calls {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

func (m *MockRunner) Run(ctx context.Context, dir, name string, args ...string) (Result, error) {
	inv := Invocation{Dir: dir, Name: name, Args: args}

	m.mu.Lock()
	m.calls = append(m.calls, inv)
	missing := m.missing[name]
	var call *scriptedCall
	if queue := m.scripts[name]; len(queue) > 0 {
		call = &queue[0]
		m.scripts[name] = queue[1:]
	}
	hook := m.OnRun
	m.mu.Unlock()

	if hook != nil {
		hook(inv)
	}

	if err := ctx.Err(); err != nil {
		return Result{ExitCode: -1}, fmt.Errorf("%s interrupted: %w", name, err)
	}

	if missing {
		return Result{ExitCode: -1}, fmt.Errorf("failed to run %s: executable file not found in $PATH", name)
	}

	if call != nil {
		return call.result, call.err
	}

	return Result{ExitCode: 0}, nil
}

func (m *MockRunner) LookPath(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.missing[name] {
		return "", fmt.Errorf("%s not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}
