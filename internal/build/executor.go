// Package build runs the external build system for a single unit.
package build

import (
	"context"
	"fmt"
	"strconv"

	"github.com/lvezzaro/buildsweep/internal/config"
	"github.com/lvezzaro/buildsweep/internal/filesystem"
	"github.com/lvezzaro/buildsweep/internal/models"
	"github.com/lvezzaro/buildsweep/internal/toolchain"
)

// Executor builds one unit from clean state.
type Executor struct {
	fs     filesystem.FileSystem
	runner toolchain.Runner
	cfg    *config.Config
}

// NewExecutor creates a new Executor
func NewExecutor(fs filesystem.FileSystem, runner toolchain.Runner, cfg *config.Config) *Executor {
	return &Executor{
		fs:     fs,
		runner: runner,
		cfg:    cfg,
	}
}

// Build configures and compiles the unit, requesting the build-command
// manifest as a side effect of the configure step.
//
// The unit's build directory is destroyed and recreated first so no stale
// state leaks into the manifest used by analysis. Any failure, including the
// tools not running at all, is returned as data; Build never returns an
// error.
func (e *Executor) Build(ctx context.Context, unit *models.Unit) *models.BuildOutcome {
	buildDir := unit.BuildDir(e.cfg.BuildDirName)

	if err := e.fs.RemoveAll(buildDir); err != nil {
		return &models.BuildOutcome{
			Diagnostic: fmt.Sprintf("failed to reset build directory %s: %v", buildDir, err),
		}
	}
	if err := e.fs.MkdirAll(buildDir, 0755); err != nil {
		return &models.BuildOutcome{
			Diagnostic: fmt.Sprintf("failed to create build directory %s: %v", buildDir, err),
		}
	}

	configure, err := e.runner.Run(ctx, unit.RootPath, e.cfg.CMakeBin,
		"-S", unit.RootPath,
		"-B", buildDir,
		"-DCMAKE_EXPORT_COMPILE_COMMANDS=ON")
	if err != nil {
		return &models.BuildOutcome{
			Diagnostic: fmt.Sprintf("configure step could not run: %v\n%s", err, configure.Output),
		}
	}
	if configure.ExitCode != 0 {
		return &models.BuildOutcome{
			Diagnostic: fmt.Sprintf("configure step exited %d\n%s", configure.ExitCode, configure.Output),
		}
	}

	compile, err := e.runner.Run(ctx, unit.RootPath, e.cfg.CMakeBin,
		"--build", buildDir,
		"--parallel", strconv.Itoa(e.cfg.Jobs))
	if err != nil {
		return &models.BuildOutcome{
			Diagnostic: fmt.Sprintf("build step could not run: %v\n%s", err, compile.Output),
		}
	}
	if compile.ExitCode != 0 {
		return &models.BuildOutcome{
			Diagnostic: fmt.Sprintf("build step exited %d\n%s", compile.ExitCode, compile.Output),
		}
	}

	return &models.BuildOutcome{
		Succeeded:  true,
		Diagnostic: configure.Output + compile.Output,
	}
}
