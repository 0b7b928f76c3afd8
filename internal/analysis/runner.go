// Package analysis locates build-command manifests and drives the external
// static-analysis engine against them.
package analysis

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/lvezzaro/buildsweep/internal/config"
	"github.com/lvezzaro/buildsweep/internal/filesystem"
	"github.com/lvezzaro/buildsweep/internal/models"
	"github.com/lvezzaro/buildsweep/internal/toolchain"
)

// enabledChecks is the fixed category set for every analysis run.
const enabledChecks = "style,warning,performance,portability"

// Runner invokes the analysis engine for one unit.
type Runner struct {
	fs    filesystem.FileSystem
	tools toolchain.Runner
	cfg   *config.Config
}

// NewRunner creates a new Runner
func NewRunner(fs filesystem.FileSystem, tools toolchain.Runner, cfg *config.Config) *Runner {
	return &Runner{
		fs:    fs,
		tools: tools,
		cfg:   cfg,
	}
}

// Analyze runs the engine against the located manifest with the MISRA addon
// attached and the XML report written into the unit directory.
//
// A non-zero engine exit means findings were raised; that is recorded as a
// failed outcome, not an error. Inability to invoke the engine at all is a
// distinct failure class carried in the diagnostic. Neither stops the sweep.
func (r *Runner) Analyze(ctx context.Context, unit *models.Unit, manifest string) *models.AnalysisOutcome {
	addonPath, err := WriteAddonFile(r.fs, unit.BuildDir(r.cfg.BuildDirName), r.cfg.RulesPath)
	if err != nil {
		return &models.AnalysisOutcome{
			Diagnostic: fmt.Sprintf("analysis engine could not run: %v", err),
		}
	}

	reportPath := filepath.Join(unit.RootPath, r.cfg.ReportName)

	result, err := r.tools.Run(ctx, unit.RootPath, r.cfg.CppcheckBin,
		"--project="+manifest,
		"--enable="+enabledChecks,
		"--inconclusive",
		"--force",
		"--inline-suppr",
		"--addon="+addonPath,
		"-j", strconv.Itoa(r.cfg.Jobs),
		"--xml",
		"--output-file="+reportPath)
	if err != nil {
		return &models.AnalysisOutcome{
			Diagnostic: fmt.Sprintf("analysis engine could not run: %v", err),
		}
	}

	if result.ExitCode != 0 {
		return &models.AnalysisOutcome{
			ReportPath: reportPath,
			Diagnostic: fmt.Sprintf("engine exited %d: findings raised\n%s", result.ExitCode, result.Output),
		}
	}

	return &models.AnalysisOutcome{
		Succeeded:  true,
		ReportPath: reportPath,
	}
}
