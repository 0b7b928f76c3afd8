// Package sweep composes discovery, build and analysis into one
// continue-on-failure pass over every unit under a root.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/lvezzaro/buildsweep/internal/analysis"
	"github.com/lvezzaro/buildsweep/internal/build"
	"github.com/lvezzaro/buildsweep/internal/config"
	"github.com/lvezzaro/buildsweep/internal/discover"
	"github.com/lvezzaro/buildsweep/internal/filesystem"
	"github.com/lvezzaro/buildsweep/internal/models"
	"github.com/lvezzaro/buildsweep/internal/toolchain"
	"github.com/lvezzaro/buildsweep/internal/tui"
)

// Selector narrows the discovered units before the sweep runs, e.g. via an
// interactive picker. It must preserve or restore lexicographic order.
type Selector func(units []*models.Unit) ([]*models.Unit, error)

// Orchestrator drives the per-unit lifecycle and aggregates results.
type Orchestrator struct {
	fs       filesystem.FileSystem
	runner   toolchain.Runner
	cfg      *config.Config
	out      io.Writer
	selector Selector
}

// NewOrchestrator creates a new Orchestrator writing its progress trace to out.
func NewOrchestrator(fs filesystem.FileSystem, runner toolchain.Runner, cfg *config.Config, out io.Writer) *Orchestrator {
	return &Orchestrator{
		fs:     fs,
		runner: runner,
		cfg:    cfg,
		out:    out,
	}
}

// WithSelector sets a unit selector applied after discovery.
func (o *Orchestrator) WithSelector(s Selector) *Orchestrator {
	o.selector = s
	return o
}

// Run sweeps every unit under root. Only an invalid root (or a selector
// abort) returns an error; every per-unit failure is recorded in the report
// and the sweep proceeds to the next unit.
func (o *Orchestrator) Run(ctx context.Context, root string) (*models.SweepReport, error) {
	units, err := discover.Units(o.fs, root, o.cfg.MarkerName, o.cfg.BuildDirName)
	if err != nil {
		return nil, err
	}

	if o.selector != nil {
		units, err = o.selector(units)
		if err != nil {
			return nil, err
		}
	}

	runID, err := gonanoid.Generate("0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz", 8)
	if err != nil {
		return nil, fmt.Errorf("failed to generate run id: %w", err)
	}

	report := models.NewSweepReport(runID, root)
	fmt.Fprintf(o.out, "%s\n", tui.TitleStyle.Render(fmt.Sprintf("sweep %s (run %s): %d unit(s)", root, runID, len(units))))

	executor := build.NewExecutor(o.fs, o.runner, o.cfg)
	analyzer := analysis.NewRunner(o.fs, o.runner, o.cfg)

	for i, unit := range units {
		fmt.Fprintf(o.out, "\n%s %s\n", tui.UnitStyle.Render(fmt.Sprintf("[%d/%d]", i+1, len(units))), unit.RootPath)
		report.Append(o.runUnit(ctx, executor, analyzer, unit))
	}

	report.Sort()
	return report, nil
}

// runUnit walks one unit through the state machine. Every exit path is a
// terminal state; nothing here returns an error.
func (o *Orchestrator) runUnit(ctx context.Context, executor *build.Executor, analyzer *analysis.Runner, unit *models.Unit) *models.UnitResult {
	result := &models.UnitResult{
		Unit:  unit,
		State: models.StateDiscovered,
	}

	unitCtx := ctx
	cancel := func() {}
	if o.cfg.Timeout > 0 {
		unitCtx, cancel = context.WithTimeout(ctx, o.cfg.Timeout)
	}
	defer cancel()

	o.trace(result, models.StateBuilding)
	result.Build = executor.Build(unitCtx, unit)
	if !result.Build.Succeeded {
		if errors.Is(unitCtx.Err(), context.DeadlineExceeded) {
			result.Build.Diagnostic = fmt.Sprintf("timeout after %s: %s", o.cfg.Timeout, result.Build.Diagnostic)
		}
		o.fail(result, models.StateBuildFailed, result.Build.Diagnostic)
		return result
	}
	o.trace(result, models.StateBuilt)

	o.trace(result, models.StateLocating)
	manifest, found, err := analysis.LocateManifest(o.fs, unit, o.cfg.ManifestName)
	if err != nil || !found {
		diagnostic := fmt.Sprintf("no %s under %s", o.cfg.ManifestName, unit.RootPath)
		if err != nil {
			diagnostic = err.Error()
		}
		o.fail(result, models.StateManifestMissing, diagnostic)
		return result
	}
	o.trace(result, models.StateLocated)

	o.trace(result, models.StateAnalyzing)
	result.Analysis = analyzer.Analyze(unitCtx, unit, manifest)
	if !result.Analysis.Succeeded {
		if errors.Is(unitCtx.Err(), context.DeadlineExceeded) {
			result.Analysis.Diagnostic = fmt.Sprintf("timeout after %s: %s", o.cfg.Timeout, result.Analysis.Diagnostic)
		}
		o.fail(result, models.StateAnalysisFailed, result.Analysis.Diagnostic)
		return result
	}

	result.State = models.StateAnalysisPassed
	fmt.Fprintf(o.out, "  %s\n", tui.SuccessStyle.Render("✓ "+string(models.StateAnalysisPassed)))
	return result
}

func (o *Orchestrator) trace(result *models.UnitResult, state models.UnitState) {
	result.State = state
	fmt.Fprintf(o.out, "  %s\n", tui.StateStyle.Render("→ "+string(state)))
}

func (o *Orchestrator) fail(result *models.UnitResult, state models.UnitState, diagnostic string) {
	result.State = state
	fmt.Fprintf(o.out, "  %s\n", tui.FailStyle.Render("✗ "+string(state)))
	if diagnostic != "" {
		fmt.Fprintf(o.out, "  %s\n", tui.SubtleStyle.Render(firstLines(diagnostic, 12)))
	}
}

// firstLines truncates long diagnostics in the progress trace; the full text
// stays in the report.
func firstLines(s string, n int) string {
	count := 0
	for i := range s {
		if s[i] == '\n' {
			count++
			if count >= n {
				return s[:i] + "\n… (truncated)"
			}
		}
	}
	return s
}

// AnalyzeOne runs the locate+analyze steps against an already-built unit.
// Used by the analyze-one command; the build step is assumed to have run.
func (o *Orchestrator) AnalyzeOne(ctx context.Context, unitDir string) (*models.UnitResult, error) {
	info, err := o.fs.Stat(unitDir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", discover.ErrInvalidRoot, unitDir)
	}

	unit := models.NewUnit(unitDir, "")
	result := &models.UnitResult{
		Unit:  unit,
		State: models.StateBuilt,
		Build: &models.BuildOutcome{Succeeded: true, Diagnostic: "build assumed (analyze-one)"},
	}

	analyzer := analysis.NewRunner(o.fs, o.runner, o.cfg)

	o.trace(result, models.StateLocating)
	manifest, found, err := analysis.LocateManifest(o.fs, unit, o.cfg.ManifestName)
	if err != nil || !found {
		diagnostic := fmt.Sprintf("no %s under %s", o.cfg.ManifestName, unitDir)
		if err != nil {
			diagnostic = err.Error()
		}
		o.fail(result, models.StateManifestMissing, diagnostic)
		return result, nil
	}
	o.trace(result, models.StateLocated)

	o.trace(result, models.StateAnalyzing)
	start := time.Now()
	result.Analysis = analyzer.Analyze(ctx, unit, manifest)
	if !result.Analysis.Succeeded {
		o.fail(result, models.StateAnalysisFailed, result.Analysis.Diagnostic)
		return result, nil
	}

	result.State = models.StateAnalysisPassed
	fmt.Fprintf(o.out, "  %s\n", tui.SuccessStyle.Render(fmt.Sprintf("✓ %s in %s", models.StateAnalysisPassed, time.Since(start).Round(time.Millisecond))))
	return result, nil
}
