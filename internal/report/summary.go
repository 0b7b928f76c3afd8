// Package report renders sweep results for humans and CI: a terminal summary
// table, a JSON form of the report, and per-unit HTML finding pages.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"

	"github.com/lvezzaro/buildsweep/internal/models"
	"github.com/lvezzaro/buildsweep/internal/tui"
)

// WriteSummary renders the per-unit terminal-state table plus aggregate
// SUCCESS/FAILED counts.
func WriteSummary(w io.Writer, rep *models.SweepReport) error {
	fmt.Fprintf(w, "\n%s\n", tui.TitleStyle.Render(fmt.Sprintf("Sweep summary (run %s)", rep.RunID)))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Unit", "Path", "State", "Detail"})

	var data [][]string
	passed := 0
	for _, result := range rep.Results {
		detail := ""
		if result.Failed() {
			detail = failureDetail(result)
		} else {
			passed++
		}
		data = append(data, []string{
			result.Unit.Name,
			result.Unit.RootPath,
			string(result.State),
			detail,
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	failed := rep.FailedUnits()
	fmt.Fprintf(w, "\n%s\n", tui.SuccessStyle.Render(fmt.Sprintf("SUCCESS (%d)", passed)))
	if len(failed) > 0 {
		fmt.Fprintf(w, "%s %s\n", tui.FailStyle.Render(fmt.Sprintf("FAILED  (%d)", len(failed))), strings.Join(failed, ", "))
	} else {
		fmt.Fprintf(w, "%s\n", tui.SuccessStyle.Render("FAILED  (0)"))
	}

	return nil
}

// WriteJSON emits the whole report as indented JSON for scripting.
func WriteJSON(w io.Writer, rep *models.SweepReport) error {
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// failureDetail picks the first diagnostic line of whichever step failed.
func failureDetail(result *models.UnitResult) string {
	var diagnostic string
	switch {
	case result.Analysis != nil:
		diagnostic = result.Analysis.Diagnostic
	case result.State == models.StateManifestMissing:
		diagnostic = "manifest not located"
	case result.Build != nil:
		diagnostic = result.Build.Diagnostic
	}

	if idx := strings.IndexByte(diagnostic, '\n'); idx >= 0 {
		diagnostic = diagnostic[:idx]
	}
	return diagnostic
}
