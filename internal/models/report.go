package models

import "sort"

// UnitResult combines everything the sweep learned about one unit.
type UnitResult struct {
	Unit     *Unit            `json:"unit"`
	State    UnitState        `json:"state"`
	Build    *BuildOutcome    `json:"build,omitempty"`
	Analysis *AnalysisOutcome `json:"analysis,omitempty"`
}

// Failed reports whether the unit ended in any terminal state other than
// a passing analysis.
func (r *UnitResult) Failed() bool {
	return r.State != StateAnalysisPassed
}

// SweepReport is the aggregate result of one sweep invocation. It exists only
// for the duration of the run; nothing beyond process output and the per-unit
// report files persists it.
type SweepReport struct {
	// RunID identifies one invocation in output and report metadata
	RunID string `json:"runId"`

	// Root is the swept root directory
	Root string `json:"root"`

	// Results holds one entry per discovered unit, ordered by unit path
	Results []*UnitResult `json:"results"`
}

// NewSweepReport creates an empty report for the given root.
func NewSweepReport(runID, root string) *SweepReport {
	return &SweepReport{
		RunID:   runID,
		Root:    root,
		Results: []*UnitResult{},
	}
}

// Append records a unit result.
func (r *SweepReport) Append(result *UnitResult) {
	r.Results = append(r.Results, result)
}

// Sort orders results by unit path so the report is deterministic no matter
// how results were produced.
func (r *SweepReport) Sort() {
	sort.Slice(r.Results, func(i, j int) bool {
		return r.Results[i].Unit.RootPath < r.Results[j].Unit.RootPath
	})
}

// Passed reports the aggregate status: true iff every unit reached a passing
// analysis. An empty report passes vacuously.
func (r *SweepReport) Passed() bool {
	for _, result := range r.Results {
		if result.Failed() {
			return false
		}
	}
	return true
}

// FailedUnits returns the names of units that did not pass, in report order.
func (r *SweepReport) FailedUnits() []string {
	var failed []string
	for _, result := range r.Results {
		if result.Failed() {
			failed = append(failed, result.Unit.Name)
		}
	}
	return failed
}
