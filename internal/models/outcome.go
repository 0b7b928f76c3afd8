package models

// UnitState tracks a unit through the sweep state machine. Transitions are
// strictly forward:
//
//	Discovered → Building → (BuildFailed | Built)
//	Built → Locating → (ManifestMissing | Located)
//	Located → Analyzing → (AnalysisFailed | AnalysisPassed)
type UnitState string

const (
	StateDiscovered      UnitState = "discovered"
	StateBuilding        UnitState = "building"
	StateBuildFailed     UnitState = "build-failed"
	StateBuilt           UnitState = "built"
	StateLocating        UnitState = "locating"
	StateManifestMissing UnitState = "manifest-missing"
	StateLocated         UnitState = "located"
	StateAnalyzing       UnitState = "analyzing"
	StateAnalysisFailed  UnitState = "analysis-failed"
	StateAnalysisPassed  UnitState = "analysis-passed"
)

// Terminal reports whether the state ends a unit's run.
func (s UnitState) Terminal() bool {
	switch s {
	case StateBuildFailed, StateManifestMissing, StateAnalysisFailed, StateAnalysisPassed:
		return true
	}
	return false
}

// BuildOutcome is the result of one clean-state build attempt.
// Produced exactly once per unit; a failed build is data, not an error.
type BuildOutcome struct {
	// Succeeded is true when both the configure and build steps exited zero
	Succeeded bool `json:"succeeded"`

	// Diagnostic holds the combined stdout+stderr of the failing step
	// (or of the whole build when it succeeded)
	Diagnostic string `json:"diagnostic,omitempty"`
}

// AnalysisOutcome is the result of one analysis-engine invocation.
// Produced at most once per unit, only after a successful build located
// its manifest.
type AnalysisOutcome struct {
	// Succeeded is true when the engine exited zero (no findings)
	Succeeded bool `json:"succeeded"`

	// ReportPath is where the engine's XML report was written
	ReportPath string `json:"reportPath,omitempty"`

	// Diagnostic distinguishes "findings raised" from "engine could not run"
	Diagnostic string `json:"diagnostic,omitempty"`
}
