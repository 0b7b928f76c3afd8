package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func passedResult(path string) *UnitResult {
	return &UnitResult{
		Unit:  NewUnit(path, path+"/CMakeLists.txt"),
		State: StateAnalysisPassed,
	}
}

func failedResult(path string, state UnitState) *UnitResult {
	return &UnitResult{
		Unit:  NewUnit(path, path+"/CMakeLists.txt"),
		State: state,
	}
}

func TestSweepReport_SortIsByUnitPath(t *testing.T) {
	rep := NewSweepReport("A1b2C3d4", "/codebase")
	rep.Append(passedResult("/codebase/zeta"))
	rep.Append(passedResult("/codebase/alpha"))
	rep.Append(passedResult("/codebase/mid"))
	rep.Sort()

	require.Equal(t, "/codebase/alpha", rep.Results[0].Unit.RootPath)
	require.Equal(t, "/codebase/mid", rep.Results[1].Unit.RootPath)
	require.Equal(t, "/codebase/zeta", rep.Results[2].Unit.RootPath)
}

func TestSweepReport_PassedIsVacuousWhenEmpty(t *testing.T) {
	require.True(t, NewSweepReport("A1b2C3d4", "/codebase").Passed())
}

func TestSweepReport_AnyFailureFailsTheAggregate(t *testing.T) {
	rep := NewSweepReport("A1b2C3d4", "/codebase")
	rep.Append(passedResult("/codebase/unitA"))
	rep.Append(failedResult("/codebase/unitB", StateManifestMissing))

	require.False(t, rep.Passed())
	require.Equal(t, []string{"unitB"}, rep.FailedUnits())
}

func TestUnitState_Terminal(t *testing.T) {
	for _, state := range []UnitState{StateBuildFailed, StateManifestMissing, StateAnalysisFailed, StateAnalysisPassed} {
		require.True(t, state.Terminal(), string(state))
	}
	for _, state := range []UnitState{StateDiscovered, StateBuilding, StateBuilt, StateLocating, StateLocated, StateAnalyzing} {
		require.False(t, state.Terminal(), string(state))
	}
}

func TestUnit_BuildDir(t *testing.T) {
	unit := NewUnit("/codebase/app", "/codebase/app/CMakeLists.txt")
	require.Equal(t, "app", unit.Name)
	require.Equal(t, "/codebase/app/build", unit.BuildDir("build"))
}
