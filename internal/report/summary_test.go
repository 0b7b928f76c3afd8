package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lvezzaro/buildsweep/internal/models"
)

func mixedReport() *models.SweepReport {
	rep := models.NewSweepReport("A1b2C3d4", "/codebase")
	rep.Append(&models.UnitResult{
		Unit:  models.NewUnit("/codebase/unitA", "/codebase/unitA/CMakeLists.txt"),
		State: models.StateAnalysisPassed,
		Build: &models.BuildOutcome{Succeeded: true},
		Analysis: &models.AnalysisOutcome{
			Succeeded:  true,
			ReportPath: "/codebase/unitA/cppcheck_misra_results.xml",
		},
	})
	rep.Append(&models.UnitResult{
		Unit:  models.NewUnit("/codebase/unitB", "/codebase/unitB/CMakeLists.txt"),
		State: models.StateBuildFailed,
		Build: &models.BuildOutcome{
			Succeeded:  false,
			Diagnostic: "configure step exited 1\nCMake Error: missing project()",
		},
	})
	rep.Sort()
	return rep
}

func TestWriteSummary_ListsEveryUnitWithCounts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, mixedReport()))

	out := buf.String()
	require.Contains(t, out, "Sweep summary (run A1b2C3d4)")
	require.Contains(t, out, "unitA")
	require.Contains(t, out, "unitB")
	require.Contains(t, out, string(models.StateAnalysisPassed))
	require.Contains(t, out, string(models.StateBuildFailed))
	require.Contains(t, out, "SUCCESS (1)")
	require.Contains(t, out, "FAILED  (1)")
}

func TestWriteSummary_DetailIsFirstDiagnosticLine(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, mixedReport()))

	out := buf.String()
	require.Contains(t, out, "configure step exited 1")
	require.NotContains(t, out, "CMake Error: missing project()")
}

func TestWriteSummary_EmptyReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteSummary(&buf, models.NewSweepReport("A1b2C3d4", "/codebase")))

	out := buf.String()
	require.Contains(t, out, "SUCCESS (0)")
	require.Contains(t, out, "FAILED  (0)")
}

func TestWriteJSON_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, mixedReport()))

	var decoded models.SweepReport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, "A1b2C3d4", decoded.RunID)
	require.Equal(t, "/codebase", decoded.Root)
	require.Len(t, decoded.Results, 2)
	require.Equal(t, models.StateBuildFailed, decoded.Results[1].State)
}
