package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
	"github.com/warp/roster-engine/engine"
)

// =============================================================================
// XLSX - Roster workbook: assignment rows plus a metrics summary sheet
// =============================================================================

const (
	rosterSheet  = "Roster"
	metricsSheet = "Metrics"
)

// WriteXLSX writes the bundle as a two-sheet workbook: the same rows the CSV
// export produces, plus a summary of the solve metrics.
func WriteXLSX(w io.Writer, ws *engine.Workspace, bundle *engine.SolutionBundle) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", rosterSheet)

	for col, title := range csvHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(rosterSheet, cell, title); err != nil {
			return err
		}
	}

	events := eventIndex(ws)
	row := 2
	for _, ea := range bundle.Assignments {
		for _, a := range ea.Assignees {
			values := assignmentRow(events, ws, a)
			for col, v := range values {
				cell, err := excelize.CoordinatesToCellName(col+1, row)
				if err != nil {
					return err
				}
				if err := f.SetCellValue(rosterSheet, cell, v); err != nil {
					return err
				}
			}
			row++
		}
	}

	if _, err := f.NewSheet(metricsSheet); err != nil {
		return err
	}
	summary := [][2]any{
		{"solution_id", string(bundle.Meta.ID)},
		{"generated_at", bundle.Meta.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"range", bundle.Meta.Range.String()},
		{"mode", string(bundle.Meta.Mode)},
		{"hard_violations", bundle.Metrics.HardViolations},
		{"soft_score", bundle.Metrics.SoftScore.String()},
		{"fairness_stdev", bundle.Metrics.Fairness.Stdev},
		{"moves_from_published", bundle.Metrics.Stability.MovesFromPublished},
		{"health_score", bundle.Metrics.HealthScore},
	}
	for i, kv := range summary {
		if err := f.SetCellValue(metricsSheet, fmt.Sprintf("A%d", i+1), kv[0]); err != nil {
			return err
		}
		if err := f.SetCellValue(metricsSheet, fmt.Sprintf("B%d", i+1), kv[1]); err != nil {
			return err
		}
	}

	return f.Write(w)
}
