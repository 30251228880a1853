package export_test

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/warp/roster-engine/export"
)

func TestWriteXLSX_RosterAndMetricsSheets(t *testing.T) {
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, exportWorkspace(), solvedBundle()); err != nil {
		t.Fatalf("WriteXLSX failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Roster")
	if err != nil {
		t.Fatalf("missing Roster sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 assignment rows, got %d", len(rows))
	}
	if rows[0][0] != "event_id" || rows[1][0] != "e-1" {
		t.Errorf("unexpected roster rows: %v", rows[:2])
	}

	metrics, err := f.GetRows("Metrics")
	if err != nil {
		t.Fatalf("missing Metrics sheet: %v", err)
	}
	var sawHealth bool
	for _, row := range metrics {
		if len(row) > 0 && row[0] == "health_score" {
			sawHealth = true
		}
	}
	if !sawHealth {
		t.Error("metrics sheet should summarize the health score")
	}
}
