package export

import (
	"encoding/csv"
	"io"

	"github.com/warp/roster-engine/engine"
)

// =============================================================================
// CSV - Row per assignment, for spreadsheet-style distribution
// =============================================================================

var csvHeader = []string{"event_id", "event_type", "date", "start", "end", "person_id", "person_name", "role"}

// WriteCSV writes one row per assignment. The workspace resolves event times
// and person names; assignments referencing entities outside the workspace
// still produce a row with the ids alone.
func WriteCSV(w io.Writer, ws *engine.Workspace, bundle *engine.SolutionBundle) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	events := eventIndex(ws)
	for _, ea := range bundle.Assignments {
		for _, a := range ea.Assignees {
			row := assignmentRow(events, ws, a)
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func assignmentRow(events map[engine.EventID]engine.Event, ws *engine.Workspace, a engine.Assignment) []string {
	row := []string{string(a.EventID), "", "", "", "", string(a.PersonID), "", a.Role}
	if ev, ok := events[a.EventID]; ok {
		row[1] = ev.Type
		row[2] = ev.Start.DateKey()
		row[3] = ev.Start.Time.Format("15:04")
		row[4] = ev.End.Time.Format("15:04")
	}
	if p := ws.PersonByID(a.PersonID); p != nil {
		row[6] = p.Name
	}
	return row
}

func eventIndex(ws *engine.Workspace) map[engine.EventID]engine.Event {
	out := make(map[engine.EventID]engine.Event, len(ws.Events))
	for _, ev := range ws.Events {
		out[ev.ID] = ev
	}
	return out
}
