package export

import (
	"io"
	"sort"
	"strings"

	ics "github.com/arran4/golang-ical"
	"github.com/warp/roster-engine/engine"
)

// =============================================================================
// ICS - One calendar entry per (event, assignee set)
// =============================================================================

// CalendarScope narrows a calendar export to a single person or team, so a
// collaborator can request "my schedule only". Zero value = whole roster.
type CalendarScope struct {
	PersonID engine.PersonID
	TeamID   engine.TeamID
}

func (s CalendarScope) matches(ws *engine.Workspace, assignees []engine.Assignment) bool {
	if s.PersonID == "" && s.TeamID == "" {
		return true
	}
	var members map[engine.PersonID]bool
	if s.TeamID != "" {
		members = make(map[engine.PersonID]bool)
		for _, t := range ws.Teams {
			if t.ID == s.TeamID {
				for _, m := range t.Members {
					members[m] = true
				}
			}
		}
	}
	for _, a := range assignees {
		if s.PersonID != "" && a.PersonID == s.PersonID {
			return true
		}
		if members != nil && members[a.PersonID] {
			return true
		}
	}
	return false
}

// WriteICS writes the bundle as an iCalendar document. Each solved event
// becomes one VEVENT whose description lists the assignees.
func WriteICS(w io.Writer, ws *engine.Workspace, bundle *engine.SolutionBundle, scope CalendarScope) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//warp//roster-engine//EN")

	events := eventIndex(ws)
	for _, ea := range bundle.Assignments {
		ev, ok := events[ea.EventID]
		if !ok {
			continue
		}
		if len(ea.Assignees) == 0 || !scope.matches(ws, ea.Assignees) {
			continue
		}

		entry := cal.AddEvent(string(ea.EventID) + "@roster-engine")
		entry.SetDtStampTime(bundle.Meta.GeneratedAt)
		entry.SetStartAt(ev.Start.Time)
		entry.SetEndAt(ev.End.Time)
		entry.SetSummary(eventSummary(ev))
		entry.SetDescription("Assigned: " + assigneeNames(ws, ea.Assignees))
		if ev.ResourceID != "" {
			entry.SetLocation(resourceLocation(ws, ev.ResourceID))
		}
	}

	_, err := io.WriteString(w, cal.Serialize())
	return err
}

func eventSummary(ev engine.Event) string {
	if ev.Type != "" {
		return ev.Type + " " + string(ev.ID)
	}
	return string(ev.ID)
}

func assigneeNames(ws *engine.Workspace, assignees []engine.Assignment) string {
	names := make([]string, 0, len(assignees))
	for _, a := range assignees {
		name := string(a.PersonID)
		if p := ws.PersonByID(a.PersonID); p != nil && p.Name != "" {
			name = p.Name
		}
		if a.Role != "" {
			name += " (" + a.Role + ")"
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

func resourceLocation(ws *engine.Workspace, id engine.ResourceID) string {
	for _, r := range ws.Resources {
		if r.ID == id {
			if r.Location != "" {
				return r.Location
			}
			return string(r.ID)
		}
	}
	return string(id)
}
