/*
context.go - Solve context assembly

PURPOSE:
  Builds the consistent, validated snapshot a solver consumes: the workspace,
  the requested date range, the solve mode, and optionally the previously
  published solution used for change minimization. Validation runs here;
  a workspace that fails validation never reaches a solver.

OWNERSHIP:
  A SolveContext is exclusively owned by the caller that built it. Separate
  solve invocations (different orgs, different ranges) build separate
  contexts and share no mutable state.
*/
package engine

import (
	"sort"
)

// SolveContext aggregates all inputs for one solve invocation.
type SolveContext struct {
	Workspace *Workspace
	Range     Period
	Mode      SolveMode

	// Published is the change-minimization baseline, nil when none exists.
	Published *SolutionBundle

	// Events are the horizon's events in chronological order (start asc,
	// event id as a deterministic tie-break).
	Events []Event

	// Constraints are the compiled bindings; parse errors were rejected by
	// validation.
	Constraints []CompiledConstraint
}

// BuildSolveContext validates the workspace and assembles the snapshot for
// [from, to]. A published baseline is optional; pass nil to solve without
// change minimization.
func BuildSolveContext(ws *Workspace, from, to TimePoint, mode SolveMode, published *SolutionBundle) (*SolveContext, error) {
	period := Period{Start: from, End: to}

	if err := Validate(ws, period); err != nil {
		return nil, err
	}

	var events []Event
	windowStart := from.StartOfDay()
	windowEnd := to.EndOfDay()
	for _, ev := range ws.Events {
		if ev.Start.AfterOrEqual(windowStart) && ev.Start.BeforeOrEqual(windowEnd) {
			events = append(events, ev)
		}
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		return events[i].ID < events[j].ID
	})

	compiled, errs := CompileConstraints(ws.Constraints)
	if len(errs) > 0 {
		// Unreachable after Validate, kept as a fail-fast guard against a
		// caller mutating the workspace between validation and solving.
		issues := make([]string, 0, len(errs))
		for _, err := range errs {
			issues = append(issues, err.Error())
		}
		return nil, &ValidationError{Issues: issues}
	}

	return &SolveContext{
		Workspace:   ws,
		Range:       period,
		Mode:        mode,
		Published:   published,
		Events:      events,
		Constraints: compiled,
	}, nil
}

// EventByID resolves an event in the context's horizon.
func (sc *SolveContext) EventByID(id EventID) (Event, bool) {
	for _, ev := range sc.Events {
		if ev.ID == id {
			return ev, true
		}
	}
	return Event{}, false
}
