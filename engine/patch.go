/*
patch.go - What-if simulation over a copied workspace

PURPOSE:
  A Patch describes hypothetical changes (people joining/leaving, events
  added/removed, availability updates). Simulate solves the baseline and the
  patched workspace for the same horizon and reports both bundles, their
  structural diff, and the health-score delta. Patches are ephemeral: they
  never persist as domain state, and the caller's workspace is never touched.
*/
package engine

import (
	"context"

	"go.uber.org/zap"
)

// Patch is the set of hypothetical changes to simulate.
type Patch struct {
	AddPeople    []Person
	RemovePeople []PersonID

	AddEvents    []Event
	RemoveEvents []EventID

	// UpdateAvailability replaces the availability record for its person.
	UpdateAvailability []Availability
}

// IsEmpty reports whether the patch changes nothing.
func (p Patch) IsEmpty() bool {
	return len(p.AddPeople) == 0 && len(p.RemovePeople) == 0 &&
		len(p.AddEvents) == 0 && len(p.RemoveEvents) == 0 &&
		len(p.UpdateAvailability) == 0
}

// ApplyPatch returns a patched deep copy of the workspace. Removing a person
// cascades: their team memberships, availability record, and pre-populated
// event assignments are dropped too.
func ApplyPatch(ws *Workspace, patch Patch) *Workspace {
	out := ws.Clone()

	removedPeople := make(map[PersonID]bool, len(patch.RemovePeople))
	for _, pid := range patch.RemovePeople {
		removedPeople[pid] = true
	}
	if len(removedPeople) > 0 {
		var people []Person
		for _, p := range out.People {
			if !removedPeople[p.ID] {
				people = append(people, p)
			}
		}
		out.People = people

		for i := range out.Teams {
			var members []PersonID
			for _, m := range out.Teams[i].Members {
				if !removedPeople[m] {
					members = append(members, m)
				}
			}
			out.Teams[i].Members = members
		}

		var avail []Availability
		for _, a := range out.Availability {
			if !removedPeople[a.PersonID] {
				avail = append(avail, a)
			}
		}
		out.Availability = avail

		for i := range out.Events {
			var assignees []PersonID
			for _, pid := range out.Events[i].Assignees {
				if !removedPeople[pid] {
					assignees = append(assignees, pid)
				}
			}
			out.Events[i].Assignees = assignees
		}
	}
	out.People = append(out.People, patch.AddPeople...)

	removedEvents := make(map[EventID]bool, len(patch.RemoveEvents))
	for _, eid := range patch.RemoveEvents {
		removedEvents[eid] = true
	}
	if len(removedEvents) > 0 {
		var events []Event
		for _, ev := range out.Events {
			if !removedEvents[ev.ID] {
				events = append(events, ev)
			}
		}
		out.Events = events
	}
	out.Events = append(out.Events, patch.AddEvents...)

	for _, update := range patch.UpdateAvailability {
		replaced := false
		for i := range out.Availability {
			if out.Availability[i].PersonID == update.PersonID {
				out.Availability[i] = update
				replaced = true
				break
			}
		}
		if !replaced {
			out.Availability = append(out.Availability, update)
		}
	}

	return out
}

// SimulationResult compares a baseline solve against a patched solve.
type SimulationResult struct {
	Baseline *SolutionBundle
	Patched  *SolutionBundle
	Diff     SolutionDiff

	// HealthDelta is patched health minus baseline health.
	HealthDelta float64
}

// Simulate solves the workspace and its patched copy over the same horizon
// and compares the outcomes. The published baseline, when given, is used for
// change minimization in both solves so the comparison is apples to apples.
func Simulate(
	ctx context.Context,
	ws *Workspace,
	patch Patch,
	from, to TimePoint,
	mode SolveMode,
	published *SolutionBundle,
	logger *zap.Logger,
) (*SimulationResult, error) {
	baseline, err := solveOnce(ctx, ws, from, to, mode, published, logger)
	if err != nil {
		return nil, err
	}

	patched, err := solveOnce(ctx, ApplyPatch(ws, patch), from, to, mode, published, logger)
	if err != nil {
		return nil, err
	}

	return &SimulationResult{
		Baseline:    baseline,
		Patched:     patched,
		Diff:        Diff(baseline, patched),
		HealthDelta: patched.Metrics.HealthScore - baseline.Metrics.HealthScore,
	}, nil
}

func solveOnce(ctx context.Context, ws *Workspace, from, to TimePoint, mode SolveMode, published *SolutionBundle, logger *zap.Logger) (*SolutionBundle, error) {
	sc, err := BuildSolveContext(ws, from, to, mode, published)
	if err != nil {
		return nil, err
	}
	solver := NewGreedySolver(sc, logger)
	if err := solver.BuildModel(); err != nil {
		return nil, err
	}
	if published != nil {
		if err := solver.EnableChangeMinimization(true, ws.Org.Weights.MovePublished); err != nil {
			return nil, err
		}
	}
	return solver.Solve(ctx)
}
