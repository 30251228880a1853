/*
diff.go - Structural solution diffing

PURPOSE:
  Given two SolutionBundles (baseline vs patched, or previous-published vs
  newly-solved), computes added/removed assignments per event, the affected
  people, and a total change count. Used for impact analysis and for the
  stability metrics of a change-minimizing solve.

DESIGN:
  Order-independent set difference over assignee ids per event id. No move
  inference: a person shifted between two events is one removal plus one
  addition, which keeps the algorithm O(events x assignees) and avoids
  ambiguous move-detection heuristics.
*/
package engine

import (
	"sort"
)

// ChangedAssignment is one (event, person) pair that differs between two
// solutions.
type ChangedAssignment struct {
	EventID  EventID
	PersonID PersonID
}

type SolutionDiff struct {
	Added           []ChangedAssignment
	Removed         []ChangedAssignment
	AffectedPersons []PersonID
	TotalChanges    int
}

// Diff computes the structural difference from previous to current.
// Diff(A, B).Added always equals Diff(B, A).Removed, and Diff(A, A) is empty.
func Diff(previous, current *SolutionBundle) SolutionDiff {
	prevSets := assigneeSets(previous)
	curSets := assigneeSets(current)

	eventIDs := make(map[EventID]bool, len(prevSets)+len(curSets))
	for id := range prevSets {
		eventIDs[id] = true
	}
	for id := range curSets {
		eventIDs[id] = true
	}

	var d SolutionDiff
	affected := make(map[PersonID]bool)

	for _, eventID := range sortedEventIDs(eventIDs) {
		prev, cur := prevSets[eventID], curSets[eventID]

		for _, pid := range sortedPersonIDs(cur) {
			if !prev[pid] {
				d.Added = append(d.Added, ChangedAssignment{EventID: eventID, PersonID: pid})
				affected[pid] = true
			}
		}
		for _, pid := range sortedPersonIDs(prev) {
			if !cur[pid] {
				d.Removed = append(d.Removed, ChangedAssignment{EventID: eventID, PersonID: pid})
				affected[pid] = true
			}
		}
	}

	d.TotalChanges = len(d.Added) + len(d.Removed)
	d.AffectedPersons = sortedPersonIDs(affected)
	return d
}

func assigneeSets(sb *SolutionBundle) map[EventID]map[PersonID]bool {
	out := make(map[EventID]map[PersonID]bool)
	if sb == nil {
		return out
	}
	for _, ea := range sb.Assignments {
		set := out[ea.EventID]
		if set == nil {
			set = make(map[PersonID]bool, len(ea.Assignees))
			out[ea.EventID] = set
		}
		for _, a := range ea.Assignees {
			set[a.PersonID] = true
		}
	}
	return out
}

func sortedEventIDs(set map[EventID]bool) []EventID {
	out := make([]EventID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedPersonIDs(set map[PersonID]bool) []PersonID {
	out := make([]PersonID, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
