package engine_test

import (
	"reflect"
	"testing"

	"github.com/warp/roster-engine/engine"
)

func bundleOf(pairs ...[2]string) *engine.SolutionBundle {
	byEvent := make(map[engine.EventID][]engine.Assignment)
	var order []engine.EventID
	for _, p := range pairs {
		eventID := engine.EventID(p[0])
		if _, seen := byEvent[eventID]; !seen {
			order = append(order, eventID)
		}
		byEvent[eventID] = append(byEvent[eventID], engine.Assignment{
			EventID:  eventID,
			PersonID: engine.PersonID(p[1]),
		})
	}

	sb := &engine.SolutionBundle{}
	for _, eventID := range order {
		sb.Assignments = append(sb.Assignments, engine.EventAssignees{
			EventID:   eventID,
			Assignees: byEvent[eventID],
		})
	}
	return sb
}

func TestDiff_IdenticalSolutionsAreEmpty(t *testing.T) {
	a := bundleOf([2]string{"e-1", "p-a"}, [2]string{"e-2", "p-b"})
	b := bundleOf([2]string{"e-2", "p-b"}, [2]string{"e-1", "p-a"})

	d := engine.Diff(a, b)
	if d.TotalChanges != 0 || len(d.Added) != 0 || len(d.Removed) != 0 {
		t.Errorf("order must not matter; expected empty diff, got %+v", d)
	}
}

func TestDiff_AddedAndRemoved(t *testing.T) {
	// GIVEN: p-a replaced by p-b on e-1
	// WHEN: Diffing previous -> current
	// THEN: One removal, one addition, both people affected

	previous := bundleOf([2]string{"e-1", "p-a"})
	current := bundleOf([2]string{"e-1", "p-b"})

	d := engine.Diff(previous, current)

	if len(d.Added) != 1 || d.Added[0].PersonID != "p-b" {
		t.Errorf("expected p-b added, got %v", d.Added)
	}
	if len(d.Removed) != 1 || d.Removed[0].PersonID != "p-a" {
		t.Errorf("expected p-a removed, got %v", d.Removed)
	}
	if d.TotalChanges != 2 {
		t.Errorf("expected 2 total changes, got %d", d.TotalChanges)
	}
	if !reflect.DeepEqual(d.AffectedPersons, []engine.PersonID{"p-a", "p-b"}) {
		t.Errorf("expected both people affected in sorted order, got %v", d.AffectedPersons)
	}
}

func TestDiff_Symmetry(t *testing.T) {
	// Diff(A, B).Added must equal Diff(B, A).Removed, and vice versa.

	a := bundleOf([2]string{"e-1", "p-a"}, [2]string{"e-2", "p-b"})
	b := bundleOf([2]string{"e-1", "p-c"}, [2]string{"e-3", "p-b"})

	forward := engine.Diff(a, b)
	backward := engine.Diff(b, a)

	if !reflect.DeepEqual(forward.Added, backward.Removed) {
		t.Errorf("forward.Added %v != backward.Removed %v", forward.Added, backward.Removed)
	}
	if !reflect.DeepEqual(forward.Removed, backward.Added) {
		t.Errorf("forward.Removed %v != backward.Added %v", forward.Removed, backward.Added)
	}
}

func TestDiff_MoveIsRemovalPlusAddition(t *testing.T) {
	// A person shifted between events is never inferred as a "move".

	previous := bundleOf([2]string{"e-1", "p-a"})
	current := bundleOf([2]string{"e-2", "p-a"})

	d := engine.Diff(previous, current)
	if len(d.Added) != 1 || len(d.Removed) != 1 || d.TotalChanges != 2 {
		t.Errorf("expected removal + addition, got %+v", d)
	}
	if !reflect.DeepEqual(d.AffectedPersons, []engine.PersonID{"p-a"}) {
		t.Errorf("the moved person counts once, got %v", d.AffectedPersons)
	}
}

func TestDiff_NilSolutionsAreEmptySets(t *testing.T) {
	current := bundleOf([2]string{"e-1", "p-a"})

	d := engine.Diff(nil, current)
	if len(d.Added) != 1 || len(d.Removed) != 0 {
		t.Errorf("nil previous means everything is added, got %+v", d)
	}

	empty := engine.Diff(nil, nil)
	if empty.TotalChanges != 0 {
		t.Errorf("diffing nothing against nothing must be empty, got %+v", empty)
	}
}
