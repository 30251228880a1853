package engine_test

import (
	"testing"
	"time"

	"github.com/warp/roster-engine/engine"
)

func usher(id string) engine.Person {
	return engine.Person{ID: engine.PersonID(id), Name: id, Roles: []string{"usher"}}
}

func eventIndexOf(events ...engine.Event) map[engine.EventID]engine.Event {
	out := make(map[engine.EventID]engine.Event, len(events))
	for _, ev := range events {
		out[ev.ID] = ev
	}
	return out
}

func TestCheckConflicts_Clear(t *testing.T) {
	// GIVEN: A person with no existing assignments and no time off
	// WHEN: Checking against a fresh event
	// THEN: No conflicts, assignment allowed

	ev := serviceEvent("e-1", at(2025, time.September, 7, 9, 0))
	report := engine.CheckConflicts(usher("p-a"), ev, nil, nil, nil)

	if report.HasConflicts {
		t.Errorf("expected no conflicts, got %v", report.Conflicts)
	}
	if !report.CanAssign {
		t.Error("expected CanAssign true")
	}
}

func TestCheckConflicts_AlreadyAssignedBlocks(t *testing.T) {
	// GIVEN: The person already holds this exact event
	// WHEN: Checking the same (person, event) pair again
	// THEN: already_assigned conflict, assignment blocked

	ev := serviceEvent("e-1", at(2025, time.September, 7, 9, 0))
	existing := []engine.Assignment{{EventID: "e-1", PersonID: "p-a"}}

	report := engine.CheckConflicts(usher("p-a"), ev, existing, eventIndexOf(ev), nil)

	if report.CanAssign {
		t.Error("double-claiming the same event must be blocked")
	}
	if len(report.Conflicts) != 1 || report.Conflicts[0].Kind != engine.ConflictAlreadyAssigned {
		t.Errorf("expected one already_assigned conflict, got %v", report.Conflicts)
	}
}

func TestCheckConflicts_TimeOffBlocks(t *testing.T) {
	// GIVEN: A date-level vacation covering the event's calendar day
	// WHEN: Checking an intra-day event on that day
	// THEN: time_off conflict, assignment blocked

	ev := serviceEvent("e-1", at(2025, time.September, 7, 9, 0))
	avail := &engine.Availability{
		PersonID: "p-a",
		Vacations: []engine.VacationPeriod{{
			Start: date(2025, time.September, 7),
			End:   date(2025, time.September, 7),
		}},
	}

	report := engine.CheckConflicts(usher("p-a"), ev, nil, nil, avail)

	if report.CanAssign {
		t.Error("vacation overlap must block assignment")
	}
	if len(report.Conflicts) != 1 || report.Conflicts[0].Kind != engine.ConflictTimeOff {
		t.Errorf("expected one time_off conflict, got %v", report.Conflicts)
	}
}

func TestCheckConflicts_VacationOutsideEventDoesNotBlock(t *testing.T) {
	ev := serviceEvent("e-1", at(2025, time.September, 7, 9, 0))
	avail := &engine.Availability{
		PersonID: "p-a",
		Vacations: []engine.VacationPeriod{{
			Start: date(2025, time.September, 10),
			End:   date(2025, time.September, 12),
		}},
	}

	report := engine.CheckConflicts(usher("p-a"), ev, nil, nil, avail)
	if !report.CanAssign || report.HasConflicts {
		t.Errorf("vacation elsewhere should not conflict, got %v", report.Conflicts)
	}
}

func TestCheckConflicts_DoubleBookedIsAdvisory(t *testing.T) {
	// GIVEN: The person holds another event overlapping in time
	// WHEN: Checking the new event
	// THEN: double_booked is surfaced but CanAssign stays true

	held := serviceEvent("e-held", at(2025, time.September, 7, 9, 0))
	ev := serviceEvent("e-new", at(2025, time.September, 7, 10, 0))
	existing := []engine.Assignment{{EventID: "e-held", PersonID: "p-a"}}

	report := engine.CheckConflicts(usher("p-a"), ev, existing, eventIndexOf(held, ev), nil)

	if !report.HasConflicts {
		t.Fatal("expected a double_booked conflict")
	}
	if !report.CanAssign {
		t.Error("double booking is advisory; CanAssign must stay true")
	}
	if report.Conflicts[0].Kind != engine.ConflictDoubleBooked {
		t.Errorf("expected double_booked, got %v", report.Conflicts[0].Kind)
	}
	if report.Conflicts[0].OtherEventID != "e-held" {
		t.Errorf("expected the held event to be named, got %q", report.Conflicts[0].OtherEventID)
	}
}

func TestCheckConflicts_BackToBackEventsDoNotOverlap(t *testing.T) {
	// GIVEN: A held 9-11 event and a new event starting exactly at 11
	// WHEN: Checking the new event
	// THEN: No conflict; strict overlap excludes shared endpoints

	held := serviceEvent("e-held", at(2025, time.September, 7, 9, 0))
	ev := serviceEvent("e-new", at(2025, time.September, 7, 11, 0))
	existing := []engine.Assignment{{EventID: "e-held", PersonID: "p-a"}}

	report := engine.CheckConflicts(usher("p-a"), ev, existing, eventIndexOf(held, ev), nil)
	if report.HasConflicts {
		t.Errorf("back-to-back events should be clear, got %v", report.Conflicts)
	}
}

func TestCheckConflicts_OtherPeoplesAssignmentsIgnored(t *testing.T) {
	held := serviceEvent("e-held", at(2025, time.September, 7, 9, 0))
	ev := serviceEvent("e-new", at(2025, time.September, 7, 10, 0))
	existing := []engine.Assignment{{EventID: "e-held", PersonID: "p-someone-else"}}

	report := engine.CheckConflicts(usher("p-a"), ev, existing, eventIndexOf(held, ev), nil)
	if report.HasConflicts {
		t.Errorf("another person's booking must not conflict, got %v", report.Conflicts)
	}
}
