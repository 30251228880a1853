/*
conflict.go - Prospective assignment conflict detection

PURPOSE:
  Classifies a prospective (person, event) assignment as clear, blocking, or
  advisory. Used inside the solver to prune candidate sets and standalone for
  interactive "can I assign this person" checks.

CONFLICT KINDS:
  already_assigned  The person already holds this exact event   BLOCKING
  time_off          A vacation period overlaps the event        BLOCKING
  double_booked     Another held event's time range strictly
                    overlaps this one                           ADVISORY

BLOCKING vs ADVISORY:
  Operators may deliberately double-book (a person covering two short
  back-to-back roles) but must never silently double-claim the same event or
  violate a stated absence. So double_booked is surfaced without flipping
  CanAssign, while the other two kinds block outright.

OVERLAP RULES:
  - Vacations are date-level; each vacation day expands to full-day bounds
    [00:00, 23:59:59] and overlaps when eventStart <= vacEnd AND
    eventEnd >= vacStart.
  - Double-booking uses strict range overlap: startA < endB AND startB < endA,
    so exactly back-to-back events do not conflict.
*/
package engine

// =============================================================================
// CONFLICT TYPES
// =============================================================================

type ConflictKind string

const (
	ConflictAlreadyAssigned ConflictKind = "already_assigned"
	ConflictTimeOff         ConflictKind = "time_off"
	ConflictDoubleBooked    ConflictKind = "double_booked"
)

// Blocking reports whether this kind prevents assignment outright.
func (k ConflictKind) Blocking() bool {
	return k == ConflictAlreadyAssigned || k == ConflictTimeOff
}

type Conflict struct {
	Kind    ConflictKind
	Message string

	// OtherEventID is set for double_booked conflicts.
	OtherEventID EventID
}

// ConflictReport is the result of one conflict check.
type ConflictReport struct {
	HasConflicts bool
	Conflicts    []Conflict

	// CanAssign is false iff any blocking conflict is present.
	CanAssign bool
}

// =============================================================================
// DETECTOR
// =============================================================================

// CheckConflicts classifies a prospective assignment of person to event.
// existing are the person-relevant assignments already in force (manual and
// solver-made); events resolves the event an existing assignment points at.
// availability may be nil when the person has no record.
func CheckConflicts(
	person Person,
	event Event,
	existing []Assignment,
	events map[EventID]Event,
	availability *Availability,
) ConflictReport {
	var conflicts []Conflict

	// already_assigned: an assignment already links this person to this event.
	for _, a := range existing {
		if a.PersonID == person.ID && a.EventID == event.ID {
			conflicts = append(conflicts, Conflict{
				Kind:    ConflictAlreadyAssigned,
				Message: "person " + string(person.ID) + " is already assigned to event " + string(event.ID),
			})
			break
		}
	}

	// time_off: any vacation period overlaps the event window.
	if availability != nil {
		for _, vac := range availability.Vacations {
			if RangesOverlapInclusive(event.Start, event.End, vac.Start.StartOfDay(), vac.End.EndOfDay()) {
				msg := "event overlaps time off " + vac.Start.String() + ".." + vac.End.String()
				if vac.Reason != "" {
					msg += " (" + vac.Reason + ")"
				}
				conflicts = append(conflicts, Conflict{Kind: ConflictTimeOff, Message: msg})
				break
			}
		}
	}

	// double_booked: another held assignment's event strictly overlaps.
	for _, a := range existing {
		if a.PersonID != person.ID || a.EventID == event.ID {
			continue
		}
		other, ok := events[a.EventID]
		if !ok {
			continue
		}
		if RangesOverlapStrict(event.Start, event.End, other.Start, other.End) {
			conflicts = append(conflicts, Conflict{
				Kind:         ConflictDoubleBooked,
				Message:      "overlaps event " + string(other.ID) + " (" + other.Start.String() + ")",
				OtherEventID: other.ID,
			})
		}
	}

	report := ConflictReport{
		HasConflicts: len(conflicts) > 0,
		Conflicts:    conflicts,
		CanAssign:    true,
	}
	for _, c := range conflicts {
		if c.Kind.Blocking() {
			report.CanAssign = false
			break
		}
	}
	return report
}
