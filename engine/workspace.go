/*
workspace.go - Input-side domain model

PURPOSE:
  Immutable value types describing everything a solve consumes: the
  organization, its people, teams, resources, events, availability records,
  holidays, and constraint bindings. These types carry structure and
  invariants only; behavior lives in the validator, conflict detector, and
  solver.

OWNERSHIP:
  A Workspace is a read-only snapshot assembled by an external collaborator
  (persistence, file loader) for one solve call. The engine never mutates it;
  what-if changes go through ApplyPatch, which returns a modified copy.

SEE ALSO:
  - validate.go: Referential/semantic checks over a Workspace
  - context.go: Snapshot + date range -> SolveContext
  - patch.go: What-if simulation over a copied Workspace
*/
package engine

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// ORGANIZATION
// =============================================================================

// SolverWeights are the org-level defaults for objective terms.
type SolverWeights struct {
	Fairness      decimal.Decimal
	MovePublished decimal.Decimal
	CooldownDays  int
}

type Organization struct {
	ID      OrgID
	Region  string
	Weights SolverWeights
}

// =============================================================================
// PEOPLE, TEAMS, RESOURCES
// =============================================================================

type Person struct {
	ID     PersonID
	Name   string
	Roles  []string
	Skills []string
	Teams  []TeamID
}

// HasRole reports whether the person holds the given role.
func (p Person) HasRole(role string) bool {
	for _, r := range p.Roles {
		if r == role {
			return true
		}
	}
	return false
}

type Team struct {
	ID      TeamID
	Name    string
	Members []PersonID
}

type Resource struct {
	ID       ResourceID
	Type     string
	Location string
	Capacity int
}

// =============================================================================
// EVENT - A time-bound occurrence needing people
// =============================================================================

type Event struct {
	ID    EventID
	Type  string
	Start TimePoint
	End   TimePoint

	// ResourceID is the hosted location, empty when none.
	ResourceID ResourceID

	// Teams scopes the event to specific teams, empty means org-wide.
	Teams []TeamID

	// RequiredRoles maps role name to needed headcount.
	RequiredRoles map[string]int

	// Assignees are operator pre-populated assignments, usually empty.
	Assignees []PersonID

	// SeriesID links occurrences generated from a recurring series.
	SeriesID string
}

// =============================================================================
// AVAILABILITY - Time-off and recurrence exceptions per person
// =============================================================================

type VacationPeriod struct {
	Start  TimePoint // date-level
	End    TimePoint // date-level, >= Start
	Reason string
}

type DateException struct {
	Date   TimePoint
	Reason string
}

// Availability is one record per person, grown incrementally by operators.
type Availability struct {
	PersonID       PersonID
	RecurrenceRule string
	Vacations      []VacationPeriod
	Exceptions     []DateException
}

// =============================================================================
// CONSTRAINT BINDING - Operator-authored rule, versioned by key
// =============================================================================

type ConstraintScope string

const (
	ScopeOrg      ConstraintScope = "org"
	ScopeTeam     ConstraintScope = "team"
	ScopePerson   ConstraintScope = "person"
	ScopeEvent    ConstraintScope = "event"
	ScopeSchedule ConstraintScope = "schedule"
)

// KnownScopes enumerates the accepted constraint scopes.
var KnownScopes = []ConstraintScope{ScopeOrg, ScopeTeam, ScopePerson, ScopeEvent, ScopeSchedule}

type ConstraintBinding struct {
	Key      string
	Scope    ConstraintScope
	Severity Severity

	// Weight is required iff Severity is soft.
	Weight *decimal.Decimal

	// Predicate identifies the rule kind; see constraints.go.
	Predicate string
	Params    map[string]string
}

// =============================================================================
// WORKSPACE - The full read-only snapshot for one solve
// =============================================================================

type Workspace struct {
	Org          Organization
	People       []Person
	Teams        []Team
	Resources    []Resource
	Events       []Event
	Availability []Availability
	Holidays     []Holiday
	Constraints  []ConstraintBinding
}

// PersonByID returns the person with the given id, nil if unknown.
func (ws *Workspace) PersonByID(id PersonID) *Person {
	for i := range ws.People {
		if ws.People[i].ID == id {
			return &ws.People[i]
		}
	}
	return nil
}

// AvailabilityFor returns the availability record for a person, nil if none.
func (ws *Workspace) AvailabilityFor(id PersonID) *Availability {
	for i := range ws.Availability {
		if ws.Availability[i].PersonID == id {
			return &ws.Availability[i]
		}
	}
	return nil
}

// Calendar returns the workspace holidays as a HolidayCalendar.
func (ws *Workspace) Calendar() HolidayCalendar {
	return SliceCalendar(ws.Holidays)
}

// Clone returns a deep copy, used by ApplyPatch so simulations never touch
// the caller's snapshot.
func (ws *Workspace) Clone() *Workspace {
	out := &Workspace{
		Org:          ws.Org,
		People:       append([]Person(nil), ws.People...),
		Teams:        append([]Team(nil), ws.Teams...),
		Resources:    append([]Resource(nil), ws.Resources...),
		Events:       append([]Event(nil), ws.Events...),
		Availability: append([]Availability(nil), ws.Availability...),
		Holidays:     append([]Holiday(nil), ws.Holidays...),
		Constraints:  append([]ConstraintBinding(nil), ws.Constraints...),
	}
	for i := range out.People {
		out.People[i].Roles = append([]string(nil), out.People[i].Roles...)
		out.People[i].Skills = append([]string(nil), out.People[i].Skills...)
		out.People[i].Teams = append([]TeamID(nil), out.People[i].Teams...)
	}
	for i := range out.Events {
		src := out.Events[i]
		roles := make(map[string]int, len(src.RequiredRoles))
		for k, v := range src.RequiredRoles {
			roles[k] = v
		}
		out.Events[i].RequiredRoles = roles
		out.Events[i].Teams = append([]TeamID(nil), src.Teams...)
		out.Events[i].Assignees = append([]PersonID(nil), src.Assignees...)
	}
	for i := range out.Availability {
		out.Availability[i].Vacations = append([]VacationPeriod(nil), out.Availability[i].Vacations...)
		out.Availability[i].Exceptions = append([]DateException(nil), out.Availability[i].Exceptions...)
	}
	return out
}
