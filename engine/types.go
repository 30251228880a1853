/*
Package engine provides the core roster assignment engine.

PURPOSE:
  This package contains the domain model and algorithms for assigning people
  to time-bound events (services, shifts, matches) under hard and soft
  constraints. It covers the full solve pipeline: workspace validation,
  conflict detection, greedy candidate selection, fairness and health
  scoring, structural solution diffing, and what-if simulation.

KEY CONCEPTS IN THIS FILE (types.go):
  - Assignment: A single person-to-event link, optionally tagged with a role
  - SolutionBundle: The immutable result of one solve invocation
  - Metrics: Fairness, stability, and violation counts derived at solve end
  - Violation: A machine-readable constraint breach with implicated entities

DESIGN PRINCIPLES:
  1. Immutability: A SolutionBundle is never edited after Solve returns
  2. Precision: Soft scores and weights use decimal.Decimal, not float64
  3. Type Safety: Strong typing for IDs prevents mixing person/event ids
  4. Explainability: Every violation carries the constraint key and entities

USAGE:
  sc, err := engine.BuildSolveContext(ws, from, to, engine.ModeStrict, nil)
  solver := engine.NewGreedySolver(sc, logger)
  if err := solver.BuildModel(); err != nil { ... }
  bundle, err := solver.Solve(ctx)

SEE ALSO:
  - workspace.go: Input-side domain model (people, events, availability)
  - solver.go: The greedy assignment engine
  - fairness.go: Fairness and health scoring
  - diff.go: Structural solution diffing
*/
package engine

import (
	"time"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type OrgID string
type PersonID string
type TeamID string
type ResourceID string
type EventID string
type SolutionID string

// =============================================================================
// SOLVE MODE
// =============================================================================

type SolveMode string

const (
	// ModeStrict treats role-coverage shortfalls as hard violations.
	ModeStrict SolveMode = "strict"

	// ModeRelaxed demotes role-coverage shortfalls to soft violations so a
	// usable partial roster is still considered healthy.
	ModeRelaxed SolveMode = "relaxed"
)

// =============================================================================
// ASSIGNMENT - One person on one event
// =============================================================================

type Assignment struct {
	EventID  EventID
	PersonID PersonID

	// Role is the required role this assignment fills, empty for untyped slots.
	Role string

	// SolutionID links the assignment to the solve that produced it.
	// Empty means the assignment was made manually by an operator.
	SolutionID SolutionID
}

// =============================================================================
// VIOLATIONS - Machine-readable constraint breaches
// =============================================================================

type Severity string

const (
	SeverityHard Severity = "hard"
	SeveritySoft Severity = "soft"
)

// Violation records one constraint breach with enough context for a caller
// to render "why" without re-deriving it.
type Violation struct {
	ConstraintKey string
	Severity      Severity
	Message       string
	EventID       EventID
	PersonID      PersonID

	// Weight is the soft-score contribution. Zero for hard violations.
	Weight decimal.Decimal
}

type Violations struct {
	Hard []Violation
	Soft []Violation
}

// =============================================================================
// METRICS - Derived at the end of a solve, never hand-edited
// =============================================================================

type FairnessMetrics struct {
	// PerPersonCounts includes eligible people with zero assignments.
	PerPersonCounts map[PersonID]int

	// Stdev is the population standard deviation of the counts.
	Stdev float64
}

type StabilityMetrics struct {
	// MovesFromPublished counts assignments that differ from the published baseline.
	MovesFromPublished int

	// AffectedPersons are the people whose assignments changed vs the baseline.
	AffectedPersons []PersonID
}

type Metrics struct {
	HardViolations int
	SoftScore      decimal.Decimal
	Fairness       FairnessMetrics
	Stability      StabilityMetrics
	HealthScore    float64
	SolveTime      time.Duration
}

// =============================================================================
// SOLUTION BUNDLE - Immutable result of one solve invocation
// =============================================================================

type SolutionMeta struct {
	ID          SolutionID
	OrgID       OrgID
	GeneratedAt time.Time
	Range       Period
	Mode        SolveMode
	ChangeMin   bool

	SolverName    string
	SolverVersion string
	Strategy      string
}

// EventAssignees groups a solved event with its assignee list, the shape the
// JSON and calendar exports consume.
type EventAssignees struct {
	EventID   EventID
	Assignees []Assignment
}

type SolutionBundle struct {
	Meta        SolutionMeta
	Assignments []EventAssignees
	Metrics     Metrics
	Violations  Violations
}

// AssigneesFor returns the assignee set for an event id, nil if unknown.
func (sb *SolutionBundle) AssigneesFor(eventID EventID) []Assignment {
	for _, ea := range sb.Assignments {
		if ea.EventID == eventID {
			return ea.Assignees
		}
	}
	return nil
}

// AllAssignments flattens the per-event grouping into a single slice.
func (sb *SolutionBundle) AllAssignments() []Assignment {
	var out []Assignment
	for _, ea := range sb.Assignments {
		out = append(out, ea.Assignees...)
	}
	return out
}
