/*
constraints.go - Typed constraint predicates

PURPOSE:
  Operators author constraints as a predicate identifier plus a string
  parameter bag (ConstraintBinding). This file turns that loose shape into a
  tagged union of known predicate kinds so the validator and solver can
  reason about them statically. Unknown predicates fail validation; they are
  never silently ignored.

PREDICATE KINDS:
  role_coverage    Owns how staffing shortfalls are recorded (hard vs soft)
  blackout_window  Forbids assignments on holidays / long weekends / dates
  max_per_week     Caps assignments per person per ISO week
  fairness_cap     Penalizes load above a per-person count cap

HARD vs SOFT:
  Hard predicates with org/schedule scope act as candidate filters before
  ranking; an event structurally blocked by one is left fully unassigned and
  recorded as a hard violation. Soft predicates never remove candidates -
  they only contribute weight x evaluation to the reported soft score.

SEE ALSO:
  - validate.go: Compiles constraints, surfacing parse failures
  - solver.go: Applies filters and accumulates soft score
*/
package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// =============================================================================
// PREDICATE - Tagged union of known constraint kinds
// =============================================================================

type PredicateKind string

const (
	PredicateRoleCoverage   PredicateKind = "role_coverage"
	PredicateBlackoutWindow PredicateKind = "blackout_window"
	PredicateMaxPerWeek     PredicateKind = "max_per_week"
	PredicateFairnessCap    PredicateKind = "fairness_cap"
)

type Predicate interface {
	Kind() PredicateKind
}

// RoleCoverage declares how staffing shortfalls for a role are classified.
// Empty Role applies to every required role.
type RoleCoverage struct {
	Role string
}

func (RoleCoverage) Kind() PredicateKind { return PredicateRoleCoverage }

// BlackoutWindow forbids any assignment on matching dates. With
// LongWeekendsOnly set, only holidays flagged as long weekends match.
type BlackoutWindow struct {
	LongWeekendsOnly bool
	Dates            []TimePoint
}

func (BlackoutWindow) Kind() PredicateKind { return PredicateBlackoutWindow }

// Matches reports whether the event date falls inside the blackout.
func (b BlackoutWindow) Matches(eventStart TimePoint, cal HolidayCalendar) bool {
	for _, d := range b.Dates {
		if d.SameDay(eventStart) {
			return true
		}
	}
	if cal == nil {
		return false
	}
	if b.LongWeekendsOnly {
		return cal.IsLongWeekend(eventStart)
	}
	return cal.IsHoliday(eventStart)
}

// MaxPerWeek caps how many assignments one person may take in one ISO week.
type MaxPerWeek struct {
	Limit int
}

func (MaxPerWeek) Kind() PredicateKind { return PredicateMaxPerWeek }

// FairnessCap penalizes any person whose total assignment count in the
// horizon exceeds MaxCount. Only meaningful as a soft constraint.
type FairnessCap struct {
	MaxCount int
}

func (FairnessCap) Kind() PredicateKind { return PredicateFairnessCap }

// =============================================================================
// PARSING - ConstraintBinding -> Predicate
// =============================================================================

// ParsePredicate resolves a binding's predicate id and parameter bag into a
// typed predicate. Returns *UnknownPredicateError for unrecognized ids.
func ParsePredicate(b ConstraintBinding) (Predicate, error) {
	switch PredicateKind(b.Predicate) {
	case PredicateRoleCoverage:
		return RoleCoverage{Role: b.Params["role"]}, nil

	case PredicateBlackoutWindow:
		p := BlackoutWindow{}
		if v, ok := b.Params["long_weekends_only"]; ok {
			parsed, err := strconv.ParseBool(v)
			if err != nil {
				return nil, fmt.Errorf("constraint %q: bad long_weekends_only %q: %w", b.Key, v, err)
			}
			p.LongWeekendsOnly = parsed
		}
		if v, ok := b.Params["dates"]; ok {
			for _, raw := range strings.Split(v, ",") {
				raw = strings.TrimSpace(raw)
				if raw == "" {
					continue
				}
				t, err := time.Parse("2006-01-02", raw)
				if err != nil {
					return nil, fmt.Errorf("constraint %q: bad blackout date %q: %w", b.Key, raw, err)
				}
				p.Dates = append(p.Dates, NewTimePoint(t.Year(), t.Month(), t.Day()))
			}
		}
		return p, nil

	case PredicateMaxPerWeek:
		limit, err := requiredIntParam(b, "limit")
		if err != nil {
			return nil, err
		}
		return MaxPerWeek{Limit: limit}, nil

	case PredicateFairnessCap:
		max, err := requiredIntParam(b, "max_count")
		if err != nil {
			return nil, err
		}
		return FairnessCap{MaxCount: max}, nil

	default:
		return nil, &UnknownPredicateError{ConstraintKey: b.Key, Predicate: b.Predicate}
	}
}

func requiredIntParam(b ConstraintBinding, name string) (int, error) {
	v, ok := b.Params[name]
	if !ok {
		return 0, fmt.Errorf("constraint %q: missing parameter %q", b.Key, name)
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("constraint %q: bad parameter %s=%q: %w", b.Key, name, v, err)
	}
	return n, nil
}

// =============================================================================
// COMPILED CONSTRAINTS - Binding + parsed predicate, grouped for the solver
// =============================================================================

type CompiledConstraint struct {
	Binding   ConstraintBinding
	Predicate Predicate
}

// CompileConstraints parses every binding, accumulating parse failures so
// the validator can report them all together.
func CompileConstraints(bindings []ConstraintBinding) ([]CompiledConstraint, []error) {
	var (
		out  []CompiledConstraint
		errs []error
	)
	for _, b := range bindings {
		pred, err := ParsePredicate(b)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		out = append(out, CompiledConstraint{Binding: b, Predicate: pred})
	}
	return out, errs
}
