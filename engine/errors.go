/*
errors.go - Centralized error types for the roster engine

PURPOSE:
  All error types in one place for consistency and discoverability.
  Callers branch on sentinel errors with errors.Is and unwrap structured
  errors for detail.

ERROR CATEGORIES:
  1. Validation errors - Aggregate referential/semantic failures
  2. Contract errors - Engine misuse (Solve before BuildModel, unsupported
     incremental updates)
  3. Lookup errors - Missing entities/solutions at the store boundary

NOTE ON INFEASIBILITY:
  An infeasible solve is NOT an error. It is a valid SolutionBundle with
  hard violations recorded in metrics, so operators can inspect the gaps.

SEE ALSO:
  - validate.go: Builds ValidationError
  - solver.go: Returns contract errors
*/
package engine

import (
	"errors"
	"fmt"
	"strings"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrModelNotBuilt is returned when Solve is called before BuildModel.
	ErrModelNotBuilt = errors.New("solve called before model build")

	// ErrModelAlreadyBuilt is returned when BuildModel is called twice.
	ErrModelAlreadyBuilt = errors.New("model already built")

	// ErrAlreadySolved is returned when Solve is called twice on one engine.
	ErrAlreadySolved = errors.New("engine already solved")

	// ErrIncrementalUnsupported is returned by IncrementalUpdate until a
	// solver implements patch application without a full rebuild.
	ErrIncrementalUnsupported = errors.New("incremental update not supported")

	// ErrExactSolverUnsupported is returned by every ExactSolverAdapter
	// method; the adapter exists to make the strategy seam visible.
	ErrExactSolverUnsupported = errors.New("exact solver adapter not implemented")

	// ErrSolutionNotFound is returned by publish stores on unknown org/tag.
	ErrSolutionNotFound = errors.New("published solution not found")

	// ErrWorkspaceInvalid wraps aggregate validation failures.
	ErrWorkspaceInvalid = errors.New("workspace failed validation")
)

// =============================================================================
// VALIDATION ERROR - Aggregate, reports every failure at once
// =============================================================================

// ValidationError carries every referential/semantic failure found in one
// pass so the caller can report them together.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("workspace validation failed with %d issue(s):\n  %s",
		len(e.Issues), strings.Join(e.Issues, "\n  "))
}

func (e *ValidationError) Unwrap() error { return ErrWorkspaceInvalid }

// =============================================================================
// UNKNOWN PREDICATE - Fails validation instead of being silently ignored
// =============================================================================

type UnknownPredicateError struct {
	ConstraintKey string
	Predicate     string
}

func (e *UnknownPredicateError) Error() string {
	return fmt.Sprintf("constraint %q references unknown predicate %q", e.ConstraintKey, e.Predicate)
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsContractError returns true for engine misuse, as opposed to bad input.
func IsContractError(err error) bool {
	return errors.Is(err, ErrModelNotBuilt) ||
		errors.Is(err, ErrModelAlreadyBuilt) ||
		errors.Is(err, ErrAlreadySolved) ||
		errors.Is(err, ErrIncrementalUnsupported) ||
		errors.Is(err, ErrExactSolverUnsupported)
}

// IsClientError returns true if the error is due to invalid operator input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrWorkspaceInvalid)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrSolutionNotFound)
}
