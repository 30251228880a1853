/*
exact.go - Solver strategy interface and the exact-solver stub

PURPOSE:
  Callers should be able to swap the greedy heuristic for an exact solver
  (constraint programming, MIP) without touching call sites. The Solver
  interface is that seam. ExactSolverAdapter is the second conforming
  implementation: it deliberately returns an "unsupported" error from every
  method so the contract is visible to anyone wiring in a real backend.
*/
package engine

import (
	"context"

	"github.com/shopspring/decimal"
)

// Solver is the strategy interface over one solve invocation.
type Solver interface {
	// BuildModel transitions Unbuilt -> ModelBuilt.
	BuildModel() error

	// EnableChangeMinimization biases toward a published baseline. Valid
	// only between BuildModel and Solve.
	EnableChangeMinimization(enabled bool, weightMovePublished decimal.Decimal) error

	// Solve transitions ModelBuilt -> Solved, producing the bundle.
	Solve(ctx context.Context) (*SolutionBundle, error)

	// IncrementalUpdate applies a patch without a full rebuild. Solvers
	// that do not support it must fail closed.
	IncrementalUpdate(patch Patch) error
}

var (
	_ Solver = (*GreedySolver)(nil)
	_ Solver = (*ExactSolverAdapter)(nil)
)

// ExactSolverAdapter is the placeholder exact-solver strategy. Every method
// fails loudly; nothing is silently ignored.
type ExactSolverAdapter struct{}

func NewExactSolverAdapter() *ExactSolverAdapter { return &ExactSolverAdapter{} }

func (a *ExactSolverAdapter) BuildModel() error { return ErrExactSolverUnsupported }

func (a *ExactSolverAdapter) EnableChangeMinimization(bool, decimal.Decimal) error {
	return ErrExactSolverUnsupported
}

func (a *ExactSolverAdapter) Solve(context.Context) (*SolutionBundle, error) {
	return nil, ErrExactSolverUnsupported
}

func (a *ExactSolverAdapter) IncrementalUpdate(Patch) error { return ErrExactSolverUnsupported }
