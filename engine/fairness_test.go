package engine_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/warp/roster-engine/engine"
)

func TestComputeFairness_EvenSplitHasZeroStdev(t *testing.T) {
	assignments := []engine.Assignment{
		{EventID: "e-1", PersonID: "p-a"},
		{EventID: "e-2", PersonID: "p-b"},
	}
	m := engine.ComputeFairness(assignments, []engine.PersonID{"p-a", "p-b"})

	if m.Stdev != 0 {
		t.Errorf("expected stdev 0 for an even split, got %f", m.Stdev)
	}
	if m.PerPersonCounts["p-a"] != 1 || m.PerPersonCounts["p-b"] != 1 {
		t.Errorf("unexpected counts %v", m.PerPersonCounts)
	}
}

func TestComputeFairness_IdleEligiblePersonCountsAsZero(t *testing.T) {
	// GIVEN: Two eligible people, all work on one of them
	// WHEN: Computing fairness
	// THEN: The idle person appears with count 0 and pulls the stdev up

	assignments := []engine.Assignment{
		{EventID: "e-1", PersonID: "p-a"},
		{EventID: "e-2", PersonID: "p-a"},
	}
	m := engine.ComputeFairness(assignments, []engine.PersonID{"p-a", "p-b"})

	if got, ok := m.PerPersonCounts["p-b"]; !ok || got != 0 {
		t.Errorf("idle eligible person must appear with count 0, got %v", m.PerPersonCounts)
	}
	// counts {2, 0}: mean 1, population stdev 1
	if math.Abs(m.Stdev-1) > 1e-9 {
		t.Errorf("expected stdev 1, got %f", m.Stdev)
	}
}

func TestComputeFairness_NoEligiblePeople(t *testing.T) {
	m := engine.ComputeFairness(nil, nil)
	if m.Stdev != 0 {
		t.Errorf("expected stdev 0 with nobody eligible, got %f", m.Stdev)
	}
}

func TestComputeHealthScore_HardViolationsForceZero(t *testing.T) {
	if got := engine.ComputeHealthScore(1, decimal.Zero, 0); got != 0 {
		t.Errorf("any hard violation must force 0, got %f", got)
	}
	if got := engine.ComputeHealthScore(3, decimal.NewFromInt(50), 9); got != 0 {
		t.Errorf("any hard violation must force 0, got %f", got)
	}
}

func TestComputeHealthScore_CleanSolveIsPerfect(t *testing.T) {
	if got := engine.ComputeHealthScore(0, decimal.Zero, 0); got != 100 {
		t.Errorf("clean solve should score 100, got %f", got)
	}
}

func TestComputeHealthScore_MonotoneDecreasing(t *testing.T) {
	// GIVEN: Increasing soft score, then increasing stdev
	// THEN: The score strictly decreases but never reaches 0

	base := engine.ComputeHealthScore(0, decimal.Zero, 0)
	softer := engine.ComputeHealthScore(0, decimal.NewFromInt(5), 0)
	unfairer := engine.ComputeHealthScore(0, decimal.NewFromInt(5), 2)

	if !(base > softer && softer > unfairer) {
		t.Errorf("expected strictly decreasing scores, got %f > %f > %f", base, softer, unfairer)
	}
	if unfairer <= 0 {
		t.Errorf("soft penalties must never flatline the score, got %f", unfairer)
	}
}

func TestComputeHealthScore_ExtremePenaltiesStayPositive(t *testing.T) {
	got := engine.ComputeHealthScore(0, decimal.NewFromInt(100000), 1000)
	if got <= 0 {
		t.Errorf("only hard violations may produce 0, got %f", got)
	}
}
