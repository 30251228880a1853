/*
fairness.go - Fairness distribution and health scoring

PURPOSE:
  Computes the per-person assignment-count distribution and its population
  standard deviation, plus the single 0-100 health score summarizing a
  solution.

FAIRNESS DENOMINATOR:
  People eligible for ANY event in the horizon count toward the stdev, with
  zero assignments counting as 0 rather than being excluded. A roster that
  never uses half its eligible people is unfair, and the measure must say so.

HEALTH SCORE:
  Any hard violation forces the score to exactly 0 - an absolute
  disqualifier, not a weighted penalty. Otherwise the score is
  100 / (1 + 0.1*softScore + 0.25*stdev): strictly positive, monotonically
  decreasing in both terms, and naturally inside (0, 100].
*/
package engine

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	healthSoftWeight     = 0.1
	healthFairnessWeight = 0.25
)

// ComputeFairness counts assignments per person across the solved horizon.
// eligible lists every person considered for any event; people in it with no
// assignments appear with count 0.
func ComputeFairness(assignments []Assignment, eligible []PersonID) FairnessMetrics {
	counts := make(map[PersonID]int, len(eligible))
	for _, pid := range eligible {
		counts[pid] = 0
	}
	for _, a := range assignments {
		counts[a.PersonID]++
	}

	return FairnessMetrics{
		PerPersonCounts: counts,
		Stdev:           populationStdev(counts),
	}
}

func populationStdev(counts map[PersonID]int) float64 {
	if len(counts) == 0 {
		return 0
	}
	var sum float64
	for _, c := range counts {
		sum += float64(c)
	}
	mean := sum / float64(len(counts))

	var sq float64
	for _, c := range counts {
		d := float64(c) - mean
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(counts)))
}

// ComputeHealthScore derives the 0-100 summary. Hard violations force 0;
// otherwise the score decreases monotonically with soft score and fairness
// stdev and never reaches 0, so hard violations stay the only way to flatline.
func ComputeHealthScore(hardViolations int, softScore decimal.Decimal, fairnessStdev float64) float64 {
	if hardViolations > 0 {
		return 0
	}
	soft, _ := softScore.Float64()
	if soft < 0 {
		soft = 0
	}
	score := 100 / (1 + healthSoftWeight*soft + healthFairnessWeight*fairnessStdev)
	return math.Min(100, score)
}
