/*
Package export serializes SolutionBundles for external collaborators.

PURPOSE:
  The engine owns the SolutionBundle; this package owns its wire shapes:
  - JSON: the canonical form (meta, assignments, metrics, violations)
  - CSV: row-per-assignment tabular export for spreadsheet distribution
  - XLSX: the same rows as a workbook with a metrics summary sheet
  - ICS: one calendar entry per (event, assignee set), scopable to a single
    person or team ("my schedule only")

DESIGN:
  Exporters take the Workspace alongside the bundle so rows can carry event
  times and human names without the engine embedding display data in its
  result type.

SEE ALSO:
  - engine/types.go: SolutionBundle shape
*/
package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/roster-engine/engine"
)

// =============================================================================
// CANONICAL JSON FORM
// =============================================================================

type bundleJSON struct {
	Meta        metaJSON         `json:"meta"`
	Assignments []eventJSON      `json:"assignments"`
	Metrics     metricsJSON      `json:"metrics"`
	Violations  violationsJSON   `json:"violations"`
}

type metaJSON struct {
	ID            string `json:"id"`
	OrgID         string `json:"org_id"`
	GeneratedAt   string `json:"generated_at"`
	RangeStart    string `json:"range_start"`
	RangeEnd      string `json:"range_end"`
	Mode          string `json:"mode"`
	ChangeMin     bool   `json:"change_min"`
	SolverName    string `json:"solver_name"`
	SolverVersion string `json:"solver_version"`
	Strategy      string `json:"strategy"`
}

type eventJSON struct {
	EventID   string         `json:"event_id"`
	Assignees []assigneeJSON `json:"assignees"`
}

type assigneeJSON struct {
	PersonID string `json:"person_id"`
	Role     string `json:"role,omitempty"`
	Manual   bool   `json:"manual,omitempty"`
}

type metricsJSON struct {
	HardViolations int              `json:"hard_violations"`
	SoftScore      decimal.Decimal  `json:"soft_score"`
	Fairness       fairnessJSON     `json:"fairness"`
	Stability      stabilityJSON    `json:"stability"`
	HealthScore    float64          `json:"health_score"`
	SolveTimeMs    int64            `json:"solve_time_ms"`
}

type fairnessJSON struct {
	PerPersonCounts map[string]int `json:"per_person_counts"`
	Stdev           float64        `json:"stdev"`
}

type stabilityJSON struct {
	MovesFromPublished int      `json:"moves_from_published"`
	AffectedPersons    []string `json:"affected_persons"`
}

type violationsJSON struct {
	Hard []violationJSON `json:"hard"`
	Soft []violationJSON `json:"soft"`
}

type violationJSON struct {
	ConstraintKey string          `json:"constraint_key"`
	Severity      string          `json:"severity"`
	Message       string          `json:"message"`
	EventID       string          `json:"event_id,omitempty"`
	PersonID      string          `json:"person_id,omitempty"`
	Weight        decimal.Decimal `json:"weight"`
}

// WriteJSON writes the canonical JSON form of the bundle.
func WriteJSON(w io.Writer, bundle *engine.SolutionBundle) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toBundleJSON(bundle))
}

func toBundleJSON(bundle *engine.SolutionBundle) bundleJSON {
	out := bundleJSON{
		Meta: metaJSON{
			ID:            string(bundle.Meta.ID),
			OrgID:         string(bundle.Meta.OrgID),
			GeneratedAt:   bundle.Meta.GeneratedAt.Format("2006-01-02T15:04:05Z"),
			RangeStart:    bundle.Meta.Range.Start.String(),
			RangeEnd:      bundle.Meta.Range.End.String(),
			Mode:          string(bundle.Meta.Mode),
			ChangeMin:     bundle.Meta.ChangeMin,
			SolverName:    bundle.Meta.SolverName,
			SolverVersion: bundle.Meta.SolverVersion,
			Strategy:      bundle.Meta.Strategy,
		},
		Assignments: []eventJSON{},
	}

	for _, ea := range bundle.Assignments {
		ev := eventJSON{EventID: string(ea.EventID), Assignees: []assigneeJSON{}}
		for _, a := range ea.Assignees {
			ev.Assignees = append(ev.Assignees, assigneeJSON{
				PersonID: string(a.PersonID),
				Role:     a.Role,
				Manual:   a.SolutionID == "",
			})
		}
		out.Assignments = append(out.Assignments, ev)
	}

	counts := make(map[string]int, len(bundle.Metrics.Fairness.PerPersonCounts))
	for pid, c := range bundle.Metrics.Fairness.PerPersonCounts {
		counts[string(pid)] = c
	}
	affected := make([]string, 0, len(bundle.Metrics.Stability.AffectedPersons))
	for _, pid := range bundle.Metrics.Stability.AffectedPersons {
		affected = append(affected, string(pid))
	}
	out.Metrics = metricsJSON{
		HardViolations: bundle.Metrics.HardViolations,
		SoftScore:      bundle.Metrics.SoftScore,
		Fairness:       fairnessJSON{PerPersonCounts: counts, Stdev: bundle.Metrics.Fairness.Stdev},
		Stability:      stabilityJSON{MovesFromPublished: bundle.Metrics.Stability.MovesFromPublished, AffectedPersons: affected},
		HealthScore:    bundle.Metrics.HealthScore,
		SolveTimeMs:    bundle.Metrics.SolveTime.Milliseconds(),
	}

	out.Violations = violationsJSON{Hard: []violationJSON{}, Soft: []violationJSON{}}
	for _, v := range bundle.Violations.Hard {
		out.Violations.Hard = append(out.Violations.Hard, toViolationJSON(v))
	}
	for _, v := range bundle.Violations.Soft {
		out.Violations.Soft = append(out.Violations.Soft, toViolationJSON(v))
	}
	return out
}

// ReadJSON parses the canonical form back into a bundle. Diff and publish
// surfaces use this to round-trip solution files; solve-time internals that
// the canonical form does not carry (exact solve duration resolution) come
// back best-effort.
func ReadJSON(r io.Reader) (*engine.SolutionBundle, error) {
	var doc bundleJSON
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return fromBundleJSON(doc)
}

func fromBundleJSON(doc bundleJSON) (*engine.SolutionBundle, error) {
	generatedAt, err := time.Parse("2006-01-02T15:04:05Z", doc.Meta.GeneratedAt)
	if err != nil {
		return nil, err
	}
	rangeStart, err := time.Parse("2006-01-02", doc.Meta.RangeStart)
	if err != nil {
		return nil, err
	}
	rangeEnd, err := time.Parse("2006-01-02", doc.Meta.RangeEnd)
	if err != nil {
		return nil, err
	}

	bundle := &engine.SolutionBundle{
		Meta: engine.SolutionMeta{
			ID:          engine.SolutionID(doc.Meta.ID),
			OrgID:       engine.OrgID(doc.Meta.OrgID),
			GeneratedAt: generatedAt,
			Range: engine.Period{
				Start: engine.NewTimePoint(rangeStart.Year(), rangeStart.Month(), rangeStart.Day()),
				End:   engine.NewTimePoint(rangeEnd.Year(), rangeEnd.Month(), rangeEnd.Day()),
			},
			Mode:          engine.SolveMode(doc.Meta.Mode),
			ChangeMin:     doc.Meta.ChangeMin,
			SolverName:    doc.Meta.SolverName,
			SolverVersion: doc.Meta.SolverVersion,
			Strategy:      doc.Meta.Strategy,
		},
	}

	for _, ev := range doc.Assignments {
		ea := engine.EventAssignees{EventID: engine.EventID(ev.EventID)}
		for _, a := range ev.Assignees {
			assignment := engine.Assignment{
				EventID:  engine.EventID(ev.EventID),
				PersonID: engine.PersonID(a.PersonID),
				Role:     a.Role,
			}
			if !a.Manual {
				assignment.SolutionID = bundle.Meta.ID
			}
			ea.Assignees = append(ea.Assignees, assignment)
		}
		bundle.Assignments = append(bundle.Assignments, ea)
	}

	counts := make(map[engine.PersonID]int, len(doc.Metrics.Fairness.PerPersonCounts))
	for pid, c := range doc.Metrics.Fairness.PerPersonCounts {
		counts[engine.PersonID(pid)] = c
	}
	var affected []engine.PersonID
	for _, pid := range doc.Metrics.Stability.AffectedPersons {
		affected = append(affected, engine.PersonID(pid))
	}
	bundle.Metrics = engine.Metrics{
		HardViolations: doc.Metrics.HardViolations,
		SoftScore:      doc.Metrics.SoftScore,
		Fairness:       engine.FairnessMetrics{PerPersonCounts: counts, Stdev: doc.Metrics.Fairness.Stdev},
		Stability:      engine.StabilityMetrics{MovesFromPublished: doc.Metrics.Stability.MovesFromPublished, AffectedPersons: affected},
		HealthScore:    doc.Metrics.HealthScore,
		SolveTime:      time.Duration(doc.Metrics.SolveTimeMs) * time.Millisecond,
	}

	for _, v := range doc.Violations.Hard {
		bundle.Violations.Hard = append(bundle.Violations.Hard, fromViolationJSON(v))
	}
	for _, v := range doc.Violations.Soft {
		bundle.Violations.Soft = append(bundle.Violations.Soft, fromViolationJSON(v))
	}
	return bundle, nil
}

func fromViolationJSON(v violationJSON) engine.Violation {
	return engine.Violation{
		ConstraintKey: v.ConstraintKey,
		Severity:      engine.Severity(v.Severity),
		Message:       v.Message,
		EventID:       engine.EventID(v.EventID),
		PersonID:      engine.PersonID(v.PersonID),
		Weight:        v.Weight,
	}
}

func toViolationJSON(v engine.Violation) violationJSON {
	return violationJSON{
		ConstraintKey: v.ConstraintKey,
		Severity:      string(v.Severity),
		Message:       v.Message,
		EventID:       string(v.EventID),
		PersonID:      string(v.PersonID),
		Weight:        v.Weight,
	}
}
