/*
solver.go - Greedy assignment engine

PURPOSE:
  The solver proper. Consumes a SolveContext, produces a SolutionBundle with
  assignments, hard/soft violation lists, and computed metrics. Greedy,
  single-pass, no backtracking: it trades optimality for speed and
  predictability and is documented as a heuristic, not an exact solver.

STATE MACHINE:
  Unbuilt -> ModelBuilt -> Solved

  BuildModel   indexes availability, people by role, and pre-computes each
               event's candidate sets through the conflict detector and hard
               blackout filters.
  Solve        the only operation that produces a SolutionBundle. Calling it
               before BuildModel is a contract error.

ALGORITHM (per event, chronological order, event id tie-break):
  1. For each required role with count N, rank that event's candidates by a
     composite key: running assignment count (lowest first), published-
     baseline penalty (0 if the person held this event in the baseline),
     person id.
  2. Assign the top N; fewer eligible candidates than N records a
     role-coverage shortfall violation and the event stays partially staffed.
  3. Running per-person counts update immediately so later events see the
     load. Hard max-per-week caps filter candidates before ranking.
  4. Events structurally blocked by a hard blackout are left fully unassigned
     and recorded as hard violations.
  5. Soft constraints never remove candidates; they contribute
     weight x evaluation to the reported soft score after the pass.

FAILURE SEMANTICS:
  A fully infeasible solve is not an error - it is a valid bundle with
  hard violations and empty assignments. Malformed context is a validation
  concern; the engine fails fast if it surfaces here anyway.

SEE ALSO:
  - context.go: SolveContext assembly
  - conflict.go: Candidate pruning
  - fairness.go: Metrics computed at solve end
  - exact.go: The Solver interface and the exact-solver stub
*/
package engine

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	solverName    = "greedy"
	solverVersion = "1.0"
)

// =============================================================================
// GREEDY SOLVER
// =============================================================================

type solverState int

const (
	stateUnbuilt solverState = iota
	stateModelBuilt
	stateSolved
)

type GreedySolver struct {
	sc     *SolveContext
	logger *zap.Logger
	state  solverState

	// Built by BuildModel.
	eventsByID   map[EventID]Event
	eventsByDate map[string][]EventID
	peopleByRole map[string][]PersonID
	availability map[PersonID]*Availability
	candidates   map[EventID]map[string][]PersonID
	blockedBy    map[EventID]string // event id -> blocking constraint key
	eligible     map[PersonID]bool
	manual       map[EventID][]Assignment

	// Change minimization.
	changeMin       bool
	weightMovePub   decimal.Decimal
	publishedHolder map[EventID]map[PersonID]bool
}

// NewGreedySolver creates a solver over a built context. A nil logger
// defaults to zap.NewNop so library callers are not forced to configure
// logging.
func NewGreedySolver(sc *SolveContext, logger *zap.Logger) *GreedySolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GreedySolver{sc: sc, logger: logger}
}

// BuildModel transitions Unbuilt -> ModelBuilt.
func (s *GreedySolver) BuildModel() error {
	if s.state != stateUnbuilt {
		return ErrModelAlreadyBuilt
	}

	ws := s.sc.Workspace
	cal := ws.Calendar()

	s.eventsByID = make(map[EventID]Event, len(s.sc.Events))
	s.eventsByDate = make(map[string][]EventID)
	for _, ev := range s.sc.Events {
		s.eventsByID[ev.ID] = ev
		key := ev.Start.DateKey()
		s.eventsByDate[key] = append(s.eventsByDate[key], ev.ID)
	}

	s.peopleByRole = make(map[string][]PersonID)
	for _, p := range ws.People {
		for _, role := range p.Roles {
			s.peopleByRole[role] = append(s.peopleByRole[role], p.ID)
		}
	}

	s.availability = make(map[PersonID]*Availability, len(ws.Availability))
	for i := range ws.Availability {
		s.availability[ws.Availability[i].PersonID] = &ws.Availability[i]
	}

	// Hard org/schedule-scope blackouts structurally block whole events.
	s.blockedBy = make(map[EventID]string)
	for _, c := range s.sc.Constraints {
		bw, ok := c.Predicate.(BlackoutWindow)
		if !ok || c.Binding.Severity != SeverityHard {
			continue
		}
		if c.Binding.Scope != ScopeOrg && c.Binding.Scope != ScopeSchedule {
			continue
		}
		for _, ev := range s.sc.Events {
			if bw.Matches(ev.Start, cal) {
				s.blockedBy[ev.ID] = c.Binding.Key
			}
		}
	}

	// Operator pre-populated assignees are carried as manual assignments:
	// they count toward load and block re-claiming the same event.
	s.manual = make(map[EventID][]Assignment)
	var existing []Assignment
	for _, ev := range s.sc.Events {
		for _, pid := range ev.Assignees {
			a := Assignment{EventID: ev.ID, PersonID: pid}
			s.manual[ev.ID] = append(s.manual[ev.ID], a)
			existing = append(existing, a)
		}
	}

	// Pre-compute per-event, per-role candidate sets via the conflict
	// detector: role match AND not blocked by time off AND not already
	// assigned. Advisory double-booking does not prune here.
	s.candidates = make(map[EventID]map[string][]PersonID, len(s.sc.Events))
	s.eligible = make(map[PersonID]bool)
	for _, ev := range s.sc.Events {
		if _, blocked := s.blockedBy[ev.ID]; blocked {
			continue
		}
		byRole := make(map[string][]PersonID, len(ev.RequiredRoles))
		for role := range ev.RequiredRoles {
			for _, pid := range s.peopleByRole[role] {
				person := ws.PersonByID(pid)
				report := CheckConflicts(*person, ev, existing, s.eventsByID, s.availability[pid])
				if !report.CanAssign {
					continue
				}
				byRole[role] = append(byRole[role], pid)
				s.eligible[pid] = true
			}
		}
		s.candidates[ev.ID] = byRole
	}

	s.state = stateModelBuilt
	s.logger.Debug("model built",
		zap.Int("events", len(s.sc.Events)),
		zap.Int("eligible_people", len(s.eligible)),
		zap.Int("blocked_events", len(s.blockedBy)))
	return nil
}

// EnableChangeMinimization biases ranking toward the published baseline.
// Must be called after BuildModel and before Solve. Without a published
// solution in the context this is a no-op with a logged warning, not an
// error - callers should not have to know whether a baseline exists yet.
func (s *GreedySolver) EnableChangeMinimization(enabled bool, weightMovePublished decimal.Decimal) error {
	if s.state != stateModelBuilt {
		if s.state == stateUnbuilt {
			return ErrModelNotBuilt
		}
		return ErrAlreadySolved
	}
	if !enabled {
		s.changeMin = false
		s.publishedHolder = nil
		return nil
	}
	if s.sc.Published == nil {
		s.logger.Warn("change minimization requested without a published baseline; ignoring")
		return nil
	}

	s.changeMin = true
	s.weightMovePub = weightMovePublished
	s.publishedHolder = make(map[EventID]map[PersonID]bool)
	for _, ea := range s.sc.Published.Assignments {
		holders := make(map[PersonID]bool, len(ea.Assignees))
		for _, a := range ea.Assignees {
			holders[a.PersonID] = true
		}
		s.publishedHolder[ea.EventID] = holders
	}
	return nil
}

// IncrementalUpdate applies a patch without a full rebuild. Not implemented
// by the greedy solver: it fails closed rather than silently ignoring the
// patch.
func (s *GreedySolver) IncrementalUpdate(Patch) error {
	return ErrIncrementalUnsupported
}

// Solve transitions ModelBuilt -> Solved and produces the SolutionBundle.
// The context is checked between events so very large horizons stay
// responsive to caller deadlines; the pass itself is linear.
func (s *GreedySolver) Solve(ctx context.Context) (*SolutionBundle, error) {
	if s.state == stateUnbuilt {
		return nil, ErrModelNotBuilt
	}
	if s.state == stateSolved {
		return nil, ErrAlreadySolved
	}

	started := time.Now()
	solutionID := SolutionID(uuid.NewString())

	counts := make(map[PersonID]int, len(s.eligible))
	weekly := make(map[PersonID]map[string]int)
	var (
		perEvent   []EventAssignees
		violations Violations
	)

	hardWeekCaps, softConstraints := s.splitConstraints()

	for _, ev := range s.sc.Events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		assignees := append([]Assignment(nil), s.manual[ev.ID]...)
		for _, a := range assignees {
			counts[a.PersonID]++
			bumpWeek(weekly, a.PersonID, ev.Start)
		}

		if key, blocked := s.blockedBy[ev.ID]; blocked {
			violations.Hard = append(violations.Hard, Violation{
				ConstraintKey: key,
				Severity:      SeverityHard,
				Message:       fmt.Sprintf("event %s falls inside blackout window", ev.ID),
				EventID:       ev.ID,
			})
			perEvent = append(perEvent, EventAssignees{EventID: ev.ID, Assignees: assignees})
			continue
		}

		taken := make(map[PersonID]bool, 4)
		for _, a := range assignees {
			taken[a.PersonID] = true
		}

		for _, role := range sortedRoles(ev.RequiredRoles) {
			needed := ev.RequiredRoles[role]
			pool := s.rankCandidates(ev, role, taken, counts, weekly, hardWeekCaps)

			selected := pool
			if len(selected) > needed {
				selected = selected[:needed]
			}
			for _, pid := range selected {
				assignees = append(assignees, Assignment{
					EventID:    ev.ID,
					PersonID:   pid,
					Role:       role,
					SolutionID: solutionID,
				})
				taken[pid] = true
				counts[pid]++
				bumpWeek(weekly, pid, ev.Start)
			}

			if shortfall := needed - len(selected); shortfall > 0 {
				violations = s.recordShortfall(violations, ev, role, shortfall)
			}
		}

		perEvent = append(perEvent, EventAssignees{EventID: ev.ID, Assignees: assignees})
	}

	violations.Soft = append(violations.Soft, s.evaluateSoft(softConstraints, counts, weekly)...)

	softScore := decimal.Zero
	for _, v := range violations.Soft {
		softScore = softScore.Add(v.Weight)
	}

	bundle := &SolutionBundle{
		Meta: SolutionMeta{
			ID:            solutionID,
			OrgID:         s.sc.Workspace.Org.ID,
			GeneratedAt:   time.Now().UTC(),
			Range:         s.sc.Range,
			Mode:          s.sc.Mode,
			ChangeMin:     s.changeMin,
			SolverName:    solverName,
			SolverVersion: solverVersion,
			Strategy:      "chronological-greedy",
		},
		Assignments: perEvent,
		Violations:  violations,
	}

	fairness := ComputeFairness(bundle.AllAssignments(), s.eligiblePeople())
	stability := s.computeStability(bundle)
	bundle.Metrics = Metrics{
		HardViolations: len(violations.Hard),
		SoftScore:      softScore,
		Fairness:       fairness,
		Stability:      stability,
		HealthScore:    ComputeHealthScore(len(violations.Hard), softScore, fairness.Stdev),
		SolveTime:      time.Since(started),
	}

	s.state = stateSolved
	s.logger.Info("solve finished",
		zap.String("solution_id", string(solutionID)),
		zap.Int("events", len(s.sc.Events)),
		zap.Int("hard_violations", bundle.Metrics.HardViolations),
		zap.Float64("health_score", bundle.Metrics.HealthScore),
		zap.Duration("solve_time", bundle.Metrics.SolveTime))
	return bundle, nil
}

// =============================================================================
// CANDIDATE RANKING
// =============================================================================

// rankCandidates filters and orders the pre-computed candidate pool for one
// (event, role). Ordering is the composite key from the algorithm note:
// running count asc, published penalty asc, person id asc.
func (s *GreedySolver) rankCandidates(
	ev Event,
	role string,
	taken map[PersonID]bool,
	counts map[PersonID]int,
	weekly map[PersonID]map[string]int,
	hardWeekCaps []MaxPerWeek,
) []PersonID {
	var pool []PersonID
	for _, pid := range s.candidates[ev.ID][role] {
		if taken[pid] {
			continue
		}
		if exceedsWeekCap(weekly, pid, ev.Start, hardWeekCaps) {
			continue
		}
		pool = append(pool, pid)
	}

	sort.Slice(pool, func(i, j int) bool {
		a, b := pool[i], pool[j]
		if counts[a] != counts[b] {
			return counts[a] < counts[b]
		}
		pa, pb := s.publishedPenalty(ev.ID, a), s.publishedPenalty(ev.ID, b)
		if cmp := pa.Cmp(pb); cmp != 0 {
			return cmp < 0
		}
		return a < b
	})
	return pool
}

// publishedPenalty is 0 when change minimization is on and the person held
// this exact event in the baseline, the configured move weight otherwise.
// With change minimization off (or no baseline) the term is 0 for everyone,
// so both situations rank identically.
func (s *GreedySolver) publishedPenalty(eventID EventID, pid PersonID) decimal.Decimal {
	if !s.changeMin {
		return decimal.Zero
	}
	if s.publishedHolder[eventID][pid] {
		return decimal.Zero
	}
	return s.weightMovePub
}

// =============================================================================
// VIOLATION RECORDING
// =============================================================================

// recordShortfall classifies a role-coverage gap as hard or soft according
// to the owning role_coverage constraint, falling back on the solve mode.
func (s *GreedySolver) recordShortfall(v Violations, ev Event, role string, shortfall int) Violations {
	key := "role-coverage"
	severity := SeverityHard
	weight := decimal.NewFromInt(1)

	if c, ok := s.roleCoverageConstraint(role); ok {
		key = c.Binding.Key
		severity = c.Binding.Severity
		if c.Binding.Weight != nil {
			weight = *c.Binding.Weight
		}
	} else if s.sc.Mode == ModeRelaxed {
		severity = SeveritySoft
	}

	msg := fmt.Sprintf("event %s: role %q short %d of %d required",
		ev.ID, role, shortfall, ev.RequiredRoles[role])

	if severity == SeverityHard {
		v.Hard = append(v.Hard, Violation{
			ConstraintKey: key,
			Severity:      SeverityHard,
			Message:       msg,
			EventID:       ev.ID,
		})
	} else {
		v.Soft = append(v.Soft, Violation{
			ConstraintKey: key,
			Severity:      SeveritySoft,
			Message:       msg,
			EventID:       ev.ID,
			Weight:        weight.Mul(decimal.NewFromInt(int64(shortfall))),
		})
	}
	return v
}

func (s *GreedySolver) roleCoverageConstraint(role string) (CompiledConstraint, bool) {
	for _, c := range s.sc.Constraints {
		rc, ok := c.Predicate.(RoleCoverage)
		if !ok {
			continue
		}
		if rc.Role == "" || rc.Role == role {
			return c, true
		}
	}
	return CompiledConstraint{}, false
}

// =============================================================================
// SOFT CONSTRAINT EVALUATION
// =============================================================================

func (s *GreedySolver) splitConstraints() (hardWeekCaps []MaxPerWeek, soft []CompiledConstraint) {
	for _, c := range s.sc.Constraints {
		switch pred := c.Predicate.(type) {
		case MaxPerWeek:
			if c.Binding.Severity == SeverityHard {
				hardWeekCaps = append(hardWeekCaps, pred)
			} else {
				soft = append(soft, c)
			}
		case FairnessCap:
			if c.Binding.Severity == SeveritySoft {
				soft = append(soft, c)
			}
		}
	}
	return hardWeekCaps, soft
}

// evaluateSoft computes soft-score contributions after the assignment pass.
// Soft constraints never removed candidates; they only bias the objective
// reported in metrics.
func (s *GreedySolver) evaluateSoft(constraints []CompiledConstraint, counts map[PersonID]int, weekly map[PersonID]map[string]int) []Violation {
	var out []Violation
	for _, c := range constraints {
		weight := decimal.NewFromInt(1)
		if c.Binding.Weight != nil {
			weight = *c.Binding.Weight
		}

		switch pred := c.Predicate.(type) {
		case MaxPerWeek:
			for _, pid := range sortedPeople(counts) {
				for _, week := range sortedWeeks(weekly[pid]) {
					if excess := weekly[pid][week] - pred.Limit; excess > 0 {
						out = append(out, Violation{
							ConstraintKey: c.Binding.Key,
							Severity:      SeveritySoft,
							Message:       fmt.Sprintf("person %s has %d assignments in week %s (limit %d)", pid, weekly[pid][week], week, pred.Limit),
							PersonID:      pid,
							Weight:        weight.Mul(decimal.NewFromInt(int64(excess))),
						})
					}
				}
			}
		case FairnessCap:
			for _, pid := range sortedPeople(counts) {
				if excess := counts[pid] - pred.MaxCount; excess > 0 {
					out = append(out, Violation{
						ConstraintKey: c.Binding.Key,
						Severity:      SeveritySoft,
						Message:       fmt.Sprintf("person %s carries %d assignments (cap %d)", pid, counts[pid], pred.MaxCount),
						PersonID:      pid,
						Weight:        weight.Mul(decimal.NewFromInt(int64(excess))),
					})
				}
			}
		}
	}
	return out
}

// =============================================================================
// STABILITY
// =============================================================================

func (s *GreedySolver) computeStability(bundle *SolutionBundle) StabilityMetrics {
	if s.sc.Published == nil {
		return StabilityMetrics{}
	}
	d := Diff(s.sc.Published, bundle)
	return StabilityMetrics{
		MovesFromPublished: d.TotalChanges,
		AffectedPersons:    d.AffectedPersons,
	}
}

// =============================================================================
// HELPERS
// =============================================================================

func (s *GreedySolver) eligiblePeople() []PersonID {
	out := make([]PersonID, 0, len(s.eligible))
	for pid := range s.eligible {
		out = append(out, pid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedRoles(required map[string]int) []string {
	roles := make([]string, 0, len(required))
	for r := range required {
		roles = append(roles, r)
	}
	sort.Strings(roles)
	return roles
}

func sortedPeople(counts map[PersonID]int) []PersonID {
	out := make([]PersonID, 0, len(counts))
	for pid := range counts {
		out = append(out, pid)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func sortedWeeks(weeks map[string]int) []string {
	out := make([]string, 0, len(weeks))
	for w := range weeks {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

func weekKey(tp TimePoint) string {
	year, week := tp.Time.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

func bumpWeek(weekly map[PersonID]map[string]int, pid PersonID, at TimePoint) {
	if weekly[pid] == nil {
		weekly[pid] = make(map[string]int)
	}
	weekly[pid][weekKey(at)]++
}

func exceedsWeekCap(weekly map[PersonID]map[string]int, pid PersonID, at TimePoint, caps []MaxPerWeek) bool {
	if len(caps) == 0 {
		return false
	}
	current := weekly[pid][weekKey(at)]
	for _, c := range caps {
		if current >= c.Limit {
			return true
		}
	}
	return false
}
