/*
scenarios.go - Built-in demo workspaces

PURPOSE:
  Small, self-contained workspaces used by the demo API endpoint, the CLI
  examples, and tests that want a realistic snapshot without a file on disk.
*/
package factory

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/roster-engine/engine"
)

// DemoWorkspace is a one-week parish roster: two Sunday services and a
// midweek rehearsal, six people across two teams, one vacation, one
// long-weekend holiday guarded by a hard blackout constraint.
func DemoWorkspace() *engine.Workspace {
	softWeight := decimal.NewFromInt(2)

	return &engine.Workspace{
		Org: engine.Organization{
			ID:     "org-demo",
			Region: "us-east",
			Weights: engine.SolverWeights{
				Fairness:      decimal.NewFromInt(1),
				MovePublished: decimal.NewFromInt(5),
				CooldownDays:  14,
			},
		},
		People: []engine.Person{
			{ID: "p-ada", Name: "Ada Okafor", Roles: []string{"usher", "reader"}, Teams: []engine.TeamID{"t-welcome"}},
			{ID: "p-ben", Name: "Ben Castillo", Roles: []string{"usher"}, Teams: []engine.TeamID{"t-welcome"}},
			{ID: "p-cleo", Name: "Cleo Martin", Roles: []string{"usher"}, Teams: []engine.TeamID{"t-welcome"}},
			{ID: "p-dev", Name: "Dev Sharma", Roles: []string{"sound"}, Teams: []engine.TeamID{"t-tech"}},
			{ID: "p-eli", Name: "Eli Brandt", Roles: []string{"sound", "reader"}, Teams: []engine.TeamID{"t-tech"}},
			{ID: "p-fay", Name: "Fay Lindqvist", Roles: []string{"reader"}, Teams: []engine.TeamID{"t-welcome"}},
		},
		Teams: []engine.Team{
			{ID: "t-welcome", Name: "Welcome Team", Members: []engine.PersonID{"p-ada", "p-ben", "p-cleo", "p-fay"}},
			{ID: "t-tech", Name: "Tech Team", Members: []engine.PersonID{"p-dev", "p-eli"}},
		},
		Resources: []engine.Resource{
			{ID: "r-hall", Type: "room", Location: "Main Hall", Capacity: 220},
		},
		Events: []engine.Event{
			{
				ID: "e-sun-early", Type: "service",
				Start:         engine.NewTimePointWithMinute(2025, time.September, 7, 9, 0),
				End:           engine.NewTimePointWithMinute(2025, time.September, 7, 10, 30),
				ResourceID:    "r-hall",
				Teams:         []engine.TeamID{"t-welcome", "t-tech"},
				RequiredRoles: map[string]int{"usher": 2, "sound": 1},
			},
			{
				ID: "e-sun-late", Type: "service",
				Start:         engine.NewTimePointWithMinute(2025, time.September, 7, 11, 0),
				End:           engine.NewTimePointWithMinute(2025, time.September, 7, 12, 30),
				ResourceID:    "r-hall",
				Teams:         []engine.TeamID{"t-welcome", "t-tech"},
				RequiredRoles: map[string]int{"usher": 2, "sound": 1},
			},
			{
				ID: "e-rehearsal", Type: "rehearsal",
				Start:         engine.NewTimePointWithMinute(2025, time.September, 10, 19, 0),
				End:           engine.NewTimePointWithMinute(2025, time.September, 10, 20, 30),
				ResourceID:    "r-hall",
				RequiredRoles: map[string]int{"reader": 1, "sound": 1},
			},
		},
		Availability: []engine.Availability{
			{
				PersonID: "p-cleo",
				Vacations: []engine.VacationPeriod{
					{Start: engine.NewTimePoint(2025, time.September, 6), End: engine.NewTimePoint(2025, time.September, 8), Reason: "family trip"},
				},
			},
		},
		Holidays: []engine.Holiday{
			{Date: engine.NewTimePoint(2025, time.September, 1), Label: "Labor Day", IsLongWeekend: true},
		},
		Constraints: []engine.ConstraintBinding{
			{
				Key:       "no-long-weekend-services",
				Scope:     engine.ScopeSchedule,
				Severity:  engine.SeverityHard,
				Predicate: string(engine.PredicateBlackoutWindow),
				Params:    map[string]string{"long_weekends_only": "true"},
			},
			{
				Key:       "spread-the-load",
				Scope:     engine.ScopeOrg,
				Severity:  engine.SeveritySoft,
				Weight:    &softWeight,
				Predicate: string(engine.PredicateFairnessCap),
				Params:    map[string]string{"max_count": "2"},
			},
		},
	}
}
