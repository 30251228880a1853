package factory_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/roster-engine/engine"
	"github.com/warp/roster-engine/factory"
)

const sampleWorkspaceYAML = `
org:
  id: org-1
  region: us-east
  weights: {fairness: "2", move_published: "7", cooldown_days: 14}
people:
  - {id: p-ada, name: Ada, roles: [usher, greeter], teams: [t-welcome]}
  - {id: p-ben, name: Ben, roles: [usher]}
teams:
  - {id: t-welcome, name: Welcome, members: [p-ada]}
resources:
  - {id: r-hall, type: venue, location: Main Hall, capacity: 200}
events:
  - id: e-sun
    type: service
    start: 2025-09-07T09:00
    end: 2025-09-07T11:00
    resource: r-hall
    required_roles: {usher: 1}
    assignees: [p-ada]
availability:
  - person: p-ada
    vacations:
      - {start: 2025-09-20, end: 2025-09-22, reason: trip}
holidays:
  - {date: 2025-09-01, label: Labor Day, long_weekend: true}
constraints:
  - key: no-long-weekend-services
    scope: org
    severity: hard
    predicate: blackout_window
    params: {long_weekends_only: "true"}
  - key: spread-the-load
    scope: org
    severity: soft
    weight: "2.5"
    predicate: fairness_cap
    params: {max_count: "2"}
`

func TestParseWorkspace_YAML(t *testing.T) {
	ws, err := factory.ParseWorkspace([]byte(sampleWorkspaceYAML))
	require.NoError(t, err)

	assert.Equal(t, engine.OrgID("org-1"), ws.Org.ID)
	assert.Equal(t, "2", ws.Org.Weights.Fairness.String())
	assert.Equal(t, "7", ws.Org.Weights.MovePublished.String())
	assert.Equal(t, 14, ws.Org.Weights.CooldownDays)

	require.Len(t, ws.People, 2)
	ada := ws.PersonByID("p-ada")
	require.NotNil(t, ada)
	assert.True(t, ada.HasRole("greeter"))
	assert.Equal(t, []engine.TeamID{"t-welcome"}, ada.Teams)

	require.Len(t, ws.Events, 1)
	ev := ws.Events[0]
	assert.Equal(t, engine.EventID("e-sun"), ev.ID)
	assert.Equal(t, engine.ResourceID("r-hall"), ev.ResourceID)
	assert.Equal(t, 9, ev.Start.Time.Hour())
	assert.Equal(t, 11, ev.End.Time.Hour())
	assert.Equal(t, []engine.PersonID{"p-ada"}, ev.Assignees)
	assert.Equal(t, 1, ev.RequiredRoles["usher"])

	av := ws.AvailabilityFor("p-ada")
	require.NotNil(t, av)
	require.Len(t, av.Vacations, 1)
	assert.Equal(t, "trip", av.Vacations[0].Reason)
	assert.True(t, av.Vacations[0].Start.SameDay(engine.NewTimePoint(2025, time.September, 20)))

	require.Len(t, ws.Holidays, 1)
	assert.True(t, ws.Holidays[0].IsLongWeekend)

	require.Len(t, ws.Constraints, 2)
	soft := ws.Constraints[1]
	assert.Equal(t, engine.SeveritySoft, soft.Severity)
	require.NotNil(t, soft.Weight)
	assert.Equal(t, "2.5", soft.Weight.String())
}

func TestParseWorkspace_JSONIsAccepted(t *testing.T) {
	raw := []byte(`{"org":{"id":"org-json"},"people":[{"id":"p-1","name":"One","roles":["usher"]}]}`)

	ws, err := factory.ParseWorkspace(raw)
	require.NoError(t, err)
	assert.Equal(t, engine.OrgID("org-json"), ws.Org.ID)
	require.Len(t, ws.People, 1)
}

func TestParseWorkspace_DefaultsWeights(t *testing.T) {
	ws, err := factory.ParseWorkspace([]byte(`{"org":{"id":"org-1"}}`))
	require.NoError(t, err)
	assert.Equal(t, "1", ws.Org.Weights.Fairness.String())
	assert.Equal(t, "5", ws.Org.Weights.MovePublished.String())
}

func TestParseWorkspace_BadEventDate(t *testing.T) {
	raw := []byte(`
org: {id: org-1}
events:
  - {id: e-bad, start: "next sunday", end: 2025-09-07T11:00}
`)
	_, err := factory.ParseWorkspace(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "e-bad")
}

func TestParseWorkspace_AllDayEventDates(t *testing.T) {
	raw := []byte(`
org: {id: org-1}
events:
  - {id: e-day, start: "2025-09-07", end: "2025-09-08", required_roles: {usher: 1}}
`)
	ws, err := factory.ParseWorkspace(raw)
	require.NoError(t, err)
	require.Len(t, ws.Events, 1)
	assert.Equal(t, 0, ws.Events[0].Start.Time.Hour())
}

func TestParseWorkspace_BadConstraintWeight(t *testing.T) {
	raw := []byte(`
org: {id: org-1}
constraints:
  - {key: broken, scope: org, severity: soft, weight: heavy, predicate: fairness_cap, params: {max_count: "1"}}
`)
	_, err := factory.ParseWorkspace(raw)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
}

func TestParsePatch_YAML(t *testing.T) {
	raw := []byte(`
remove_people: [p-ada]
add_events:
  - {id: e-extra, type: service, start: 2025-09-14T09:00, end: 2025-09-14T11:00, required_roles: {usher: 1}}
update_availability:
  - person: p-ben
    vacations:
      - {start: 2025-09-10, end: 2025-09-12}
`)
	patch, err := factory.ParsePatch(raw)
	require.NoError(t, err)

	assert.Equal(t, []engine.PersonID{"p-ada"}, patch.RemovePeople)
	require.Len(t, patch.AddEvents, 1)
	assert.Equal(t, engine.EventID("e-extra"), patch.AddEvents[0].ID)
	require.Len(t, patch.UpdateAvailability, 1)
	assert.Equal(t, engine.PersonID("p-ben"), patch.UpdateAvailability[0].PersonID)
	assert.False(t, patch.IsEmpty())
}

func TestDemoWorkspace_ValidatesAndSolves(t *testing.T) {
	// The demo workspace must stay solvable end to end: it backs the demo
	// HTTP endpoint and doubles as living documentation of the file schema.

	ws := factory.DemoWorkspace()
	from := engine.NewTimePoint(2025, time.September, 1)
	to := engine.NewTimePoint(2025, time.September, 14)

	sc, err := engine.BuildSolveContext(ws, from, to, engine.ModeStrict, nil)
	require.NoError(t, err)

	solver := engine.NewGreedySolver(sc, nil)
	require.NoError(t, solver.BuildModel())

	bundle, err := solver.Solve(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, bundle.Assignments)
	assert.Zero(t, bundle.Metrics.HardViolations,
		"the demo scenario is deliberately feasible")
	assert.Greater(t, bundle.Metrics.HealthScore, 0.0)
}
