/*
Package factory provides workspace file loading and demo scenarios.

PURPOSE:
  Converts YAML/JSON workspace documents into engine.Workspace snapshots.
  This is how operators feed the solver without code changes: people,
  events, availability, and constraints live in a versioned file, and the
  factory turns it into the typed domain model.

WHY A FILE FORMAT?
  - Operators can edit rosters without touching code
  - Easy integration with the CLI and admin tooling
  - Version control for workspace definitions

DOCUMENT SCHEMA (YAML; JSON works too, it is a YAML subset):
  org:
    id: org-1
    region: us-east
    weights: {fairness: "1", move_published: "5", cooldown_days: 14}
  people:
    - {id: p1, name: Ada, roles: [usher], teams: [t1]}
  teams:
    - {id: t1, name: Welcome, members: [p1]}
  resources:
    - {id: hall, type: room, location: Main Hall, capacity: 200}
  events:
    - id: e1
      type: service
      start: 2025-09-01T10:00
      end: 2025-09-01T12:00
      resource: hall
      required_roles: {usher: 2}
  availability:
    - person: p1
      vacations:
        - {start: 2025-09-10, end: 2025-09-15, reason: trip}
  holidays:
    - {date: 2025-12-25, label: Christmas, long_weekend: true}
  constraints:
    - key: no-long-weekend
      scope: schedule
      severity: hard
      predicate: blackout_window
      params: {long_weekends_only: "true"}

DATES:
  Event start/end use "2006-01-02T15:04" (minutes); vacation and holiday
  dates use "2006-01-02". All times are UTC.

SEE ALSO:
  - engine/workspace.go: The typed domain model this produces
  - factory/scenarios.go: Built-in demo workspaces
*/
package factory

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/roster-engine/engine"
	"gopkg.in/yaml.v3"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02T15:04"
)

// =============================================================================
// DOCUMENT SCHEMA TYPES
// =============================================================================

type WorkspaceDoc struct {
	Org          OrgDoc            `yaml:"org" json:"org"`
	People       []PersonDoc       `yaml:"people" json:"people"`
	Teams        []TeamDoc         `yaml:"teams" json:"teams"`
	Resources    []ResourceDoc     `yaml:"resources" json:"resources"`
	Events       []EventDoc        `yaml:"events" json:"events"`
	Availability []AvailabilityDoc `yaml:"availability" json:"availability"`
	Holidays     []HolidayDoc      `yaml:"holidays" json:"holidays"`
	Constraints  []ConstraintDoc   `yaml:"constraints" json:"constraints"`
}

type OrgDoc struct {
	ID      string     `yaml:"id" json:"id"`
	Region  string     `yaml:"region" json:"region"`
	Weights WeightsDoc `yaml:"weights" json:"weights"`
}

type WeightsDoc struct {
	Fairness      string `yaml:"fairness" json:"fairness"`
	MovePublished string `yaml:"move_published" json:"move_published"`
	CooldownDays  int    `yaml:"cooldown_days" json:"cooldown_days"`
}

type PersonDoc struct {
	ID     string   `yaml:"id" json:"id"`
	Name   string   `yaml:"name" json:"name"`
	Roles  []string `yaml:"roles" json:"roles"`
	Skills []string `yaml:"skills" json:"skills"`
	Teams  []string `yaml:"teams" json:"teams"`
}

type TeamDoc struct {
	ID      string   `yaml:"id" json:"id"`
	Name    string   `yaml:"name" json:"name"`
	Members []string `yaml:"members" json:"members"`
}

type ResourceDoc struct {
	ID       string `yaml:"id" json:"id"`
	Type     string `yaml:"type" json:"type"`
	Location string `yaml:"location" json:"location"`
	Capacity int    `yaml:"capacity" json:"capacity"`
}

type EventDoc struct {
	ID            string         `yaml:"id" json:"id"`
	Type          string         `yaml:"type" json:"type"`
	Start         string         `yaml:"start" json:"start"`
	End           string         `yaml:"end" json:"end"`
	Resource      string         `yaml:"resource" json:"resource"`
	Teams         []string       `yaml:"teams" json:"teams"`
	RequiredRoles map[string]int `yaml:"required_roles" json:"required_roles"`
	Assignees     []string       `yaml:"assignees" json:"assignees"`
	Series        string         `yaml:"series" json:"series"`
}

type AvailabilityDoc struct {
	Person     string         `yaml:"person" json:"person"`
	Recurrence string         `yaml:"recurrence" json:"recurrence"`
	Vacations  []VacationDoc  `yaml:"vacations" json:"vacations"`
	Exceptions []ExceptionDoc `yaml:"exceptions" json:"exceptions"`
}

type VacationDoc struct {
	Start  string `yaml:"start" json:"start"`
	End    string `yaml:"end" json:"end"`
	Reason string `yaml:"reason" json:"reason"`
}

type ExceptionDoc struct {
	Date   string `yaml:"date" json:"date"`
	Reason string `yaml:"reason" json:"reason"`
}

type HolidayDoc struct {
	Date        string `yaml:"date" json:"date"`
	Label       string `yaml:"label" json:"label"`
	LongWeekend bool   `yaml:"long_weekend" json:"long_weekend"`
}

type ConstraintDoc struct {
	Key       string            `yaml:"key" json:"key"`
	Scope     string            `yaml:"scope" json:"scope"`
	Severity  string            `yaml:"severity" json:"severity"`
	Weight    string            `yaml:"weight" json:"weight"`
	Predicate string            `yaml:"predicate" json:"predicate"`
	Params    map[string]string `yaml:"params" json:"params"`
}

// =============================================================================
// LOADING
// =============================================================================

// LoadWorkspace reads and converts a workspace document from disk.
func LoadWorkspace(path string) (*engine.Workspace, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace file: %w", err)
	}
	return ParseWorkspace(raw)
}

// ParseWorkspace converts a YAML/JSON workspace document.
func ParseWorkspace(raw []byte) (*engine.Workspace, error) {
	var doc WorkspaceDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode workspace document: %w", err)
	}
	return buildWorkspace(doc)
}

func buildWorkspace(doc WorkspaceDoc) (*engine.Workspace, error) {
	ws := &engine.Workspace{}

	weights, err := parseWeights(doc.Org.Weights)
	if err != nil {
		return nil, err
	}
	ws.Org = engine.Organization{
		ID:      engine.OrgID(doc.Org.ID),
		Region:  doc.Org.Region,
		Weights: weights,
	}

	for _, p := range doc.People {
		ws.People = append(ws.People, buildPerson(p))
	}

	for _, t := range doc.Teams {
		team := engine.Team{ID: engine.TeamID(t.ID), Name: t.Name}
		for _, m := range t.Members {
			team.Members = append(team.Members, engine.PersonID(m))
		}
		ws.Teams = append(ws.Teams, team)
	}

	for _, r := range doc.Resources {
		ws.Resources = append(ws.Resources, engine.Resource{
			ID:       engine.ResourceID(r.ID),
			Type:     r.Type,
			Location: r.Location,
			Capacity: r.Capacity,
		})
	}

	for _, e := range doc.Events {
		ev, err := buildEvent(e)
		if err != nil {
			return nil, err
		}
		ws.Events = append(ws.Events, ev)
	}

	for _, a := range doc.Availability {
		av, err := buildAvailability(a)
		if err != nil {
			return nil, err
		}
		ws.Availability = append(ws.Availability, av)
	}

	for _, h := range doc.Holidays {
		date, err := parseDate(h.Date)
		if err != nil {
			return nil, fmt.Errorf("holiday %q: bad date: %w", h.Label, err)
		}
		ws.Holidays = append(ws.Holidays, engine.Holiday{Date: date, Label: h.Label, IsLongWeekend: h.LongWeekend})
	}

	for _, c := range doc.Constraints {
		binding := engine.ConstraintBinding{
			Key:       c.Key,
			Scope:     engine.ConstraintScope(c.Scope),
			Severity:  engine.Severity(c.Severity),
			Predicate: c.Predicate,
			Params:    c.Params,
		}
		if c.Weight != "" {
			w, err := decimal.NewFromString(c.Weight)
			if err != nil {
				return nil, fmt.Errorf("constraint %q: bad weight %q: %w", c.Key, c.Weight, err)
			}
			binding.Weight = &w
		}
		ws.Constraints = append(ws.Constraints, binding)
	}

	return ws, nil
}

func buildPerson(p PersonDoc) engine.Person {
	return engine.Person{
		ID:     engine.PersonID(p.ID),
		Name:   p.Name,
		Roles:  p.Roles,
		Skills: p.Skills,
		Teams:  toTeamIDs(p.Teams),
	}
}

func buildEvent(e EventDoc) (engine.Event, error) {
	start, err := parseDateTime(e.Start)
	if err != nil {
		return engine.Event{}, fmt.Errorf("event %s: bad start: %w", e.ID, err)
	}
	end, err := parseDateTime(e.End)
	if err != nil {
		return engine.Event{}, fmt.Errorf("event %s: bad end: %w", e.ID, err)
	}
	ev := engine.Event{
		ID:            engine.EventID(e.ID),
		Type:          e.Type,
		Start:         start,
		End:           end,
		ResourceID:    engine.ResourceID(e.Resource),
		Teams:         toTeamIDs(e.Teams),
		RequiredRoles: e.RequiredRoles,
		SeriesID:      e.Series,
	}
	for _, a := range e.Assignees {
		ev.Assignees = append(ev.Assignees, engine.PersonID(a))
	}
	return ev, nil
}

func buildAvailability(a AvailabilityDoc) (engine.Availability, error) {
	av := engine.Availability{
		PersonID:       engine.PersonID(a.Person),
		RecurrenceRule: a.Recurrence,
	}
	for _, v := range a.Vacations {
		start, err := parseDate(v.Start)
		if err != nil {
			return av, fmt.Errorf("availability for %s: bad vacation start: %w", a.Person, err)
		}
		end, err := parseDate(v.End)
		if err != nil {
			return av, fmt.Errorf("availability for %s: bad vacation end: %w", a.Person, err)
		}
		av.Vacations = append(av.Vacations, engine.VacationPeriod{Start: start, End: end, Reason: v.Reason})
	}
	for _, x := range a.Exceptions {
		date, err := parseDate(x.Date)
		if err != nil {
			return av, fmt.Errorf("availability for %s: bad exception date: %w", a.Person, err)
		}
		av.Exceptions = append(av.Exceptions, engine.DateException{Date: date, Reason: x.Reason})
	}
	return av, nil
}

func parseWeights(doc WeightsDoc) (engine.SolverWeights, error) {
	out := engine.SolverWeights{
		Fairness:      decimal.NewFromInt(1),
		MovePublished: decimal.NewFromInt(5),
		CooldownDays:  doc.CooldownDays,
	}
	if doc.Fairness != "" {
		w, err := decimal.NewFromString(doc.Fairness)
		if err != nil {
			return out, fmt.Errorf("org weights: bad fairness %q: %w", doc.Fairness, err)
		}
		out.Fairness = w
	}
	if doc.MovePublished != "" {
		w, err := decimal.NewFromString(doc.MovePublished)
		if err != nil {
			return out, fmt.Errorf("org weights: bad move_published %q: %w", doc.MovePublished, err)
		}
		out.MovePublished = w
	}
	return out, nil
}

func parseDate(s string) (engine.TimePoint, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return engine.TimePoint{}, err
	}
	return engine.NewTimePoint(t.Year(), t.Month(), t.Day()), nil
}

func parseDateTime(s string) (engine.TimePoint, error) {
	t, err := time.Parse(dateTimeLayout, s)
	if err != nil {
		// Accept plain dates for all-day events.
		d, derr := time.Parse(dateLayout, s)
		if derr != nil {
			return engine.TimePoint{}, err
		}
		t = d
	}
	return engine.NewTimePointWithMinute(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute()), nil
}

func toTeamIDs(ids []string) []engine.TeamID {
	var out []engine.TeamID
	for _, id := range ids {
		out = append(out, engine.TeamID(id))
	}
	return out
}
