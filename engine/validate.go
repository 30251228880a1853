/*
validate.go - Referential/semantic workspace validation

PURPOSE:
  Checks that every cross-reference in a Workspace resolves and that temporal
  fields are internally consistent, BEFORE any solve is attempted. Failures
  accumulate into one aggregate ValidationError so the operator sees every
  problem at once instead of fixing them one re-run at a time.

CHECKS:
  - Team members resolve to people
  - Event resource/team references resolve
  - Event pre-populated assignees resolve to people
  - Availability records reference existing people
  - Event end strictly after start
  - Vacation start <= end
  - Constraint scope in the enumerated set
  - Constraint severity in {hard, soft}; soft requires a weight
  - Constraint predicates parse (unknown predicates are errors)

SIDE EFFECTS:
  None. Read-only over the snapshot.
*/
package engine

import (
	"fmt"
)

// Validate checks the workspace for the given solve period. Returns nil when
// clean, otherwise a *ValidationError listing every issue found.
func Validate(ws *Workspace, period Period) error {
	v := &validator{ws: ws, period: period}

	v.checkTeams()
	v.checkResources()
	v.checkEvents()
	v.checkAvailability()
	v.checkConstraints()

	if len(v.issues) > 0 {
		return &ValidationError{Issues: v.issues}
	}
	return nil
}

type validator struct {
	ws     *Workspace
	period Period
	issues []string
}

func (v *validator) addf(format string, args ...any) {
	v.issues = append(v.issues, fmt.Sprintf(format, args...))
}

func (v *validator) checkTeams() {
	for _, team := range v.ws.Teams {
		for _, member := range team.Members {
			if v.ws.PersonByID(member) == nil {
				v.addf("team %s: member %s does not resolve to a person", team.ID, member)
			}
		}
	}
}

func (v *validator) checkResources() {
	seen := make(map[ResourceID]bool, len(v.ws.Resources))
	for _, r := range v.ws.Resources {
		if seen[r.ID] {
			v.addf("resource %s: duplicate id", r.ID)
		}
		seen[r.ID] = true
	}
}

func (v *validator) checkEvents() {
	teams := make(map[TeamID]bool, len(v.ws.Teams))
	for _, t := range v.ws.Teams {
		teams[t.ID] = true
	}
	resources := make(map[ResourceID]bool, len(v.ws.Resources))
	for _, r := range v.ws.Resources {
		resources[r.ID] = true
	}

	for _, ev := range v.ws.Events {
		if !ev.End.Time.After(ev.Start.Time) {
			v.addf("event %s: end %s is not after start %s", ev.ID, ev.End, ev.Start)
		}
		if ev.ResourceID != "" && !resources[ev.ResourceID] {
			v.addf("event %s: resource %s does not resolve", ev.ID, ev.ResourceID)
		}
		for _, teamID := range ev.Teams {
			if !teams[teamID] {
				v.addf("event %s: team %s does not resolve", ev.ID, teamID)
			}
		}
		for _, personID := range ev.Assignees {
			if v.ws.PersonByID(personID) == nil {
				v.addf("event %s: assignee %s does not resolve to a person", ev.ID, personID)
			}
		}
		for role, count := range ev.RequiredRoles {
			if count <= 0 {
				v.addf("event %s: required role %q has non-positive count %d", ev.ID, role, count)
			}
		}
	}
}

func (v *validator) checkAvailability() {
	for _, av := range v.ws.Availability {
		if v.ws.PersonByID(av.PersonID) == nil {
			v.addf("availability: person %s does not resolve", av.PersonID)
		}
		for _, vac := range av.Vacations {
			if vac.End.Time.Before(vac.Start.Time) {
				v.addf("availability for %s: vacation end %s before start %s",
					av.PersonID, vac.End, vac.Start)
			}
		}
	}
}

func (v *validator) checkConstraints() {
	for _, c := range v.ws.Constraints {
		if !scopeKnown(c.Scope) {
			v.addf("constraint %q: unknown scope %q", c.Key, c.Scope)
		}
		switch c.Severity {
		case SeverityHard:
			// no weight requirement
		case SeveritySoft:
			if c.Weight == nil {
				v.addf("constraint %q: soft severity requires a weight", c.Key)
			}
		default:
			v.addf("constraint %q: unknown severity %q", c.Key, c.Severity)
		}
	}

	_, errs := CompileConstraints(v.ws.Constraints)
	for _, err := range errs {
		v.issues = append(v.issues, err.Error())
	}
}

func scopeKnown(s ConstraintScope) bool {
	for _, known := range KnownScopes {
		if s == known {
			return true
		}
	}
	return false
}
