/*
history.go - Publish/history tracking contract

PURPOSE:
  Records which SolutionBundle is the current published baseline per
  organization and tag, so future solves can minimize change against it.
  Persistence is an external collaborator; the engine only depends on this
  interface. "No published solution" and "change minimization disabled"
  behave identically in the solver - both skip the published-deviation term.

IMPLEMENTATIONS:
  - engine/store: In-memory, for tests and dev
  - store/sqlite: SQLite-backed, one current published bundle per org/tag
*/
package engine

import (
	"context"
	"time"
)

// PublishedRecord wraps a bundle with its publish bookkeeping.
type PublishedRecord struct {
	OrgID       OrgID
	Tag         string
	Bundle      *SolutionBundle
	PublishedAt time.Time
}

// PublishStore persists published baselines. Publishing replaces the current
// baseline for (org, tag); history remains listable.
type PublishStore interface {
	// Publish records the bundle as the new baseline for (org, tag).
	Publish(ctx context.Context, orgID OrgID, tag string, bundle *SolutionBundle) error

	// LatestPublished returns the current baseline for (org, tag).
	// Returns ErrSolutionNotFound when nothing has been published.
	LatestPublished(ctx context.Context, orgID OrgID, tag string) (*SolutionBundle, error)

	// ListPublished returns the publish history for an org, newest first.
	ListPublished(ctx context.Context, orgID OrgID) ([]PublishedRecord, error)
}
