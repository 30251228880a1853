/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's domain model from the external API contract. Workspace and
  patch payloads reuse the factory document vocabulary so the same shapes
  work on disk and over the wire; solution payloads use the canonical export
  form.

NAMING CONVENTION:
  - *Request: Request body types from clients
  - *Response: Response wrappers returned to clients

VALIDATION:
  Handlers validate; DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/workspace.go: WorkspaceDoc / PatchDoc schemas
  - export/json.go: Canonical solution form
*/
package api

import (
	"encoding/json"

	"github.com/warp/roster-engine/factory"
)

// =============================================================================
// REQUEST TYPES
// =============================================================================

type ValidateRequest struct {
	Workspace factory.WorkspaceDoc `json:"workspace"`
	From      string               `json:"from"` // 2006-01-02
	To        string               `json:"to"`
}

type SolveRequest struct {
	Workspace factory.WorkspaceDoc `json:"workspace"`
	From      string               `json:"from"`
	To        string               `json:"to"`
	Mode      string               `json:"mode"` // strict | relaxed
	ChangeMin bool                 `json:"change_min"`

	// Tag selects the published baseline for change minimization.
	Tag string `json:"tag"`
}

type DiffRequest struct {
	// Previous and Current are canonical solution documents.
	Previous json.RawMessage `json:"previous"`
	Current  json.RawMessage `json:"current"`
}

type SimulateRequest struct {
	Workspace factory.WorkspaceDoc `json:"workspace"`
	Patch     factory.PatchDoc     `json:"patch"`
	From      string               `json:"from"`
	To        string               `json:"to"`
	Mode      string               `json:"mode"`
}

type PublishRequest struct {
	Org      string          `json:"org"`
	Tag      string          `json:"tag"`
	Solution json.RawMessage `json:"solution"`
}

type ExportRequest struct {
	Workspace factory.WorkspaceDoc `json:"workspace"`
	Solution  json.RawMessage      `json:"solution"`
	Format    string               `json:"format"` // json | csv | xlsx | ics
	Person    string               `json:"person,omitempty"`
	Team      string               `json:"team,omitempty"`
}

// =============================================================================
// RESPONSE TYPES
// =============================================================================

type ValidateResponse struct {
	OK     bool     `json:"ok"`
	Errors []string `json:"errors,omitempty"`
}

type ChangedPairDTO struct {
	EventID  string `json:"event_id"`
	PersonID string `json:"person_id"`
}

type DiffResponse struct {
	Added           []ChangedPairDTO `json:"added"`
	Removed         []ChangedPairDTO `json:"removed"`
	AffectedPersons []string         `json:"affected_persons"`
	TotalChanges    int              `json:"total_changes"`
}

type SimulateResponse struct {
	Baseline    json.RawMessage `json:"baseline"`
	Patched     json.RawMessage `json:"patched"`
	Diff        DiffResponse    `json:"diff"`
	HealthDelta float64         `json:"health_delta"`
}

type PublishResponse struct {
	Org         string `json:"org"`
	Tag         string `json:"tag"`
	SolutionID  string `json:"solution_id"`
	PublishedAt string `json:"published_at"`
}

type ErrorResponse struct {
	Error  string   `json:"error"`
	Issues []string `json:"issues,omitempty"`
}
