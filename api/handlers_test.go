/*
handlers_test.go - Unit tests for API handlers

Tests for:
- Workspace validation responses (clean vs issue list)
- Solve endpoint and canonical bundle shape
- Publish / latest-published round trip
- Structural diff endpoint
- Export content negotiation
*/
package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/warp/roster-engine/engine/store"
	"github.com/warp/roster-engine/factory"
)

// =============================================================================
// TEST HELPERS
// =============================================================================

func newTestRouter() http.Handler {
	return NewRouter(NewHandler(store.NewMemory(), nil))
}

// rosterDoc is a minimal valid workspace document: one two-hour service
// needing one usher, two ushers on the roster.
func rosterDoc() factory.WorkspaceDoc {
	return factory.WorkspaceDoc{
		Org: factory.OrgDoc{ID: "org-1", Region: "us-east"},
		People: []factory.PersonDoc{
			{ID: "p-a", Name: "Ada", Roles: []string{"usher"}},
			{ID: "p-b", Name: "Ben", Roles: []string{"usher"}},
		},
		Resources: []factory.ResourceDoc{
			{ID: "r-hall", Type: "room", Location: "Main Hall", Capacity: 100},
		},
		Events: []factory.EventDoc{
			{
				ID:            "e-1",
				Type:          "service",
				Start:         "2025-09-07T09:00",
				End:           "2025-09-07T11:00",
				Resource:      "r-hall",
				RequiredRoles: map[string]int{"usher": 1},
			},
		},
	}
}

func doJSON(t *testing.T, router http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

// solveBundle runs a plain solve and returns the canonical solution document.
func solveBundle(t *testing.T, router http.Handler) json.RawMessage {
	t.Helper()

	rec := doJSON(t, router, http.MethodPost, "/api/solve", SolveRequest{
		Workspace: rosterDoc(),
		From:      "2025-09-01",
		To:        "2025-09-14",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("solve returned %d: %s", rec.Code, rec.Body.String())
	}
	return json.RawMessage(rec.Body.Bytes())
}

// =============================================================================
// VALIDATE
// =============================================================================

func TestValidate_CleanWorkspace(t *testing.T) {
	// GIVEN: A router and a referentially sound workspace
	router := newTestRouter()

	// WHEN: Validating it over a range that covers the event
	rec := doJSON(t, router, http.MethodPost, "/api/validate", ValidateRequest{
		Workspace: rosterDoc(),
		From:      "2025-09-01",
		To:        "2025-09-14",
	})

	// THEN: The response is 200 with ok=true
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp ValidateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK {
		t.Errorf("expected ok=true, got errors %v", resp.Errors)
	}
}

func TestValidate_BrokenWorkspaceReturnsIssues(t *testing.T) {
	// GIVEN: A workspace whose event names a person that does not exist
	router := newTestRouter()
	doc := rosterDoc()
	doc.Events[0].Assignees = []string{"p-ghost"}

	// WHEN: Validating
	rec := doJSON(t, router, http.MethodPost, "/api/validate", ValidateRequest{
		Workspace: doc,
		From:      "2025-09-01",
		To:        "2025-09-14",
	})

	// THEN: 400 with the issue naming the dangling reference
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp ValidateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.OK {
		t.Error("expected ok=false")
	}
	if len(resp.Errors) == 0 || !strings.Contains(resp.Errors[0], "p-ghost") {
		t.Errorf("expected an issue naming p-ghost, got %v", resp.Errors)
	}
}

func TestValidate_BadDateRange(t *testing.T) {
	// GIVEN: A request with a malformed from date
	router := newTestRouter()

	// WHEN: Validating
	rec := doJSON(t, router, http.MethodPost, "/api/validate", ValidateRequest{
		Workspace: rosterDoc(),
		From:      "not-a-date",
		To:        "2025-09-14",
	})

	// THEN: 400
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// =============================================================================
// SOLVE
// =============================================================================

func TestSolve_ReturnsCanonicalBundle(t *testing.T) {
	// GIVEN: A solvable workspace
	router := newTestRouter()

	// WHEN: Solving it
	raw := solveBundle(t, router)

	// THEN: The body is a canonical solution document with one staffed event
	var doc struct {
		Meta struct {
			ID    string `json:"id"`
			OrgID string `json:"org_id"`
		} `json:"meta"`
		Assignments []struct {
			EventID   string `json:"event_id"`
			Assignees []struct {
				PersonID string `json:"person_id"`
			} `json:"assignees"`
		} `json:"assignments"`
		Metrics struct {
			HardViolations int     `json:"hard_violations"`
			HealthScore    float64 `json:"health_score"`
		} `json:"metrics"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("decode bundle: %v", err)
	}
	if doc.Meta.ID == "" {
		t.Error("expected a generated solution id")
	}
	if doc.Meta.OrgID != "org-1" {
		t.Errorf("expected org-1, got %q", doc.Meta.OrgID)
	}
	if len(doc.Assignments) != 1 || len(doc.Assignments[0].Assignees) != 1 {
		t.Fatalf("expected one event with one assignee, got %+v", doc.Assignments)
	}
	if doc.Metrics.HardViolations != 0 {
		t.Errorf("expected no hard violations, got %d", doc.Metrics.HardViolations)
	}
	if doc.Metrics.HealthScore <= 0 {
		t.Errorf("expected a positive health score, got %v", doc.Metrics.HealthScore)
	}
}

func TestSolve_RejectsUnknownMode(t *testing.T) {
	// GIVEN: A solve request with an unsupported mode
	router := newTestRouter()

	// WHEN: Solving
	rec := doJSON(t, router, http.MethodPost, "/api/solve", SolveRequest{
		Workspace: rosterDoc(),
		From:      "2025-09-01",
		To:        "2025-09-14",
		Mode:      "chaotic",
	})

	// THEN: 400
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSolve_ChangeMinWithoutBaselineDegrades(t *testing.T) {
	// GIVEN: change_min requested but nothing has been published yet
	router := newTestRouter()

	// WHEN: Solving
	rec := doJSON(t, router, http.MethodPost, "/api/solve", SolveRequest{
		Workspace: rosterDoc(),
		From:      "2025-09-01",
		To:        "2025-09-14",
		ChangeMin: true,
	})

	// THEN: The solve still succeeds as a plain solve
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

// =============================================================================
// PUBLISH
// =============================================================================

func TestPublish_RoundTrip(t *testing.T) {
	// GIVEN: A solved bundle
	router := newTestRouter()
	raw := solveBundle(t, router)

	// WHEN: Publishing it and fetching the latest baseline back
	rec := doJSON(t, router, http.MethodPost, "/api/publish", PublishRequest{
		Org:      "org-1",
		Solution: raw,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("publish returned %d: %s", rec.Code, rec.Body.String())
	}
	var pub PublishResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &pub); err != nil {
		t.Fatalf("decode publish response: %v", err)
	}
	if pub.Tag != "default" {
		t.Errorf("expected tag to default to %q, got %q", "default", pub.Tag)
	}

	got := doJSON(t, router, http.MethodGet, "/api/publish/latest?org=org-1", nil)

	// THEN: The fetched document carries the published solution id
	if got.Code != http.StatusOK {
		t.Fatalf("latest returned %d: %s", got.Code, got.Body.String())
	}
	var fetched struct {
		Meta struct {
			ID string `json:"id"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(got.Body.Bytes(), &fetched); err != nil {
		t.Fatalf("decode fetched bundle: %v", err)
	}
	if fetched.Meta.ID != pub.SolutionID {
		t.Errorf("expected solution %q, got %q", pub.SolutionID, fetched.Meta.ID)
	}
}

func TestPublish_RequiresOrg(t *testing.T) {
	// GIVEN: A publish request with no org
	router := newTestRouter()
	raw := solveBundle(t, router)

	// WHEN: Publishing
	rec := doJSON(t, router, http.MethodPost, "/api/publish", PublishRequest{Solution: raw})

	// THEN: 400
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetPublished_NotFound(t *testing.T) {
	// GIVEN: An empty store
	router := newTestRouter()

	// WHEN: Fetching the latest baseline
	rec := doJSON(t, router, http.MethodGet, "/api/publish/latest?org=org-empty", nil)

	// THEN: 404
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

// =============================================================================
// DIFF
// =============================================================================

func TestDiffSolutions_IdenticalDocumentsAreEmpty(t *testing.T) {
	// GIVEN: The same solution document twice
	router := newTestRouter()
	raw := solveBundle(t, router)

	// WHEN: Diffing
	rec := doJSON(t, router, http.MethodPost, "/api/diff", DiffRequest{
		Previous: raw,
		Current:  raw,
	})

	// THEN: No changes, and the list fields are present (not null)
	if rec.Code != http.StatusOK {
		t.Fatalf("diff returned %d: %s", rec.Code, rec.Body.String())
	}
	var resp DiffResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode diff response: %v", err)
	}
	if resp.TotalChanges != 0 || len(resp.Added) != 0 || len(resp.Removed) != 0 {
		t.Errorf("expected empty diff, got %+v", resp)
	}
	if !strings.Contains(rec.Body.String(), `"added":[]`) {
		t.Errorf("expected added to serialize as an empty array, got %s", rec.Body.String())
	}
}

func TestDiffSolutions_RejectsMalformedDocument(t *testing.T) {
	// GIVEN: A previous document that is not a canonical solution
	router := newTestRouter()
	raw := solveBundle(t, router)

	// WHEN: Diffing
	rec := doJSON(t, router, http.MethodPost, "/api/diff", DiffRequest{
		Previous: json.RawMessage(`{"meta":{}}`),
		Current:  raw,
	})

	// THEN: 400
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// =============================================================================
// EXPORT
// =============================================================================

func TestExport_ContentTypes(t *testing.T) {
	router := newTestRouter()
	raw := solveBundle(t, router)

	cases := []struct {
		format      string
		contentType string
	}{
		{"json", "application/json"},
		{"csv", "text/csv"},
		{"xlsx", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{"ics", "text/calendar"},
	}
	for _, tc := range cases {
		t.Run(tc.format, func(t *testing.T) {
			// WHEN: Exporting the solved bundle in the requested format
			rec := doJSON(t, router, http.MethodPost, "/api/export", ExportRequest{
				Workspace: rosterDoc(),
				Solution:  raw,
				Format:    tc.format,
			})

			// THEN: 200 with the matching content type and a non-empty body
			if rec.Code != http.StatusOK {
				t.Fatalf("export %s returned %d: %s", tc.format, rec.Code, rec.Body.String())
			}
			if got := rec.Header().Get("Content-Type"); got != tc.contentType {
				t.Errorf("expected content type %q, got %q", tc.contentType, got)
			}
			if rec.Body.Len() == 0 {
				t.Error("expected a non-empty export body")
			}
		})
	}
}

func TestExport_CSVNamesTheAssignee(t *testing.T) {
	// GIVEN: A solved bundle and its workspace
	router := newTestRouter()
	raw := solveBundle(t, router)

	// WHEN: Exporting as CSV
	rec := doJSON(t, router, http.MethodPost, "/api/export", ExportRequest{
		Workspace: rosterDoc(),
		Solution:  raw,
		Format:    "csv",
	})

	// THEN: The sheet resolves the event and person against the workspace
	if rec.Code != http.StatusOK {
		t.Fatalf("export returned %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	for _, want := range []string{"event_id", "e-1", "Main Hall"} {
		if !strings.Contains(body, want) {
			t.Errorf("expected CSV to contain %q:\n%s", want, body)
		}
	}
}

func TestExport_UnknownFormat(t *testing.T) {
	// GIVEN: An unsupported format
	router := newTestRouter()
	raw := solveBundle(t, router)

	// WHEN: Exporting
	rec := doJSON(t, router, http.MethodPost, "/api/export", ExportRequest{
		Workspace: rosterDoc(),
		Solution:  raw,
		Format:    "pdf",
	})

	// THEN: 400
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// =============================================================================
// DEMO
// =============================================================================

func TestSolveDemo_StaffsTheBuiltInWeek(t *testing.T) {
	// GIVEN: The demo endpoint
	router := newTestRouter()

	// WHEN: Solving the built-in workspace
	rec := doJSON(t, router, http.MethodGet, "/api/demo/solve", nil)

	// THEN: Every demo event is staffed without hard violations
	if rec.Code != http.StatusOK {
		t.Fatalf("demo solve returned %d: %s", rec.Code, rec.Body.String())
	}
	var doc struct {
		Assignments []struct {
			EventID string `json:"event_id"`
		} `json:"assignments"`
		Metrics struct {
			HardViolations int `json:"hard_violations"`
		} `json:"metrics"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("decode bundle: %v", err)
	}
	if doc.Metrics.HardViolations != 0 {
		t.Errorf("expected no hard violations, got %d", doc.Metrics.HardViolations)
	}
	if len(doc.Assignments) != 3 {
		t.Errorf("expected all three demo events staffed, got %d", len(doc.Assignments))
	}
}
