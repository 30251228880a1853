/*
handlers.go - HTTP API handlers for the roster engine

PURPOSE:
  Exposes the solver surface via REST. Handles HTTP request/response and
  JSON shapes, and delegates everything else to the engine: the web layer
  is a collaborator of the core, never the other way around.

ENDPOINTS:
  POST /api/validate   Referential/semantic workspace check
  POST /api/solve      Full solve, optional change minimization
  POST /api/diff       Structural diff of two solution documents
  POST /api/simulate   Baseline vs patched what-if comparison
  POST /api/publish    Record a solution as the new baseline
  GET  /api/published  Fetch the current baseline for org+tag
  POST /api/export     Serialize a solution (json/csv/xlsx/ics)
  GET  /api/demo/solve Solve the built-in demo workspace

ERROR HANDLING:
  - 400: Validation failures (with the full issue list), bad payloads
  - 404: No published baseline for org+tag
  - 500: Internal errors
  A solve that produces hard violations is NOT an error: the bundle comes
  back 200 so operators can inspect the gaps; the hard-violation count is
  in the payload.

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/warp/roster-engine/engine"
	"github.com/warp/roster-engine/export"
	"github.com/warp/roster-engine/factory"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  engine.PublishStore
	Logger *zap.Logger
}

// NewHandler creates a new handler over a publish store.
func NewHandler(store engine.PublishStore, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{Store: store, Logger: logger}
}

// =============================================================================
// VALIDATE
// =============================================================================

func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req ValidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ws, period, err := h.workspaceAndRange(req.Workspace, req.From, req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := engine.Validate(ws, period); err != nil {
		var vErr *engine.ValidationError
		if errors.As(err, &vErr) {
			writeJSON(w, http.StatusBadRequest, ValidateResponse{OK: false, Errors: vErr.Issues})
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, ValidateResponse{OK: true})
}

// =============================================================================
// SOLVE
// =============================================================================

func (h *Handler) Solve(w http.ResponseWriter, r *http.Request) {
	var req SolveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ws, period, err := h.workspaceAndRange(req.Workspace, req.From, req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	mode := engine.SolveMode(req.Mode)
	if mode == "" {
		mode = engine.ModeStrict
	}
	if mode != engine.ModeStrict && mode != engine.ModeRelaxed {
		writeError(w, http.StatusBadRequest, "mode must be strict or relaxed")
		return
	}

	var published *engine.SolutionBundle
	if req.ChangeMin {
		tag := req.Tag
		if tag == "" {
			tag = "default"
		}
		published, err = h.Store.LatestPublished(r.Context(), ws.Org.ID, tag)
		if err != nil && !engine.IsNotFound(err) {
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		// Not found is fine: the solver degrades to a plain solve.
	}

	bundle, err := h.solve(r, ws, period, mode, published, req.ChangeMin)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	writeBundle(w, http.StatusOK, bundle)
}

func (h *Handler) solve(r *http.Request, ws *engine.Workspace, period engine.Period, mode engine.SolveMode, published *engine.SolutionBundle, changeMin bool) (*engine.SolutionBundle, error) {
	sc, err := engine.BuildSolveContext(ws, period.Start, period.End, mode, published)
	if err != nil {
		return nil, err
	}
	solver := engine.NewGreedySolver(sc, h.Logger)
	if err := solver.BuildModel(); err != nil {
		return nil, err
	}
	if changeMin {
		if err := solver.EnableChangeMinimization(true, ws.Org.Weights.MovePublished); err != nil {
			return nil, err
		}
	}
	return solver.Solve(r.Context())
}

// =============================================================================
// DIFF
// =============================================================================

func (h *Handler) DiffSolutions(w http.ResponseWriter, r *http.Request) {
	var req DiffRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	previous, err := export.ReadJSON(bytes.NewReader(req.Previous))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid previous solution: "+err.Error())
		return
	}
	current, err := export.ReadJSON(bytes.NewReader(req.Current))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid current solution: "+err.Error())
		return
	}

	writeJSON(w, http.StatusOK, toDiffResponse(engine.Diff(previous, current)))
}

// =============================================================================
// SIMULATE
// =============================================================================

func (h *Handler) Simulate(w http.ResponseWriter, r *http.Request) {
	var req SimulateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ws, period, err := h.workspaceAndRange(req.Workspace, req.From, req.To)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	patch, err := factory.BuildPatch(req.Patch)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	mode := engine.SolveMode(req.Mode)
	if mode == "" {
		mode = engine.ModeStrict
	}

	result, err := engine.Simulate(r.Context(), ws, patch, period.Start, period.End, mode, nil, h.Logger)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	baseline, err := bundleJSON(result.Baseline)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	patched, err := bundleJSON(result.Patched)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, SimulateResponse{
		Baseline:    baseline,
		Patched:     patched,
		Diff:        toDiffResponse(result.Diff),
		HealthDelta: result.HealthDelta,
	})
}

// =============================================================================
// PUBLISH
// =============================================================================

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	var req PublishRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Org == "" {
		writeError(w, http.StatusBadRequest, "org is required")
		return
	}
	tag := req.Tag
	if tag == "" {
		tag = "default"
	}

	bundle, err := export.ReadJSON(bytes.NewReader(req.Solution))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid solution: "+err.Error())
		return
	}

	if err := h.Store.Publish(r.Context(), engine.OrgID(req.Org), tag, bundle); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.Logger.Info("solution published",
		zap.String("org", req.Org),
		zap.String("tag", tag),
		zap.String("solution_id", string(bundle.Meta.ID)))

	writeJSON(w, http.StatusOK, PublishResponse{
		Org:         req.Org,
		Tag:         tag,
		SolutionID:  string(bundle.Meta.ID),
		PublishedAt: time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) GetPublished(w http.ResponseWriter, r *http.Request) {
	org := r.URL.Query().Get("org")
	tag := r.URL.Query().Get("tag")
	if org == "" {
		writeError(w, http.StatusBadRequest, "org query parameter is required")
		return
	}
	if tag == "" {
		tag = "default"
	}

	bundle, err := h.Store.LatestPublished(r.Context(), engine.OrgID(org), tag)
	if engine.IsNotFound(err) {
		writeError(w, http.StatusNotFound, "no published solution for org "+org+" tag "+tag)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeBundle(w, http.StatusOK, bundle)
}

// =============================================================================
// EXPORT
// =============================================================================

func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	var req ExportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	ws, err := buildWorkspace(req.Workspace)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	bundle, err := export.ReadJSON(bytes.NewReader(req.Solution))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid solution: "+err.Error())
		return
	}

	switch req.Format {
	case "", "json":
		w.Header().Set("Content-Type", "application/json")
		_ = export.WriteJSON(w, bundle)
	case "csv":
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="roster.csv"`)
		_ = export.WriteCSV(w, ws, bundle)
	case "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", `attachment; filename="roster.xlsx"`)
		_ = export.WriteXLSX(w, ws, bundle)
	case "ics":
		w.Header().Set("Content-Type", "text/calendar")
		w.Header().Set("Content-Disposition", `attachment; filename="roster.ics"`)
		scope := export.CalendarScope{
			PersonID: engine.PersonID(req.Person),
			TeamID:   engine.TeamID(req.Team),
		}
		_ = export.WriteICS(w, ws, bundle, scope)
	default:
		writeError(w, http.StatusBadRequest, "unknown export format "+req.Format)
	}
}

// =============================================================================
// DEMO
// =============================================================================

// SolveDemo solves the built-in demo workspace over its scripted week.
func (h *Handler) SolveDemo(w http.ResponseWriter, r *http.Request) {
	ws := factory.DemoWorkspace()
	period := engine.Period{
		Start: engine.NewTimePoint(2025, 9, 1),
		End:   engine.NewTimePoint(2025, 9, 14),
	}

	bundle, err := h.solve(r, ws, period, engine.ModeStrict, nil, false)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeBundle(w, http.StatusOK, bundle)
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) workspaceAndRange(doc factory.WorkspaceDoc, from, to string) (*engine.Workspace, engine.Period, error) {
	ws, err := buildWorkspace(doc)
	if err != nil {
		return nil, engine.Period{}, err
	}
	period, err := parseRange(from, to)
	if err != nil {
		return nil, engine.Period{}, err
	}
	return ws, period, nil
}

func buildWorkspace(doc factory.WorkspaceDoc) (*engine.Workspace, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return factory.ParseWorkspace(raw)
}

func parseRange(from, to string) (engine.Period, error) {
	start, err := time.Parse("2006-01-02", from)
	if err != nil {
		return engine.Period{}, errors.New("from must be a YYYY-MM-DD date")
	}
	end, err := time.Parse("2006-01-02", to)
	if err != nil {
		return engine.Period{}, errors.New("to must be a YYYY-MM-DD date")
	}
	return engine.Period{
		Start: engine.NewTimePoint(start.Year(), start.Month(), start.Day()),
		End:   engine.NewTimePoint(end.Year(), end.Month(), end.Day()),
	}, nil
}

func (h *Handler) writeEngineError(w http.ResponseWriter, err error) {
	var vErr *engine.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "workspace failed validation", Issues: vErr.Issues})
		return
	}
	if engine.IsClientError(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	h.Logger.Error("solve failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, err.Error())
}

func toDiffResponse(d engine.SolutionDiff) DiffResponse {
	out := DiffResponse{
		Added:           []ChangedPairDTO{},
		Removed:         []ChangedPairDTO{},
		AffectedPersons: []string{},
		TotalChanges:    d.TotalChanges,
	}
	for _, c := range d.Added {
		out.Added = append(out.Added, ChangedPairDTO{EventID: string(c.EventID), PersonID: string(c.PersonID)})
	}
	for _, c := range d.Removed {
		out.Removed = append(out.Removed, ChangedPairDTO{EventID: string(c.EventID), PersonID: string(c.PersonID)})
	}
	for _, pid := range d.AffectedPersons {
		out.AffectedPersons = append(out.AffectedPersons, string(pid))
	}
	return out
}

func bundleJSON(bundle *engine.SolutionBundle) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := export.WriteJSON(&buf, bundle); err != nil {
		return nil, err
	}
	return json.RawMessage(buf.Bytes()), nil
}

func writeBundle(w http.ResponseWriter, status int, bundle *engine.SolutionBundle) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = export.WriteJSON(w, bundle)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
