package export

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inamate/trackexport/internal/document"
	"github.com/inamate/trackexport/internal/engine"
	"github.com/inamate/trackexport/internal/history"
	"github.com/inamate/trackexport/internal/typeid"
)

const maxSceneSize = 64 << 20 // 64MB

type Handler struct {
	exporter *Exporter
	history  history.Store
}

func NewHandler(exporter *Exporter, store history.Store) *Handler {
	return &Handler{exporter: exporter, history: store}
}

// reportResponse is the JSON form of an engine.Report.
type reportResponse struct {
	Tracks    int               `json:"tracks"`
	Hotspots  int               `json:"hotspots"`
	Skipped   []skippedResponse `json:"skipped"`
	Warnings  []string          `json:"warnings"`
	Obstacles []obstacleSummary `json:"obstacles"`
}

type skippedResponse struct {
	Collection string `json:"collection"`
	Object     string `json:"object"`
	Error      string `json:"error"`
}

type obstacleSummary struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Dynamic bool   `json:"dynamic"`
}

func newReportResponse(r *engine.Report) reportResponse {
	resp := reportResponse{
		Tracks:    r.Tracks,
		Hotspots:  r.Hotspots,
		Skipped:   []skippedResponse{},
		Warnings:  []string{},
		Obstacles: []obstacleSummary{},
	}
	for _, s := range r.Skipped {
		resp.Skipped = append(resp.Skipped, skippedResponse{Collection: s.Collection, Object: s.Name, Error: s.Err.Error()})
	}
	for _, w := range r.Warnings {
		resp.Warnings = append(resp.Warnings, w.Error())
	}
	for _, o := range r.Obstacles {
		resp.Obstacles = append(resp.Obstacles, obstacleSummary{Name: o.Name, Kind: o.Kind.String(), Dynamic: o.Dynamic})
	}
	return resp
}

// Export handles POST /api/exports?name=<track>&write=<bool>. The body is a
// scene dump; the response is the export document.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSceneSize)

	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}
	write, _ := strconv.ParseBool(r.URL.Query().Get("write"))

	scene, err := document.Decode(r.Body, document.FormatFromContentType(r.Header.Get("Content-Type")))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid scene: " + err.Error()})
		return
	}

	var out *Outcome
	if write {
		out, err = h.exporter.ExportAndWrite(r.Context(), name, scene)
	} else {
		out, err = h.exporter.Export(r.Context(), name, scene)
	}
	if err != nil {
		writeExportError(w, name, out, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Export-Id", out.ID)
	w.WriteHeader(http.StatusOK)
	w.Write(out.Data)
}

// Report handles POST /api/exports/report?name=<track>: same input as
// Export, but responds with the traversal report instead of the document.
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSceneSize)

	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	scene, err := document.Decode(r.Body, document.FormatFromContentType(r.Header.Get("Content-Type")))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid scene: " + err.Error()})
		return
	}

	out, err := h.exporter.Export(r.Context(), name, scene)
	if err != nil {
		// Assembly errors still carry a complete traversal report.
		var degenerate *engine.DegenerateInputError
		if errors.As(err, &degenerate) || out == nil || out.Report == nil {
			writeExportError(w, name, out, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, newReportResponse(out.Report))
}

// writeExportError maps exporter errors to statuses: degenerate input under
// the abort policy is 422, a failed file write is 500, anything else is 400.
func writeExportError(w http.ResponseWriter, name string, out *Outcome, err error) {
	var degenerate *engine.DegenerateInputError
	var writeErr *WriteError
	switch {
	case errors.As(err, &degenerate):
		resp := map[string]any{"error": err.Error()}
		if out != nil && out.Report != nil {
			resp["report"] = newReportResponse(out.Report)
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
	case errors.As(err, &writeErr):
		slog.Error("write export failed", "error", err, "track", name)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not write export"})
	default:
		slog.Warn("export failed", "error", err, "track", name)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
}

// Get handles GET /api/exports/{exportId}.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	exportID := mux.Vars(r)["exportId"]
	if err := typeid.Validate(exportID, typeid.PrefixExport); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid export id"})
		return
	}

	rec, err := h.history.Get(r.Context(), exportID)
	if err != nil {
		handleHistoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ListByTrack handles GET /api/tracks/{name}/exports?limit=<n>.
func (h *Handler) ListByTrack(w http.ResponseWriter, r *http.Request) {
	track := mux.Vars(r)["name"]
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 200 {
		limit = 20
	}

	recs, err := h.history.ListByTrack(r.Context(), track, limit)
	if err != nil {
		handleHistoryError(w, err)
		return
	}
	if recs == nil {
		recs = []history.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func handleHistoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, history.ErrNotFound):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	default:
		slog.Error("history error", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
