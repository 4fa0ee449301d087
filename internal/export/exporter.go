package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/inamate/trackexport/internal/auth"
	"github.com/inamate/trackexport/internal/document"
	"github.com/inamate/trackexport/internal/engine"
	"github.com/inamate/trackexport/internal/history"
	"github.com/inamate/trackexport/internal/live"
	"github.com/inamate/trackexport/internal/typeid"
)

// WriteError reports an output file that could not be written.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Notifier is told about every written export.
type Notifier interface {
	PublishExport(p live.ExportCompletePayload)
}

type Options struct {
	OutputDir string
	AssetBase string
	Format    document.Format
	Policy    engine.Policy
}

// Exporter runs the whole export: traverse, assemble, serialize, write,
// record and notify.
type Exporter struct {
	opts     Options
	history  history.Store
	notifier Notifier
}

// NewExporter creates an exporter. store and notifier may be nil.
func NewExporter(opts Options, store history.Store, notifier Notifier) *Exporter {
	if opts.AssetBase == "" {
		opts.AssetBase = document.DefaultAssetBase
	}
	return &Exporter{opts: opts, history: store, notifier: notifier}
}

// Outcome is the result of one export.
type Outcome struct {
	ID       string
	Document *document.ExportDocument
	Data     []byte
	Report   *engine.Report
	Path     string // empty unless written
}

// Export builds the document for a scene dump without touching the disk.
func (e *Exporter) Export(ctx context.Context, name string, scene *document.InScene) (*Outcome, error) {
	sg, err := engine.BuildSceneGraph(scene)
	if err != nil {
		return nil, fmt.Errorf("build scene graph: %w", err)
	}

	doc, report, err := engine.Export(sg, name, document.AssetPath(e.opts.AssetBase, name), engine.TraverseOptions{Policy: e.opts.Policy})
	if report != nil {
		logReport(name, report)
	}
	if err != nil {
		return &Outcome{Report: report}, fmt.Errorf("export %q: %w", name, err)
	}

	data, err := document.Marshal(doc, e.opts.Format)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	return &Outcome{
		ID:       typeid.NewExportID(),
		Document: doc,
		Data:     data,
		Report:   report,
	}, nil
}

// ExportAndWrite exports the scene, writes the document to
// <OutputDir>/<name>.json, records it and notifies subscribers.
func (e *Exporter) ExportAndWrite(ctx context.Context, name string, scene *document.InScene) (*Outcome, error) {
	out, err := e.Export(ctx, name, scene)
	if err != nil {
		return out, err
	}

	out.Path = e.DataPath(name)
	if err := writeFile(out.Path, out.Data); err != nil {
		return out, err
	}
	subject := auth.SubjectFromContext(ctx)
	slog.Info("exported data", "track", name, "path", out.Path, "id", out.ID, "by", subject)

	if e.history != nil {
		rec := history.Record{
			ID:         out.ID,
			Track:      name,
			Path:       out.Path,
			Tracks:     out.Report.Tracks,
			Hotspots:   out.Report.Hotspots,
			Skipped:    len(out.Report.Skipped),
			ExportedBy: subject,
			Document:   out.Data,
			CreatedAt:  time.Now().UTC(),
		}
		// The file is already written; a failed history insert is logged only.
		if err := e.history.Save(ctx, rec); err != nil {
			slog.Error("record export", "error", err, "track", name)
		}
	}

	if e.notifier != nil {
		e.notifier.PublishExport(live.ExportCompletePayload{
			ExportID: out.ID,
			Track:    name,
			DataURL:  "/data/" + filepath.Base(out.Path),
			GLB:      out.Document.GLB,
			Tracks:   out.Report.Tracks,
			Hotspots: out.Report.Hotspots,
			Skipped:  len(out.Report.Skipped),
		})
	}

	return out, nil
}

// DataPath is where a track's document is written.
func (e *Exporter) DataPath(name string) string {
	return filepath.Join(e.opts.OutputDir, SanitizeName(name)+".json")
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return &WriteError{Path: path, Err: err}
	}
	return nil
}

// SanitizeName maps a track name to a safe file stem.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}

func logReport(name string, report *engine.Report) {
	for _, w := range report.Warnings {
		slog.Warn("missing collection", "track", name, "collection", w.Collection)
	}
	for _, s := range report.Skipped {
		slog.Warn("skipped object", "track", name, "collection", s.Collection, "object", s.Name, "error", s.Err)
	}
	for _, o := range report.Obstacles {
		slog.Debug("obstacle", "track", name, "name", o.Name, "kind", o.Kind.String(), "dynamic", o.Dynamic)
	}
	slog.Info("export summary", "track", name,
		"tracks", report.Tracks,
		"hotspots", report.Hotspots,
		"skipped", len(report.Skipped),
		"obstacles", len(report.Obstacles),
	)
}
