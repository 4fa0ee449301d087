package export

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/trackexport/internal/auth"
	"github.com/inamate/trackexport/internal/document"
	"github.com/inamate/trackexport/internal/engine"
	"github.com/inamate/trackexport/internal/history"
	"github.com/inamate/trackexport/internal/live"
	"github.com/inamate/trackexport/internal/typeid"
)

type recordingNotifier struct {
	mu       sync.Mutex
	payloads []live.ExportCompletePayload
}

func (n *recordingNotifier) PublishExport(p live.ExportCompletePayload) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.payloads = append(n.payloads, p)
}

func degenerateScene() *document.InScene {
	scene := document.NewSampleScene()
	edge := scene.Objects["obj_road"]
	edge.Vertices = [][3]float64{{0, 0, 0}, {1, 0, 0}}
	scene.Objects["obj_road"] = edge
	return scene
}

func TestExporter_Export(t *testing.T) {
	dir := t.TempDir()
	ex := NewExporter(Options{OutputDir: dir, Format: document.DefaultFormat}, nil, nil)

	out, err := ex.Export(context.Background(), "track_01", document.NewSampleScene())
	require.NoError(t, err)

	assert.NoError(t, typeid.Validate(out.ID, typeid.PrefixExport))
	assert.Equal(t, "models/tracks/track_01.glb", out.Document.GLB)
	assert.Empty(t, out.Path)
	assert.Contains(t, string(out.Data), `"name": "track_01"`)

	// Nothing is written without ExportAndWrite.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestExporter_ExportAndWrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	store := history.NewMemoryStore()
	notifier := &recordingNotifier{}
	ex := NewExporter(Options{OutputDir: dir, AssetBase: "assets", Format: document.DefaultFormat}, store, notifier)

	ctx := context.Background()
	out, err := ex.ExportAndWrite(ctx, "track_01", document.NewSampleScene())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "track_01.json"), out.Path)
	written, err := os.ReadFile(out.Path)
	require.NoError(t, err)
	assert.Equal(t, out.Data, written)

	rec, err := store.Get(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, "track_01", rec.Track)
	assert.Equal(t, 2, rec.Tracks)
	assert.Equal(t, 2, rec.Hotspots)
	assert.JSONEq(t, string(out.Data), string(rec.Document))
	assert.Empty(t, rec.ExportedBy)

	require.Len(t, notifier.payloads, 1)
	p := notifier.payloads[0]
	assert.Equal(t, out.ID, p.ExportID)
	assert.Equal(t, "/data/track_01.json", p.DataURL)
	assert.Equal(t, "assets/track_01.glb", p.GLB)
}

func TestExporter_RecordsAuthor(t *testing.T) {
	store := history.NewMemoryStore()
	ex := NewExporter(Options{OutputDir: t.TempDir(), Format: document.DefaultFormat}, store, nil)

	ctx := auth.WithSubject(context.Background(), auth.AdminSubject)
	out, err := ex.ExportAndWrite(ctx, "track_01", document.NewSampleScene())
	require.NoError(t, err)

	rec, err := store.Get(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, auth.AdminSubject, rec.ExportedBy)
}

func TestExporter_WriteError(t *testing.T) {
	// A regular file where the output directory should be.
	blocker := filepath.Join(t.TempDir(), "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	notifier := &recordingNotifier{}
	ex := NewExporter(Options{OutputDir: blocker, Format: document.DefaultFormat}, nil, notifier)

	_, err := ex.ExportAndWrite(context.Background(), "track_01", document.NewSampleScene())
	var writeErr *WriteError
	require.ErrorAs(t, err, &writeErr)
	assert.Equal(t, filepath.Join(blocker, "track_01.json"), writeErr.Path)
	assert.Empty(t, notifier.payloads)
}

func TestExporter_DegeneratePolicy(t *testing.T) {
	ctx := context.Background()

	skip := NewExporter(Options{OutputDir: t.TempDir(), Format: document.DefaultFormat}, nil, nil)
	out, err := skip.Export(ctx, "track_01", degenerateScene())
	require.NoError(t, err)
	assert.Equal(t, 1, out.Report.Tracks)
	assert.Len(t, out.Report.Skipped, 1)

	abort := NewExporter(Options{OutputDir: t.TempDir(), Format: document.DefaultFormat, Policy: engine.PolicyAbort}, nil, nil)
	_, err = abort.Export(ctx, "track_01", degenerateScene())
	var degenerate *engine.DegenerateInputError
	assert.ErrorAs(t, err, &degenerate)
}

func TestExporter_BadScene(t *testing.T) {
	parent := "ghost"
	scene := &document.InScene{Objects: map[string]document.ObjectNode{
		"a": {ID: "a", Parent: &parent},
	}}
	ex := NewExporter(Options{OutputDir: t.TempDir()}, nil, nil)

	out, err := ex.Export(context.Background(), "track_01", scene)
	assert.Nil(t, out)
	assert.ErrorContains(t, err, "build scene graph")
}

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "track_01", SanitizeName("track_01"))
	assert.Equal(t, "Oval-Speedway", SanitizeName("Oval Speedway"))
	assert.Equal(t, "---etc-passwd", SanitizeName("../etc/passwd"))
}
