package engine

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/inamate/trackexport/internal/document"
)

// Export traverses a scene and assembles its export document.
func Export(scene Scene, name, assetPath string, opts TraverseOptions) (*document.ExportDocument, *Report, error) {
	res, err := Traverse(scene, opts)
	if err != nil {
		return nil, nil, err
	}
	doc, err := document.Assemble(name, assetPath, res.Tracks, res.Hotspots)
	if err != nil {
		return nil, &res.Report, err
	}
	return doc, &res.Report, nil
}

// Engine holds one loaded scene and exports it on request. It backs the
// browser build, where the page keeps a scene loaded between exports.
type Engine struct {
	scene      *SceneGraph
	assetBase  string
	format     document.Format
	opts       TraverseOptions
	lastReport *Report
}

// NewEngine creates an engine with default export settings.
func NewEngine() *Engine {
	return &Engine{
		assetBase: document.DefaultAssetBase,
		format:    document.DefaultFormat,
	}
}

// --- Commands ---

// LoadScene loads a scene dump from JSON.
func (e *Engine) LoadScene(jsonData string) error {
	var scene document.InScene
	if err := json.Unmarshal([]byte(jsonData), &scene); err != nil {
		return err
	}
	return e.SetScene(&scene)
}

// SetScene resolves and installs a scene dump.
func (e *Engine) SetScene(scene *document.InScene) error {
	sg, err := BuildSceneGraph(scene)
	if err != nil {
		return err
	}
	e.scene = sg
	e.lastReport = nil
	return nil
}

// SetPrecision sets the coordinate precision used by ExportJSON.
func (e *Engine) SetPrecision(precision int) {
	e.format = document.Format{Precision: precision}
}

// SetPolicy sets the degenerate polygon policy.
func (e *Engine) SetPolicy(p Policy) {
	e.opts.Policy = p
}

// --- Queries ---

// ExportJSON exports the loaded scene under the given track name.
func (e *Engine) ExportJSON(name string) ([]byte, error) {
	if e.scene == nil {
		return nil, errors.New("no scene loaded")
	}
	doc, report, err := Export(e.scene, name, document.AssetPath(e.assetBase, name), e.opts)
	e.lastReport = report
	if err != nil {
		return nil, fmt.Errorf("export %q: %w", name, err)
	}
	return document.Marshal(doc, e.format)
}

// LastReport returns the report of the most recent export, or nil.
func (e *Engine) LastReport() *Report {
	return e.lastReport
}

// Collections lists the loaded scene's collections.
func (e *Engine) Collections() []string {
	if e.scene == nil {
		return nil
	}
	return e.scene.ListCollections()
}
