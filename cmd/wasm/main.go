//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/inamate/trackexport/internal/document"
	"github.com/inamate/trackexport/internal/engine"
)

var eng *engine.Engine

func main() {
	eng = engine.NewEngine()

	// Create the exporter API object
	trackExporter := js.Global().Get("Object").New()

	// --- Commands (page → exporter) ---
	trackExporter.Set("loadScene", js.FuncOf(loadScene))
	trackExporter.Set("loadSampleScene", js.FuncOf(loadSampleScene))
	trackExporter.Set("setPrecision", js.FuncOf(setPrecision))
	trackExporter.Set("setPolicy", js.FuncOf(setPolicy))

	// --- Queries (page ← exporter) ---
	trackExporter.Set("exportTrack", js.FuncOf(exportTrack))
	trackExporter.Set("getReport", js.FuncOf(getReport))
	trackExporter.Set("getCollections", js.FuncOf(getCollections))

	// Register on global scope
	js.Global().Set("trackExporter", trackExporter)

	// Signal that WASM is ready
	js.Global().Set("trackExporterWasmReady", js.ValueOf(true))

	// Keep Go runtime alive
	select {}
}

// --- Command Handlers ---

func loadScene(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing scene JSON"})
	}

	if err := eng.LoadScene(args[0].String()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}

	return js.ValueOf(map[string]interface{}{"ok": true})
}

func loadSampleScene(this js.Value, args []js.Value) interface{} {
	if err := eng.SetScene(document.NewSampleScene()); err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true})
}

func setPrecision(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	eng.SetPrecision(args[0].Int())
	return nil
}

func setPolicy(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return nil
	}
	p, err := engine.ParsePolicy(args[0].String())
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	eng.SetPolicy(p)
	return js.ValueOf(map[string]interface{}{"ok": true})
}

// --- Query Handlers ---

func exportTrack(this js.Value, args []js.Value) interface{} {
	if len(args) < 1 {
		return js.ValueOf(map[string]interface{}{"error": "missing track name"})
	}

	data, err := eng.ExportJSON(args[0].String())
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(map[string]interface{}{"ok": true, "document": string(data)})
}

func getReport(this js.Value, args []js.Value) interface{} {
	report := eng.LastReport()
	if report == nil {
		return js.Null()
	}

	skipped := make([]interface{}, len(report.Skipped))
	for i, s := range report.Skipped {
		skipped[i] = map[string]interface{}{
			"collection": s.Collection,
			"object":     s.Name,
			"error":      s.Err.Error(),
		}
	}
	warnings := make([]interface{}, len(report.Warnings))
	for i, w := range report.Warnings {
		warnings[i] = w.Error()
	}
	obstacles := make([]interface{}, len(report.Obstacles))
	for i, o := range report.Obstacles {
		obstacles[i] = map[string]interface{}{
			"name":    o.Name,
			"kind":    o.Kind.String(),
			"dynamic": o.Dynamic,
		}
	}

	return js.ValueOf(map[string]interface{}{
		"tracks":    report.Tracks,
		"hotspots":  report.Hotspots,
		"skipped":   skipped,
		"warnings":  warnings,
		"obstacles": obstacles,
	})
}

func getCollections(this js.Value, args []js.Value) interface{} {
	names := eng.Collections()
	out := make([]interface{}, len(names))
	for i, n := range names {
		out[i] = n
	}
	return js.ValueOf(out)
}
