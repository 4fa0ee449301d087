// Command trackexport converts one scene dump into a track data document.
package main

import (
	"context"
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/inamate/trackexport/internal/config"
	"github.com/inamate/trackexport/internal/document"
	"github.com/inamate/trackexport/internal/engine"
	"github.com/inamate/trackexport/internal/export"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run returns the process exit code: 0 on success, 1 on export or output
// failure, 2 on bad usage.
func run(args []string, stdout, stderr io.Writer) int {
	// Environment values only seed flag defaults, so a bad one must not stop
	// a run whose flags override it.
	cfg, cfgErr := config.Load()
	if cfgErr != nil {
		cfg = config.Default()
	}

	fs := flag.NewFlagSet("trackexport", flag.ContinueOnError)
	fs.SetOutput(stderr)
	scenePath := fs.String("scene", "", "scene dump to export (.json, .yaml or .yml)")
	name := fs.String("name", "track_01", "export name of the race track")
	outDir := fs.String("out", cfg.OutputDir, "directory the <name>.json document is written to")
	assetBase := fs.String("asset-base", cfg.AssetBase, "runtime directory of track models")
	precision := fs.Int("precision", cfg.CoordPrecision, "digits after the decimal point, -1 for shortest round-trip")
	abort := fs.Bool("abort-on-degenerate", cfg.DegeneratePolicy == "abort", "fail instead of skipping objects that cannot form a polygon")
	toStdout := fs.Bool("stdout", false, "print the document instead of writing it")
	verbose := fs.Bool("v", false, "log obstacles and other debug detail")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	level, _ := config.ParseLevel(cfg.LogLevel)
	if *verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	if cfgErr != nil {
		slog.Warn("ignoring environment config, using defaults", "error", cfgErr)
	}

	if *scenePath == "" {
		slog.Error("missing -scene")
		fs.Usage()
		return 2
	}
	if *precision < -1 {
		slog.Error("precision must be -1 or more", "precision", *precision)
		return 2
	}

	scene, err := document.LoadFile(*scenePath)
	if err != nil {
		slog.Error("load scene", "error", err, "path", *scenePath)
		return 1
	}

	policy := engine.PolicySkip
	if *abort {
		policy = engine.PolicyAbort
	}

	exporter := export.NewExporter(export.Options{
		OutputDir: *outDir,
		AssetBase: *assetBase,
		Format:    document.Format{Precision: *precision},
		Policy:    policy,
	}, nil, nil)

	ctx := context.Background()
	if *toStdout {
		out, err := exporter.Export(ctx, *name, scene)
		if err != nil {
			slog.Error("export failed", "error", err)
			return 1
		}
		if _, err := stdout.Write(append(out.Data, '\n')); err != nil {
			slog.Error("write document", "error", err)
			return 1
		}
		return 0
	}

	if _, err := exporter.ExportAndWrite(ctx, *name, scene); err != nil {
		slog.Error("export failed", "error", err)
		return 1
	}
	return 0
}
