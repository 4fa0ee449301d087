package engine

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/inamate/trackexport/internal/document"
)

// Policy decides what a degenerate polygon does to the rest of an export.
type Policy int

const (
	// PolicySkip drops the offending object, records it and carries on.
	PolicySkip Policy = iota
	// PolicyAbort fails the whole traversal on the first degenerate object.
	PolicyAbort
)

// ParsePolicy accepts "skip" or "abort".
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "skip":
		return PolicySkip, nil
	case "abort":
		return PolicyAbort, nil
	}
	return PolicySkip, fmt.Errorf("unknown degenerate policy %q", s)
}

type TraverseOptions struct {
	Policy Policy
}

// MissingCollectionWarning notes that a scene has no collection for a category.
type MissingCollectionWarning struct {
	Collection string
}

func (w MissingCollectionWarning) Error() string {
	return fmt.Sprintf("no %q collection in scene", w.Collection)
}

// SkippedObject is an object left out of the export.
type SkippedObject struct {
	Collection string
	ObjectID   string
	Name       string
	Err        error
}

// ObstacleRecord describes an obstacle in runtime space. Obstacles are
// reported but not written to the export document.
type ObstacleRecord struct {
	ID       string
	Name     string // normalized
	Kind     ObstacleKind
	Dynamic  bool
	Position Point3
	Rotation Point3 // degrees
	Scale    Point3
	Bounds   *r3.Box // local space; box obstacles only
}

// Report summarizes one traversal.
type Report struct {
	Tracks    int
	Hotspots  int
	Skipped   []SkippedObject
	Warnings  []MissingCollectionWarning
	Obstacles []ObstacleRecord
}

// Result is everything a traversal produces.
type Result struct {
	Tracks   []document.TrackRecord
	Hotspots []document.HotspotRecord
	Report   Report
}

// DefaultHotspotType tags hotspots without a hotspotType attribute.
const DefaultHotspotType = "none"

// HotspotTypeAttribute is the custom attribute read for hotspot tags.
const HotspotTypeAttribute = "hotspotType"

// Traverse walks track collections, then hotspot collections, then obstacle
// collections, and extracts one record per mesh object in host order.
func Traverse(scene Scene, opts TraverseOptions) (*Result, error) {
	res := &Result{
		Tracks:   []document.TrackRecord{},
		Hotspots: []document.HotspotRecord{},
	}

	byKind := make(map[CollectionKind][]string)
	for _, name := range scene.ListCollections() {
		kind := ClassifyCollection(name)
		if kind == CollectionIgnored {
			continue
		}
		byKind[kind] = append(byKind[kind], name)
	}

	for _, kind := range []CollectionKind{CollectionTrack, CollectionHotspots} {
		if len(byKind[kind]) == 0 {
			res.Report.Warnings = append(res.Report.Warnings, MissingCollectionWarning{Collection: kind.String()})
		}
	}

	for _, kind := range []CollectionKind{CollectionTrack, CollectionHotspots, CollectionObstacles} {
		for _, col := range byKind[kind] {
			if err := traverseCollection(scene, col, kind, opts, res); err != nil {
				return nil, err
			}
		}
	}

	res.Report.Tracks = len(res.Tracks)
	res.Report.Hotspots = len(res.Hotspots)
	return res, nil
}

func traverseCollection(scene Scene, col string, kind CollectionKind, opts TraverseOptions, res *Result) error {
	for _, id := range scene.ListObjects(col) {
		info, ok := scene.Object(id)
		if !ok || !IsMesh(info.Type) {
			continue
		}
		class, ok := ClassifyObject(kind, info.Name)
		if !ok {
			continue
		}

		switch class.Kind {
		case KindTrack:
			polygon, err := ExtractPolygon(scene, id)
			if err != nil {
				if skipErr := handleExtractError(err, col, info, opts, res); skipErr != nil {
					return skipErr
				}
				continue
			}
			res.Tracks = append(res.Tracks, document.TrackRecord{Polygon: polygon})

		case KindHotspot:
			polygon, err := ExtractPolygon(scene, id)
			if err != nil {
				if skipErr := handleExtractError(err, col, info, opts, res); skipErr != nil {
					return skipErr
				}
				continue
			}
			tag, ok := scene.CustomAttribute(id, HotspotTypeAttribute)
			if !ok {
				tag = DefaultHotspotType
			}
			res.Hotspots = append(res.Hotspots, document.HotspotRecord{HotspotType: tag, Polygon: polygon})

		case KindObstacle:
			res.Report.Obstacles = append(res.Report.Obstacles, obstacleRecord(scene, info, class))
		}
	}
	return nil
}

// handleExtractError applies the degenerate policy. Errors that are not
// degenerate input always abort.
func handleExtractError(err error, col string, info ObjectInfo, opts TraverseOptions, res *Result) error {
	var degenerate *DegenerateInputError
	if !errors.As(err, &degenerate) || opts.Policy == PolicyAbort {
		return fmt.Errorf("collection %q: %w", col, err)
	}
	res.Report.Skipped = append(res.Report.Skipped, SkippedObject{
		Collection: col,
		ObjectID:   info.ID,
		Name:       info.Name,
		Err:        err,
	})
	return nil
}

func obstacleRecord(scene Scene, info ObjectInfo, class Classification) ObstacleRecord {
	rec := ObstacleRecord{
		ID:       info.ID,
		Name:     NormalizeName(info.Name),
		Kind:     class.Obstacle,
		Dynamic:  class.Dynamic,
		Position: MapPosition(info.Location),
		Rotation: MapRotation(RadiansToDegrees(info.Rotation)),
		Scale:    MapScale(info.Scale),
	}

	if class.Obstacle != ObstacleBox {
		return rec
	}
	vertices := scene.LocalVertices(info.ID)
	if len(vertices) == 0 {
		return rec
	}

	// Fold the mesh extent into the scale and move the position to the
	// world-space center of the vertices.
	box := Bounds(vertices)
	size := r3.Sub(box.Max, box.Min)
	center := r3.Scale(0.5, r3.Add(box.Min, box.Max))
	rec.Bounds = &box
	rec.Scale = MapScale(Point3{X: info.Scale.X * size.X, Y: info.Scale.Y * size.Y, Z: info.Scale.Z * size.Z})
	rec.Position = MapPosition(scene.WorldTransform(info.ID).TransformPoint(center))
	return rec
}
