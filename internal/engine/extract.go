package engine

import (
	"fmt"

	"github.com/inamate/trackexport/internal/document"
)

// Polygon is a boundary-ordered ring of points in runtime space.
type Polygon = document.Polygon

// ExtractPolygon reads a mesh object's local vertices, moves them to world
// space, converts them to runtime space and orders them into a boundary
// ring with SortRadialSweep.
func ExtractPolygon(scene Scene, id string) (Polygon, error) {
	local := scene.LocalVertices(id)
	world := scene.WorldTransform(id)

	points := make([]IndexedPoint, len(local))
	for i, v := range local {
		points[i] = IndexedPoint{Index: i, Point: MapPosition(world.TransformPoint(v))}
	}

	order, err := SortRadialSweep(points)
	if err != nil {
		return nil, fmt.Errorf("extract polygon %q: %w", objectName(scene, id), err)
	}

	polygon := make(Polygon, len(order))
	for i, idx := range order {
		polygon[i] = points[idx].Point
	}
	return polygon, nil
}

func objectName(scene Scene, id string) string {
	if info, ok := scene.Object(id); ok {
		return info.Name
	}
	return id
}
