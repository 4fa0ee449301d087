package engine

import (
	"gonum.org/v1/gonum/spatial/r3"
)

// Point3 is a position, rotation or scale triple in some coordinate space.
type Point3 = r3.Vec

// Scene is the read-only view of a host scene the exporter needs.
type Scene interface {
	ListCollections() []string
	ListObjects(collection string) []string
	Object(id string) (ObjectInfo, bool)
	WorldTransform(id string) Matrix3D
	LocalVertices(id string) []Point3
	CustomAttribute(id, key string) (string, bool)
}

// ObjectInfo is the per-object metadata the exporter reads.
type ObjectInfo struct {
	ID       string
	Name     string
	Type     string
	Location Point3
	Rotation Point3 // XYZ euler, radians
	Scale    Point3
}

// SceneGraph is the resolved, read-only state of a scene dump.
// World transforms are computed once when the graph is built.
type SceneGraph struct {
	Name        string
	Collections []CollectionNode
	NodesById   map[string]*SceneNode
}

// CollectionNode holds a collection's object IDs in host order.
type CollectionNode struct {
	Name    string
	Objects []string
}

// SceneNode is a resolved object.
type SceneNode struct {
	Info ObjectInfo

	// Transform state
	LocalTransform Matrix3D
	WorldTransform Matrix3D // parent * local, or the host's matrix

	Vertices   []Point3 // local space
	Attributes map[string]string
}

// NewSceneGraph creates an empty scene graph.
func NewSceneGraph() *SceneGraph {
	return &SceneGraph{
		NodesById: make(map[string]*SceneNode),
	}
}

func (sg *SceneGraph) ListCollections() []string {
	names := make([]string, len(sg.Collections))
	for i, c := range sg.Collections {
		names[i] = c.Name
	}
	return names
}

// ListObjects returns the object IDs of the first collection with exactly
// this name. Use ListCollections to discover names.
func (sg *SceneGraph) ListObjects(collection string) []string {
	for _, c := range sg.Collections {
		if c.Name == collection {
			return append([]string(nil), c.Objects...)
		}
	}
	return nil
}

func (sg *SceneGraph) Object(id string) (ObjectInfo, bool) {
	node, ok := sg.NodesById[id]
	if !ok {
		return ObjectInfo{}, false
	}
	return node.Info, true
}

// WorldTransform returns the identity for unknown objects.
func (sg *SceneGraph) WorldTransform(id string) Matrix3D {
	node, ok := sg.NodesById[id]
	if !ok {
		return Identity()
	}
	return node.WorldTransform
}

func (sg *SceneGraph) LocalVertices(id string) []Point3 {
	node, ok := sg.NodesById[id]
	if !ok {
		return nil
	}
	return append([]Point3(nil), node.Vertices...)
}

func (sg *SceneGraph) CustomAttribute(id, key string) (string, bool) {
	node, ok := sg.NodesById[id]
	if !ok {
		return "", false
	}
	v, ok := node.Attributes[key]
	return v, ok
}

// Bounds returns the axis-aligned box of the points, or an empty box.
func Bounds(points []Point3) r3.Box {
	if len(points) == 0 {
		return r3.Box{}
	}
	b := r3.Box{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		b.Min = Point3{X: min(b.Min.X, p.X), Y: min(b.Min.Y, p.Y), Z: min(b.Min.Z, p.Z)}
		b.Max = Point3{X: max(b.Max.X, p.X), Y: max(b.Max.Y, p.Y), Z: max(b.Max.Z, p.Z)}
	}
	return b
}
