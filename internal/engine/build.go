package engine

import (
	"fmt"

	"github.com/inamate/trackexport/internal/document"
)

// BuildSceneGraph resolves a scene dump into a read-only scene graph.
// World transforms follow parent chains unless an object carries the host's
// own world matrix.
func BuildSceneGraph(scene *document.InScene) (*SceneGraph, error) {
	sg := NewSceneGraph()
	if scene == nil {
		return sg, nil
	}
	sg.Name = scene.Name

	for id, obj := range scene.Objects {
		sg.NodesById[id] = newNode(id, obj)
	}

	// Resolve world transforms; resolving marks nodes in progress to catch cycles.
	resolved := make(map[string]bool, len(scene.Objects))
	visiting := make(map[string]bool)
	var resolve func(id string) error
	resolve = func(id string) error {
		if resolved[id] {
			return nil
		}
		if visiting[id] {
			return fmt.Errorf("parent cycle at object %q", id)
		}
		visiting[id] = true
		defer delete(visiting, id)

		node := sg.NodesById[id]
		obj := scene.Objects[id]
		switch {
		case obj.MatrixWorld != nil:
			node.WorldTransform = FromRowMajor(*obj.MatrixWorld)
		case obj.Parent != nil && *obj.Parent != "":
			parent, ok := sg.NodesById[*obj.Parent]
			if !ok {
				return fmt.Errorf("object %q: unknown parent %q", id, *obj.Parent)
			}
			if err := resolve(*obj.Parent); err != nil {
				return err
			}
			node.WorldTransform = parent.WorldTransform.Multiply(node.LocalTransform)
		default:
			node.WorldTransform = node.LocalTransform
		}
		resolved[id] = true
		return nil
	}
	for id := range scene.Objects {
		if err := resolve(id); err != nil {
			return nil, err
		}
	}

	for _, col := range scene.Collections {
		for _, id := range col.Objects {
			if _, ok := sg.NodesById[id]; !ok {
				return nil, fmt.Errorf("collection %q: unknown object %q", col.Name, id)
			}
		}
		sg.Collections = append(sg.Collections, CollectionNode{
			Name:    col.Name,
			Objects: append([]string(nil), col.Objects...),
		})
	}

	return sg, nil
}

// newNode builds a SceneNode from a document ObjectNode with its local transform.
func newNode(id string, obj document.ObjectNode) *SceneNode {
	name := obj.Name
	if name == "" {
		name = id
	}

	info := ObjectInfo{
		ID:       id,
		Name:     name,
		Type:     string(obj.Type),
		Location: vec(obj.Location),
		Rotation: vec(obj.Rotation),
		Scale:    vec(obj.ScaleOrUnit()),
	}

	vertices := make([]Point3, len(obj.Vertices))
	for i, v := range obj.Vertices {
		vertices[i] = vec(v)
	}

	attrs := make(map[string]string, len(obj.Properties))
	for k, v := range obj.Properties {
		attrs[k] = fmt.Sprint(v)
	}

	return &SceneNode{
		Info:           info,
		LocalTransform: FromTransform(info.Location, info.Rotation, info.Scale),
		Vertices:       vertices,
		Attributes:     attrs,
	}
}

func vec(v [3]float64) Point3 {
	return Point3{X: v[0], Y: v[1], Z: v[2]}
}
