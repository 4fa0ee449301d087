package document

// InScene is a scene dump written by a host-side script. It carries only
// what the exporter reads: collections, object transforms, local vertices
// and custom properties.
type InScene struct {
	Name        string                `json:"name" yaml:"name"`
	Collections []Collection          `json:"collections" yaml:"collections"`
	Objects     map[string]ObjectNode `json:"objects" yaml:"objects"`
}

// Collection lists object IDs in the host's enumeration order.
type Collection struct {
	Name    string   `json:"name" yaml:"name"`
	Objects []string `json:"objects" yaml:"objects"`
}

type ObjectType string

const (
	ObjectTypeMesh   ObjectType = "MESH"
	ObjectTypeEmpty  ObjectType = "EMPTY"
	ObjectTypeCurve  ObjectType = "CURVE"
	ObjectTypeCamera ObjectType = "CAMERA"
	ObjectTypeLight  ObjectType = "LIGHT"
)

type ObjectNode struct {
	ID     string     `json:"id" yaml:"id"`
	Name   string     `json:"name" yaml:"name"`
	Type   ObjectType `json:"type" yaml:"type"`
	Parent *string    `json:"parent,omitempty" yaml:"parent,omitempty"`

	// Local transform. Rotation is XYZ euler in radians.
	Location [3]float64  `json:"location" yaml:"location"`
	Rotation [3]float64  `json:"rotation" yaml:"rotation"`
	Scale    *[3]float64 `json:"scale,omitempty" yaml:"scale,omitempty"`

	// MatrixWorld, when present, is the host's resolved row-major 4x4 world
	// matrix and takes precedence over the parent chain.
	MatrixWorld *[16]float64 `json:"matrixWorld,omitempty" yaml:"matrixWorld,omitempty"`

	Vertices   [][3]float64   `json:"vertices,omitempty" yaml:"vertices,omitempty"`
	Properties map[string]any `json:"properties,omitempty" yaml:"properties,omitempty"`
}

// ScaleOrUnit returns the object's scale, defaulting to (1, 1, 1) when the
// dump omits it.
func (o ObjectNode) ScaleOrUnit() [3]float64 {
	if o.Scale == nil {
		return [3]float64{1, 1, 1}
	}
	return *o.Scale
}
