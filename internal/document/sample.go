package document

// NewSampleScene returns a small scene with a square road segment, a
// triangular segment parented to a moved empty, two hotspots and two
// obstacles. It is used by the browser build and as a test fixture.
func NewSampleScene() *InScene {
	rootID := "obj_root"
	unit := [3]float64{1, 1, 1}

	return &InScene{
		Name: "sample",
		Collections: []Collection{
			{Name: "Track", Objects: []string{"obj_road", "obj_ramp", "obj_root"}},
			{Name: "Hotspots", Objects: []string{"obj_boost", "obj_finish"}},
			{Name: "Obstacles", Objects: []string{"obj_crate", "obj_wall"}},
			{Name: "GLB", Objects: []string{"obj_road"}},
		},
		Objects: map[string]ObjectNode{
			rootID: {
				ID:       rootID,
				Name:     "Root",
				Type:     ObjectTypeEmpty,
				Location: [3]float64{0, 10, 0},
				Scale:    &unit,
			},
			"obj_road": {
				ID:   "obj_road",
				Name: "Road",
				Type: ObjectTypeMesh,
				// Deliberately out of boundary order.
				Vertices: [][3]float64{
					{0, 0, 0}, {4, 0, 0}, {0, 4, 0}, {4, 4, 0},
				},
			},
			"obj_ramp": {
				ID:       "obj_ramp",
				Name:     "Ramp",
				Type:     ObjectTypeMesh,
				Parent:   &rootID,
				Location: [3]float64{2, 0, 0},
				Vertices: [][3]float64{
					{0, 0, 0}, {2, 0, 0}, {1, 2, 0},
				},
			},
			"obj_boost": {
				ID:       "obj_boost",
				Name:     "Boost Pad",
				Type:     ObjectTypeMesh,
				Location: [3]float64{1, 1, 0},
				Vertices: [][3]float64{
					{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
				},
				Properties: map[string]any{"hotspotType": "boost"},
			},
			"obj_finish": {
				ID:   "obj_finish",
				Name: "Finish",
				Type: ObjectTypeMesh,
				Vertices: [][3]float64{
					{0, 3, 0}, {4, 3, 0}, {4, 4, 0}, {0, 4, 0},
				},
			},
			"obj_crate": {
				ID:       "obj_crate",
				Name:     "Cube.001 dynamic",
				Type:     ObjectTypeMesh,
				Location: [3]float64{3, 1, 0.5},
				Vertices: [][3]float64{
					{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5},
					{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5},
				},
			},
			"obj_wall": {
				ID:       "obj_wall",
				Name:     "Plane.Wall",
				Type:     ObjectTypeMesh,
				Location: [3]float64{0, 2, 1},
				Rotation: [3]float64{1.5707963267948966, 0, 0},
			},
		},
	}
}
