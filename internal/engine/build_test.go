package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inamate/trackexport/internal/document"
)

func strPtr(s string) *string { return &s }

func TestBuildSceneGraph_ParentChain(t *testing.T) {
	scene := &document.InScene{
		Collections: []document.Collection{{Name: "Track", Objects: []string{"child"}}},
		Objects: map[string]document.ObjectNode{
			"root":   {Type: document.ObjectTypeEmpty, Location: [3]float64{0, 10, 0}},
			"middle": {Type: document.ObjectTypeEmpty, Parent: strPtr("root"), Rotation: [3]float64{0, 0, math.Pi / 2}},
			"child":  {Type: document.ObjectTypeMesh, Name: "Child", Parent: strPtr("middle"), Location: [3]float64{1, 0, 0}},
		},
	}

	sg, err := BuildSceneGraph(scene)
	require.NoError(t, err)

	// (0,0,0) -> local (1,0,0) -> rotate z 90 (0,1,0) -> translate (0,11,0)
	got := sg.WorldTransform("child").TransformPoint(Point3{})
	assertVecInDelta(t, Point3{X: 0, Y: 11, Z: 0}, got)

	info, ok := sg.Object("child")
	require.True(t, ok)
	assert.Equal(t, "Child", info.Name)
	assert.Equal(t, "MESH", info.Type)
	assert.Equal(t, Point3{X: 1, Y: 1, Z: 1}, info.Scale)

	// Unnamed objects fall back to their ID.
	info, ok = sg.Object("root")
	require.True(t, ok)
	assert.Equal(t, "root", info.Name)

	assert.Equal(t, []string{"Track"}, sg.ListCollections())
	assert.Equal(t, []string{"child"}, sg.ListObjects("Track"))
	assert.Nil(t, sg.ListObjects("track"))
}

func TestBuildSceneGraph_MatrixWorldWins(t *testing.T) {
	world := [16]float64{
		1, 0, 0, 7,
		0, 1, 0, 8,
		0, 0, 1, 9,
		0, 0, 0, 1,
	}
	scene := &document.InScene{
		Objects: map[string]document.ObjectNode{
			"root": {Location: [3]float64{100, 100, 100}},
			"obj":  {Parent: strPtr("root"), Location: [3]float64{1, 1, 1}, MatrixWorld: &world},
		},
	}

	sg, err := BuildSceneGraph(scene)
	require.NoError(t, err)
	assert.Equal(t, Translate(7, 8, 9), sg.WorldTransform("obj"))
}

func TestBuildSceneGraph_Errors(t *testing.T) {
	tests := []struct {
		name    string
		scene   *document.InScene
		wantErr string
	}{
		{
			name: "parent cycle",
			scene: &document.InScene{Objects: map[string]document.ObjectNode{
				"a": {Parent: strPtr("b")},
				"b": {Parent: strPtr("a")},
			}},
			wantErr: "parent cycle",
		},
		{
			name: "unknown parent",
			scene: &document.InScene{Objects: map[string]document.ObjectNode{
				"a": {Parent: strPtr("ghost")},
			}},
			wantErr: `object "a": unknown parent "ghost"`,
		},
		{
			name: "unknown collection member",
			scene: &document.InScene{
				Collections: []document.Collection{{Name: "Track", Objects: []string{"ghost"}}},
				Objects:     map[string]document.ObjectNode{},
			},
			wantErr: `collection "Track": unknown object "ghost"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSceneGraph(tt.scene)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestBuildSceneGraph_Attributes(t *testing.T) {
	scene := &document.InScene{Objects: map[string]document.ObjectNode{
		"obj": {Properties: map[string]any{"hotspotType": "boost", "laps": 3.0, "enabled": true}},
	}}

	sg, err := BuildSceneGraph(scene)
	require.NoError(t, err)

	v, ok := sg.CustomAttribute("obj", "hotspotType")
	require.True(t, ok)
	assert.Equal(t, "boost", v)

	v, _ = sg.CustomAttribute("obj", "laps")
	assert.Equal(t, "3", v)
	v, _ = sg.CustomAttribute("obj", "enabled")
	assert.Equal(t, "true", v)

	_, ok = sg.CustomAttribute("obj", "missing")
	assert.False(t, ok)
	_, ok = sg.CustomAttribute("ghost", "hotspotType")
	assert.False(t, ok)
}

func TestBuildSceneGraph_Nil(t *testing.T) {
	sg, err := BuildSceneGraph(nil)
	require.NoError(t, err)
	assert.Empty(t, sg.ListCollections())
	assert.True(t, sg.WorldTransform("anything").IsIdentity())
}
