package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlScene = `
name: oval
collections:
  - name: Track
    objects: [road]
objects:
  road:
    id: road
    name: Road
    type: MESH
    location: [1, 2, 3]
    rotation: [0, 0, 1.5707963267948966]
    scale: [2, 2, 2]
    vertices:
      - [0, 0, 0]
      - [1, 0, 0]
      - [1, 1, 0]
    properties:
      hotspotType: boost
`

const jsonScene = `{
  "name": "oval",
  "collections": [{"name": "Track", "objects": ["road"]}],
  "objects": {
    "road": {
      "id": "road",
      "name": "Road",
      "type": "MESH",
      "parent": "root",
      "location": [1, 2, 3],
      "rotation": [0, 0, 0],
      "matrixWorld": [1,0,0,1, 0,1,0,2, 0,0,1,3, 0,0,0,1],
      "vertices": [[0, 0, 0], [1, 0, 0], [1, 1, 0]]
    },
    "root": {"id": "root", "type": "EMPTY", "location": [0, 0, 0], "rotation": [0, 0, 0]}
  }
}`

func TestDecode_YAML(t *testing.T) {
	scene, err := Decode(strings.NewReader(yamlScene), FormatYAML)
	require.NoError(t, err)

	assert.Equal(t, "oval", scene.Name)
	require.Len(t, scene.Collections, 1)
	assert.Equal(t, []string{"road"}, scene.Collections[0].Objects)

	road := scene.Objects["road"]
	assert.Equal(t, ObjectTypeMesh, road.Type)
	assert.Equal(t, [3]float64{1, 2, 3}, road.Location)
	assert.Equal(t, [3]float64{2, 2, 2}, road.ScaleOrUnit())
	assert.Len(t, road.Vertices, 3)
	assert.Equal(t, "boost", road.Properties["hotspotType"])
	assert.Nil(t, road.MatrixWorld)
}

func TestDecode_JSON(t *testing.T) {
	scene, err := Decode(strings.NewReader(jsonScene), FormatJSON)
	require.NoError(t, err)

	road := scene.Objects["road"]
	require.NotNil(t, road.Parent)
	assert.Equal(t, "root", *road.Parent)
	require.NotNil(t, road.MatrixWorld)
	assert.Equal(t, 3.0, road.MatrixWorld[11])
	assert.Equal(t, [3]float64{1, 1, 1}, road.ScaleOrUnit())
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode(strings.NewReader("{"), FormatJSON)
	assert.ErrorContains(t, err, "decode json scene")

	_, err = Decode(strings.NewReader("objects: [unterminated"), FormatYAML)
	assert.ErrorContains(t, err, "decode yaml scene")
}

func TestDecode_EmptyObjects(t *testing.T) {
	scene, err := Decode(strings.NewReader(`{"name": "bare"}`), FormatJSON)
	require.NoError(t, err)
	assert.NotNil(t, scene.Objects)
}

func TestFormatDetection(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("scene.yaml"))
	assert.Equal(t, FormatYAML, FormatFromPath("scene.YML"))
	assert.Equal(t, FormatJSON, FormatFromPath("scene.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("scene"))

	assert.Equal(t, FormatYAML, FormatFromContentType("application/yaml"))
	assert.Equal(t, FormatYAML, FormatFromContentType("application/x-yaml; charset=utf-8"))
	assert.Equal(t, FormatJSON, FormatFromContentType("application/json"))
	assert.Equal(t, FormatJSON, FormatFromContentType(""))
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "oval.yml")
	require.NoError(t, os.WriteFile(p, []byte(yamlScene), 0o644))

	scene, err := LoadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "oval", scene.Name)

	_, err = LoadFile(filepath.Join(dir, "missing.json"))
	assert.ErrorContains(t, err, "open scene")
}
