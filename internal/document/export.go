package document

import (
	"encoding/json"
	"errors"
	"path"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	ErrEmptyName      = errors.New("export name is required")
	ErrEmptyAssetPath = errors.New("asset path is required")
)

// DefaultAssetBase is where the runtime looks for track models.
const DefaultAssetBase = "models/tracks"

// Polygon is a boundary-ordered ring of points in runtime space.
type Polygon []r3.Vec

// TrackRecord is one drivable surface segment.
type TrackRecord struct {
	Polygon Polygon
}

// HotspotRecord is a tagged trigger area.
type HotspotRecord struct {
	HotspotType string
	Polygon     Polygon
}

// ExportDocument is the document the racing runtime loads for a track.
type ExportDocument struct {
	Name     string
	GLB      string
	Track    []TrackRecord
	Hotspots []HotspotRecord
}

// AssetPath derives the runtime path of a track's model, e.g.
// "models/tracks/track_01.glb".
func AssetPath(base, name string) string {
	if base == "" {
		base = DefaultAssetBase
	}
	return path.Join(base, name+".glb")
}

// Assemble builds an export document. Record slices are copied so the
// document shares no state with the caller.
func Assemble(name, assetPath string, tracks []TrackRecord, hotspots []HotspotRecord) (*ExportDocument, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if assetPath == "" {
		return nil, ErrEmptyAssetPath
	}

	doc := &ExportDocument{
		Name:     name,
		GLB:      assetPath,
		Track:    make([]TrackRecord, len(tracks)),
		Hotspots: make([]HotspotRecord, len(hotspots)),
	}
	for i, t := range tracks {
		doc.Track[i] = TrackRecord{Polygon: clonePolygon(t.Polygon)}
	}
	for i, h := range hotspots {
		doc.Hotspots[i] = HotspotRecord{HotspotType: h.HotspotType, Polygon: clonePolygon(h.Polygon)}
	}
	return doc, nil
}

func clonePolygon(p Polygon) Polygon {
	return append(Polygon(nil), p...)
}

// Format controls coordinate stringification.
type Format struct {
	// Precision is the number of digits after the decimal point; -1 uses
	// the fewest digits that round-trip the float64 exactly.
	Precision int
}

// DefaultFormat prints shortest round-trip decimals.
var DefaultFormat = Format{Precision: -1}

// Wire types. Field order is alphabetical so encoding/json emits sorted keys.
type (
	outDocument struct {
		GLB      string       `json:"glb"`
		Hotspots []outHotspot `json:"hotspots"`
		Name     string       `json:"name"`
		Track    []outTrack   `json:"track"`
	}
	outHotspot struct {
		HotspotType string     `json:"hotspotType"`
		Polygon     []outPoint `json:"polygon"`
	}
	outTrack struct {
		Polygon []outPoint `json:"polygon"`
	}
	outPoint struct {
		X string `json:"x"`
		Y string `json:"y"`
		Z string `json:"z"`
	}
)

// Marshal serializes the document as 4-space indented JSON with sorted keys
// and string coordinates.
func Marshal(doc *ExportDocument, f Format) ([]byte, error) {
	out := outDocument{
		GLB:      doc.GLB,
		Hotspots: make([]outHotspot, len(doc.Hotspots)),
		Name:     doc.Name,
		Track:    make([]outTrack, len(doc.Track)),
	}
	for i, t := range doc.Track {
		out.Track[i] = outTrack{Polygon: f.points(t.Polygon)}
	}
	for i, h := range doc.Hotspots {
		out.Hotspots[i] = outHotspot{HotspotType: h.HotspotType, Polygon: f.points(h.Polygon)}
	}
	return json.MarshalIndent(out, "", "    ")
}

func (f Format) points(p Polygon) []outPoint {
	pts := make([]outPoint, len(p))
	for i, v := range p {
		pts[i] = outPoint{X: f.FormatFloat(v.X), Y: f.FormatFloat(v.Y), Z: f.FormatFloat(v.Z)}
	}
	return pts
}

// FormatFloat renders a coordinate. Negative zero prints as "0".
func (f Format) FormatFloat(v float64) string {
	if v == 0 {
		v = 0
	}
	s := strconv.FormatFloat(v, 'f', f.Precision, 64)
	if f.Precision >= 0 && isNegativeZero(s) {
		return s[1:]
	}
	return s
}

// isNegativeZero reports strings like "-0.000" produced by rounding a tiny
// negative value.
func isNegativeZero(s string) bool {
	if len(s) < 2 || s[0] != '-' {
		return false
	}
	for _, c := range s[1:] {
		if c != '0' && c != '.' {
			return false
		}
	}
	return true
}
