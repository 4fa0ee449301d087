package document

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SceneFormat is the encoding of a scene dump.
type SceneFormat string

const (
	FormatJSON SceneFormat = "json"
	FormatYAML SceneFormat = "yaml"
)

// FormatFromPath picks a format from a file extension. Unknown extensions
// are treated as JSON.
func FormatFromPath(p string) SceneFormat {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// FormatFromContentType picks a format from an HTTP Content-Type.
func FormatFromContentType(ct string) SceneFormat {
	ct = strings.ToLower(ct)
	if strings.Contains(ct, "yaml") {
		return FormatYAML
	}
	return FormatJSON
}

// Decode reads a scene dump.
func Decode(r io.Reader, format SceneFormat) (*InScene, error) {
	var scene InScene
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&scene); err != nil {
			return nil, fmt.Errorf("decode yaml scene: %w", err)
		}
	default:
		if err := json.NewDecoder(r).Decode(&scene); err != nil {
			return nil, fmt.Errorf("decode json scene: %w", err)
		}
	}
	if scene.Objects == nil {
		scene.Objects = map[string]ObjectNode{}
	}
	return &scene, nil
}

// LoadFile reads a scene dump from disk.
func LoadFile(p string) (*InScene, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	return Decode(f, FormatFromPath(p))
}
