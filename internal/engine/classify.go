package engine

import (
	"regexp"
	"strings"
)

// CollectionKind is the role of a scene collection, decided by its name.
type CollectionKind int

const (
	CollectionIgnored CollectionKind = iota
	CollectionTrack
	CollectionHotspots
	CollectionObstacles
)

func (k CollectionKind) String() string {
	switch k {
	case CollectionTrack:
		return "track"
	case CollectionHotspots:
		return "hotspots"
	case CollectionObstacles:
		return "obstacles"
	}
	return "ignored"
}

// ClassifyCollection matches collection names case-insensitively.
func ClassifyCollection(name string) CollectionKind {
	switch strings.ToLower(name) {
	case "track":
		return CollectionTrack
	case "hotspots":
		return CollectionHotspots
	case "obstacles":
		return CollectionObstacles
	}
	return CollectionIgnored
}

// ObjectKind is what an exported object becomes.
type ObjectKind int

const (
	KindTrack ObjectKind = iota + 1
	KindHotspot
	KindObstacle
)

func (k ObjectKind) String() string {
	switch k {
	case KindTrack:
		return "track"
	case KindHotspot:
		return "hotspot"
	case KindObstacle:
		return "obstacle"
	}
	return "unknown"
}

// ObstacleKind is the collision shape an obstacle's name asks for.
type ObstacleKind int

const (
	ObstacleUnknown ObstacleKind = iota
	ObstaclePlane
	ObstacleBox
	ObstacleConvex
)

func (k ObstacleKind) String() string {
	switch k {
	case ObstaclePlane:
		return "plane"
	case ObstacleBox:
		return "box"
	case ObstacleConvex:
		return "convex"
	}
	return "unknown"
}

// Classification is computed once per object during traversal.
// Obstacle and Dynamic are only meaningful when Kind is KindObstacle.
type Classification struct {
	Kind     ObjectKind
	Obstacle ObstacleKind
	Dynamic  bool
}

var nonIdentRe = regexp.MustCompile(`[^a-zA-Z0-9]`)

// NormalizeName replaces every character outside [a-zA-Z0-9] with '_'.
func NormalizeName(name string) string {
	return nonIdentRe.ReplaceAllString(name, "_")
}

// ClassifyObject returns the object's kind given its collection, or false
// for collections that export nothing.
func ClassifyObject(collection CollectionKind, objectName string) (Classification, bool) {
	switch collection {
	case CollectionTrack:
		return Classification{Kind: KindTrack}, true
	case CollectionHotspots:
		return Classification{Kind: KindHotspot}, true
	case CollectionObstacles:
		name := strings.ToLower(NormalizeName(objectName))
		c := Classification{Kind: KindObstacle, Dynamic: strings.HasSuffix(name, "dynamic")}
		switch {
		case strings.HasPrefix(name, "plane"), strings.HasPrefix(name, "quad"):
			c.Obstacle = ObstaclePlane
		case strings.HasPrefix(name, "cube"), strings.HasPrefix(name, "box"):
			c.Obstacle = ObstacleBox
		case strings.HasPrefix(name, "convex"):
			c.Obstacle = ObstacleConvex
		}
		return c, true
	}
	return Classification{}, false
}

// IsMesh reports whether a host object type tag names a mesh.
func IsMesh(objectType string) bool {
	return strings.EqualFold(objectType, "MESH")
}
