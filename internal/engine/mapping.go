package engine

import "math"

// The racing runtime is Y-up and left-handed while scene hosts are Z-up and
// right-handed. Positions, rotations and scales each convert differently, so
// keep these three separate.

// MapPosition converts a host-space position to runtime space: (x, y, z) -> (-x, z, -y).
func MapPosition(p Point3) Point3 {
	return Point3{X: -p.X, Y: p.Z, Z: -p.Y}
}

// MapRotation converts host euler angles in degrees to runtime euler angles
// in degrees: (rx, ry, rz) -> (-rx, -rz, ry).
func MapRotation(deg Point3) Point3 {
	return Point3{X: -deg.X, Y: -deg.Z, Z: deg.Y}
}

// MapScale converts a host scale to runtime space: (sx, sy, sz) -> (sx, sz, sy).
func MapScale(s Point3) Point3 {
	return Point3{X: s.X, Y: s.Z, Z: s.Y}
}

// RadiansToDegrees converts each component of an euler rotation.
func RadiansToDegrees(r Point3) Point3 {
	const k = 180 / math.Pi
	return Point3{X: r.X * k, Y: r.Y * k, Z: r.Z * k}
}
