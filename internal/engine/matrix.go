package engine

import "math"

// Matrix3D represents a 3D affine transformation matrix.
// Layout (row-major, implicit last row 0 0 0 1):
// | m0  m1  m2  m3  |
// | m4  m5  m6  m7  |
// | m8  m9  m10 m11 |
//
// Where m3, m7, m11 are the translation.
type Matrix3D [12]float64

// Identity returns the identity matrix.
func Identity() Matrix3D {
	return Matrix3D{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
	}
}

// Translate returns a translation matrix.
func Translate(tx, ty, tz float64) Matrix3D {
	return Matrix3D{
		1, 0, 0, tx,
		0, 1, 0, ty,
		0, 0, 1, tz,
	}
}

// Scale returns a scale matrix.
func Scale(sx, sy, sz float64) Matrix3D {
	return Matrix3D{
		sx, 0, 0, 0,
		0, sy, 0, 0,
		0, 0, sz, 0,
	}
}

// RotateEuler returns the rotation for XYZ euler angles in radians.
// X is applied first, then Y, then Z: R = Rz * Ry * Rx.
func RotateEuler(rx, ry, rz float64) Matrix3D {
	cx, sx := math.Cos(rx), math.Sin(rx)
	cy, sy := math.Cos(ry), math.Sin(ry)
	cz, sz := math.Cos(rz), math.Sin(rz)

	return Matrix3D{
		cz * cy, cz*sy*sx - sz*cx, cz*sy*cx + sz*sx, 0,
		sz * cy, sz*sy*sx + cz*cx, sz*sy*cx - cz*sx, 0,
		-sy, cy * sx, cy * cx, 0,
	}
}

// Multiply multiplies this matrix by another: result = m * other
// This applies 'other' first, then 'm'.
func (m Matrix3D) Multiply(other Matrix3D) Matrix3D {
	var r Matrix3D
	for row := 0; row < 3; row++ {
		a0, a1, a2, a3 := m[row*4], m[row*4+1], m[row*4+2], m[row*4+3]
		for col := 0; col < 4; col++ {
			r[row*4+col] = a0*other[col] + a1*other[4+col] + a2*other[8+col]
		}
		r[row*4+3] += a3
	}
	return r
}

// TransformPoint applies the matrix to a point.
func (m Matrix3D) TransformPoint(p Point3) Point3 {
	return Point3{
		X: m[0]*p.X + m[1]*p.Y + m[2]*p.Z + m[3],
		Y: m[4]*p.X + m[5]*p.Y + m[6]*p.Z + m[7],
		Z: m[8]*p.X + m[9]*p.Y + m[10]*p.Z + m[11],
	}
}

// FromTransform creates a matrix from object transform properties.
// This composes: Translate(loc) * RotateEuler(rot) * Scale(scale).
func FromTransform(loc, rot, scale Point3) Matrix3D {
	return Translate(loc.X, loc.Y, loc.Z).
		Multiply(RotateEuler(rot.X, rot.Y, rot.Z)).
		Multiply(Scale(scale.X, scale.Y, scale.Z))
}

// FromRowMajor builds a matrix from a row-major 4x4 array, as hosts dump
// their world matrices. The projective last row is dropped.
func FromRowMajor(v [16]float64) Matrix3D {
	var m Matrix3D
	copy(m[:], v[:12])
	return m
}

// IsIdentity checks if this is the identity matrix (within epsilon).
func (m Matrix3D) IsIdentity() bool {
	const eps = 1e-10
	id := Identity()
	for i := range m {
		if math.Abs(m[i]-id[i]) >= eps {
			return false
		}
	}
	return true
}
