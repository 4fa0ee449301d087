package engine

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/spatial/r3"
)

// degenerateEpsilon is the shortest vector length treated as non-zero when
// deriving directions from the centroid.
const degenerateEpsilon = 1e-9

// IndexedPoint pairs a point with its position in the caller's vertex list.
type IndexedPoint struct {
	Index int
	Point Point3
}

// DegenerateInputError reports a point set the radial sweep cannot order.
type DegenerateInputError struct {
	Reason string
	Points int
}

func (e *DegenerateInputError) Error() string {
	return fmt.Sprintf("degenerate polygon (%d points): %s", e.Points, e.Reason)
}

// SortRadialSweep orders roughly coplanar points that are star-shaped about
// their centroid by signed angle around that centroid.
//
// The reference direction is points[0] and the plane normal is derived from
// points[1], so points[1] always lands at a positive angle. The result is the
// permutation of Index values in ascending angle order; equal angles keep
// their input order.
func SortRadialSweep(points []IndexedPoint) ([]int, error) {
	n := len(points)
	if n < 3 {
		return nil, &DegenerateInputError{Reason: "fewer than 3 points", Points: n}
	}

	var centroid Point3
	for _, p := range points {
		centroid = r3.Add(centroid, p.Point)
	}
	centroid = r3.Scale(1/float64(n), centroid)

	d0 := r3.Sub(points[0].Point, centroid)
	if r3.Norm(d0) < degenerateEpsilon {
		return nil, &DegenerateInputError{Reason: "first point coincides with centroid", Points: n}
	}
	r0 := r3.Unit(d0)

	cross := r3.Cross(r3.Sub(points[1].Point, centroid), r0)
	if r3.Norm(cross) < degenerateEpsilon {
		return nil, &DegenerateInputError{Reason: "centroid, first and second point are collinear", Points: n}
	}
	normal := r3.Unit(cross)

	type pair struct {
		index int
		angle float64
	}
	pairs := make([]pair, n)
	for i, p := range points {
		d := r3.Sub(p.Point, centroid)
		if r3.Norm(d) < degenerateEpsilon {
			return nil, &DegenerateInputError{
				Reason: fmt.Sprintf("point %d coincides with centroid", p.Index),
				Points: n,
			}
		}
		r1 := r3.Unit(d)

		angle := math.Acos(max(min(r3.Dot(r1, r0), 1), -1))
		if r3.Dot(normal, r3.Cross(r1, r0)) < 0 {
			angle = -angle
		}
		pairs[i] = pair{index: p.Index, angle: angle}
	}

	slices.SortStableFunc(pairs, func(a, b pair) int {
		switch {
		case a.angle < b.angle:
			return -1
		case a.angle > b.angle:
			return 1
		}
		return 0
	})

	order := make([]int, n)
	for i, p := range pairs {
		order[i] = p.index
	}
	return order, nil
}
