package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapPosition(t *testing.T) {
	tests := []struct {
		in, want Point3
	}{
		{Point3{X: 1}, Point3{X: -1}},
		{Point3{Y: 1}, Point3{Z: -1}},
		{Point3{Z: 1}, Point3{Y: 1}},
		{Point3{X: 1, Y: 2, Z: 3}, Point3{X: -1, Y: 3, Z: -2}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapPosition(tt.in), "MapPosition(%v)", tt.in)
	}
}

func TestMapRotation(t *testing.T) {
	assert.Equal(t, Point3{X: -10, Y: -30, Z: 20}, MapRotation(Point3{X: 10, Y: 20, Z: 30}))
	assert.Equal(t, Point3{X: 0, Y: -90, Z: 0}, MapRotation(Point3{Z: 90}))
}

func TestMapScale(t *testing.T) {
	assert.Equal(t, Point3{X: 1, Y: 3, Z: 2}, MapScale(Point3{X: 1, Y: 2, Z: 3}))
	assert.Equal(t, Point3{X: 1, Y: 1, Z: 1}, MapScale(Point3{X: 1, Y: 1, Z: 1}))
}

func TestRadiansToDegrees(t *testing.T) {
	got := RadiansToDegrees(Point3{X: math.Pi, Y: -math.Pi / 2, Z: 0})
	assert.InDelta(t, 180, got.X, standardTol)
	assert.InDelta(t, -90, got.Y, standardTol)
	assert.Equal(t, 0.0, got.Z)
}
