package spline

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
)

func TestSegmentStartsAtSecondPoint(t *testing.T) {
	p0, p1, p2, p3 := mgl64.Vec2{-1, 0}, mgl64.Vec2{0, 0}, mgl64.Vec2{3, 4}, mgl64.Vec2{-2, 6}
	points := Segment(p0, p1, p2, p3, 16)

	assert.Len(t, points, 16)
	assert.InDelta(t, p1.X(), points[0].X(), 1e-9)
	assert.InDelta(t, p1.Y(), points[0].Y(), 1e-9)
	for _, p := range points {
		assert.NotEqual(t, p2, p)
	}
}

func TestSegmentCoincidentNeighbours(t *testing.T) {
	p := mgl64.Vec2{4, 4}
	points := Segment(p, p, p, p, 8)

	assert.Len(t, points, 8)
	for _, s := range points {
		assert.False(t, math.IsNaN(s.X()) || math.IsNaN(s.Y()))
		assert.InDelta(t, 4, s.X(), 1e-9)
		assert.InDelta(t, 4, s.Y(), 1e-9)
	}
}

func TestSegmentNonPositiveResolution(t *testing.T) {
	assert.Empty(t, Segment(mgl64.Vec2{}, mgl64.Vec2{1, 0}, mgl64.Vec2{2, 0}, mgl64.Vec2{3, 0}, 0))
}

func TestKnotUsesSquareRootOfDistance(t *testing.T) {
	assert.InDelta(t, 2+math.Sqrt(5), knot(2, mgl64.Vec2{0, 0}, mgl64.Vec2{3, 4}), 1e-12)
	assert.InDelta(t, 1+math.Sqrt(ChordEpsilon), knot(1, mgl64.Vec2{2, 2}, mgl64.Vec2{2, 2}), 1e-12)
}
