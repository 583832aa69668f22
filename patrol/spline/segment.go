package spline

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// ChordEpsilon is the smallest chord length used when computing knots. Coincident control points
// are treated as being this far apart so that no knot interval collapses to zero.
const ChordEpsilon = 1e-6

// Segment samples the centripetal Catmull-Rom curve between p1 and p2, using p0 and p3 to shape
// it. It returns exactly resolution points, the first of which is p1. p2 itself is never emitted.
func Segment(p0, p1, p2, p3 mgl64.Vec2, resolution int) []mgl64.Vec2 {
	if resolution <= 0 {
		return nil
	}
	t0 := 0.0
	t1 := knot(t0, p0, p1)
	t2 := knot(t1, p1, p2)
	t3 := knot(t2, p2, p3)

	step := (t2 - t1) / float64(resolution)
	points := make([]mgl64.Vec2, resolution)
	for i := range points {
		t := t1 + float64(i)*step

		a1 := blend(p0, p1, t0, t1, t)
		a2 := blend(p1, p2, t1, t2, t)
		a3 := blend(p2, p3, t2, t3, t)

		b1 := blend(a1, a2, t0, t2, t)
		b2 := blend(a2, a3, t1, t3, t)

		points[i] = blend(b1, b2, t1, t2, t)
	}
	return points
}

// knot returns the knot following t for the chord between a and b, using the square root of the
// planar distance.
func knot(t float64, a, b mgl64.Vec2) float64 {
	return t + math.Sqrt(math.Max(b.Sub(a).Len(), ChordEpsilon))
}

// blend interpolates between a at ta and b at tb, evaluated at t. tb > ta always holds because
// knots strictly increase.
func blend(a, b mgl64.Vec2, ta, tb, t float64) mgl64.Vec2 {
	d := tb - ta
	return a.Mul((tb - t) / d).Add(b.Mul((t - ta) / d))
}
