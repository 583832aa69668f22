// Package spline builds discretised centripetal Catmull-Rom paths through planar waypoints.
package spline

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
)

var (
	// ErrInvalidResolution is returned when the number of samples per segment is not positive.
	ErrInvalidResolution = errors.New("spline: resolution must be positive")
	// ErrTooFewControlPoints is returned when fewer than four control points are supplied.
	ErrTooFewControlPoints = errors.New("spline: at least four control points are required")
	// ErrNonFinite is returned when an input coordinate is NaN or infinite.
	ErrNonFinite = errors.New("spline: non-finite coordinate")
)

// DefaultGuideOffset is the offset used to place the synthetic guide points before the start and
// after the end of the path.
var DefaultGuideOffset = mgl64.Vec2{1, 0}

// Path is a flattened, ordered sequence of points along the whole trajectory. It must not be
// modified once built.
type Path []mgl64.Vec3

// Len ...
func (p Path) Len() int {
	return len(p)
}

// Config holds everything needed to build a Path.
type Config struct {
	// Start is the planar starting position of the entity.
	Start     mgl64.Vec2
	// Waypoints are offsets relative to Start, visited in order.
	Waypoints []mgl64.Vec2
	// End is the absolute planar position the path finishes at.
	End       mgl64.Vec2

	// Resolution is the number of points emitted per segment.
	Resolution int
	// Height is the constant Y coordinate of every point in the path.
	Height     float64

	// GuideOffset overrides DefaultGuideOffset when non-zero.
	GuideOffset mgl64.Vec2
}

// guideOffset ...
func (conf Config) guideOffset() mgl64.Vec2 {
	if conf.GuideOffset == (mgl64.Vec2{}) {
		return DefaultGuideOffset
	}
	return conf.GuideOffset
}

// ControlPoints returns the guide points, start, absolute waypoints and end in path order. The
// result always holds len(conf.Waypoints)+4 points.
func ControlPoints(conf Config) []mgl64.Vec2 {
	offset := conf.guideOffset()

	points := make([]mgl64.Vec2, 0, len(conf.Waypoints)+4)
	points = append(points, conf.Start.Sub(offset), conf.Start)
	points = append(points, lo.Map(conf.Waypoints, func(w mgl64.Vec2, _ int) mgl64.Vec2 {
		return conf.Start.Add(w)
	})...)
	return append(points, conf.End, conf.End.Add(offset))
}

// Build builds the full Path described by conf. The resulting path holds exactly
// (len(conf.Waypoints)+1)*conf.Resolution points.
func Build(conf Config) (Path, error) {
	if !finite(conf.Height) {
		return nil, fmt.Errorf("height %v: %w", conf.Height, ErrNonFinite)
	}
	return BuildControlPoints(ControlPoints(conf), conf.Resolution, conf.Height)
}

// BuildControlPoints discretises every four point window of points into resolution samples and
// concatenates them, lifting each sample to 3D at the given height.
func BuildControlPoints(points []mgl64.Vec2, resolution int, height float64) (Path, error) {
	if resolution <= 0 {
		return nil, fmt.Errorf("resolution %d: %w", resolution, ErrInvalidResolution)
	}
	if len(points) < 4 {
		return nil, fmt.Errorf("got %d control points: %w", len(points), ErrTooFewControlPoints)
	}
	for i, p := range points {
		if !finite(p.X()) || !finite(p.Y()) {
			return nil, fmt.Errorf("control point %d (%v): %w", i, p, ErrNonFinite)
		}
	}

	segments := len(points) - 3
	path := make(Path, 0, segments*resolution)
	for i := 0; i < segments; i++ {
		for _, s := range Segment(points[i], points[i+1], points[i+2], points[i+3], resolution) {
			path = append(path, mgl64.Vec3{s.X(), height, s.Y()})
		}
	}
	return path, nil
}

// finite ...
func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
