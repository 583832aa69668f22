// Package walker moves a cursor back and forth along a built spline.Path, one step per tick.
package walker

import (
	"errors"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/spline"
)

// ErrEmptyPath is returned when a Walker is used without any points to walk.
var ErrEmptyPath = errors.New("walker: path is empty")

// Direction is the direction the cursor of a Walker moves in.
type Direction bool

const (
	// Forward moves the cursor towards the end of the path.
	Forward Direction = false
	// Backward moves the cursor towards the start of the path.
	Backward Direction = true
)

// String ...
func (d Direction) String() string {
	if d == Backward {
		return "backward"
	}
	return "forward"
}

// Walker walks a path endlessly, reversing at both ends. A Walker is not safe for concurrent use.
type Walker struct {
	path      spline.Path
	cursor    int
	direction Direction
}

// New returns a Walker positioned at the first point of path, moving forward.
func New(path spline.Path) (*Walker, error) {
	if len(path) == 0 {
		return nil, ErrEmptyPath
	}
	return &Walker{path: path}, nil
}

// Advance returns the point at the cursor and then moves the cursor a single step. The direction
// flips as soon as the cursor steps onto either end, so each end point is returned once per pass.
func (w *Walker) Advance() (mgl64.Vec3, error) {
	if len(w.path) == 0 {
		return mgl64.Vec3{}, ErrEmptyPath
	}
	pos := w.path[w.cursor]

	last := len(w.path) - 1
	if last == 0 {
		return pos, nil
	}
	if w.direction == Forward {
		w.cursor++
		if w.cursor == last {
			w.direction = Backward
		}
	} else {
		w.cursor--
		if w.cursor == 0 {
			w.direction = Forward
		}
	}
	return pos, nil
}

// CurrentPosition returns the point at the cursor without moving it.
func (w *Walker) CurrentPosition() (mgl64.Vec3, error) {
	if len(w.path) == 0 {
		return mgl64.Vec3{}, ErrEmptyPath
	}
	return w.path[w.cursor], nil
}

// Reset moves the cursor back to the start of the path, facing forward.
func (w *Walker) Reset() {
	w.cursor, w.direction = 0, Forward
}

// Cursor ...
func (w *Walker) Cursor() int {
	return w.cursor
}

// Direction ...
func (w *Walker) Direction() Direction {
	return w.direction
}

// Len returns the number of points in the walked path.
func (w *Walker) Len() int {
	return len(w.path)
}
