package route

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/internal"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/spline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const guardRoute = `{
	"name": "<red>Guard</red>",
	"identifier": "guard",
	"skin": "guard",
	"yaw": 90,
	"position": {"x": 10, "y": 64, "z": -5},
	"waypoints": [{"x": 5, "z": 0}, {"x": 5, "z": 5}],
	"final_position": {"x": 20, "z": 0},
	"resolution": 8
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// resetRegistry clears the registered patrollers for the duration of a test.
func resetRegistry(t *testing.T) {
	t.Helper()
	patrollersMu.Lock()
	patrollers = orderedmap.NewOrderedMap[string, *Patroller]()
	patrollersMu.Unlock()
}

func intPtr(i int) *int {
	return &i
}

func TestReadAll(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a_guard.json"), guardRoute)
	writeFile(t, filepath.Join(dir, "nested", "b_walker.json"), `{"identifier": "walker", "final_position": {"x": 3, "z": 3}}`)
	writeFile(t, filepath.Join(dir, "notes.txt"), "ignored")

	cfgs, err := ReadAll(dir)
	require.NoError(t, err)
	require.Len(t, cfgs, 2)

	guard := cfgs[0]
	assert.Equal(t, "guard", guard.Identifier)
	assert.Equal(t, 90.0, guard.Yaw)
	assert.Equal(t, PositionConfig{X: 10, Y: 64, Z: -5}, guard.Position)
	assert.Equal(t, []PointConfig{{X: 5}, {X: 5, Z: 5}}, guard.Waypoints)
	require.NotNil(t, guard.Resolution)
	assert.Equal(t, 8, *guard.Resolution)

	assert.Equal(t, "walker", cfgs[1].Identifier)
	assert.Nil(t, cfgs[1].Resolution)
}

func TestReadAllErrors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "broken.json"), `{"identifier": `)
	_, err := ReadAll(dir)
	assert.Error(t, err)

	dir = t.TempDir()
	writeFile(t, filepath.Join(dir, "anonymous.json"), `{"name": "nobody"}`)
	_, err = ReadAll(dir)
	assert.ErrorIs(t, err, ErrMissingIdentifier)

	_, err = ReadAll(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestConfigSpline(t *testing.T) {
	conf := Config{
		Position:      PositionConfig{X: 1, Y: 70, Z: 2},
		Waypoints:     []PointConfig{{X: 3, Z: 4}},
		FinalPosition: PointConfig{X: 9, Z: 9},
	}
	sc := conf.Spline()
	assert.Equal(t, mgl64.Vec2{1, 2}, sc.Start)
	assert.Equal(t, []mgl64.Vec2{{3, 4}}, sc.Waypoints)
	assert.Equal(t, mgl64.Vec2{9, 9}, sc.End)
	assert.Equal(t, 70.0, sc.Height)
	assert.Equal(t, internal.DefaultResolution, sc.Resolution)
	assert.Equal(t, mgl64.Vec2{}, sc.GuideOffset)

	conf.Resolution = intPtr(16)
	conf.GuideOffset = &PointConfig{Z: 1}
	sc = conf.Spline()
	assert.Equal(t, 16, sc.Resolution)
	assert.Equal(t, mgl64.Vec2{0, 1}, sc.GuideOffset)
}

func TestNewPatroller(t *testing.T) {
	conf := Config{
		Identifier:    "guard",
		Name:          "Guard",
		Position:      PositionConfig{X: 10, Y: 64, Z: -5},
		Waypoints:     []PointConfig{{X: 5}},
		FinalPosition: PointConfig{X: 20, Z: -5},
		Resolution:    intPtr(10),
	}
	p, err := NewPatroller(slog.Default(), conf)
	require.NoError(t, err)

	assert.Equal(t, "guard", p.Identifier())
	require.Equal(t, 20, p.Path().Len())
	for _, pos := range p.Path() {
		assert.Equal(t, 64.0, pos.Y())
	}

	s := p.Snapshot()
	assert.Equal(t, "guard", s.Identifier)
	assert.Equal(t, "Guard", s.Name)
	assert.Equal(t, 0, s.Cursor)
	assert.Equal(t, 20, s.Points)
	assert.Equal(t, "forward", s.Direction)
	assert.False(t, s.Spawned)
	assert.True(t, s.Position.ApproxEqualThreshold(mgl64.Vec3{10, 64, -5}, 1e-9), "got %v", s.Position)
}

func TestNewPatrollerErrors(t *testing.T) {
	_, err := NewPatroller(slog.Default(), Config{Identifier: "zero", Resolution: intPtr(0)})
	assert.ErrorIs(t, err, spline.ErrInvalidResolution)

	_, err = NewPatroller(slog.Default(), Config{Identifier: "negative", Resolution: intPtr(-1)})
	assert.ErrorIs(t, err, spline.ErrInvalidResolution)
}

func TestPatrollerStepAndReset(t *testing.T) {
	p, err := NewPatroller(slog.Default(), Config{
		Identifier:    "line",
		FinalPosition: PointConfig{X: 10},
		Resolution:    intPtr(4),
	})
	require.NoError(t, err)

	var emitted []mgl64.Vec3
	for i := 0; i < 3; i++ {
		pos, err := p.step()
		require.NoError(t, err)
		emitted = append(emitted, pos)
	}
	assert.Equal(t, p.Path()[:3], spline.Path(emitted))

	s := p.Snapshot()
	assert.Equal(t, 3, s.Cursor)
	assert.Equal(t, "backward", s.Direction)
	assert.Equal(t, p.Path()[2], s.Position)

	// Not spawned, so no transaction is needed.
	p.Reset(nil)
	s = p.Snapshot()
	assert.Equal(t, 0, s.Cursor)
	assert.Equal(t, "forward", s.Direction)
	assert.Equal(t, p.Path()[0], s.Position)
}

func TestLoadAll(t *testing.T) {
	resetRegistry(t)

	cfgs := []Config{
		{Identifier: "c", FinalPosition: PointConfig{X: 1}},
		{Identifier: "a", FinalPosition: PointConfig{X: 2}},
		{Identifier: "b", FinalPosition: PointConfig{X: 3}},
	}
	loaded, err := LoadAll(slog.Default(), cfgs)
	require.NoError(t, err)
	require.Len(t, loaded, 3)

	assert.Equal(t, 3, Count())
	var ids []string
	for _, p := range All() {
		ids = append(ids, p.Identifier())
	}
	assert.Equal(t, []string{"c", "a", "b"}, ids)

	assert.Same(t, loaded[1], FromIdentifier("a"))
	assert.Nil(t, FromIdentifier("missing"))
}

func TestLoadAllFailsFast(t *testing.T) {
	resetRegistry(t)

	_, err := LoadAll(slog.Default(), []Config{
		{Identifier: "a", FinalPosition: PointConfig{X: 1}},
		{Identifier: "a", FinalPosition: PointConfig{X: 2}},
	})
	assert.Error(t, err)

	_, err = LoadAll(slog.Default(), []Config{
		{Identifier: "ok", FinalPosition: PointConfig{X: 1}},
		{Identifier: "bad", Resolution: intPtr(-4)},
	})
	assert.ErrorIs(t, err, spline.ErrInvalidResolution)
	assert.Zero(t, Count())
}
