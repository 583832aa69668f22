package route

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/samber/lo"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/internal"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/spline"
)

// ErrMissingIdentifier is returned for route configs without an identifier.
var ErrMissingIdentifier = errors.New("route: missing identifier")

// Config is the configuration of a single patrol route, read from a JSON file.
type Config struct {
	Name       string `json:"name"`
	Identifier string `json:"identifier"`
	Skin       string `json:"skin"`

	Scale float64 `json:"scale"`
	Yaw   float64 `json:"yaw"`
	Pitch float64 `json:"pitch"`

	// Position is the initial position of the NPC. Its Y coordinate is kept for the whole patrol.
	Position      PositionConfig `json:"position"`
	// Waypoints are relative to Position.
	Waypoints     []PointConfig  `json:"waypoints"`
	// FinalPosition is absolute.
	FinalPosition PointConfig    `json:"final_position"`

	// Resolution is the number of points between two patrol points. When omitted,
	// internal.DefaultResolution is used.
	Resolution  *int         `json:"resolution,omitempty"`
	GuideOffset *PointConfig `json:"guide_offset,omitempty"`
}

// PositionConfig ...
type PositionConfig struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// vec3 ...
func (x PositionConfig) vec3() mgl64.Vec3 {
	return mgl64.Vec3{x.X, x.Y, x.Z}
}

// PointConfig is a point on the XZ plane.
type PointConfig struct {
	X float64 `json:"x"`
	Z float64 `json:"z"`
}

// vec2 ...
func (x PointConfig) vec2() mgl64.Vec2 {
	return mgl64.Vec2{x.X, x.Z}
}

// Spline returns the spline configuration described by the route.
func (c Config) Spline() spline.Config {
	conf := spline.Config{
		Start: mgl64.Vec2{c.Position.X, c.Position.Z},
		Waypoints: lo.Map(c.Waypoints, func(p PointConfig, _ int) mgl64.Vec2 {
			return p.vec2()
		}),
		End:        c.FinalPosition.vec2(),
		Resolution: internal.DefaultResolution,
		Height:     c.Position.Y,
	}
	if c.Resolution != nil {
		conf.Resolution = *c.Resolution
	}
	if c.GuideOffset != nil {
		conf.GuideOffset = c.GuideOffset.vec2()
	}
	return conf
}

// scale ...
func (c Config) scale() float64 {
	if c.Scale <= 0 {
		return 1
	}
	return c.Scale
}

// ReadAll reads every route config in the directory at path, in lexical file order.
func ReadAll(path string) ([]Config, error) {
	var configs []Config
	err := filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(p) == ".json" {
			cfg, err := parseConfig(p)
			if err != nil {
				return fmt.Errorf("error: %w", err)
			}
			configs = append(configs, cfg)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return configs, nil
}

// parseConfig ...
func parseConfig(file string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(file)
	if err != nil {
		return cfg, fmt.Errorf("failed to read file %s: %w", file, err)
	}
	err = json.Unmarshal(data, &cfg)
	if err != nil {
		return cfg, fmt.Errorf("failed to parse file %s: %w", file, err)
	}
	if cfg.Identifier == "" {
		return cfg, fmt.Errorf("file %s: %w", file, ErrMissingIdentifier)
	}
	return cfg, nil
}
