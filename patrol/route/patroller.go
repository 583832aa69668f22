// Package route spawns NPCs that patrol smooth paths through configured waypoints.
package route

import (
	"fmt"
	"log/slog"

	"github.com/df-mc/atomic"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/df-mc/dragonfly/server/player/skin"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/df-mc/npc"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/sandertv/gophertunnel/minecraft/text"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/spline"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/walker"
)

// Snapshot is the state of a Patroller after its most recent step. Snapshots may be read from
// any goroutine.
type Snapshot struct {
	Identifier string     `json:"identifier"`
	Name       string     `json:"name"`
	Position   mgl64.Vec3 `json:"position"`
	Cursor     int        `json:"cursor"`
	Points     int        `json:"points"`
	Direction  string     `json:"direction"`
	Spawned    bool       `json:"spawned"`
}

// Patroller is an NPC walking back and forth along its route. Apart from Snapshot, its methods
// must only be called from within a transaction of the world it is spawned in.
type Patroller struct {
	log    *slog.Logger
	conf   Config
	path   spline.Path
	walker *walker.Walker
	handle *world.EntityHandle

	snapshot atomic.Value[Snapshot]
}

// NewPatroller builds the path of the route and prepares a patroller walking it.
func NewPatroller(log *slog.Logger, conf Config) (*Patroller, error) {
	path, err := spline.Build(conf.Spline())
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", conf.Identifier, err)
	}
	w, err := walker.New(path)
	if err != nil {
		return nil, fmt.Errorf("route %s: %w", conf.Identifier, err)
	}

	p := &Patroller{
		log:    log.With("route", conf.Identifier),
		conf:   conf,
		path:   path,
		walker: w,
	}
	p.publish(path[0])
	return p, nil
}

// Spawn creates the NPC of the patroller at the start of its path.
func (p *Patroller) Spawn(tx *world.Tx, sk skin.Skin) {
	n := npc.Create(
		npc.Settings{
			Name: text.Colourf("%s", p.conf.Name),

			Scale: p.conf.scale(),
			Yaw:   p.conf.Yaw,
			Pitch: p.conf.Pitch,

			Position: p.conf.Position.vec3(),

			Skin: sk,

			Immobile:   true,
			Vulnerable: false,
		}, tx, p.handleInteract,
	)

	p.handle = n.H()
	p.publish(p.path[p.walker.Cursor()])
	p.log.Debug("spawned patroller", "points", len(p.path))
}

// handleInteract ...
func (p *Patroller) handleInteract(pl *player.Player) {
	s := p.Snapshot()
	pl.Message(text.Colourf("<aqua>%s</aqua> <grey>is patrolling (%d/%d, %s)</grey>", p.conf.Name, s.Cursor+1, s.Points, s.Direction))
}

// update advances the patroller a single step and moves its NPC to the point reached. The NPC is
// immobile, so it is teleported rather than moved.
func (p *Patroller) update(tx *world.Tx) error {
	if p.handle == nil {
		return nil
	}
	ent, ok := p.handle.Entity(tx)
	if !ok {
		return nil
	}
	pos, err := p.step()
	if err != nil {
		return err
	}

	ent.(*player.Player).Teleport(pos)
	return nil
}

// step ...
func (p *Patroller) step() (mgl64.Vec3, error) {
	pos, err := p.walker.Advance()
	if err != nil {
		return pos, fmt.Errorf("route %s: %w", p.conf.Identifier, err)
	}
	p.publish(pos)
	return pos, nil
}

// Reset rewinds the patroller to the start of its path.
func (p *Patroller) Reset(tx *world.Tx) {
	p.walker.Reset()
	start := p.path[0]
	p.publish(start)

	if p.handle == nil {
		return
	}
	if ent, ok := p.handle.Entity(tx); ok {
		ent.(*player.Player).Teleport(start)
	}
}

// publish ...
func (p *Patroller) publish(pos mgl64.Vec3) {
	p.snapshot.Store(Snapshot{
		Identifier: p.conf.Identifier,
		Name:       p.conf.Name,
		Position:   pos,
		Cursor:     p.walker.Cursor(),
		Points:     p.walker.Len(),
		Direction:  p.walker.Direction().String(),
		Spawned:    p.handle != nil,
	})
}

// Snapshot returns the most recently published state of the patroller.
func (p *Patroller) Snapshot() Snapshot {
	return p.snapshot.Load()
}

// Identifier ...
func (p *Patroller) Identifier() string {
	return p.conf.Identifier
}

// Config ...
func (p *Patroller) Config() Config {
	return p.conf
}

// Path returns the full path walked by the patroller. It must not be modified.
func (p *Patroller) Path() spline.Path {
	return p.path
}
