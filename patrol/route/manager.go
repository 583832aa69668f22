package route

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/df-mc/dragonfly/server/player/skin"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/elliotchance/orderedmap/v2"
	"github.com/getsentry/sentry-go"
)

// SkinSource provides the skins of patrol NPCs.
type SkinSource interface {
	Skin(identifier string) (skin.Skin, error)
}

// patrollers holds all registered patrollers in the order they were loaded.
var (
	patrollers   = orderedmap.NewOrderedMap[string, *Patroller]()
	patrollersMu sync.RWMutex
)

// LoadAll builds and registers a patroller for every config. It fails on the first route that
// cannot be built, or on duplicate identifiers.
func LoadAll(log *slog.Logger, cfgs []Config) ([]*Patroller, error) {
	loaded := make([]*Patroller, 0, len(cfgs))
	seen := make(map[string]struct{}, len(cfgs))
	for _, c := range cfgs {
		if _, ok := seen[c.Identifier]; ok {
			return nil, fmt.Errorf("route %s: duplicate identifier", c.Identifier)
		}
		seen[c.Identifier] = struct{}{}

		p, err := NewPatroller(log, c)
		if err != nil {
			return nil, err
		}
		loaded = append(loaded, p)
	}
	for _, p := range loaded {
		Register(p)
	}
	return loaded, nil
}

// SpawnAll spawns the NPC of every registered patroller. Patrollers without a configured skin, or
// whose skin cannot be loaded, are spawned with an empty skin.
func SpawnAll(log *slog.Logger, tx *world.Tx, skins SkinSource) {
	for _, p := range All() {
		var sk skin.Skin
		if id := p.conf.Skin; id != "" && skins != nil {
			s, err := skins.Skin(id)
			if err != nil {
				log.Warn("failed to load patroller skin", "route", p.Identifier(), "skin", id, "error", err)
			} else {
				sk = s
			}
		}
		p.Spawn(tx, sk)
	}
}

// UpdateAll advances every registered patroller by one step.
func UpdateAll(log *slog.Logger, tx *world.Tx) {
	for _, p := range All() {
		if err := p.update(tx); err != nil {
			log.Error("failed to update patroller", "route", p.Identifier(), "error", err)

			hub := sentry.CurrentHub().Clone()
			hub.ConfigureScope(func(scope *sentry.Scope) {
				scope.SetTag("route", p.Identifier())
			})
			hub.CaptureException(err)
		}
	}
}

// Register ...
func Register(p *Patroller) {
	patrollersMu.Lock()
	defer patrollersMu.Unlock()
	patrollers.Set(p.Identifier(), p)
}

// FromIdentifier ...
func FromIdentifier(identifier string) *Patroller {
	patrollersMu.RLock()
	defer patrollersMu.RUnlock()
	if p, ok := patrollers.Get(identifier); ok {
		return p
	}
	return nil
}

// All returns every registered patroller in load order.
func All() []*Patroller {
	patrollersMu.RLock()
	defer patrollersMu.RUnlock()

	result := make([]*Patroller, 0, patrollers.Len())
	for el := patrollers.Front(); el != nil; el = el.Next() {
		result = append(result, el.Value)
	}
	return result
}

// Count ...
func Count() int {
	patrollersMu.RLock()
	defer patrollersMu.RUnlock()
	return patrollers.Len()
}
