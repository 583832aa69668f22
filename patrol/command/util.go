package command

import (
	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/player"
	"github.com/samber/lo"
)

// operatorAllower only allows players named in operators. Non-player sources are always allowed.
type operatorAllower struct {
	operators []string
}

// Allow ...
func (o operatorAllower) Allow(s cmd.Source) bool {
	p, ok := s.(*player.Player)
	if !ok {
		return true
	}
	return lo.Contains(o.operators, p.Name())
}
