package command

import (
	"strings"

	"github.com/df-mc/dragonfly/server/cmd"
	"github.com/df-mc/dragonfly/server/world"
	"github.com/sandertv/gophertunnel/minecraft/text"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/route"
)

// PatrolList lists every patrol and where it currently is along its path.
type PatrolList struct {
	List cmd.SubCommand `cmd:"list"`
}

// PatrolReset rewinds a patrol to the start of its path.
type PatrolReset struct {
	Reset cmd.SubCommand `cmd:"reset"`
	Route string         `cmd:"route"`

	operatorAllower
}

// NewPatrol creates the patrol command. Resetting a patrol is limited to the given operators.
func NewPatrol(operators []string) cmd.Command {
	return cmd.New("patrol", "Inspect and reset patrolling NPCs", nil,
		PatrolList{},
		PatrolReset{operatorAllower: operatorAllower{operators: operators}},
	)
}

// Run ...
func (PatrolList) Run(_ cmd.Source, o *cmd.Output, _ *world.Tx) {
	patrollers := route.All()
	if len(patrollers) == 0 {
		o.Print("There are no patrols")
		return
	}
	for _, p := range patrollers {
		s := p.Snapshot()
		o.Print(text.Colourf(" - <aqua>%s</aqua> <grey>%d/%d %s</grey>", s.Identifier, s.Cursor+1, s.Points, s.Direction))
	}
}

// Run ...
func (r PatrolReset) Run(_ cmd.Source, o *cmd.Output, tx *world.Tx) {
	identifier := strings.TrimSpace(r.Route)
	p := route.FromIdentifier(identifier)
	if p == nil {
		o.Errorf("Unknown patrol '%s'", identifier)
		return
	}
	p.Reset(tx)
	o.Print(text.Colourf("<green>You've reset the '%s' patrol.</green>", identifier))
}
