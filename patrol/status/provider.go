package status

import (
	"fmt"

	"github.com/sandertv/gophertunnel/minecraft"
	"github.com/smell-of-curry/pokebedrock-patrol/patrol/route"
)

// Provider ...
type Provider struct {
	name       string
	maxPlayers int
}

// NewProvider ...
func NewProvider(serverName string, maxPlayers int) *Provider {
	return &Provider{name: serverName, maxPlayers: maxPlayers}
}

// ServerStatus ...
func (p *Provider) ServerStatus(playerCount, maxPlayers int) minecraft.ServerStatus {
	if p.maxPlayers > 0 {
		maxPlayers = p.maxPlayers
	}
	return minecraft.ServerStatus{
		ServerName:    p.name,
		ServerSubName: fmt.Sprintf("%d patrols active", route.Count()),
		PlayerCount:   playerCount,
		MaxPlayers:    maxPlayers,
	}
}
