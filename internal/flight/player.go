/*
Package flight
File: player.go
Description:
    Players of a match. Each player owns exactly one ship for the whole game.
*/

package flight

import "github.com/everforgeworks/galaxy-haulers/internal/ship"

// Player is one participant of a match.
type Player struct {
	Nickname     string
	Color        string
	Credits      int
	EarlyLanded  bool
	Disconnected bool
	Ship         *ship.Board
}

// NewPlayer creates a player with an empty ship of the given level.
func NewPlayer(nickname, color string, level int) *Player {
	return &Player{
		Nickname: nickname,
		Color:    color,
		Ship:     ship.NewBoard(level),
	}
}

func (p *Player) String() string {
	return p.Nickname
}
