/*
Package flight
File: board.go
Description:
    The FlyingBoard: the circular race track. Positions are absolute step
    counts (they keep growing lap after lap) but two players never share the
    same physical space, i.e. positions are unique modulo the track length.

    Moving a player counts only free spaces: every space held by another
    player is jumped over, which is how overtaking works on the track.
*/

package flight

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrUnknownPlayer  = errors.New("player is not on the flying board")
	ErrAlreadyFlying  = errors.New("player is already on the flying board")
	ErrSpaceOccupied  = errors.New("space already occupied")
	ErrNoStartingSlot = errors.New("no starting slot left")
)

// Track holds the per-level rules of the flying board.
type Track struct {
	Length         int   `yaml:"length" json:"length"`
	StartPositions []int `yaml:"start_positions" json:"start_positions"`
	PositionBonus  []int `yaml:"position_bonus" json:"position_bonus"`
	PrettiestBonus int   `yaml:"prettiest_bonus" json:"prettiest_bonus"`
}

// StandardTrack is the level 2 flying board.
var StandardTrack = Track{
	Length:         24,
	StartPositions: []int{6, 3, 1, 0},
	PositionBonus:  []int{8, 6, 4, 2},
	PrettiestBonus: 4,
}

// TestFlightTrack is the level 1 flying board.
var TestFlightTrack = Track{
	Length:         18,
	StartPositions: []int{4, 2, 1, 0},
	PositionBonus:  []int{4, 3, 2, 1},
	PrettiestBonus: 2,
}

// Exit records a player who left the race.
type Exit struct {
	Player    *Player
	Voluntary bool
}

// Board is the FlyingBoard of one match.
type Board struct {
	track     Track
	positions map[*Player]int
	out       []Exit
	marked    map[*Player]bool
	scored    bool
}

// NewBoard creates an empty flying board.
func NewBoard(track Track) *Board {
	return &Board{
		track:     track,
		positions: make(map[*Player]int),
		marked:    make(map[*Player]bool),
	}
}

// Track returns the rules the board was created with.
func (b *Board) Track() Track {
	return b.track
}

func (b *Board) space(pos int) int {
	return ((pos % b.track.Length) + b.track.Length) % b.track.Length
}

// occupied reports whether another player holds the physical space of pos.
func (b *Board) occupied(pos int, except *Player) bool {
	for p, other := range b.positions {
		if p != except && b.space(other) == b.space(pos) {
			return true
		}
	}
	return false
}

// NextStartPosition returns the next free starting slot, in finishing order.
func (b *Board) NextStartPosition() (int, error) {
	for _, pos := range b.track.StartPositions {
		if !b.occupied(pos, nil) {
			return pos, nil
		}
	}
	return 0, ErrNoStartingSlot
}

// Insert puts a player on the track at pos.
func (b *Board) Insert(p *Player, pos int) error {
	if _, ok := b.positions[p]; ok {
		return fmt.Errorf("%w: %s", ErrAlreadyFlying, p)
	}
	if b.occupied(pos, nil) {
		return fmt.Errorf("%w: %d", ErrSpaceOccupied, pos)
	}
	b.positions[p] = pos
	return nil
}

// Position returns a player's absolute position.
func (b *Board) Position(p *Player) (int, error) {
	pos, ok := b.positions[p]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownPlayer, p)
	}
	return pos, nil
}

// InFlight reports whether p is still racing.
func (b *Board) InFlight(p *Player) bool {
	_, ok := b.positions[p]
	return ok
}

// Move advances (delta > 0) or pulls back (delta < 0) a player by delta free spaces.
func (b *Board) Move(p *Player, delta int) error {
	pos, err := b.Position(p)
	if err != nil {
		return err
	}
	step, remaining := 1, delta
	if delta < 0 {
		step, remaining = -1, -delta
	}
	for remaining > 0 {
		pos += step
		if !b.occupied(pos, p) {
			remaining--
		}
	}
	b.positions[p] = pos
	return nil
}

// Ranking lists the players in flight, leader first.
func (b *Board) Ranking() []*Player {
	out := make([]*Player, 0, len(b.positions))
	for p := range b.positions {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		return b.positions[out[i]] > b.positions[out[j]]
	})
	return out
}

// Leader returns the first player, or nil when nobody is flying.
func (b *Board) Leader() *Player {
	ranking := b.Ranking()
	if len(ranking) == 0 {
		return nil
	}
	return ranking[0]
}

// Doubled lists the players lapped by the leader.
func (b *Board) Doubled() []*Player {
	leader := b.Leader()
	if leader == nil {
		return nil
	}
	var out []*Player
	for _, p := range b.Ranking() {
		if b.positions[leader]-b.positions[p] > b.track.Length {
			out = append(out, p)
		}
	}
	return out
}

// LandEarly takes p out of the race.
func (b *Board) LandEarly(p *Player, voluntary bool) error {
	if _, ok := b.positions[p]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownPlayer, p)
	}
	delete(b.positions, p)
	delete(b.marked, p)
	p.EarlyLanded = true
	b.out = append(b.out, Exit{Player: p, Voluntary: voluntary})
	return nil
}

// MarkForLanding flags a player who must land at the next check.
func (b *Board) MarkForLanding(p *Player) {
	if b.InFlight(p) {
		b.marked[p] = true
	}
}

// CheckEliminations lands every player who was lapped, has no humans left or
// was marked for landing. Exits are returned in ranking order.
func (b *Board) CheckEliminations() []Exit {
	doubled := make(map[*Player]bool)
	for _, p := range b.Doubled() {
		doubled[p] = true
	}
	var exits []Exit
	for _, p := range b.Ranking() {
		if doubled[p] || b.marked[p] || p.Ship.HumanCount() == 0 {
			_ = b.LandEarly(p, false)
			exits = append(exits, Exit{Player: p, Voluntary: false})
		}
	}
	return exits
}

// Out lists the players who left the race, in order of exit.
func (b *Board) Out() []Exit {
	return b.out
}

// Players lists everyone: the ranking followed by the players who left.
func (b *Board) Players() []*Player {
	out := b.Ranking()
	for _, e := range b.out {
		out = append(out, e.Player)
	}
	return out
}

// Standing is a read-only entry of the ranking.
type Standing struct {
	Nickname string `json:"nickname"`
	Position int    `json:"position"`
	Credits  int    `json:"credits"`
}

// Standings projects the ranking for notifications.
func (b *Board) Standings() []Standing {
	var out []Standing
	for _, p := range b.Ranking() {
		out = append(out, Standing{Nickname: p.Nickname, Position: b.positions[p], Credits: p.Credits})
	}
	return out
}
