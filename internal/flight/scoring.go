/*
Package flight
File: scoring.go
Description:
    End-of-flight rewards:
    1. Position bonus by final rank (players still flying only).
    2. Cargo sale: every cube sells for its value, early-landed players get
       half (the discarded half is rounded down).
    3. Prettiest ship: every flying player tied for the fewest exposed
       connectors receives the bonus.
    4. One credit lost per component lost during the game.
*/

package flight

import "sort"

// Score is the breakdown of a player's final credits.
type Score struct {
	Nickname       string `json:"nickname"`
	PositionBonus  int    `json:"position_bonus"`
	CargoValue     int    `json:"cargo_value"`
	PrettiestBonus int    `json:"prettiest_bonus"`
	LostPenalty    int    `json:"lost_penalty"`
	Credits        int    `json:"credits"`
	EarlyLanded    bool   `json:"early_landed"`
}

// PrettiestShips returns every player tied for the minimum number of exposed
// connectors. Early-landed players do not compete.
func (b *Board) PrettiestShips() []*Player {
	var out []*Player
	best := -1
	for _, p := range b.Players() {
		if p.EarlyLanded {
			continue
		}
		exposed := p.Ship.Exposed()
		switch {
		case best < 0 || exposed < best:
			best, out = exposed, []*Player{p}
		case exposed == best:
			out = append(out, p)
		}
	}
	return out
}

// SaleValue is what a player earns for the cargo.
func SaleValue(p *Player) int {
	value := p.Ship.CubeValue()
	if p.EarlyLanded {
		return value - value/2
	}
	return value
}

// CalculatePlayersCredits adds the end-of-flight rewards to every player and
// returns the final scores, richest first. It only ever applies once.
func (b *Board) CalculatePlayersCredits() []Score {
	players := b.Players()
	scores := make(map[*Player]*Score, len(players))
	for _, p := range players {
		scores[p] = &Score{Nickname: p.Nickname, EarlyLanded: p.EarlyLanded}
	}
	if !b.scored {
		for i, p := range b.Ranking() {
			if i < len(b.track.PositionBonus) {
				scores[p].PositionBonus = b.track.PositionBonus[i]
			}
		}
		for _, p := range b.PrettiestShips() {
			scores[p].PrettiestBonus = b.track.PrettiestBonus
		}
		for _, p := range players {
			s := scores[p]
			s.CargoValue = SaleValue(p)
			s.LostPenalty = p.Ship.Lost()
			p.Credits += s.PositionBonus + s.CargoValue + s.PrettiestBonus - s.LostPenalty
		}
		b.scored = true
	}
	out := make([]Score, 0, len(players))
	for _, p := range players {
		s := scores[p]
		s.Credits = p.Credits
		out = append(out, *s)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Credits > out[j].Credits })
	return out
}
