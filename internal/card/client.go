/*
Package card
File: client.go
Description:
    ClientCard: the read-only projection of a card pushed to clients.
*/

package card

import "github.com/everforgeworks/galaxy-haulers/internal/ship"

type ClientObject struct {
	Kind string `json:"kind"`
	From string `json:"from"`
	Line int    `json:"line,omitempty"`
}

type ClientPlanet struct {
	Cubes   []string `json:"cubes"`
	TakenBy string   `json:"taken_by,omitempty"`
}

type ClientLine struct {
	Criterion string         `json:"criterion"`
	Penalty   string         `json:"penalty"`
	Amount    int            `json:"amount,omitempty"`
	Shots     []ClientObject `json:"shots,omitempty"`
}

// ClientCard is what clients know about a card. Only the fields relevant to
// the archetype are filled in.
type ClientCard struct {
	Kind         string         `json:"kind"`
	Level        int            `json:"level"`
	State        string         `json:"state"`
	Player       string         `json:"player,omitempty"`
	FirePower    int            `json:"fire_power,omitempty"`
	CrewRequired int            `json:"crew_required,omitempty"`
	CrewLost     int            `json:"crew_lost,omitempty"`
	Credits      int            `json:"credits,omitempty"`
	DaysLost     int            `json:"days_lost,omitempty"`
	Cubes        []string       `json:"cubes,omitempty"`
	CubesLost    int            `json:"cubes_lost,omitempty"`
	Objects      []ClientObject `json:"objects,omitempty"`
	Attack       *ClientObject  `json:"attack,omitempty"`
	Planets      []ClientPlanet `json:"planets,omitempty"`
	Lines        []ClientLine   `json:"lines,omitempty"`
	CurrentLine  int            `json:"current_line,omitempty"`
}

func (b *base) client() ClientCard {
	cc := ClientCard{Kind: b.kind.String(), Level: b.level, State: b.state.String()}
	if b.table != nil && b.state != StateEndOfCard {
		if p := b.queue().Current(); p != nil {
			cc.Player = p.Nickname
		}
	}
	return cc
}

func (e Enemy) describe(cc *ClientCard) {
	cc.FirePower = e.FirePower
	cc.DaysLost = e.DaysLost
	cc.Credits = e.Credits
	cc.Cubes = cubeNames(e.Cubes)
	cc.CubesLost = e.CubesLost
	cc.CrewLost = e.CrewLost
	cc.Objects = objects(e.Shots)
}

// describe projects the object in flight while an attack is being resolved.
func (br *barrage) describe(s State) *ClientObject {
	if s != StateDangerousAttack && s != StateCheckShipboardAfterAttack {
		return nil
	}
	o := object(br.current)
	return &o
}

func object(obj ship.DangerousObject) ClientObject {
	return ClientObject{Kind: obj.Kind.String(), From: obj.From.String(), Line: obj.Line}
}

func objects(objs []ship.DangerousObject) []ClientObject {
	var out []ClientObject
	for _, obj := range objs {
		o := object(obj)
		o.Line = 0
		out = append(out, o)
	}
	return out
}

func cubeNames(cubes []ship.CubeColor) []string {
	var out []string
	for _, c := range cubes {
		out = append(out, c.String())
	}
	return out
}
