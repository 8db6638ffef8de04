/*
Package card
File: meteorites.go
Description:
    MeteoriteStorm: every meteorite is rolled once and hits every ship in
    flight on the same line.
*/

package card

import "github.com/everforgeworks/galaxy-haulers/internal/ship"

type MeteoriteStorm struct {
	base
	Meteorites []ship.DangerousObject
	storm      barrage
}

func NewMeteoriteStorm(level int, meteorites []ship.DangerousObject) *MeteoriteStorm {
	c := &MeteoriteStorm{base: base{kind: KindMeteoriteStorm, level: level}, Meteorites: meteorites}
	c.storm.card = &c.base
	c.transitions = map[State]transition{}
	c.storm.register(c.transitions)
	return c
}

func (c *MeteoriteStorm) FirstState() State { return StateThrowDices }

func (c *MeteoriteStorm) Start(t Table) {
	c.begin(t, StateThrowDices)
	if c.state == StateEndOfCard {
		return
	}
	_ = c.storm.start(c.Meteorites, t.Flight().Ranking(), c.end)
}

func (c *MeteoriteStorm) Client() ClientCard {
	cc := c.client()
	cc.Objects = objects(c.Meteorites)
	cc.Attack = c.storm.describe(c.state)
	return cc
}
