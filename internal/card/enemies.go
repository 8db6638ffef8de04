/*
Package card
File: enemies.go
Description:
    Enemy cards: Pirates, Smugglers and SlaveTraders. Players face the enemy
    one at a time in ranking order, comparing firepower with FirePower:
      - stronger: the enemy is defeated, the player may take the reward
        (paying DaysLost flight days) and the card ends.
      - equal: nothing happens, the next player faces the enemy.
      - weaker: the player suffers the enemy's malus and the next player
        faces it.
    Pirates shoot every defeated player once the fight is over.
*/

package card

import (
	"go.uber.org/zap"

	"github.com/everforgeworks/galaxy-haulers/internal/flight"
	"github.com/everforgeworks/galaxy-haulers/internal/ship"
)

// Enemy holds the parameters of an enemy card. Each archetype reads the
// fields it needs.
type Enemy struct {
	FirePower int
	DaysLost  int
	Credits   int
	Cubes     []ship.CubeColor
	CubesLost int
	CrewLost  int
	Shots     []ship.DangerousObject
}

type outcome int

const (
	lost outcome = iota - 1
	tied
	won
)

func (o outcome) String() string {
	switch o {
	case won:
		return "won"
	case lost:
		return "lost"
	}
	return "tied"
}

func (e Enemy) fight(p *flight.Player, ch Choices) outcome {
	power := firePower(p, ch)
	switch {
	case power > float64(e.FirePower):
		return won
	case power < float64(e.FirePower):
		return lost
	}
	return tied
}

func (b *base) logFight(p *flight.Player, o outcome) {
	b.log().Debug("enemy fought",
		zap.Stringer("card", b.kind),
		zap.String("player", p.Nickname),
		zap.Stringer("outcome", o))
}

// Pirates steal nothing but shoot every player who lost to them.
type Pirates struct {
	base
	Enemy
	shots    barrage
	defeated []*flight.Player
}

func NewPirates(level int, e Enemy) *Pirates {
	c := &Pirates{base: base{kind: KindPirates, level: level}, Enemy: e}
	c.shots.card = &c.base
	c.transitions = map[State]transition{
		StateChooseCannons:   c.chooseCannons,
		StateAcceptTheReward: c.acceptTheReward,
	}
	c.shots.register(c.transitions)
	return c
}

func (c *Pirates) FirstState() State { return StateChooseCannons }

func (c *Pirates) Start(t Table) {
	c.defeated = nil
	c.begin(t, StateChooseCannons)
}

func (c *Pirates) chooseCannons(ch Choices) error {
	p := c.current()
	o := c.fight(p, ch)
	c.logFight(p, o)
	switch o {
	case won:
		c.state = StateAcceptTheReward
		return nil
	case lost:
		c.defeated = append(c.defeated, p)
	}
	if c.queue().Next() {
		return nil
	}
	return c.fire()
}

func (c *Pirates) acceptTheReward(ch Choices) error {
	if ch.Accepted() {
		p := c.current()
		p.Credits += c.Credits
		c.moveBack(p, c.DaysLost)
	}
	return c.fire()
}

func (c *Pirates) fire() error {
	return c.shots.start(c.Shots, c.defeated, c.end)
}

func (c *Pirates) Client() ClientCard {
	cc := c.client()
	c.Enemy.describe(&cc)
	cc.Attack = c.shots.describe(c.state)
	return cc
}

// Smugglers trade cubes: winners may load them, losers lose their most valuable ones.
type Smugglers struct {
	base
	Enemy
}

func NewSmugglers(level int, e Enemy) *Smugglers {
	c := &Smugglers{base: base{kind: KindSmugglers, level: level}, Enemy: e}
	c.transitions = map[State]transition{
		StateChooseCannons:     c.chooseCannons,
		StateAcceptTheReward:   c.acceptTheReward,
		StateHandleCubesReward: c.handleCubesReward,
		StateHandleCubesMalus:  c.handleCubesMalus,
	}
	return c
}

func (c *Smugglers) FirstState() State { return StateChooseCannons }

func (c *Smugglers) Start(t Table) {
	c.begin(t, StateChooseCannons)
}

func (c *Smugglers) chooseCannons(ch Choices) error {
	p := c.current()
	o := c.fight(p, ch)
	c.logFight(p, o)
	switch o {
	case won:
		c.state = StateAcceptTheReward
		return nil
	case lost:
		c.state = StateHandleCubesMalus
		return nil
	}
	return c.nextOrEnd(StateChooseCannons)
}

func (c *Smugglers) acceptTheReward(ch Choices) error {
	if !ch.Accepted() {
		return c.end()
	}
	c.state = StateHandleCubesReward
	return nil
}

func (c *Smugglers) handleCubesReward(ch Choices) error {
	p := c.current()
	loadReward(p, c.Cubes, ch)
	c.moveBack(p, c.DaysLost)
	return c.end()
}

func (c *Smugglers) handleCubesMalus(Choices) error {
	c.current().Ship.RemoveMostValuableCubes(c.CubesLost)
	return c.nextOrEnd(StateChooseCannons)
}

func (c *Smugglers) Client() ClientCard {
	cc := c.client()
	c.Enemy.describe(&cc)
	return cc
}

// SlaveTraders pay credits when beaten and take crew members otherwise.
type SlaveTraders struct {
	base
	Enemy
}

func NewSlaveTraders(level int, e Enemy) *SlaveTraders {
	c := &SlaveTraders{base: base{kind: KindSlaveTraders, level: level}, Enemy: e}
	c.transitions = map[State]transition{
		StateChooseCannons:     c.chooseCannons,
		StateAcceptTheReward:   c.acceptTheReward,
		StateRemoveCrewMembers: c.removeCrewMembers,
	}
	return c
}

func (c *SlaveTraders) FirstState() State { return StateChooseCannons }

func (c *SlaveTraders) Start(t Table) {
	c.begin(t, StateChooseCannons)
}

func (c *SlaveTraders) chooseCannons(ch Choices) error {
	p := c.current()
	o := c.fight(p, ch)
	c.logFight(p, o)
	switch o {
	case won:
		c.state = StateAcceptTheReward
		return nil
	case lost:
		c.state = StateRemoveCrewMembers
		return nil
	}
	return c.nextOrEnd(StateChooseCannons)
}

func (c *SlaveTraders) acceptTheReward(ch Choices) error {
	if ch.Accepted() {
		p := c.current()
		p.Credits += c.Credits
		c.moveBack(p, c.DaysLost)
	}
	return c.end()
}

func (c *SlaveTraders) removeCrewMembers(ch Choices) error {
	removeCrew(c.current(), c.CrewLost, ch)
	return c.nextOrEnd(StateChooseCannons)
}

func (c *SlaveTraders) Client() ClientCard {
	cc := c.client()
	c.Enemy.describe(&cc)
	return cc
}
