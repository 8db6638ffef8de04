/*
Package card
File: planets.go
Description:
    Planets: players, in ranking order, may land on one free planet each and
    load its cubes. When everyone had a chance (or every planet is taken)
    the landed players lose DaysLost days, starting from the last one.
*/

package card

import (
	"go.uber.org/zap"

	"github.com/everforgeworks/galaxy-haulers/internal/flight"
	"github.com/everforgeworks/galaxy-haulers/internal/ship"
)

type Planets struct {
	base
	Planets  [][]ship.CubeColor
	DaysLost int
	takenBy  []*flight.Player
	chosen   int
}

func NewPlanets(level int, planets [][]ship.CubeColor, daysLost int) *Planets {
	c := &Planets{
		base:     base{kind: KindPlanets, level: level},
		Planets:  planets,
		DaysLost: daysLost,
	}
	c.transitions = map[State]transition{
		StateVisitLocation:     c.visitLocation,
		StateChoosePlanet:      c.choosePlanet,
		StateHandleCubesReward: c.handleCubesReward,
	}
	return c
}

func (c *Planets) FirstState() State { return StateVisitLocation }

func (c *Planets) Start(t Table) {
	c.takenBy = make([]*flight.Player, len(c.Planets))
	c.chosen = -1
	c.begin(t, StateVisitLocation)
}

// Available reports whether planet i exists and nobody landed on it.
func (c *Planets) Available(i int) bool {
	return i >= 0 && i < len(c.Planets) && (c.takenBy == nil || c.takenBy[i] == nil)
}

func (c *Planets) visitLocation(ch Choices) error {
	if !ch.Visiting() {
		return c.advance()
	}
	c.state = StateChoosePlanet
	return nil
}

func (c *Planets) choosePlanet(ch Choices) error {
	i, ok := ch.Planet()
	if !ok || !c.Available(i) {
		c.log().Debug("planet not available, player stays in flight",
			zap.String("player", c.current().Nickname), zap.Int("planet", i))
		return c.advance()
	}
	c.takenBy[i] = c.current()
	c.chosen = i
	c.state = StateHandleCubesReward
	return nil
}

func (c *Planets) handleCubesReward(ch Choices) error {
	loadReward(c.current(), c.Planets[c.chosen], ch)
	c.chosen = -1
	return c.advance()
}

func (c *Planets) advance() error {
	free := false
	for i := range c.Planets {
		free = free || c.Available(i)
	}
	if free && c.queue().Next() {
		c.state = StateVisitLocation
		return nil
	}
	return c.finish()
}

func (c *Planets) finish() error {
	landed := make(map[*flight.Player]bool)
	for _, p := range c.takenBy {
		if p != nil {
			landed[p] = true
		}
	}
	ranking := c.flight().Ranking()
	for i := len(ranking) - 1; i >= 0; i-- {
		if landed[ranking[i]] {
			c.moveBack(ranking[i], c.DaysLost)
		}
	}
	return c.end()
}

func (c *Planets) Client() ClientCard {
	cc := c.client()
	cc.DaysLost = c.DaysLost
	for i, cubes := range c.Planets {
		cp := ClientPlanet{Cubes: cubeNames(cubes)}
		if c.takenBy != nil && c.takenBy[i] != nil {
			cp.TakenBy = c.takenBy[i].Nickname
		}
		cc.Planets = append(cc.Planets, cp)
	}
	return cc
}
