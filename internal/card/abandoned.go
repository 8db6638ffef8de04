/*
Package card
File: abandoned.go
Description:
    Derelicts: the first player, in ranking order, who chooses to visit and
    has enough crew collects the reward and pays DaysLost flight days.
*/

package card

import "github.com/everforgeworks/galaxy-haulers/internal/ship"

// AbandonedShip buys a crew sacrifice for credits.
type AbandonedShip struct {
	base
	CrewLost int
	Credits  int
	DaysLost int
}

func NewAbandonedShip(level, crewLost, credits, daysLost int) *AbandonedShip {
	c := &AbandonedShip{
		base:     base{kind: KindAbandonedShip, level: level},
		CrewLost: crewLost,
		Credits:  credits,
		DaysLost: daysLost,
	}
	c.transitions = map[State]transition{
		StateVisitLocation:     c.visitLocation,
		StateRemoveCrewMembers: c.removeCrewMembers,
	}
	return c
}

func (c *AbandonedShip) FirstState() State { return StateVisitLocation }

func (c *AbandonedShip) Start(t Table) {
	c.begin(t, StateVisitLocation)
}

func (c *AbandonedShip) visitLocation(ch Choices) error {
	if ch.Visiting() && c.current().Ship.CrewCount() >= c.CrewLost {
		c.state = StateRemoveCrewMembers
		return nil
	}
	return c.nextOrEnd(StateVisitLocation)
}

func (c *AbandonedShip) removeCrewMembers(ch Choices) error {
	p := c.current()
	removeCrew(p, c.CrewLost, ch)
	p.Credits += c.Credits
	c.moveBack(p, c.DaysLost)
	return c.end()
}

func (c *AbandonedShip) Client() ClientCard {
	cc := c.client()
	cc.CrewLost = c.CrewLost
	cc.Credits = c.Credits
	cc.DaysLost = c.DaysLost
	return cc
}

// AbandonedStation hands out cubes to a ship with a large enough crew. No
// crew member is lost.
type AbandonedStation struct {
	base
	RequiredCrew int
	Cubes        []ship.CubeColor
	DaysLost     int
}

func NewAbandonedStation(level, requiredCrew int, cubes []ship.CubeColor, daysLost int) *AbandonedStation {
	c := &AbandonedStation{
		base:         base{kind: KindAbandonedStation, level: level},
		RequiredCrew: requiredCrew,
		Cubes:        cubes,
		DaysLost:     daysLost,
	}
	c.transitions = map[State]transition{
		StateVisitLocation:     c.visitLocation,
		StateHandleCubesReward: c.handleCubesReward,
	}
	return c
}

func (c *AbandonedStation) FirstState() State { return StateVisitLocation }

func (c *AbandonedStation) Start(t Table) {
	c.begin(t, StateVisitLocation)
}

func (c *AbandonedStation) visitLocation(ch Choices) error {
	if ch.Visiting() && c.current().Ship.CrewCount() >= c.RequiredCrew {
		c.state = StateHandleCubesReward
		return nil
	}
	return c.nextOrEnd(StateVisitLocation)
}

func (c *AbandonedStation) handleCubesReward(ch Choices) error {
	p := c.current()
	loadReward(p, c.Cubes, ch)
	c.moveBack(p, c.DaysLost)
	return c.end()
}

func (c *AbandonedStation) Client() ClientCard {
	cc := c.client()
	cc.CrewRequired = c.RequiredCrew
	cc.Cubes = cubeNames(c.Cubes)
	cc.DaysLost = c.DaysLost
	return cc
}
