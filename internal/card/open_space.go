/*
Package card
File: open_space.go
Description:
    Cards that touch every ship in turn without any enemy: Stardust,
    Epidemic and FreeSpace.
*/

package card

import (
	"slices"

	"go.uber.org/zap"
)

// Stardust pulls every ship back one day per exposed connector, starting
// from the last player.
type Stardust struct {
	base
}

func NewStardust(level int) *Stardust {
	c := &Stardust{base: base{kind: KindStardust, level: level}}
	c.transitions = map[State]transition{StateStardust: c.stardust}
	return c
}

func (c *Stardust) FirstState() State { return StateStardust }

func (c *Stardust) Start(t Table) {
	c.begin(t, StateStardust)
	ranking := t.Flight().Ranking()
	slices.Reverse(ranking)
	c.queue().Reset(ranking)
}

func (c *Stardust) stardust(Choices) error {
	p := c.current()
	c.moveBack(p, p.Ship.Exposed())
	return c.nextOrEnd(StateStardust)
}

func (c *Stardust) Client() ClientCard { return c.client() }

// Epidemic kills one crew member in every cabin joined to another crewed cabin.
type Epidemic struct {
	base
}

func NewEpidemic(level int) *Epidemic {
	c := &Epidemic{base: base{kind: KindEpidemic, level: level}}
	c.transitions = map[State]transition{StateEpidemic: c.epidemic}
	return c
}

func (c *Epidemic) FirstState() State { return StateEpidemic }

func (c *Epidemic) Start(t Table) {
	c.begin(t, StateEpidemic)
}

func (c *Epidemic) epidemic(Choices) error {
	p := c.current()
	dead := p.Ship.Epidemic()
	c.log().Debug("epidemic", zap.String("player", p.Nickname), zap.Int("dead", dead))
	return c.nextOrEnd(StateEpidemic)
}

func (c *Epidemic) Client() ClientCard { return c.client() }

// FreeSpace moves every ship forward by its engine power. A ship without
// engine power cannot fly on and must land.
type FreeSpace struct {
	base
}

func NewFreeSpace(level int) *FreeSpace {
	c := &FreeSpace{base: base{kind: KindFreeSpace, level: level}}
	c.transitions = map[State]transition{StateChooseEngines: c.chooseEngines}
	return c
}

func (c *FreeSpace) FirstState() State { return StateChooseEngines }

func (c *FreeSpace) Start(t Table) {
	c.begin(t, StateChooseEngines)
}

func (c *FreeSpace) chooseEngines(ch Choices) error {
	p := c.current()
	power := enginePower(p, ch)
	if power == 0 {
		c.flight().MarkForLanding(p)
		c.log().Info("no engine power in open space", zap.String("player", p.Nickname))
	} else if err := c.flight().Move(p, power); err != nil {
		return err
	}
	return c.nextOrEnd(StateChooseEngines)
}

func (c *FreeSpace) Client() ClientCard { return c.client() }
