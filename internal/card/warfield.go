/*
Package card
File: warfield.go
Description:
    WarField: a sequence of lines. Each line compares every ship on one
    criterion and punishes the weakest. Ties go against the player
    furthest ahead.
*/

package card

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/everforgeworks/galaxy-haulers/internal/flight"
	"github.com/everforgeworks/galaxy-haulers/internal/ship"
)

// Criterion selects the weakest ship of a war line.
type Criterion int

const (
	CriterionCrew Criterion = iota
	CriterionEngines
	CriterionFirePower
)

var criterionNames = map[Criterion]string{
	CriterionCrew:      "crew",
	CriterionEngines:   "engines",
	CriterionFirePower: "fire_power",
}

func (c Criterion) String() string { return criterionNames[c] }

func ParseCriterion(s string) (Criterion, error) {
	for c, name := range criterionNames {
		if name == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown war criterion %q", s)
}

// Penalty is what the weakest ship suffers.
type Penalty int

const (
	PenaltyDays Penalty = iota
	PenaltyCrew
	PenaltyCubes
	PenaltyShots
)

var penaltyNames = map[Penalty]string{
	PenaltyDays:  "days",
	PenaltyCrew:  "crew",
	PenaltyCubes: "cubes",
	PenaltyShots: "shots",
}

func (p Penalty) String() string { return penaltyNames[p] }

func ParsePenalty(s string) (Penalty, error) {
	for p, name := range penaltyNames {
		if name == s {
			return p, nil
		}
	}
	return 0, fmt.Errorf("unknown war penalty %q", s)
}

// WarLine is one row of a war field card. Amount counts days, crew members
// or cubes depending on the penalty; Shots is used by PenaltyShots.
type WarLine struct {
	Criterion Criterion
	Penalty   Penalty
	Amount    int
	Shots     []ship.DangerousObject
}

type WarField struct {
	base
	Lines   []WarLine
	line    int
	players []*flight.Player
	scores  map[*flight.Player]float64
	shots   barrage
}

func NewWarField(level int, lines []WarLine) *WarField {
	c := &WarField{base: base{kind: KindWarField, level: level}, Lines: lines}
	c.shots.card = &c.base
	c.transitions = map[State]transition{
		StateChooseEngines:     c.chooseEngines,
		StateChooseCannons:     c.chooseCannons,
		StateRemoveCrewMembers: c.removeCrewMembers,
		StateHandleCubesMalus:  c.handleCubesMalus,
	}
	c.shots.register(c.transitions)
	return c
}

// FirstState is the first state that waits for a player. Crew lines are
// measured without asking anybody.
func (c *WarField) FirstState() State {
	for _, l := range c.Lines {
		switch l.Criterion {
		case CriterionEngines:
			return StateChooseEngines
		case CriterionFirePower:
			return StateChooseCannons
		}
		switch {
		case l.Penalty == PenaltyCrew:
			return StateRemoveCrewMembers
		case l.Penalty == PenaltyCubes:
			return StateHandleCubesMalus
		case l.Penalty == PenaltyShots && len(l.Shots) > 0:
			return StateThrowDices
		}
	}
	return StateEndOfCard
}

func (c *WarField) Start(t Table) {
	c.begin(t, StateNotStarted)
	if c.state == StateEndOfCard {
		return
	}
	c.line = -1
	_ = c.nextLine()
}

func (c *WarField) nextLine() error {
	c.line++
	c.players = c.flight().Ranking()
	if c.line >= len(c.Lines) || len(c.players) == 0 {
		return c.end()
	}
	c.scores = make(map[*flight.Player]float64, len(c.players))
	switch c.Lines[c.line].Criterion {
	case CriterionEngines:
		c.queue().Reset(c.players)
		c.state = StateChooseEngines
		return nil
	case CriterionFirePower:
		c.queue().Reset(c.players)
		c.state = StateChooseCannons
		return nil
	}
	for _, p := range c.players {
		c.scores[p] = float64(p.Ship.CrewCount())
	}
	return c.penalize()
}

func (c *WarField) chooseEngines(ch Choices) error {
	p := c.current()
	c.scores[p] = float64(enginePower(p, ch))
	if c.queue().Next() {
		return nil
	}
	return c.penalize()
}

func (c *WarField) chooseCannons(ch Choices) error {
	p := c.current()
	c.scores[p] = firePower(p, ch)
	if c.queue().Next() {
		return nil
	}
	return c.penalize()
}

// weakest scans in ranking order so that ties stay on the player ahead.
func (c *WarField) weakest() *flight.Player {
	var worst *flight.Player
	for _, p := range c.players {
		if worst == nil || c.scores[p] < c.scores[worst] {
			worst = p
		}
	}
	return worst
}

func (c *WarField) penalize() error {
	l := c.Lines[c.line]
	worst := c.weakest()
	c.log().Debug("war line lost",
		zap.Int("line", c.line),
		zap.Stringer("criterion", l.Criterion),
		zap.String("player", worst.Nickname))
	switch l.Penalty {
	case PenaltyCrew:
		c.queue().Reset([]*flight.Player{worst})
		c.state = StateRemoveCrewMembers
		return nil
	case PenaltyCubes:
		c.queue().Reset([]*flight.Player{worst})
		c.state = StateHandleCubesMalus
		return nil
	case PenaltyShots:
		return c.shots.start(l.Shots, []*flight.Player{worst}, c.nextLine)
	}
	c.moveBack(worst, l.Amount)
	return c.nextLine()
}

func (c *WarField) removeCrewMembers(ch Choices) error {
	removeCrew(c.current(), c.Lines[c.line].Amount, ch)
	return c.nextLine()
}

func (c *WarField) handleCubesMalus(Choices) error {
	c.current().Ship.RemoveMostValuableCubes(c.Lines[c.line].Amount)
	return c.nextLine()
}

func (c *WarField) Client() ClientCard {
	cc := c.client()
	for _, l := range c.Lines {
		cc.Lines = append(cc.Lines, ClientLine{
			Criterion: l.Criterion.String(),
			Penalty:   l.Penalty.String(),
			Amount:    l.Amount,
			Shots:     objects(l.Shots),
		})
	}
	if c.line >= 0 && c.line < len(c.Lines) {
		cc.CurrentLine = c.line
	}
	cc.Attack = c.shots.describe(c.state)
	return cc
}
