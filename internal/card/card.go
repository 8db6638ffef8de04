/*
Package card
File: card.go
Description:
    The adventure card contract and the plumbing shared by every archetype.

    Each archetype is its own type holding only its parameters and an
    explicit transition table (State -> handler). Play looks up the handler
    for the current state; a missing entry is an UnknownStateError.

    Cards never talk to the game model directly: they receive a Table at
    Start, which exposes the flying board, the player queue, the dice and a
    way to announce dangerous objects.
*/

package card

import (
	"go.uber.org/zap"

	"github.com/everforgeworks/galaxy-haulers/internal/flight"
	"github.com/everforgeworks/galaxy-haulers/internal/ship"
)

// Table is the view of the game model a card plays against.
type Table interface {
	Flight() *flight.Board
	Queue() *Queue
	RollDice() (int, int)
	Attack(obj ship.DangerousObject)
	Logger() *zap.Logger
}

// Card is one adventure card.
type Card interface {
	Kind() Kind
	Level() int
	FirstState() State
	State() State
	// Start binds the card to a table and enters the first state.
	Start(t Table)
	// Play applies the current player's choices to the current state.
	Play(ch Choices) error
	Client() ClientCard
}

type transition func(Choices) error

type base struct {
	kind        Kind
	level       int
	state       State
	table       Table
	transitions map[State]transition
}

func (b *base) Kind() Kind   { return b.kind }
func (b *base) Level() int   { return b.level }
func (b *base) State() State { return b.state }

// Play dispatches to the handler registered for the current state.
func (b *base) Play(ch Choices) error {
	fn, ok := b.transitions[b.state]
	if !ok {
		return &UnknownStateError{Card: b.kind, State: b.state}
	}
	return fn(ch)
}

// begin binds the table, points the queue at the ranking and enters first.
// A card drawn with nobody flying ends immediately.
func (b *base) begin(t Table, first State) {
	b.table = t
	t.Queue().Reset(t.Flight().Ranking())
	b.state = first
	if t.Queue().Done() {
		b.state = StateEndOfCard
	}
}

func (b *base) end() error {
	b.state = StateEndOfCard
	b.log().Debug("card finished", zap.Stringer("card", b.kind))
	return nil
}

func (b *base) queue() *Queue           { return b.table.Queue() }
func (b *base) current() *flight.Player { return b.table.Queue().Current() }
func (b *base) flight() *flight.Board   { return b.table.Flight() }

func (b *base) log() *zap.Logger {
	if b.table == nil || b.table.Logger() == nil {
		return zap.NewNop()
	}
	return b.table.Logger()
}

// nextOrEnd moves to the next player in state, or ends the card.
func (b *base) nextOrEnd(state State) error {
	if b.queue().Next() {
		b.state = state
		return nil
	}
	return b.end()
}

// moveBack loses flight days; players who already left are ignored.
func (b *base) moveBack(p *flight.Player, days int) {
	if days == 0 || !b.flight().InFlight(p) {
		return
	}
	if err := b.flight().Move(p, -days); err != nil {
		b.log().Warn("move back failed", zap.String("player", p.Nickname), zap.Error(err))
	}
}

// firePower activates the chosen double cannons and returns the ship's firepower.
func firePower(p *flight.Player, ch Choices) float64 {
	doubles, _ := ch.DoubleCannons()
	batteries, _ := ch.Batteries()
	active := p.Ship.ActivateDoubles(ship.KindDoubleCannon, doubles, batteries)
	return p.Ship.FirePower(active)
}

// enginePower activates the chosen double engines and returns the engine power.
func enginePower(p *flight.Player, ch Choices) int {
	doubles, _ := ch.DoubleEngines()
	batteries, _ := ch.Batteries()
	active := p.Ship.ActivateDoubles(ship.KindDoubleEngine, doubles, batteries)
	return p.Ship.EnginePower(active)
}

// loadReward puts each reward cube into the storage chosen for it. Cubes
// without a chosen storage, or whose storage cannot take them, are dropped.
func loadReward(p *flight.Player, cubes []ship.CubeColor, ch Choices) int {
	storages, _ := ch.Storages()
	loaded := 0
	for i, cube := range cubes {
		if i >= len(storages) || storages[i].IsInvalid() {
			continue
		}
		if p.Ship.LoadCube(storages[i], cube) {
			loaded++
		}
	}
	return loaded
}

// removeCrew takes n crew members, preferring the cabins the player chose.
func removeCrew(p *flight.Player, n int, ch Choices) int {
	cabins, _ := ch.Cabins()
	return p.Ship.RemoveCrew(cabins, n)
}

// keepPart resolves a split ship with the player's choice, or the default part.
func keepPart(p *flight.Player, ch Choices) {
	if len(p.Ship.Parts()) == 0 {
		return
	}
	if c, ok := ch.ShipPart(); ok && p.Ship.KeepPart(c) == nil {
		return
	}
	p.Ship.KeepDefaultPart()
}
