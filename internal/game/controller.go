/*
Package game
File: controller.go
Description:
    The Controller serialises every intent of a match behind one lock and
    checks that the intent is allowed in the current phase. Intents that
    arrive out of phase or out of turn are dropped and logged; malformed
    ones (unknown player, occupied cell) return an error.
*/

package game

import (
	"sync"

	"go.uber.org/zap"

	"github.com/everforgeworks/galaxy-haulers/internal/card"
	"github.com/everforgeworks/galaxy-haulers/internal/catalog"
	"github.com/everforgeworks/galaxy-haulers/internal/flight"
	"github.com/everforgeworks/galaxy-haulers/internal/ship"
)

type Controller struct {
	mu sync.Mutex
	m  *Model
}

// NewController prepares a match. Nothing happens until Start.
func NewController(id string, cat *catalog.Catalog, opts Options) (*Controller, error) {
	m, err := newModel(id, cat, opts)
	if err != nil {
		return nil, err
	}
	c := &Controller{m: m}
	m.hourglass = NewHourglass(m.rules.Hourglass, c.hourglassExpired)
	return c, nil
}

func (c *Controller) hourglassExpired(gen uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m.hourglass.Expire(gen) {
		c.m.hourglassExpired()
	}
}

func (c *Controller) ID() string { return c.m.id }

// Start opens the building phase and turns the hourglass.
func (c *Controller) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.m.state != StateWaiting {
		return
	}
	c.m.start()
}

// State returns the current phase.
func (c *Controller) State() GameState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m.state
}

// Snapshot returns a consistent copy of the whole match.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.m.snapshot()
}

// Players lists the nicknames in joining order.
func (c *Controller) Players() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.m.players))
	for i, p := range c.m.players {
		out[i] = p.Nickname
	}
	return out
}

// in runs fn for nick when the match is in one of the given states.
func (c *Controller) in(nick, intent string, fn func(p *flight.Player) error, states ...GameState) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := c.m.player(nick)
	if err != nil {
		return err
	}
	for _, s := range states {
		if c.m.state == s {
			return fn(p)
		}
	}
	c.m.ignored(nick, intent)
	return nil
}

// building gates the intents of players still at work on their ship.
func (c *Controller) building(nick, intent string, fn func(p *flight.Player) error) error {
	return c.in(nick, intent, func(p *flight.Player) error {
		if c.m.finished[p] {
			c.m.ignored(nick, intent)
			return nil
		}
		return fn(p)
	}, StateBuildShipboard)
}

// --- building ---

func (c *Controller) PickHidden(nick string) error {
	return c.building(nick, "pick hidden", c.m.pickHidden)
}

func (c *Controller) PickVisible(nick string, id int) error {
	return c.building(nick, "pick visible", func(p *flight.Player) error {
		return c.m.pickVisible(p, id)
	})
}

func (c *Controller) Release(nick string) error {
	return c.building(nick, "release", c.m.release)
}

func (c *Controller) Book(nick string) error {
	return c.building(nick, "book", func(p *flight.Player) error {
		if err := p.Ship.Book(); err != nil {
			return err
		}
		c.m.notifyShip(p)
		return nil
	})
}

func (c *Controller) TakeBooked(nick string, i int) error {
	return c.building(nick, "take booked", func(p *flight.Player) error {
		if err := p.Ship.TakeBooked(i); err != nil {
			return err
		}
		c.m.notifyShip(p)
		return nil
	})
}

// Place puts the component in hand on the ship.
func (c *Controller) Place(nick string, at ship.Coordinates, rotation int) error {
	return c.building(nick, "place", func(p *flight.Player) error {
		if err := p.Ship.PlaceFocused(at, rotation); err != nil {
			return err
		}
		c.m.notifyShip(p)
		return nil
	})
}

// LittleDeck lets a builder peek at one of the visible little decks. It
// returns nil when peeking is not allowed.
func (c *Controller) LittleDeck(nick string, i int) ([]card.ClientCard, error) {
	var out []card.ClientCard
	err := c.building(nick, "view little deck", func(p *flight.Player) error {
		cards, ok := c.m.deck.LittleDeck(i)
		if !ok {
			c.m.ignored(nick, "view little deck")
			return nil
		}
		for _, cd := range cards {
			out = append(out, cd.Client())
		}
		return nil
	})
	return out, err
}

func (c *Controller) FinishBuilding(nick string) error {
	return c.in(nick, "finish building", c.m.finishBuilding, StateBuildShipboard)
}

func (c *Controller) FlipHourglass(nick string) error {
	return c.in(nick, "flip hourglass", func(p *flight.Player) error {
		c.m.flipHourglass(p)
		return nil
	}, StateBuildShipboard)
}

// --- checking and crew ---

// RemoveComponent drops a component from a ship that fails the check.
func (c *Controller) RemoveComponent(nick string, at ship.Coordinates) error {
	return c.in(nick, "remove component", func(p *flight.Player) error {
		return c.m.removeComponent(p, at)
	}, StateCheckShipboard)
}

// ChooseShipPart picks the part to keep after a split, both while checking
// ships and after an attack.
func (c *Controller) ChooseShipPart(nick string, at ship.Coordinates) error {
	return c.in(nick, "choose ship part", func(p *flight.Player) error {
		if c.m.state == StateCheckShipboard {
			if len(p.Ship.Parts()) == 0 {
				c.m.ignored(nick, "choose ship part")
				return nil
			}
			return c.m.keepPart(p, at)
		}
		return c.m.play(p, card.StateCheckShipboardAfterAttack, card.NewChoices().ShipPart(at).Build())
	}, StateCheckShipboard, StatePlayCard)
}

func (c *Controller) PlaceCrew(nick string, aliens map[ship.Coordinates]ship.AlienColor) error {
	return c.in(nick, "place crew", func(p *flight.Player) error {
		if err := c.m.placeCrew(p, aliens); err != nil {
			return err
		}
		c.m.settle()
		return nil
	}, StatePlaceCrew)
}

// --- flight ---

func (c *Controller) DrawCard(nick string) error {
	return c.in(nick, "draw card", func(p *flight.Player) error {
		c.m.drawCard(p)
		return nil
	}, StateDrawCard)
}

// LandEarly retires a player between two cards.
func (c *Controller) LandEarly(nick string) error {
	return c.in(nick, "land early", func(p *flight.Player) error {
		if !c.m.flying.InFlight(p) {
			c.m.ignored(nick, "land early")
			return nil
		}
		return c.m.landEarly(p)
	}, StateDrawCard)
}

func (c *Controller) play(nick string, want card.State, ch card.Choices) error {
	return c.in(nick, want.String(), func(p *flight.Player) error {
		return c.m.play(p, want, ch)
	}, StatePlayCard)
}

func (c *Controller) ChooseCannons(nick string, doubles, batteries []ship.Coordinates) error {
	ch := card.NewChoices().DoubleCannons(doubles...).Batteries(batteries...).Build()
	return c.play(nick, card.StateChooseCannons, ch)
}

func (c *Controller) ChooseEngines(nick string, doubles, batteries []ship.Coordinates) error {
	ch := card.NewChoices().DoubleEngines(doubles...).Batteries(batteries...).Build()
	return c.play(nick, card.StateChooseEngines, ch)
}

func (c *Controller) AcceptReward(nick string, accept bool) error {
	return c.play(nick, card.StateAcceptTheReward, card.NewChoices().Accept(accept).Build())
}

// ChooseStorages tells where each reward cube goes; ship.Invalid drops one.
func (c *Controller) ChooseStorages(nick string, storages []ship.Coordinates) error {
	return c.play(nick, card.StateHandleCubesReward, card.NewChoices().Storages(storages...).Build())
}

func (c *Controller) RemoveCrew(nick string, cabins []ship.Coordinates) error {
	return c.play(nick, card.StateRemoveCrewMembers, card.NewChoices().Cabins(cabins...).Build())
}

func (c *Controller) ThrowDices(nick string) error {
	return c.play(nick, card.StateThrowDices, card.Skip)
}

// Defend answers the current dangerous object. Use ship.Invalid for a
// shield or cannon the player does not activate.
func (c *Controller) Defend(nick string, shield, cannon ship.Coordinates, batteries []ship.Coordinates) error {
	b := card.NewChoices().Batteries(batteries...).Shield(shield)
	if !cannon.IsInvalid() {
		b.DoubleCannons(cannon)
	}
	return c.play(nick, card.StateDangerousAttack, b.Build())
}

func (c *Controller) VisitLocation(nick string, visit bool) error {
	return c.play(nick, card.StateVisitLocation, card.NewChoices().Visit(visit).Build())
}

func (c *Controller) ChoosePlanet(nick string, planet int) error {
	return c.play(nick, card.StateChoosePlanet, card.NewChoices().Planet(planet).Build())
}

// --- connection ---

// Disconnect marks nick as away. Whatever the match waits from them is
// decided automatically from now on.
func (c *Controller) Disconnect(nick string) error {
	return c.connection(nick, true)
}

func (c *Controller) Reconnect(nick string) error {
	return c.connection(nick, false)
}

func (c *Controller) connection(nick string, away bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	p, err := c.m.player(nick)
	if err != nil {
		return err
	}
	if p.Disconnected == away {
		return nil
	}
	p.Disconnected = away
	c.m.log.Info("player connection changed", zap.String("player", nick), zap.Bool("disconnected", away))
	c.m.notify(EventPlayerConnection, nick, !away)
	if away && c.m.state == StateBuildShipboard {
		// Their ship is judged as it stands.
		if err := c.m.finishBuilding(p); err != nil {
			return err
		}
	}
	c.m.settle()
	return nil
}
