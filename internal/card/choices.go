/*
Package card
File: choices.go
Description:
    PlayerChoices: the immutable bundle of decisions one player submits for
    one step of a card. Every field is optional; a missing field means the
    player skips that sub-decision. Build values with NewChoices().
*/

package card

import (
	"slices"

	"github.com/everforgeworks/galaxy-haulers/internal/ship"
)

type optional[T any] struct {
	value T
	set   bool
}

func (o optional[T]) get() (T, bool) {
	return o.value, o.set
}

// Choices is a player's decision for one card step.
type Choices struct {
	doubleCannons optional[[]ship.Coordinates]
	doubleEngines optional[[]ship.Coordinates]
	batteries     optional[[]ship.Coordinates]
	shield        optional[ship.Coordinates]
	storages      optional[[]ship.Coordinates]
	cabins        optional[[]ship.Coordinates]
	planet        optional[int]
	accept        optional[bool]
	visit         optional[bool]
	part          optional[ship.Coordinates]
}

// Skip is the empty decision.
var Skip = Choices{}

// cloned hands out a copy so callers cannot reach into a built decision.
func cloned(o optional[[]ship.Coordinates]) ([]ship.Coordinates, bool) {
	v, ok := o.get()
	return slices.Clone(v), ok
}

func (c Choices) DoubleCannons() ([]ship.Coordinates, bool) { return cloned(c.doubleCannons) }
func (c Choices) DoubleEngines() ([]ship.Coordinates, bool) { return cloned(c.doubleEngines) }
func (c Choices) Batteries() ([]ship.Coordinates, bool)     { return cloned(c.batteries) }
func (c Choices) Shield() (ship.Coordinates, bool)          { return c.shield.get() }
func (c Choices) Storages() ([]ship.Coordinates, bool)      { return cloned(c.storages) }
func (c Choices) Cabins() ([]ship.Coordinates, bool)        { return cloned(c.cabins) }
func (c Choices) Planet() (int, bool)                       { return c.planet.get() }
func (c Choices) Accept() (bool, bool)                      { return c.accept.get() }
func (c Choices) Visit() (bool, bool)                       { return c.visit.get() }
func (c Choices) ShipPart() (ship.Coordinates, bool)        { return c.part.get() }

// Accepted is true only when the player explicitly accepted.
func (c Choices) Accepted() bool {
	v, ok := c.accept.get()
	return ok && v
}

// Visiting is true only when the player explicitly chose to visit.
func (c Choices) Visiting() bool {
	v, ok := c.visit.get()
	return ok && v
}

// Defense converts the choices into the commitment used against a dangerous
// object: the shield, the first chosen double cannon and the batteries.
func (c Choices) Defense() ship.Defense {
	def := ship.NoDefense
	if s, ok := c.shield.get(); ok {
		def.Shield = s
	}
	if cannons, ok := c.doubleCannons.get(); ok && len(cannons) > 0 {
		def.Cannon = cannons[0]
	}
	def.Batteries, _ = cloned(c.batteries)
	return def
}

// ChoicesBuilder assembles a Choices value.
type ChoicesBuilder struct {
	c Choices
}

// NewChoices starts an empty decision.
func NewChoices() *ChoicesBuilder {
	return &ChoicesBuilder{}
}

func (b *ChoicesBuilder) DoubleCannons(cs ...ship.Coordinates) *ChoicesBuilder {
	b.c.doubleCannons = optional[[]ship.Coordinates]{slices.Clone(cs), true}
	return b
}

func (b *ChoicesBuilder) DoubleEngines(cs ...ship.Coordinates) *ChoicesBuilder {
	b.c.doubleEngines = optional[[]ship.Coordinates]{slices.Clone(cs), true}
	return b
}

func (b *ChoicesBuilder) Batteries(cs ...ship.Coordinates) *ChoicesBuilder {
	b.c.batteries = optional[[]ship.Coordinates]{slices.Clone(cs), true}
	return b
}

func (b *ChoicesBuilder) Shield(c ship.Coordinates) *ChoicesBuilder {
	b.c.shield = optional[ship.Coordinates]{c, true}
	return b
}

// Storages lists one storage per reward cube, in order; ship.Invalid skips a cube.
func (b *ChoicesBuilder) Storages(cs ...ship.Coordinates) *ChoicesBuilder {
	b.c.storages = optional[[]ship.Coordinates]{slices.Clone(cs), true}
	return b
}

// Cabins lists one cabin per crew member to remove.
func (b *ChoicesBuilder) Cabins(cs ...ship.Coordinates) *ChoicesBuilder {
	b.c.cabins = optional[[]ship.Coordinates]{slices.Clone(cs), true}
	return b
}

func (b *ChoicesBuilder) Planet(i int) *ChoicesBuilder {
	b.c.planet = optional[int]{i, true}
	return b
}

func (b *ChoicesBuilder) Accept(v bool) *ChoicesBuilder {
	b.c.accept = optional[bool]{v, true}
	return b
}

func (b *ChoicesBuilder) Visit(v bool) *ChoicesBuilder {
	b.c.visit = optional[bool]{v, true}
	return b
}

// ShipPart picks the part of a split ship to keep, by any of its coordinates.
func (b *ChoicesBuilder) ShipPart(c ship.Coordinates) *ChoicesBuilder {
	b.c.part = optional[ship.Coordinates]{c, true}
	return b
}

// Build returns the assembled decision. The builder can keep being used.
func (b *ChoicesBuilder) Build() Choices {
	return b.c
}
