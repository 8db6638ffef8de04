/*
Package ship
File: component.go
Description:
    The component model. Every tile is a Component with four base connectors
    and a rotation; the Kind decides which of the capability fields matter:

    - Cabins hold crew (two humans or one alien).
    - Cannons fire toward their front, engines exhaust toward their rear.
    - Double cannons/engines only count when activated with a battery charge.
    - Shields cover two adjacent sides.
    - Battery boxes hold charges, storages hold cargo cubes.
    - Life support modules let an alien of their color live next door.
*/

package ship

import "fmt"

// Kind is the type of a component tile.
type Kind int

const (
	KindStructural Kind = iota
	KindMainCabin
	KindCabin
	KindCannon
	KindDoubleCannon
	KindEngine
	KindDoubleEngine
	KindShield
	KindBatteryBox
	KindStorage
	KindSpecialStorage
	KindLifeSupport
)

var kindNames = map[Kind]string{
	KindStructural:     "structural",
	KindMainCabin:      "main_cabin",
	KindCabin:          "cabin",
	KindCannon:         "cannon",
	KindDoubleCannon:   "double_cannon",
	KindEngine:         "engine",
	KindDoubleEngine:   "double_engine",
	KindShield:         "shield",
	KindBatteryBox:     "battery_box",
	KindStorage:        "storage",
	KindSpecialStorage: "special_storage",
	KindLifeSupport:    "life_support",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind maps a catalog string onto a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return KindStructural, fmt.Errorf("unknown component kind %q", s)
}

// CubeColor is a cargo cube; its sale value is its ordinal.
type CubeColor int

const (
	Blue CubeColor = iota + 1
	Green
	Yellow
	Red
)

// Value is the number of credits a cube sells for.
func (c CubeColor) Value() int {
	return int(c)
}

func (c CubeColor) String() string {
	switch c {
	case Blue:
		return "blue"
	case Green:
		return "green"
	case Yellow:
		return "yellow"
	case Red:
		return "red"
	}
	return "unknown"
}

// ParseCube maps a catalog string onto a CubeColor.
func ParseCube(s string) (CubeColor, error) {
	for _, c := range []CubeColor{Blue, Green, Yellow, Red} {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown cube color %q", s)
}

// AlienColor tags aliens and the life support modules that keep them alive.
type AlienColor int

const (
	NoAlien AlienColor = iota
	Brown
	Purple
)

func (a AlienColor) String() string {
	switch a {
	case Brown:
		return "brown"
	case Purple:
		return "purple"
	}
	return "none"
}

// ParseAlien maps a catalog string onto an AlienColor.
func ParseAlien(s string) (AlienColor, error) {
	switch s {
	case "brown":
		return Brown, nil
	case "purple":
		return Purple, nil
	case "", "none":
		return NoAlien, nil
	}
	return NoAlien, fmt.Errorf("unknown alien color %q", s)
}

// Component is one tile of a ship.
type Component struct {
	ID         int
	Kind       Kind
	connectors [4]Connector // base connectors before rotation, indexed by Direction
	rotation   int

	Capacity int         // cabin seats, battery charges or storage slots
	Charge   int         // remaining battery charges
	Cubes    []CubeColor // cargo held by a storage
	Humans   int
	Alien    AlienColor
	Color    AlienColor // life support color
}

// NewComponent builds a tile of the given kind with its base connectors
// (North, East, South, West). Capacity is interpreted per kind.
func NewComponent(id int, kind Kind, connectors [4]Connector, capacity int) *Component {
	c := &Component{ID: id, Kind: kind, connectors: connectors, Capacity: capacity}
	switch kind {
	case KindCabin, KindMainCabin:
		c.Capacity = 2
	case KindBatteryBox:
		c.Charge = capacity
	}
	return c
}

// NewLifeSupport builds a life support module of the given color.
func NewLifeSupport(id int, connectors [4]Connector, color AlienColor) *Component {
	c := NewComponent(id, KindLifeSupport, connectors, 0)
	c.Color = color
	return c
}

// NewMainCabin builds the starting cabin, universal on every side.
func NewMainCabin() *Component {
	return NewComponent(0, KindMainCabin, [4]Connector{Universal, Universal, Universal, Universal}, 2)
}

// Rotation is the number of clockwise quarter turns applied to the tile.
func (c *Component) Rotation() int {
	return c.rotation
}

// SetRotation normalises r to 0..3.
func (c *Component) SetRotation(r int) {
	c.rotation = ((r % 4) + 4) % 4
}

// Connector returns the connector currently facing d.
func (c *Component) Connector(d Direction) Connector {
	return c.connectors[d.Rotate(-c.rotation)]
}

// BaseConnectors returns the unrotated connectors.
func (c *Component) BaseConnectors() [4]Connector {
	return c.connectors
}

func (c *Component) IsCabin() bool {
	return c.Kind == KindCabin || c.Kind == KindMainCabin
}

func (c *Component) IsCannon() bool {
	return c.Kind == KindCannon || c.Kind == KindDoubleCannon
}

func (c *Component) IsEngine() bool {
	return c.Kind == KindEngine || c.Kind == KindDoubleEngine
}

func (c *Component) IsStorage() bool {
	return c.Kind == KindStorage || c.Kind == KindSpecialStorage
}

// IsDouble reports whether the component needs a battery charge to work.
func (c *Component) IsDouble() bool {
	return c.Kind == KindDoubleCannon || c.Kind == KindDoubleEngine
}

// Facing is the fire direction of a cannon or the exhaust direction of an engine.
func (c *Component) Facing() Direction {
	if c.IsEngine() {
		return South.Rotate(c.rotation)
	}
	return North.Rotate(c.rotation)
}

// Covers reports whether a shield protects side d.
func (c *Component) Covers(d Direction) bool {
	if c.Kind != KindShield {
		return false
	}
	return North.Rotate(c.rotation) == d || East.Rotate(c.rotation) == d
}

// Crew is the number of crew members aboard a cabin.
func (c *Component) Crew() int {
	if c.Alien != NoAlien {
		return c.Humans + 1
	}
	return c.Humans
}

// Accepts reports whether a storage can take one more cube of the given color.
func (c *Component) Accepts(cube CubeColor) bool {
	if !c.IsStorage() || len(c.Cubes) >= c.Capacity {
		return false
	}
	return cube != Red || c.Kind == KindSpecialStorage
}

func (c *Component) String() string {
	return fmt.Sprintf("%s#%d", c.Kind, c.ID)
}
