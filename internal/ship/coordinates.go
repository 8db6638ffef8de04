/*
Package ship
File: coordinates.go
Description:
    Board primitives for the ship grid: coordinates, the four directions and
    the legal build area (layout) for each flight level.

    Internally the grid is indexed from (0,0). Players and dice think in the
    printed coordinates of the physical board, which start at row 5 / column 4.
*/

package ship

import "fmt"

const (
	// Rows and Cols are the fixed dimensions of every ship grid.
	Rows = 5
	Cols = 7

	// RowOffset and ColOffset translate grid indexes into printed (dice) coordinates.
	RowOffset = 5
	ColOffset = 4
)

// Coordinates addresses one cell of the ship grid.
type Coordinates struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Invalid is the sentinel used for "no selection" / "skip".
var Invalid = Coordinates{Row: -1, Col: -1}

// MainCabinPosition is where every ship starts: the centre of the grid.
var MainCabinPosition = Coordinates{Row: 2, Col: 3}

// At is shorthand for building coordinates from grid indexes.
func At(row, col int) Coordinates {
	return Coordinates{Row: row, Col: col}
}

// FromPrinted converts the coordinates printed on the physical board.
func FromPrinted(row, col int) Coordinates {
	return Coordinates{Row: row - RowOffset, Col: col - ColOffset}
}

// IsInvalid reports whether c is the skip sentinel.
func (c Coordinates) IsInvalid() bool {
	return c == Invalid
}

// InGrid reports whether c is inside the Rows x Cols rectangle.
func (c Coordinates) InGrid() bool {
	return c.Row >= 0 && c.Row < Rows && c.Col >= 0 && c.Col < Cols
}

// Neighbor returns the adjacent cell in direction d (it may be outside the grid).
func (c Coordinates) Neighbor(d Direction) Coordinates {
	switch d {
	case North:
		return Coordinates{Row: c.Row - 1, Col: c.Col}
	case East:
		return Coordinates{Row: c.Row, Col: c.Col + 1}
	case South:
		return Coordinates{Row: c.Row + 1, Col: c.Col}
	default:
		return Coordinates{Row: c.Row, Col: c.Col - 1}
	}
}

func (c Coordinates) String() string {
	if c.IsInvalid() {
		return "(none)"
	}
	return fmt.Sprintf("(%d,%d)", c.Row+RowOffset, c.Col+ColOffset)
}

// Direction is one of the four sides of a cell; the front of the ship is North.
type Direction int

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists all four directions clockwise from North.
var Directions = [4]Direction{North, East, South, West}

// Opposite returns the direction facing d.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Rotate turns d clockwise by r quarter turns (r may be negative).
func (d Direction) Rotate(r int) Direction {
	return Direction(((int(d)+r)%4 + 4) % 4)
}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return "unknown"
}

// ParseDirection maps a catalog string onto a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return North, fmt.Errorf("unknown direction %q", s)
}

// Layout marks the cells of the grid a ship may occupy.
type Layout [Rows][Cols]bool

// StandardLayout is the level 2 ship.
var StandardLayout = Layout{
	{false, false, true, false, true, false, false},
	{false, true, true, true, true, true, false},
	{true, true, true, true, true, true, true},
	{true, true, true, true, true, true, true},
	{true, true, true, false, true, true, true},
}

// TestFlightLayout is the smaller level 1 ship.
var TestFlightLayout = Layout{
	{false, false, false, true, false, false, false},
	{false, false, true, true, true, false, false},
	{false, true, true, true, true, true, false},
	{false, true, true, true, true, true, false},
	{false, true, true, false, true, true, false},
}

// LayoutForLevel returns the build area for a flight level.
func LayoutForLevel(level int) Layout {
	if level <= 1 {
		return TestFlightLayout
	}
	return StandardLayout
}

// Contains is the boundary predicate used by every walk over the grid.
func (l *Layout) Contains(c Coordinates) bool {
	return c.InGrid() && l[c.Row][c.Col]
}
