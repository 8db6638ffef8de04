/*
Package ship
File: board.go
Description:
    The ShipBoard: a fixed-size grid of components owned by one player,
    plus the component in the player's hand (focused), up to two booked
    components and the components lost so far.

    Every mutation recomputes the set of incorrectly positioned components,
    so IsShipCorrect is always a cheap read.
*/

package ship

import (
	"errors"
	"fmt"
	"sort"
)

// MaxBooked is the number of components a player may set aside.
const MaxBooked = 2

var (
	ErrOutOfBounds        = errors.New("coordinates outside the ship layout")
	ErrCellOccupied       = errors.New("cell already occupied")
	ErrEmptyCell          = errors.New("no component at coordinates")
	ErrNoFocusedComponent = errors.New("no component in hand")
	ErrHandsFull          = errors.New("a component is already in hand")
	ErrTooManyBooked      = errors.New("booked components limit reached")
	ErrNoSuchBooked       = errors.New("no booked component at index")
	ErrNoPendingParts     = errors.New("ship is not split into parts")
	ErrNotInPart          = errors.New("coordinates do not belong to any ship part")
	ErrMainCabin          = errors.New("the main cabin cannot be dismantled")
)

// Board is the ShipBoard of one player.
type Board struct {
	level  int
	layout Layout
	grid   [Rows][Cols]*Component

	focused *Component
	booked  []*Component
	lost    []*Component

	incorrect map[Coordinates]struct{}
	parts     [][]Coordinates // pending split waiting for the owner to keep one part
}

// NewBoard creates the ship of a flight level with the main cabin already in place.
func NewBoard(level int) *Board {
	b := &Board{
		level:     level,
		layout:    LayoutForLevel(level),
		incorrect: make(map[Coordinates]struct{}),
	}
	b.grid[MainCabinPosition.Row][MainCabinPosition.Col] = NewMainCabin()
	return b
}

// Level is the flight level the ship was built for.
func (b *Board) Level() int {
	return b.level
}

// Contains reports whether c is inside this ship's legal build area.
func (b *Board) Contains(c Coordinates) bool {
	return b.layout.Contains(c)
}

// At returns the component at c.
func (b *Board) At(c Coordinates) (*Component, error) {
	if !b.layout.Contains(c) {
		return nil, fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	comp := b.grid[c.Row][c.Col]
	if comp == nil {
		return nil, fmt.Errorf("%w: %s", ErrEmptyCell, c)
	}
	return comp, nil
}

// IsOccupied reports whether a component sits at c. Out-of-range cells are empty.
func (b *Board) IsOccupied(c Coordinates) bool {
	return b.get(c) != nil
}

func (b *Board) get(c Coordinates) *Component {
	if !c.InGrid() {
		return nil
	}
	return b.grid[c.Row][c.Col]
}

// Occupied lists the coordinates of every placed component in row-major order.
func (b *Board) Occupied() []Coordinates {
	var out []Coordinates
	for r := 0; r < Rows; r++ {
		for col := 0; col < Cols; col++ {
			if b.grid[r][col] != nil {
				out = append(out, At(r, col))
			}
		}
	}
	return out
}

// Find returns the coordinates of every component matching keep, row-major.
func (b *Board) Find(keep func(*Component) bool) []Coordinates {
	var out []Coordinates
	for _, c := range b.Occupied() {
		if keep(b.get(c)) {
			out = append(out, c)
		}
	}
	return out
}

// Place puts comp at c with the given rotation. Occupied or out-of-layout
// cells are rejected; any other problem (connector mismatch, no path to the
// main cabin) is accepted and recorded as an incorrectly positioned component.
func (b *Board) Place(c Coordinates, comp *Component, rotation int) error {
	if comp == nil {
		return ErrNoFocusedComponent
	}
	if !b.layout.Contains(c) {
		return fmt.Errorf("%w: %s", ErrOutOfBounds, c)
	}
	if b.grid[c.Row][c.Col] != nil {
		return fmt.Errorf("%w: %s", ErrCellOccupied, c)
	}
	comp.SetRotation(rotation)
	b.grid[c.Row][c.Col] = comp
	b.recompute()
	return nil
}

// Remove takes the component at c off the ship (it is lost) and recalculates
// the ship parts. When more than one part remains the owner must call KeepPart.
func (b *Board) Remove(c Coordinates) ([][]Coordinates, error) {
	comp, err := b.At(c)
	if err != nil {
		return nil, err
	}
	b.grid[c.Row][c.Col] = nil
	b.lost = append(b.lost, comp)
	parts := b.RecalculateParts()
	b.recompute()
	return parts, nil
}

// Dismantle is Remove on the owner's request: the main cabin stays on board.
// Only attacks can take it away.
func (b *Board) Dismantle(c Coordinates) ([][]Coordinates, error) {
	if comp := b.get(c); comp != nil && comp.Kind == KindMainCabin {
		return nil, fmt.Errorf("%w: %s", ErrMainCabin, c)
	}
	return b.Remove(c)
}

// RecalculateParts partitions the placed components into maximal connected
// subgraphs. A split (more than one part) is remembered until KeepPart.
func (b *Board) RecalculateParts() [][]Coordinates {
	seen := make(map[Coordinates]bool)
	var parts [][]Coordinates
	for _, start := range b.Occupied() {
		if seen[start] {
			continue
		}
		part := b.bfs(start, seen)
		sortCoordinates(part)
		parts = append(parts, part)
	}
	if len(parts) > 1 {
		b.parts = parts
	} else {
		b.parts = nil
	}
	return parts
}

// bfs collects every component reachable from start through joined connectors.
func (b *Board) bfs(start Coordinates, seen map[Coordinates]bool) []Coordinates {
	queue := []Coordinates{start}
	seen[start] = true
	var out []Coordinates
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		out = append(out, cur)
		for _, d := range Directions {
			next := cur.Neighbor(d)
			if seen[next] || !b.joined(cur, d) {
				continue
			}
			seen[next] = true
			queue = append(queue, next)
		}
	}
	return out
}

// joined reports whether the component at c links to its neighbour on side d.
func (b *Board) joined(c Coordinates, d Direction) bool {
	from, to := b.get(c), b.get(c.Neighbor(d))
	if from == nil || to == nil {
		return false
	}
	return from.Connector(d).Joins(to.Connector(d.Opposite()))
}

// Parts returns the pending split, or nil when the ship is in one piece.
func (b *Board) Parts() [][]Coordinates {
	return b.parts
}

// KeepPart resolves a pending split: the part containing c stays, every other
// part is lost.
func (b *Board) KeepPart(c Coordinates) error {
	if len(b.parts) == 0 {
		return ErrNoPendingParts
	}
	keep := -1
	for i, part := range b.parts {
		for _, pc := range part {
			if pc == c {
				keep = i
			}
		}
	}
	if keep < 0 {
		return fmt.Errorf("%w: %s", ErrNotInPart, c)
	}
	for i, part := range b.parts {
		if i == keep {
			continue
		}
		for _, pc := range part {
			b.lost = append(b.lost, b.grid[pc.Row][pc.Col])
			b.grid[pc.Row][pc.Col] = nil
		}
	}
	b.parts = nil
	b.recompute()
	return nil
}

// KeepDefaultPart resolves a pending split without input from the owner: the
// part with the main cabin, otherwise the one with most crew, otherwise the largest.
func (b *Board) KeepDefaultPart() {
	if len(b.parts) == 0 {
		return
	}
	best, bestCrew := 0, -1
	for i, part := range b.parts {
		crew := 0
		for _, c := range part {
			comp := b.get(c)
			if comp.Kind == KindMainCabin {
				crew = 1 << 20
				break
			}
			crew += comp.Crew()
		}
		if crew > bestCrew || (crew == bestCrew && len(part) > len(b.parts[best])) {
			best, bestCrew = i, crew
		}
	}
	_ = b.KeepPart(b.parts[best][0])
}

// recompute refreshes the incorrectly positioned set and drops aliens whose
// life support is gone.
func (b *Board) recompute() {
	b.incorrect = make(map[Coordinates]struct{})
	reachable := make(map[Coordinates]bool)
	if b.get(MainCabinPosition) != nil && b.get(MainCabinPosition).Kind == KindMainCabin {
		b.bfs(MainCabinPosition, reachable)
	}
	for _, c := range b.Occupied() {
		comp := b.get(c)
		if !reachable[c] || !b.connectorsWellConnected(c) || !b.orientationAllowed(c, comp) {
			b.incorrect[c] = struct{}{}
		}
	}
	b.updateAliens()
}

// connectorsWellConnected checks every side of c against its neighbour.
func (b *Board) connectorsWellConnected(c Coordinates) bool {
	comp := b.get(c)
	for _, d := range Directions {
		n := b.get(c.Neighbor(d))
		if n == nil {
			continue
		}
		if !comp.Connector(d).Compatible(n.Connector(d.Opposite())) {
			return false
		}
	}
	return true
}

// orientationAllowed enforces that engines exhaust backwards into free space
// and cannons fire into free space.
func (b *Board) orientationAllowed(c Coordinates, comp *Component) bool {
	switch {
	case comp.IsEngine():
		return comp.Facing() == South && b.get(c.Neighbor(South)) == nil
	case comp.IsCannon():
		return b.get(c.Neighbor(comp.Facing())) == nil
	}
	return true
}

// IsPositionConnectedToShip reports whether c links to at least one neighbour.
func (b *Board) IsPositionConnectedToShip(c Coordinates) bool {
	for _, d := range Directions {
		if b.joined(c, d) {
			return true
		}
	}
	return false
}

// AreConnectorsWellConnected reports whether c has a joined neighbour and no
// incompatible one.
func (b *Board) AreConnectorsWellConnected(c Coordinates) bool {
	return b.get(c) != nil && b.IsPositionConnectedToShip(c) && b.connectorsWellConnected(c)
}

// AreEmptyConnectorsWellConnected reports whether every empty side of c faces
// either nothing or another empty side.
func (b *Board) AreEmptyConnectorsWellConnected(c Coordinates) bool {
	comp := b.get(c)
	if comp == nil {
		return false
	}
	for _, d := range Directions {
		n := b.get(c.Neighbor(d))
		if n == nil {
			continue
		}
		mine, theirs := comp.Connector(d), n.Connector(d.Opposite())
		if (mine == Empty) != (theirs == Empty) {
			return false
		}
	}
	return true
}

// IsShipCorrect is true when no component is incorrectly positioned.
func (b *Board) IsShipCorrect() bool {
	return len(b.incorrect) == 0
}

// Incorrect lists the incorrectly positioned components in row-major order.
func (b *Board) Incorrect() []Coordinates {
	out := make([]Coordinates, 0, len(b.incorrect))
	for c := range b.incorrect {
		out = append(out, c)
	}
	sortCoordinates(out)
	return out
}

// Lost is the number of components no longer part of the ship.
func (b *Board) Lost() int {
	return len(b.lost)
}

// Exposed counts non-empty connectors with no neighbouring component.
func (b *Board) Exposed() int {
	n := 0
	for _, c := range b.Occupied() {
		comp := b.get(c)
		for _, d := range Directions {
			if comp.Connector(d) != Empty && b.get(c.Neighbor(d)) == nil {
				n++
			}
		}
	}
	return n
}

func sortCoordinates(cs []Coordinates) {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Row != cs[j].Row {
			return cs[i].Row < cs[j].Row
		}
		return cs[i].Col < cs[j].Col
	})
}
