/*
Package ship
File: crew.go
Description:
    Crew handling: initial placement of humans and aliens, crew losses and
    the epidemic rule. Aliens need a life support module of their color
    joined to their cabin, and die as soon as it is gone.
*/

package ship

import (
	"errors"
	"fmt"
)

var (
	ErrNotACabin        = errors.New("component is not a cabin")
	ErrAlienNotAllowed  = errors.New("alien cannot live in this cabin")
	ErrDuplicateAlien   = errors.New("only one alien of each color per ship")
	ErrAliensNotEnabled = errors.New("aliens are not available at this flight level")
)

// PlaceCrew fills every cabin: the listed cabins receive one alien of the given
// color, every other cabin two humans.
func (b *Board) PlaceCrew(aliens map[Coordinates]AlienColor) error {
	colors := make(map[AlienColor]bool)
	for c, color := range aliens {
		if color == NoAlien {
			continue
		}
		if b.level <= 1 {
			return ErrAliensNotEnabled
		}
		comp, err := b.At(c)
		if err != nil {
			return err
		}
		if comp.Kind != KindCabin {
			return fmt.Errorf("%w: %s", ErrNotACabin, c)
		}
		if !b.CanHostAlien(c, color) {
			return fmt.Errorf("%w: %s %s", ErrAlienNotAllowed, color, c)
		}
		if colors[color] {
			return fmt.Errorf("%w: %s", ErrDuplicateAlien, color)
		}
		colors[color] = true
	}
	for _, c := range b.Find((*Component).IsCabin) {
		comp := b.get(c)
		if color := aliens[c]; color != NoAlien {
			comp.Humans, comp.Alien = 0, color
			continue
		}
		comp.Humans, comp.Alien = comp.Capacity, NoAlien
	}
	return nil
}

// CanHostAlien reports whether the cabin at c is joined to a life support
// module of the given color.
func (b *Board) CanHostAlien(c Coordinates, color AlienColor) bool {
	comp := b.get(c)
	if comp == nil || comp.Kind != KindCabin {
		return false
	}
	for _, d := range Directions {
		n := b.get(c.Neighbor(d))
		if n != nil && n.Kind == KindLifeSupport && n.Color == color && b.joined(c, d) {
			return true
		}
	}
	return false
}

// updateAliens removes aliens whose life support has been lost.
func (b *Board) updateAliens() {
	for _, c := range b.Find((*Component).IsCabin) {
		comp := b.get(c)
		if comp.Alien != NoAlien && !b.CanHostAlien(c, comp.Alien) {
			comp.Alien = NoAlien
		}
	}
}

func (b *Board) hasAlien(color AlienColor) bool {
	return len(b.Find(func(comp *Component) bool { return comp.Alien == color })) > 0
}

// CrewCount is the number of humans and aliens aboard.
func (b *Board) CrewCount() int {
	total := 0
	for _, c := range b.Find((*Component).IsCabin) {
		total += b.get(c).Crew()
	}
	return total
}

// HumanCount is the number of humans aboard; a ship with none must land.
func (b *Board) HumanCount() int {
	total := 0
	for _, c := range b.Find((*Component).IsCabin) {
		total += b.get(c).Humans
	}
	return total
}

// removeOne takes one crew member out of a cabin, humans first.
func removeOne(comp *Component) bool {
	switch {
	case comp.Humans > 0:
		comp.Humans--
	case comp.Alien != NoAlien:
		comp.Alien = NoAlien
	default:
		return false
	}
	return true
}

// RemoveCrew removes n crew members, one per entry of cabins. Entries that
// name an empty or non-cabin cell are skipped; any shortfall is taken from the
// remaining cabins in row-major order. It returns how many were removed.
func (b *Board) RemoveCrew(cabins []Coordinates, n int) int {
	removed := 0
	for _, c := range cabins {
		if removed == n {
			return removed
		}
		comp := b.get(c)
		if comp != nil && comp.IsCabin() && removeOne(comp) {
			removed++
		}
	}
	for _, c := range b.Find((*Component).IsCabin) {
		for removed < n && removeOne(b.get(c)) {
			removed++
		}
	}
	return removed
}

// InfectedCabins lists the occupied cabins orthogonally adjacent to another
// occupied cabin.
func (b *Board) InfectedCabins() []Coordinates {
	occupied := func(c Coordinates) bool {
		comp := b.get(c)
		return comp != nil && comp.IsCabin() && comp.Crew() > 0
	}
	var out []Coordinates
	for _, c := range b.Find((*Component).IsCabin) {
		if !occupied(c) {
			continue
		}
		for _, d := range Directions {
			if occupied(c.Neighbor(d)) {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// Epidemic removes one crew member from every infected cabin and returns the
// number of crew lost.
func (b *Board) Epidemic() int {
	infected := b.InfectedCabins()
	for _, c := range infected {
		removeOne(b.get(c))
	}
	return len(infected)
}
