/*
Package ship
File: attack.go
Description:
    Resolution of dangerous objects (meteorites and cannon shots) hitting a ship.

    An object comes from one side of the ship along a line (the printed row
    or column, usually a dice roll). The first component met walking inward
    from that edge is the one hit:
    - small meteorites bounce off an empty side, otherwise need a shield;
    - big meteorites must be shot down by a cannon in line with them;
    - light shots are stopped by a shield;
    - heavy shots cannot be stopped.
    Shields and double cannons cost one battery charge.
*/

package ship

import "fmt"

// ObjectKind is the type of a dangerous object.
type ObjectKind int

const (
	SmallMeteorite ObjectKind = iota
	BigMeteorite
	LightShot
	HeavyShot
)

func (k ObjectKind) String() string {
	switch k {
	case SmallMeteorite:
		return "small_meteorite"
	case BigMeteorite:
		return "big_meteorite"
	case LightShot:
		return "light_shot"
	case HeavyShot:
		return "heavy_shot"
	}
	return "unknown"
}

// ParseObjectKind maps a catalog string onto an ObjectKind.
func ParseObjectKind(s string) (ObjectKind, error) {
	for _, k := range []ObjectKind{SmallMeteorite, BigMeteorite, LightShot, HeavyShot} {
		if k.String() == s {
			return k, nil
		}
	}
	return SmallMeteorite, fmt.Errorf("unknown dangerous object %q", s)
}

// DangerousObject is one meteorite or shot. Line is the printed row (objects
// from east/west) or column (objects from north/south) it travels along.
type DangerousObject struct {
	Kind ObjectKind `json:"kind"`
	From Direction  `json:"from"`
	Line int        `json:"line"`
}

// Defense is what the player commits against one object.
type Defense struct {
	Shield    Coordinates
	Cannon    Coordinates
	Batteries []Coordinates
}

// NoDefense is the empty commitment.
var NoDefense = Defense{Shield: Invalid, Cannon: Invalid}

// Outcome describes what an object did to the ship.
type Outcome struct {
	Hit       Coordinates     // Invalid when the object missed
	Defended  bool            // stopped by shield, cannon or a smooth side
	Destroyed bool            // the hit component was removed
	Parts     [][]Coordinates // ship parts after the removal
}

// lineIndex converts an object's printed line into the grid index it travels along.
func lineIndex(obj DangerousObject) int {
	if obj.From == North || obj.From == South {
		return obj.Line - ColOffset
	}
	return obj.Line - RowOffset
}

// OrderedComponentsInDirection lists the components on the object's line,
// starting from the edge the object comes from.
func (b *Board) OrderedComponentsInDirection(from Direction, line int) []Coordinates {
	obj := DangerousObject{From: from, Line: line}
	idx := lineIndex(obj)
	var cells []Coordinates
	switch from {
	case North:
		for r := 0; r < Rows; r++ {
			cells = append(cells, At(r, idx))
		}
	case South:
		for r := Rows - 1; r >= 0; r-- {
			cells = append(cells, At(r, idx))
		}
	case West:
		for col := 0; col < Cols; col++ {
			cells = append(cells, At(idx, col))
		}
	case East:
		for col := Cols - 1; col >= 0; col-- {
			cells = append(cells, At(idx, col))
		}
	}
	var out []Coordinates
	for _, c := range cells {
		if b.get(c) != nil {
			out = append(out, c)
		}
	}
	return out
}

// FirstComponentInDirection returns the component an object would hit.
func (b *Board) FirstComponentInDirection(from Direction, line int) (Coordinates, bool) {
	ordered := b.OrderedComponentsInDirection(from, line)
	if len(ordered) == 0 {
		return Invalid, false
	}
	return ordered[0], true
}

// HandleDangerousObject resolves obj against the ship using the committed defense.
func (b *Board) HandleDangerousObject(obj DangerousObject, def Defense) Outcome {
	hit, ok := b.FirstComponentInDirection(obj.From, obj.Line)
	if !ok {
		return Outcome{Hit: Invalid}
	}
	out := Outcome{Hit: hit}
	switch obj.Kind {
	case SmallMeteorite:
		out.Defended = b.get(hit).Connector(obj.From) == Empty || b.shieldUp(obj.From, def)
	case BigMeteorite:
		out.Defended = b.shotDown(obj, def)
	case LightShot:
		out.Defended = b.shieldUp(obj.From, def)
	}
	if out.Defended {
		return out
	}
	parts, err := b.Remove(hit)
	if err == nil {
		out.Destroyed = true
		out.Parts = parts
	}
	return out
}

// shieldUp activates the committed shield if it covers the side.
func (b *Board) shieldUp(from Direction, def Defense) bool {
	shield := b.get(def.Shield)
	if def.Shield.IsInvalid() || shield == nil || !shield.Covers(from) {
		return false
	}
	ok, _ := b.spendOne(def.Batteries)
	return ok
}

// shotDown looks for a cannon in line with a big meteorite. From the front only
// the cannons in the same column count; from the sides and the back the
// adjacent lines count too.
func (b *Board) shotDown(obj DangerousObject, def Defense) bool {
	idx := lineIndex(obj)
	inLine := func(c Coordinates) bool {
		comp := b.get(c)
		if comp == nil || !comp.IsCannon() || comp.Facing() != obj.From {
			return false
		}
		pos := c.Col
		if obj.From == East || obj.From == West {
			pos = c.Row
		}
		if obj.From == North {
			return pos == idx
		}
		return pos >= idx-1 && pos <= idx+1
	}
	for _, c := range b.Find((*Component).IsCannon) {
		if inLine(c) && !b.get(c).IsDouble() {
			return true
		}
	}
	if def.Cannon.IsInvalid() || !inLine(def.Cannon) || !b.get(def.Cannon).IsDouble() {
		return false
	}
	ok, _ := b.spendOne(def.Batteries)
	return ok
}
