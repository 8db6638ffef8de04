/*
Package ship
File: view.go
Description:
    Read-only projection of a ship for notifications and API snapshots.
*/

package ship

// CellView describes one placed component.
type CellView struct {
	Coordinates Coordinates `json:"coordinates"`
	ID          int         `json:"id"`
	Kind        string      `json:"kind"`
	Connectors  [4]string   `json:"connectors"` // world connectors N, E, S, W
	Rotation    int         `json:"rotation"`
	Charge      int         `json:"charge,omitempty"`
	Cubes       []string    `json:"cubes,omitempty"`
	Humans      int         `json:"humans,omitempty"`
	Alien       string      `json:"alien,omitempty"`
}

// View is a snapshot of a ship.
type View struct {
	Level     int             `json:"level"`
	Cells     []CellView      `json:"cells"`
	Focused   *CellView       `json:"focused,omitempty"`
	Booked    []CellView      `json:"booked"`
	Incorrect []Coordinates   `json:"incorrect"`
	Parts     [][]Coordinates `json:"parts,omitempty"`
	Lost      int             `json:"lost"`
	Exposed   int             `json:"exposed"`
	Crew      int             `json:"crew"`
	Batteries int             `json:"batteries"`
}

func cellView(c Coordinates, comp *Component) CellView {
	v := CellView{
		Coordinates: c,
		ID:          comp.ID,
		Kind:        comp.Kind.String(),
		Rotation:    comp.Rotation(),
		Charge:      comp.Charge,
		Humans:      comp.Humans,
	}
	for _, d := range Directions {
		v.Connectors[d] = comp.Connector(d).String()
	}
	for _, cube := range comp.Cubes {
		v.Cubes = append(v.Cubes, cube.String())
	}
	if comp.Alien != NoAlien {
		v.Alien = comp.Alien.String()
	}
	if comp.Kind == KindLifeSupport {
		v.Alien = comp.Color.String()
	}
	return v
}

// View projects the ship.
func (b *Board) View() View {
	v := View{
		Level:     b.level,
		Incorrect: b.Incorrect(),
		Parts:     b.parts,
		Lost:      b.Lost(),
		Exposed:   b.Exposed(),
		Crew:      b.CrewCount(),
		Batteries: b.BatteryCharge(),
	}
	for _, c := range b.Occupied() {
		v.Cells = append(v.Cells, cellView(c, b.get(c)))
	}
	if b.focused != nil {
		f := cellView(Invalid, b.focused)
		v.Focused = &f
	}
	for _, comp := range b.booked {
		v.Booked = append(v.Booked, cellView(Invalid, comp))
	}
	return v
}

// ViewOf projects a component that is not on a ship, e.g. one in the pool.
func ViewOf(comp *Component) CellView {
	return cellView(Invalid, comp)
}
