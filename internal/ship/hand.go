/*
Package ship
File: hand.go
Description:
    Building-phase helpers: the component currently held by the player and
    the components booked (set aside) for later.
*/

package ship

// Focus puts comp in the player's hand.
func (b *Board) Focus(comp *Component) error {
	if b.focused != nil {
		return ErrHandsFull
	}
	b.focused = comp
	return nil
}

// Focused returns the component in hand, or nil.
func (b *Board) Focused() *Component {
	return b.focused
}

// Release empties the hand and returns what was held.
func (b *Board) Release() (*Component, error) {
	if b.focused == nil {
		return nil, ErrNoFocusedComponent
	}
	comp := b.focused
	b.focused = nil
	return comp, nil
}

// Book moves the component in hand to the booked slots.
func (b *Board) Book() error {
	if b.focused == nil {
		return ErrNoFocusedComponent
	}
	if len(b.booked) >= MaxBooked {
		return ErrTooManyBooked
	}
	b.booked = append(b.booked, b.focused)
	b.focused = nil
	return nil
}

// Booked returns the booked components.
func (b *Board) Booked() []*Component {
	return b.booked
}

// TakeBooked moves booked component i back into the hand.
func (b *Board) TakeBooked(i int) error {
	if b.focused != nil {
		return ErrHandsFull
	}
	if i < 0 || i >= len(b.booked) {
		return ErrNoSuchBooked
	}
	b.focused = b.booked[i]
	b.booked = append(b.booked[:i], b.booked[i+1:]...)
	return nil
}

// PlaceFocused places the component in hand.
func (b *Board) PlaceFocused(c Coordinates, rotation int) error {
	if b.focused == nil {
		return ErrNoFocusedComponent
	}
	if err := b.Place(c, b.focused, rotation); err != nil {
		return err
	}
	b.focused = nil
	return nil
}

// DiscardBooked ends building: booked components that were never placed are
// lost, and the held component (if any) is returned to the caller.
func (b *Board) DiscardBooked() *Component {
	b.lost = append(b.lost, b.booked...)
	b.booked = nil
	held := b.focused
	b.focused = nil
	return held
}
