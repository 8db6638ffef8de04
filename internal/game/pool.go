/*
Package game
File: pool.go
Description:
    The component pool of the building phase: a face-down pile players draw
    from blindly, and the face-up components that were released and can be
    picked by id.
*/

package game

import (
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/everforgeworks/galaxy-haulers/internal/ship"
)

var (
	ErrPoolEmpty = errors.New("no face-down component left")
	ErrNotInPool = errors.New("component is not face up")
)

type Pool struct {
	hidden  []*ship.Component
	visible []*ship.Component
}

// NewPool shuffles the components face down.
func NewPool(components []*ship.Component, rng *rand.Rand) *Pool {
	hidden := append([]*ship.Component(nil), components...)
	rng.Shuffle(len(hidden), func(i, j int) { hidden[i], hidden[j] = hidden[j], hidden[i] })
	return &Pool{hidden: hidden}
}

// DrawHidden takes the top face-down component.
func (p *Pool) DrawHidden() (*ship.Component, error) {
	if len(p.hidden) == 0 {
		return nil, ErrPoolEmpty
	}
	comp := p.hidden[len(p.hidden)-1]
	p.hidden = p.hidden[:len(p.hidden)-1]
	return comp, nil
}

// TakeVisible picks a face-up component by id.
func (p *Pool) TakeVisible(id int) (*ship.Component, error) {
	for i, comp := range p.visible {
		if comp.ID == id {
			p.visible = append(p.visible[:i], p.visible[i+1:]...)
			return comp, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrNotInPool, id)
}

// Release puts a component face up.
func (p *Pool) Release(comp *ship.Component) {
	comp.SetRotation(0)
	p.visible = append(p.visible, comp)
}

func (p *Pool) Hidden() int { return len(p.hidden) }

// Visible projects the face-up components.
func (p *Pool) Visible() []ship.CellView {
	out := make([]ship.CellView, 0, len(p.visible))
	for _, comp := range p.visible {
		out = append(out, ship.ViewOf(comp))
	}
	return out
}
