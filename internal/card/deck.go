/*
Package card
File: deck.go
Description:
    The flight deck. A standard flight is assembled from four little decks
    of three cards (two level 2, one level 1); the first three can be looked
    at while building, the fourth stays hidden. A test flight plays eight
    level 1 cards and has no little decks.
*/

package card

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

var ErrDeckTooSmall = errors.New("not enough cards for the flight deck")

const (
	LittleDecks         = 4
	ViewableLittleDecks = 3
	TestFlightCards     = 8
)

// Deck is the face-down pile cards are drawn from.
type Deck struct {
	cards  []Card
	little [][]Card
}

func (d *Deck) Len() int { return len(d.cards) }

// Draw pops the top card.
func (d *Deck) Draw() (Card, bool) {
	if len(d.cards) == 0 {
		return nil, false
	}
	top := d.cards[0]
	d.cards = d.cards[1:]
	return top, true
}

// LittleDeck returns a viewable little deck. Hidden or unknown decks are not returned.
func (d *Deck) LittleDeck(i int) ([]Card, bool) {
	if i < 0 || i >= len(d.little) || i >= ViewableLittleDecks {
		return nil, false
	}
	return d.little[i], true
}

// LittleDecks is the number of little decks the deck was built from.
func (d *Deck) LittleDecks() int { return len(d.little) }

// BuildFlightDeck picks the cards of one flight from the catalog cards.
func BuildFlightDeck(level int, cards []Card, rng *rand.Rand) (*Deck, error) {
	byLevel := map[int][]Card{}
	for _, c := range cards {
		byLevel[c.Level()] = append(byLevel[c.Level()], c)
	}
	for _, pile := range byLevel {
		rng.Shuffle(len(pile), func(i, j int) { pile[i], pile[j] = pile[j], pile[i] })
	}

	d := &Deck{}
	if level <= 1 {
		if len(byLevel[1]) < TestFlightCards {
			return nil, fmt.Errorf("%w: %d level 1 cards", ErrDeckTooSmall, len(byLevel[1]))
		}
		d.cards = append(d.cards, byLevel[1][:TestFlightCards]...)
		return d, nil
	}

	if len(byLevel[2]) < 2*LittleDecks || len(byLevel[1]) < LittleDecks {
		return nil, fmt.Errorf("%w: %d level 2 and %d level 1 cards",
			ErrDeckTooSmall, len(byLevel[2]), len(byLevel[1]))
	}
	for i := range LittleDecks {
		little := []Card{byLevel[2][2*i], byLevel[2][2*i+1], byLevel[1][i]}
		d.little = append(d.little, little)
		d.cards = append(d.cards, little...)
	}
	rng.Shuffle(len(d.cards), func(i, j int) { d.cards[i], d.cards[j] = d.cards[j], d.cards[i] })
	return d, nil
}
