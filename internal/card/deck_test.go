package card

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func cardsOfLevel(level, n int) []Card {
	var out []Card
	for range n {
		out = append(out, NewFreeSpace(level))
	}
	return out
}

func TestBuildStandardFlightDeck(t *testing.T) {
	cards := append(cardsOfLevel(2, 10), cardsOfLevel(1, 6)...)
	d, err := BuildFlightDeck(2, cards, rand.New(rand.NewPCG(1, 1)))
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != LittleDecks*3 {
		t.Fatalf("deck size = %d, want %d", d.Len(), LittleDecks*3)
	}
	if d.LittleDecks() != LittleDecks {
		t.Fatalf("little decks = %d", d.LittleDecks())
	}
	for i := range ViewableLittleDecks {
		little, ok := d.LittleDeck(i)
		if !ok || len(little) != 3 {
			t.Fatalf("little deck %d = %v", i, little)
		}
		levels := map[int]int{}
		for _, c := range little {
			levels[c.Level()]++
		}
		if levels[2] != 2 || levels[1] != 1 {
			t.Fatalf("little deck %d levels = %v", i, levels)
		}
	}
	if _, ok := d.LittleDeck(3); ok {
		t.Fatal("the last little deck is hidden")
	}

	drawn := 0
	for {
		if _, ok := d.Draw(); !ok {
			break
		}
		drawn++
	}
	if drawn != 12 {
		t.Fatalf("drawn = %d, want 12", drawn)
	}
}

func TestBuildTestFlightDeck(t *testing.T) {
	d, err := BuildFlightDeck(1, cardsOfLevel(1, 10), rand.New(rand.NewPCG(2, 2)))
	if err != nil {
		t.Fatal(err)
	}
	if d.Len() != TestFlightCards || d.LittleDecks() != 0 {
		t.Fatalf("deck size = %d little = %d", d.Len(), d.LittleDecks())
	}
}

func TestBuildFlightDeckTooSmall(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 3))
	if _, err := BuildFlightDeck(2, cardsOfLevel(2, 8), rng); !errors.Is(err, ErrDeckTooSmall) {
		t.Fatalf("err = %v, want ErrDeckTooSmall", err)
	}
	if _, err := BuildFlightDeck(1, cardsOfLevel(1, 7), rng); !errors.Is(err, ErrDeckTooSmall) {
		t.Fatalf("err = %v, want ErrDeckTooSmall", err)
	}
}
