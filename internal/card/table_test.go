package card

import (
	"testing"

	"go.uber.org/zap"

	"github.com/everforgeworks/galaxy-haulers/internal/flight"
	"github.com/everforgeworks/galaxy-haulers/internal/ship"
)

type fakeTable struct {
	fb      *flight.Board
	q       Queue
	dice    [][2]int
	attacks []ship.DangerousObject
}

func (t *fakeTable) Flight() *flight.Board { return t.fb }
func (t *fakeTable) Queue() *Queue         { return &t.q }
func (t *fakeTable) Logger() *zap.Logger   { return zap.NewNop() }

func (t *fakeTable) RollDice() (int, int) {
	if len(t.dice) == 0 {
		return 3, 4
	}
	d := t.dice[0]
	t.dice = t.dice[1:]
	return d[0], d[1]
}

func (t *fakeTable) Attack(obj ship.DangerousObject) {
	t.attacks = append(t.attacks, obj)
}

var startSlots = []int{6, 3, 1, 0}

// newTable puts the players on a standard track, first player in the lead.
func newTable(t *testing.T, players ...*flight.Player) *fakeTable {
	t.Helper()
	fb := flight.NewBoard(flight.StandardTrack)
	for i, p := range players {
		if err := fb.Insert(p, startSlots[i]); err != nil {
			t.Fatalf("insert %s: %v", p, err)
		}
	}
	return &fakeTable{fb: fb}
}

func conn(n, e, s, w ship.Connector) [4]ship.Connector {
	return [4]ship.Connector{n, e, s, w}
}

func mustPlace(t *testing.T, b *ship.Board, c ship.Coordinates, comp *ship.Component) {
	t.Helper()
	if err := b.Place(c, comp, 0); err != nil {
		t.Fatalf("place %s at %s: %v", comp, c, err)
	}
}

// Grid cells of the fighter.
var (
	doubleCannon = ship.At(2, 4)
	battery      = ship.At(3, 3)
	hold         = ship.At(2, 2)
)

// plain returns a player whose ship is the bare main cabin with two humans:
// no firepower, no engine power, four exposed connectors.
func plain(t *testing.T, nickname string) *flight.Player {
	t.Helper()
	p := flight.NewPlayer(nickname, "blue", 2)
	if err := p.Ship.PlaceCrew(nil); err != nil {
		t.Fatal(err)
	}
	return p
}

// fighter returns a player with firepower 1 (3 with the double cannon on),
// engine power 1, a special hold of three slots and two battery charges.
func fighter(t *testing.T, nickname string) *flight.Player {
	t.Helper()
	p := flight.NewPlayer(nickname, "red", 2)
	b := p.Ship
	mustPlace(t, b, ship.At(1, 3), ship.NewComponent(1, ship.KindCannon, conn(ship.Empty, ship.Empty, ship.Universal, ship.Empty), 0))
	mustPlace(t, b, doubleCannon, ship.NewComponent(2, ship.KindDoubleCannon, conn(ship.Empty, ship.Empty, ship.Empty, ship.Universal), 0))
	mustPlace(t, b, battery, ship.NewComponent(3, ship.KindBatteryBox, conn(ship.Universal, ship.Universal, ship.Empty, ship.Empty), 2))
	mustPlace(t, b, ship.At(3, 4), ship.NewComponent(4, ship.KindEngine, conn(ship.Empty, ship.Empty, ship.Empty, ship.Universal), 0))
	mustPlace(t, b, hold, ship.NewComponent(5, ship.KindSpecialStorage, conn(ship.Empty, ship.Universal, ship.Empty, ship.Empty), 3))
	if !b.IsShipCorrect() {
		t.Fatalf("fighter should be correct, incorrect = %v", b.Incorrect())
	}
	if err := b.PlaceCrew(nil); err != nil {
		t.Fatal(err)
	}
	return p
}

var fullPower = NewChoices().DoubleCannons(doubleCannon).Batteries(battery).Build()

func mustPlay(t *testing.T, c Card, ch Choices) {
	t.Helper()
	if err := c.Play(ch); err != nil {
		t.Fatalf("%s in %s: %v", c.Kind(), c.State(), err)
	}
}

func expectState(t *testing.T, c Card, want State) {
	t.Helper()
	if got := c.State(); got != want {
		t.Fatalf("%s state = %s, want %s", c.Kind(), got, want)
	}
}

func expectCurrent(t *testing.T, tb *fakeTable, want *flight.Player) {
	t.Helper()
	if got := tb.q.Current(); got != want {
		t.Fatalf("current player = %v, want %v", got, want)
	}
}

func position(t *testing.T, tb *fakeTable, p *flight.Player) int {
	t.Helper()
	pos, err := tb.fb.Position(p)
	if err != nil {
		t.Fatal(err)
	}
	return pos
}
