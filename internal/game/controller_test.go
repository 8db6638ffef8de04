package game

import (
	"errors"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/everforgeworks/galaxy-haulers/internal/catalog"
	"github.com/everforgeworks/galaxy-haulers/internal/ship"
)

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) Notify(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) states() []GameState {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []GameState
	for _, e := range r.events {
		if e.Type == EventStateChanged {
			out = append(out, e.Payload.(GameState))
		}
	}
	return out
}

func newMatch(t *testing.T, level int, hourglass time.Duration, players ...string) (*Controller, *recorder) {
	t.Helper()
	cat, err := catalog.Default()
	if err != nil {
		t.Fatalf("default catalog: %v", err)
	}
	rec := &recorder{}
	c, err := NewController("m1", cat, Options{
		Level:     level,
		Players:   players,
		Hourglass: hourglass,
		Rand:      rand.New(rand.NewPCG(7, 7)),
		Notifier:  rec,
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	return c, rec
}

func playerView(t *testing.T, s Snapshot, nick string) PlayerView {
	t.Helper()
	for _, p := range s.Players {
		if p.Nickname == nick {
			return p
		}
	}
	t.Fatalf("no player %s in snapshot", nick)
	return PlayerView{}
}

func expectGameState(t *testing.T, c *Controller, want GameState) {
	t.Helper()
	if got := c.State(); got != want {
		t.Fatalf("state = %s, want %s", got, want)
	}
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("timed out waiting for %s", what)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestNewControllerValidatesPlayers(t *testing.T) {
	cat, err := catalog.Default()
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name    string
		players []string
		want    error
	}{
		{"alone", []string{"ann"}, ErrNotEnoughPlayers},
		{"crowded", []string{"a", "b", "c", "d", "e"}, ErrNotEnoughPlayers},
		{"duplicate", []string{"ann", "ann"}, ErrDuplicatePlayer},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewController("m", cat, Options{Level: 2, Players: tt.players})
			if !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want %v", err, tt.want)
			}
		})
	}
	if _, err := NewController("m", cat, Options{Level: 7, Players: []string{"a", "b"}}); !errors.Is(err, catalog.ErrUnknownLevel) {
		t.Fatalf("level 7: err = %v", err)
	}
}

func TestIntentsOutOfPhaseAreIgnored(t *testing.T) {
	c, _ := newMatch(t, 2, time.Hour, "ann", "bob")

	if err := c.PickHidden("ann"); err != nil {
		t.Fatalf("pick before start: %v", err)
	}
	if s := c.Snapshot(); playerView(t, s, "ann").Ship.Focused != nil {
		t.Fatal("component picked before the match started")
	}

	c.Start()
	expectGameState(t, c, StateBuildShipboard)
	for _, intent := range []func() error{
		func() error { return c.DrawCard("ann") },
		func() error { return c.RemoveComponent("ann", ship.MainCabinPosition) },
		func() error { return c.PlaceCrew("ann", nil) },
		func() error { return c.ThrowDices("ann") },
		func() error { return c.ChooseCannons("ann", nil, nil) },
		func() error { return c.LandEarly("ann") },
	} {
		if err := intent(); err != nil {
			t.Fatalf("out of phase intent returned %v", err)
		}
	}
	expectGameState(t, c, StateBuildShipboard)

	if err := c.PickHidden("zed"); !errors.Is(err, ErrUnknownPlayer) {
		t.Fatalf("unknown player: err = %v", err)
	}
}

func TestBuildingHandsAndPool(t *testing.T) {
	c, _ := newMatch(t, 2, time.Hour, "ann", "bob")
	c.Start()
	hidden := c.Snapshot().Hidden

	if err := c.PickHidden("ann"); err != nil {
		t.Fatal(err)
	}
	if err := c.PickHidden("ann"); !errors.Is(err, ship.ErrHandsFull) {
		t.Fatalf("second pick: err = %v", err)
	}
	s := c.Snapshot()
	if s.Hidden != hidden-1 {
		t.Fatalf("hidden = %d, want %d", s.Hidden, hidden-1)
	}
	id := playerView(t, s, "ann").Ship.Focused.ID

	if err := c.Release("ann"); err != nil {
		t.Fatal(err)
	}
	if s := c.Snapshot(); len(s.Pool) != 1 || s.Pool[0].ID != id {
		t.Fatalf("face up pool = %+v", s.Pool)
	}
	if err := c.PickVisible("bob", id); err != nil {
		t.Fatal(err)
	}
	if err := c.PickVisible("ann", id); err == nil {
		t.Fatal("took a component already in another hand")
	}
	if err := c.Book("bob"); err != nil {
		t.Fatal(err)
	}
	if err := c.TakeBooked("bob", 0); err != nil {
		t.Fatal(err)
	}
	if err := c.Place("bob", ship.MainCabinPosition, 0); !errors.Is(err, ship.ErrCellOccupied) {
		t.Fatalf("place on main cabin: err = %v", err)
	}

	if cards, err := c.LittleDeck("ann", 0); err != nil || len(cards) != 3 {
		t.Fatalf("little deck 0 = %d cards, %v", len(cards), err)
	}
	if cards, _ := c.LittleDeck("ann", 3); cards != nil {
		t.Fatal("the fourth little deck is hidden")
	}
}

func TestFinishingOrderGivesStartingSlots(t *testing.T) {
	c, rec := newMatch(t, 2, time.Hour, "ann", "bob", "cat")
	c.Start()

	// bob holds a component when finishing: it goes back face up.
	if err := c.PickHidden("bob"); err != nil {
		t.Fatal(err)
	}
	for _, nick := range []string{"bob", "cat", "ann"} {
		if err := c.FinishBuilding(nick); err != nil {
			t.Fatal(err)
		}
	}

	s := c.Snapshot()
	want := map[string]int{"bob": 6, "cat": 3, "ann": 1}
	for nick, pos := range want {
		v := playerView(t, s, nick)
		if v.Position == nil || *v.Position != pos {
			t.Fatalf("%s position = %v, want %d", nick, v.Position, pos)
		}
	}
	if len(s.Pool) != 1 {
		t.Fatalf("face up pool = %d, want the released component", len(s.Pool))
	}

	// Bare ships pass the check, level 2 waits for crew.
	expectGameState(t, c, StatePlaceCrew)
	states := rec.states()
	if len(states) != 3 || states[1] != StateCheckShipboard {
		t.Fatalf("states = %v", states)
	}
}

func TestCheckShipboardWaitsForFixes(t *testing.T) {
	c, _ := newMatch(t, 2, time.Hour, "ann", "bob")
	c.Start()

	stray := ship.At(0, 2)
	if err := c.PickHidden("ann"); err != nil {
		t.Fatal(err)
	}
	if err := c.Place("ann", stray, 0); err != nil {
		t.Fatal(err)
	}
	_ = c.FinishBuilding("ann")
	_ = c.FinishBuilding("bob")
	expectGameState(t, c, StateCheckShipboard)

	if err := c.RemoveComponent("bob", ship.MainCabinPosition); err != nil {
		t.Fatalf("remove on a correct ship: %v", err)
	}
	if n := len(playerView(t, c.Snapshot(), "bob").Ship.Cells); n != 1 {
		t.Fatal("a correct ship was changed")
	}

	if err := c.RemoveComponent("ann", ship.MainCabinPosition); !errors.Is(err, ship.ErrMainCabin) {
		t.Fatalf("remove main cabin: err = %v", err)
	}
	if v := playerView(t, c.Snapshot(), "ann").Ship; len(v.Cells) != 2 || v.Lost != 0 {
		t.Fatalf("ship changed by a rejected removal: %d cells, %d lost", len(v.Cells), v.Lost)
	}
	expectGameState(t, c, StateCheckShipboard)

	if err := c.RemoveComponent("ann", stray); err != nil {
		t.Fatal(err)
	}
	expectGameState(t, c, StatePlaceCrew)
	if lost := playerView(t, c.Snapshot(), "ann").Ship.Lost; lost != 1 {
		t.Fatalf("lost = %d, want 1", lost)
	}
}

func TestCrewThenLandingEndsTheGame(t *testing.T) {
	c, rec := newMatch(t, 2, time.Hour, "ann", "bob")
	c.Start()
	_ = c.FinishBuilding("ann")
	_ = c.FinishBuilding("bob")

	if err := c.PlaceCrew("ann", map[ship.Coordinates]ship.AlienColor{ship.MainCabinPosition: ship.Purple}); !errors.Is(err, ship.ErrNotACabin) {
		t.Fatalf("alien in the main cabin: err = %v", err)
	}
	for _, nick := range []string{"ann", "bob"} {
		if err := c.PlaceCrew(nick, nil); err != nil {
			t.Fatal(err)
		}
	}
	expectGameState(t, c, StateDrawCard)
	if crew := playerView(t, c.Snapshot(), "bob").Ship.Crew; crew != 2 {
		t.Fatalf("crew = %d, want 2", crew)
	}

	// Only the leader draws.
	if err := c.DrawCard("bob"); err != nil {
		t.Fatal(err)
	}
	expectGameState(t, c, StateDrawCard)

	if err := c.LandEarly("ann"); err != nil {
		t.Fatal(err)
	}
	expectGameState(t, c, StateDrawCard)
	if err := c.LandEarly("bob"); err != nil {
		t.Fatal(err)
	}
	expectGameState(t, c, StateEndGame)

	s := c.Snapshot()
	if len(s.Scores) != 2 {
		t.Fatalf("scores = %+v", s.Scores)
	}
	if !playerView(t, s, "ann").EarlyLanded {
		t.Fatal("ann should have landed")
	}
	rec.mu.Lock()
	last := rec.events[len(rec.events)-1]
	rec.mu.Unlock()
	if last.Type != EventGameEnded {
		t.Fatalf("last event = %s, want %s", last.Type, EventGameEnded)
	}
}

func TestDisconnectedPlayersAreAutoPlayedToTheEnd(t *testing.T) {
	c, rec := newMatch(t, 1, time.Hour, "ann", "bob")
	c.Start()

	if err := c.Disconnect("ann"); err != nil {
		t.Fatal(err)
	}
	expectGameState(t, c, StateBuildShipboard)
	if playerView(t, c.Snapshot(), "ann").Position == nil {
		t.Fatal("a disconnected builder keeps the ship as it stands")
	}

	if err := c.Disconnect("bob"); err != nil {
		t.Fatal(err)
	}
	expectGameState(t, c, StateEndGame)

	sawCard := false
	for _, s := range rec.states() {
		if s == StatePlayCard {
			sawCard = true
		}
	}
	if !sawCard {
		t.Fatal("no card was played")
	}
	if n := len(c.Snapshot().Scores); n != 2 {
		t.Fatalf("scores = %d, want 2", n)
	}
}

func TestReconnectedPlayerIsAskedAgain(t *testing.T) {
	c, _ := newMatch(t, 2, time.Hour, "ann", "bob")
	c.Start()
	_ = c.Disconnect("ann")
	_ = c.Reconnect("ann")
	_ = c.FinishBuilding("bob")

	expectGameState(t, c, StatePlaceCrew)
	_ = c.PlaceCrew("bob", nil)
	// ann is back, so the match waits for their crew.
	expectGameState(t, c, StatePlaceCrew)
	if playerView(t, c.Snapshot(), "ann").Disconnected {
		t.Fatal("ann still marked disconnected")
	}
}

func TestLastHourglassRunEndsBuilding(t *testing.T) {
	c, _ := newMatch(t, 1, 20*time.Millisecond, "ann", "bob")
	c.Start()

	waitFor(t, "first run", func() bool { return !c.Snapshot().Hourglass.Running })
	expectGameState(t, c, StateBuildShipboard)

	// The last flip belongs to players who are done.
	_ = c.FlipHourglass("bob")
	if c.Snapshot().Hourglass.Running {
		t.Fatal("unfinished player flipped the last run")
	}
	_ = c.FinishBuilding("ann")
	_ = c.FlipHourglass("ann")
	if h := c.Snapshot().Hourglass; h.FlipsLeft != 0 {
		t.Fatalf("hourglass = %+v", h)
	}

	waitFor(t, "building to end", func() bool { return c.State() != StateBuildShipboard })
	s := c.Snapshot()
	if v := playerView(t, s, "bob"); v.Position == nil || *v.Position != 2 {
		t.Fatalf("bob position = %v, want the second slot", v.Position)
	}
	// Level 1 crew is automatic.
	expectGameState(t, c, StateDrawCard)
}
