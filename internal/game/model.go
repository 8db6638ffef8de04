/*
Package game
File: model.go
Description:
    The GameModel: every piece of state of one match and the phase machine
    that moves it forward. Model methods assume the caller (the Controller)
    holds the match lock.

    After every accepted intent the model "settles": it keeps applying the
    steps that need nobody's decision, such as automatic card states or the
    turns of disconnected players, until it waits for a connected player.
*/

package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"

	"github.com/everforgeworks/galaxy-haulers/internal/card"
	"github.com/everforgeworks/galaxy-haulers/internal/catalog"
	"github.com/everforgeworks/galaxy-haulers/internal/flight"
	"github.com/everforgeworks/galaxy-haulers/internal/ship"
)

const (
	MinPlayers = 2
	MaxPlayers = 4
)

var (
	ErrUnknownPlayer    = errors.New("unknown player")
	ErrDuplicatePlayer  = errors.New("nickname already taken")
	ErrNotEnoughPlayers = errors.New("a match needs 2 to 4 players")
)

// Colors are handed out in joining order.
var Colors = []string{"red", "blue", "green", "yellow"}

// Options configures a new match.
type Options struct {
	Level     int
	Players   []string
	Hourglass time.Duration // overrides the catalog when > 0
	Rand      *rand.Rand
	Notifier  Notifier
	Logger    *zap.Logger
}

type Model struct {
	id        string
	level     int
	rules     catalog.Flight
	state     GameState
	players   []*flight.Player
	finished  map[*flight.Player]bool
	crewed    map[*flight.Player]bool
	flying    *flight.Board
	pool      *Pool
	deck      *card.Deck
	card      card.Card
	queue     card.Queue
	attack    *ship.DangerousObject
	flipsLeft int
	hourglass *Hourglass
	scores    []flight.Score
	rng       *rand.Rand
	notifier  Notifier
	log       *zap.Logger
}

func newModel(id string, cat *catalog.Catalog, opts Options) (*Model, error) {
	if len(opts.Players) < MinPlayers || len(opts.Players) > MaxPlayers {
		return nil, fmt.Errorf("%w: got %d", ErrNotEnoughPlayers, len(opts.Players))
	}
	rules, err := cat.Flight(opts.Level)
	if err != nil {
		return nil, err
	}
	if opts.Hourglass > 0 {
		rules.Hourglass = opts.Hourglass
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	components, err := cat.Components()
	if err != nil {
		return nil, err
	}
	cards, err := cat.AdventureCards()
	if err != nil {
		return nil, err
	}
	deck, err := card.BuildFlightDeck(opts.Level, cards, rng)
	if err != nil {
		return nil, err
	}

	m := &Model{
		id:       id,
		level:    opts.Level,
		rules:    rules,
		finished: make(map[*flight.Player]bool),
		crewed:   make(map[*flight.Player]bool),
		flying:   flight.NewBoard(rules.Track),
		pool:     NewPool(components, rng),
		deck:     deck,
		rng:      rng,
		notifier: opts.Notifier,
		log:      opts.Logger,
	}
	if m.notifier == nil {
		m.notifier = nopNotifier{}
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	m.log = m.log.With(zap.String("match", id))

	seen := make(map[string]bool)
	for i, nick := range opts.Players {
		if seen[nick] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlayer, nick)
		}
		seen[nick] = true
		m.players = append(m.players, flight.NewPlayer(nick, Colors[i], opts.Level))
	}
	return m, nil
}

// --- card.Table ---

var _ card.Table = (*Model)(nil)

func (m *Model) Flight() *flight.Board { return m.flying }
func (m *Model) Queue() *card.Queue    { return &m.queue }
func (m *Model) Logger() *zap.Logger   { return m.log }

func (m *Model) RollDice() (int, int) {
	return m.rng.IntN(6) + 1, m.rng.IntN(6) + 1
}

func (m *Model) Attack(obj ship.DangerousObject) {
	m.attack = &obj
	m.notify(EventDangerousObject, "", obj)
}

// --- helpers ---

func (m *Model) player(nick string) (*flight.Player, error) {
	for _, p := range m.players {
		if p.Nickname == nick {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownPlayer, nick)
}

func (m *Model) notify(t EventType, player string, payload any) {
	m.notifier.Notify(Event{Match: m.id, Type: t, Player: player, Payload: payload})
}

func (m *Model) notifyShip(p *flight.Player) {
	m.notify(EventShipboardUpdated, p.Nickname, p.Ship.View())
}

func (m *Model) notifyRanking() {
	m.notify(EventRankingUpdated, "", m.flying.Standings())
}

func (m *Model) notifyHourglass() {
	m.notify(EventHourglass, "", m.hourglassView())
}

func (m *Model) setState(s GameState) {
	m.state = s
	m.log.Info("game state changed", zap.Stringer("state", s))
	m.notify(EventStateChanged, "", s)
}

// ignored logs an intent that is not allowed right now.
func (m *Model) ignored(nick, intent string) {
	m.log.Debug("intent ignored",
		zap.String("player", nick),
		zap.String("intent", intent),
		zap.Stringer("state", m.state))
}

func (m *Model) hourglassView() HourglassView {
	v := HourglassView{FlipsLeft: m.flipsLeft}
	if m.hourglass != nil {
		v.Running = m.hourglass.Running()
		v.Remaining = m.hourglass.Remaining()
	}
	return v
}

// --- building ---

func (m *Model) start() {
	m.flipsLeft = max(m.rules.HourglassFlips-1, 0)
	m.setState(StateBuildShipboard)
	m.hourglass.Start()
	m.notifyHourglass()
}

func (m *Model) pickHidden(p *flight.Player) error {
	if p.Ship.Focused() != nil {
		return ship.ErrHandsFull
	}
	comp, err := m.pool.DrawHidden()
	if err != nil {
		return err
	}
	_ = p.Ship.Focus(comp)
	m.notifyShip(p)
	return nil
}

func (m *Model) pickVisible(p *flight.Player, id int) error {
	if p.Ship.Focused() != nil {
		return ship.ErrHandsFull
	}
	comp, err := m.pool.TakeVisible(id)
	if err != nil {
		return err
	}
	_ = p.Ship.Focus(comp)
	m.notifyShip(p)
	m.notify(EventPoolUpdated, "", m.pool.Visible())
	return nil
}

func (m *Model) release(p *flight.Player) error {
	comp, err := p.Ship.Release()
	if err != nil {
		return err
	}
	m.pool.Release(comp)
	m.notifyShip(p)
	m.notify(EventPoolUpdated, "", m.pool.Visible())
	return nil
}

// finish ends building for p: booked components are lost, the one in hand
// goes back face up and p takes the next starting slot.
func (m *Model) finish(p *flight.Player) error {
	if m.finished[p] {
		return nil
	}
	pos, err := m.flying.NextStartPosition()
	if err != nil {
		return err
	}
	if err := m.flying.Insert(p, pos); err != nil {
		return err
	}
	if held := p.Ship.DiscardBooked(); held != nil {
		m.pool.Release(held)
		m.notify(EventPoolUpdated, "", m.pool.Visible())
	}
	m.finished[p] = true
	m.log.Info("player finished building", zap.String("player", p.Nickname), zap.Int("position", pos))
	m.notifyShip(p)
	m.notifyRanking()
	return nil
}

func (m *Model) finishBuilding(p *flight.Player) error {
	if err := m.finish(p); err != nil {
		return err
	}
	if len(m.finished) == len(m.players) {
		m.endBuilding()
	}
	return nil
}

// flipHourglass starts another run. The last run can only be started by a
// player who already finished building.
func (m *Model) flipHourglass(p *flight.Player) {
	if m.hourglass.Running() || m.flipsLeft == 0 || (m.flipsLeft == 1 && !m.finished[p]) {
		m.ignored(p.Nickname, "flip hourglass")
		return
	}
	m.flipsLeft--
	m.hourglass.Start()
	m.notifyHourglass()
}

func (m *Model) hourglassExpired() {
	if m.state != StateBuildShipboard {
		return
	}
	m.notifyHourglass()
	if m.flipsLeft == 0 {
		m.log.Info("hourglass ran out")
		m.endBuilding()
	}
}

func (m *Model) endBuilding() {
	m.hourglass.Stop()
	for _, p := range m.players {
		if err := m.finish(p); err != nil {
			m.log.Warn("could not place player on the flying board", zap.String("player", p.Nickname), zap.Error(err))
		}
	}
	m.setState(StateCheckShipboard)
	m.settle()
}

// --- checking and crew ---

func shipReady(p *flight.Player) bool {
	return p.Ship.IsShipCorrect() && len(p.Ship.Parts()) == 0
}

func (m *Model) removeComponent(p *flight.Player, c ship.Coordinates) error {
	if shipReady(p) || len(p.Ship.Parts()) > 0 {
		m.ignored(p.Nickname, "remove component")
		return nil
	}
	if _, err := p.Ship.Dismantle(c); err != nil {
		return err
	}
	m.notifyShip(p)
	m.settle()
	return nil
}

func (m *Model) keepPart(p *flight.Player, c ship.Coordinates) error {
	if err := p.Ship.KeepPart(c); err != nil {
		return err
	}
	m.notifyShip(p)
	m.settle()
	return nil
}

// autoFix makes the ship of a disconnected player correct by dropping every
// incorrect component.
func (m *Model) autoFix(p *flight.Player) {
	for !shipReady(p) {
		p.Ship.KeepDefaultPart()
		removed := false
		for _, c := range p.Ship.Incorrect() {
			if _, err := p.Ship.Dismantle(c); err == nil {
				removed = true
				break
			}
		}
		if !removed && len(p.Ship.Parts()) == 0 {
			break
		}
	}
	m.notifyShip(p)
}

func (m *Model) enterPlaceCrew() {
	m.setState(StatePlaceCrew)
	if m.level > 1 {
		return
	}
	// No aliens on a test flight: everybody gets humans.
	for _, p := range m.players {
		_ = m.placeCrew(p, nil)
	}
}

func (m *Model) placeCrew(p *flight.Player, aliens map[ship.Coordinates]ship.AlienColor) error {
	if m.crewed[p] {
		m.ignored(p.Nickname, "place crew")
		return nil
	}
	if err := p.Ship.PlaceCrew(aliens); err != nil {
		return err
	}
	m.crewed[p] = true
	m.notifyShip(p)
	return nil
}

// --- cards ---

func (m *Model) drawCard(p *flight.Player) {
	if m.flying.Leader() != p {
		m.ignored(p.Nickname, "draw card")
		return
	}
	c, ok := m.deck.Draw()
	if !ok {
		m.endGame()
		return
	}
	m.card, m.attack = c, nil
	m.setState(StatePlayCard)
	c.Start(m)
	m.log.Info("card drawn", zap.Stringer("card", c.Kind()), zap.Int("level", c.Level()))
	m.notify(EventCardDrawn, p.Nickname, c.Client())
	m.settle()
}

func (m *Model) landEarly(p *flight.Player) error {
	if err := m.flying.LandEarly(p, true); err != nil {
		return err
	}
	m.log.Info("player landed early", zap.String("player", p.Nickname))
	m.notify(EventPlayerLanded, p.Nickname, LandingView{Voluntary: true})
	m.notifyRanking()
	m.settle()
	return nil
}

// play feeds one decision to the current card if p is the player it waits
// for in state want.
func (m *Model) play(p *flight.Player, want card.State, ch card.Choices) error {
	if m.card == nil || m.card.State() != want || m.queue.Current() != p {
		m.ignored(p.Nickname, want.String())
		return nil
	}
	if err := m.apply(ch); err != nil {
		return err
	}
	m.settle()
	return nil
}

func (m *Model) apply(ch card.Choices) error {
	p := m.queue.Current()
	if err := m.card.Play(ch); err != nil {
		return err
	}
	if p != nil {
		m.notifyShip(p)
	}
	m.notifyRanking()
	m.notify(EventCardUpdated, "", m.card.Client())
	return nil
}

func (m *Model) afterCard() {
	m.card, m.attack = nil, nil
	m.setState(StateCheckPlayers)
	for _, e := range m.flying.CheckEliminations() {
		m.log.Info("player forced to land", zap.String("player", e.Player.Nickname))
		m.notify(EventPlayerLanded, e.Player.Nickname, LandingView{Voluntary: false})
	}
	m.notifyRanking()
	if len(m.flying.Ranking()) == 0 || m.deck.Len() == 0 {
		m.endGame()
		return
	}
	m.setState(StateDrawCard)
}

func (m *Model) endGame() {
	if m.hourglass != nil {
		m.hourglass.Stop()
	}
	m.scores = m.flying.CalculatePlayersCredits()
	m.setState(StateEndGame)
	m.notify(EventGameEnded, "", m.scores)
}

// --- settling ---

func (m *Model) settle() {
	for m.step() {
	}
}

// step applies one automatic transition and reports whether it did anything.
func (m *Model) step() bool {
	switch m.state {
	case StateCheckShipboard:
		ready := true
		for _, p := range m.players {
			if !shipReady(p) && p.Disconnected {
				m.autoFix(p)
			}
			ready = ready && shipReady(p)
		}
		if ready {
			m.enterPlaceCrew()
			return true
		}

	case StatePlaceCrew:
		for _, p := range m.players {
			if !m.crewed[p] && p.Disconnected {
				_ = m.placeCrew(p, nil)
			}
		}
		if len(m.crewed) == len(m.players) {
			m.setState(StateDrawCard)
			return true
		}

	case StateDrawCard:
		leader := m.flying.Leader()
		if leader == nil || m.deck.Len() == 0 {
			m.endGame()
			return true
		}
		if leader.Disconnected {
			m.drawCard(leader)
			return true
		}

	case StatePlayCard:
		if m.card.State() == card.StateEndOfCard {
			m.afterCard()
			return true
		}
		cur := m.queue.Current()
		if cur == nil {
			m.log.Warn("card waits for nobody", zap.Stringer("card", m.card.Kind()), zap.Stringer("state", m.card.State()))
			return false
		}
		if m.card.State().Automatic() || cur.Disconnected {
			if err := m.apply(card.Skip); err != nil {
				m.log.Warn("automatic play failed", zap.Error(err))
				return false
			}
			return true
		}
	}
	return false
}

// --- snapshot ---

func (m *Model) snapshot() Snapshot {
	s := Snapshot{
		Match:     m.id,
		Level:     m.level,
		State:     m.state,
		Pool:      m.pool.Visible(),
		Hidden:    m.pool.Hidden(),
		Hourglass: m.hourglassView(),
		Attack:    m.attack,
		Cards:     m.deck.Len(),
		Standings: m.flying.Standings(),
		Scores:    m.scores,
	}
	for _, p := range m.players {
		v := PlayerView{
			Nickname:     p.Nickname,
			Color:        p.Color,
			Credits:      p.Credits,
			EarlyLanded:  p.EarlyLanded,
			Disconnected: p.Disconnected,
			Finished:     m.finished[p],
			Ship:         p.Ship.View(),
		}
		if pos, err := m.flying.Position(p); err == nil {
			v.Position = &pos
		}
		s.Players = append(s.Players, v)
	}
	if m.card != nil {
		cc := m.card.Client()
		s.Card = &cc
		if cur := m.queue.Current(); cur != nil && m.card.State() != card.StateEndOfCard {
			s.Current = cur.Nickname
		}
	}
	return s
}
