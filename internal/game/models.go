/*
Package game
File: models.go
Description:
    Defines the data structures the engine pushes outward: notification
    events and the read-only snapshot of a match. These map directly to the
    JSON the transport layer sends to clients.

    No logic is performed here; this file is strictly for type definitions.
*/

package game

import (
	"time"

	"github.com/everforgeworks/galaxy-haulers/internal/card"
	"github.com/everforgeworks/galaxy-haulers/internal/flight"
	"github.com/everforgeworks/galaxy-haulers/internal/ship"
)

// EventType names a notification.
type EventType string

const (
	EventStateChanged     EventType = "state_changed"     // Payload: GameState
	EventShipboardUpdated EventType = "shipboard_updated" // Payload: ship.View of Player
	EventPoolUpdated      EventType = "pool_updated"      // Payload: []ship.CellView, the face-up pool
	EventHourglass        EventType = "hourglass"         // Payload: HourglassView
	EventCardDrawn        EventType = "card_drawn"        // Payload: card.ClientCard
	EventCardUpdated      EventType = "card_updated"      // Payload: card.ClientCard
	EventDangerousObject  EventType = "dangerous_object"  // Payload: ship.DangerousObject
	EventRankingUpdated   EventType = "ranking_updated"   // Payload: []flight.Standing
	EventPlayerLanded     EventType = "player_landed"     // Payload: LandingView
	EventPlayerConnection EventType = "player_connection" // Payload: bool, true when connected
	EventGameEnded        EventType = "game_ended"        // Payload: []flight.Score
)

// Event is one notification. Player is empty for match-wide events.
type Event struct {
	Match   string    `json:"match"`
	Type    EventType `json:"type"`
	Player  string    `json:"player,omitempty"`
	Payload any       `json:"payload"`
}

// Notifier receives every event after the mutation it describes is committed.
// Notify is called with the match lock held and must not call back into the match.
type Notifier interface {
	Notify(e Event)
}

// NotifierFunc adapts a function to a Notifier.
type NotifierFunc func(Event)

func (f NotifierFunc) Notify(e Event) { f(e) }

type nopNotifier struct{}

func (nopNotifier) Notify(Event) {}

// LandingView explains why a player left the race.
type LandingView struct {
	Voluntary bool `json:"voluntary"`
}

// HourglassView is the state of the build timer.
type HourglassView struct {
	Running   bool          `json:"running"`
	Remaining time.Duration `json:"remaining"`
	FlipsLeft int           `json:"flips_left"`
}

// PlayerView is what everyone knows about a player.
type PlayerView struct {
	Nickname     string    `json:"nickname"`
	Color        string    `json:"color"`
	Credits      int       `json:"credits"`
	Position     *int      `json:"position,omitempty"` // nil when not on the flying board
	EarlyLanded  bool      `json:"early_landed"`
	Disconnected bool      `json:"disconnected"`
	Finished     bool      `json:"finished_building"`
	Ship         ship.View `json:"ship"`
}

// Snapshot is the full read-only state of a match.
type Snapshot struct {
	Match     string                `json:"match"`
	Level     int                   `json:"level"`
	State     GameState             `json:"state"`
	Players   []PlayerView          `json:"players"`
	Pool      []ship.CellView       `json:"pool,omitempty"`
	Hidden    int                   `json:"hidden_components"`
	Hourglass HourglassView         `json:"hourglass"`
	Card      *card.ClientCard      `json:"card,omitempty"`
	Attack    *ship.DangerousObject `json:"attack,omitempty"`
	Current   string                `json:"current_player,omitempty"`
	Cards     int                   `json:"cards_left"`
	Standings []flight.Standing     `json:"standings"`
	Scores    []flight.Score        `json:"scores,omitempty"`
}
