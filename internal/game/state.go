/*
Package game
File: state.go
Description:
    The phases of a match. The current GameState decides which player
    intents are accepted; anything else is ignored.

    BUILD_SHIPBOARD -> CHECK_SHIPBOARD -> PLACE_CREW -> DRAW_CARD
        -> PLAY_CARD -> CHECK_PLAYERS -> DRAW_CARD ... -> END_GAME
*/

package game

import "fmt"

// GameState is the phase a match is in.
type GameState int

const (
	StateWaiting GameState = iota
	StateBuildShipboard
	StateCheckShipboard
	StatePlaceCrew
	StateDrawCard
	StatePlayCard
	StateCheckPlayers
	StateEndGame
)

var stateNames = map[GameState]string{
	StateWaiting:        "WAITING",
	StateBuildShipboard: "BUILD_SHIPBOARD",
	StateCheckShipboard: "CHECK_SHIPBOARD",
	StatePlaceCrew:      "PLACE_CREW",
	StateDrawCard:       "DRAW_CARD",
	StatePlayCard:       "PLAY_CARD",
	StateCheckPlayers:   "CHECK_PLAYERS",
	StateEndGame:        "END_GAME",
}

func (s GameState) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("GameState(%d)", int(s))
}

func (s GameState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}
