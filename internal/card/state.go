/*
Package card
File: state.go
Description:
    The states shared by every adventure card state machine, and the card
    archetypes. Each archetype walks its own subset of states.
*/

package card

import "fmt"

// State is the current step of a card's state machine.
type State int

const (
	StateNotStarted State = iota
	StateChooseCannons
	StateChooseEngines
	StateAcceptTheReward
	StateHandleCubesReward
	StateHandleCubesMalus
	StateRemoveCrewMembers
	StateThrowDices
	StateDangerousAttack
	StateCheckShipboardAfterAttack
	StateVisitLocation
	StateChoosePlanet
	StateEpidemic
	StateStardust
	StateEndOfCard
)

var stateNames = map[State]string{
	StateNotStarted:                "NOT_STARTED",
	StateChooseCannons:             "CHOOSE_CANNONS",
	StateChooseEngines:             "CHOOSE_ENGINES",
	StateAcceptTheReward:           "ACCEPT_THE_REWARD",
	StateHandleCubesReward:         "HANDLE_CUBES_REWARD",
	StateHandleCubesMalus:          "HANDLE_CUBES_MALUS",
	StateRemoveCrewMembers:         "REMOVE_CREW_MEMBERS",
	StateThrowDices:                "THROW_DICES",
	StateDangerousAttack:           "DANGEROUS_ATTACK",
	StateCheckShipboardAfterAttack: "CHECK_SHIPBOARD_AFTER_ATTACK",
	StateVisitLocation:             "VISIT_LOCATION",
	StateChoosePlanet:              "CHOOSE_PLANET",
	StateEpidemic:                  "EPIDEMIC",
	StateStardust:                  "STARDUST",
	StateEndOfCard:                 "END_OF_CARD",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Automatic reports whether the state needs no decision from the player.
// Cube malus always takes the most valuable cubes, so there is nothing to choose.
func (s State) Automatic() bool {
	return s == StateEpidemic || s == StateStardust || s == StateHandleCubesMalus
}

// Kind is the archetype of an adventure card.
type Kind int

const (
	KindPirates Kind = iota
	KindSmugglers
	KindSlaveTraders
	KindMeteoriteStorm
	KindWarField
	KindStardust
	KindEpidemic
	KindAbandonedShip
	KindAbandonedStation
	KindPlanets
	KindFreeSpace
)

var kindNames = map[Kind]string{
	KindPirates:          "pirates",
	KindSmugglers:        "smugglers",
	KindSlaveTraders:     "slave_traders",
	KindMeteoriteStorm:   "meteorite_storm",
	KindWarField:         "war_field",
	KindStardust:         "stardust",
	KindEpidemic:         "epidemic",
	KindAbandonedShip:    "abandoned_ship",
	KindAbandonedStation: "abandoned_station",
	KindPlanets:          "planets",
	KindFreeSpace:        "free_space",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind maps a catalog string onto a Kind.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown card kind %q", s)
}
