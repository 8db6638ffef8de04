/*
Package catalog
File: models.go
Description:
    Defines the data structures (Structs) of the static game catalog.
    This file serves as the "schema" of 'catalog.yaml': the flight rules per
    level, the component tiles of the building pool and the adventure cards.

    No logic is performed here; this file is strictly for type definitions.
*/

package catalog

import (
	"time"

	"github.com/everforgeworks/galaxy-haulers/internal/flight"
)

// Flight stores the rules of one flight level.
type Flight struct {
	Level          int           `yaml:"level" json:"level"`                     // 1 = test flight, 2 = standard flight
	Name           string        `yaml:"name" json:"name"`                       // Display name
	Hourglass      time.Duration `yaml:"hourglass" json:"hourglass"`             // Duration of one hourglass run (e.g. "90s")
	HourglassFlips int           `yaml:"hourglass_flips" json:"hourglass_flips"` // Number of runs before building ends
	Track          flight.Track  `yaml:"track" json:"track"`                     // Flying board rules
}

// Tile describes one kind of component tile and how many copies the pool holds.
type Tile struct {
	Kind       string    `yaml:"kind" json:"kind"`             // Component kind (e.g. "double_cannon")
	Connectors [4]string `yaml:"connectors" json:"connectors"` // Base connectors: North, East, South, West
	Capacity   int       `yaml:"capacity" json:"capacity"`     // Battery charges or storage slots
	Color      string    `yaml:"color" json:"color"`           // Life support color ("brown"/"purple")
	Count      int       `yaml:"count" json:"count"`           // Copies in the pool (0 means 1)
}

// Object is a meteorite or shot printed on a card. The line is rolled during play.
type Object struct {
	Kind string `yaml:"kind" json:"kind"` // "small_meteorite", "big_meteorite", "light_shot", "heavy_shot"
	From string `yaml:"from" json:"from"` // Side of the ship it comes from
}

// Line is one row of a war field card.
type Line struct {
	Criterion string   `yaml:"criterion" json:"criterion"` // "crew", "engines", "fire_power"
	Penalty   string   `yaml:"penalty" json:"penalty"`     // "days", "crew", "cubes", "shots"
	Amount    int      `yaml:"amount" json:"amount"`       // Days, crew members or cubes lost
	Shots     []Object `yaml:"shots" json:"shots"`         // Used by the "shots" penalty
}

// Card describes one adventure card. Only the fields used by its kind are read.
type Card struct {
	Kind         string     `yaml:"kind" json:"kind"`
	Level        int        `yaml:"level" json:"level"`
	FirePower    int        `yaml:"fire_power" json:"fire_power"`       // Enemy strength
	Credits      int        `yaml:"credits" json:"credits"`             // Reward
	DaysLost     int        `yaml:"days_lost" json:"days_lost"`         // Flight days paid for a reward
	CrewLost     int        `yaml:"crew_lost" json:"crew_lost"`         // Crew paid or lost
	CrewRequired int        `yaml:"crew_required" json:"crew_required"` // Crew needed to visit a station
	CubesLost    int        `yaml:"cubes_lost" json:"cubes_lost"`       // Smugglers malus
	Cubes        []string   `yaml:"cubes" json:"cubes"`                 // Reward cubes
	Planets      [][]string `yaml:"planets" json:"planets"`             // Cubes offered by each planet
	Objects      []Object   `yaml:"objects" json:"objects"`             // Pirate shots or meteorites
	Lines        []Line     `yaml:"lines" json:"lines"`                 // War field lines
}

// Catalog is the root configuration struct, mapping to the entire 'catalog.yaml' file.
type Catalog struct {
	Flights []Flight `yaml:"flights" json:"flights"`
	Tiles   []Tile   `yaml:"tiles" json:"tiles"`
	Cards   []Card   `yaml:"cards" json:"cards"`
}
