/*
Package catalog
File: catalog.go
Description:
    Loads the static game catalog and turns it into engine objects.

    The default catalog is embedded in the binary; a file on disk can
    replace it (GALAXY_CATALOG_PATH). A Store keeps the current catalog
    behind a lock so that SIGHUP can reload it while matches are running:
    running matches keep the components and cards they were created with.
*/

package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/everforgeworks/galaxy-haulers/internal/card"
	"github.com/everforgeworks/galaxy-haulers/internal/ship"
)

//go:embed catalog.yaml
var defaultCatalog []byte

var (
	ErrUnknownLevel = errors.New("no flight rules for level")
	ErrUnknownKind  = errors.New("unknown kind")
)

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	// Build everything once so that a broken entry fails at load time.
	if _, err := c.Components(); err != nil {
		return nil, err
	}
	if _, err := c.AdventureCards(); err != nil {
		return nil, err
	}
	for _, f := range c.Flights {
		if f.Track.Length <= 0 || len(f.Track.StartPositions) == 0 {
			return nil, fmt.Errorf("flight level %d: track needs a length and starting slots", f.Level)
		}
	}
	return &c, nil
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// Load reads a catalog from path, or the embedded one when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Flight returns the rules of a flight level.
func (c *Catalog) Flight(level int) (Flight, error) {
	for _, f := range c.Flights {
		if f.Level == level {
			return f, nil
		}
	}
	return Flight{}, fmt.Errorf("%w %d", ErrUnknownLevel, level)
}

// Components builds a fresh copy of the component pool. Ids start at 1; 0
// belongs to the main cabins.
func (c *Catalog) Components() ([]*ship.Component, error) {
	var out []*ship.Component
	for i, t := range c.Tiles {
		kind, err := ship.ParseKind(t.Kind)
		if err != nil || kind == ship.KindMainCabin {
			return nil, fmt.Errorf("tile %d: %w %q", i, ErrUnknownKind, t.Kind)
		}
		var connectors [4]ship.Connector
		for d, s := range t.Connectors {
			if connectors[d], err = ship.ParseConnector(s); err != nil {
				return nil, fmt.Errorf("tile %d: %w", i, err)
			}
		}
		color, err := ship.ParseAlien(t.Color)
		if err != nil {
			return nil, fmt.Errorf("tile %d: %w", i, err)
		}
		count := max(t.Count, 1)
		for range count {
			id := len(out) + 1
			if kind == ship.KindLifeSupport {
				out = append(out, ship.NewLifeSupport(id, connectors, color))
				continue
			}
			out = append(out, ship.NewComponent(id, kind, connectors, t.Capacity))
		}
	}
	return out, nil
}

// AdventureCards builds a fresh instance of every adventure card.
func (c *Catalog) AdventureCards() ([]card.Card, error) {
	out := make([]card.Card, 0, len(c.Cards))
	for i, def := range c.Cards {
		built, err := def.build()
		if err != nil {
			return nil, fmt.Errorf("card %d (%s): %w", i, def.Kind, err)
		}
		out = append(out, built)
	}
	return out, nil
}

func (s Card) build() (card.Card, error) {
	kind, err := card.ParseKind(s.Kind)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnknownKind, err)
	}
	cubes, err := parseCubes(s.Cubes)
	if err != nil {
		return nil, err
	}
	objects, err := parseObjects(s.Objects)
	if err != nil {
		return nil, err
	}
	enemy := card.Enemy{
		FirePower: s.FirePower,
		DaysLost:  s.DaysLost,
		Credits:   s.Credits,
		Cubes:     cubes,
		CubesLost: s.CubesLost,
		CrewLost:  s.CrewLost,
		Shots:     objects,
	}

	switch kind {
	case card.KindPirates:
		return card.NewPirates(s.Level, enemy), nil
	case card.KindSmugglers:
		return card.NewSmugglers(s.Level, enemy), nil
	case card.KindSlaveTraders:
		return card.NewSlaveTraders(s.Level, enemy), nil
	case card.KindMeteoriteStorm:
		return card.NewMeteoriteStorm(s.Level, objects), nil
	case card.KindWarField:
		lines, err := parseLines(s.Lines)
		if err != nil {
			return nil, err
		}
		return card.NewWarField(s.Level, lines), nil
	case card.KindStardust:
		return card.NewStardust(s.Level), nil
	case card.KindEpidemic:
		return card.NewEpidemic(s.Level), nil
	case card.KindAbandonedShip:
		return card.NewAbandonedShip(s.Level, s.CrewLost, s.Credits, s.DaysLost), nil
	case card.KindAbandonedStation:
		return card.NewAbandonedStation(s.Level, s.CrewRequired, cubes, s.DaysLost), nil
	case card.KindPlanets:
		planets := make([][]ship.CubeColor, 0, len(s.Planets))
		for _, p := range s.Planets {
			pc, err := parseCubes(p)
			if err != nil {
				return nil, err
			}
			planets = append(planets, pc)
		}
		return card.NewPlanets(s.Level, planets, s.DaysLost), nil
	case card.KindFreeSpace:
		return card.NewFreeSpace(s.Level), nil
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownKind, s.Kind)
}

func parseCubes(names []string) ([]ship.CubeColor, error) {
	var out []ship.CubeColor
	for _, n := range names {
		c, err := ship.ParseCube(n)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func parseObjects(defs []Object) ([]ship.DangerousObject, error) {
	var out []ship.DangerousObject
	for _, o := range defs {
		kind, err := ship.ParseObjectKind(o.Kind)
		if err != nil {
			return nil, err
		}
		from, err := ship.ParseDirection(o.From)
		if err != nil {
			return nil, err
		}
		out = append(out, ship.DangerousObject{Kind: kind, From: from})
	}
	return out, nil
}

func parseLines(defs []Line) ([]card.WarLine, error) {
	var out []card.WarLine
	for _, l := range defs {
		criterion, err := card.ParseCriterion(l.Criterion)
		if err != nil {
			return nil, err
		}
		penalty, err := card.ParsePenalty(l.Penalty)
		if err != nil {
			return nil, err
		}
		shots, err := parseObjects(l.Shots)
		if err != nil {
			return nil, err
		}
		out = append(out, card.WarLine{Criterion: criterion, Penalty: penalty, Amount: l.Amount, Shots: shots})
	}
	return out, nil
}

// Store holds the catalog used for new matches.
type Store struct {
	mu      sync.RWMutex
	path    string
	current *Catalog
}

// NewStore loads the catalog at path (or the embedded one).
func NewStore(path string) (*Store, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	return &Store{path: path, current: c}, nil
}

// Current returns the catalog for the next match.
func (s *Store) Current() *Catalog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Reload re-reads the catalog. On error the previous catalog stays in use.
func (s *Store) Reload() error {
	c, err := Load(s.path)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.current = c
	s.mu.Unlock()
	return nil
}
