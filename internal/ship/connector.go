/*
Package ship
File: connector.go
Description:
    Connector types and the compatibility rules between two facing connectors.
*/

package ship

import "fmt"

// Connector is the attachment type on one side of a component.
type Connector int

const (
	Empty Connector = iota
	Single
	Double
	Universal
)

func (c Connector) String() string {
	switch c {
	case Empty:
		return "empty"
	case Single:
		return "single"
	case Double:
		return "double"
	case Universal:
		return "universal"
	}
	return "unknown"
}

// ParseConnector maps a catalog string onto a Connector.
func ParseConnector(s string) (Connector, error) {
	for _, c := range []Connector{Empty, Single, Double, Universal} {
		if c.String() == s {
			return c, nil
		}
	}
	return Empty, fmt.Errorf("unknown connector %q", s)
}

// Compatible reports whether two facing connectors may sit next to each other.
// An empty side must meet an empty side.
func (c Connector) Compatible(o Connector) bool {
	switch {
	case c == Empty || o == Empty:
		return c == o
	case c == Universal || o == Universal:
		return true
	default:
		return c == o
	}
}

// Joins reports whether two facing connectors physically link their components.
func (c Connector) Joins(o Connector) bool {
	return c != Empty && o != Empty && c.Compatible(o)
}
