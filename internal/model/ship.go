package model

import (
	"fmt"
	"strings"
)

// ShipType identifies a class of ship in the fleet
type ShipType string

const (
	ShipCarrier    ShipType = "carrier"
	ShipBattleship ShipType = "battleship"
	ShipCruiser    ShipType = "cruiser"
	ShipSubmarine  ShipType = "submarine"
	ShipDestroyer  ShipType = "destroyer"
)

// ShipTypes returns the fleet in placement order
func ShipTypes() []ShipType {
	return []ShipType{ShipCarrier, ShipBattleship, ShipCruiser, ShipSubmarine, ShipDestroyer}
}

// FleetSize is the number of ships each side places
const FleetSize = 5

// Length returns the number of cells a ship of this type covers
func (t ShipType) Length() int {
	switch t {
	case ShipCarrier:
		return 5
	case ShipBattleship:
		return 4
	case ShipCruiser, ShipSubmarine:
		return 3
	case ShipDestroyer:
		return 2
	default:
		return 0
	}
}

// DisplayName returns a human-readable label
func (t ShipType) DisplayName() string {
	if t == "" {
		return ""
	}
	return strings.ToUpper(string(t[:1])) + string(t[1:])
}

// IsValid returns true for one of the five fleet types
func (t ShipType) IsValid() bool {
	return t.Length() > 0
}

// ParseShipType parses a ship type case-insensitively
func ParseShipType(s string) (ShipType, error) {
	t := ShipType(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownShipType, s)
	}
	return t, nil
}

// Ship is a placed ship and the cells of it that have been hit
type Ship struct {
	ID        string     `json:"id"`
	Type      ShipType   `json:"type"`
	Positions []Position `json:"positions"`
	Hits      []Position `json:"hits"`
	Vertical  bool       `json:"vertical"`
}

// IsSunk returns true once every position has been hit
func (s Ship) IsSunk() bool {
	return len(s.Positions) > 0 && len(s.Hits) == len(s.Positions)
}

// Occupies returns true if the ship covers pos
func (s Ship) Occupies(pos Position) bool {
	for _, p := range s.Positions {
		if p == pos {
			return true
		}
	}
	return false
}

// IsHitAt returns true if pos is in the hit-set
func (s Ship) IsHitAt(pos Position) bool {
	for _, p := range s.Hits {
		if p == pos {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the ship
func (s Ship) Clone() Ship {
	clone := s
	if s.Positions != nil {
		clone.Positions = append([]Position{}, s.Positions...)
	}
	if s.Hits != nil {
		clone.Hits = append([]Position{}, s.Hits...)
	}
	return clone
}
