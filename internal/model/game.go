package model

import (
	"math"
	"time"
)

// GameID uniquely identifies a game
type GameID string

// GamePhase represents the current phase of a game
type GamePhase string

const (
	PhasePlacement GamePhase = "placement" // Player positioning their fleet
	PhaseBattle    GamePhase = "battle"    // Shots alternate between sides
	PhaseGameOver  GamePhase = "game_over" // One fleet fully sunk
)

// Side distinguishes the human player from the computer opponent
type Side string

const (
	SidePlayer   Side = "player"
	SideComputer Side = "computer"
)

// Stats tracks one side's shooting record
type Stats struct {
	Hits      int    `json:"hits"`
	Misses    int    `json:"misses"`
	SunkShips []Ship `json:"sunk_ships"` // ships this side has sunk, in order
}

// Shots returns the total number of resolved shots
func (s Stats) Shots() int {
	return s.Hits + s.Misses
}

// Accuracy returns the hit percentage rounded to the nearest integer
func (s Stats) Accuracy() int {
	total := s.Shots()
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(s.Hits) / float64(total) * 100))
}

// HasSunk returns true if the ship is already recorded as sunk
func (s Stats) HasSunk(shipID string) bool {
	for _, ship := range s.SunkShips {
		if ship.ID == shipID {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the stats
func (s Stats) Clone() Stats {
	clone := s
	if s.SunkShips != nil {
		clone.SunkShips = make([]Ship, len(s.SunkShips))
		for i, ship := range s.SunkShips {
			clone.SunkShips[i] = ship.Clone()
		}
	}
	return clone
}

// Shot records the outcome of the most recent shot
type Shot struct {
	Side     Side     `json:"side"`
	Position Position `json:"position"`
	Hit      bool     `json:"hit"`
	Sunk     ShipType `json:"sunk,omitempty"`
}

// Game is a single match between a player and the computer
type Game struct {
	ID       GameID    `json:"id"`
	PlayerID PlayerID  `json:"player_id"`
	Phase    GamePhase `json:"phase"`

	PlayerBoard   Board `json:"player_board"`
	OpponentBoard Board `json:"opponent_board"`
	PlayerStats   Stats `json:"player_stats"`
	ComputerStats Stats `json:"computer_stats"`

	// Turn management
	ComputerTurn bool  `json:"computer_turn"`
	Winner       Side  `json:"winner,omitempty"` // empty until game over
	Turn         int   `json:"turn"`             // number of accepted shots
	LastShot     *Shot `json:"last_shot,omitempty"`

	// Placement selection
	SelectedShip ShipType `json:"selected_ship,omitempty"`
	Vertical     bool     `json:"vertical"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsOver returns true once a winner has been decided
func (g *Game) IsOver() bool {
	return g.Phase == PhaseGameOver
}

// IsPlayerTurn returns true if the human may fire
func (g *Game) IsPlayerTurn() bool {
	return g.Phase == PhaseBattle && !g.ComputerTurn
}

// RemainingShipTypes returns the fleet types the player has not placed yet
func (g *Game) RemainingShipTypes() []ShipType {
	var remaining []ShipType
	for _, t := range ShipTypes() {
		if !g.PlayerBoard.HasShipType(t) {
			remaining = append(remaining, t)
		}
	}
	return remaining
}

// Clone returns a deep copy of the game
func (g *Game) Clone() *Game {
	clone := *g
	clone.PlayerBoard = g.PlayerBoard.Clone()
	clone.OpponentBoard = g.OpponentBoard.Clone()
	clone.PlayerStats = g.PlayerStats.Clone()
	clone.ComputerStats = g.ComputerStats.Clone()
	if g.LastShot != nil {
		shot := *g.LastShot
		clone.LastShot = &shot
	}
	return &clone
}
