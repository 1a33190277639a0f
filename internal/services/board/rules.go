package board

import (
	"fmt"

	"github.com/mcoot/battleship-go2/internal/model"
)

// FireResult is the outcome of a shot that was resolved against a board
type FireResult struct {
	Board model.Board
	Hit   bool
	Ship  *model.Ship // updated ship on a hit, nil on a miss
	Sunk  bool        // true if this shot sank Ship
}

// NewEmptyBoard creates a board with no ships and no shots
func NewEmptyBoard() model.Board {
	return model.NewBoard()
}

// ShipID returns the identifier used for a ship of the given type.
// A board carries at most one ship per type.
func ShipID(t model.ShipType) string {
	for i, st := range model.ShipTypes() {
		if st == t {
			return fmt.Sprintf("%s-%d", t, i)
		}
	}
	return string(t)
}

// NewShip builds an unhit ship of the given type at the given positions
func NewShip(t model.ShipType, positions []model.Position, vertical bool) model.Ship {
	return model.Ship{
		ID:        ShipID(t),
		Type:      t,
		Positions: positions,
		Vertical:  vertical,
	}
}

// ComputeShipPositions lists the cells a ship would cover from origin.
// Vertical ships extend along +Y, horizontal ships along +X. Positions are
// not clamped to the board.
func ComputeShipPositions(origin model.Position, t model.ShipType, vertical bool) []model.Position {
	positions := make([]model.Position, t.Length())
	for i := range positions {
		if vertical {
			positions[i] = model.Position{X: origin.X, Y: origin.Y + i}
		} else {
			positions[i] = model.Position{X: origin.X + i, Y: origin.Y}
		}
	}
	return positions
}

// CanPlace reports whether every position is on the board, unoccupied, and
// has no occupied cell among its eight neighbours
func CanPlace(board model.Board, positions []model.Position) bool {
	if len(positions) == 0 {
		return false
	}
	for _, pos := range positions {
		cell, ok := board.Cell(pos)
		if !ok || cell.IsOccupied() {
			return false
		}
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				neighbour, ok := board.Cell(model.Position{X: pos.X + dx, Y: pos.Y + dy})
				if ok && neighbour.IsOccupied() {
					return false
				}
			}
		}
	}
	return true
}

// PlaceShip returns a new board with the ship added. The input board is
// never modified.
func PlaceShip(board model.Board, ship model.Ship) (model.Board, error) {
	if board.Ship(ship.ID) != nil {
		return board, fmt.Errorf("%w: %s", model.ErrShipAlreadyPlaced, ship.Type)
	}
	if !CanPlace(board, ship.Positions) {
		return board, fmt.Errorf("%w: %s", model.ErrInvalidPlacement, ship.Type)
	}

	updated := board.Clone()
	for _, pos := range ship.Positions {
		updated.Cells[model.Index(pos)].ShipID = ship.ID
	}
	updated.Ships = append(updated.Ships, ship.Clone())
	return updated, nil
}

// IsShipSunk reports whether every cell of the ship has been hit
func IsShipSunk(ship model.Ship) bool {
	return ship.IsSunk()
}

// FindShipAt returns the ship covering pos, if any
func FindShipAt(board model.Board, pos model.Position) (model.Ship, bool) {
	for _, ship := range board.Ships {
		if ship.Occupies(pos) {
			return ship, true
		}
	}
	return model.Ship{}, false
}

// Fire resolves a shot at pos. It returns false without touching the board
// when pos is off the board or has already been fired at.
func Fire(board model.Board, pos model.Position) (FireResult, bool) {
	cell, ok := board.Cell(pos)
	if !ok || cell.Fired {
		return FireResult{Board: board}, false
	}

	updated := board.Clone()
	updated.Cells[model.Index(pos)].Fired = true

	result := FireResult{Board: updated}
	if !cell.IsOccupied() {
		return result, true
	}

	ship := updated.Ship(cell.ShipID)
	if ship == nil {
		return result, true
	}
	wasSunk := ship.IsSunk()
	if !ship.IsHitAt(pos) {
		ship.Hits = append(ship.Hits, pos)
	}

	hitShip := ship.Clone()
	result.Hit = true
	result.Ship = &hitShip
	result.Sunk = !wasSunk && hitShip.IsSunk()
	return result, true
}
