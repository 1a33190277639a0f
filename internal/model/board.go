package model

import (
	"fmt"
	"strconv"
	"strings"
)

// GridSize is the width and height of every board
const GridSize = 10

// Position identifies a cell on the board
type Position struct {
	X int `json:"x"` // column, 0-indexed from left
	Y int `json:"y"` // row, 0-indexed from top
}

// Label renders the position as a column letter and 1-based row number, e.g. "A1"
func (p Position) Label() string {
	return fmt.Sprintf("%c%d", rune('A'+p.X), p.Y+1)
}

// String implements fmt.Stringer
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// ParsePosition parses a label such as "B7" back into a Position
func ParsePosition(label string) (Position, error) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if len(label) < 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, label)
	}
	col := label[0]
	if col < 'A' || col >= byte('A'+GridSize) {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, label)
	}
	row, err := strconv.Atoi(label[1:])
	if err != nil || row < 1 || row > GridSize {
		return Position{}, fmt.Errorf("%w: %q", ErrInvalidPosition, label)
	}
	return Position{X: int(col - 'A'), Y: row - 1}, nil
}

// Cell is a single square of a board
type Cell struct {
	Position Position `json:"position"`
	ShipID   string   `json:"ship_id,omitempty"` // empty when unoccupied
	Fired    bool     `json:"fired"`
}

// IsOccupied returns true if a ship covers this cell
func (c Cell) IsOccupied() bool {
	return c.ShipID != ""
}

// Board is one side's grid together with the fleet placed on it
type Board struct {
	Cells []Cell `json:"cells"` // row-major: index = y*GridSize + x
	Ships []Ship `json:"ships"`
}

// NewBoard creates an empty board with every cell unoccupied and unfired
func NewBoard() Board {
	cells := make([]Cell, 0, GridSize*GridSize)
	for y := 0; y < GridSize; y++ {
		for x := 0; x < GridSize; x++ {
			cells = append(cells, Cell{Position: Position{X: x, Y: y}})
		}
	}
	return Board{Cells: cells}
}

// IsValidPosition returns true if the position is within bounds
func IsValidPosition(pos Position) bool {
	return pos.X >= 0 && pos.X < GridSize && pos.Y >= 0 && pos.Y < GridSize
}

// Index returns the index of the cell at pos in Cells
func Index(pos Position) int {
	return pos.Y*GridSize + pos.X
}

// Cell returns the cell at the given position
func (b Board) Cell(pos Position) (Cell, bool) {
	if !IsValidPosition(pos) || len(b.Cells) != GridSize*GridSize {
		return Cell{}, false
	}
	return b.Cells[Index(pos)], true
}

// Ship returns the ship with the given ID, or nil if not found
func (b Board) Ship(id string) *Ship {
	for i := range b.Ships {
		if b.Ships[i].ID == id {
			return &b.Ships[i]
		}
	}
	return nil
}

// HasShipType returns true if a ship of the given type has been placed
func (b Board) HasShipType(t ShipType) bool {
	for _, ship := range b.Ships {
		if ship.Type == t {
			return true
		}
	}
	return false
}

// UnfiredPositions returns every position that has not been shot at yet
func (b Board) UnfiredPositions() []Position {
	var positions []Position
	for _, cell := range b.Cells {
		if !cell.Fired {
			positions = append(positions, cell.Position)
		}
	}
	return positions
}

// ActiveShips returns ships that are still afloat
func (b Board) ActiveShips() []Ship {
	var ships []Ship
	for _, ship := range b.Ships {
		if !ship.IsSunk() {
			ships = append(ships, ship)
		}
	}
	return ships
}

// SunkShips returns ships that have been sunk
func (b Board) SunkShips() []Ship {
	var ships []Ship
	for _, ship := range b.Ships {
		if ship.IsSunk() {
			ships = append(ships, ship)
		}
	}
	return ships
}

// Clone returns a deep copy of the board
func (b Board) Clone() Board {
	var clone Board
	if b.Cells != nil {
		clone.Cells = make([]Cell, len(b.Cells))
		copy(clone.Cells, b.Cells)
	}
	if b.Ships != nil {
		clone.Ships = make([]Ship, len(b.Ships))
		for i, ship := range b.Ships {
			clone.Ships[i] = ship.Clone()
		}
	}
	return clone
}
