package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/battleship-go2/internal/model"
)

func place(t *testing.T, b model.Board, st model.ShipType, origin model.Position, vertical bool) model.Board {
	t.Helper()
	updated, err := PlaceShip(b, NewShip(st, ComputeShipPositions(origin, st, vertical), vertical))
	require.NoError(t, err)
	return updated
}

func TestNewEmptyBoard(t *testing.T) {
	b := NewEmptyBoard()

	require.Len(t, b.Cells, 100)
	assert.Empty(t, b.Ships)
	for i, cell := range b.Cells {
		assert.False(t, cell.IsOccupied())
		assert.False(t, cell.Fired)
		assert.Equal(t, i, model.Index(cell.Position))
	}
	assert.Equal(t, model.Position{X: 3, Y: 1}, b.Cells[13].Position)
}

func TestComputeShipPositions(t *testing.T) {
	tests := []struct {
		name     string
		origin   model.Position
		shipType model.ShipType
		vertical bool
		expected []model.Position
	}{
		{
			name:     "horizontal carrier",
			origin:   model.Position{X: 0, Y: 0},
			shipType: model.ShipCarrier,
			expected: []model.Position{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 3, Y: 0}, {X: 4, Y: 0}},
		},
		{
			name:     "vertical destroyer",
			origin:   model.Position{X: 3, Y: 3},
			shipType: model.ShipDestroyer,
			vertical: true,
			expected: []model.Position{{X: 3, Y: 3}, {X: 3, Y: 4}},
		},
		{
			name:     "runs off the board without clamping",
			origin:   model.Position{X: 8, Y: 0},
			shipType: model.ShipCruiser,
			expected: []model.Position{{X: 8, Y: 0}, {X: 9, Y: 0}, {X: 10, Y: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ComputeShipPositions(tt.origin, tt.shipType, tt.vertical))
		})
	}
}

func TestCanPlace(t *testing.T) {
	withDestroyer := place(t, NewEmptyBoard(), model.ShipDestroyer, model.Position{X: 0, Y: 0}, false)

	tests := []struct {
		name      string
		board     model.Board
		positions []model.Position
		expected  bool
	}{
		{
			name:      "carrier on empty board",
			board:     NewEmptyBoard(),
			positions: ComputeShipPositions(model.Position{X: 0, Y: 0}, model.ShipCarrier, false),
			expected:  true,
		},
		{
			name:      "carrier off the right edge",
			board:     NewEmptyBoard(),
			positions: ComputeShipPositions(model.Position{X: 8, Y: 0}, model.ShipCarrier, false),
			expected:  false,
		},
		{
			name:      "vertical ship off the bottom edge",
			board:     NewEmptyBoard(),
			positions: ComputeShipPositions(model.Position{X: 0, Y: 9}, model.ShipDestroyer, true),
			expected:  false,
		},
		{
			name:      "diagonal neighbour of an existing ship",
			board:     withDestroyer,
			positions: []model.Position{{X: 2, Y: 1}},
			expected:  false,
		},
		{
			name:      "overlapping an existing ship",
			board:     withDestroyer,
			positions: []model.Position{{X: 1, Y: 0}},
			expected:  false,
		},
		{
			name:      "one empty cell away from an existing ship",
			board:     withDestroyer,
			positions: []model.Position{{X: 3, Y: 0}, {X: 4, Y: 0}},
			expected:  true,
		},
		{
			name:      "empty position list",
			board:     NewEmptyBoard(),
			positions: nil,
			expected:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CanPlace(tt.board, tt.positions))
		})
	}
}

func TestPlaceShipDoesNotModifyInput(t *testing.T) {
	original := NewEmptyBoard()
	updated := place(t, original, model.ShipBattleship, model.Position{X: 2, Y: 2}, true)

	assert.Empty(t, original.Ships)
	for _, cell := range original.Cells {
		assert.False(t, cell.IsOccupied())
	}

	require.Len(t, updated.Ships, 1)
	for y := 2; y < 6; y++ {
		cell, ok := updated.Cell(model.Position{X: 2, Y: y})
		require.True(t, ok)
		assert.Equal(t, ShipID(model.ShipBattleship), cell.ShipID)
	}
}

func TestPlaceShipRejectsInvalidPlacement(t *testing.T) {
	b := place(t, NewEmptyBoard(), model.ShipDestroyer, model.Position{X: 0, Y: 0}, false)

	ship := NewShip(model.ShipSubmarine, ComputeShipPositions(model.Position{X: 1, Y: 1}, model.ShipSubmarine, false), false)
	_, err := PlaceShip(b, ship)
	assert.ErrorIs(t, err, model.ErrInvalidPlacement)
}

func TestPlaceShipRejectsDuplicateShip(t *testing.T) {
	b := place(t, NewEmptyBoard(), model.ShipDestroyer, model.Position{X: 0, Y: 0}, false)

	ship := NewShip(model.ShipDestroyer, ComputeShipPositions(model.Position{X: 5, Y: 5}, model.ShipDestroyer, false), false)
	_, err := PlaceShip(b, ship)
	assert.ErrorIs(t, err, model.ErrShipAlreadyPlaced)
}

func TestFindShipAt(t *testing.T) {
	b := place(t, NewEmptyBoard(), model.ShipCruiser, model.Position{X: 4, Y: 4}, true)

	ship, ok := FindShipAt(b, model.Position{X: 4, Y: 6})
	require.True(t, ok)
	assert.Equal(t, model.ShipCruiser, ship.Type)

	_, ok = FindShipAt(b, model.Position{X: 5, Y: 6})
	assert.False(t, ok)
}

func TestFireMiss(t *testing.T) {
	b := place(t, NewEmptyBoard(), model.ShipDestroyer, model.Position{X: 0, Y: 0}, false)

	result, ok := Fire(b, model.Position{X: 5, Y: 5})
	require.True(t, ok)
	assert.False(t, result.Hit)
	assert.Nil(t, result.Ship)

	cell, _ := result.Board.Cell(model.Position{X: 5, Y: 5})
	assert.True(t, cell.Fired)

	original, _ := b.Cell(model.Position{X: 5, Y: 5})
	assert.False(t, original.Fired)
}

func TestFireHitAndSink(t *testing.T) {
	b := place(t, NewEmptyBoard(), model.ShipDestroyer, model.Position{X: 0, Y: 0}, false)

	first, ok := Fire(b, model.Position{X: 0, Y: 0})
	require.True(t, ok)
	assert.True(t, first.Hit)
	require.NotNil(t, first.Ship)
	assert.Len(t, first.Ship.Hits, 1)
	assert.False(t, first.Sunk)
	assert.False(t, IsShipSunk(*first.Ship))

	second, ok := Fire(first.Board, model.Position{X: 1, Y: 0})
	require.True(t, ok)
	assert.True(t, second.Hit)
	assert.True(t, second.Sunk)
	assert.True(t, IsShipSunk(*second.Ship))
	assert.True(t, second.Board.Ship(ShipID(model.ShipDestroyer)).IsSunk())
}

func TestFireIgnoresRepeatedAndOffBoardShots(t *testing.T) {
	b := place(t, NewEmptyBoard(), model.ShipDestroyer, model.Position{X: 0, Y: 0}, false)
	first, ok := Fire(b, model.Position{X: 0, Y: 0})
	require.True(t, ok)

	repeat, ok := Fire(first.Board, model.Position{X: 0, Y: 0})
	assert.False(t, ok)
	assert.Len(t, repeat.Board.Ship(ShipID(model.ShipDestroyer)).Hits, 1)

	_, ok = Fire(b, model.Position{X: 10, Y: 0})
	assert.False(t, ok)
	_, ok = Fire(b, model.Position{X: 0, Y: -1})
	assert.False(t, ok)
}
