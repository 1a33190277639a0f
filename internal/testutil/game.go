package testutil

import (
	"time"

	"github.com/mcoot/battleship-go2/internal/model"
)

// SampleGame builds a battle-phase game with a hit destroyer on the
// opponent board, for storage round-trip tests
func SampleGame(id model.GameID, playerID model.PlayerID) *model.Game {
	opponent := model.NewBoard()
	destroyer := model.Ship{
		ID:        "destroyer-4",
		Type:      model.ShipDestroyer,
		Positions: []model.Position{{X: 0, Y: 0}, {X: 1, Y: 0}},
		Hits:      []model.Position{{X: 0, Y: 0}},
	}
	opponent.Ships = append(opponent.Ships, destroyer)
	opponent.Cells[model.Index(model.Position{X: 0, Y: 0})].ShipID = destroyer.ID
	opponent.Cells[model.Index(model.Position{X: 0, Y: 0})].Fired = true
	opponent.Cells[model.Index(model.Position{X: 1, Y: 0})].ShipID = destroyer.ID

	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return &model.Game{
		ID:            id,
		PlayerID:      playerID,
		Phase:         model.PhaseBattle,
		PlayerBoard:   model.NewBoard(),
		OpponentBoard: opponent,
		PlayerStats:   model.Stats{Hits: 1},
		Turn:          1,
		ComputerTurn:  true,
		LastShot: &model.Shot{
			Side:     model.SidePlayer,
			Position: model.Position{X: 0, Y: 0},
			Hit:      true,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
