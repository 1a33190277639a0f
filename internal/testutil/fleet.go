package testutil

import (
	"github.com/mcoot/battleship-go2/internal/dependencies/mocks"
	"github.com/mcoot/battleship-go2/internal/model"
)

// StandardFleetRows are the rows QueueStandardFleet lays ships along, in fleet order
var StandardFleetRows = []int{0, 2, 4, 6, 8}

// QueueStandardFleet queues random values so that one auto-placement lays
// every ship horizontally from column 0, on rows 0, 2, 4, 6 and 8
func QueueStandardFleet(rnd *mocks.MockRandom) {
	for _, row := range StandardFleetRows {
		rnd.QueuePlacement(false, 0, row)
	}
}

// StandardFleetCells returns every ship cell of the standard fleet
func StandardFleetCells() []model.Position {
	var cells []model.Position
	for i, t := range model.ShipTypes() {
		for x := 0; x < t.Length(); x++ {
			cells = append(cells, model.Position{X: x, Y: StandardFleetRows[i]})
		}
	}
	return cells
}

// WaterCells returns count positions that the standard fleet does not cover
func WaterCells(count int) []model.Position {
	var cells []model.Position
	for y := 1; y < model.GridSize && len(cells) < count; y += 2 {
		for x := 0; x < model.GridSize && len(cells) < count; x++ {
			cells = append(cells, model.Position{X: x, Y: y})
		}
	}
	return cells
}
