package components

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/battleship-go2/internal/model"
)

// BoardView describes how one grid should be drawn
type BoardView struct {
	ID     string      // DOM id of the table
	Board  model.Board // board to draw
	Reveal bool        // show unhit ship cells (own board)
	Action string      // form action for cell clicks; empty disables clicking
	// OnlyUnfired limits clickable cells to those not yet fired at
	OnlyUnfired bool
}

// CellClasses returns the CSS classes describing a cell's visible state
func CellClasses(b model.Board, cell model.Cell, reveal bool) string {
	classes := "cell"
	switch {
	case cell.Fired && cell.IsOccupied():
		classes += " hit"
		if ship := b.Ship(cell.ShipID); ship != nil && ship.IsSunk() {
			classes += " sunk"
		}
	case cell.Fired:
		classes += " miss"
	case cell.IsOccupied() && reveal:
		classes += " ship"
	}
	return classes
}

// Board renders a 10x10 grid with column letters and row numbers
func Board(view BoardView) templ.Component {
	return Render(func(hw *Writer) {
		clickable := view.Action != ""
		if clickable {
			hw.Raw(`<form method="post" action="` + templ.EscapeString(view.Action) + `" hx-post="` + templ.EscapeString(view.Action) + `" hx-target="#game" hx-select="#game" hx-swap="outerHTML">`)
		}
		hw.Raw(`<table class="board" id="` + templ.EscapeString(view.ID) + `"><thead><tr><th></th>`)
		for x := 0; x < model.GridSize; x++ {
			hw.Raw(`<th>` + string(rune('A'+x)) + `</th>`)
		}
		hw.Raw(`</tr></thead><tbody>`)
		for y := 0; y < model.GridSize; y++ {
			hw.Raw(`<tr><th>` + strconv.Itoa(y+1) + `</th>`)
			for x := 0; x < model.GridSize; x++ {
				pos := model.Position{X: x, Y: y}
				cell, _ := view.Board.Cell(pos)
				hw.Raw(`<td class="` + CellClasses(view.Board, cell, view.Reveal) + `" data-cell="` + pos.Label() + `">`)
				if clickable && (!view.OnlyUnfired || !cell.Fired) {
					hw.Raw(`<button type="submit" name="cell" value="` + pos.Label() + `" aria-label="` + pos.Label() + `"></button>`)
				}
				hw.Raw(`</td>`)
			}
			hw.Raw(`</tr>`)
		}
		hw.Raw(`</tbody></table>`)
		if clickable {
			hw.Raw(`</form>`)
		}
	})
}

// ShipList renders which ships of a fleet are still afloat
func ShipList(id, title string, board model.Board) templ.Component {
	return Render(func(hw *Writer) {
		hw.Raw(`<div class="ship-list" id="` + templ.EscapeString(id) + `"><h3>`)
		hw.Text(title)
		hw.Raw(`</h3><ul>`)
		for _, ship := range board.Ships {
			state := "active"
			if ship.IsSunk() {
				state = "sunk"
			}
			hw.Raw(`<li class="ship ` + state + `" data-ship="` + string(ship.Type) + `">`)
			hw.Text(ship.Type.DisplayName())
			hw.Raw(` <span class="length">(` + strconv.Itoa(ship.Type.Length()) + `)</span></li>`)
		}
		hw.Raw(`</ul></div>`)
	})
}
