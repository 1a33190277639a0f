package components

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/mcoot/battleship-go2/internal/model"
)

// StatusText describes whose move it is, or who won
func StatusText(g *model.Game) string {
	switch g.Phase {
	case model.PhasePlacement:
		return "Place your fleet"
	case model.PhaseBattle:
		if g.ComputerTurn {
			return "Computer is taking aim..."
		}
		return "Your turn - fire at the enemy grid"
	case model.PhaseGameOver:
		if g.Winner == model.SidePlayer {
			return "You win! The enemy fleet is sunk."
		}
		return "The computer wins. Your fleet is sunk."
	}
	return ""
}

// ShotText describes a resolved shot, e.g. "You fired at B7: hit! You sank the Destroyer!"
func ShotText(shot *model.Shot) string {
	if shot == nil {
		return ""
	}
	shooter := "You"
	if shot.Side == model.SideComputer {
		shooter = "Computer"
	}
	text := shooter + " fired at " + shot.Position.Label() + ": "
	if !shot.Hit {
		return text + "miss."
	}
	text += "hit!"
	if shot.Sunk != "" {
		if shot.Side == model.SideComputer {
			text += " Your " + shot.Sunk.DisplayName() + " was sunk!"
		} else {
			text += " You sank the " + shot.Sunk.DisplayName() + "!"
		}
	}
	return text
}

// GameStatus renders the status line for a game
func GameStatus(g *model.Game) templ.Component {
	return Render(func(hw *Writer) {
		hw.Raw(`<div id="game-status" data-phase="` + string(g.Phase) + `">`)
		hw.Text(StatusText(g))
		hw.Raw(`</div>`)
	})
}

// LastShot renders the message for the most recent shot
func LastShot(shot *model.Shot) templ.Component {
	return Render(func(hw *Writer) {
		hw.Raw(`<p id="last-shot">`)
		hw.Text(ShotText(shot))
		hw.Raw(`</p>`)
	})
}

// Stats renders one side's hits, misses and accuracy
func Stats(id, title string, stats model.Stats) templ.Component {
	return Render(func(hw *Writer) {
		hw.Raw(`<dl class="stats" id="` + templ.EscapeString(id) + `"><dt>`)
		hw.Text(title)
		hw.Raw(`</dt>`)
		hw.Raw(`<dd class="hits">Hits: ` + strconv.Itoa(stats.Hits) + `</dd>`)
		hw.Raw(`<dd class="misses">Misses: ` + strconv.Itoa(stats.Misses) + `</dd>`)
		hw.Raw(`<dd class="sunk">Ships sunk: ` + strconv.Itoa(len(stats.SunkShips)) + `</dd>`)
		hw.Raw(`<dd class="accuracy">Accuracy: ` + strconv.Itoa(stats.Accuracy()) + `%</dd>`)
		hw.Raw(`</dl>`)
	})
}

// PlacementControls renders ship selection, rotation and auto-place
func PlacementControls(g *model.Game) templ.Component {
	return Render(func(hw *Writer) {
		base := "/game/" + templ.EscapeString(string(g.ID))
		hw.Raw(`<div id="placement-controls">`)

		hw.Raw(`<form method="post" action="` + base + `/select" class="ship-select">`)
		for _, t := range g.RemainingShipTypes() {
			class := "ship-option"
			if t == g.SelectedShip {
				class += " selected"
			}
			hw.Raw(`<button type="submit" name="ship_type" value="` + string(t) + `" class="` + class + `">`)
			hw.Text(t.DisplayName() + " (" + strconv.Itoa(t.Length()) + ")")
			hw.Raw(`</button>`)
		}
		hw.Raw(`</form>`)

		orientation := "Horizontal"
		if g.Vertical {
			orientation = "Vertical"
		}
		hw.Raw(`<form method="post" action="` + base + `/rotate"><button type="submit" id="rotate">Orientation: ` + orientation + `</button></form>`)
		hw.Raw(`<form method="post" action="` + base + `/auto-place"><button type="submit" id="auto-place">Auto-place remaining</button></form>`)

		if g.SelectedShip != "" {
			hw.Raw(`<p id="selected-ship">Placing `)
			hw.Text(g.SelectedShip.DisplayName())
			hw.Raw(` - click your grid to set its bow</p>`)
		}
		hw.Raw(`</div>`)
	})
}

// Summary renders the end-of-game summary for both sides
func Summary(g *model.Game) templ.Component {
	return Render(func(hw *Writer) {
		hw.Raw(`<section id="game-summary"><h2>`)
		if g.Winner == model.SidePlayer {
			hw.Raw(`Victory`)
		} else {
			hw.Raw(`Defeat`)
		}
		hw.Raw(`</h2>`)
		hw.Component(Stats("summary-player", "You", g.PlayerStats))
		hw.Component(Stats("summary-computer", "Computer", g.ComputerStats))
		hw.Raw(`</section>`)
	})
}

// WrapForOOBSwap wraps HTML in a div with hx-swap-oob for out-of-band swaps
func WrapForOOBSwap(id, html string) string {
	return `<div id="` + templ.EscapeString(id) + `" hx-swap-oob="true">` + html + `</div>`
}
