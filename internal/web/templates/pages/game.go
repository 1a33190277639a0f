package pages

import (
	"github.com/a-h/templ"

	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/web/templates/components"
	"github.com/mcoot/battleship-go2/internal/web/templates/layout"
)

// GameData holds data for the game page
type GameData struct {
	layout.PageData
	Game *model.Game
}

// Game renders the full game page
func Game(data GameData) templ.Component {
	return layout.Base(data.PageData, GameContent(data.Game))
}

// GameContent renders the part of the page that is refreshed after every move
func GameContent(g *model.Game) templ.Component {
	return components.Render(func(hw *components.Writer) {
		base := "/game/" + templ.EscapeString(string(g.ID))

		hw.Raw(`<div id="game" data-game-id="` + templ.EscapeString(string(g.ID)) + `" data-phase="` + string(g.Phase) + `"`)
		if !g.IsOver() {
			// Computer moves arrive over SSE and trigger a refresh of this block
			hw.Raw(` hx-ext="sse" sse-connect="` + base + `/events" hx-get="` + base + `" hx-trigger="sse:computer-fired, sse:game-over" hx-select="#game" hx-swap="outerHTML"`)
		}
		hw.Raw(`>`)

		hw.Component(components.GameStatus(g))
		hw.Component(components.LastShot(g.LastShot))

		if g.Phase == model.PhasePlacement {
			hw.Component(components.PlacementControls(g))
		}

		hw.Raw(`<div class="boards"><section class="own"><h2>Your fleet</h2>`)
		own := components.BoardView{ID: "player-board", Board: g.PlayerBoard, Reveal: true}
		if g.Phase == model.PhasePlacement && g.SelectedShip != "" {
			own.Action = base + "/cell"
		}
		hw.Component(components.Board(own))
		hw.Component(components.ShipList("player-ships", "Your ships", g.PlayerBoard))
		hw.Raw(`</section>`)

		if g.Phase != model.PhasePlacement {
			hw.Raw(`<section class="enemy"><h2>Enemy waters</h2>`)
			enemy := components.BoardView{ID: "opponent-board", Board: g.OpponentBoard, Reveal: g.IsOver(), OnlyUnfired: true}
			if g.IsPlayerTurn() {
				enemy.Action = base + "/cell"
			}
			hw.Component(components.Board(enemy))
			hw.Component(components.ShipList("opponent-ships", "Enemy ships", g.OpponentBoard))
			hw.Raw(`</section>`)
		}
		hw.Raw(`</div>`)

		if g.IsOver() {
			hw.Component(components.Summary(g))
		} else if g.Phase == model.PhaseBattle {
			hw.Component(components.Stats("player-stats", "Your shots", g.PlayerStats))
			hw.Component(components.Stats("computer-stats", "Computer shots", g.ComputerStats))
		}

		hw.Raw(`<form method="post" action="` + base + `/reset" id="reset-form"><button type="submit">New game</button></form>`)
		hw.Raw(`</div>`)
	})
}
