package pages

import (
	"github.com/a-h/templ"

	"github.com/mcoot/battleship-go2/internal/web/templates/components"
	"github.com/mcoot/battleship-go2/internal/web/templates/layout"
)

// HomeData holds data for the home page
type HomeData struct {
	layout.PageData
	Next string // path to return to after signing in
}

// Home renders the landing page: guest sign-in, or a button to start a game
func Home(data HomeData) templ.Component {
	return layout.Base(data.PageData, components.Render(func(hw *components.Writer) {
		hw.Raw(`<h1>Battleship</h1><p class="intro">Sink the computer's fleet before it sinks yours.</p>`)
		if data.Player == nil {
			hw.Raw(`<form method="post" action="/auth/guest" id="guest-form">`)
			hw.Raw(`<label for="display_name">Your name</label>`)
			hw.Raw(`<input type="text" id="display_name" name="display_name" maxlength="32" required>`)
			if data.Next != "" {
				hw.Raw(`<input type="hidden" name="next" value="` + templ.EscapeString(data.Next) + `">`)
			}
			hw.Raw(`<button type="submit">Play as guest</button></form>`)
			return
		}
		hw.Raw(`<form method="post" action="/game" id="new-game-form"><button type="submit">New game</button></form>`)
	}))
}
