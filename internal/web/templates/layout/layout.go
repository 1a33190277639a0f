package layout

import (
	"github.com/a-h/templ"

	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/web/templates/components"
)

// FlashMessage is a one-shot notice shown at the top of the next page
type FlashMessage struct {
	Type    string // "success", "error" or "info"
	Message string
}

// PageData holds the values every page shares
type PageData struct {
	Title        string
	Player       *model.Player
	Flash        *FlashMessage
	ActiveGameID model.GameID
}

// Base renders the document shell around body
func Base(data PageData, body templ.Component) templ.Component {
	return components.Render(func(hw *components.Writer) {
		hw.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><title>`)
		hw.Text(data.Title + " - Battleship")
		hw.Raw(`</title>`)
		hw.Raw(`<link rel="stylesheet" href="/static/style.css">`)
		hw.Raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		hw.Raw(`<script src="https://unpkg.com/htmx-ext-sse@2.2.2/sse.js"></script>`)
		hw.Raw(`</head><body><nav id="nav"><a href="/" class="brand">Battleship</a>`)
		if data.Player != nil {
			hw.Raw(`<span id="player-name">`)
			hw.Text(data.Player.DisplayName)
			hw.Raw(`</span>`)
			if data.ActiveGameID != "" {
				hw.Raw(`<a id="resume-game" href="/game/` + templ.EscapeString(string(data.ActiveGameID)) + `">Resume game</a>`)
			}
			hw.Raw(`<form method="post" action="/auth/logout"><button type="submit" id="logout">Log out</button></form>`)
		}
		hw.Raw(`</nav>`)
		if data.Flash != nil {
			hw.Raw(`<div class="flash flash-` + templ.EscapeString(data.Flash.Type) + `">`)
			hw.Text(data.Flash.Message)
			hw.Raw(`</div>`)
		}
		hw.Raw(`<main>`)
		hw.Component(body)
		hw.Raw(`</main></body></html>`)
	})
}

// ErrorPage renders a standalone error document
func ErrorPage(message string) templ.Component {
	return Base(PageData{Title: "Error"}, components.Render(func(hw *components.Writer) {
		hw.Raw(`<h1 id="error-title">`)
		hw.Text(message)
		hw.Raw(`</h1><p><a href="/">Return to home</a></p>`)
	}))
}
