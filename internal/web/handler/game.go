package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/services/game"
	"github.com/mcoot/battleship-go2/internal/web/middleware"
	"github.com/mcoot/battleship-go2/internal/web/sse"
	"github.com/mcoot/battleship-go2/internal/web/templates/layout"
	"github.com/mcoot/battleship-go2/internal/web/templates/pages"
)

// GameHandler handles game pages and actions
type GameHandler struct {
	gameController game.ControllerInterface
	hubManager     *sse.HubManager
	logger         *slog.Logger
}

// NewGameHandler creates a new GameHandler
func NewGameHandler(gameController game.ControllerInterface, hubManager *sse.HubManager, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		hubManager:     hubManager,
		logger:         logger.With(slog.String("component", "web-game")),
	}
}

// Create starts a new game and redirects to it
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())

	g, err := h.gameController.NewGame(r.Context(), player.ID)
	if err != nil {
		h.logger.Error("failed to create game",
			slog.String("player_id", string(player.ID)),
			slog.String("error", err.Error()))
		middleware.SetFlash(w, "error", "Could not start a game, please try again")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.redirect(w, r, gamePath(g.ID))
}

// View renders the game page
func (h *GameHandler) View(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.GetGameForPlayer(r.Context(), gameID, player.ID)
	if err != nil {
		h.handleLoadError(w, r, err)
		return
	}

	h.renderGame(w, r, g)
}

// Select chooses the ship to place next
func (h *GameHandler) Select(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	shipType, err := model.ParseShipType(r.FormValue("ship_type"))
	if err != nil {
		h.actionError(w, r, gameID, err)
		return
	}

	g, err := h.gameController.SelectShip(r.Context(), gameID, player.ID, shipType)
	h.respond(w, r, gameID, g, err)
}

// Rotate toggles the placement orientation
func (h *GameHandler) Rotate(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.ToggleOrientation(r.Context(), gameID, player.ID)
	h.respond(w, r, gameID, g, err)
}

// Cell handles a click on a grid cell: placement on the own grid, a shot on the enemy grid
func (h *GameHandler) Cell(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	pos, err := parseCell(r)
	if err != nil {
		h.actionError(w, r, gameID, err)
		return
	}

	outcome, err := h.gameController.ClickCell(r.Context(), gameID, player.ID, pos)
	if err != nil {
		h.actionError(w, r, gameID, err)
		return
	}
	h.respond(w, r, gameID, outcome.Game, nil)
}

// AutoPlace places the rest of the player's fleet
func (h *GameHandler) AutoPlace(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.AutoPlace(r.Context(), gameID, player.ID)
	h.respond(w, r, gameID, g, err)
}

// Reset abandons the game and starts a fresh one
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.Reset(r.Context(), gameID, player.ID)
	if err != nil {
		h.actionError(w, r, gameID, err)
		return
	}
	h.redirect(w, r, gamePath(g.ID))
}

// Events streams computer moves for a game over SSE
func (h *GameHandler) Events(w http.ResponseWriter, r *http.Request) {
	player := middleware.GetPlayer(r.Context())
	gameID := model.GameID(mux.Vars(r)["id"])

	g, err := h.gameController.GetGameForPlayer(r.Context(), gameID, player.ID)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrGameNotFound):
			http.Error(w, "Game not found", http.StatusNotFound)
		case errors.Is(err, model.ErrNotGameOwner):
			http.Error(w, "Not your game", http.StatusForbidden)
		default:
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	// 204 tells EventSource to stop reconnecting
	if g.Phase == model.PhaseGameOver {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	sse.ServeSSE(w, r, h.hubManager.GetOrCreateHub(gameID), player.ID)
}

// respond renders the updated game, or reports err
func (h *GameHandler) respond(w http.ResponseWriter, r *http.Request, gameID model.GameID, g *model.Game, err error) {
	if err != nil {
		h.actionError(w, r, gameID, err)
		return
	}
	if isHTMX(r) {
		h.renderGame(w, r, g)
		return
	}
	http.Redirect(w, r, gamePath(g.ID), http.StatusSeeOther)
}

// actionError turns a rejected action into a flash message on the game page
func (h *GameHandler) actionError(w http.ResponseWriter, r *http.Request, gameID model.GameID, err error) {
	message, known := actionErrorMessage(err)
	if !known {
		h.logger.Error("game action failed",
			slog.String("game_id", string(gameID)),
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()))
	}

	target := gamePath(gameID)
	if errors.Is(err, model.ErrGameNotFound) || errors.Is(err, model.ErrNotGameOwner) {
		target = "/"
	}
	middleware.SetFlash(w, "error", message)
	h.redirect(w, r, target)
}

func actionErrorMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, model.ErrInvalidPlacement):
		return "That ship does not fit there", true
	case errors.Is(err, model.ErrPlacementFailed):
		return "Could not find room for the remaining ships, try again", true
	case errors.Is(err, model.ErrShipAlreadyPlaced):
		return "That ship is already placed", true
	case errors.Is(err, model.ErrUnknownShipType):
		return "Unknown ship type", true
	case errors.Is(err, model.ErrInvalidPosition):
		return "Invalid cell", true
	case errors.Is(err, model.ErrGameNotFound):
		return "Game not found", true
	case errors.Is(err, model.ErrNotGameOwner):
		return "That game belongs to another player", true
	default:
		return "Something went wrong", false
	}
}

func (h *GameHandler) handleLoadError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrGameNotFound):
		middleware.SetFlash(w, "error", "Game not found")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case errors.Is(err, model.ErrNotGameOwner):
		middleware.RenderError(w, r, http.StatusForbidden, "That game belongs to another player")
	default:
		h.logger.Error("failed to load game", slog.String("error", err.Error()))
		middleware.RenderError(w, r, http.StatusInternalServerError, "Something went wrong")
	}
}

func (h *GameHandler) renderGame(w http.ResponseWriter, r *http.Request, g *model.Game) {
	data := pages.GameData{
		PageData: layout.PageData{
			Title:        "Game",
			Player:       middleware.GetPlayer(r.Context()),
			Flash:        middleware.GetFlash(r.Context()),
			ActiveGameID: g.ID,
		},
		Game: g,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pages.Game(data).Render(r.Context(), w); err != nil {
		h.logger.Error("failed to render game", slog.String("error", err.Error()))
	}
}

// redirect sends the browser to path, using HX-Redirect for HTMX requests
func (h *GameHandler) redirect(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMX(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// parseCell reads a clicked cell from either a "cell" label such as "B7"
// or numeric "x" and "y" fields
func parseCell(r *http.Request) (model.Position, error) {
	if label := r.FormValue("cell"); label != "" {
		return model.ParsePosition(label)
	}
	x, errX := strconv.Atoi(r.FormValue("x"))
	y, errY := strconv.Atoi(r.FormValue("y"))
	if errX != nil || errY != nil {
		return model.Position{}, model.ErrInvalidPosition
	}
	return model.Position{X: x, Y: y}, nil
}

func gamePath(id model.GameID) string {
	return "/game/" + string(id)
}

func isHTMX(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}
