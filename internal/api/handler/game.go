package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/battleship-go2/internal/api/middleware"
	"github.com/mcoot/battleship-go2/internal/api/request"
	"github.com/mcoot/battleship-go2/internal/api/response"
	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/services/game"
)

// GameHandler handles game-related endpoints
type GameHandler struct {
	gameController game.ControllerInterface
	logger         *slog.Logger
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController game.ControllerInterface, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		gameController: gameController,
		logger:         logger.With(slog.String("component", "api-game")),
	}
}

// Create handles POST /api/v1/games
func (h *GameHandler) Create(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.gameController.NewGame(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.GameStateFromModel(g))
}

// Get handles GET /api/v1/games/{id}
func (h *GameHandler) Get(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.gameController.GetGameForPlayer(r.Context(), gameID(r), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.GameStateFromModel(g))
}

// Active handles GET /api/v1/games/active
func (h *GameHandler) Active(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.gameController.GetActiveGame(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.GameStateFromModel(g))
}

// Select handles POST /api/v1/games/{id}/select
func (h *GameHandler) Select(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.SelectShipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	shipType, err := model.ParseShipType(req.ShipType)
	if err != nil {
		WriteError(w, err)
		return
	}

	g, err := h.gameController.SelectShip(r.Context(), gameID(r), player.ID, shipType)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.GameStateFromModel(g))
}

// Rotate handles POST /api/v1/games/{id}/rotate
func (h *GameHandler) Rotate(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.gameController.ToggleOrientation(r.Context(), gameID(r), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.GameStateFromModel(g))
}

// PlaceShip handles POST /api/v1/games/{id}/ships
func (h *GameHandler) PlaceShip(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.PlaceShipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.X == nil || req.Y == nil {
		WriteError(w, NewInvalidRequestError("x and y are required"))
		return
	}
	shipType, err := model.ParseShipType(req.ShipType)
	if err != nil {
		WriteError(w, err)
		return
	}

	origin := model.Position{X: *req.X, Y: *req.Y}
	g, err := h.gameController.PlaceShip(r.Context(), gameID(r), player.ID, shipType, origin, req.Vertical)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.GameStateFromModel(g))
}

// AutoPlace handles POST /api/v1/games/{id}/auto-place
func (h *GameHandler) AutoPlace(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.gameController.AutoPlace(r.Context(), gameID(r), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.GameStateFromModel(g))
}

// Fire handles POST /api/v1/games/{id}/fire
func (h *GameHandler) Fire(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.FireRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	pos, err := targetPosition(req)
	if err != nil {
		WriteError(w, err)
		return
	}

	outcome, err := h.gameController.Fire(r.Context(), gameID(r), player.ID, pos)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.OK(w, response.FireResponseFromOutcome(outcome.Accepted, outcome.Shot, outcome.GameOver, outcome.Game))
}

// Reset handles POST /api/v1/games/{id}/reset
func (h *GameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	g, err := h.gameController.Reset(r.Context(), gameID(r), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.Created(w, response.GameStateFromModel(g))
}

func gameID(r *http.Request) model.GameID {
	return model.GameID(mux.Vars(r)["id"])
}

func targetPosition(req request.FireRequest) (model.Position, error) {
	if req.Cell != "" {
		return model.ParsePosition(req.Cell)
	}
	if req.X == nil || req.Y == nil {
		return model.Position{}, NewInvalidRequestError("x and y, or cell, are required")
	}
	pos := model.Position{X: *req.X, Y: *req.Y}
	if !model.IsValidPosition(pos) {
		return model.Position{}, model.ErrInvalidPosition
	}
	return pos, nil
}
