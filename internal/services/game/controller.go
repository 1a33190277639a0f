package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/mcoot/battleship-go2/internal/dependencies/clock"
	"github.com/mcoot/battleship-go2/internal/dependencies/idgen"
	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/services/board"
	"github.com/mcoot/battleship-go2/internal/storage"
)

// Notifier receives game events after they have been persisted
type Notifier interface {
	Notify(ctx context.Context, event model.Event)
}

// Outcome describes the result of a click or shot
type Outcome struct {
	Game     *model.Game
	Accepted bool        // false when the action was ignored
	Shot     *model.Shot // nil for placement clicks and ignored actions
	SunkShip *model.Ship // ship sunk by this shot, if any
	GameOver bool
}

// ReplyDue reports whether the computer should now take its turn
func (o *Outcome) ReplyDue() bool {
	return o.Accepted && o.Shot != nil && o.Game != nil && o.Game.Phase == model.PhaseBattle && o.Game.ComputerTurn
}

// ReplyToken identifies the state a computer reply is scheduled against
func (o *Outcome) ReplyToken() int {
	if o.Game == nil {
		return 0
	}
	return o.Game.Turn
}

// Controller manages the phase machine and turn flow of games.
// Transitions are serialized; each one loads a game, mutates a clone and
// saves the clone.
type Controller struct {
	storage      storage.Storage
	boardService board.ServiceInterface
	clock        clock.Clock
	ids          idgen.Generator
	logger       *slog.Logger

	mu       sync.Mutex
	notifier Notifier
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	boardService board.ServiceInterface,
	clock clock.Clock,
	ids idgen.Generator,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		boardService: boardService,
		clock:        clock,
		ids:          ids,
		logger:       logger.With(slog.String("component", "game-controller")),
	}
}

// SetNotifier registers the receiver of game events
func (c *Controller) SetNotifier(n Notifier) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notifier = n
}

// transition collects the effects of a single state change
type transition struct {
	changed bool
	events  []model.Event
}

func (t *transition) emit(eventType model.EventType, payload any) {
	t.events = append(t.events, model.Event{Type: eventType, Payload: payload})
}

// NewGame starts a match for the player with a randomly laid out opponent
// fleet, replacing any game the player already has
func (c *Controller) NewGame(ctx context.Context, playerID model.PlayerID) (*model.Game, error) {
	c.mu.Lock()
	game, replaced, err := c.createGame(ctx, playerID, "")
	notifier := c.notifier
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	c.publish(ctx, notifier, game, deletedEvents(replaced, game.ID))
	c.publish(ctx, notifier, game, []model.Event{{Type: model.EventGameCreated}})
	return game, nil
}

// createGame must be called with c.mu held. The new game is saved and made
// active before the games it replaces (the player's previous active game and
// replacing, if set) are deleted, so a failure leaves the old game playable.
func (c *Controller) createGame(ctx context.Context, playerID model.PlayerID, replacing model.GameID) (*model.Game, []model.GameID, error) {
	opponent, err := c.boardService.LayoutFleet(board.NewEmptyBoard(), board.DefaultLayoutRounds)
	if err != nil {
		c.logger.Error("failed to lay out opponent fleet",
			slog.String("player_id", string(playerID)),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}

	var replaced []model.GameID
	if replacing != "" {
		replaced = append(replaced, replacing)
	}
	previous, err := c.storage.GetActiveGame(ctx, playerID)
	switch {
	case err == nil:
		if previous != replacing {
			replaced = append(replaced, previous)
		}
	case !errors.Is(err, model.ErrNoActiveGame):
		return nil, nil, err
	}

	now := c.clock.Now()
	game := &model.Game{
		ID:            model.GameID(c.ids.NewID()),
		PlayerID:      playerID,
		Phase:         model.PhasePlacement,
		PlayerBoard:   board.NewEmptyBoard(),
		OpponentBoard: opponent,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := c.storage.SaveGame(ctx, game); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(game.ID)),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}
	if err := c.storage.SetActiveGame(ctx, playerID, game.ID); err != nil {
		return nil, nil, err
	}

	for _, id := range replaced {
		if err := c.storage.DeleteGame(ctx, id); err != nil {
			c.logger.Warn("failed to delete replaced game",
				slog.String("game_id", string(id)),
				slog.String("error", err.Error()),
			)
		}
	}

	c.logger.Info("game created",
		slog.String("game_id", string(game.ID)),
		slog.String("player_id", string(playerID)),
		slog.Int("replaced", len(replaced)),
	)
	return game, replaced, nil
}

func deletedEvents(ids []model.GameID, replacedBy model.GameID) []model.Event {
	events := make([]model.Event, 0, len(ids))
	for _, id := range ids {
		events = append(events, model.Event{
			Type:    model.EventGameDeleted,
			GameID:  id,
			Payload: model.GameDeletedPayload{ReplacedBy: replacedBy},
		})
	}
	return events
}

// GetGame retrieves a game by ID
func (c *Controller) GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error) {
	return c.storage.GetGame(ctx, gameID)
}

// GetGameForPlayer retrieves a game and checks that the player owns it
func (c *Controller) GetGameForPlayer(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	game, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if game.PlayerID != playerID {
		return nil, model.ErrNotGameOwner
	}
	return game, nil
}

// GetActiveGame returns the game the player is currently playing
func (c *Controller) GetActiveGame(ctx context.Context, playerID model.PlayerID) (*model.Game, error) {
	gameID, err := c.storage.GetActiveGame(ctx, playerID)
	if err != nil {
		return nil, err
	}
	game, err := c.GetGameForPlayer(ctx, gameID, playerID)
	if errors.Is(err, model.ErrGameNotFound) {
		// The pointer outlived its game
		if err := c.storage.ClearActiveGame(ctx, playerID); err != nil {
			return nil, err
		}
		return nil, model.ErrNoActiveGame
	}
	return game, err
}

// SelectShip chooses the ship type the next placement click will place
func (c *Controller) SelectShip(ctx context.Context, gameID model.GameID, playerID model.PlayerID, shipType model.ShipType) (*model.Game, error) {
	return c.update(ctx, gameID, playerID, func(g *model.Game, t *transition) error {
		if g.Phase != model.PhasePlacement {
			return nil
		}
		if !shipType.IsValid() {
			return fmt.Errorf("%w: %q", model.ErrUnknownShipType, shipType)
		}
		if g.PlayerBoard.HasShipType(shipType) {
			return fmt.Errorf("%w: %s", model.ErrShipAlreadyPlaced, shipType)
		}
		g.SelectedShip = shipType
		t.changed = true
		return nil
	})
}

// ToggleOrientation flips between horizontal and vertical placement
func (c *Controller) ToggleOrientation(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	return c.update(ctx, gameID, playerID, func(g *model.Game, t *transition) error {
		if g.Phase != model.PhasePlacement {
			return nil
		}
		g.Vertical = !g.Vertical
		t.changed = true
		return nil
	})
}

// PlaceShip places a ship of the given type with its first cell at origin
func (c *Controller) PlaceShip(ctx context.Context, gameID model.GameID, playerID model.PlayerID, shipType model.ShipType, origin model.Position, vertical bool) (*model.Game, error) {
	return c.update(ctx, gameID, playerID, func(g *model.Game, t *transition) error {
		if g.Phase != model.PhasePlacement {
			return nil
		}
		return c.placeShip(g, t, shipType, origin, vertical)
	})
}

// ClickCell applies a click on the player's own board during placement, or
// on the opponent board during battle
func (c *Controller) ClickCell(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pos model.Position) (*Outcome, error) {
	current, err := c.GetGameForPlayer(ctx, gameID, playerID)
	if err != nil {
		return nil, err
	}
	if current.Phase == model.PhaseBattle {
		return c.Fire(ctx, gameID, playerID, pos)
	}

	outcome := &Outcome{}
	game, err := c.update(ctx, gameID, playerID, func(g *model.Game, t *transition) error {
		if g.Phase != model.PhasePlacement || g.SelectedShip == "" {
			return nil
		}
		if err := c.placeShip(g, t, g.SelectedShip, pos, g.Vertical); err != nil {
			return err
		}
		outcome.Accepted = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	outcome.Game = game
	return outcome, nil
}

// placeShip validates and applies a placement to g
func (c *Controller) placeShip(g *model.Game, t *transition, shipType model.ShipType, origin model.Position, vertical bool) error {
	if !shipType.IsValid() {
		return fmt.Errorf("%w: %q", model.ErrUnknownShipType, shipType)
	}
	if g.PlayerBoard.HasShipType(shipType) {
		return fmt.Errorf("%w: %s", model.ErrShipAlreadyPlaced, shipType)
	}

	positions := board.ComputeShipPositions(origin, shipType, vertical)
	updated, err := board.PlaceShip(g.PlayerBoard, board.NewShip(shipType, positions, vertical))
	if err != nil {
		return fmt.Errorf("%w at %v", err, origin)
	}

	g.PlayerBoard = updated
	if g.SelectedShip == shipType {
		g.SelectedShip = ""
	}
	t.changed = true
	t.emit(model.EventShipPlaced, shipType)

	if len(g.PlayerBoard.Ships) == model.FleetSize {
		c.startBattle(g, t)
	}
	return nil
}

// AutoPlace lays out the rest of the player's fleet and starts the battle
func (c *Controller) AutoPlace(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	return c.update(ctx, gameID, playerID, func(g *model.Game, t *transition) error {
		if g.Phase != model.PhasePlacement {
			return nil
		}
		placed, err := c.boardService.LayoutFleet(g.PlayerBoard, board.DefaultLayoutRounds)
		if err != nil {
			return err
		}
		g.PlayerBoard = placed
		g.SelectedShip = ""
		t.changed = true
		c.startBattle(g, t)
		return nil
	})
}

func (c *Controller) startBattle(g *model.Game, t *transition) {
	g.Phase = model.PhaseBattle
	g.ComputerTurn = false
	t.emit(model.EventBattleStarted, nil)
	c.logger.Info("battle started", slog.String("game_id", string(g.ID)))
}

// Fire resolves the player's shot at the opponent board. Shots outside the
// player's turn or at cells already fired at are ignored.
func (c *Controller) Fire(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pos model.Position) (*Outcome, error) {
	outcome := &Outcome{}
	game, err := c.update(ctx, gameID, playerID, func(g *model.Game, t *transition) error {
		if !g.IsPlayerTurn() {
			return nil
		}
		c.resolveShot(g, t, outcome, model.SidePlayer, pos)
		return nil
	})
	if err != nil {
		return nil, err
	}
	outcome.Game = game
	return outcome, nil
}

// ComputerFire resolves the computer's shot at the player board. The shot is
// only applied if the game still awaits the computer reply identified by
// token; anything else is a stale reply and is ignored.
func (c *Controller) ComputerFire(ctx context.Context, gameID model.GameID, token int, pos model.Position) (*Outcome, error) {
	c.mu.Lock()
	current, err := c.storage.GetGame(ctx, gameID)
	if err != nil {
		c.mu.Unlock()
		if errors.Is(err, model.ErrGameNotFound) {
			return &Outcome{}, nil
		}
		return nil, err
	}
	if current.Phase != model.PhaseBattle || !current.ComputerTurn || current.Turn != token {
		c.mu.Unlock()
		c.logger.Debug("ignoring stale computer move",
			slog.String("game_id", string(gameID)),
			slog.Int("token", token),
			slog.Int("turn", current.Turn),
		)
		return &Outcome{Game: current}, nil
	}

	outcome := &Outcome{}
	t := &transition{}
	next := current.Clone()
	c.resolveShot(next, t, outcome, model.SideComputer, pos)
	game, notifier, err := c.commit(ctx, current, next, t)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	c.publish(ctx, notifier, game, t.events)
	outcome.Game = game
	return outcome, nil
}

// resolveShot applies a shot by side at pos, updating the target board, the
// shooter's stats, the turn and the winner
func (c *Controller) resolveShot(g *model.Game, t *transition, outcome *Outcome, side model.Side, pos model.Position) {
	target, stats := &g.OpponentBoard, &g.PlayerStats
	if side == model.SideComputer {
		target, stats = &g.PlayerBoard, &g.ComputerStats
	}

	result, ok := board.Fire(*target, pos)
	if !ok {
		return
	}

	*target = result.Board
	shot := model.Shot{Side: side, Position: pos, Hit: result.Hit}
	if result.Hit {
		stats.Hits++
		if result.Sunk && !stats.HasSunk(result.Ship.ID) {
			stats.SunkShips = append(stats.SunkShips, result.Ship.Clone())
			shot.Sunk = result.Ship.Type
			sunk := result.Ship.Clone()
			outcome.SunkShip = &sunk
		}
	} else {
		stats.Misses++
	}

	g.Turn++
	g.LastShot = &shot
	outcome.Accepted = true
	outcome.Shot = &shot
	t.changed = true

	c.logger.Debug("shot resolved",
		slog.String("game_id", string(g.ID)),
		slog.String("side", string(side)),
		slog.String("position", pos.Label()),
		slog.Bool("hit", shot.Hit),
	)

	if len(target.Ships) > 0 && len(stats.SunkShips) == len(target.Ships) {
		g.Phase = model.PhaseGameOver
		g.Winner = side
		g.ComputerTurn = false
		outcome.GameOver = true
		c.logger.Info("game over",
			slog.String("game_id", string(g.ID)),
			slog.String("winner", string(side)),
			slog.Int("turns", g.Turn),
		)
	} else {
		g.ComputerTurn = side == model.SidePlayer
	}

	eventType := model.EventPlayerFired
	if side == model.SideComputer {
		eventType = model.EventComputerFired
	}
	t.emit(eventType, model.ShotPayload{
		Shot:     shot,
		Accuracy: stats.Accuracy(),
		Turn:     g.Turn,
		ReplyDue: g.Phase == model.PhaseBattle && g.ComputerTurn,
	})
	if outcome.GameOver {
		t.emit(model.EventGameOver, model.GameOverPayload{Winner: side})
	}
}

// Reset discards the game and starts a fresh one for the same player. The
// old game survives if the new one cannot be created.
func (c *Controller) Reset(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error) {
	c.mu.Lock()
	old, err := c.storage.GetGame(ctx, gameID)
	if err == nil && old.PlayerID != playerID {
		err = model.ErrNotGameOwner
	}
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}

	game, replaced, err := c.createGame(ctx, playerID, gameID)
	notifier := c.notifier
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	c.logger.Info("game reset",
		slog.String("old_game_id", string(gameID)),
		slog.String("game_id", string(game.ID)),
	)
	c.publish(ctx, notifier, game, deletedEvents(replaced, game.ID))
	c.publish(ctx, notifier, game, []model.Event{{Type: model.EventGameCreated}})
	return game, nil
}

// update runs fn against a clone of the player's game and saves the result
// if fn reports a change. Ignored actions return the unchanged game.
func (c *Controller) update(ctx context.Context, gameID model.GameID, playerID model.PlayerID, fn func(g *model.Game, t *transition) error) (*model.Game, error) {
	c.mu.Lock()
	current, err := c.storage.GetGame(ctx, gameID)
	if err == nil && current.PlayerID != playerID {
		err = model.ErrNotGameOwner
	}
	if err != nil {
		c.mu.Unlock()
		return nil, err
	}

	t := &transition{}
	next := current.Clone()
	if err := fn(next, t); err != nil {
		c.mu.Unlock()
		return nil, err
	}
	game, notifier, err := c.commit(ctx, current, next, t)
	c.mu.Unlock()
	if err != nil {
		return nil, err
	}

	c.publish(ctx, notifier, game, t.events)
	return game, nil
}

// commit saves next if the transition changed anything; c.mu must be held
func (c *Controller) commit(ctx context.Context, current, next *model.Game, t *transition) (*model.Game, Notifier, error) {
	if !t.changed {
		return current, c.notifier, nil
	}
	next.UpdatedAt = c.clock.Now()
	if err := c.storage.SaveGame(ctx, next); err != nil {
		c.logger.Error("failed to save game",
			slog.String("game_id", string(next.ID)),
			slog.String("error", err.Error()),
		)
		return nil, nil, err
	}
	return next, c.notifier, nil
}

func (c *Controller) publish(ctx context.Context, notifier Notifier, game *model.Game, events []model.Event) {
	if notifier == nil || game == nil {
		return
	}
	now := c.clock.Now()
	for _, event := range events {
		event.Timestamp = now
		if event.GameID == "" {
			event.GameID = game.ID
		}
		event.PlayerID = game.PlayerID
		notifier.Notify(ctx, event)
	}
}

// ControllerInterface is the set of operations handlers depend on
type ControllerInterface interface {
	NewGame(ctx context.Context, playerID model.PlayerID) (*model.Game, error)
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	GetGameForPlayer(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error)
	GetActiveGame(ctx context.Context, playerID model.PlayerID) (*model.Game, error)
	SelectShip(ctx context.Context, gameID model.GameID, playerID model.PlayerID, shipType model.ShipType) (*model.Game, error)
	ToggleOrientation(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error)
	PlaceShip(ctx context.Context, gameID model.GameID, playerID model.PlayerID, shipType model.ShipType, origin model.Position, vertical bool) (*model.Game, error)
	ClickCell(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pos model.Position) (*Outcome, error)
	AutoPlace(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error)
	Fire(ctx context.Context, gameID model.GameID, playerID model.PlayerID, pos model.Position) (*Outcome, error)
	ComputerFire(ctx context.Context, gameID model.GameID, token int, pos model.Position) (*Outcome, error)
	Reset(ctx context.Context, gameID model.GameID, playerID model.PlayerID) (*model.Game, error)
}

var _ ControllerInterface = (*Controller)(nil)
