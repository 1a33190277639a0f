package bot

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/mcoot/battleship-go2/internal/dependencies/clock"
	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/services/game"
)

const (
	// DefaultMoveDelay is the pause before the computer replies to a shot
	DefaultMoveDelay = 600 * time.Millisecond
	// moveTimeout bounds a single deferred computer move
	moveTimeout = 5 * time.Second
)

// GameController is the part of the game controller the computer drives
type GameController interface {
	GetGame(ctx context.Context, gameID model.GameID) (*model.Game, error)
	ComputerFire(ctx context.Context, gameID model.GameID, token int, pos model.Position) (*game.Outcome, error)
}

// Service plays the computer side: it schedules a reply after each player
// shot and fires it once the move delay has elapsed
type Service struct {
	games    GameController
	strategy Strategy
	clock    clock.Clock
	delay    time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	pending map[model.GameID]clock.Timer
	stopped bool
}

// NewService creates a new bot Service
func NewService(
	games GameController,
	strategy Strategy,
	clk clock.Clock,
	delay time.Duration,
	logger *slog.Logger,
) *Service {
	if delay < 0 {
		delay = 0
	}
	return &Service{
		games:    games,
		strategy: strategy,
		clock:    clk,
		delay:    delay,
		logger:   logger.With(slog.String("component", "bot-service")),
		pending:  make(map[model.GameID]clock.Timer),
	}
}

// Delay returns the configured move delay
func (s *Service) Delay() time.Duration {
	return s.delay
}

// Notify implements game.Notifier, scheduling replies to player shots and
// cancelling them when a game ends or is deleted
func (s *Service) Notify(ctx context.Context, event model.Event) {
	switch event.Type {
	case model.EventPlayerFired:
		payload, ok := event.Payload.(model.ShotPayload)
		if ok && payload.ReplyDue {
			s.ScheduleReply(event.GameID, payload.Turn)
		}
	case model.EventGameDeleted, model.EventGameOver:
		s.Cancel(event.GameID)
	}
}

// ScheduleReply arranges for the computer to fire at gameID after the move
// delay, provided the game is still at turn token by then
func (s *Service) ScheduleReply(gameID model.GameID, token int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	if existing, ok := s.pending[gameID]; ok {
		existing.Stop()
	}

	var timer clock.Timer
	timer = s.clock.AfterFunc(s.delay, func() {
		s.mu.Lock()
		if s.pending[gameID] == timer {
			delete(s.pending, gameID)
		}
		s.mu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), moveTimeout)
		defer cancel()
		if _, err := s.TakeTurn(ctx, gameID, token); err != nil {
			s.logger.Error("computer move failed",
				slog.String("game_id", string(gameID)),
				slog.Int("token", token),
				slog.String("error", err.Error()),
			)
		}
	})
	s.pending[gameID] = timer

	s.logger.Debug("computer reply scheduled",
		slog.String("game_id", string(gameID)),
		slog.Int("token", token),
		slog.Duration("delay", s.delay),
	)
}

// Cancel drops any pending reply for gameID
func (s *Service) Cancel(gameID model.GameID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if timer, ok := s.pending[gameID]; ok {
		timer.Stop()
		delete(s.pending, gameID)
	}
}

// Pending returns the number of scheduled replies
func (s *Service) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.pending)
}

// Stop cancels every pending reply and refuses new ones
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for gameID, timer := range s.pending {
		timer.Stop()
		delete(s.pending, gameID)
	}
}

// TakeTurn fires the computer's shot for gameID if the game is still waiting
// on the reply identified by token. Missing games, stale tokens and boards
// with no unfired cell are skipped without error.
func (s *Service) TakeTurn(ctx context.Context, gameID model.GameID, token int) (*game.Outcome, error) {
	g, err := s.games.GetGame(ctx, gameID)
	if err != nil {
		if errors.Is(err, model.ErrGameNotFound) {
			s.logger.Debug("skipping computer move for missing game", slog.String("game_id", string(gameID)))
			return &game.Outcome{}, nil
		}
		return nil, err
	}

	if g.Phase != model.PhaseBattle || !g.ComputerTurn || g.Turn != token {
		return &game.Outcome{Game: g}, nil
	}

	target, ok := s.strategy.ChooseTarget(g.PlayerBoard)
	if !ok {
		s.logger.Warn("computer has no cell left to fire at", slog.String("game_id", string(gameID)))
		return &game.Outcome{Game: g}, nil
	}

	outcome, err := s.games.ComputerFire(ctx, gameID, token, target)
	if err != nil {
		return nil, err
	}

	if outcome.Accepted {
		s.logger.Info("computer fired",
			slog.String("game_id", string(gameID)),
			slog.String("position", target.Label()),
			slog.Bool("hit", outcome.Shot.Hit),
		)
	}
	return outcome, nil
}
