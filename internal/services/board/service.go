package board

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/battleship-go2/internal/dependencies/random"
	"github.com/mcoot/battleship-go2/internal/model"
)

const (
	// MaxPlacementAttempts bounds the random origins tried per ship
	MaxPlacementAttempts = 100
	// DefaultLayoutRounds bounds how many fresh boards LayoutFleet tries
	DefaultLayoutRounds = 3
)

// Service provides fleet placement that depends on randomness
type Service struct {
	random random.Random
	logger *slog.Logger
}

// New creates a new BoardService
func New(rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		random: rnd,
		logger: logger.With(slog.String("component", "board-service")),
	}
}

// AutoPlaceShips places every ship type missing from board, in fleet order.
// Each ship gets up to MaxPlacementAttempts random origins and orientations;
// if one ship runs out of attempts the whole call fails with
// model.ErrPlacementFailed and no partial fleet is returned.
func (s *Service) AutoPlaceShips(board model.Board) (model.Board, error) {
	current := board
	for _, t := range model.ShipTypes() {
		if current.HasShipType(t) {
			continue
		}

		placed := false
		for attempt := 0; attempt < MaxPlacementAttempts; attempt++ {
			vertical := s.random.Bool()
			origin := model.Position{
				X: s.random.Intn(model.GridSize),
				Y: s.random.Intn(model.GridSize),
			}
			positions := ComputeShipPositions(origin, t, vertical)
			if !CanPlace(current, positions) {
				continue
			}

			next, err := PlaceShip(current, NewShip(t, positions, vertical))
			if err != nil {
				continue
			}
			current = next
			placed = true
			break
		}

		if !placed {
			s.logger.Debug("auto-placement exhausted attempts",
				slog.String("ship_type", string(t)),
				slog.Int("attempts", MaxPlacementAttempts),
			)
			return board, fmt.Errorf("%w: no room for %s", model.ErrPlacementFailed, t)
		}
	}
	return current, nil
}

// LayoutFleet completes the fleet on board, falling back to laying out the
// entire fleet on a fresh board up to rounds times
func (s *Service) LayoutFleet(board model.Board, rounds int) (model.Board, error) {
	placed, err := s.AutoPlaceShips(board)
	if err == nil {
		return placed, nil
	}

	for round := 0; round < rounds; round++ {
		placed, err = s.AutoPlaceShips(NewEmptyBoard())
		if err == nil {
			return placed, nil
		}
	}

	s.logger.Warn("fleet layout failed",
		slog.Int("rounds", rounds),
		slog.String("error", err.Error()),
	)
	return board, err
}

// Interface for dependency injection
type ServiceInterface interface {
	AutoPlaceShips(board model.Board) (model.Board, error)
	LayoutFleet(board model.Board, rounds int) (model.Board, error)
}

var _ ServiceInterface = (*Service)(nil)
