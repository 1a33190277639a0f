package bot_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship-go2/internal/dependencies/mocks"
	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/services/board"
	"github.com/mcoot/battleship-go2/internal/services/bot"
	"github.com/mcoot/battleship-go2/internal/services/game"
	"github.com/mcoot/battleship-go2/internal/storage/memory"
	"github.com/mcoot/battleship-go2/internal/testutil"
)

const moveDelay = 500 * time.Millisecond

type ServiceSuite struct {
	suite.Suite
	store      *memory.Storage
	mockClock  *mocks.MockClock
	mockRandom *mocks.MockRandom
	mockIDs    *mocks.MockIDGenerator

	gameController *game.Controller
	botService     *bot.Service

	ctx context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.store = memory.New()
	s.mockClock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.mockRandom = mocks.NewMockRandom()
	s.mockIDs = mocks.NewMockIDGenerator()
	logger := testutil.NopLogger()
	s.ctx = context.Background()

	boardService := board.New(s.mockRandom, logger)
	s.gameController = game.NewController(s.store, boardService, s.mockClock, s.mockIDs, logger)

	strategy := bot.NewRandomStrategy(s.mockRandom)
	s.botService = bot.NewService(s.gameController, strategy, s.mockClock, moveDelay, logger)
	s.gameController.SetNotifier(s.botService)
}

// battleGame creates a game in battle with both fleets in the standard layout
func (s *ServiceSuite) battleGame() *model.Game {
	testutil.QueueStandardFleet(s.mockRandom)
	g, err := s.gameController.NewGame(s.ctx, "player-1")
	s.Require().NoError(err)

	testutil.QueueStandardFleet(s.mockRandom)
	g, err = s.gameController.AutoPlace(s.ctx, g.ID, "player-1")
	s.Require().NoError(err)
	return g
}

func (s *ServiceSuite) TestReplyFiresAfterDelay() {
	g := s.battleGame()

	_, err := s.gameController.Fire(s.ctx, g.ID, "player-1", model.Position{X: 9, Y: 9})
	s.Require().NoError(err)
	s.Equal(1, s.botService.Pending())

	// Index 0 of the unfired cells is (0,0), a carrier cell
	s.mockRandom.QueueIntn(0)

	s.mockClock.Advance(moveDelay - time.Millisecond)
	waiting, _ := s.gameController.GetGame(s.ctx, g.ID)
	s.True(waiting.ComputerTurn)
	s.Equal(0, waiting.ComputerStats.Shots())

	s.mockClock.Advance(time.Millisecond)
	updated, _ := s.gameController.GetGame(s.ctx, g.ID)
	s.False(updated.ComputerTurn)
	s.Equal(1, updated.ComputerStats.Hits)
	s.Equal(model.SideComputer, updated.LastShot.Side)
	s.Equal(model.Position{X: 0, Y: 0}, updated.LastShot.Position)
	s.Equal(0, s.botService.Pending())
}

func (s *ServiceSuite) TestNoReplyAfterWinningShot() {
	g := s.battleGame()
	targets := testutil.StandardFleetCells()

	for i, pos := range targets {
		outcome, err := s.gameController.Fire(s.ctx, g.ID, "player-1", pos)
		s.Require().NoError(err)
		s.Require().True(outcome.Accepted, "shot %d", i)
		if outcome.GameOver {
			break
		}
		// Computer picks the last unfired cell each time: (9,9), (8,9), ...
		s.mockRandom.QueueIntn(99 - i)
		s.mockClock.Advance(moveDelay)
	}

	final, _ := s.gameController.GetGame(s.ctx, g.ID)
	s.Equal(model.PhaseGameOver, final.Phase)
	s.Equal(model.SidePlayer, final.Winner)
	s.Equal(0, s.botService.Pending())

	s.mockClock.Advance(moveDelay)
	after, _ := s.gameController.GetGame(s.ctx, g.ID)
	s.Equal(final.ComputerStats, after.ComputerStats)
}

func (s *ServiceSuite) TestResetCancelsPendingReply() {
	g := s.battleGame()
	_, err := s.gameController.Fire(s.ctx, g.ID, "player-1", model.Position{X: 9, Y: 9})
	s.Require().NoError(err)

	testutil.QueueStandardFleet(s.mockRandom)
	fresh, err := s.gameController.Reset(s.ctx, g.ID, "player-1")
	s.Require().NoError(err)
	s.Equal(0, s.botService.Pending())

	s.mockClock.Advance(moveDelay)
	current, _ := s.gameController.GetGame(s.ctx, fresh.ID)
	s.Equal(0, current.ComputerStats.Shots())
	s.Equal(model.PhasePlacement, current.Phase)
}

func (s *ServiceSuite) TestTakeTurnWithStaleTokenIsSkipped() {
	g := s.battleGame()
	first, err := s.gameController.Fire(s.ctx, g.ID, "player-1", model.Position{X: 9, Y: 9})
	s.Require().NoError(err)
	s.botService.Cancel(g.ID)

	s.mockRandom.QueueIntn(0)
	outcome, err := s.botService.TakeTurn(s.ctx, g.ID, first.ReplyToken())
	s.Require().NoError(err)
	s.True(outcome.Accepted)

	stale, err := s.botService.TakeTurn(s.ctx, g.ID, first.ReplyToken())
	s.Require().NoError(err)
	s.False(stale.Accepted)

	current, _ := s.gameController.GetGame(s.ctx, g.ID)
	s.Equal(1, current.ComputerStats.Shots())
}

func (s *ServiceSuite) TestTakeTurnForMissingGameIsSkipped() {
	outcome, err := s.botService.TakeTurn(s.ctx, "missing", 1)
	s.Require().NoError(err)
	s.False(outcome.Accepted)
}

func (s *ServiceSuite) TestStopCancelsEverything() {
	g := s.battleGame()
	_, err := s.gameController.Fire(s.ctx, g.ID, "player-1", model.Position{X: 9, Y: 9})
	s.Require().NoError(err)

	s.botService.Stop()
	s.Equal(0, s.botService.Pending())

	s.mockClock.Advance(moveDelay)
	current, _ := s.gameController.GetGame(s.ctx, g.ID)
	s.True(current.ComputerTurn)

	s.botService.ScheduleReply(g.ID, current.Turn)
	s.Equal(0, s.botService.Pending())
}
