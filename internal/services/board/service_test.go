package board

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/battleship-go2/internal/dependencies/mocks"
	"github.com/mcoot/battleship-go2/internal/dependencies/random"
	"github.com/mcoot/battleship-go2/internal/model"
	"github.com/mcoot/battleship-go2/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	random  *mocks.MockRandom
	service *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.random = mocks.NewMockRandom()
	s.service = New(s.random, testutil.NopLogger())
}

// assertValidFleet checks the fleet invariants that every layout must hold
func (s *ServiceSuite) assertValidFleet(b model.Board) {
	s.Require().Len(b.Ships, model.FleetSize)

	occupied := make(map[model.Position]string)
	for i, ship := range b.Ships {
		s.Equal(model.ShipTypes()[i], ship.Type)
		s.Len(ship.Positions, ship.Type.Length())
		s.Empty(ship.Hits)
		for _, pos := range ship.Positions {
			s.True(model.IsValidPosition(pos), "ship %s off board at %v", ship.ID, pos)
			_, taken := occupied[pos]
			s.False(taken, "overlap at %v", pos)
			occupied[pos] = ship.ID
		}
	}

	for pos, id := range occupied {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				other, ok := occupied[model.Position{X: pos.X + dx, Y: pos.Y + dy}]
				if ok {
					s.Equal(id, other, "ships %s and %s touch near %v", id, other, pos)
				}
			}
		}
		cell, _ := b.Cell(pos)
		s.Equal(id, cell.ShipID)
	}
}

// AutoPlaceShips tests

func (s *ServiceSuite) TestAutoPlaceShipsUsesQueuedLayout() {
	testutil.QueueStandardFleet(s.random)

	b, err := s.service.AutoPlaceShips(NewEmptyBoard())
	s.Require().NoError(err)

	s.assertValidFleet(b)
	for _, pos := range testutil.StandardFleetCells() {
		cell, _ := b.Cell(pos)
		s.True(cell.IsOccupied(), "expected ship at %v", pos)
	}
}

func (s *ServiceSuite) TestAutoPlaceShipsRetriesInvalidOrigins() {
	s.random.QueuePlacement(false, 8, 0) // carrier off the board
	s.random.QueuePlacement(true, 0, 0)
	s.random.QueuePlacement(false, 0, 0) // battleship overlapping carrier
	s.random.QueuePlacement(false, 2, 2)
	s.random.QueuePlacement(false, 2, 4)
	s.random.QueuePlacement(false, 2, 6)
	s.random.QueuePlacement(false, 2, 8)

	b, err := s.service.AutoPlaceShips(NewEmptyBoard())
	s.Require().NoError(err)

	s.assertValidFleet(b)
	carrier := b.Ship(ShipID(model.ShipCarrier))
	s.Require().NotNil(carrier)
	s.True(carrier.Vertical)
	s.Equal(model.Position{X: 0, Y: 4}, carrier.Positions[4])
}

func (s *ServiceSuite) TestAutoPlaceShipsKeepsPlacedShips() {
	b, err := PlaceShip(NewEmptyBoard(), NewShip(model.ShipCarrier,
		ComputeShipPositions(model.Position{X: 0, Y: 0}, model.ShipCarrier, false), false))
	s.Require().NoError(err)

	for _, row := range testutil.StandardFleetRows[1:] {
		s.random.QueuePlacement(false, 0, row)
	}

	b, err = s.service.AutoPlaceShips(b)
	s.Require().NoError(err)
	s.assertValidFleet(b)
}

func (s *ServiceSuite) TestAutoPlaceShipsFailsWhenAttemptsExhausted() {
	// Once the queue is empty the mock always answers horizontal at (0,0),
	// which the carrier already occupies.
	s.random.QueuePlacement(false, 0, 0)

	input := NewEmptyBoard()
	b, err := s.service.AutoPlaceShips(input)
	s.ErrorIs(err, model.ErrPlacementFailed)
	s.Empty(b.Ships)
	s.Empty(input.Ships)
}

func (s *ServiceSuite) TestAutoPlaceShipsAlwaysProducesValidFleet() {
	service := New(random.New(), testutil.NopLogger())

	for i := 0; i < 1000; i++ {
		b, err := service.LayoutFleet(NewEmptyBoard(), DefaultLayoutRounds)
		s.Require().NoError(err)
		s.assertValidFleet(b)
	}
}

func (s *ServiceSuite) TestAutoPlaceShipsSucceedsOrFailsWithoutPartialFleet() {
	service := New(random.New(), testutil.NopLogger())

	for i := 0; i < 1000; i++ {
		b, err := service.AutoPlaceShips(NewEmptyBoard())
		if err != nil {
			s.Require().ErrorIs(err, model.ErrPlacementFailed)
			s.Require().Empty(b.Ships, "failed placement returned a partial fleet")
			continue
		}
		s.assertValidFleet(b)
	}
}

// LayoutFleet tests

func (s *ServiceSuite) TestLayoutFleetFallsBackToFreshBoard() {
	// Carrier in the middle leaves the queued attempts for the rest no room,
	// so the first pass fails and a fresh board is laid out from the queue.
	b, err := PlaceShip(NewEmptyBoard(), NewShip(model.ShipCarrier,
		ComputeShipPositions(model.Position{X: 0, Y: 2}, model.ShipCarrier, false), false))
	s.Require().NoError(err)

	for attempt := 0; attempt < MaxPlacementAttempts; attempt++ {
		s.random.QueuePlacement(false, 0, 1) // touches the carrier
	}
	testutil.QueueStandardFleet(s.random)

	laid, err := s.service.LayoutFleet(b, DefaultLayoutRounds)
	s.Require().NoError(err)
	s.assertValidFleet(laid)

	carrier := laid.Ship(ShipID(model.ShipCarrier))
	s.Equal(model.Position{X: 0, Y: 0}, carrier.Positions[0])
}

func (s *ServiceSuite) TestLayoutFleetGivesUpAfterRounds() {
	s.random.QueuePlacement(false, 0, 0)

	_, err := s.service.LayoutFleet(NewEmptyBoard(), 2)
	s.ErrorIs(err, model.ErrPlacementFailed)
}
