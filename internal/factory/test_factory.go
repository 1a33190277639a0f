package factory

import (
	"time"

	"github.com/mcoot/battleship-go2/internal/dependencies/mocks"
	"github.com/mcoot/battleship-go2/internal/services/auth"
	"github.com/mcoot/battleship-go2/internal/services/bot"
	"github.com/mcoot/battleship-go2/internal/storage/memory"
	"github.com/mcoot/battleship-go2/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	MockIDs    *mocks.MockIDGenerator
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Computer replies only happen when MockClock is advanced past the move delay.
func NewTestApp() *TestApp {
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockIDs := mocks.NewMockIDGenerator()

	deps := dependencies{
		store:  memory.New(),
		clock:  mockClock,
		random: mockRandom,
		ids:    mockIDs,
	}
	app := newWithDependencies(deps, auth.DefaultConfig(), bot.DefaultMoveDelay, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		MockIDs:    mockIDs,
	}
}

// QueueStandardFleet makes the next fleet layout use the standard test layout
func (t *TestApp) QueueStandardFleet() {
	testutil.QueueStandardFleet(t.MockRandom)
}

// AdvanceToComputerMove moves the clock past the computer's move delay
func (t *TestApp) AdvanceToComputerMove() {
	t.MockClock.Advance(t.BotService.Delay())
}
