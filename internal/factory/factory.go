package factory

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/battleship-go2/internal/dependencies/clock"
	"github.com/mcoot/battleship-go2/internal/dependencies/idgen"
	"github.com/mcoot/battleship-go2/internal/dependencies/random"
	"github.com/mcoot/battleship-go2/internal/services/auth"
	"github.com/mcoot/battleship-go2/internal/services/board"
	"github.com/mcoot/battleship-go2/internal/services/bot"
	"github.com/mcoot/battleship-go2/internal/services/game"
	"github.com/mcoot/battleship-go2/internal/storage"
	"github.com/mcoot/battleship-go2/internal/storage/memory"
	redisstorage "github.com/mcoot/battleship-go2/internal/storage/redis"
	"github.com/mcoot/battleship-go2/internal/web/sse"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Storage storage.Storage

	// External dependencies
	Clock  clock.Clock
	Random random.Random
	IDs    idgen.Generator

	// Services
	BoardService   *board.Service
	GameController *game.Controller
	BotService     *bot.Service
	AuthService    *auth.Service
	HubManager     *sse.HubManager
	Broadcaster    *sse.Broadcaster

	stopSweeper func()
}

// Config holds configuration for the application factory
type Config struct {
	// AuthConfig holds configuration for the auth service (optional)
	// If zero value, defaults to auth.DefaultConfig()
	AuthConfig auth.Config
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config
	// ComputerMoveDelay is the pause before the computer answers a shot
	// Zero means bot.DefaultMoveDelay; use a negative value for no pause
	ComputerMoveDelay time.Duration
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	var store storage.Storage
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	switch storageType {
	case StorageTypeMemory:
		store = memory.New()
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstorage.New(*cfg.RedisConfig)
		if err != nil {
			return nil, err
		}
		store = redisStore
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	authCfg := cfg.AuthConfig
	if authCfg.SessionDuration == 0 {
		authCfg = auth.DefaultConfig()
	}

	delay := cfg.ComputerMoveDelay
	if delay == 0 {
		delay = bot.DefaultMoveDelay
	}

	deps := dependencies{
		store:  store,
		clock:  clock.New(),
		random: random.New(),
		ids:    idgen.New(),
	}
	return newWithDependencies(deps, authCfg, delay, logger), nil
}

// dependencies are the swappable inputs of the application graph
type dependencies struct {
	store  storage.Storage
	clock  clock.Clock
	random random.Random
	ids    idgen.Generator
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(deps dependencies, authCfg auth.Config, delay time.Duration, logger *slog.Logger) *App {
	boardService := board.New(deps.random, logger)
	gameController := game.NewController(deps.store, boardService, deps.clock, deps.ids, logger)
	botService := bot.NewService(gameController, bot.NewRandomStrategy(deps.random), deps.clock, delay, logger)
	authService := auth.New(deps.store, deps.clock, authCfg, logger)
	hubManager := sse.NewHubManager(logger)
	broadcaster := sse.NewBroadcaster(hubManager, logger)

	// The bot answers player shots; the broadcaster pushes computer moves to browsers
	gameController.SetNotifier(game.Notifiers{botService, broadcaster})
	stopSweeper := hubManager.StartSweeper(deps.clock, sse.DefaultSweepInterval)

	return &App{
		Storage:        deps.store,
		Clock:          deps.clock,
		Random:         deps.random,
		IDs:            deps.ids,
		BoardService:   boardService,
		GameController: gameController,
		BotService:     botService,
		AuthService:    authService,
		HubManager:     hubManager,
		Broadcaster:    broadcaster,
		stopSweeper:    stopSweeper,
	}
}

// Close stops background work and releases the storage backend
func (a *App) Close() error {
	a.BotService.Stop()
	a.stopSweeper()
	a.HubManager.CloseAll()
	if closer, ok := a.Storage.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
