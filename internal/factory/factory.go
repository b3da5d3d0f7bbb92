package factory

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/mcoot/issue-battleships/internal/dependencies/clock"
	"github.com/mcoot/issue-battleships/internal/dependencies/random"
	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/auth"
	"github.com/mcoot/issue-battleships/internal/services/board"
	"github.com/mcoot/issue-battleships/internal/services/bot"
	"github.com/mcoot/issue-battleships/internal/services/cooldown"
	"github.com/mcoot/issue-battleships/internal/services/game"
	"github.com/mcoot/issue-battleships/internal/services/layout"
	"github.com/mcoot/issue-battleships/internal/services/leaderboard"
	"github.com/mcoot/issue-battleships/internal/services/parser"
	"github.com/mcoot/issue-battleships/internal/services/render"
	"github.com/mcoot/issue-battleships/internal/storage"
	filestorage "github.com/mcoot/issue-battleships/internal/storage/file"
	"github.com/mcoot/issue-battleships/internal/storage/memory"
	redisstorage "github.com/mcoot/issue-battleships/internal/storage/redis"
)

// Storage type constants
const (
	StorageTypeFile   = "file"
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

	// Services
	ParserService      *parser.Service
	BoardService       *board.Service
	LayoutService      *layout.Service
	CooldownService    *cooldown.Service
	LeaderboardService *leaderboard.Service
	AuthService        *auth.Service
	RenderService      *render.Service
	GameController     *game.Controller
	BotService         *bot.Service
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the storage backend ("file", "memory" or "redis")
	// If empty, defaults to "file"
	StorageType string
	// StateDir is the root directory for file storage
	StateDir string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstorage.Config

	// Owner is exempt from cooldowns and always an admin
	Owner model.PlayerHandle
	// Admins may reset the game
	Admins []model.PlayerHandle
	// APITokenHash is the bcrypt hash guarding mutating API routes
	APITokenHash string

	// GameConfig holds controller settings (optional)
	// If zero value, defaults to game.DefaultConfig()
	GameConfig *game.Config
	// CooldownPolicy overrides the cooldown tiers (optional)
	CooldownPolicy *cooldown.Policy
}

// New creates a new application with all dependencies wired
func New(cfg Config) (*App, error) {
	// Use no-op logger if not provided
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	store, err := newStorage(cfg)
	if err != nil {
		return nil, err
	}

	// Create external dependencies
	clk := clock.New()
	rnd := random.New()

	return newWithDependencies(store, clk, rnd, cfg, logger), nil
}

// newStorage creates the configured storage backend
func newStorage(cfg Config) (storage.Storage, error) {
	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeFile
	}

	switch storageType {
	case StorageTypeFile:
		fileCfg := filestorage.DefaultConfig()
		if cfg.StateDir != "" {
			fileCfg.Dir = cfg.StateDir
		}
		return filestorage.New(fileCfg)
	case StorageTypeMemory:
		return memory.New(), nil
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		return redisstorage.New(*cfg.RedisConfig)
	default:
		return nil, fmt.Errorf("invalid StorageType %q: must be 'file', 'memory' or 'redis'", storageType)
	}
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(store storage.Storage, clk clock.Clock, rnd random.Random, cfg Config, logger *slog.Logger) *App {
	gameCfg := game.DefaultConfig()
	if cfg.GameConfig != nil {
		gameCfg = *cfg.GameConfig
	}
	policy := cooldown.DefaultPolicy()
	if cfg.CooldownPolicy != nil {
		policy = *cfg.CooldownPolicy
	}

	// Create services
	parserService := parser.New()
	boardService := board.New(logger)
	layoutService := layout.New(rnd, logger)
	cooldownService := cooldown.New(policy, cfg.Owner, logger)
	leaderboardService := leaderboard.New(logger)
	authService := auth.New(auth.Config{
		Owner:     cfg.Owner,
		Admins:    cfg.Admins,
		TokenHash: cfg.APITokenHash,
	}, logger)
	renderService := render.New(leaderboardService)
	gameController := game.NewController(
		store,
		parserService,
		boardService,
		layoutService,
		cooldownService,
		leaderboardService,
		authService,
		clk,
		logger,
		gameCfg,
	)

	botService := bot.NewService(gameController, bot.DefaultStrategies(rnd), logger)

	return &App{
		Storage:            store,
		Clock:              clk,
		Random:             rnd,
		ParserService:      parserService,
		BoardService:       boardService,
		LayoutService:      layoutService,
		CooldownService:    cooldownService,
		LeaderboardService: leaderboardService,
		AuthService:        authService,
		RenderService:      renderService,
		GameController:     gameController,
		BotService:         botService,
	}
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Storage.Close()
}
