package bot

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/mcoot/issue-battleships/internal/dependencies/random"
	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/game"
)

const (
	// StrategyRandom fires at random unresolved cells
	StrategyRandom = "random"
	// StrategyHunt searches a checkerboard and finishes off damaged ships
	StrategyHunt = "hunt"

	// MaxAttempts bounds how often Play picks a new target after another
	// player resolved the chosen cell first
	MaxAttempts = 3
)

var (
	ErrUnknownStrategy = errors.New("unknown bot strategy")
	ErrNoTargets       = errors.New("no unresolved cells left")
)

// DefaultStrategies returns every built-in strategy keyed by name
func DefaultStrategies(rnd random.Random) map[string]Strategy {
	return map[string]Strategy{
		StrategyRandom: NewRandomStrategy(rnd),
		StrategyHunt:   NewHuntStrategy(rnd),
	}
}

// Service plays moves on behalf of an autopilot player
type Service struct {
	gameController game.ControllerInterface
	strategies     map[string]Strategy
	logger         *slog.Logger
}

// NewService creates a new bot Service
func NewService(gameController game.ControllerInterface, strategies map[string]Strategy, logger *slog.Logger) *Service {
	return &Service{
		gameController: gameController,
		strategies:     strategies,
		logger:         logger.With(slog.String("component", "bot-service")),
	}
}

// Strategies returns the registered strategy names in sorted order
func (s *Service) Strategies() []string {
	names := make([]string, 0, len(s.strategies))
	for name := range s.strategies {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Suggest returns the cell the strategy would fire at next without moving.
// Before the first move of a round the board is empty, so any cell is fair.
func (s *Service) Suggest(ctx context.Context, strategy string) (model.Coordinate, error) {
	st, err := s.strategy(strategy)
	if err != nil {
		return model.Coordinate{}, err
	}

	state, err := s.gameController.State(ctx)
	if err != nil {
		return model.Coordinate{}, err
	}

	session := state.Session
	if session == nil {
		session = &model.Session{Status: model.SessionActive, Board: model.NewBoard()}
	}
	if !session.IsActive() {
		return model.Coordinate{}, model.ErrGameOver
	}
	return st.ChooseTarget(session)
}

// Play fires the strategy's next shot as the given player. If another
// player resolves the chosen cell first, a fresh target is picked.
func (s *Service) Play(ctx context.Context, player model.PlayerHandle, strategy string) (*model.MoveResult, error) {
	var lastErr error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		coord, err := s.Suggest(ctx, strategy)
		if err != nil {
			return nil, err
		}

		result, err := s.gameController.ProcessMove(ctx, player, coord)
		if err == nil {
			s.logger.Info("bot moved",
				slog.String("player", string(player)),
				slog.String("strategy", strategy),
				slog.String("coordinate", coord.String()),
				slog.String("outcome", string(result.Outcome)),
			)
			return result, nil
		}
		if !errors.Is(err, model.ErrAlreadyPlayed) {
			return nil, err
		}

		s.logger.Warn("bot target taken, choosing again",
			slog.String("coordinate", coord.String()),
			slog.Int("attempt", attempt),
		)
		lastErr = err
	}
	return nil, lastErr
}

func (s *Service) strategy(name string) (Strategy, error) {
	st, ok := s.strategies[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownStrategy, name)
	}
	return st, nil
}

// Interface for dependency injection
type ServiceInterface interface {
	Strategies() []string
	Suggest(ctx context.Context, strategy string) (model.Coordinate, error)
	Play(ctx context.Context, player model.PlayerHandle, strategy string) (*model.MoveResult, error)
}

var _ ServiceInterface = (*Service)(nil)
