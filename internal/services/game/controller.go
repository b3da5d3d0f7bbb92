package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/mcoot/issue-battleships/internal/dependencies/clock"
	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/auth"
	"github.com/mcoot/issue-battleships/internal/services/board"
	"github.com/mcoot/issue-battleships/internal/services/cooldown"
	"github.com/mcoot/issue-battleships/internal/services/layout"
	"github.com/mcoot/issue-battleships/internal/services/leaderboard"
	"github.com/mcoot/issue-battleships/internal/services/parser"
	"github.com/mcoot/issue-battleships/internal/storage"
)

// Config holds configuration for the game controller
type Config struct {
	// AutoReset starts a fresh session in the same transaction as a win
	AutoReset bool

	// Retry settings for lock contention
	RetryInitialInterval time.Duration
	RetryMaxInterval     time.Duration
	MaxRetries           uint64
}

// DefaultConfig returns default controller configuration
func DefaultConfig() Config {
	return Config{
		AutoReset:            true,
		RetryInitialInterval: 100 * time.Millisecond,
		RetryMaxInterval:     2 * time.Second,
		MaxRetries:           8,
	}
}

// EventResult is the outcome of an inbound issue event
type EventResult struct {
	Command model.CommandType
	Move    *model.MoveResult  // Set for moves
	Reset   *model.ResetResult // Set for resets
}

// Controller runs every game operation as one locked read-modify-write cycle
type Controller struct {
	storage     storage.Storage
	parser      *parser.Service
	board       *board.Service
	layout      layout.ServiceInterface
	cooldown    *cooldown.Service
	leaderboard *leaderboard.Service
	auth        *auth.Service
	clock       clock.Clock
	logger      *slog.Logger
	cfg         Config
}

// NewController creates a new GameController
func NewController(
	storage storage.Storage,
	parser *parser.Service,
	board *board.Service,
	layout layout.ServiceInterface,
	cooldown *cooldown.Service,
	leaderboard *leaderboard.Service,
	auth *auth.Service,
	clock clock.Clock,
	logger *slog.Logger,
	cfg Config,
) *Controller {
	return &Controller{
		storage:     storage,
		parser:      parser,
		board:       board,
		layout:      layout,
		cooldown:    cooldown,
		leaderboard: leaderboard,
		auth:        auth,
		clock:       clock,
		logger:      logger,
		cfg:         cfg,
	}
}

// HandleEvent parses an issue and dispatches it as a reset or a move
func (c *Controller) HandleEvent(ctx context.Context, event model.Event) (*EventResult, error) {
	cmd, err := c.parser.Parse(event.Title, event.Body)
	if err != nil {
		c.logger.Info("unparseable event",
			slog.String("player", string(event.Player)),
			slog.String("title", event.Title),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	switch cmd.Type {
	case model.CommandReset:
		reset, err := c.Reset(ctx, event.Player)
		if err != nil {
			return nil, err
		}
		return &EventResult{Command: cmd.Type, Reset: reset}, nil
	default:
		move, err := c.ProcessMove(ctx, event.Player, cmd.Coordinate)
		if err != nil {
			return nil, err
		}
		return &EventResult{Command: cmd.Type, Move: move}, nil
	}
}

// ProcessMove fires at a coordinate for a player. A session is created if
// none exists. Player-facing failures (cooldown, already played, game over)
// leave the persisted state untouched.
func (c *Controller) ProcessMove(ctx context.Context, player model.PlayerHandle, coord model.Coordinate) (*model.MoveResult, error) {
	if player == "" {
		return nil, fmt.Errorf("%w: missing player", model.ErrInvalidFormat)
	}

	var result *model.MoveResult
	var archived *model.Round

	err := c.update(ctx, func(state *model.State) error {
		result, archived = nil, nil
		now := c.clock.Now()

		if state.Session == nil {
			session, err := c.newSession(state, now)
			if err != nil {
				return err
			}
			state.Session = session
		}
		session := state.Session

		if !session.IsActive() {
			return model.ErrGameOver
		}
		if err := c.cooldown.Check(session, player, now); err != nil {
			return err
		}
		sweep := c.cooldown.DetectSweep(session.History, player, coord)

		res, err := c.board.ApplyMove(session, coord, player, now)
		if err != nil {
			return err
		}
		badges := c.leaderboard.Record(state, player, res, now)
		stats := session.Player(player)

		result = &model.MoveResult{
			MoveID:       res.Record.ID,
			Player:       player,
			Coordinate:   coord,
			Outcome:      res.Outcome,
			Ship:         res.Ship,
			Sunk:         res.Sunk,
			GameWon:      res.GameWon,
			SweepWarning: sweep,
			NewBadges:    badges,
			Streak:       stats.Streak,
			Remaining:    session.RemainingCells(),
			Timestamp:    now,
		}

		if res.GameWon {
			archived = c.archive(state, session, now)
			result.Round = archived

			if c.cfg.AutoReset {
				next, err := c.newSession(state, now)
				if err != nil {
					// The win stands; an admin reset can start the next round
					c.logger.Error("auto reset failed", slog.String("error", err.Error()))
					return nil
				}
				state.Session = next
				result.NewSessionID = next.ID
			}
		}
		return nil
	})
	if err != nil {
		c.logMoveError(player, coord, err)
		c.recordRejection(ctx, player, coord, err)
		return nil, err
	}

	if archived != nil {
		c.saveRound(ctx, archived)
		c.logger.Info("game won",
			slog.String("winner", string(player)),
			slog.Int("round", archived.Number),
			slog.Int("moves", archived.Moves),
		)
	}
	return result, nil
}

// Reset archives the current session if it saw any moves and starts a fresh
// one with a new layout. All-time records are left exactly as they were.
func (c *Controller) Reset(ctx context.Context, actor model.PlayerHandle) (*model.ResetResult, error) {
	if err := c.auth.RequireAdmin(actor); err != nil {
		return nil, err
	}

	var result *model.ResetResult
	var archived *model.Round

	err := c.update(ctx, func(state *model.State) error {
		result, archived = nil, nil
		now := c.clock.Now()

		// Won sessions were archived when they were won
		if prev := state.Session; prev != nil && prev.IsActive() && prev.TotalMoves > 0 {
			archived = c.archive(state, prev, now)
		}

		next, err := c.newSession(state, now)
		if err != nil {
			return err
		}
		state.Session = next

		result = &model.ResetResult{
			Actor:        actor,
			SessionID:    next.ID,
			Round:        next.Round,
			ArchivedFrom: archived,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if archived != nil {
		c.saveRound(ctx, archived)
	}
	c.logger.Info("game reset",
		slog.String("actor", string(actor)),
		slog.String("session_id", string(result.SessionID)),
		slog.Int("round", result.Round),
	)
	return result, nil
}

// State returns the persisted state
func (c *Controller) State(ctx context.Context) (*model.State, error) {
	return c.storage.Load(ctx)
}

// Round returns an archived round
func (c *Controller) Round(ctx context.Context, number int) (*model.Round, error) {
	return c.storage.GetRound(ctx, number)
}

// Rejections returns the log of refused moves, oldest first
func (c *Controller) Rejections(ctx context.Context) ([]model.Rejection, error) {
	return c.storage.Rejections(ctx)
}

// Cooldown returns how long a player must wait before their next move
func (c *Controller) Cooldown(ctx context.Context, player model.PlayerHandle) (time.Duration, error) {
	state, err := c.storage.Load(ctx)
	if err != nil {
		return 0, err
	}
	if state.Session == nil {
		return 0, nil
	}
	return c.cooldown.Remaining(state.Session, player, c.clock.Now()), nil
}

// newSession generates a layout and builds the next session
func (c *Controller) newSession(state *model.State, now time.Time) (*model.Session, error) {
	l, err := c.layout.Generate()
	if err != nil {
		return nil, err
	}
	session := model.NewSession(model.SessionID(uuid.NewString()), state.NextRound(), l.Ships, l.Seed, now)
	c.logger.Info("session started",
		slog.String("session_id", string(session.ID)),
		slog.Int("round", session.Round),
	)
	return session, nil
}

// archive records a finished session in the state and returns its round
func (c *Controller) archive(state *model.State, session *model.Session, now time.Time) *model.Round {
	round := session.Archive(now)
	state.Rounds = append(state.Rounds, round.RoundSummary)
	return round
}

// saveRound writes the archive after the state commit. The summary is
// already persisted, so a failure here is logged rather than returned.
func (c *Controller) saveRound(ctx context.Context, round *model.Round) {
	if err := c.storage.SaveRound(ctx, round); err != nil {
		c.logger.Warn("failed to save round archive",
			slog.Int("round", round.Number),
			slog.String("error", err.Error()),
		)
	}
}

// update runs a storage update, retrying with exponential backoff while
// another writer holds the lock
func (c *Controller) update(ctx context.Context, fn storage.UpdateFunc) error {
	attempt := 0
	op := func() error {
		attempt++
		err := c.storage.Update(ctx, fn)
		if err == nil {
			return nil
		}
		if errors.Is(err, model.ErrConcurrencyConflict) {
			c.logger.Warn("state locked, retrying", slog.Int("attempt", attempt))
			return err
		}
		return backoff.Permanent(err)
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.cfg.RetryInitialInterval
	b.MaxInterval = c.cfg.RetryMaxInterval
	b.MaxElapsedTime = 0

	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(b, c.cfg.MaxRetries), ctx))
}

func (c *Controller) logMoveError(player model.PlayerHandle, coord model.Coordinate, err error) {
	attrs := []any{
		slog.String("player", string(player)),
		slog.String("coordinate", coord.String()),
		slog.String("error", err.Error()),
	}
	if model.IsPlayerError(err) {
		c.logger.Info("move rejected", attrs...)
		return
	}
	c.logger.Error("move failed", attrs...)
}

// recordRejection appends a refused move to the rejection log. The move has
// already been answered, so a failed write is only logged.
func (c *Controller) recordRejection(ctx context.Context, player model.PlayerHandle, coord model.Coordinate, err error) {
	reason, ok := model.RejectionReasonFor(err)
	if !ok {
		return
	}
	rejection := model.Rejection{Player: player, Coordinate: coord, Reason: reason, At: c.clock.Now()}
	if err := c.storage.LogRejection(ctx, rejection); err != nil {
		c.logger.Warn("could not log rejected move",
			slog.String("player", string(player)),
			slog.String("reason", string(reason)),
			slog.String("error", err.Error()),
		)
	}
}

// Interface for dependency injection
type ControllerInterface interface {
	HandleEvent(ctx context.Context, event model.Event) (*EventResult, error)
	ProcessMove(ctx context.Context, player model.PlayerHandle, coord model.Coordinate) (*model.MoveResult, error)
	Reset(ctx context.Context, actor model.PlayerHandle) (*model.ResetResult, error)
	State(ctx context.Context) (*model.State, error)
	Round(ctx context.Context, number int) (*model.Round, error)
	Cooldown(ctx context.Context, player model.PlayerHandle) (time.Duration, error)
	Rejections(ctx context.Context) ([]model.Rejection, error)
}

var _ ControllerInterface = (*Controller)(nil)
