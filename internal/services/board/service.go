package board

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mcoot/issue-battleships/internal/model"
)

// Result describes what a resolved shot did to the session
type Result struct {
	Record    model.MoveRecord
	Outcome   model.MoveOutcome
	Ship      model.ShipName // Set on a hit
	Sunk      bool
	GameWon   bool
	FirstMove bool // The player's first move this session
}

// Service resolves shots against a session's hidden fleet
type Service struct {
	logger *slog.Logger
}

// New creates a new BoardService
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// ApplyMove fires at a coordinate on behalf of a player.
// The cell is marked hit when a ship occupies it and miss otherwise; the move
// is appended to the history and the player's session counters updated.
// On error the session is left untouched.
func (s *Service) ApplyMove(session *model.Session, coord model.Coordinate, player model.PlayerHandle, now time.Time) (*Result, error) {
	if err := s.ValidateMove(session, coord); err != nil {
		return nil, err
	}

	ship := session.ShipAt(coord)
	status := model.CellMiss
	if ship != nil {
		status = model.CellHit
	}
	if err := session.Board.Resolve(coord, status); err != nil {
		return nil, err
	}

	stats := session.Player(player)
	firstMove := stats == nil
	stats = session.EnsurePlayer(player)

	result := &Result{FirstMove: firstMove}
	if ship != nil {
		result.Outcome = model.OutcomeHit
		result.Ship = ship.Name
		result.Sunk = ship.RegisterHit()

		stats.Hits++
		stats.Streak++
		if stats.Streak > stats.BestStreak {
			stats.BestStreak = stats.Streak
		}
		if result.Sunk {
			stats.ShipsSunk++
		}
	} else {
		result.Outcome = model.OutcomeMiss
		stats.Misses++
		stats.Streak = 0
	}
	stats.LastMoveAt = now

	result.Record = model.MoveRecord{
		ID:         uuid.NewString(),
		Player:     player,
		Coordinate: coord,
		Outcome:    result.Outcome,
		Ship:       result.Ship,
		Sunk:       result.Sunk,
		Timestamp:  now,
	}
	session.History = append(session.History, result.Record)
	session.TotalMoves++
	session.UpdatedAt = now

	if session.AllSunk() {
		result.GameWon = true
		session.Status = model.SessionWon
		session.Winner = player
		ended := now
		session.EndedAt = &ended
	}

	s.logger.Info("move applied",
		slog.String("player", string(player)),
		slog.String("coordinate", coord.String()),
		slog.String("outcome", string(result.Outcome)),
		slog.Bool("sunk", result.Sunk),
		slog.Bool("game_won", result.GameWon),
	)
	return result, nil
}

// ValidateMove checks a shot can be taken without changing anything
func (s *Service) ValidateMove(session *model.Session, coord model.Coordinate) error {
	if session == nil {
		return model.ErrNoSession
	}
	if !session.IsActive() {
		return model.ErrGameOver
	}
	if !coord.IsValid() {
		return fmt.Errorf("%w: row=%d col=%d", model.ErrOutOfBounds, coord.Row, coord.Col)
	}
	if session.Board.IsResolved(coord) {
		return &model.AlreadyPlayedError{Coordinate: coord, Status: session.Board.Get(coord)}
	}
	return nil
}

// Interface for dependency injection
type ServiceInterface interface {
	ApplyMove(session *model.Session, coord model.Coordinate, player model.PlayerHandle, now time.Time) (*Result, error)
	ValidateMove(session *model.Session, coord model.Coordinate) error
}

var _ ServiceInterface = (*Service)(nil)
