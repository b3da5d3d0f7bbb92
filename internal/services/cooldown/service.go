package cooldown

import (
	"log/slog"
	"time"

	"github.com/mcoot/issue-battleships/internal/model"
)

// Policy configures cooldown tiers and sweep detection
type Policy struct {
	Base    time.Duration // Below ActiveThreshold moves
	Active  time.Duration // From ActiveThreshold moves
	Veteran time.Duration // From VeteranThreshold moves

	ActiveThreshold  int
	VeteranThreshold int

	// SweepLength is how many of a player's most recent moves are inspected
	SweepLength int
}

// DefaultPolicy returns the standard tiers: 2h, then 1.5h after 20 moves,
// then 1h after 50 moves, with sweeps flagged over 5 moves
func DefaultPolicy() Policy {
	return Policy{
		Base:             2 * time.Hour,
		Active:           90 * time.Minute,
		Veteran:          time.Hour,
		ActiveThreshold:  20,
		VeteranThreshold: 50,
		SweepLength:      5,
	}
}

// Service enforces per-player cooldowns and flags sweeping move sequences
type Service struct {
	policy Policy
	owner  model.PlayerHandle
	logger *slog.Logger
}

// New creates a new cooldown Service. The owner is exempt from cooldowns.
func New(policy Policy, owner model.PlayerHandle, logger *slog.Logger) *Service {
	return &Service{
		policy: policy,
		owner:  owner,
		logger: logger,
	}
}

// IsOwner returns true if the handle is the exempt owner account
func (s *Service) IsOwner(player model.PlayerHandle) bool {
	return s.owner != "" && s.owner.Is(player)
}

// Duration returns the cooldown a player must wait between moves, given the
// session's global move count
func (s *Service) Duration(totalMoves int, player model.PlayerHandle) time.Duration {
	if s.IsOwner(player) {
		return 0
	}
	switch {
	case totalMoves >= s.policy.VeteranThreshold:
		return s.policy.Veteran
	case totalMoves >= s.policy.ActiveThreshold:
		return s.policy.Active
	default:
		return s.policy.Base
	}
}

// Remaining returns how long the player must still wait, zero if they may move
func (s *Service) Remaining(session *model.Session, player model.PlayerHandle, now time.Time) time.Duration {
	stats := session.Player(player)
	if stats == nil || stats.LastMoveAt.IsZero() {
		return 0
	}
	wait := s.Duration(session.TotalMoves, player)
	remaining := stats.LastMoveAt.Add(wait).Sub(now)
	if remaining <= 0 {
		return 0
	}
	return remaining
}

// Check returns a *model.CooldownError if the player moved too recently
func (s *Service) Check(session *model.Session, player model.PlayerHandle, now time.Time) error {
	remaining := s.Remaining(session, player, now)
	if remaining > 0 {
		s.logger.Info("cooldown active",
			slog.String("player", string(player)),
			slog.Duration("remaining", remaining),
		)
		return &model.CooldownError{Player: player, Remaining: remaining}
	}
	return nil
}

// DetectSweep returns true if the player's recent moves plus next form a
// straight sweep: all in one row with columns stepping by exactly +1 or
// exactly -1, or all in one column with rows stepping likewise.
// The result is advisory; the move still applies.
func (s *Service) DetectSweep(history []model.MoveRecord, player model.PlayerHandle, next model.Coordinate) bool {
	n := s.policy.SweepLength
	if n < 2 {
		return false
	}

	recent := make([]model.Coordinate, 0, n)
	for i := len(history) - 1; i >= 0 && len(recent) < n-1; i-- {
		if history[i].Player == player {
			recent = append(recent, history[i].Coordinate)
		}
	}
	if len(recent) < n-1 {
		return false
	}

	// recent is newest first; reverse and append the move being made
	seq := make([]model.Coordinate, 0, n)
	for i := len(recent) - 1; i >= 0; i-- {
		seq = append(seq, recent[i])
	}
	seq = append(seq, next)

	return isStep(seq, 0, 1) || isStep(seq, 0, -1) || isStep(seq, 1, 0) || isStep(seq, -1, 0)
}

func isStep(seq []model.Coordinate, dRow, dCol int) bool {
	for i := 1; i < len(seq); i++ {
		if seq[i].Row-seq[i-1].Row != dRow || seq[i].Col-seq[i-1].Col != dCol {
			return false
		}
	}
	return true
}

// Interface for dependency injection
type ServiceInterface interface {
	Duration(totalMoves int, player model.PlayerHandle) time.Duration
	Remaining(session *model.Session, player model.PlayerHandle, now time.Time) time.Duration
	Check(session *model.Session, player model.PlayerHandle, now time.Time) error
	DetectSweep(history []model.MoveRecord, player model.PlayerHandle, next model.Coordinate) bool
}

var _ ServiceInterface = (*Service)(nil)
