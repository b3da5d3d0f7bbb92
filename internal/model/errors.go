package model

import (
	"errors"
	"fmt"
	"time"
)

// Common errors used across the application
var (
	// Move errors (player facing)
	ErrInvalidFormat  = errors.New("invalid move format")
	ErrOutOfBounds    = errors.New("coordinate out of bounds")
	ErrAlreadyPlayed  = errors.New("cell already played")
	ErrCooldownActive = errors.New("cooldown active")
	ErrGameOver       = errors.New("game is already won")
	ErrNotAdmin       = errors.New("player is not an administrator")

	// Session errors
	ErrNoSession = errors.New("no game session")
	ErrLayout    = errors.New("ship layout failed")

	// Persistence errors
	ErrConcurrencyConflict = errors.New("state is locked by another writer")
	ErrCorruptState        = errors.New("persisted state is corrupt")
	ErrRoundNotFound       = errors.New("round not found")
)

// CooldownError reports how long a player must wait before moving again
type CooldownError struct {
	Player    PlayerHandle
	Remaining time.Duration
}

func (e *CooldownError) Error() string {
	return fmt.Sprintf("%s: %s must wait %s", ErrCooldownActive, e.Player, e.Remaining.Round(time.Minute))
}

// Is lets errors.Is(err, ErrCooldownActive) match
func (e *CooldownError) Is(target error) bool {
	return target == ErrCooldownActive
}

// IsPlayerError returns true for errors that are reported back to the player
// as a reply rather than treated as a failure of the bot itself
func IsPlayerError(err error) bool {
	switch {
	case errors.Is(err, ErrInvalidFormat),
		errors.Is(err, ErrOutOfBounds),
		errors.Is(err, ErrAlreadyPlayed),
		errors.Is(err, ErrCooldownActive),
		errors.Is(err, ErrGameOver),
		errors.Is(err, ErrNotAdmin):
		return true
	default:
		return false
	}
}

// AlreadyPlayedError reports a shot at a resolved cell
type AlreadyPlayedError struct {
	Coordinate Coordinate
	Status     CellStatus
}

func (e *AlreadyPlayedError) Error() string {
	return fmt.Sprintf("%s: %s is %s", ErrAlreadyPlayed, e.Coordinate, e.Status)
}

// Is lets errors.Is(err, ErrAlreadyPlayed) match
func (e *AlreadyPlayedError) Is(target error) bool {
	return target == ErrAlreadyPlayed
}
