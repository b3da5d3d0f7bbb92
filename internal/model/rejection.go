package model

import (
	"errors"
	"time"
)

// MaxRejections is how many rejected moves the rejection log keeps
const MaxRejections = 1000

// RejectionReason classifies a refused move
type RejectionReason string

const (
	RejectedAlreadyPlayed RejectionReason = "already_played"
	RejectedCooldown      RejectionReason = "cooldown"
	RejectedGameOver      RejectionReason = "game_over"
)

// Rejection is a refused move kept for admin review. It lives outside the
// game state, which a refused move never changes.
type Rejection struct {
	Player     PlayerHandle    `json:"player"`
	Coordinate Coordinate      `json:"coordinate"`
	Reason     RejectionReason `json:"reason"`
	At         time.Time       `json:"at"`
}

// RejectionReasonFor maps a move error to the reason it is logged under.
// Malformed moves and infrastructure failures are not logged.
func RejectionReasonFor(err error) (RejectionReason, bool) {
	switch {
	case errors.Is(err, ErrAlreadyPlayed):
		return RejectedAlreadyPlayed, true
	case errors.Is(err, ErrCooldownActive):
		return RejectedCooldown, true
	case errors.Is(err, ErrGameOver):
		return RejectedGameOver, true
	default:
		return "", false
	}
}

// TrimRejections keeps the newest MaxRejections entries
func TrimRejections(log []Rejection) []Rejection {
	if len(log) <= MaxRejections {
		return log
	}
	return log[len(log)-MaxRejections:]
}
