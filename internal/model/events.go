package model

import "time"

// CommandType identifies what an inbound event asks for
type CommandType string

const (
	CommandMove  CommandType = "move"
	CommandReset CommandType = "reset"
)

// Event is an inbound issue submitted by a player
type Event struct {
	Player PlayerHandle `json:"player"`
	Title  string       `json:"title"`
	Body   string       `json:"body"`
}

// Command is a parsed event
type Command struct {
	Type       CommandType
	Coordinate Coordinate // Set for CommandMove
}

// MoveResult is the outcome of a processed move, returned to the caller
type MoveResult struct {
	MoveID     string       `json:"move_id"`
	Player     PlayerHandle `json:"player"`
	Coordinate Coordinate   `json:"coordinate"`
	Outcome    MoveOutcome  `json:"outcome"`
	Ship       ShipName     `json:"ship,omitempty"`
	Sunk       bool         `json:"sunk"`
	GameWon    bool         `json:"game_won"`

	// Advisory and achievement information
	SweepWarning bool          `json:"sweep_warning"`
	NewBadges    []Achievement `json:"new_badges,omitempty"`
	Streak       int           `json:"streak"`
	Remaining    int           `json:"remaining"` // Ship cells still afloat after this move

	// Round is the archived round when this move won the game
	Round *Round `json:"round,omitempty"`
	// NewSessionID is set when the win started a fresh session
	NewSessionID SessionID `json:"new_session_id,omitempty"`

	Timestamp time.Time `json:"timestamp"`
}

// ResetResult is the outcome of an admin reset
type ResetResult struct {
	Actor        PlayerHandle `json:"actor"`
	SessionID    SessionID    `json:"session_id"`
	Round        int          `json:"round"`
	ArchivedFrom *Round       `json:"archived,omitempty"` // Previous session if it had moves and no winner
}
