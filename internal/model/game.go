package model

import (
	"fmt"
	"time"
)

// SessionID uniquely identifies a game session
type SessionID string

// SessionStatus represents the lifecycle phase of a session
type SessionStatus string

const (
	SessionActive SessionStatus = "active" // Accepting moves
	SessionWon    SessionStatus = "won"    // Every ship cell hit, layout revealed
)

// MoveOutcome is the result of firing at a cell
type MoveOutcome string

const (
	OutcomeHit           MoveOutcome = "hit"
	OutcomeMiss          MoveOutcome = "miss"
	OutcomeAlreadyPlayed MoveOutcome = "already_played"
)

// MoveRecord is an entry in the append-only move history
type MoveRecord struct {
	ID         string       `json:"id"`
	Player     PlayerHandle `json:"player"`
	Coordinate Coordinate   `json:"coordinate"`
	Outcome    MoveOutcome  `json:"outcome"`
	Ship       ShipName     `json:"ship,omitempty"`
	Sunk       bool         `json:"sunk,omitempty"`
	Timestamp  time.Time    `json:"timestamp"`
}

// Session is one game from ship placement to victory or reset
type Session struct {
	ID     SessionID     `json:"id"`
	Round  int           `json:"round"`
	Status SessionStatus `json:"status"`

	Board Board   `json:"board"`
	Ships []*Ship `json:"ships"`
	Seed  uint64  `json:"seed"` // Layout seed, only shown once the session is won

	Players    map[PlayerHandle]*PlayerStats `json:"players"`
	History    []MoveRecord                  `json:"history"`
	TotalMoves int                           `json:"total_moves"`
	Winner     PlayerHandle                  `json:"winner,omitempty"`

	StartedAt time.Time  `json:"started_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
}

// NewSession creates an active session with an empty board and the given fleet
func NewSession(id SessionID, round int, ships []*Ship, seed uint64, now time.Time) *Session {
	return &Session{
		ID:        id,
		Round:     round,
		Status:    SessionActive,
		Board:     NewBoard(),
		Ships:     ships,
		Seed:      seed,
		Players:   make(map[PlayerHandle]*PlayerStats),
		History:   []MoveRecord{},
		StartedAt: now,
		UpdatedAt: now,
	}
}

// ShipAt returns the ship occupying the coordinate, or nil
func (s *Session) ShipAt(c Coordinate) *Ship {
	for _, ship := range s.Ships {
		if ship.Occupies(c) {
			return ship
		}
	}
	return nil
}

// Ship returns the ship with the given name, or nil
func (s *Session) Ship(name ShipName) *Ship {
	for _, ship := range s.Ships {
		if ship.Name == name {
			return ship
		}
	}
	return nil
}

// Player returns the stats for a player, or nil if they have not moved
func (s *Session) Player(handle PlayerHandle) *PlayerStats {
	if s.Players == nil {
		return nil
	}
	return s.Players[handle]
}

// EnsurePlayer returns the stats for a player, creating them if needed
func (s *Session) EnsurePlayer(handle PlayerHandle) *PlayerStats {
	if s.Players == nil {
		s.Players = make(map[PlayerHandle]*PlayerStats)
	}
	p, ok := s.Players[handle]
	if !ok {
		p = &PlayerStats{Handle: handle, Badges: []Achievement{}}
		s.Players[handle] = p
	}
	return p
}

// ShipCells returns the total number of cells occupied by ships
func (s *Session) ShipCells() int {
	total := 0
	for _, ship := range s.Ships {
		total += ship.Length
	}
	return total
}

// ShipHits returns the total hits across all ships
func (s *Session) ShipHits() int {
	total := 0
	for _, ship := range s.Ships {
		total += ship.Hits
	}
	return total
}

// RemainingCells returns the number of ship cells not yet hit
func (s *Session) RemainingCells() int {
	return s.ShipCells() - s.ShipHits()
}

// AllSunk returns true if every ship has been sunk
func (s *Session) AllSunk() bool {
	if len(s.Ships) == 0 {
		return false
	}
	for _, ship := range s.Ships {
		if !ship.Sunk {
			return false
		}
	}
	return true
}

// IsActive returns true if the session accepts moves
func (s *Session) IsActive() bool {
	return s.Status == SessionActive
}

// PlayerHistory returns the player's moves in order
func (s *Session) PlayerHistory(handle PlayerHandle) []MoveRecord {
	var moves []MoveRecord
	for _, m := range s.History {
		if m.Player == handle {
			moves = append(moves, m)
		}
	}
	return moves
}

// Verify checks the session is internally consistent: ships are on the board
// and do not overlap, every hit cell belongs to a ship, every miss cell does
// not, and ship damage matches the board.
func (s *Session) Verify() error {
	occupied := make(map[Coordinate]ShipName)
	for _, ship := range s.Ships {
		if ship.Length != len(ship.Cells) {
			return fmt.Errorf("%w: %s length %d has %d cells", ErrCorruptState, ship.Name, ship.Length, len(ship.Cells))
		}
		hits := 0
		for _, c := range ship.Cells {
			if !c.IsValid() {
				return fmt.Errorf("%w: %s off the board", ErrCorruptState, ship.Name)
			}
			if other, ok := occupied[c]; ok {
				return fmt.Errorf("%w: %s overlaps %s at %s", ErrCorruptState, ship.Name, other, c)
			}
			occupied[c] = ship.Name
			if s.Board.Get(c) == CellHit {
				hits++
			}
		}
		if hits != ship.Hits || ship.Sunk != (ship.Hits == ship.Length) {
			return fmt.Errorf("%w: %s damage does not match board", ErrCorruptState, ship.Name)
		}
	}

	for c, status := range s.Board.Cells {
		_, isShip := occupied[c]
		if status == CellHit && !isShip {
			return fmt.Errorf("%w: hit at %s has no ship", ErrCorruptState, c)
		}
		if status == CellMiss && isShip {
			return fmt.Errorf("%w: miss at %s covers a ship", ErrCorruptState, c)
		}
	}
	return nil
}

// RoundSummary is a lightweight record of an archived session
type RoundSummary struct {
	Number    int          `json:"number"`
	SessionID SessionID    `json:"session_id"`
	Winner    PlayerHandle `json:"winner,omitempty"` // Empty if reset before victory
	Moves     int          `json:"moves"`
	StartedAt time.Time    `json:"started_at"`
	EndedAt   time.Time    `json:"ended_at"`
}

// Round is the full archive of a session with the layout revealed
type Round struct {
	RoundSummary
	Board   Board                         `json:"board"`
	Ships   []*Ship                       `json:"ships"`
	Seed    uint64                        `json:"seed"`
	Players map[PlayerHandle]*PlayerStats `json:"players"`
	History []MoveRecord                  `json:"history"`
}

// Archive produces the round record for a session ending at the given time
func (s *Session) Archive(endedAt time.Time) *Round {
	return &Round{
		RoundSummary: RoundSummary{
			Number:    s.Round,
			SessionID: s.ID,
			Winner:    s.Winner,
			Moves:     s.TotalMoves,
			StartedAt: s.StartedAt,
			EndedAt:   endedAt,
		},
		Board:   s.Board,
		Ships:   s.Ships,
		Seed:    s.Seed,
		Players: s.Players,
		History: s.History,
	}
}
