package response

import (
	"strings"
	"time"

	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/leaderboard"
	"github.com/mcoot/issue-battleships/internal/services/render"
)

// Health is the response for the health check
type Health struct {
	Status string `json:"status"`
}

// MoveResponse is the response for a processed move
type MoveResponse struct {
	Result *model.MoveResult `json:"result"`
	Reply  string            `json:"reply"`
}

// SuggestionResponse is the autopilot's next target
type SuggestionResponse struct {
	Strategy   string           `json:"strategy"`
	Coordinate model.Coordinate `json:"coordinate"`
}

// ResetResponse is the response for an admin reset
type ResetResponse struct {
	Result *model.ResetResult `json:"result"`
	Reply  string             `json:"reply"`
}

// EventResponse is the response for a raw issue event
type EventResponse struct {
	Command model.CommandType  `json:"command"`
	Move    *model.MoveResult  `json:"move,omitempty"`
	Reset   *model.ResetResult `json:"reset,omitempty"`
	Reply   string             `json:"reply"`
}

// Ship represents a ship in API responses. Cells are only included once the
// session is won.
type Ship struct {
	Name   string   `json:"name"`
	Length int      `json:"length"`
	Hits   int      `json:"hits"`
	Sunk   bool     `json:"sunk"`
	Cells  []string `json:"cells,omitempty"`
}

// Move represents a history entry in API responses
type Move struct {
	Player     string    `json:"player"`
	Coordinate string    `json:"coordinate"`
	Outcome    string    `json:"outcome"`
	Ship       string    `json:"ship,omitempty"`
	Sunk       bool      `json:"sunk,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// Game is the public view of the current session
type Game struct {
	SessionID   string     `json:"session_id"`
	Round       int        `json:"round"`
	Status      string     `json:"status"`
	Board       []string   `json:"board"` // One emoji row per board row
	Fleet       []Ship     `json:"fleet"`
	TotalMoves  int        `json:"total_moves"`
	Hits        int        `json:"hits"`
	Misses      int        `json:"misses"`
	Remaining   int        `json:"remaining"`
	Players     int        `json:"players"`
	Winner      string     `json:"winner,omitempty"`
	RecentMoves []Move     `json:"recent_moves"`
	StartedAt   time.Time  `json:"started_at"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}

// GameFromModel converts a session into its public view, hiding ship
// positions until the session is won
func GameFromModel(s *model.Session) Game {
	g := Game{
		SessionID:   string(s.ID),
		Round:       s.Round,
		Status:      string(s.Status),
		Board:       make([]string, 0, model.BoardSize),
		Fleet:       make([]Ship, 0, len(s.Ships)),
		TotalMoves:  s.TotalMoves,
		Hits:        s.Board.Count(model.CellHit),
		Misses:      s.Board.Count(model.CellMiss),
		Remaining:   s.RemainingCells(),
		Players:     len(s.Players),
		Winner:      string(s.Winner),
		RecentMoves: make([]Move, 0, render.RecentMovesLimit),
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
	}

	for row := 0; row < model.BoardSize; row++ {
		var b strings.Builder
		for col := 0; col < model.BoardSize; col++ {
			b.WriteString(render.CellEmoji(s, model.Coordinate{Row: row, Col: col}))
		}
		g.Board = append(g.Board, b.String())
	}

	for _, ship := range s.Ships {
		rs := Ship{
			Name:   string(ship.Name),
			Length: ship.Length,
			Hits:   ship.Hits,
			Sunk:   ship.Sunk,
		}
		if !s.IsActive() {
			for _, c := range ship.Cells {
				rs.Cells = append(rs.Cells, c.String())
			}
		}
		g.Fleet = append(g.Fleet, rs)
	}

	for i := len(s.History) - 1; i >= 0 && len(g.RecentMoves) < render.RecentMovesLimit; i-- {
		g.RecentMoves = append(g.RecentMoves, MoveFromModel(s.History[i]))
	}
	return g
}

// MoveFromModel converts a history record
func MoveFromModel(m model.MoveRecord) Move {
	return Move{
		Player:     string(m.Player),
		Coordinate: m.Coordinate.String(),
		Outcome:    string(m.Outcome),
		Ship:       string(m.Ship),
		Sunk:       m.Sunk,
		Timestamp:  m.Timestamp,
	}
}

// GameResponse is the response for the current game
type GameResponse struct {
	Game     *Game  `json:"game"` // Nil before the first move
	Markdown string `json:"markdown,omitempty"`
}

// LeaderboardResponse is the response for the current game leaderboard
type LeaderboardResponse struct {
	Entries []leaderboard.Entry `json:"entries"`
}

// AllTimeResponse is the response for the all-time leaderboard
type AllTimeResponse struct {
	Entries []leaderboard.AllTimeEntry `json:"entries"`
	Rounds  []model.RoundSummary       `json:"rounds"`
}

// RoundResponse is the response for an archived round
type RoundResponse struct {
	Round *model.Round `json:"round"`
}
