package components

import (
	"fmt"
	"strings"

	"github.com/mcoot/issue-battleships/internal/model"
)

const moveTimeLayout = "2006-01-02 15:04"

// cellClass returns the CSS class for a cell, matching the emoji shown
func cellClass(session *model.Session, c model.Coordinate) string {
	switch session.Board.Get(c) {
	case model.CellHit:
		return "cell-hit"
	case model.CellMiss:
		return "cell-miss"
	}
	if !session.IsActive() && session.ShipAt(c) != nil {
		return "cell-ship"
	}
	return "cell-unknown"
}

func boardRow(row int) []model.Coordinate {
	cells := make([]model.Coordinate, model.BoardSize)
	for col := range cells {
		cells[col] = model.Coordinate{Row: row, Col: col}
	}
	return cells
}

func shipStatus(ship model.Ship) string {
	switch {
	case ship.Sunk:
		return "💀 Sunk"
	case ship.IsDamaged():
		return fmt.Sprintf("🔥 Damaged (%d/%d)", ship.Hits, ship.Length)
	}
	return "🟢 Afloat"
}

func moveResult(m model.MoveRecord) string {
	switch {
	case m.Outcome != model.OutcomeHit:
		return "🌊 Miss"
	case m.Sunk:
		return "💀 Sunk " + string(m.Ship)
	}
	return "💥 Hit " + string(m.Ship)
}

// newestFirst returns up to limit moves, most recent first
func newestFirst(history []model.MoveRecord, limit int) []model.MoveRecord {
	moves := make([]model.MoveRecord, 0, min(limit, len(history)))
	for i := len(history) - 1; i >= 0 && len(moves) < limit; i-- {
		moves = append(moves, history[i])
	}
	return moves
}

func badges(list []model.Achievement) string {
	parts := make([]string, len(list))
	for i, a := range list {
		parts[i] = a.Info().Emoji
	}
	return strings.Join(parts, " ")
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

func roundSummaryText(r model.RoundSummary) string {
	if r.Winner == "" {
		return fmt.Sprintf("reset in %d moves", r.Moves)
	}
	return fmt.Sprintf("won by @%s in %d moves", r.Winner, r.Moves)
}
