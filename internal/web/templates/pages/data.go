package pages

import (
	"fmt"

	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/leaderboard"
	"github.com/mcoot/issue-battleships/internal/web/templates/layout"
)

// GameData is the data for the current game page
type GameData struct {
	layout.PageData
	Session     *model.Session // Nil before the first move
	Leaderboard []leaderboard.Entry
	AllTime     []leaderboard.AllTimeEntry
	Rounds      []model.RoundSummary
}

// RoundData is the data for an archived round page
type RoundData struct {
	layout.PageData
	Round *model.Round
}

func roundTitle(number int) string {
	return fmt.Sprintf("Round %03d", number)
}

func progressText(s *model.Session) string {
	return fmt.Sprintf("%d moves, %d ship cells remaining", s.TotalMoves, s.RemainingCells())
}

func roundOutcome(r *model.Round) string {
	if r.Winner == "" {
		return "Reset before victory"
	}
	return "🏆 Won by @" + string(r.Winner)
}

// revealed shows an archived round with every ship visible
func revealed(r *model.Round) *model.Session {
	return &model.Session{Status: model.SessionWon, Board: r.Board, Ships: r.Ships}
}
