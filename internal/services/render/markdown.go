package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/leaderboard"
)

// Cell emojis
const (
	EmojiHit     = "💥"
	EmojiMiss    = "🌊"
	EmojiUnknown = "⬜"
	EmojiShip    = "🚢"
)

// RecentMovesLimit is how many moves the recent moves section shows
const RecentMovesLimit = 10

var shipEmoji = map[model.ShipName]string{
	model.ShipCarrier:    "🛳️",
	model.ShipBattleship: "⚓",
	model.ShipSubmarine:  "🔱",
	model.ShipDestroyer:  "⛴️",
	model.ShipPatrol:     "🛥️",
}

// ShipEmoji returns the emoji for a ship class
func ShipEmoji(name model.ShipName) string {
	if e, ok := shipEmoji[name]; ok {
		return e
	}
	return EmojiShip
}

// Service renders game state as markdown and reply text
type Service struct {
	leaderboard leaderboard.ServiceInterface
}

// New creates a new render Service
func New(lb leaderboard.ServiceInterface) *Service {
	return &Service{
		leaderboard: lb,
	}
}

// Board renders the firing grid as a markdown table. Unhit ship cells are
// only shown once the session is won.
func (s *Service) Board(session *model.Session) string {
	var b strings.Builder
	b.WriteString("|   |")
	for col := 1; col <= model.BoardSize; col++ {
		b.WriteString(" " + strconv.Itoa(col) + " |")
	}
	b.WriteString("\n|---|")
	b.WriteString(strings.Repeat("---|", model.BoardSize))
	b.WriteString("\n")

	for row := 0; row < model.BoardSize; row++ {
		b.WriteString("| " + string(model.RowLabels[row]) + " |")
		for col := 0; col < model.BoardSize; col++ {
			b.WriteString(" " + CellEmoji(session, model.Coordinate{Row: row, Col: col}) + " |")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// CellEmoji returns the emoji for a single cell
func CellEmoji(session *model.Session, c model.Coordinate) string {
	if session == nil {
		return EmojiUnknown
	}
	switch session.Board.Get(c) {
	case model.CellHit:
		return EmojiHit
	case model.CellMiss:
		return EmojiMiss
	}
	if session.Status == model.SessionWon && session.ShipAt(c) != nil {
		return EmojiShip
	}
	return EmojiUnknown
}

// FleetStatus renders each ship's damage
func (s *Service) FleetStatus(session *model.Session) string {
	var b strings.Builder
	b.WriteString("### 🚢 Fleet Status\n\n")
	if session == nil {
		b.WriteString("*No game in progress.*\n")
		return b.String()
	}
	for _, ship := range session.Ships {
		var status string
		switch {
		case ship.Sunk:
			status = "💀 **SUNK**"
		case ship.Hits > 0:
			status = fmt.Sprintf("🔥 **%d/%d** damaged", ship.Hits, ship.Length)
		default:
			status = "✅ Afloat"
		}
		fmt.Fprintf(&b, "- %s **%s** (%d cells): %s\n",
			ShipEmoji(ship.Name), strings.ToUpper(string(ship.Name)), ship.Length, status)
	}
	return b.String()
}

// GameStats renders community totals for the session
func (s *Service) GameStats(session *model.Session) string {
	var b strings.Builder
	b.WriteString("### 📊 Game Statistics\n\n")
	if session == nil {
		b.WriteString("*No game in progress.*\n")
		return b.String()
	}
	hits := session.Board.Count(model.CellHit)
	misses := session.Board.Count(model.CellMiss)
	accuracy := 0.0
	if hits+misses > 0 {
		accuracy = float64(hits) / float64(hits+misses) * 100
	}
	fmt.Fprintf(&b, "- 🎮 **Round:** %03d\n", session.Round)
	fmt.Fprintf(&b, "- 🎯 **Ship Cells Remaining:** %d/%d\n", session.RemainingCells(), session.ShipCells())
	fmt.Fprintf(&b, "- 🎲 **Total Moves:** %d\n", session.TotalMoves)
	fmt.Fprintf(&b, "- 💥 **Total Hits:** %d\n", hits)
	fmt.Fprintf(&b, "- 🌊 **Total Misses:** %d\n", misses)
	fmt.Fprintf(&b, "- 📈 **Community Accuracy:** %.1f%%\n", accuracy)
	fmt.Fprintf(&b, "- 👥 **Active Players:** %d\n", len(session.Players))
	return b.String()
}

// RecentMoves renders the latest moves, newest first
func (s *Service) RecentMoves(session *model.Session) string {
	var b strings.Builder
	b.WriteString("### 📜 Recent Moves\n\n")
	if session == nil || len(session.History) == 0 {
		b.WriteString("*No moves yet! Be the first to fire!*\n")
		return b.String()
	}
	shown := 0
	for i := len(session.History) - 1; i >= 0 && shown < RecentMovesLimit; i-- {
		m := session.History[i]
		emoji, label := EmojiMiss, "Miss"
		if m.Outcome == model.OutcomeHit {
			emoji, label = EmojiHit, "Hit"
		}
		ship := ""
		if m.Ship != "" {
			ship = " (" + string(m.Ship) + ")"
		}
		fmt.Fprintf(&b, "- %s @%s: `%s` - %s%s\n", emoji, m.Player, m.Coordinate, label, ship)
		shown++
	}
	return b.String()
}

// Leaderboard renders the current game leaderboard
func (s *Service) Leaderboard(session *model.Session) string {
	var b strings.Builder
	b.WriteString("| Rank | Player | 🏹 Hits | 💦 Misses | 🎯 Accuracy | 🔥 Streak | 🚢 Sunk |\n")
	b.WriteString("|------|--------|---------|-----------|-------------|-----------|---------|\n")

	entries := s.leaderboard.Rankings(session)
	if len(entries) == 0 {
		b.WriteString("| - | *No players yet* | - | - | - | - | - |\n")
		return b.String()
	}
	for _, e := range entries {
		player := "@" + string(e.Handle)
		if badges := badgeList(e.Badges, 3); badges != "" {
			player += " " + badges
		}
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %s | %d | %d |\n",
			medal(e.Rank, "🥇"), player, e.Hits, e.Misses, percent(e.Accuracy), e.Streak, e.ShipsSunk)
	}
	return b.String()
}

// AllTime renders the all-time leaderboard
func (s *Service) AllTime(state *model.State) string {
	var b strings.Builder
	b.WriteString("| Rank | Player | 🏹 Total Hits | 🏆 Wins | 🎮 Games | 🎯 Accuracy | 🔥 Best Streak | 🚢 Ships Sunk |\n")
	b.WriteString("|------|--------|---------------|---------|----------|-------------|----------------|---------------|\n")

	entries := s.leaderboard.AllTimeRankings(state)
	if len(entries) == 0 {
		b.WriteString("| - | *No players yet* | - | - | - | - | - | - |\n")
		return b.String()
	}
	for _, e := range entries {
		fmt.Fprintf(&b, "| %s | @%s | %d | %d | %d | %s | %d | %d |\n",
			medal(e.Rank, "👑"), e.Handle, e.TotalHits, e.GamesWon, e.GamesPlayed, percent(e.Accuracy), e.BestStreak, e.ShipsSunk)
	}
	return b.String()
}

// RoundHistory renders one line per archived round, newest first
func (s *Service) RoundHistory(state *model.State) string {
	rounds := state.SortedRounds()
	if len(rounds) == 0 {
		return "*No rounds completed yet.*\n"
	}
	var b strings.Builder
	for _, r := range rounds {
		date := r.EndedAt.Format("2006-01-02")
		if r.Winner != "" {
			fmt.Fprintf(&b, "- Round %03d (%s): 🏆 Winner `@%s` in %d moves\n", r.Number, date, r.Winner, r.Moves)
		} else {
			fmt.Fprintf(&b, "- Round %03d (%s): No winner\n", r.Number, date)
		}
	}
	return b.String()
}

func medal(rank int, first string) string {
	switch rank {
	case 1:
		return first
	case 2:
		return "🥈"
	case 3:
		return "🥉"
	default:
		return strconv.Itoa(rank)
	}
}

func percent(f float64) string {
	return fmt.Sprintf("%.1f%%", f*100)
}

func badgeList(badges []model.Achievement, limit int) string {
	parts := make([]string, 0, limit)
	for i, a := range badges {
		if i >= limit {
			break
		}
		parts = append(parts, a.Info().Emoji)
	}
	return strings.Join(parts, " ")
}
