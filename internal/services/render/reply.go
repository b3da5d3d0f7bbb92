package render

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mcoot/issue-battleships/internal/model"
)

// Reply thresholds
const (
	VictoryNearCells = 3
	OnFireStreak     = 3
)

// Reply messages that do not depend on the move
const (
	MsgInvalidFormat = "❌ Invalid move format. Use `/move B4` or `Move: B4`."
	MsgSweepWarning  = "⚠️ Pattern detected! Try mixing up your strategy 🎲"
	MsgNotAdmin      = "🚫 Only repository administrators can reset the game."
	MsgGameOver      = "🏁 This game is already won. Wait for the next round to start!"
)

// MoveReply builds the reply posted for a successful move
func (s *Service) MoveReply(result *model.MoveResult) string {
	var b strings.Builder
	if result.SweepWarning {
		b.WriteString(MsgSweepWarning + "\n\n")
	}

	switch {
	case result.Outcome == model.OutcomeHit && result.Sunk:
		fmt.Fprintf(&b, "💥🔥 **SUNK!** @%s destroyed the `%s`! 🚢💀", result.Player, result.Ship)
	case result.Outcome == model.OutcomeHit:
		fmt.Fprintf(&b, "💥 **Hit!** @%s struck the `%s`!", result.Player, result.Ship)
	default:
		fmt.Fprintf(&b, "🌊 `%s` is a **Miss** by @%s.", result.Coordinate, result.Player)
	}

	if len(result.NewBadges) > 0 {
		badges := make([]string, len(result.NewBadges))
		for i, a := range result.NewBadges {
			badges[i] = a.Badge()
		}
		b.WriteString("\n\n🏅 **New Achievements:** " + strings.Join(badges, ", "))
	}

	switch {
	case result.GameWon:
	case result.Remaining > 0 && result.Remaining <= VictoryNearCells:
		fmt.Fprintf(&b, "\n\n⚠️ **ALERT:** Only **%d** ship cells remaining! Victory is near! 🎯", result.Remaining)
	case result.Streak >= OnFireStreak:
		fmt.Fprintf(&b, "\n\n🔥 **ON FIRE!** @%s has a **%d** hit streak! 🔥", result.Player, result.Streak)
	}

	if result.GameWon {
		fmt.Fprintf(&b, "\n\n🎉🏆 **GAME OVER!** @%s has sunk all ships and **WON THE GAME**! 🎊👑", result.Player)
		if result.Round != nil {
			b.WriteString("\n\n" + RevealedLayout(result.Round))
		}
		if result.NewSessionID != "" {
			b.WriteString("\n\n🔄 A new round has started. Ships repositioned, board cleared!")
		}
	}
	return b.String()
}

// ErrorReply builds the reply for a player-facing error
func (s *Service) ErrorReply(player model.PlayerHandle, err error) string {
	var cooldownErr *model.CooldownError
	var playedErr *model.AlreadyPlayedError
	switch {
	case errors.As(err, &cooldownErr):
		return fmt.Sprintf("🛑 @%s, slow down! Cooldown active: %s remaining ⏰", player, FormatWait(cooldownErr.Remaining))
	case errors.As(err, &playedErr):
		return fmt.Sprintf("⚠️ `%s` was already played and marked as a %s.", playedErr.Coordinate, playedErr.Status)
	case errors.Is(err, model.ErrAlreadyPlayed):
		return "⚠️ That cell was already played."
	case errors.Is(err, model.ErrOutOfBounds):
		return "❌ That is not a valid cell. Use format like A1, B10, J5."
	case errors.Is(err, model.ErrInvalidFormat):
		return MsgInvalidFormat
	case errors.Is(err, model.ErrNotAdmin):
		return MsgNotAdmin
	case errors.Is(err, model.ErrGameOver):
		return MsgGameOver
	default:
		return "❌ ERROR: " + err.Error()
	}
}

// ResetReply builds the reply for an admin reset
func (s *Service) ResetReply(result *model.ResetResult) string {
	msg := fmt.Sprintf("🔄 Game has been reset by @%s! Ships repositioned, board cleared, leaderboard wiped. Round %03d begins.",
		result.Actor, result.Round)
	if result.ArchivedFrom != nil {
		msg += fmt.Sprintf("\n\nRound %03d archived with %d moves.", result.ArchivedFrom.Number, result.ArchivedFrom.Moves)
	}
	return msg
}

// RevealedLayout lists where every ship was
func RevealedLayout(round *model.Round) string {
	var b strings.Builder
	b.WriteString("🗺️ **Revealed layout:**\n")
	for _, ship := range round.Ships {
		cells := make([]string, len(ship.Cells))
		for i, c := range ship.Cells {
			cells[i] = c.String()
		}
		fmt.Fprintf(&b, "- %s **%s**: %s\n", ShipEmoji(ship.Name), strings.ToUpper(string(ship.Name)), strings.Join(cells, ", "))
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatWait renders a duration as "1h 30m", rounding up to the minute
func FormatWait(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int((d + time.Minute - 1) / time.Minute)
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
