package render

import (
	"strings"

	"github.com/mcoot/issue-battleships/internal/model"
)

// Section names a marked region of the README
type Section string

const (
	SectionBoard        Section = "BOARD"
	SectionShipStatus   Section = "SHIP_STATUS"
	SectionGameStats    Section = "GAME_STATS"
	SectionHistoryMoves Section = "HISTORY_MOVES"
	SectionLeaderboard  Section = "LEADERBOARD"
	SectionAllTime      Section = "ALL_TIME"
	SectionHistory      Section = "HISTORY"
)

// Sections lists every section in the order they are written
var Sections = []Section{
	SectionBoard,
	SectionShipStatus,
	SectionGameStats,
	SectionHistoryMoves,
	SectionLeaderboard,
	SectionAllTime,
	SectionHistory,
}

// StartMarker returns e.g. "<!-- BOARD_START -->"
func (s Section) StartMarker() string {
	return "<!-- " + string(s) + "_START -->"
}

// EndMarker returns e.g. "<!-- BOARD_END -->"
func (s Section) EndMarker() string {
	return "<!-- " + string(s) + "_END -->"
}

// UpdateSection replaces the text between the start and end markers.
// The README is returned unchanged if either marker is missing or the end
// marker precedes the start marker.
func UpdateSection(readme, startMarker, endMarker, content string) string {
	start := strings.Index(readme, startMarker)
	if start < 0 {
		return readme
	}
	bodyStart := start + len(startMarker)
	end := strings.Index(readme[bodyStart:], endMarker)
	if end < 0 {
		return readme
	}
	end += bodyStart

	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return readme[:bodyStart] + "\n" + content + readme[end:]
}

// RenderSection returns the markdown for one section
func (s *Service) RenderSection(section Section, state *model.State) string {
	switch section {
	case SectionBoard:
		return s.Board(state.Session)
	case SectionShipStatus:
		return s.FleetStatus(state.Session)
	case SectionGameStats:
		return s.GameStats(state.Session)
	case SectionHistoryMoves:
		return s.RecentMoves(state.Session)
	case SectionLeaderboard:
		return s.Leaderboard(state.Session)
	case SectionAllTime:
		return s.AllTime(state)
	case SectionHistory:
		return s.RoundHistory(state)
	default:
		return ""
	}
}

// UpdateReadme rewrites every marked section present in the README
func (s *Service) UpdateReadme(readme string, state *model.State) string {
	for _, section := range Sections {
		readme = UpdateSection(readme, section.StartMarker(), section.EndMarker(), s.RenderSection(section, state))
	}
	return readme
}

// Template returns a minimal README containing every marker, for first runs
func Template() string {
	var b strings.Builder
	b.WriteString("# 🚢 Community Battleships\n\n")
	b.WriteString("Open an issue titled `Move: B4` (or with `/move B4` in the body) to fire.\n\n")
	headings := map[Section]string{
		SectionBoard:        "## 🎯 Board",
		SectionShipStatus:   "",
		SectionGameStats:    "",
		SectionHistoryMoves: "",
		SectionLeaderboard:  "## 🏆 Leaderboard",
		SectionAllTime:      "## 👑 All-Time Leaderboard",
		SectionHistory:      "## 📚 Past Rounds",
	}
	for _, section := range Sections {
		if h := headings[section]; h != "" {
			b.WriteString(h + "\n\n")
		}
		b.WriteString(section.StartMarker() + "\n" + section.EndMarker() + "\n\n")
	}
	return b.String()
}
