package model

import (
	"strings"
	"time"
)

// PlayerHandle is the account name a move was submitted from
type PlayerHandle string

// Normalize returns the handle without surrounding space or a leading @,
// lowercased for comparison
func (p PlayerHandle) Normalize() PlayerHandle {
	return PlayerHandle(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(string(p)), "@")))
}

// Is reports whether both handles name the same account
func (p PlayerHandle) Is(other PlayerHandle) bool {
	return p.Normalize() == other.Normalize()
}

// PlayerStats are a player's counters for the current session
type PlayerStats struct {
	Handle     PlayerHandle  `json:"handle"`
	Hits       int           `json:"hits"`
	Misses     int           `json:"misses"`
	Streak     int           `json:"streak"`
	BestStreak int           `json:"best_streak"`
	ShipsSunk  int           `json:"ships_sunk"`
	Badges     []Achievement `json:"badges"`
	LastMoveAt time.Time     `json:"last_move_at"`
}

// Moves returns the number of moves the player has made this session
func (p *PlayerStats) Moves() int {
	return p.Hits + p.Misses
}

// Accuracy returns hits / moves, 0 when the player has not moved
func (p *PlayerStats) Accuracy() float64 {
	return accuracy(p.Hits, p.Misses)
}

// HasBadge returns true if the achievement was already earned this session
func (p *PlayerStats) HasBadge(a Achievement) bool {
	return containsAchievement(p.Badges, a)
}

// AllTimeRecord accumulates a player's stats across sessions.
// Records are never cleared by a reset.
type AllTimeRecord struct {
	Handle       PlayerHandle  `json:"handle"`
	TotalHits    int           `json:"total_hits"`
	TotalMisses  int           `json:"total_misses"`
	ShipsSunk    int           `json:"ships_sunk"`
	GamesWon     int           `json:"games_won"`
	GamesPlayed  int           `json:"games_played"`
	BestStreak   int           `json:"best_streak"`
	Badges       []Achievement `json:"badges"`
	LastPlayedAt time.Time     `json:"last_played_at"`
}

// Accuracy returns total hits / total moves
func (r *AllTimeRecord) Accuracy() float64 {
	return accuracy(r.TotalHits, r.TotalMisses)
}

// AddBadge records an achievement if not already present
func (r *AllTimeRecord) AddBadge(a Achievement) {
	if !containsAchievement(r.Badges, a) {
		r.Badges = append(r.Badges, a)
	}
}

func accuracy(hits, misses int) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}

func containsAchievement(list []Achievement, a Achievement) bool {
	for _, b := range list {
		if b == a {
			return true
		}
	}
	return false
}
