package leaderboard

import (
	"log/slog"
	"sort"
	"time"

	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/board"
)

// Sharpshooter thresholds
const (
	SharpshooterMinMoves    = 10
	SharpshooterMinAccuracy = 0.8
	HotStreakLength         = 5
	FleetDestroyerShips     = 3
)

// Entry is one row of the current game leaderboard
type Entry struct {
	Rank      int                 `json:"rank"`
	Handle    model.PlayerHandle  `json:"handle"`
	Hits      int                 `json:"hits"`
	Misses    int                 `json:"misses"`
	Accuracy  float64             `json:"accuracy"`
	ShipsSunk int                 `json:"ships_sunk"`
	Streak    int                 `json:"streak"`
	Badges    []model.Achievement `json:"badges"`
}

// AllTimeEntry is one row of the all-time leaderboard
type AllTimeEntry struct {
	Rank        int                 `json:"rank"`
	Handle      model.PlayerHandle  `json:"handle"`
	GamesWon    int                 `json:"games_won"`
	GamesPlayed int                 `json:"games_played"`
	TotalHits   int                 `json:"total_hits"`
	Accuracy    float64             `json:"accuracy"`
	ShipsSunk   int                 `json:"ships_sunk"`
	BestStreak  int                 `json:"best_streak"`
	Badges      []model.Achievement `json:"badges"`
}

// Service evaluates achievements and aggregates leaderboards
type Service struct {
	logger *slog.Logger
}

// New creates a new leaderboard Service
func New(logger *slog.Logger) *Service {
	return &Service{
		logger: logger,
	}
}

// Record folds a resolved move into the session badges and the all-time
// record, returning any achievements unlocked by this move
func (s *Service) Record(state *model.State, player model.PlayerHandle, result *board.Result, now time.Time) []model.Achievement {
	session := state.Session
	stats := session.EnsurePlayer(player)

	unlocked := s.EvaluateAchievements(session, stats, result)
	stats.Badges = append(stats.Badges, unlocked...)

	record := state.Record(player)
	switch result.Outcome {
	case model.OutcomeHit:
		record.TotalHits++
	case model.OutcomeMiss:
		record.TotalMisses++
	}
	if result.Sunk {
		record.ShipsSunk++
	}
	if stats.Streak > record.BestStreak {
		record.BestStreak = stats.Streak
	}
	if result.FirstMove {
		record.GamesPlayed++
	}
	if result.GameWon {
		record.GamesWon++
	}
	for _, a := range unlocked {
		record.AddBadge(a)
	}
	record.LastPlayedAt = now

	if len(unlocked) > 0 {
		names := make([]string, len(unlocked))
		for i, a := range unlocked {
			names[i] = string(a)
		}
		s.logger.Info("achievements unlocked",
			slog.String("player", string(player)),
			slog.Any("achievements", names),
		)
	}
	return unlocked
}

// EvaluateAchievements returns achievements the move earns that the player
// does not already hold this session. Stats must already include the move.
func (s *Service) EvaluateAchievements(session *model.Session, stats *model.PlayerStats, result *board.Result) []model.Achievement {
	var earned []model.Achievement
	award := func(a model.Achievement, ok bool) {
		if ok && !stats.HasBadge(a) {
			earned = append(earned, a)
		}
	}

	hit := result.Outcome == model.OutcomeHit
	award(model.AchievementFirstBlood, hit && session.ShipHits() == 1)
	award(model.AchievementHotStreak, stats.Streak >= HotStreakLength)
	award(model.AchievementShipSinker, result.Sunk && stats.ShipsSunk == 1)
	award(model.AchievementFleetDestroyer, stats.ShipsSunk >= FleetDestroyerShips)
	award(model.AchievementSharpshooter, stats.Moves() >= SharpshooterMinMoves && stats.Accuracy() >= SharpshooterMinAccuracy)
	award(model.AchievementVictoryRoyale, result.GameWon)
	return earned
}

// Rankings orders the session's players by hits, then accuracy, then ships
// sunk, then handle
func (s *Service) Rankings(session *model.Session) []Entry {
	if session == nil {
		return []Entry{}
	}
	entries := make([]Entry, 0, len(session.Players))
	for _, p := range session.Players {
		entries = append(entries, Entry{
			Handle:    p.Handle,
			Hits:      p.Hits,
			Misses:    p.Misses,
			Accuracy:  p.Accuracy(),
			ShipsSunk: p.ShipsSunk,
			Streak:    p.Streak,
			Badges:    p.Badges,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Hits != b.Hits {
			return a.Hits > b.Hits
		}
		if a.Accuracy != b.Accuracy {
			return a.Accuracy > b.Accuracy
		}
		if a.ShipsSunk != b.ShipsSunk {
			return a.ShipsSunk > b.ShipsSunk
		}
		return a.Handle < b.Handle
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// AllTimeRankings orders all-time records by games won, then total hits,
// then ships sunk, then handle
func (s *Service) AllTimeRankings(state *model.State) []AllTimeEntry {
	entries := make([]AllTimeEntry, 0, len(state.AllTime))
	for _, r := range state.AllTime {
		entries = append(entries, AllTimeEntry{
			Handle:      r.Handle,
			GamesWon:    r.GamesWon,
			GamesPlayed: r.GamesPlayed,
			TotalHits:   r.TotalHits,
			Accuracy:    r.Accuracy(),
			ShipsSunk:   r.ShipsSunk,
			BestStreak:  r.BestStreak,
			Badges:      r.Badges,
		})
	}
	sort.Slice(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.GamesWon != b.GamesWon {
			return a.GamesWon > b.GamesWon
		}
		if a.TotalHits != b.TotalHits {
			return a.TotalHits > b.TotalHits
		}
		if a.ShipsSunk != b.ShipsSunk {
			return a.ShipsSunk > b.ShipsSunk
		}
		return a.Handle < b.Handle
	})
	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries
}

// Interface for dependency injection
type ServiceInterface interface {
	Record(state *model.State, player model.PlayerHandle, result *board.Result, now time.Time) []model.Achievement
	EvaluateAchievements(session *model.Session, stats *model.PlayerStats, result *board.Result) []model.Achievement
	Rankings(session *model.Session) []Entry
	AllTimeRankings(state *model.State) []AllTimeEntry
}

var _ ServiceInterface = (*Service)(nil)
