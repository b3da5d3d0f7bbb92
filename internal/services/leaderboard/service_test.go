package leaderboard

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/board"
	"github.com/mcoot/issue-battleships/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	board   *board.Service
	service *Service
	state   *model.State
	now     time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.board = board.New(testutil.NopLogger())
	s.service = New(testutil.NopLogger())
	s.now = time.Date(2026, 2, 1, 8, 0, 0, 0, time.UTC)
	s.state = model.NewState()
	s.state.Session = testutil.NewSession(s.now)
}

func (s *ServiceSuite) play(player model.PlayerHandle, coords ...string) []model.Achievement {
	var all []model.Achievement
	for _, c := range coords {
		result, err := s.board.ApplyMove(s.state.Session, model.MustParseCoordinate(c), player, s.now)
		s.Require().NoError(err, c)
		all = append(all, s.service.Record(s.state, player, result, s.now)...)
	}
	return all
}

// Achievements

func (s *ServiceSuite) TestFirstBlood() {
	s.Empty(s.play("bob", "J10"))
	s.Equal([]model.Achievement{model.AchievementFirstBlood}, s.play("alice", "A1"))
	s.Empty(s.play("bob", "A2"))
}

func (s *ServiceSuite) TestShipSinkerOnlyOnFirstSink() {
	got := s.play("alice", "D4", "D5")
	s.Contains(got, model.AchievementShipSinker)

	got = s.play("alice", "J1", "J2")
	s.NotContains(got, model.AchievementShipSinker)
	s.Equal(2, s.state.Session.Player("alice").ShipsSunk)
}

func (s *ServiceSuite) TestHotStreakAndFleetDestroyer() {
	got := s.play("alice", "A1", "A2", "A3", "A4")
	s.NotContains(got, model.AchievementHotStreak)

	got = s.play("alice", "A5")
	s.Contains(got, model.AchievementHotStreak)

	got = s.play("alice", "D4", "D5", "J1", "J2")
	s.Contains(got, model.AchievementFleetDestroyer)
	s.NotContains(got, model.AchievementHotStreak)
}

func (s *ServiceSuite) TestSharpshooter() {
	got := s.play("alice", "A1", "A2", "A3", "A4", "A5", "C1", "C2", "C3", "J10")
	s.NotContains(got, model.AchievementSharpshooter) // 9 moves

	got = s.play("alice", "C4")
	s.Contains(got, model.AchievementSharpshooter) // 9/10
}

func (s *ServiceSuite) TestVictoryRoyaleAndAllTimeWin() {
	var cells []string
	for _, c := range testutil.ShipCells() {
		cells = append(cells, c.String())
	}
	got := s.play("alice", cells...)
	s.Contains(got, model.AchievementVictoryRoyale)

	record := s.state.AllTime["alice"]
	s.Equal(1, record.GamesWon)
	s.Equal(1, record.GamesPlayed)
	s.Equal(model.TotalShipCells, record.TotalHits)
	s.Equal(model.TotalShipCells, record.BestStreak)
	s.Equal(len(model.Fleet()), record.ShipsSunk)
}

func (s *ServiceSuite) TestBadgesUnlockOncePerSession() {
	s.play("alice", "A1", "A2", "A3", "A4", "A5", "C1")
	badges := s.state.Session.Player("alice").Badges
	counts := make(map[model.Achievement]int)
	for _, b := range badges {
		counts[b]++
	}
	for a, n := range counts {
		s.Equal(1, n, a)
	}
}

// All-time records

func (s *ServiceSuite) TestAllTimeAccumulates() {
	s.play("alice", "A1", "J10")
	s.play("bob", "A2")

	alice := s.state.AllTime["alice"]
	s.Equal(1, alice.TotalHits)
	s.Equal(1, alice.TotalMisses)
	s.Equal(1, alice.GamesPlayed)
	s.Equal(1, alice.BestStreak)
	s.Contains(alice.Badges, model.AchievementFirstBlood)
	s.Equal(s.now, alice.LastPlayedAt)

	s.Equal(1, s.state.AllTime["bob"].TotalHits)
}

// Rankings

func (s *ServiceSuite) TestRankingsOrder() {
	s.play("alice", "A1", "J10")   // 1 hit, 50%
	s.play("bob", "A2")            // 1 hit, 100%
	s.play("carol", "A3", "A4")    // 2 hits
	s.play("dave", "I10", "H10")   // 0 hits

	entries := s.service.Rankings(s.state.Session)
	s.Require().Len(entries, 4)
	s.Equal(model.PlayerHandle("carol"), entries[0].Handle)
	s.Equal(model.PlayerHandle("bob"), entries[1].Handle)
	s.Equal(model.PlayerHandle("alice"), entries[2].Handle)
	s.Equal(model.PlayerHandle("dave"), entries[3].Handle)
	for i, e := range entries {
		s.Equal(i+1, e.Rank)
	}
}

func (s *ServiceSuite) TestRankingsTieBreakByHandle() {
	s.play("zed", "A1")
	s.play("amy", "A2")

	entries := s.service.Rankings(s.state.Session)
	s.Equal(model.PlayerHandle("amy"), entries[0].Handle)
	s.Equal(model.PlayerHandle("zed"), entries[1].Handle)
}

func (s *ServiceSuite) TestRankingsNoSession() {
	s.Empty(s.service.Rankings(nil))
}

func (s *ServiceSuite) TestAllTimeRankingsOrder() {
	s.state.AllTime = map[model.PlayerHandle]*model.AllTimeRecord{
		"alice": {Handle: "alice", GamesWon: 1, TotalHits: 5},
		"bob":   {Handle: "bob", GamesWon: 2, TotalHits: 3},
		"carol": {Handle: "carol", GamesWon: 1, TotalHits: 9},
	}

	entries := s.service.AllTimeRankings(s.state)
	s.Require().Len(entries, 3)
	s.Equal(model.PlayerHandle("bob"), entries[0].Handle)
	s.Equal(model.PlayerHandle("carol"), entries[1].Handle)
	s.Equal(model.PlayerHandle("alice"), entries[2].Handle)
}
