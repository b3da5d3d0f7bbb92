package cooldown

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	session *model.Session
	now     time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New(DefaultPolicy(), "captain", testutil.NopLogger())
	s.now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	s.session = testutil.NewSession(s.now)
}

func (s *ServiceSuite) history(player model.PlayerHandle, coords ...string) []model.MoveRecord {
	records := make([]model.MoveRecord, len(coords))
	for i, c := range coords {
		records[i] = model.MoveRecord{Player: player, Coordinate: model.MustParseCoordinate(c)}
	}
	return records
}

// Duration tests

func (s *ServiceSuite) TestDurationTiers() {
	s.Equal(2*time.Hour, s.service.Duration(0, "alice"))
	s.Equal(2*time.Hour, s.service.Duration(19, "alice"))
	s.Equal(90*time.Minute, s.service.Duration(20, "alice"))
	s.Equal(90*time.Minute, s.service.Duration(49, "alice"))
	s.Equal(time.Hour, s.service.Duration(50, "alice"))
	s.Equal(time.Hour, s.service.Duration(500, "alice"))
}

func (s *ServiceSuite) TestDurationStrictlyDecreases() {
	prev := s.service.Duration(0, "alice")
	for _, count := range []int{20, 50} {
		next := s.service.Duration(count, "alice")
		s.Less(next, prev)
		prev = next
	}
}

func (s *ServiceSuite) TestOwnerExemptAtAnyCount() {
	for _, count := range []int{0, 19, 20, 50, 1000} {
		s.Zero(s.service.Duration(count, "captain"))
		s.Zero(s.service.Duration(count, "Captain"))
		s.Zero(s.service.Duration(count, "@captain"))
	}
}

func (s *ServiceSuite) TestOwnerConfiguredWithPrefix() {
	service := New(DefaultPolicy(), "@Captain", testutil.NopLogger())
	s.True(service.IsOwner("captain"))
	s.Zero(service.Duration(0, "captain"))
	s.Equal(2*time.Hour, service.Duration(0, "bosun"))
}

// Check tests

func (s *ServiceSuite) TestCheckFirstMoveAllowed() {
	s.NoError(s.service.Check(s.session, "alice", s.now))
}

func (s *ServiceSuite) TestCheckReportsRemaining() {
	s.session.EnsurePlayer("alice").LastMoveAt = s.now

	err := s.service.Check(s.session, "alice", s.now.Add(30*time.Minute))
	s.ErrorIs(err, model.ErrCooldownActive)

	var cooldownErr *model.CooldownError
	s.Require().True(errors.As(err, &cooldownErr))
	s.Equal(90*time.Minute, cooldownErr.Remaining)
	s.Equal(model.PlayerHandle("alice"), cooldownErr.Player)
}

func (s *ServiceSuite) TestCheckAllowsAfterCooldown() {
	s.session.EnsurePlayer("alice").LastMoveAt = s.now
	s.NoError(s.service.Check(s.session, "alice", s.now.Add(2*time.Hour)))
}

func (s *ServiceSuite) TestCheckUsesGlobalMoveCount() {
	s.session.EnsurePlayer("alice").LastMoveAt = s.now
	s.session.TotalMoves = 50

	s.NoError(s.service.Check(s.session, "alice", s.now.Add(time.Hour)))
	s.Error(s.service.Check(s.session, "alice", s.now.Add(59*time.Minute)))
}

func (s *ServiceSuite) TestCheckOwnerNeverBlocked() {
	s.session.EnsurePlayer("captain").LastMoveAt = s.now
	s.NoError(s.service.Check(s.session, "captain", s.now))
}

// DetectSweep tests

func (s *ServiceSuite) TestSweepAlongRow() {
	h := s.history("alice", "B1", "B2", "B3", "B4")
	s.True(s.service.DetectSweep(h, "alice", model.MustParseCoordinate("B5")))
}

func (s *ServiceSuite) TestSweepBackwardsAlongRow() {
	h := s.history("alice", "E9", "E8", "E7", "E6")
	s.True(s.service.DetectSweep(h, "alice", model.MustParseCoordinate("E5")))
}

func (s *ServiceSuite) TestSweepDownColumn() {
	h := s.history("alice", "A3", "B3", "C3", "D3")
	s.True(s.service.DetectSweep(h, "alice", model.MustParseCoordinate("E3")))
}

func (s *ServiceSuite) TestNoSweepWithFewerMoves() {
	h := s.history("alice", "B2", "B3", "B4")
	s.False(s.service.DetectSweep(h, "alice", model.MustParseCoordinate("B5")))
}

func (s *ServiceSuite) TestNoSweepWhenBroken() {
	h := s.history("alice", "B1", "B2", "B4", "B5")
	s.False(s.service.DetectSweep(h, "alice", model.MustParseCoordinate("B6")))

	h = s.history("alice", "B1", "B2", "C3", "B4")
	s.False(s.service.DetectSweep(h, "alice", model.MustParseCoordinate("B5")))
}

func (s *ServiceSuite) TestSweepIgnoresOtherPlayers() {
	h := append(s.history("alice", "B1", "B2"), s.history("bob", "H9")...)
	h = append(h, s.history("alice", "B3", "B4")...)
	s.True(s.service.DetectSweep(h, "alice", model.MustParseCoordinate("B5")))
	s.False(s.service.DetectSweep(h, "bob", model.MustParseCoordinate("H10")))
}
