package board

import (
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
	s.service = New(testutil.NopLogger())
	s.now = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	s.session = testutil.NewSession(s.now)
}

func (s *ServiceSuite) fire(player model.PlayerHandle, coord string) (*Result, error) {
	return s.service.ApplyMove(s.session, model.MustParseCoordinate(coord), player, s.now)
}

// Scenario: destroyer at D4/D5

func (s *ServiceSuite) TestDestroyerSinks() {
	result, err := s.fire("alice", "D4")
	s.Require().NoError(err)
	s.Equal(model.OutcomeHit, result.Outcome)
	s.Equal(model.ShipDestroyer, result.Ship)
	s.False(result.Sunk)

	destroyer := s.session.Ship(model.ShipDestroyer)
	s.Equal(1, destroyer.Hits)
	s.False(destroyer.Sunk)

	result, err = s.fire("alice", "D5")
	s.Require().NoError(err)
	s.Equal(model.OutcomeHit, result.Outcome)
	s.True(result.Sunk)
	s.Equal(model.ShipDestroyer, result.Ship)
	s.Equal(2, destroyer.Hits)
	s.True(destroyer.Sunk)
	s.False(result.GameWon)
}

// Outcomes

func (s *ServiceSuite) TestMissRecorded() {
	result, err := s.fire("bob", "J10")
	s.Require().NoError(err)
	s.Equal(model.OutcomeMiss, result.Outcome)
	s.Empty(result.Ship)
	s.Equal(model.CellMiss, s.session.Board.Get(model.MustParseCoordinate("J10")))
}

func (s *ServiceSuite) TestAlreadyPlayedLeavesBoardUnchanged() {
	for _, coord := range []string{"A1", "J10"} {
		first, err := s.fire("alice", coord)
		s.Require().NoError(err)
		s.Contains([]model.MoveOutcome{model.OutcomeHit, model.OutcomeMiss}, first.Outcome)

		cells := len(s.session.Board.Cells)
		history := len(s.session.History)
		moves := s.session.TotalMoves
		status := s.session.Board.Get(model.MustParseCoordinate(coord))

		_, err = s.fire("bob", coord)
		s.ErrorIs(err, model.ErrAlreadyPlayed)
		s.Len(s.session.Board.Cells, cells)
		s.Len(s.session.History, history)
		s.Equal(moves, s.session.TotalMoves)
		s.Equal(status, s.session.Board.Get(model.MustParseCoordinate(coord)))
		s.Nil(s.session.Player("bob"))
	}
}

func (s *ServiceSuite) TestOutOfBounds() {
	_, err := s.service.ApplyMove(s.session, model.Coordinate{Row: 10, Col: 0}, "alice", s.now)
	s.ErrorIs(err, model.ErrOutOfBounds)
}

func (s *ServiceSuite) TestNoSession() {
	_, err := s.service.ApplyMove(nil, model.MustParseCoordinate("A1"), "alice", s.now)
	s.ErrorIs(err, model.ErrNoSession)
}

// Player stats

func (s *ServiceSuite) TestStreakAndCounters() {
	r, _ := s.fire("alice", "A1") // carrier
	s.True(r.FirstMove)
	r, _ = s.fire("alice", "A2")
	s.False(r.FirstMove)
	_, _ = s.fire("alice", "J10") // miss
	_, _ = s.fire("alice", "A3")

	p := s.session.Player("alice")
	s.Equal(3, p.Hits)
	s.Equal(1, p.Misses)
	s.Equal(1, p.Streak)
	s.Equal(2, p.BestStreak)
	s.Equal(4, p.Moves())
	s.InDelta(0.75, p.Accuracy(), 1e-9)
	s.Equal(s.now, p.LastMoveAt)
	s.Equal(4, s.session.TotalMoves)
	s.Len(s.session.History, 4)
}

func (s *ServiceSuite) TestAccuracyMatchesHistory() {
	players := []model.PlayerHandle{"alice", "bob", "carol"}
	i := 0
	for _, c := range model.AllCoordinates() {
		if i >= 60 {
			break
		}
		_, err := s.service.ApplyMove(s.session, c, players[i%len(players)], s.now)
		s.Require().NoError(err)
		i++
	}

	for _, handle := range players {
		hits, total := 0, 0
		for _, m := range s.session.PlayerHistory(handle) {
			total++
			if m.Outcome == model.OutcomeHit {
				hits++
			}
		}
		p := s.session.Player(handle)
		s.GreaterOrEqual(p.Accuracy(), 0.0)
		s.LessOrEqual(p.Accuracy(), 1.0)
		s.InDelta(float64(hits)/float64(total), p.Accuracy(), 1e-9)
	}
}

// Win

func (s *ServiceSuite) TestSinkingAllShipsWins() {
	var last *Result
	for _, ship := range s.session.Ships {
		for _, c := range ship.Cells {
			r, err := s.service.ApplyMove(s.session, c, "alice", s.now)
			s.Require().NoError(err)
			last = r
		}
	}
	s.True(last.GameWon)
	s.Equal(model.SessionWon, s.session.Status)
	s.Equal(model.PlayerHandle("alice"), s.session.Winner)
	s.Require().NotNil(s.session.EndedAt)
	s.Equal(model.TotalShipCells, s.session.ShipHits())
	s.Equal(len(model.Fleet()), s.session.Player("alice").ShipsSunk)

	_, err := s.fire("bob", "J10")
	s.ErrorIs(err, model.ErrGameOver)
}

func (s *ServiceSuite) TestHitsNeverExceedFleet() {
	for _, c := range model.AllCoordinates() {
		_, err := s.service.ApplyMove(s.session, c, "alice", s.now)
		if err != nil {
			s.ErrorIs(err, model.ErrGameOver)
			break
		}
		s.LessOrEqual(s.session.ShipHits(), model.TotalShipCells)
		for _, ship := range s.session.Ships {
			s.Equal(ship.Hits == ship.Length, ship.Sunk)
		}
		s.Require().NoError(s.session.Verify())
	}
}
