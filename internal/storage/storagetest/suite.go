// Package storagetest holds the behaviour every storage backend must share.
package storagetest

import (
	"context"
	"errors"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/storage"
	"github.com/mcoot/issue-battleships/internal/testutil"
)

// Suite runs the storage contract against a backend. Embed it and set
// Storage in SetupTest.
type Suite struct {
	suite.Suite
	Storage storage.Storage
	Ctx     context.Context
	Now     time.Time
}

// Init sets the common fields; call from the embedding SetupTest
func (s *Suite) Init(st storage.Storage) {
	s.Storage = st
	s.Ctx = context.Background()
	s.Now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
}

func (s *Suite) seed() {
	err := s.Storage.Update(s.Ctx, func(state *model.State) error {
		state.Session = testutil.NewSession(s.Now)
		state.Record("alice").TotalHits = 8
		return nil
	})
	s.Require().NoError(err)
}

func (s *Suite) TestLoadEmpty() {
	state, err := s.Storage.Load(s.Ctx)
	s.Require().NoError(err)
	s.Nil(state.Session)
	s.Empty(state.AllTime)
	s.Empty(state.Rounds)
}

func (s *Suite) TestUpdatePersists() {
	s.seed()

	state, err := s.Storage.Load(s.Ctx)
	s.Require().NoError(err)
	s.Require().NotNil(state.Session)
	s.Equal(model.SessionID("session-1"), state.Session.ID)
	s.Len(state.Session.Ships, len(model.Fleet()))
	s.Equal(8, state.AllTime["alice"].TotalHits)
}

func (s *Suite) TestUpdateRoundTripsBoard() {
	s.seed()
	err := s.Storage.Update(s.Ctx, func(state *model.State) error {
		ship := state.Session.ShipAt(model.MustParseCoordinate("D4"))
		ship.RegisterHit()
		return state.Session.Board.Resolve(model.MustParseCoordinate("D4"), model.CellHit)
	})
	s.Require().NoError(err)

	state, err := s.Storage.Load(s.Ctx)
	s.Require().NoError(err)
	s.Equal(model.CellHit, state.Session.Board.Get(model.MustParseCoordinate("D4")))
	s.Equal(1, state.Session.Ship(model.ShipDestroyer).Hits)
}

func (s *Suite) TestFailedUpdateLeavesStateUnchanged() {
	s.seed()
	boom := errors.New("boom")

	err := s.Storage.Update(s.Ctx, func(state *model.State) error {
		state.Record("alice").TotalHits = 100
		state.Session.TotalMoves = 99
		return boom
	})
	s.ErrorIs(err, boom)

	state, err := s.Storage.Load(s.Ctx)
	s.Require().NoError(err)
	s.Equal(8, state.AllTime["alice"].TotalHits)
	s.Zero(state.Session.TotalMoves)
}

func (s *Suite) TestUpdateRejectsInconsistentState() {
	s.seed()
	err := s.Storage.Update(s.Ctx, func(state *model.State) error {
		// Hit recorded on an empty cell
		state.Session.Board.Cells[model.MustParseCoordinate("J10")] = model.CellHit
		return nil
	})
	s.ErrorIs(err, model.ErrCorruptState)

	state, err := s.Storage.Load(s.Ctx)
	s.Require().NoError(err)
	s.False(state.Session.Board.IsResolved(model.MustParseCoordinate("J10")))
}

func (s *Suite) TestLockReleasedAfterFailure() {
	_ = s.Storage.Update(s.Ctx, func(*model.State) error { return errors.New("fail") })
	s.NoError(s.Storage.Update(s.Ctx, func(*model.State) error { return nil }))
}

func (s *Suite) TestNestedUpdateConflicts() {
	var inner error
	err := s.Storage.Update(s.Ctx, func(*model.State) error {
		inner = s.Storage.Update(s.Ctx, func(*model.State) error { return nil })
		return nil
	})
	s.Require().NoError(err)
	s.ErrorIs(inner, model.ErrConcurrencyConflict)
}

func (s *Suite) TestLoadReturnsCopy() {
	s.seed()
	state, err := s.Storage.Load(s.Ctx)
	s.Require().NoError(err)
	state.AllTime["alice"].TotalHits = 0

	again, err := s.Storage.Load(s.Ctx)
	s.Require().NoError(err)
	s.Equal(8, again.AllTime["alice"].TotalHits)
}

func (s *Suite) TestRounds() {
	session := testutil.NewSession(s.Now)
	session.Winner = "alice"
	round := session.Archive(s.Now.Add(time.Hour))

	s.Require().NoError(s.Storage.SaveRound(s.Ctx, round))

	got, err := s.Storage.GetRound(s.Ctx, 1)
	s.Require().NoError(err)
	s.Equal(1, got.Number)
	s.Equal(model.PlayerHandle("alice"), got.Winner)
	s.Len(got.Ships, len(model.Fleet()))
	s.Equal(uint64(7), got.Seed)
}

func (s *Suite) TestGetRoundNotFound() {
	_, err := s.Storage.GetRound(s.Ctx, 42)
	s.ErrorIs(err, model.ErrRoundNotFound)
}

func (s *Suite) TestRejectionLog() {
	s.seed()

	log, err := s.Storage.Rejections(s.Ctx)
	s.Require().NoError(err)
	s.Empty(log)

	first := model.Rejection{Player: "alice", Coordinate: model.MustParseCoordinate("A1"), Reason: model.RejectedAlreadyPlayed, At: s.Now}
	second := model.Rejection{Player: "bob", Coordinate: model.MustParseCoordinate("B2"), Reason: model.RejectedCooldown, At: s.Now.Add(time.Minute)}
	s.Require().NoError(s.Storage.LogRejection(s.Ctx, first))
	s.Require().NoError(s.Storage.LogRejection(s.Ctx, second))

	log, err = s.Storage.Rejections(s.Ctx)
	s.Require().NoError(err)
	s.Require().Len(log, 2)
	s.Equal(model.PlayerHandle("alice"), log[0].Player)
	s.Equal("A1", log[0].Coordinate.String())
	s.Equal(model.RejectedAlreadyPlayed, log[0].Reason)
	s.True(log[0].At.Equal(s.Now))
	s.Equal(model.RejectedCooldown, log[1].Reason)

	// The game state is untouched
	state, err := s.Storage.Load(s.Ctx)
	s.Require().NoError(err)
	s.Equal(8, state.AllTime["alice"].TotalHits)
	s.Zero(state.Session.TotalMoves)
}
