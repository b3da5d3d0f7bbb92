package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/testutil"
)

var now = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

func TestBoardResolveIsImmutable(t *testing.T) {
	board := model.NewBoard()
	b4 := model.MustParseCoordinate("B4")

	require.NoError(t, board.Resolve(b4, model.CellMiss))
	assert.ErrorIs(t, board.Resolve(b4, model.CellHit), model.ErrAlreadyPlayed)
	assert.Equal(t, model.CellMiss, board.Get(b4))

	assert.ErrorIs(t, board.Resolve(model.Coordinate{Row: 10, Col: 0}, model.CellHit), model.ErrOutOfBounds)
	assert.Equal(t, 99, board.Count(model.CellUnknown))
	assert.Equal(t, 1, board.ResolvedCount())
}

func TestShipRegisterHit(t *testing.T) {
	ship := model.NewShip(model.ShipPatrol, []model.Coordinate{
		model.MustParseCoordinate("J1"),
		model.MustParseCoordinate("J2"),
	})

	assert.False(t, ship.RegisterHit())
	assert.True(t, ship.IsDamaged())
	assert.True(t, ship.RegisterHit())
	assert.True(t, ship.Sunk)
	assert.False(t, ship.RegisterHit())
	assert.Equal(t, 2, ship.Hits)
}

func TestSessionVerify(t *testing.T) {
	session := testutil.NewSession(now)
	require.NoError(t, session.Verify())
	assert.Equal(t, model.TotalShipCells, session.ShipCells())
	assert.Equal(t, model.TotalShipCells, session.RemainingCells())

	a1 := model.MustParseCoordinate("A1")
	require.NoError(t, session.Board.Resolve(a1, model.CellHit))
	session.ShipAt(a1).RegisterHit()
	require.NoError(t, session.Verify())
	assert.Equal(t, model.TotalShipCells-1, session.RemainingCells())
}

func TestSessionVerifyDetectsCorruption(t *testing.T) {
	t.Run("miss over ship", func(t *testing.T) {
		session := testutil.NewSession(now)
		session.Board.Cells[model.MustParseCoordinate("A1")] = model.CellMiss
		assert.ErrorIs(t, session.Verify(), model.ErrCorruptState)
	})

	t.Run("hit on open water", func(t *testing.T) {
		session := testutil.NewSession(now)
		session.Board.Cells[model.MustParseCoordinate("E9")] = model.CellHit
		assert.ErrorIs(t, session.Verify(), model.ErrCorruptState)
	})

	t.Run("overlapping ships", func(t *testing.T) {
		session := testutil.NewSession(now)
		session.Ships[1].Cells[0] = model.MustParseCoordinate("A1")
		assert.ErrorIs(t, session.Verify(), model.ErrCorruptState)
	})

	t.Run("damage without board hit", func(t *testing.T) {
		session := testutil.NewSession(now)
		session.Ships[0].Hits = 1
		assert.ErrorIs(t, session.Verify(), model.ErrCorruptState)
	})
}

func TestSessionArchive(t *testing.T) {
	session := testutil.NewSession(now)
	session.TotalMoves = 3
	session.Winner = "alice"

	round := session.Archive(now.Add(time.Hour))
	assert.Equal(t, 1, round.Number)
	assert.Equal(t, model.PlayerHandle("alice"), round.Winner)
	assert.Equal(t, 3, round.Moves)
	assert.Equal(t, now.Add(time.Hour), round.EndedAt)
	assert.Len(t, round.Ships, len(model.Fleet()))
}

func TestStateNextRound(t *testing.T) {
	state := model.NewState()
	assert.Equal(t, 1, state.NextRound())

	state.Session = testutil.NewSession(now)
	assert.Equal(t, 2, state.NextRound())

	state.Rounds = append(state.Rounds, model.RoundSummary{Number: 4})
	assert.Equal(t, 5, state.NextRound())
}

func TestStateClone(t *testing.T) {
	state := model.NewState()
	state.Session = testutil.NewSession(now)
	state.Record("alice").TotalHits = 2

	clone, err := state.Clone()
	require.NoError(t, err)
	clone.Record("alice").TotalHits = 9
	clone.Session.Ships[0].Hits = 1

	assert.Equal(t, 2, state.Record("alice").TotalHits)
	assert.Equal(t, 0, state.Session.Ships[0].Hits)
}

func TestCooldownErrorMatchesSentinel(t *testing.T) {
	err := &model.CooldownError{Player: "bob", Remaining: 90 * time.Minute}
	assert.ErrorIs(t, err, model.ErrCooldownActive)
	assert.True(t, model.IsPlayerError(err))
	assert.False(t, model.IsPlayerError(model.ErrCorruptState))
}
