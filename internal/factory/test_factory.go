package factory

import (
	"context"
	"time"

	"github.com/mcoot/issue-battleships/internal/dependencies/mocks"
	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/game"
	"github.com/mcoot/issue-battleships/internal/storage/memory"
	"github.com/mcoot/issue-battleships/internal/testutil"
)

// Test handles configured on every TestApp
const (
	TestOwner = model.PlayerHandle("captain")
	TestAdmin = model.PlayerHandle("admiral")
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Extra config (token hash, auto reset) can be supplied; storage is always
// in memory.
func NewTestApp(opts ...func(*Config)) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	gameCfg := game.DefaultConfig()
	gameCfg.RetryInitialInterval = time.Millisecond
	gameCfg.RetryMaxInterval = 5 * time.Millisecond

	cfg := Config{
		Owner:      TestOwner,
		Admins:     []model.PlayerHandle{TestAdmin},
		GameConfig: &gameCfg,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	app := newWithDependencies(store, mockClock, mockRandom, cfg, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// ShipCells returns the cells of the current session's fleet
func (t *TestApp) ShipCells(ctx context.Context) ([]model.Coordinate, error) {
	state, err := t.Storage.Load(ctx)
	if err != nil {
		return nil, err
	}
	if state.Session == nil {
		return nil, model.ErrNoSession
	}
	var cells []model.Coordinate
	for _, ship := range state.Session.Ships {
		cells = append(cells, ship.Cells...)
	}
	return cells, nil
}
