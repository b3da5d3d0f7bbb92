package bot_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/mcoot/issue-battleships/internal/factory"
	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/bot"
)

type ServiceSuite struct {
	suite.Suite
	app *factory.TestApp
	ctx context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.app = factory.NewTestApp()
	s.ctx = context.Background()
}

func (s *ServiceSuite) TestStrategies() {
	s.Equal([]string{bot.StrategyHunt, bot.StrategyRandom}, s.app.BotService.Strategies())
}

func (s *ServiceSuite) TestSuggest_NoSessionYet() {
	coord, err := s.app.BotService.Suggest(s.ctx, bot.StrategyRandom)
	s.Require().NoError(err)
	s.Equal("A1", coord.String())

	// Suggesting does not start a session
	state, err := s.app.GameController.State(s.ctx)
	s.Require().NoError(err)
	s.Nil(state.Session)
}

func (s *ServiceSuite) TestSuggest_UnknownStrategy() {
	_, err := s.app.BotService.Suggest(s.ctx, "psychic")
	s.ErrorIs(err, bot.ErrUnknownStrategy)
}

func (s *ServiceSuite) TestPlay_RecordsMove() {
	result, err := s.app.BotService.Play(s.ctx, "autopilot", bot.StrategyHunt)
	s.Require().NoError(err)
	s.Equal(model.PlayerHandle("autopilot"), result.Player)
	s.Equal("A1", result.Coordinate.String())

	cells, err := s.app.ShipCells(s.ctx)
	s.Require().NoError(err)
	if result.Outcome == model.OutcomeHit {
		s.Contains(cells, result.Coordinate)
	} else {
		s.NotContains(cells, result.Coordinate)
	}

	state, err := s.app.GameController.State(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(state.Session.History, 1)
	s.Equal(model.PlayerHandle("autopilot"), state.Session.History[0].Player)
}

func (s *ServiceSuite) TestPlay_SubjectToCooldown() {
	_, err := s.app.BotService.Play(s.ctx, "autopilot", bot.StrategyRandom)
	s.Require().NoError(err)

	_, err = s.app.BotService.Play(s.ctx, "autopilot", bot.StrategyRandom)
	s.ErrorIs(err, model.ErrCooldownActive)
}

func (s *ServiceSuite) TestPlay_OwnerFinishesRound() {
	var won *model.MoveResult
	for range model.BoardSize * model.BoardSize {
		result, err := s.app.BotService.Play(s.ctx, factory.TestOwner, bot.StrategyHunt)
		s.Require().NoError(err)
		if result.GameWon {
			won = result
			break
		}
	}
	s.Require().NotNil(won, "hunt strategy never won the round")
	s.Equal(factory.TestOwner, won.Round.Winner)
	s.NotEmpty(won.NewSessionID)
}

func (s *ServiceSuite) TestSuggest_WonRoundWithoutAutoReset() {
	app := factory.NewTestApp(func(cfg *factory.Config) {
		gameCfg := *cfg.GameConfig
		gameCfg.AutoReset = false
		cfg.GameConfig = &gameCfg
	})

	opening := model.MustParseCoordinate("J10")
	_, err := app.GameController.ProcessMove(s.ctx, factory.TestOwner, opening)
	s.Require().NoError(err)
	cells, err := app.ShipCells(s.ctx)
	s.Require().NoError(err)
	for _, c := range cells {
		if c == opening {
			continue
		}
		_, err := app.GameController.ProcessMove(s.ctx, factory.TestOwner, c)
		s.Require().NoError(err)
	}

	state, err := app.GameController.State(s.ctx)
	s.Require().NoError(err)
	s.Require().Equal(model.SessionWon, state.Session.Status)

	_, err = app.BotService.Suggest(s.ctx, bot.StrategyHunt)
	s.ErrorIs(err, model.ErrGameOver)

	_, err = app.BotService.Play(s.ctx, factory.TestOwner, bot.StrategyHunt)
	s.ErrorIs(err, model.ErrGameOver)
}
