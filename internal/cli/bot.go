package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/bot"
)

// DefaultBotPlayer is the handle the autopilot moves as
const DefaultBotPlayer = "autopilot"

func newBotCmd() *cobra.Command {
	var player, strategy, readme string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Let the autopilot take a shot",
		Long: `Pick a target using only what is public on the board and fire at it.

Strategies:
  hunt    checkerboard search, then chase damaged ships until they sink
  random  any unresolved cell

The autopilot is an ordinary player and waits out its cooldown like everyone
else unless it plays as the owner. Use --dry-run to print the target without
moving.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handle := model.PlayerHandle(strings.TrimSpace(player))
			if handle == "" {
				return errors.New("--player is required")
			}

			app, err := cfg.OpenApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if dryRun {
				coord, err := app.BotService.Suggest(cmd.Context(), strategy)
				if err != nil {
					return printRejection(cmd, app, handle, err)
				}
				newOutput(cmd).Print(Suggestion{Strategy: strategy, Coordinate: coord})
				return nil
			}

			res, err := app.BotService.Play(cmd.Context(), handle, strategy)
			if err != nil {
				return printRejection(cmd, app, handle, err)
			}

			if err := writeReadme(cmd.Context(), app, readme); err != nil {
				return err
			}
			newOutput(cmd).Print(Reply{
				Command: model.CommandMove,
				Reply:   app.RenderService.MoveReply(res),
				Move:    res,
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", DefaultBotPlayer, "Handle the autopilot moves as")
	cmd.Flags().StringVar(&strategy, "strategy", bot.StrategyHunt, fmt.Sprintf("Targeting strategy: %s, %s", bot.StrategyHunt, bot.StrategyRandom))
	cmd.Flags().StringVar(&readme, "readme", "", "README to update after the move")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the chosen target without firing")

	return cmd
}
