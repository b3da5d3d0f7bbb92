package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/issue-battleships/internal/api/response"
	"github.com/mcoot/issue-battleships/internal/services/render"
)

func newShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the current board, fleet and leaderboards",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cfg.OpenApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			state, err := app.GameController.State(cmd.Context())
			if err != nil {
				return err
			}

			sections := make([]string, 0, len(render.Sections))
			for _, section := range render.Sections {
				sections = append(sections, strings.TrimRight(app.RenderService.RenderSection(section, state), "\n"))
			}

			var data response.GameResponse
			if state.Session != nil {
				g := response.GameFromModel(state.Session)
				data.Game = &g
			}

			newOutput(cmd).Print(Markdown{Text: strings.Join(sections, "\n\n"), Data: data})
			return nil
		},
	}
}

func newRejectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rejections",
		Short: "Report refused moves (already played, cooldown, game over)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cfg.OpenApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			log, err := app.GameController.Rejections(cmd.Context())
			if err != nil {
				return err
			}
			newOutput(cmd).Print(Markdown{Text: render.RejectionReport(log), Data: log})
			return nil
		},
	}
}

func newReadmeCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "readme",
		Short: "Regenerate the marked sections of a README",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := cfg.OpenApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			if err := writeReadme(cmd.Context(), app, file); err != nil {
				return err
			}
			newOutput(cmd).PrintMessage("Updated " + file)
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "README.md", "README path")

	return cmd
}

func newRoundCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "round <number>",
		Short: "Show an archived round with its layout revealed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			number, err := strconv.Atoi(args[0])
			if err != nil || number < 1 {
				return fmt.Errorf("invalid round number %q", args[0])
			}

			app, err := cfg.OpenApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			round, err := app.GameController.Round(cmd.Context(), number)
			if err != nil {
				return err
			}

			winner := "Reset before victory"
			if round.Winner != "" {
				winner = "Winner: @" + string(round.Winner)
			}
			text := fmt.Sprintf("Round %03d\n%s\nMoves: %d\nSeed: %d\n\n%s",
				round.Number, winner, round.Moves, round.Seed, render.RevealedLayout(round))

			newOutput(cmd).Print(Markdown{Text: text, Data: response.RoundResponse{Round: round}})
			return nil
		},
	}
}
