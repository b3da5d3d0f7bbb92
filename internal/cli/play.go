package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/issue-battleships/internal/factory"
	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/render"
)

func newMoveCmd() *cobra.Command {
	var player, title, body, readme string

	cmd := &cobra.Command{
		Use:   "move",
		Short: "Process an issue as a move (or reset) command",
		Long: `Parse an issue title and body and apply the command it contains.

Moves are written as "Move: B4" or "/move B4". An issue titled "reset game"
from an admin resets the board. Rejected moves (bad format, cooldown, cell
already played) print their reply and exit 0; only infrastructure failures
exit non-zero.`,
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

			res, err := app.GameController.HandleEvent(cmd.Context(), model.Event{
				Player: handle,
				Title:  title,
				Body:   body,
			})
			if err != nil {
				return printRejection(cmd, app, handle, err)
			}

			reply := Reply{Command: res.Command, Move: res.Move, Reset: res.Reset}
			if res.Move != nil {
				reply.Reply = app.RenderService.MoveReply(res.Move)
			} else {
				reply.Reply = app.RenderService.ResetReply(res.Reset)
			}

			if err := writeReadme(cmd.Context(), app, readme); err != nil {
				return err
			}
			newOutput(cmd).Print(reply)
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "Handle of the issue author")
	cmd.Flags().StringVar(&title, "title", "", "Issue title")
	cmd.Flags().StringVar(&body, "body", "", "Issue body")
	cmd.Flags().StringVar(&readme, "readme", "", "README to update after the move")

	return cmd
}

func newResetCmd() *cobra.Command {
	var actor, readme string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Start a fresh round (admins only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			handle := model.PlayerHandle(strings.TrimSpace(actor))
			if handle == "" {
				return errors.New("--actor is required")
			}

			app, err := cfg.OpenApp(cmd)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			res, err := app.GameController.Reset(cmd.Context(), handle)
			if err != nil {
				return printRejection(cmd, app, handle, err)
			}

			if err := writeReadme(cmd.Context(), app, readme); err != nil {
				return err
			}
			newOutput(cmd).Print(Reply{
				Command: model.CommandReset,
				Reply:   app.RenderService.ResetReply(res),
				Reset:   res,
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "Handle of the admin requesting the reset")
	cmd.Flags().StringVar(&readme, "readme", "", "README to update after the reset")

	return cmd
}

// printRejection prints the reply for a player-facing error and swallows it.
// Anything else is returned so the process exits non-zero.
func printRejection(cmd *cobra.Command, app *factory.App, player model.PlayerHandle, err error) error {
	if !model.IsPlayerError(err) {
		return err
	}
	newOutput(cmd).Print(Reply{
		Reply: app.RenderService.ErrorReply(player, err),
		Error: err.Error(),
	})
	return nil
}

// writeReadme refreshes every marked section of the README at path. A
// missing README is created from the template. An empty path is a no-op.
func writeReadme(ctx context.Context, app *factory.App, path string) error {
	if path == "" {
		return nil
	}

	current := render.Template()
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		current = string(data)
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to read README: %w", err)
	}

	state, err := app.GameController.State(ctx)
	if err != nil {
		return err
	}

	updated := app.RenderService.UpdateReadme(current, state)
	if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
		return fmt.Errorf("failed to write README: %w", err)
	}
	return nil
}
