package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/issue-battleships/internal/api/request"
	"github.com/mcoot/issue-battleships/internal/api/response"
)

var client *Client

func newRemoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Play against a running server over its JSON API",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			client = NewClient(cfg.ServerURL, cfg.Token)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: BATTLESHIPS_SERVER)")
	cmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "API bearer token (env: BATTLESHIPS_TOKEN)")

	cmd.AddCommand(newRemoteHealthCmd())
	cmd.AddCommand(newRemoteGameCmd())
	cmd.AddCommand(newRemoteLeaderboardCmd())
	cmd.AddCommand(newRemoteFireCmd())
	cmd.AddCommand(newRemoteEventCmd())
	cmd.AddCommand(newRemoteResetCmd())
	cmd.AddCommand(newRemoteBotCmd())

	return cmd
}

func newRemoteHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check server health",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.Health
			if err := client.Get(cmd.Context(), "/api/v1/health", &result); err != nil {
				return err
			}
			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newRemoteGameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "game",
		Short: "Get the current game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.GameResponse
			if err := client.Get(cmd.Context(), "/api/v1/game", &result); err != nil {
				return err
			}
			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newRemoteLeaderboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "leaderboard",
		Short: "Get the current game leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.LeaderboardResponse
			if err := client.Get(cmd.Context(), "/api/v1/leaderboard", &result); err != nil {
				return err
			}
			newOutput(cmd).Print(result)
			return nil
		},
	}
}

func newRemoteFireCmd() *cobra.Command {
	var player string

	cmd := &cobra.Command{
		Use:   "fire <coordinate>",
		Short: "Fire at a coordinate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if player == "" {
				return errors.New("--player is required")
			}

			var result response.MoveResponse
			err := client.Post(cmd.Context(), "/api/v1/moves", request.MoveRequest{
				Player:     player,
				Coordinate: args[0],
			}, &result)
			if err != nil {
				return printRemoteRejection(cmd, err)
			}
			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "Player handle")

	return cmd
}

func newRemoteBotCmd() *cobra.Command {
	var player, strategy string

	cmd := &cobra.Command{
		Use:   "bot",
		Short: "Let the server's autopilot take a shot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result response.MoveResponse
			err := client.Post(cmd.Context(), "/api/v1/bot/moves", request.BotMoveRequest{
				Player:   player,
				Strategy: strategy,
			}, &result)
			if err != nil {
				return printRemoteRejection(cmd, err)
			}
			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", DefaultBotPlayer, "Handle the autopilot moves as")
	cmd.Flags().StringVar(&strategy, "strategy", "", "Targeting strategy (server default: hunt)")

	return cmd
}

func newRemoteEventCmd() *cobra.Command {
	var player, title, body string

	cmd := &cobra.Command{
		Use:   "event",
		Short: "Submit a raw issue title and body",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if player == "" {
				return errors.New("--player is required")
			}

			var result response.EventResponse
			err := client.Post(cmd.Context(), "/api/v1/events", request.EventRequest{
				Player: player,
				Title:  title,
				Body:   body,
			}, &result)
			if err != nil {
				return printRemoteRejection(cmd, err)
			}
			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&player, "player", "", "Issue author")
	cmd.Flags().StringVar(&title, "title", "", "Issue title")
	cmd.Flags().StringVar(&body, "body", "", "Issue body")

	return cmd
}

func newRemoteResetCmd() *cobra.Command {
	var actor string

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset the game (admins only)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if actor == "" {
				return errors.New("--actor is required")
			}

			var result response.ResetResponse
			err := client.Post(cmd.Context(), "/api/v1/reset", request.ResetRequest{Actor: actor}, &result)
			if err != nil {
				return printRemoteRejection(cmd, err)
			}
			newOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&actor, "actor", "", "Admin handle")

	return cmd
}

// printRemoteRejection prints the server's reply for a rejected command,
// matching the local commands' exit status
func printRemoteRejection(cmd *cobra.Command, err error) error {
	var apiErr *APIError
	if !errors.As(err, &apiErr) || !apiErr.IsRejection() {
		return err
	}
	newOutput(cmd).Print(Reply{Reply: apiErr.Message, Error: fmt.Sprintf("%s: %d", apiErr.Code, apiErr.Status)})
	return nil
}
