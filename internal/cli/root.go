package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var cfg *Config

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "battleships",
		Short: "Issue-driven Battleships game",
		Long: `battleships runs a community Battleships game where every move is an issue.

Run it from a workflow on each new issue: "move" parses the issue, resolves the
shot against the hidden fleet, persists the state and prints the reply to post
back. Use "readme" to regenerate the README board, or "remote" to talk to a
running server instead of local state.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.Storage, "storage", cfg.Storage, "Storage backend: file, redis, memory (env: STORAGE_TYPE)")
	rootCmd.PersistentFlags().StringVar(&cfg.StateDir, "state-dir", cfg.StateDir, "State directory for file storage (env: STATE_DIR)")
	rootCmd.PersistentFlags().StringVar(&cfg.RedisURL, "redis-url", cfg.RedisURL, "Redis URL for redis storage (env: REDIS_URL)")
	rootCmd.PersistentFlags().StringVar(&cfg.Owner, "owner", cfg.Owner, "Owner handle, exempt from cooldowns (env: GAME_OWNER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Admins, "admins", cfg.Admins, "Comma separated admin handles (env: GAME_ADMINS)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose logging to stderr")

	// Add subcommands
	rootCmd.AddCommand(newMoveCmd())
	rootCmd.AddCommand(newResetCmd())
	rootCmd.AddCommand(newBotCmd())
	rootCmd.AddCommand(newShowCmd())
	rootCmd.AddCommand(newRejectionsCmd())
	rootCmd.AddCommand(newReadmeCmd())
	rootCmd.AddCommand(newRoundCmd())
	rootCmd.AddCommand(newHashTokenCmd())
	rootCmd.AddCommand(newRemoteCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		NewOutput(cfg.Output, rootCmd.OutOrStdout(), rootCmd.ErrOrStderr()).PrintError(err)
		os.Exit(1)
	}
}

// newOutput creates an Output for the command's streams
func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}
