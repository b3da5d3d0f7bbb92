package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mcoot/issue-battleships/internal/factory"
)

// Config holds CLI configuration
type Config struct {
	// Local game state
	Storage  string
	StateDir string
	RedisURL string
	Owner    string
	Admins   string

	// Remote server
	ServerURL string
	Token     string

	Output  string
	Verbose bool
}

// LoadDotEnv loads variables from .env files, ".env" by default. Variables
// already set in the environment win. A missing file is not an error.
func LoadDotEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

// DefaultConfig returns a Config with default values read from the environment
func DefaultConfig() *Config {
	return &Config{
		Storage:   getEnvOrDefault(factory.EnvStorageType, factory.StorageTypeFile),
		StateDir:  getEnvOrDefault(factory.EnvStateDir, ".battleships"),
		RedisURL:  os.Getenv(factory.EnvRedisURL),
		Owner:     os.Getenv(factory.EnvOwner),
		Admins:    os.Getenv(factory.EnvAdmins),
		ServerURL: getEnvOrDefault("BATTLESHIPS_SERVER", "http://localhost:8080"),
		Token:     os.Getenv("BATTLESHIPS_TOKEN"),
		Output:    "text",
		Verbose:   false,
	}
}

// Logger returns the CLI logger. Logs go to stderr so stdout only carries
// the reply text.
func (c *Config) Logger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if c.Verbose {
		level = slog.LevelInfo
	}
	var w io.Writer = os.Stderr
	if cmd != nil {
		w = cmd.ErrOrStderr()
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// FactoryConfig builds the application config. Environment settings that
// have no flag (API token hash, auto reset) are read from env.
func (c *Config) FactoryConfig(logger *slog.Logger) (factory.Config, error) {
	fc, err := factory.ConfigFromEnv(func(key string) string {
		switch key {
		case factory.EnvStorageType:
			return c.Storage
		case factory.EnvStateDir:
			return c.StateDir
		case factory.EnvRedisURL:
			return c.RedisURL
		case factory.EnvOwner:
			return c.Owner
		case factory.EnvAdmins:
			return c.Admins
		default:
			return os.Getenv(key)
		}
	})
	if err != nil {
		return factory.Config{}, err
	}
	fc.Logger = logger
	return fc, nil
}

// OpenApp wires the application against the configured storage
func (c *Config) OpenApp(cmd *cobra.Command) (*factory.App, error) {
	fc, err := c.FactoryConfig(c.Logger(cmd))
	if err != nil {
		return nil, err
	}
	return factory.New(fc)
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
