package factory

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/services/game"
	redisstorage "github.com/mcoot/issue-battleships/internal/storage/redis"
)

// Environment variable names
const (
	EnvStorageType  = "STORAGE_TYPE"
	EnvStateDir     = "STATE_DIR"
	EnvRedisURL     = "REDIS_URL"
	EnvOwner        = "GAME_OWNER"
	EnvAdmins       = "GAME_ADMINS"
	EnvAPITokenHash = "API_TOKEN_HASH"
	EnvAutoReset    = "AUTO_RESET"
)

// ConfigFromEnv builds a Config from environment lookups. getenv is usually
// os.Getenv.
func ConfigFromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		StorageType:  strings.ToLower(strings.TrimSpace(getenv(EnvStorageType))),
		StateDir:     getenv(EnvStateDir),
		Owner:        parseHandle(getenv(EnvOwner)),
		Admins:       ParseHandles(getenv(EnvAdmins)),
		APITokenHash: strings.TrimSpace(getenv(EnvAPITokenHash)),
	}

	if cfg.StorageType == StorageTypeRedis {
		redisURL := getenv(EnvRedisURL)
		if redisURL == "" {
			return Config{}, fmt.Errorf("%s required when %s=redis", EnvRedisURL, EnvStorageType)
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	gameCfg := game.DefaultConfig()
	if v := strings.TrimSpace(getenv(EnvAutoReset)); v != "" {
		autoReset, err := strconv.ParseBool(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s %q: %w", EnvAutoReset, v, err)
		}
		gameCfg.AutoReset = autoReset
	}
	cfg.GameConfig = &gameCfg

	return cfg, nil
}

// ParseHandles splits a comma or space separated list of handles
func ParseHandles(s string) []model.PlayerHandle {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	handles := make([]model.PlayerHandle, 0, len(fields))
	for _, f := range fields {
		handles = append(handles, parseHandle(f))
	}
	return handles
}

// parseHandle drops surrounding space and a leading @ but keeps the case
// used for display
func parseHandle(s string) model.PlayerHandle {
	return model.PlayerHandle(strings.TrimPrefix(strings.TrimSpace(s), "@"))
}
