package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// LockTTL bounds how long a crashed writer can hold the game lock
	LockTTL time.Duration

	// RoundTTL expires archived rounds; zero keeps them forever
	RoundTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		PoolSize:     10,
		MinIdleConns: 2,
		LockTTL:      30 * time.Second,
		RoundTTL:     0,
	}
}
