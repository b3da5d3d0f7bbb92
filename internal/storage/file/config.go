package file

import "time"

// Config holds file storage settings
type Config struct {
	// Dir is the root directory holding game/ and rounds/
	Dir string

	// LockTimeout is how long Update waits for the lock before reporting a
	// conflict. Zero means a single attempt.
	LockTimeout time.Duration

	// FileMode for written documents
	FileMode uint32
}

// DefaultConfig returns sensible defaults for file storage
func DefaultConfig() Config {
	return Config{
		Dir:         ".",
		LockTimeout: 0,
		FileMode:    0o644,
	}
}
