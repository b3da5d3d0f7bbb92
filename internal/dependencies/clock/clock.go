package clock

import "time"

// Clock stamps moves and drives cooldown checks
type Clock interface {
	Now() time.Time
}

// UTCClock reads the system clock in UTC, the zone every persisted move,
// cooldown and round timestamp is kept in
type UTCClock struct{}

// New creates a UTCClock
func New() UTCClock {
	return UTCClock{}
}

// Now returns the current time in UTC without a monotonic reading, so it
// compares equal to itself after a JSON round trip
func (UTCClock) Now() time.Time {
	return time.Now().UTC().Round(0)
}
