package redis

import "fmt"

// Key prefix for all game-related data
const keyPrefix = "battleships"

// sessionKey returns the Redis key for the current session document
func sessionKey() string {
	return fmt.Sprintf("%s:session", keyPrefix)
}

// allTimeKey returns the Redis key for the all-time document
func allTimeKey() string {
	return fmt.Sprintf("%s:alltime", keyPrefix)
}

// lockKey returns the Redis key guarding read-modify-write cycles
func lockKey() string {
	return fmt.Sprintf("%s:lock", keyPrefix)
}

// rejectionsKey returns the Redis list holding the rejected move log
func rejectionsKey() string {
	return fmt.Sprintf("%s:rejections", keyPrefix)
}

// roundKey returns the Redis key for an archived round
func roundKey(number int) string {
	return fmt.Sprintf("%s:round:%03d", keyPrefix, number)
}
