package file

import (
	"fmt"
	"path/filepath"
)

// Directory layout under the storage root
const (
	gameDir   = "game"
	roundsDir = "rounds"
)

// statePath holds the session and all-time records together so one rename
// commits both
func (s *Storage) statePath() string {
	return filepath.Join(s.cfg.Dir, gameDir, "state.json")
}

func (s *Storage) rejectionsPath() string {
	return filepath.Join(s.cfg.Dir, gameDir, "rejections.json")
}

func (s *Storage) lockPath() string {
	return filepath.Join(s.cfg.Dir, gameDir, ".lock")
}

func (s *Storage) roundPath(number int) string {
	return filepath.Join(s.cfg.Dir, roundsDir, fmt.Sprintf("round_%03d.json", number))
}
