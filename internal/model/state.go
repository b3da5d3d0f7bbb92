package model

import (
	"encoding/json"
	"sort"
)

// State is everything persisted for the game: the current session, the
// all-time records and the list of archived rounds
type State struct {
	Session *Session                        `json:"session,omitempty"`
	AllTime map[PlayerHandle]*AllTimeRecord `json:"all_time"`
	Rounds  []RoundSummary                  `json:"rounds"`
}

// NewState creates an empty state with no session
func NewState() *State {
	return &State{
		AllTime: make(map[PlayerHandle]*AllTimeRecord),
		Rounds:  []RoundSummary{},
	}
}

// Record returns the all-time record for a player, creating it if needed
func (s *State) Record(handle PlayerHandle) *AllTimeRecord {
	if s.AllTime == nil {
		s.AllTime = make(map[PlayerHandle]*AllTimeRecord)
	}
	r, ok := s.AllTime[handle]
	if !ok {
		r = &AllTimeRecord{Handle: handle, Badges: []Achievement{}}
		s.AllTime[handle] = r
	}
	return r
}

// NextRound returns the number the next session should use
func (s *State) NextRound() int {
	next := 1
	for _, r := range s.Rounds {
		if r.Number >= next {
			next = r.Number + 1
		}
	}
	if s.Session != nil && s.Session.Round >= next {
		next = s.Session.Round + 1
	}
	return next
}

// TotalAllTimeHits sums hits across all players
func (s *State) TotalAllTimeHits() int {
	total := 0
	for _, r := range s.AllTime {
		total += r.TotalHits
	}
	return total
}

// SortedRounds returns round summaries, most recent first
func (s *State) SortedRounds() []RoundSummary {
	rounds := make([]RoundSummary, len(s.Rounds))
	copy(rounds, s.Rounds)
	sort.Slice(rounds, func(i, j int) bool {
		return rounds[i].Number > rounds[j].Number
	})
	return rounds
}

// Clone returns a deep copy of the state
func (s *State) Clone() (*State, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	var clone State
	if err := json.Unmarshal(data, &clone); err != nil {
		return nil, err
	}
	if clone.AllTime == nil {
		clone.AllTime = make(map[PlayerHandle]*AllTimeRecord)
	}
	return &clone, nil
}
