package storage

import (
	"fmt"

	"github.com/mcoot/issue-battleships/internal/model"
)

// AllTimeDocument is the persisted form of everything that survives a reset
type AllTimeDocument struct {
	Records map[model.PlayerHandle]*model.AllTimeRecord `json:"records"`
	Rounds  []model.RoundSummary                        `json:"rounds"`
}

// Split separates a state into its session and all-time documents
func Split(state *model.State) (*model.Session, *AllTimeDocument) {
	return state.Session, &AllTimeDocument{
		Records: state.AllTime,
		Rounds:  state.Rounds,
	}
}

// Join assembles a state from its documents; either may be nil
func Join(session *model.Session, doc *AllTimeDocument) *model.State {
	state := model.NewState()
	state.Session = session
	if doc != nil {
		if doc.Records != nil {
			state.AllTime = doc.Records
		}
		if doc.Rounds != nil {
			state.Rounds = doc.Rounds
		}
	}
	return state
}

// Validate checks a loaded or about-to-be-saved state for consistency
func Validate(state *model.State) error {
	if state.Session != nil {
		if err := state.Session.Verify(); err != nil {
			return err
		}
	}
	for handle, record := range state.AllTime {
		if record == nil || record.Handle != handle {
			return fmt.Errorf("%w: all-time record for %s", model.ErrCorruptState, handle)
		}
	}
	return nil
}
