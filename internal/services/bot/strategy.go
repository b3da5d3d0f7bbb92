package bot

import "github.com/mcoot/issue-battleships/internal/model"

// Strategy defines how the autopilot picks its next shot. Strategies only
// read public information: the board, the move history and which ships are
// sunk. Ship cells are never consulted.
type Strategy interface {
	// Name identifies the strategy on the command line and in logs
	Name() string
	// ChooseTarget selects an unresolved cell to fire at
	ChooseTarget(session *model.Session) (model.Coordinate, error)
}

// unknownCells returns every unresolved cell in board order
func unknownCells(session *model.Session) []model.Coordinate {
	var cells []model.Coordinate
	for _, c := range model.AllCoordinates() {
		if !session.Board.IsResolved(c) {
			cells = append(cells, c)
		}
	}
	return cells
}
