package bot

import (
	"github.com/mcoot/issue-battleships/internal/dependencies/random"
	"github.com/mcoot/issue-battleships/internal/model"
)

// HuntStrategy searches a checkerboard until it finds a damaged ship, then
// works along it until it sinks
type HuntStrategy struct {
	random random.Random
}

// NewHuntStrategy creates a new HuntStrategy
func NewHuntStrategy(rnd random.Random) *HuntStrategy {
	return &HuntStrategy{random: rnd}
}

func (s *HuntStrategy) Name() string {
	return StrategyHunt
}

// ChooseTarget prefers cells next to hits on ships still afloat. With no
// damaged ship it hunts on cells where row+col is even; the smallest ship
// spans two cells, so every ship covers at least one of them.
func (s *HuntStrategy) ChooseTarget(session *model.Session) (model.Coordinate, error) {
	if targets := s.targets(session); len(targets) > 0 {
		return targets[s.random.Intn(len(targets))], nil
	}

	cells := unknownCells(session)
	if len(cells) == 0 {
		return model.Coordinate{}, ErrNoTargets
	}

	var parity []model.Coordinate
	for _, c := range cells {
		if (c.Row+c.Col)%2 == 0 {
			parity = append(parity, c)
		}
	}
	if len(parity) > 0 {
		return parity[s.random.Intn(len(parity))], nil
	}
	return cells[s.random.Intn(len(cells))], nil
}

// targets returns the unresolved cells that could extend a damaged ship,
// in fleet order and without duplicates
func (s *HuntStrategy) targets(session *model.Session) []model.Coordinate {
	hits := make(map[model.ShipName][]model.Coordinate)
	for _, m := range session.History {
		if m.Outcome == model.OutcomeHit && m.Ship != "" {
			hits[m.Ship] = append(hits[m.Ship], m.Coordinate)
		}
	}

	seen := make(map[model.Coordinate]bool)
	var out []model.Coordinate
	add := func(c model.Coordinate) {
		if c.IsValid() && !session.Board.IsResolved(c) && !seen[c] {
			seen[c] = true
			out = append(out, c)
		}
	}

	for _, ship := range session.Ships {
		cells := hits[ship.Name]
		if ship.Sunk || len(cells) == 0 {
			continue
		}
		if line, ok := lineCells(cells); ok {
			for _, c := range line {
				add(c)
			}
			continue
		}
		for _, c := range cells {
			for _, n := range neighbours(c) {
				add(n)
			}
		}
	}
	return out
}

// lineCells returns the cells spanning a run of hits that share a row or
// column, one past each end included. It reports false for a single hit or
// hits that do not line up.
func lineCells(cells []model.Coordinate) ([]model.Coordinate, bool) {
	if len(cells) < 2 {
		return nil, false
	}

	sameRow, sameCol := true, true
	minRow, maxRow := cells[0].Row, cells[0].Row
	minCol, maxCol := cells[0].Col, cells[0].Col
	for _, c := range cells[1:] {
		sameRow = sameRow && c.Row == cells[0].Row
		sameCol = sameCol && c.Col == cells[0].Col
		minRow, maxRow = min(minRow, c.Row), max(maxRow, c.Row)
		minCol, maxCol = min(minCol, c.Col), max(maxCol, c.Col)
	}

	var line []model.Coordinate
	switch {
	case sameRow:
		for col := minCol - 1; col <= maxCol+1; col++ {
			line = append(line, model.Coordinate{Row: cells[0].Row, Col: col})
		}
	case sameCol:
		for row := minRow - 1; row <= maxRow+1; row++ {
			line = append(line, model.Coordinate{Row: row, Col: cells[0].Col})
		}
	default:
		return nil, false
	}
	return line, true
}

func neighbours(c model.Coordinate) []model.Coordinate {
	return []model.Coordinate{
		{Row: c.Row - 1, Col: c.Col},
		{Row: c.Row + 1, Col: c.Col},
		{Row: c.Row, Col: c.Col - 1},
		{Row: c.Row, Col: c.Col + 1},
	}
}
