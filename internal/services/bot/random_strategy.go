package bot

import (
	"github.com/mcoot/issue-battleships/internal/dependencies/random"
	"github.com/mcoot/issue-battleships/internal/model"
)

// RandomStrategy fires at a random unresolved cell
type RandomStrategy struct {
	random random.Random
}

// NewRandomStrategy creates a new RandomStrategy
func NewRandomStrategy(rnd random.Random) *RandomStrategy {
	return &RandomStrategy{random: rnd}
}

func (s *RandomStrategy) Name() string {
	return StrategyRandom
}

// ChooseTarget picks uniformly among the unresolved cells
func (s *RandomStrategy) ChooseTarget(session *model.Session) (model.Coordinate, error) {
	cells := unknownCells(session)
	if len(cells) == 0 {
		return model.Coordinate{}, ErrNoTargets
	}
	return cells[s.random.Intn(len(cells))], nil
}
