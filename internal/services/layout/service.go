package layout

import (
	"fmt"
	"log/slog"

	"github.com/mcoot/issue-battleships/internal/dependencies/random"
	"github.com/mcoot/issue-battleships/internal/model"
)

// MaxPlacementAttempts bounds the retries for placing a single ship
const MaxPlacementAttempts = 100

// Layout is a generated fleet and the seed that reproduces it
type Layout struct {
	Seed  uint64
	Ships []*model.Ship
}

// Service generates hidden ship layouts
type Service struct {
	random      random.Random
	logger      *slog.Logger
	maxAttempts int
}

// New creates a new layout Service. The random source only supplies seeds;
// placement itself runs on a generator seeded from them.
func New(rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		random:      rnd,
		logger:      logger,
		maxAttempts: MaxPlacementAttempts,
	}
}

// Generate draws a fresh seed and places the standard fleet
func (s *Service) Generate() (*Layout, error) {
	seed := s.random.Uint64()
	layout, err := s.FromSeed(seed)
	if err != nil {
		s.logger.Error("ship layout failed", slog.Uint64("seed", seed), slog.String("error", err.Error()))
		return nil, err
	}
	return layout, nil
}

// FromSeed reproduces the layout for a seed
func (s *Service) FromSeed(seed uint64) (*Layout, error) {
	ships, err := Place(random.NewSeeded(seed), model.Fleet(), s.maxAttempts)
	if err != nil {
		return nil, err
	}
	return &Layout{Seed: seed, Ships: ships}, nil
}

// Place puts each ship of the fleet on an empty 10x10 grid, horizontally or
// vertically, never sharing a cell. Each ship gets at most maxAttempts tries
// before ErrLayout is returned.
func Place(rnd random.Random, fleet []model.ShipClass, maxAttempts int) ([]*model.Ship, error) {
	occupied := make(map[model.Coordinate]bool)
	ships := make([]*model.Ship, 0, len(fleet))

	for _, class := range fleet {
		if class.Length < 1 || class.Length > model.BoardSize {
			return nil, fmt.Errorf("%w: %s has length %d", model.ErrLayout, class.Name, class.Length)
		}

		var placed []model.Coordinate
		for attempt := 0; attempt < maxAttempts && placed == nil; attempt++ {
			placed = tryPlace(rnd, class.Length, occupied)
		}
		if placed == nil {
			return nil, fmt.Errorf("%w: could not place %s after %d attempts", model.ErrLayout, class.Name, maxAttempts)
		}

		for _, c := range placed {
			occupied[c] = true
		}
		ships = append(ships, model.NewShip(class.Name, placed))
	}
	return ships, nil
}

// tryPlace picks a random orientation and origin; returns nil on overlap or
// when the ship would run off the board
func tryPlace(rnd random.Random, length int, occupied map[model.Coordinate]bool) []model.Coordinate {
	horizontal := rnd.Intn(2) == 0
	row := rnd.Intn(model.BoardSize)
	col := rnd.Intn(model.BoardSize)

	cells := make([]model.Coordinate, 0, length)
	for i := 0; i < length; i++ {
		c := model.Coordinate{Row: row, Col: col}
		if horizontal {
			c.Col += i
		} else {
			c.Row += i
		}
		if !c.IsValid() || occupied[c] {
			return nil
		}
		cells = append(cells, c)
	}
	return cells
}

// Interface for dependency injection
type ServiceInterface interface {
	Generate() (*Layout, error)
	FromSeed(seed uint64) (*Layout, error)
}

var _ ServiceInterface = (*Service)(nil)
