package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Values are deep copied on the way in and out so callers never share state
// with the store.
type Storage struct {
	// write serialises Update cycles; data guards the stored values
	write sync.Mutex
	data  sync.RWMutex

	state      *model.State
	rounds     map[int]*model.Round
	rejections []model.Rejection
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		state:  model.NewState(),
		rounds: make(map[int]*model.Round),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Load(ctx context.Context) (*model.State, error) {
	s.data.RLock()
	defer s.data.RUnlock()
	return s.state.Clone()
}

func (s *Storage) Update(ctx context.Context, fn storage.UpdateFunc) error {
	if !s.write.TryLock() {
		return model.ErrConcurrencyConflict
	}
	defer s.write.Unlock()

	state, err := s.Load(ctx)
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}
	if err := storage.Validate(state); err != nil {
		return err
	}

	saved, err := state.Clone()
	if err != nil {
		return err
	}
	s.data.Lock()
	s.state = saved
	s.data.Unlock()
	return nil
}

// Round operations

func (s *Storage) SaveRound(ctx context.Context, round *model.Round) error {
	copied, err := cloneRound(round)
	if err != nil {
		return err
	}
	s.data.Lock()
	defer s.data.Unlock()
	s.rounds[round.Number] = copied
	return nil
}

func (s *Storage) GetRound(ctx context.Context, number int) (*model.Round, error) {
	s.data.RLock()
	defer s.data.RUnlock()
	round, ok := s.rounds[number]
	if !ok {
		return nil, fmt.Errorf("%w: %d", model.ErrRoundNotFound, number)
	}
	return cloneRound(round)
}

// Rejection log

func (s *Storage) LogRejection(ctx context.Context, rejection model.Rejection) error {
	s.data.Lock()
	defer s.data.Unlock()
	s.rejections = model.TrimRejections(append(s.rejections, rejection))
	return nil
}

func (s *Storage) Rejections(ctx context.Context) ([]model.Rejection, error) {
	s.data.RLock()
	defer s.data.RUnlock()
	return append([]model.Rejection(nil), s.rejections...), nil
}

func (s *Storage) Close() error {
	return nil
}

func cloneRound(round *model.Round) (*model.Round, error) {
	data, err := json.Marshal(round)
	if err != nil {
		return nil, err
	}
	var out model.Round
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
