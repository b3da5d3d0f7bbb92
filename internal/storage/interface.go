package storage

import (
	"context"

	"github.com/mcoot/issue-battleships/internal/model"
)

// UpdateFunc mutates the loaded state. Returning an error discards every
// change it made.
type UpdateFunc func(state *model.State) error

// Storage defines the interface for data persistence
type Storage interface {
	// Load returns the current state without taking the write lock.
	// An empty state is returned when nothing has been persisted yet.
	Load(ctx context.Context) (*model.State, error)

	// Update runs a full read-modify-write cycle under an exclusive lock.
	// The state is only saved if fn returns nil, and the lock is released on
	// every path. Returns model.ErrConcurrencyConflict if another writer holds
	// the lock.
	Update(ctx context.Context, fn UpdateFunc) error

	// Round archive operations
	SaveRound(ctx context.Context, round *model.Round) error
	GetRound(ctx context.Context, number int) (*model.Round, error)

	// LogRejection appends to the rejected move log, which is kept apart
	// from the game state. Only the newest model.MaxRejections are kept.
	LogRejection(ctx context.Context, rejection model.Rejection) error
	// Rejections returns the log oldest first
	Rejections(ctx context.Context) ([]model.Rejection, error)

	Close() error
}
