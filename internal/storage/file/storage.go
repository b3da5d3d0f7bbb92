package file

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/storage"
)

const (
	// documentVersion is written into every envelope
	documentVersion = 1
	// readLockTimeout bounds how long Load waits for a writer to finish
	readLockTimeout = 2 * time.Second
)

// envelope wraps a persisted document with a checksum of its payload
type envelope struct {
	Version  int             `json:"version"`
	Checksum string          `json:"checksum"`
	SavedAt  time.Time       `json:"saved_at"`
	Payload  json.RawMessage `json:"payload"`
}

// gameDocument is the payload of state.json
type gameDocument struct {
	Session *model.Session           `json:"session"`
	AllTime *storage.AllTimeDocument `json:"all_time"`
}

// Storage keeps the game as JSON documents in a directory, guarded by an
// advisory file lock
type Storage struct {
	cfg    Config
	rename func(oldpath, newpath string) error
}

// New creates a file storage rooted at cfg.Dir, creating directories as needed
func New(cfg Config) (*Storage, error) {
	if cfg.Dir == "" {
		cfg.Dir = DefaultConfig().Dir
	}
	if cfg.FileMode == 0 {
		cfg.FileMode = DefaultConfig().FileMode
	}
	for _, dir := range []string{gameDir, roundsDir} {
		if err := os.MkdirAll(filepath.Join(cfg.Dir, dir), 0o755); err != nil {
			return nil, err
		}
	}
	return &Storage{cfg: cfg, rename: os.Rename}, nil
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Load(ctx context.Context) (*model.State, error) {
	lock := flock.New(s.lockPath())
	readCtx, cancel := context.WithTimeout(ctx, readLockTimeout)
	defer cancel()
	locked, err := lock.TryRLockContext(readCtx, 20*time.Millisecond)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	if !locked {
		return nil, model.ErrConcurrencyConflict
	}
	defer func() { _ = lock.Unlock() }()

	return s.load()
}

func (s *Storage) Update(ctx context.Context, fn storage.UpdateFunc) error {
	lock, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	state, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}
	if err := storage.Validate(state); err != nil {
		return err
	}
	return s.save(state)
}

// acquire takes the exclusive lock, waiting up to LockTimeout
func (s *Storage) acquire(ctx context.Context) (*flock.Flock, error) {
	lock := flock.New(s.lockPath())
	if s.cfg.LockTimeout <= 0 {
		locked, err := lock.TryLock()
		if err != nil {
			return nil, err
		}
		if !locked {
			return nil, model.ErrConcurrencyConflict
		}
		return lock, nil
	}

	lockCtx, cancel := context.WithTimeout(ctx, s.cfg.LockTimeout)
	defer cancel()
	locked, err := lock.TryLockContext(lockCtx, 50*time.Millisecond)
	if err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return nil, err
	}
	if !locked {
		return nil, model.ErrConcurrencyConflict
	}
	return lock, nil
}

func (s *Storage) load() (*model.State, error) {
	var doc gameDocument
	if err := s.readDocument(s.statePath(), &doc); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	state := storage.Join(doc.Session, doc.AllTime)
	if err := storage.Validate(state); err != nil {
		return nil, err
	}
	return state, nil
}

// save writes the whole game to a temp file and renames it over state.json.
// A failed write or rename leaves the previous document untouched.
func (s *Storage) save(state *model.State) error {
	session, allTime := storage.Split(state)

	tmp, err := s.writeTemp(s.statePath(), gameDocument{Session: session, AllTime: allTime})
	if err != nil {
		return err
	}
	if err := s.rename(tmp, s.statePath()); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("commit %s: %w", filepath.Base(s.statePath()), err)
	}
	return nil
}

// Round operations

func (s *Storage) SaveRound(ctx context.Context, round *model.Round) error {
	path := s.roundPath(round.Number)
	tmp, err := s.writeTemp(path, round)
	if err != nil {
		return err
	}
	if err := s.rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (s *Storage) GetRound(ctx context.Context, number int) (*model.Round, error) {
	var round model.Round
	if err := s.readDocument(s.roundPath(number), &round); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %d", model.ErrRoundNotFound, number)
		}
		return nil, err
	}
	return &round, nil
}

// Rejection log

// LogRejection rewrites rejections.json under the same lock as Update, so it
// never interleaves with a game commit
func (s *Storage) LogRejection(ctx context.Context, rejection model.Rejection) error {
	lock, err := s.acquire(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = lock.Unlock() }()

	log, err := s.readRejections()
	if err != nil {
		return err
	}
	log = model.TrimRejections(append(log, rejection))

	tmp, err := s.writeTemp(s.rejectionsPath(), log)
	if err != nil {
		return err
	}
	if err := s.rename(tmp, s.rejectionsPath()); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func (s *Storage) Rejections(ctx context.Context) ([]model.Rejection, error) {
	return s.readRejections()
}

func (s *Storage) readRejections() ([]model.Rejection, error) {
	var log []model.Rejection
	if err := s.readDocument(s.rejectionsPath(), &log); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}
	return log, nil
}

func (s *Storage) Close() error {
	return nil
}

// readDocument decodes an envelope, verifying its checksum
func (s *Storage) readDocument(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrCorruptState, filepath.Base(path), err)
	}
	// The envelope is indented on disk; the checksum covers the compact form
	var compact bytes.Buffer
	if err := json.Compact(&compact, env.Payload); err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrCorruptState, filepath.Base(path), err)
	}
	if env.Checksum != checksum(compact.Bytes()) {
		return fmt.Errorf("%w: %s checksum mismatch", model.ErrCorruptState, filepath.Base(path))
	}
	if err := json.Unmarshal(env.Payload, v); err != nil {
		return fmt.Errorf("%w: %s: %v", model.ErrCorruptState, filepath.Base(path), err)
	}
	return nil
}

// writeTemp encodes v into an envelope beside path and returns the temp name
func (s *Storage) writeTemp(path string, v any) (string, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(envelope{
		Version:  documentVersion,
		Checksum: checksum(payload),
		SavedAt:  time.Now().UTC(),
		Payload:  payload,
	}, "", "  ")
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return "", err
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	if err := os.Chmod(f.Name(), fs.FileMode(s.cfg.FileMode)); err != nil {
		_ = os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}

func checksum(payload []byte) string {
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:])
}
