package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/mcoot/issue-battleships/internal/model"
	"github.com/mcoot/issue-battleships/internal/storage"
)

// releaseScript deletes the lock only if we still own it
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return NewWithClient(client, cfg), nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = DefaultConfig().LockTTL
	}
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) Load(ctx context.Context) (*model.State, error) {
	return s.load(ctx)
}

func (s *Storage) Update(ctx context.Context, fn storage.UpdateFunc) error {
	token := uuid.NewString()
	ok, err := s.client.SetNX(ctx, lockKey(), token, s.cfg.LockTTL).Result()
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrConcurrencyConflict
	}
	defer func() {
		// Release with a fresh context so a cancelled caller still unlocks
		releaseCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = releaseScript.Run(releaseCtx, s.client, []string{lockKey()}, token).Err()
	}()

	state, err := s.load(ctx)
	if err != nil {
		return err
	}
	if err := fn(state); err != nil {
		return err
	}
	if err := storage.Validate(state); err != nil {
		return err
	}

	session, doc := storage.Split(state)
	sessionData, err := json.Marshal(session)
	if err != nil {
		return err
	}
	docData, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	return s.commit(ctx, token, sessionData, docData)
}

// commit writes both documents in one MULTI/EXEC while watching the lock, so
// a writer whose lock expired or was taken over writes nothing
func (s *Storage) commit(ctx context.Context, token string, sessionData, docData []byte) error {
	err := s.client.Watch(ctx, func(tx *redis.Tx) error {
		owner, err := tx.Get(ctx, lockKey()).Result()
		if errors.Is(err, redis.Nil) {
			return model.ErrConcurrencyConflict
		}
		if err != nil {
			return err
		}
		if owner != token {
			return model.ErrConcurrencyConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, sessionKey(), sessionData, 0)
			pipe.Set(ctx, allTimeKey(), docData, 0)
			return nil
		})
		return err
	}, lockKey())
	if errors.Is(err, redis.TxFailedErr) {
		return model.ErrConcurrencyConflict
	}
	return err
}

func (s *Storage) load(ctx context.Context) (*model.State, error) {
	values, err := s.client.MGet(ctx, sessionKey(), allTimeKey()).Result()
	if err != nil {
		return nil, err
	}

	var session *model.Session
	var doc *storage.AllTimeDocument
	if err := decode(values[0], &session); err != nil {
		return nil, err
	}
	if err := decode(values[1], &doc); err != nil {
		return nil, err
	}

	state := storage.Join(session, doc)
	if err := storage.Validate(state); err != nil {
		return nil, err
	}
	return state, nil
}

// Round operations

func (s *Storage) SaveRound(ctx context.Context, round *model.Round) error {
	data, err := json.Marshal(round)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, roundKey(round.Number), data, s.cfg.RoundTTL).Err()
}

func (s *Storage) GetRound(ctx context.Context, number int) (*model.Round, error) {
	data, err := s.client.Get(ctx, roundKey(number)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %d", model.ErrRoundNotFound, number)
		}
		return nil, err
	}

	var round model.Round
	if err := json.Unmarshal(data, &round); err != nil {
		return nil, fmt.Errorf("%w: round %d: %v", model.ErrCorruptState, number, err)
	}
	return &round, nil
}

// Rejection log

func (s *Storage) LogRejection(ctx context.Context, rejection model.Rejection) error {
	data, err := json.Marshal(rejection)
	if err != nil {
		return err
	}
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, rejectionsKey(), data)
		pipe.LTrim(ctx, rejectionsKey(), -model.MaxRejections, -1)
		return nil
	})
	return err
}

func (s *Storage) Rejections(ctx context.Context) ([]model.Rejection, error) {
	values, err := s.client.LRange(ctx, rejectionsKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}
	log := make([]model.Rejection, 0, len(values))
	for i, v := range values {
		var r model.Rejection
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return nil, fmt.Errorf("%w: rejection %d: %v", model.ErrCorruptState, i, err)
		}
		log = append(log, r)
	}
	return log, nil
}

// decode unmarshals an MGET value; missing keys leave v untouched
func decode(value any, v any) error {
	if value == nil {
		return nil
	}
	str, ok := value.(string)
	if !ok {
		return fmt.Errorf("%w: unexpected value type %T", model.ErrCorruptState, value)
	}
	if err := json.Unmarshal([]byte(str), v); err != nil {
		return fmt.Errorf("%w: %v", model.ErrCorruptState, err)
	}
	return nil
}
