package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sandeepkv93/onestep/internal/log"
	"github.com/sandeepkv93/onestep/internal/model"
)

// Collection keys. Each collection is written whole on every save.
const (
	KeyProfile       = "profile"
	KeyTasks         = "tasks"
	KeySessions      = "sessions"
	KeyMicroWins     = "micro-wins"
	KeyStuckPatterns = "stuck-patterns"
)

var AllKeys = []string{KeyProfile, KeyTasks, KeySessions, KeyMicroWins, KeyStuckPatterns}

type StoreConfig struct {
	KV     KV
	Logger log.Logger
}

func (c *StoreConfig) defaults() error {
	if c.KV == nil {
		return fmt.Errorf("kv is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "storage.Store"})
	return nil
}

// Store maps the domain collections onto a KV backend.
type Store struct {
	kv     KV
	logger log.Logger
}

func NewStore(cfg StoreConfig) (*Store, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &Store{kv: cfg.KV, logger: cfg.Logger}, nil
}

func (s *Store) SaveProfile(ctx context.Context, p model.UserProfile) error {
	return s.put(ctx, KeyProfile, profileToRecord(p))
}

// GetProfile returns nil when no profile has been saved.
func (s *Store) GetProfile(ctx context.Context) (*model.UserProfile, error) {
	var rec profileRecord
	ok, err := s.get(ctx, KeyProfile, &rec)
	if err != nil || !ok {
		return nil, err
	}
	p, err := profileFromRecord(rec)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) SaveTasks(ctx context.Context, tasks []model.Task) error {
	return s.put(ctx, KeyTasks, mapSlice(tasks, taskToRecord))
}

func (s *Store) GetTasks(ctx context.Context) ([]model.Task, error) {
	return loadCollection(ctx, s, KeyTasks, taskFromRecord)
}

func (s *Store) SaveSessions(ctx context.Context, sessions []model.Session) error {
	return s.put(ctx, KeySessions, mapSlice(sessions, sessionToRecord))
}

func (s *Store) GetSessions(ctx context.Context) ([]model.Session, error) {
	return loadCollection(ctx, s, KeySessions, sessionFromRecord)
}

func (s *Store) SaveMicroWins(ctx context.Context, wins []model.MicroWin) error {
	return s.put(ctx, KeyMicroWins, mapSlice(wins, microWinToRecord))
}

func (s *Store) GetMicroWins(ctx context.Context) ([]model.MicroWin, error) {
	return loadCollection(ctx, s, KeyMicroWins, microWinFromRecord)
}

func (s *Store) SaveStuckPatterns(ctx context.Context, patterns []model.StuckPattern) error {
	return s.put(ctx, KeyStuckPatterns, mapSlice(patterns, stuckPatternToRecord))
}

func (s *Store) GetStuckPatterns(ctx context.Context) ([]model.StuckPattern, error) {
	return loadCollection(ctx, s, KeyStuckPatterns, stuckPatternFromRecord)
}

// ClearAll removes every collection. Subsequent reads return empty defaults.
func (s *Store) ClearAll(ctx context.Context) error {
	if err := s.kv.Delete(ctx, AllKeys...); err != nil {
		return fmt.Errorf("clear all: %w", err)
	}
	s.logger.Infof("All collections cleared")
	return nil
}

func (s *Store) put(ctx context.Context, key string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.kv.Put(ctx, key, payload); err != nil {
		return err
	}
	s.logger.Debugf("Saved %s (%d bytes)", key, len(payload))
	return nil
}

func (s *Store) get(ctx context.Context, key string, v any) (bool, error) {
	payload, ok, err := s.kv.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return false, fmt.Errorf("%w: %s: %v", ErrCorruptRecord, key, err)
	}
	return true, nil
}

func loadCollection[R, T any](ctx context.Context, s *Store, key string, decode func(R) (T, error)) ([]T, error) {
	var recs []R
	if _, err := s.get(ctx, key, &recs); err != nil {
		return nil, err
	}
	out := make([]T, 0, len(recs))
	for _, r := range recs {
		v, err := decode(r)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", key, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func mapSlice[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, v := range in {
		out = append(out, fn(v))
	}
	return out
}
