// Package flow owns the application state and decides which screen is shown.
// Every intent runs to completion, persists what it changed and returns the
// next screen.
package flow

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sandeepkv93/onestep/internal/log"
	"github.com/sandeepkv93/onestep/internal/model"
)

// Store is the persistence contract the controller depends on.
type Store interface {
	GetProfile(ctx context.Context) (*model.UserProfile, error)
	SaveProfile(ctx context.Context, p model.UserProfile) error
	GetTasks(ctx context.Context) ([]model.Task, error)
	SaveTasks(ctx context.Context, tasks []model.Task) error
	GetSessions(ctx context.Context) ([]model.Session, error)
	SaveSessions(ctx context.Context, sessions []model.Session) error
	GetMicroWins(ctx context.Context) ([]model.MicroWin, error)
	SaveMicroWins(ctx context.Context, wins []model.MicroWin) error
	GetStuckPatterns(ctx context.Context) ([]model.StuckPattern, error)
	SaveStuckPatterns(ctx context.Context, patterns []model.StuckPattern) error
	ClearAll(ctx context.Context) error
}

type Config struct {
	Store  Store
	Logger log.Logger
	Now    func() time.Time
	NewID  func() string
}

func (c *Config) defaults() error {
	if c.Store == nil {
		return fmt.Errorf("store is required")
	}
	if c.Logger == nil {
		c.Logger = log.Noop
	}
	c.Logger = c.Logger.WithValues(log.Kv{"svc": "flow.Controller"})
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.NewID == nil {
		c.NewID = uuid.NewString
	}
	return nil
}

// Controller is the single owner of the working set. It is not safe for
// concurrent use; the TUI drives it from its update loop.
type Controller struct {
	store  Store
	logger log.Logger
	now    func() time.Time
	newID  func() string

	screen   Screen
	profile  *model.UserProfile
	tasks    []model.Task
	sessions []model.Session
	wins     []model.MicroWin
	patterns []model.StuckPattern
}

// New loads stored state. With a stored profile the controller starts on the
// dashboard, otherwise on the welcome screen.
func New(ctx context.Context, cfg Config) (*Controller, error) {
	if err := cfg.defaults(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	c := &Controller{
		store:  cfg.Store,
		logger: cfg.Logger,
		now:    cfg.Now,
		newID:  cfg.NewID,
	}
	if err := c.load(ctx); err != nil {
		return nil, err
	}

	c.screen = Welcome{}
	if c.profile != nil {
		touched := c.profile.Touch(c.now())
		if err := c.store.SaveProfile(ctx, touched); err != nil {
			return nil, persistErr("save profile", err)
		}
		c.profile = &touched
		c.screen = Dashboard{}
	}
	c.logger.Debugf("Controller ready on %s with %d tasks", c.screen.Kind(), len(c.tasks))
	return c, nil
}

func (c *Controller) load(ctx context.Context) error {
	var err error
	if c.profile, err = c.store.GetProfile(ctx); err != nil {
		return persistErr("load profile", err)
	}
	if c.tasks, err = c.store.GetTasks(ctx); err != nil {
		return persistErr("load tasks", err)
	}
	if c.sessions, err = c.store.GetSessions(ctx); err != nil {
		return persistErr("load sessions", err)
	}
	if c.wins, err = c.store.GetMicroWins(ctx); err != nil {
		return persistErr("load micro-wins", err)
	}
	if c.patterns, err = c.store.GetStuckPatterns(ctx); err != nil {
		return persistErr("load stuck patterns", err)
	}
	return nil
}

func (c *Controller) Screen() Screen {
	return c.screen
}

// Profile returns a copy of the active profile, or nil before onboarding.
func (c *Controller) Profile() *model.UserProfile {
	if c.profile == nil {
		return nil
	}
	p := *c.profile
	return &p
}

func (c *Controller) Tasks() []model.Task {
	out := make([]model.Task, 0, len(c.tasks))
	for _, t := range c.tasks {
		out = append(out, t.Clone())
	}
	return out
}

func (c *Controller) Sessions() []model.Session {
	out := make([]model.Session, 0, len(c.sessions))
	for _, s := range c.sessions {
		out = append(out, s.Clone())
	}
	return out
}

func (c *Controller) MicroWins() []model.MicroWin {
	return append([]model.MicroWin(nil), c.wins...)
}

func (c *Controller) StuckPatterns() []model.StuckPattern {
	return append([]model.StuckPattern(nil), c.patterns...)
}

// Summary computes the dashboard counters at the controller's current time.
func (c *Controller) Summary() Summary {
	return Summarize(c.tasks, c.sessions, c.wins, c.now())
}

func (c *Controller) transition(next Screen) Screen {
	if c.screen == nil || c.screen.Kind() != next.Kind() {
		c.logger.Debugf("Screen %s -> %s", kindOf(c.screen), next.Kind())
	}
	c.screen = next
	return next
}

func (c *Controller) invalid(intent string) (Screen, error) {
	return c.screen, fmt.Errorf("%w: %s on %s", ErrInvalidTransition, intent, kindOf(c.screen))
}

func (c *Controller) recordWin(typ model.MicroWinType, taskID string, at time.Time) []model.MicroWin {
	wins := make([]model.MicroWin, 0, len(c.wins)+1)
	wins = append(wins, c.wins...)
	return append(wins, model.NewMicroWin(c.newID(), typ, taskID, at))
}

// commit persists the given collections and only then adopts them. Nil
// arguments leave that collection untouched.
func (c *Controller) commit(ctx context.Context, tasks []model.Task, sessions []model.Session, wins []model.MicroWin, patterns []model.StuckPattern) error {
	if tasks != nil {
		if err := c.store.SaveTasks(ctx, tasks); err != nil {
			return persistErr("save tasks", err)
		}
	}
	if sessions != nil {
		if err := c.store.SaveSessions(ctx, sessions); err != nil {
			return persistErr("save sessions", err)
		}
	}
	if wins != nil {
		if err := c.store.SaveMicroWins(ctx, wins); err != nil {
			return persistErr("save micro-wins", err)
		}
	}
	if patterns != nil {
		if err := c.store.SaveStuckPatterns(ctx, patterns); err != nil {
			return persistErr("save stuck patterns", err)
		}
	}
	if tasks != nil {
		c.tasks = tasks
	}
	if sessions != nil {
		c.sessions = sessions
	}
	if wins != nil {
		c.wins = wins
	}
	if patterns != nil {
		c.patterns = patterns
	}
	return nil
}

func persistErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrPersistence, op, err)
}

func kindOf(s Screen) ScreenKind {
	if s == nil {
		return ""
	}
	return s.Kind()
}
