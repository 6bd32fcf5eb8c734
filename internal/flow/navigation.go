package flow

import (
	"context"
	"fmt"

	"github.com/sandeepkv93/onestep/internal/model"
)

// ProfileInput carries the wizard or settings form values.
type ProfileInput struct {
	NeuroProfile    model.NeuroProfile
	MotivationStyle model.MotivationStyle
	Preferences     model.Preferences
}

// DefaultProfileInput is what the wizard starts from.
func DefaultProfileInput() ProfileInput {
	return ProfileInput{
		NeuroProfile:    model.NeuroADHD,
		MotivationStyle: model.MotivationFriendly,
		Preferences:     model.DefaultPreferences(),
	}
}

func (c *Controller) GetStarted(_ context.Context) (Screen, error) {
	if _, ok := c.screen.(Welcome); !ok {
		return c.invalid("get started")
	}
	return c.transition(ProfileSetup{}), nil
}

func (c *Controller) CompleteProfile(ctx context.Context, in ProfileInput) (Screen, error) {
	switch c.screen.(type) {
	case Welcome, ProfileSetup:
	default:
		return c.invalid("complete profile")
	}
	now := c.now()
	p := model.NewProfile(c.newID(), in.NeuroProfile, in.MotivationStyle, in.Preferences, now)
	if err := p.Validate(); err != nil {
		return c.screen, fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	}
	if err := c.store.SaveProfile(ctx, p); err != nil {
		return c.screen, persistErr("save profile", err)
	}
	c.profile = &p
	c.logger.Infof("Profile created (%s, %s)", p.NeuroProfile, p.MotivationStyle)
	return c.transition(Dashboard{}), nil
}

func (c *Controller) StartNewTask(_ context.Context) (Screen, error) {
	if c.profile == nil {
		return c.screen, ErrNoProfile
	}
	if _, ok := c.screen.(Dashboard); !ok {
		return c.invalid("start new task")
	}
	return c.transition(TaskCreator{}), nil
}

func (c *Controller) OpenSettings(_ context.Context) (Screen, error) {
	if c.profile == nil {
		return c.screen, ErrNoProfile
	}
	if _, ok := c.screen.(Dashboard); !ok {
		return c.invalid("open settings")
	}
	return c.transition(Settings{}), nil
}

// UpdateProfile saves edited settings and stays on the settings screen.
func (c *Controller) UpdateProfile(ctx context.Context, in ProfileInput) (Screen, error) {
	if _, ok := c.screen.(Settings); !ok {
		return c.invalid("update profile")
	}
	if c.profile == nil {
		return c.screen, ErrNoProfile
	}
	p := *c.profile
	p.NeuroProfile = in.NeuroProfile
	p.MotivationStyle = in.MotivationStyle
	p.Preferences = in.Preferences
	p = p.Touch(c.now())
	if err := p.Validate(); err != nil {
		return c.screen, fmt.Errorf("%w: %w", ErrInvalidTransition, err)
	}
	if err := c.store.SaveProfile(ctx, p); err != nil {
		return c.screen, persistErr("save profile", err)
	}
	c.profile = &p
	return c.transition(Settings{}), nil
}

// Back leaves a secondary screen without changing data.
func (c *Controller) Back(ctx context.Context) (Screen, error) {
	switch s := c.screen.(type) {
	case TaskCreator, Settings:
		return c.transition(Dashboard{}), nil
	case ProfileSetup:
		return c.transition(Welcome{}), nil
	case StuckHelp:
		return c.transition(Working{Task: s.Task, Session: s.Session}), nil
	default:
		return c.invalid("back")
	}
}

// ClearAllData wipes every stored collection and the in-memory state.
func (c *Controller) ClearAllData(ctx context.Context) (Screen, error) {
	if err := c.store.ClearAll(ctx); err != nil {
		return c.screen, persistErr("clear all", err)
	}
	c.profile = nil
	c.tasks = []model.Task{}
	c.sessions = []model.Session{}
	c.wins = []model.MicroWin{}
	c.patterns = []model.StuckPattern{}
	c.logger.Infof("All data cleared")
	return c.transition(Welcome{}), nil
}

// StartOver returns to the welcome screen without touching data.
func (c *Controller) StartOver(_ context.Context) (Screen, error) {
	return c.transition(Welcome{}), nil
}
