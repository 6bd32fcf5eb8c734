package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidNeuroProfile     = errors.New("model: invalid neuro profile")
	ErrInvalidMotivationStyle  = errors.New("model: invalid motivation style")
	ErrInvalidCelebrationStyle = errors.New("model: invalid celebration style")
)

type NeuroProfile string

const (
	NeuroADHD     NeuroProfile = "adhd"
	NeuroAutism   NeuroProfile = "autism"
	NeuroDyslexia NeuroProfile = "dyslexia"
	NeuroGeneral  NeuroProfile = "general"
	NeuroMultiple NeuroProfile = "multiple"
)

var NeuroProfiles = []NeuroProfile{NeuroADHD, NeuroAutism, NeuroDyslexia, NeuroGeneral, NeuroMultiple}

func (n NeuroProfile) IsValid() bool {
	switch n {
	case NeuroADHD, NeuroAutism, NeuroDyslexia, NeuroGeneral, NeuroMultiple:
		return true
	default:
		return false
	}
}

// WantsVisuals reports whether step illustrations are shown for this profile.
func (n NeuroProfile) WantsVisuals() bool {
	return n == NeuroADHD || n == NeuroMultiple
}

type MotivationStyle string

const (
	MotivationCalm     MotivationStyle = "calm"
	MotivationFriendly MotivationStyle = "friendly"
	MotivationDirect   MotivationStyle = "direct"
)

var MotivationStyles = []MotivationStyle{MotivationCalm, MotivationFriendly, MotivationDirect}

func (m MotivationStyle) IsValid() bool {
	switch m {
	case MotivationCalm, MotivationFriendly, MotivationDirect:
		return true
	default:
		return false
	}
}

type CelebrationStyle string

const (
	CelebrationSubtle       CelebrationStyle = "subtle"
	CelebrationModerate     CelebrationStyle = "moderate"
	CelebrationEnthusiastic CelebrationStyle = "enthusiastic"
	CelebrationNone         CelebrationStyle = "none"
)

var CelebrationStyles = []CelebrationStyle{CelebrationSubtle, CelebrationModerate, CelebrationEnthusiastic, CelebrationNone}

func (c CelebrationStyle) IsValid() bool {
	switch c {
	case CelebrationSubtle, CelebrationModerate, CelebrationEnthusiastic, CelebrationNone:
		return true
	default:
		return false
	}
}

type Preferences struct {
	VoiceEnabled        bool
	ReadingMode         bool
	LowSensoryMode      bool
	FocusBubbleDefault  bool
	CelebrationStyle    CelebrationStyle
	SessionLimitMinutes int
	DyslexiaFont        bool
}

// DefaultPreferences are the values the profile wizard starts from.
func DefaultPreferences() Preferences {
	return Preferences{
		ReadingMode:         true,
		FocusBubbleDefault:  true,
		CelebrationStyle:    CelebrationModerate,
		SessionLimitMinutes: 25,
	}
}

type UserProfile struct {
	ID              string
	NeuroProfile    NeuroProfile
	MotivationStyle MotivationStyle
	Preferences     Preferences
	CreatedAt       time.Time
	LastActive      time.Time
}

func NewProfile(id string, neuro NeuroProfile, style MotivationStyle, prefs Preferences, now time.Time) UserProfile {
	return UserProfile{
		ID:              id,
		NeuroProfile:    neuro,
		MotivationStyle: style,
		Preferences:     prefs,
		CreatedAt:       now,
		LastActive:      now,
	}
}

func (p UserProfile) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("model: profile id is required")
	}
	if !p.NeuroProfile.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidNeuroProfile, p.NeuroProfile)
	}
	if !p.MotivationStyle.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidMotivationStyle, p.MotivationStyle)
	}
	if !p.Preferences.CelebrationStyle.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidCelebrationStyle, p.Preferences.CelebrationStyle)
	}
	if p.Preferences.SessionLimitMinutes <= 0 {
		return errors.New("model: session limit must be positive")
	}
	if p.CreatedAt.IsZero() {
		return errors.New("model: profile created_at is required")
	}
	return nil
}

func (p UserProfile) Touch(now time.Time) UserProfile {
	p.LastActive = now
	return p
}
