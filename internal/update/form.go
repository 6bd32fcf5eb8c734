package update

import (
	"strconv"

	"github.com/sandeepkv93/onestep/internal/flow"
	"github.com/sandeepkv93/onestep/internal/model"
	"github.com/sandeepkv93/onestep/internal/views"
)

const (
	fieldNeuro = iota
	fieldMotivation
	fieldCelebration
	fieldSessionLimit
	fieldLowSensory
	fieldFocusBubble
	fieldReadingMode
	fieldVoice
	fieldDyslexia
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"neuro profile",
	"motivation style",
	"celebration",
	"session limit (min)",
	"low sensory mode",
	"focus bubble default",
	"reading mode",
	"voice guidance",
	"dyslexia-friendly",
}

const (
	minSessionLimit  = 5
	maxSessionLimit  = 120
	sessionLimitStep = 5
)

// ProfileForm backs both the setup wizard and the settings screen.
type ProfileForm struct {
	Cursor int
	Input  flow.ProfileInput
}

func NewProfileForm(in flow.ProfileInput) ProfileForm {
	return ProfileForm{Input: in}
}

func FormFromProfile(p model.UserProfile) ProfileForm {
	return NewProfileForm(flow.ProfileInput{
		NeuroProfile:    p.NeuroProfile,
		MotivationStyle: p.MotivationStyle,
		Preferences:     p.Preferences,
	})
}

func (f ProfileForm) Move(delta int) ProfileForm {
	f.Cursor = (f.Cursor + delta + fieldCount) % fieldCount
	return f
}

// Change cycles the selected field's value by delta.
func (f ProfileForm) Change(delta int) ProfileForm {
	p := &f.Input.Preferences
	switch f.Cursor {
	case fieldNeuro:
		f.Input.NeuroProfile = cycle(model.NeuroProfiles, f.Input.NeuroProfile, delta)
	case fieldMotivation:
		f.Input.MotivationStyle = cycle(model.MotivationStyles, f.Input.MotivationStyle, delta)
	case fieldCelebration:
		p.CelebrationStyle = cycle(model.CelebrationStyles, p.CelebrationStyle, delta)
	case fieldSessionLimit:
		p.SessionLimitMinutes += delta * sessionLimitStep
		if p.SessionLimitMinutes < minSessionLimit {
			p.SessionLimitMinutes = minSessionLimit
		}
		if p.SessionLimitMinutes > maxSessionLimit {
			p.SessionLimitMinutes = maxSessionLimit
		}
	case fieldLowSensory:
		p.LowSensoryMode = !p.LowSensoryMode
	case fieldFocusBubble:
		p.FocusBubbleDefault = !p.FocusBubbleDefault
	case fieldReadingMode:
		p.ReadingMode = !p.ReadingMode
	case fieldVoice:
		p.VoiceEnabled = !p.VoiceEnabled
	case fieldDyslexia:
		p.DyslexiaFont = !p.DyslexiaFont
	}
	return f
}

func (f ProfileForm) Fields() []views.FieldData {
	p := f.Input.Preferences
	values := [fieldCount]string{
		string(f.Input.NeuroProfile),
		string(f.Input.MotivationStyle),
		string(p.CelebrationStyle),
		strconv.Itoa(p.SessionLimitMinutes),
		onOff(p.LowSensoryMode),
		onOff(p.FocusBubbleDefault),
		onOff(p.ReadingMode),
		onOff(p.VoiceEnabled),
		onOff(p.DyslexiaFont),
	}
	out := make([]views.FieldData, 0, fieldCount)
	for i := 0; i < fieldCount; i++ {
		out = append(out, views.FieldData{Label: fieldLabels[i], Value: values[i], Selected: i == f.Cursor})
	}
	return out
}

func cycle[T comparable](options []T, current T, delta int) T {
	if len(options) == 0 {
		return current
	}
	idx := 0
	for i, o := range options {
		if o == current {
			idx = i
			break
		}
	}
	n := len(options)
	return options[((idx+delta)%n+n)%n]
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
