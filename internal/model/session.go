package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidPauseReason = errors.New("model: invalid pause reason")
	ErrInvalidEmotion     = errors.New("model: invalid emotion")
)

type PauseReason string

const (
	PauseUser      PauseReason = "user"
	PauseOverwhelm PauseReason = "overwhelm"
	PauseTimeLimit PauseReason = "time-limit"
)

func (r PauseReason) IsValid() bool {
	switch r {
	case PauseUser, PauseOverwhelm, PauseTimeLimit:
		return true
	default:
		return false
	}
}

type Emotion string

const (
	EmotionOverwhelmed Emotion = "overwhelmed"
	EmotionStuck       Emotion = "stuck"
	EmotionFocused     Emotion = "focused"
	EmotionTired       Emotion = "tired"
	EmotionEnergized   Emotion = "energized"
)

func (e Emotion) IsValid() bool {
	switch e {
	case EmotionOverwhelmed, EmotionStuck, EmotionFocused, EmotionTired, EmotionEnergized:
		return true
	default:
		return false
	}
}

type SessionPause struct {
	StartedAt time.Time
	ResumedAt *time.Time
	Reason    PauseReason
}

type EmotionCheckin struct {
	Timestamp    time.Time
	Emotion      Emotion
	AutoDetected bool
}

// Session is one attempt at a task. It is open until EndedAt is set.
type Session struct {
	ID                  string
	TaskID              string
	StartedAt           time.Time
	EndedAt             *time.Time
	CurrentStepIndex    int
	Pauses              []SessionPause
	EmotionCheckins     []EmotionCheckin
	OverwhelmDetections int
	ElapsedMinutes      int
}

func NewSession(id, taskID string, start time.Time, stepIndex int) Session {
	return Session{
		ID:               id,
		TaskID:           taskID,
		StartedAt:        start,
		CurrentStepIndex: stepIndex,
		Pauses:           []SessionPause{},
		EmotionCheckins:  []EmotionCheckin{},
	}
}

func (s Session) Validate(stepCount int) error {
	if strings.TrimSpace(s.ID) == "" {
		return errors.New("model: session id is required")
	}
	if strings.TrimSpace(s.TaskID) == "" {
		return errors.New("model: session task_id is required")
	}
	if s.StartedAt.IsZero() {
		return errors.New("model: session started_at is required")
	}
	if s.CurrentStepIndex < 0 || s.CurrentStepIndex > stepCount {
		return fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, s.CurrentStepIndex, stepCount)
	}
	for _, p := range s.Pauses {
		if !p.Reason.IsValid() {
			return fmt.Errorf("%w: %q", ErrInvalidPauseReason, p.Reason)
		}
	}
	return nil
}

func (s Session) IsOpen() bool {
	return s.EndedAt == nil
}

func (s Session) Clone() Session {
	out := s
	out.EndedAt = cloneTime(s.EndedAt)
	out.Pauses = make([]SessionPause, len(s.Pauses))
	for i, p := range s.Pauses {
		p.ResumedAt = cloneTime(p.ResumedAt)
		out.Pauses[i] = p
	}
	out.EmotionCheckins = make([]EmotionCheckin, len(s.EmotionCheckins))
	copy(out.EmotionCheckins, s.EmotionCheckins)
	return out
}

// Advance moves to the next step, never past stepCount.
func (s Session) Advance(stepCount int) Session {
	out := s.Clone()
	if out.CurrentStepIndex < stepCount {
		out.CurrentStepIndex++
	}
	return out
}

// StepBack moves to the previous step; at the first step it is a no-op.
func (s Session) StepBack() Session {
	out := s.Clone()
	if out.CurrentStepIndex > 0 {
		out.CurrentStepIndex--
	}
	return out
}

func (s Session) AtStep(i int) Session {
	out := s.Clone()
	out.CurrentStepIndex = i
	return out
}

func (s Session) Pause(at time.Time, reason PauseReason, elapsed time.Duration) Session {
	out := s.Clone()
	out.Pauses = append(out.Pauses, SessionPause{StartedAt: at, Reason: reason})
	return out.AddElapsed(elapsed)
}

// AddElapsed accumulates whole minutes of working time.
func (s Session) AddElapsed(elapsed time.Duration) Session {
	out := s.Clone()
	if elapsed > 0 {
		out.ElapsedMinutes += int(elapsed / time.Minute)
	}
	return out
}

// Resume stamps the most recent pause that has not been resumed yet.
func (s Session) Resume(at time.Time) Session {
	out := s.Clone()
	for i := len(out.Pauses) - 1; i >= 0; i-- {
		if out.Pauses[i].ResumedAt == nil {
			stamp := at
			out.Pauses[i].ResumedAt = &stamp
			break
		}
	}
	return out
}

func (s Session) End(at time.Time) Session {
	out := s.Clone()
	stamp := at
	out.EndedAt = &stamp
	return out
}

func (s Session) CheckIn(e Emotion, auto bool, at time.Time) Session {
	out := s.Clone()
	out.EmotionCheckins = append(out.EmotionCheckins, EmotionCheckin{Timestamp: at, Emotion: e, AutoDetected: auto})
	if e == EmotionOverwhelmed && auto {
		out.OverwhelmDetections++
	}
	return out
}

// UpsertSession replaces the entry with the same id, or appends it. The
// result holds at most one entry per session id.
func UpsertSession(sessions []Session, s Session) []Session {
	out := make([]Session, 0, len(sessions)+1)
	for _, existing := range sessions {
		if existing.ID == s.ID {
			continue
		}
		out = append(out, existing)
	}
	return append(out, s)
}

// FindOpenSession returns the open session for taskID, if any.
func FindOpenSession(sessions []Session, taskID string) (Session, bool) {
	for _, s := range sessions {
		if s.TaskID == taskID && s.IsOpen() {
			return s, true
		}
	}
	return Session{}, false
}
