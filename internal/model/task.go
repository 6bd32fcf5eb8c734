package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidEnergy     = errors.New("model: invalid energy level")
	ErrInvalidEaseRating = errors.New("model: invalid ease rating")
	ErrStepOutOfRange    = errors.New("model: step index out of range")
)

type EnergyLevel string

const (
	EnergyLow    EnergyLevel = "low"
	EnergyMedium EnergyLevel = "medium"
	EnergyHigh   EnergyLevel = "high"
)

func (e EnergyLevel) IsValid() bool {
	switch e {
	case EnergyLow, EnergyMedium, EnergyHigh:
		return true
	default:
		return false
	}
}

// DefaultMinutes is the estimate given to a custom task at this energy level.
func (e EnergyLevel) DefaultMinutes() int {
	switch e {
	case EnergyLow:
		return 10
	case EnergyHigh:
		return 30
	default:
		return 20
	}
}

func ParseEnergyLevel(raw string) (EnergyLevel, error) {
	e := EnergyLevel(strings.ToLower(strings.TrimSpace(raw)))
	if !e.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidEnergy, raw)
	}
	return e, nil
}

type TaskStep struct {
	ID                    string
	Description           string
	IsComplete            bool
	SimplifiedDescription string
	VoiceGuidance         string
	CompletedAt           *time.Time
	StuckAt               *time.Time
}

// DisplayText returns the simplified text when requested and available.
func (s TaskStep) DisplayText(simplified bool) string {
	if simplified && s.SimplifiedDescription != "" {
		return s.SimplifiedDescription
	}
	return s.Description
}

type Task struct {
	ID               string
	Title            string
	Description      string
	EnergyLevel      EnergyLevel
	EstimatedMinutes int
	Steps            []TaskStep
	IsJustStart      bool
	CompletedAt      *time.Time
	CreatedAt        time.Time
	StuckCount       int
	PauseCount       int
	// EaseRating is 1-5 once rated, 0 before.
	EaseRating int
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if !t.EnergyLevel.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidEnergy, t.EnergyLevel)
	}
	if len(t.Steps) == 0 {
		return errors.New("model: task needs at least one step")
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if t.EaseRating != 0 && (t.EaseRating < 1 || t.EaseRating > 5) {
		return fmt.Errorf("%w: %d", ErrInvalidEaseRating, t.EaseRating)
	}
	if t.allStepsComplete() && t.CompletedAt == nil {
		return errors.New("model: completed_at is required when every step is complete")
	}
	if !t.allStepsComplete() && t.CompletedAt != nil {
		return errors.New("model: completed_at must be nil while steps remain")
	}
	return nil
}

// Clone returns a copy that shares no step storage with t.
func (t Task) Clone() Task {
	out := t
	out.Steps = make([]TaskStep, len(t.Steps))
	copy(out.Steps, t.Steps)
	out.CompletedAt = cloneTime(t.CompletedAt)
	for i := range out.Steps {
		out.Steps[i].CompletedAt = cloneTime(t.Steps[i].CompletedAt)
		out.Steps[i].StuckAt = cloneTime(t.Steps[i].StuckAt)
	}
	return out
}

// IsComplete reports whether every step has been completed.
func (t Task) IsComplete() bool {
	return t.allStepsComplete()
}

func (t Task) allStepsComplete() bool {
	if len(t.Steps) == 0 {
		return false
	}
	for _, s := range t.Steps {
		if !s.IsComplete {
			return false
		}
	}
	return true
}

func (t Task) Step(i int) (TaskStep, bool) {
	if i < 0 || i >= len(t.Steps) {
		return TaskStep{}, false
	}
	return t.Steps[i], true
}

func (t Task) IsLastStep(i int) bool {
	return len(t.Steps) > 0 && i == len(t.Steps)-1
}

// LastCompletedStepIndex returns -1 when no step is complete.
func (t Task) LastCompletedStepIndex() int {
	for i := len(t.Steps) - 1; i >= 0; i-- {
		if t.Steps[i].IsComplete {
			return i
		}
	}
	return -1
}

// FirstIncompleteStepIndex returns -1 when every step is complete.
func (t Task) FirstIncompleteStepIndex() int {
	for i, s := range t.Steps {
		if !s.IsComplete {
			return i
		}
	}
	return -1
}

func (t Task) Progress() (done, total int) {
	for _, s := range t.Steps {
		if s.IsComplete {
			done++
		}
	}
	return done, len(t.Steps)
}

// CompleteStep marks step i complete. When that leaves no incomplete step the
// task's completed_at is set to the same instant.
func (t Task) CompleteStep(i int, at time.Time) (Task, error) {
	if i < 0 || i >= len(t.Steps) {
		return t, fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, i, len(t.Steps))
	}
	out := t.Clone()
	stamp := at
	out.Steps[i].IsComplete = true
	out.Steps[i].CompletedAt = &stamp
	if out.allStepsComplete() {
		done := at
		out.CompletedAt = &done
	}
	return out, nil
}

func (t Task) MarkStuck(i int, at time.Time) (Task, error) {
	if i < 0 || i >= len(t.Steps) {
		return t, fmt.Errorf("%w: %d of %d", ErrStepOutOfRange, i, len(t.Steps))
	}
	out := t.Clone()
	stamp := at
	out.Steps[i].StuckAt = &stamp
	out.StuckCount++
	return out, nil
}

func (t Task) WithPause() Task {
	out := t.Clone()
	out.PauseCount++
	return out
}

func (t Task) WithEaseRating(rating int) (Task, error) {
	if rating < 1 || rating > 5 {
		return t, fmt.Errorf("%w: %d", ErrInvalidEaseRating, rating)
	}
	out := t.Clone()
	out.EaseRating = rating
	return out, nil
}

// ReplaceTask swaps the task with the same id, returning a new slice. The task
// is appended when no entry matches.
func ReplaceTask(tasks []Task, t Task) []Task {
	out := make([]Task, 0, len(tasks)+1)
	replaced := false
	for _, existing := range tasks {
		if existing.ID == t.ID {
			out = append(out, t)
			replaced = true
			continue
		}
		out = append(out, existing)
	}
	if !replaced {
		out = append(out, t)
	}
	return out
}

func FindTask(tasks []Task, id string) (Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return Task{}, false
}

func cloneTime(v *time.Time) *time.Time {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
