package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrInvalidMicroWinType = errors.New("model: invalid micro-win type")

type MicroWinType string

const (
	WinStepComplete       MicroWinType = "step-complete"
	WinTaskComplete       MicroWinType = "task-complete"
	WinJustStarted        MicroWinType = "just-started"
	WinReturnedAfterBreak MicroWinType = "returned-after-break"
	WinAskedForHelp       MicroWinType = "asked-for-help"
)

func (w MicroWinType) IsValid() bool {
	switch w {
	case WinStepComplete, WinTaskComplete, WinJustStarted, WinReturnedAfterBreak, WinAskedForHelp:
		return true
	default:
		return false
	}
}

// MicroWin is an append-only progress event. Celebrated is reserved and is
// always written false.
type MicroWin struct {
	ID         string
	Type       MicroWinType
	TaskID     string
	Timestamp  time.Time
	Celebrated bool
}

func NewMicroWin(id string, typ MicroWinType, taskID string, at time.Time) MicroWin {
	return MicroWin{ID: id, Type: typ, TaskID: taskID, Timestamp: at}
}

func (w MicroWin) Validate() error {
	if strings.TrimSpace(w.ID) == "" {
		return errors.New("model: micro-win id is required")
	}
	if strings.TrimSpace(w.TaskID) == "" {
		return errors.New("model: micro-win task_id is required")
	}
	if w.Timestamp.IsZero() {
		return errors.New("model: micro-win timestamp is required")
	}
	if !w.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidMicroWinType, w.Type)
	}
	return nil
}

// StartOfDay returns local midnight for t.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func CountWinsSince(wins []MicroWin, since time.Time) int {
	n := 0
	for _, w := range wins {
		if !w.Timestamp.Before(since) {
			n++
		}
	}
	return n
}
