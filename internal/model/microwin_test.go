package model

import (
	"errors"
	"testing"
	"time"
)

func TestMicroWinValidate(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	w := NewMicroWin("win-1", WinJustStarted, "task-1", now)
	if err := w.Validate(); err != nil {
		t.Fatalf("expected valid micro-win: %v", err)
	}
	if w.Celebrated {
		t.Fatal("celebrated must start false")
	}
	w.Type = MicroWinType("party")
	if err := w.Validate(); !errors.Is(err, ErrInvalidMicroWinType) {
		t.Fatalf("expected ErrInvalidMicroWinType, got %v", err)
	}
}

func TestCountWinsSinceStartOfDay(t *testing.T) {
	now := time.Date(2026, 2, 9, 15, 30, 0, 0, time.UTC)
	wins := []MicroWin{
		NewMicroWin("1", WinStepComplete, "t", now.Add(-20*time.Hour)),
		NewMicroWin("2", WinStepComplete, "t", StartOfDay(now)),
		NewMicroWin("3", WinTaskComplete, "t", now),
	}
	if got := CountWinsSince(wins, StartOfDay(now)); got != 2 {
		t.Fatalf("expected 2 wins today, got %d", got)
	}
}

func TestRecordStuck(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	patterns := RecordStuck(nil, "task-1", "Open email", "Use a timer", now)
	patterns = RecordStuck(patterns, "task-1", "Open email", "", now.Add(time.Hour))
	patterns = RecordStuck(patterns, "task-1", "Send it", "Skip", now)
	if len(patterns) != 2 {
		t.Fatalf("expected 2 patterns, got %d", len(patterns))
	}
	if patterns[0].Frequency != 2 || !patterns[0].LastOccurred.Equal(now.Add(time.Hour)) || patterns[0].SuggestedHelp != "Use a timer" {
		t.Fatalf("unexpected first pattern: %+v", patterns[0])
	}
}
