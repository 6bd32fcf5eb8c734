package model

import (
	"testing"
	"time"
)

func TestSessionStepBackThenForward(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	s := NewSession("sess-1", "task-1", now, 2)

	back := s.StepBack()
	if back.CurrentStepIndex != 1 {
		t.Fatalf("expected index 1, got %d", back.CurrentStepIndex)
	}
	forward := back.Advance(5)
	if forward.CurrentStepIndex != s.CurrentStepIndex {
		t.Fatalf("expected index %d, got %d", s.CurrentStepIndex, forward.CurrentStepIndex)
	}

	first := NewSession("sess-2", "task-1", now, 0)
	if got := first.StepBack().CurrentStepIndex; got != 0 {
		t.Fatalf("step back at index 0 must be a no-op, got %d", got)
	}
}

func TestSessionAdvanceNeverPassesStepCount(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	s := NewSession("sess-1", "task-1", now, 2)
	if got := s.Advance(2).CurrentStepIndex; got != 2 {
		t.Fatalf("expected clamp at 2, got %d", got)
	}
}

func TestSessionPauseResumeAndEnd(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	s := NewSession("sess-1", "task-1", now, 1)

	paused := s.Pause(now.Add(time.Minute), PauseUser, 7*time.Minute+30*time.Second)
	if len(s.Pauses) != 0 {
		t.Fatal("original session was mutated")
	}
	if len(paused.Pauses) != 1 || paused.Pauses[0].Reason != PauseUser || paused.ElapsedMinutes != 7 {
		t.Fatalf("unexpected paused session: %+v", paused)
	}

	resumed := paused.Resume(now.Add(time.Hour))
	if resumed.Pauses[0].ResumedAt == nil || paused.Pauses[0].ResumedAt != nil {
		t.Fatalf("resume must stamp a copy only: %+v / %+v", resumed.Pauses[0], paused.Pauses[0])
	}

	ended := resumed.End(now.Add(2 * time.Hour))
	if ended.IsOpen() || !resumed.IsOpen() {
		t.Fatal("unexpected open state after end")
	}
}

func TestSessionCheckInCountsAutoOverwhelm(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	s := NewSession("sess-1", "task-1", now, 0)
	s = s.CheckIn(EmotionOverwhelmed, true, now)
	s = s.CheckIn(EmotionFocused, false, now)
	if len(s.EmotionCheckins) != 2 || s.OverwhelmDetections != 1 {
		t.Fatalf("unexpected check-ins: %+v", s)
	}
}

func TestUpsertSessionKeepsOneEntryPerID(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	a := NewSession("a", "task-1", now, 0)
	b := NewSession("b", "task-2", now, 0)
	list := UpsertSession(UpsertSession(nil, a), b)

	a2 := a.Advance(3)
	list = UpsertSession(list, a2)
	if len(list) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(list))
	}
	if list[1].ID != "a" || list[1].CurrentStepIndex != 1 {
		t.Fatalf("expected updated session appended last, got %+v", list)
	}

	open, ok := FindOpenSession(list, "task-1")
	if !ok || open.ID != "a" {
		t.Fatalf("expected open session a, got %+v %v", open, ok)
	}
	list = UpsertSession(list, a2.End(now))
	if _, ok := FindOpenSession(list, "task-1"); ok {
		t.Fatal("closed session must not be found as open")
	}
}

func TestSessionValidate(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	s := NewSession("sess-1", "task-1", now, 3)
	if err := s.Validate(2); err == nil {
		t.Fatal("expected out of range error")
	}
	if err := s.Validate(3); err != nil {
		t.Fatalf("index equal to step count is allowed: %v", err)
	}
}
