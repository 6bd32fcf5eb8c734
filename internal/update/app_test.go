package update

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/onestep/internal/flow"
	"github.com/sandeepkv93/onestep/internal/model"
	"github.com/sandeepkv93/onestep/internal/storage"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

type fakeFinder struct{}

func (fakeFinder) Find(_ context.Context, text string) (string, error) {
	return "https://img.test/" + text, nil
}

type failingTasksStore struct {
	*storage.Store
}

func (failingTasksStore) SaveTasks(context.Context, []model.Task) error {
	return errors.New("disk full")
}

type fixture struct {
	clock *fakeClock
	ctrl  *flow.Controller
	model Model
}

func newFixture(t *testing.T, store flow.Store, opts Options) *fixture {
	t.Helper()
	f := &fixture{clock: &fakeClock{t: time.Date(2026, 5, 4, 10, 0, 0, 0, time.Local)}}
	if store == nil {
		s, err := storage.NewStore(storage.StoreConfig{KV: storage.NewMemoryKV()})
		if err != nil {
			t.Fatalf("new store: %v", err)
		}
		store = s
	}
	ids := 0
	ctrl, err := flow.New(context.Background(), flow.Config{
		Store: store,
		Now:   f.clock.Now,
		NewID: func() string {
			ids++
			return fmt.Sprintf("id-%d", ids)
		},
	})
	if err != nil {
		t.Fatalf("new controller: %v", err)
	}
	f.ctrl = ctrl
	opts.Now = f.clock.Now
	f.model = NewModel(ctrl, opts)
	return f
}

func (f *fixture) send(t *testing.T, msg tea.Msg) tea.Cmd {
	t.Helper()
	updated, cmd := f.model.Update(msg)
	f.model = updated.(Model)
	return cmd
}

func (f *fixture) key(t *testing.T, k string) tea.Cmd {
	t.Helper()
	switch k {
	case "enter":
		return f.send(t, tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return f.send(t, tea.KeyMsg{Type: tea.KeyEsc})
	case "down":
		return f.send(t, tea.KeyMsg{Type: tea.KeyDown})
	case "tab":
		return f.send(t, tea.KeyMsg{Type: tea.KeyTab})
	default:
		return f.send(t, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
	}
}

func (f *fixture) onboard(t *testing.T) {
	t.Helper()
	f.key(t, "enter")
	f.key(t, "enter")
	if got := f.ctrl.Screen().Kind(); got != flow.KindDashboard {
		t.Fatalf("expected dashboard after onboarding, got %s", got)
	}
}

func (f *fixture) startCustom(t *testing.T, title string) tea.Cmd {
	t.Helper()
	f.key(t, "n")
	f.key(t, title)
	cmd := f.key(t, "enter")
	if got := f.ctrl.Screen().Kind(); got != flow.KindWorking {
		t.Fatalf("expected working screen, got %s", got)
	}
	return cmd
}

func (f *fixture) session(t *testing.T) model.Session {
	t.Helper()
	sessions := f.ctrl.Sessions()
	if len(sessions) != 1 {
		t.Fatalf("expected one session, got %d", len(sessions))
	}
	return sessions[0]
}

func TestNewModelStartsOnWelcome(t *testing.T) {
	f := newFixture(t, nil, Options{})
	if f.model.Screen().Kind() != flow.KindWelcome {
		t.Fatalf("expected welcome screen, got %s", f.model.Screen().Kind())
	}
	if f.model.Creator.Energy != model.EnergyMedium {
		t.Fatalf("expected medium default energy, got %q", f.model.Creator.Energy)
	}
	if !strings.Contains(f.model.View(), "onestep | welcome") {
		t.Fatalf("expected header in view:\n%s", f.model.View())
	}
}

func TestOnboardingWithKeyboard(t *testing.T) {
	f := newFixture(t, nil, Options{})
	f.key(t, "enter")
	if f.ctrl.Screen().Kind() != flow.KindProfileSetup {
		t.Fatalf("expected profile setup, got %s", f.ctrl.Screen().Kind())
	}

	f.key(t, "l")
	if f.model.Form.Input.NeuroProfile != model.NeuroAutism {
		t.Fatalf("expected autism after one change, got %q", f.model.Form.Input.NeuroProfile)
	}
	f.key(t, "enter")

	p := f.ctrl.Profile()
	if p == nil || p.NeuroProfile != model.NeuroAutism {
		t.Fatalf("expected saved autism profile, got %+v", p)
	}
	if f.ctrl.Screen().Kind() != flow.KindDashboard {
		t.Fatalf("expected dashboard, got %s", f.ctrl.Screen().Kind())
	}
}

func TestCreateCustomTaskStartsTicking(t *testing.T) {
	f := newFixture(t, nil, Options{})
	f.onboard(t)
	f.key(t, "n")
	f.key(t, "tab")
	if f.model.Creator.Energy != model.EnergyHigh {
		t.Fatalf("expected high energy after tab, got %q", f.model.Creator.Energy)
	}
	f.key(t, "Email my manager")
	if !strings.Contains(f.model.View(), "steps:") {
		t.Fatalf("expected a step preview while typing:\n%s", f.model.View())
	}
	cmd := f.key(t, "enter")
	if cmd == nil {
		t.Fatal("expected tick command on entering working")
	}

	w := f.ctrl.Screen().(flow.Working)
	if w.Task.Title != "Email my manager" || w.Task.EnergyLevel != model.EnergyHigh {
		t.Fatalf("unexpected task: %+v", w.Task)
	}
	if f.model.Work.SessionID != w.Session.ID || f.model.Work.Generation == 0 {
		t.Fatalf("unexpected work state: %+v", f.model.Work)
	}
	if !f.model.Work.Bubble {
		t.Fatal("expected focus bubble from profile default")
	}
}

func TestStaleTicksAreDropped(t *testing.T) {
	f := newFixture(t, nil, Options{IdlePrompt: time.Hour})
	f.onboard(t)
	f.startCustom(t, "Clean the desk")
	gen := f.model.Work.Generation

	f.clock.Advance(2 * time.Second)
	if cmd := f.send(t, WorkingTickMsg{Generation: gen - 1}); cmd != nil {
		t.Fatal("expected stale tick to stop the chain")
	}
	if f.model.Work.Elapsed != 0 {
		t.Fatalf("stale tick must not count time, got %s", f.model.Work.Elapsed)
	}

	if cmd := f.send(t, WorkingTickMsg{Generation: gen}); cmd == nil {
		t.Fatal("expected live tick to re-arm")
	}
	if f.model.Work.Elapsed != 2*time.Second {
		t.Fatalf("expected 2s elapsed, got %s", f.model.Work.Elapsed)
	}
}

func TestPauseHandsElapsedToSessionAndStopsTicks(t *testing.T) {
	f := newFixture(t, nil, Options{IdlePrompt: time.Hour})
	f.onboard(t)
	f.startCustom(t, "Call the dentist")
	gen := f.model.Work.Generation

	f.clock.Advance(3 * time.Minute)
	f.send(t, WorkingTickMsg{Generation: gen})
	f.key(t, "p")

	if f.ctrl.Screen().Kind() != flow.KindDashboard {
		t.Fatalf("expected dashboard after pause, got %s", f.ctrl.Screen().Kind())
	}
	s := f.session(t)
	if s.ElapsedMinutes != 3 || len(s.Pauses) != 1 || s.Pauses[0].Reason != model.PauseUser {
		t.Fatalf("unexpected session after pause: %+v", s)
	}
	if !s.IsOpen() {
		t.Fatal("pause must keep the session open")
	}
	if f.model.Work.Elapsed != 0 {
		t.Fatalf("expected local elapsed reset, got %s", f.model.Work.Elapsed)
	}
	if cmd := f.send(t, WorkingTickMsg{Generation: gen}); cmd != nil {
		t.Fatal("expected old tick chain to end after leaving working")
	}
}

func TestIdlePromptRecordsAutoCheckIn(t *testing.T) {
	f := newFixture(t, nil, Options{IdlePrompt: time.Minute})
	f.onboard(t)
	f.startCustom(t, "Write the report")

	f.clock.Advance(61 * time.Second)
	f.send(t, WorkingTickMsg{Generation: f.model.Work.Generation})
	if f.model.Work.Prompt != PromptIdle {
		t.Fatalf("expected idle prompt, got %q", f.model.Work.Prompt)
	}
	checkins := f.session(t).EmotionCheckins
	if len(checkins) != 1 || checkins[0].Emotion != model.EmotionStuck || !checkins[0].AutoDetected {
		t.Fatalf("unexpected check-ins: %+v", checkins)
	}

	f.clock.Advance(61 * time.Second)
	f.send(t, WorkingTickMsg{Generation: f.model.Work.Generation})
	if got := len(f.session(t).EmotionCheckins); got != 1 {
		t.Fatalf("idle prompt must fire once per visit, got %d check-ins", got)
	}

	f.key(t, "x")
	if f.ctrl.Screen().Kind() != flow.KindStuckHelp {
		t.Fatalf("expected stuck help from the idle prompt, got %s", f.ctrl.Screen().Kind())
	}
}

func TestSessionLimitOffersBreak(t *testing.T) {
	f := newFixture(t, nil, Options{IdlePrompt: time.Hour})
	f.onboard(t)
	f.startCustom(t, "Tidy the kitchen")

	f.clock.Advance(25 * time.Minute)
	f.send(t, WorkingTickMsg{Generation: f.model.Work.Generation})
	if f.model.Work.Prompt != PromptLimit {
		t.Fatalf("expected limit prompt, got %q", f.model.Work.Prompt)
	}
	if !strings.Contains(f.model.View(), "Take a break?") {
		t.Fatalf("expected limit prompt in view:\n%s", f.model.View())
	}

	f.key(t, "y")
	if f.ctrl.Screen().Kind() != flow.KindDashboard {
		t.Fatalf("expected dashboard, got %s", f.ctrl.Screen().Kind())
	}
	s := f.session(t)
	if len(s.Pauses) != 1 || s.Pauses[0].Reason != model.PauseTimeLimit || s.ElapsedMinutes != 25 {
		t.Fatalf("unexpected session: %+v", s)
	}
}

func TestImageResultsForOtherStepsAreDiscarded(t *testing.T) {
	f := newFixture(t, nil, Options{IdlePrompt: time.Hour, Finder: fakeFinder{}})
	f.onboard(t)
	f.startCustom(t, "Email my manager")

	stepID := f.model.Work.ImageStepID
	if stepID == "" || !f.model.Work.ImageLoading {
		t.Fatalf("expected an image lookup for the first step, got %+v", f.model.Work)
	}

	f.send(t, ImageResultMsg{StepID: "other", URL: "https://img.test/stale"})
	if f.model.Work.ImageURL != "" || !f.model.Work.ImageLoading {
		t.Fatalf("stale image must be ignored, got %+v", f.model.Work)
	}

	f.send(t, ImageResultMsg{StepID: stepID, URL: "https://img.test/fresh"})
	if f.model.Work.ImageURL != "https://img.test/fresh" || f.model.Work.ImageLoading {
		t.Fatalf("expected fresh image, got %+v", f.model.Work)
	}
}

func TestFinishJustStartTaskAndRate(t *testing.T) {
	f := newFixture(t, nil, Options{IdlePrompt: time.Hour})
	f.onboard(t)
	f.key(t, "n")
	f.key(t, "down")
	f.key(t, "enter")

	w, ok := f.ctrl.Screen().(flow.Working)
	if !ok || !w.Task.IsJustStart {
		t.Fatalf("expected a just-start task, got %s", f.ctrl.Screen().Kind())
	}
	f.clock.Advance(4 * time.Minute)
	f.send(t, WorkingTickMsg{Generation: f.model.Work.Generation})

	for i := 0; i < len(w.Task.Steps); i++ {
		f.key(t, "enter")
		c, ok := f.ctrl.Screen().(flow.Celebration)
		if !ok {
			t.Fatalf("expected celebration after step %d, got %s", i, f.ctrl.Screen().Kind())
		}
		if c.TaskComplete {
			break
		}
		f.key(t, "enter")
	}

	c := f.ctrl.Screen().(flow.Celebration)
	if !c.TaskComplete {
		t.Fatal("expected task completion")
	}
	if s := f.session(t); s.IsOpen() || s.ElapsedMinutes != 4 {
		t.Fatalf("expected closed session with 4 minutes, got %+v", s)
	}
	f.key(t, "4")
	if f.model.LastRating != 4 {
		t.Fatalf("expected rating 4, got %d", f.model.LastRating)
	}
	if !strings.Contains(f.model.View(), "4/5") {
		t.Fatalf("expected rating in view:\n%s", f.model.View())
	}
	f.key(t, "2")
	if f.model.LastRating != 4 {
		t.Fatal("a second rating must be ignored")
	}

	f.key(t, "enter")
	if f.ctrl.Screen().Kind() != flow.KindDashboard {
		t.Fatalf("expected dashboard, got %s", f.ctrl.Screen().Kind())
	}
	if got := f.ctrl.Summary().CompletedToday; got != 1 {
		t.Fatalf("expected one completed today, got %d", got)
	}
}

func TestPaletteCreatesTask(t *testing.T) {
	f := newFixture(t, nil, Options{IdlePrompt: time.Hour})
	f.onboard(t)

	f.key(t, "/")
	if !f.model.Palette.Active {
		t.Fatal("expected palette active")
	}
	f.key(t, "new low Wash the cup")
	f.key(t, "enter")

	w, ok := f.ctrl.Screen().(flow.Working)
	if !ok {
		t.Fatalf("expected working screen, got %s", f.ctrl.Screen().Kind())
	}
	if w.Task.Title != "Wash the cup" || w.Task.EnergyLevel != model.EnergyLow {
		t.Fatalf("unexpected task: %+v", w.Task)
	}
	if f.model.Palette.Active || f.model.Status.IsError {
		t.Fatalf("unexpected palette state: %+v status %+v", f.model.Palette, f.model.Status)
	}
}

func TestPaletteRejectsCommandOnWrongScreen(t *testing.T) {
	f := newFixture(t, nil, Options{})
	f.onboard(t)

	f.key(t, "/")
	f.key(t, "rate 3")
	f.key(t, "enter")

	if !f.model.Status.IsError || !strings.Contains(f.model.Status.Text, "not available") {
		t.Fatalf("expected error status, got %+v", f.model.Status)
	}
	if f.ctrl.Screen().Kind() != flow.KindDashboard {
		t.Fatalf("screen must not change, got %s", f.ctrl.Screen().Kind())
	}
}

func TestInvalidKeysAreIgnored(t *testing.T) {
	f := newFixture(t, nil, Options{})
	f.onboard(t)
	if cmd := f.key(t, "enter"); cmd != nil {
		t.Fatal("expected no command when resuming with no tasks")
	}
	if f.model.Quitting || f.model.Err() != nil {
		t.Fatalf("invalid intents must not end the program: %v", f.model.Err())
	}
}

func TestPersistenceFailureQuits(t *testing.T) {
	s, err := storage.NewStore(storage.StoreConfig{KV: storage.NewMemoryKV()})
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	f := newFixture(t, failingTasksStore{Store: s}, Options{})
	f.onboard(t)
	f.key(t, "n")
	f.key(t, "Wash dishes")
	cmd := f.key(t, "enter")

	if cmd == nil || !f.model.Quitting {
		t.Fatal("expected quit after a persistence failure")
	}
	if !errors.Is(f.model.Err(), flow.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", f.model.Err())
	}
}

func TestSettingsClearAllDataNeedsConfirmation(t *testing.T) {
	f := newFixture(t, nil, Options{})
	f.onboard(t)
	f.key(t, "s")
	f.key(t, "D")
	if !f.model.ConfirmClear {
		t.Fatal("expected confirmation prompt")
	}
	f.key(t, "n")
	if f.ctrl.Profile() == nil {
		t.Fatal("declining must keep the data")
	}

	f.key(t, "D")
	f.key(t, "y")
	if f.ctrl.Profile() != nil || f.ctrl.Screen().Kind() != flow.KindWelcome {
		t.Fatalf("expected cleared data on welcome, got %s", f.ctrl.Screen().Kind())
	}
}

func TestHelpToggle(t *testing.T) {
	f := newFixture(t, nil, Options{})
	f.key(t, "?")
	if !f.model.HelpVisible {
		t.Fatal("expected help visible")
	}
	if !strings.Contains(f.model.View(), "get started") {
		t.Fatalf("expected welcome bindings in help:\n%s", f.model.View())
	}
	f.key(t, "?")
	if f.model.HelpVisible {
		t.Fatal("expected help hidden")
	}
}

func TestQuitKey(t *testing.T) {
	f := newFixture(t, nil, Options{})
	cmd := f.send(t, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil || !f.model.Quitting {
		t.Fatal("expected quit")
	}
}
