package flow

import "github.com/sandeepkv93/onestep/internal/model"

type ScreenKind string

const (
	KindWelcome      ScreenKind = "welcome"
	KindProfileSetup ScreenKind = "profile-setup"
	KindDashboard    ScreenKind = "dashboard"
	KindTaskCreator  ScreenKind = "task-creator"
	KindWorking      ScreenKind = "working"
	KindCelebration  ScreenKind = "celebration"
	KindStuckHelp    ScreenKind = "stuck-help"
	KindSettings     ScreenKind = "settings"
)

// Screen is the current view together with exactly the data it needs.
type Screen interface {
	Kind() ScreenKind
}

type Welcome struct{}

type ProfileSetup struct{}

type Dashboard struct{}

type TaskCreator struct{}

type Settings struct{}

// Working shows one step of Task. Session is always open and belongs to Task.
type Working struct {
	Task    model.Task
	Session model.Session
	// Simplified asks the view for the simplified step text. Not persisted.
	Simplified bool
}

// Celebration follows a completed step. When TaskComplete is set the session
// has been closed and Rated reports whether the ease rating was given.
type Celebration struct {
	Task         model.Task
	Session      model.Session
	TaskComplete bool
	Rated        bool
}

type StuckHelp struct {
	Task        model.Task
	Session     model.Session
	Suggestions []string
}

func (Welcome) Kind() ScreenKind      { return KindWelcome }
func (ProfileSetup) Kind() ScreenKind { return KindProfileSetup }
func (Dashboard) Kind() ScreenKind    { return KindDashboard }
func (TaskCreator) Kind() ScreenKind  { return KindTaskCreator }
func (Settings) Kind() ScreenKind     { return KindSettings }
func (Working) Kind() ScreenKind      { return KindWorking }
func (Celebration) Kind() ScreenKind  { return KindCelebration }
func (StuckHelp) Kind() ScreenKind    { return KindStuckHelp }

// CurrentStep returns the step at the session index.
func (w Working) CurrentStep() (model.TaskStep, bool) {
	return w.Task.Step(w.Session.CurrentStepIndex)
}

func (s StuckHelp) CurrentStep() (model.TaskStep, bool) {
	return s.Task.Step(s.Session.CurrentStepIndex)
}
